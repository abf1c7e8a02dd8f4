// Package key provides an order-preserving byte-slice key representation
// that the generic ordered containers (bst, avl, btree) can store when
// given a comparator built on Compare; no container in this module imports
// it or uses it by default. Adapted from the teacher's Key type
// (TomTonic/multimap's key.go): same constructors and integer-offset
// encoding policy, plus a Compare method returning the negative/zero/positive
// int the rest of this module's comparators expect.
package key

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Key is a byte slice used as an order-preserving map key representation.
// Use the provided constructors to build Keys from primitive types or
// normalized strings.
//
// Integer encoding policy
// -----------------------
// All integer constructors produce an 8-byte big-endian representation
// (most-significant byte first). To ensure consistent, order-preserving
// comparisons across signed and unsigned types and across different
// integer widths, every integer constructor adds an offset of `1<<63`
// before encoding the numeric value. For signed constructors the value
// is first converted to `int64`, for unsigned constructors it is treated
// as `uint64`; in both cases the offset is added and the resulting
// unsigned 64-bit value is written big-endian into the Key.
//
// This mapping has two useful properties:
//   - Lexicographic byte-wise comparison of Keys corresponds to numeric
//     ordering of the original values (taking signedness into account),
//     for every signed value and for unsigned values below 1<<63. Unsigned
//     values of 1<<63 and above wrap around when the offset is added and
//     sort before zero.
//   - Values produced from different source widths are comparable (for
//     example `FromInt32(x)` equals `FromInt64(x)` for the same numeric x).
type Key []byte

// FromBytes returns a copy of the provided byte slice as a Key. If b is
// nil this returns an empty (zero-length) Key (not nil).
func FromBytes(b []byte) Key {
	if b == nil {
		return []byte{}
	}
	kb := make([]byte, len(b))
	copy(kb, b)
	return Key(kb)
}

// FromString returns a Key produced from the provided string after
// normalizing it to Unicode NFC. The resulting Key contains the UTF-8
// encoding of the normalized string. (FromString does not alter case or
// trim spaces.)
func FromString(s string) Key {
	s = norm.NFC.String(s)
	return FromBytes([]byte(s))
}

const int64Offset = uint64(1) << 63

// FromInt converts an `int` to an 8-byte big-endian Key, shifted by 1<<63
// so that negative values compare before positive values.
func FromInt(i int) Key { return FromInt64(int64(i)) }

// FromInt64 converts an int64 to an 8-byte big-endian Key.
func FromInt64(i int64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i)+int64Offset)
	return FromBytes(b[:])
}

// FromInt32 converts an int32 to an 8-byte big-endian Key.
func FromInt32(i int32) Key { return FromInt64(int64(i)) }

// FromInt16 converts an int16 to an 8-byte big-endian Key.
func FromInt16(i int16) Key { return FromInt64(int64(i)) }

// FromInt8 converts an int8 to an 8-byte big-endian Key.
func FromInt8(i int8) Key { return FromInt64(int64(i)) }

// FromUint converts a uint to an 8-byte big-endian Key.
func FromUint(u uint) Key { return FromUint64(uint64(u)) }

// FromUint64 converts a uint64 to an 8-byte big-endian Key.
func FromUint64(u uint64) Key {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], u+int64Offset)
	return FromBytes(b[:])
}

// FromUint32 converts a uint32 to an 8-byte big-endian Key.
func FromUint32(u uint32) Key { return FromUint64(uint64(u)) }

// FromUint16 converts a uint16 to an 8-byte big-endian Key.
func FromUint16(u uint16) Key { return FromUint64(uint64(u)) }

// FromUint8 converts a uint8 to an 8-byte big-endian Key.
func FromUint8(u uint8) Key { return FromUint64(uint64(u)) }

// FromByte is an alias for FromUint8.
func FromByte(b byte) Key { return FromUint8(b) }

// FromRune converts a rune to its UTF-8 encoding as a Key.
func FromRune(r rune) Key {
	var buf [4]byte
	n := utf8EncodeRune(buf[:], r)
	return FromBytes(buf[:n])
}

// Bytes returns a copy of the Key as a byte slice.
func (k Key) Bytes() []byte {
	if k == nil {
		return nil
	}
	b := make([]byte, len(k))
	copy(b, k)
	return b
}

// Clone returns an independent copy of the Key. If k is nil, Clone returns nil.
func (k Key) Clone() Key {
	if k == nil {
		return nil
	}
	kb := make([]byte, len(k))
	copy(kb, k)
	return Key(kb)
}

// String returns the Key as uppercase hex byte tuples, e.g. "[01,AB,00]".
func (k Key) String() string {
	if len(k) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	const hex = "0123456789ABCDEF"
	for i, b := range k {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteByte(hex[b>>4])
		sb.WriteByte(hex[b&0x0F])
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports whether k and other have the same contents.
func (k Key) Equal(other Key) bool {
	return k.Compare(other) == 0
}

// LessThan reports whether k is lexicographically less than other.
func (k Key) LessThan(other Key) bool {
	return k.Compare(other) < 0
}

// Compare returns a negative, zero, or positive value as k is
// lexicographically less than, equal to, or greater than other. Shorter
// keys that are a prefix of a longer one sort first, the same convention
// bytes.Compare uses. An ordered container holding key.Key values takes it
// through a comparator such as func(a, b Key) int { return a.Compare(b) }.
func (k Key) Compare(other Key) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	default:
		return 0
	}
}

// LessThanOrEqual reports whether k sorts at or before other.
func (k Key) LessThanOrEqual(other Key) bool {
	return k.Compare(other) <= 0
}

// IsEmpty returns whether the Key is empty or nil.
func (k Key) IsEmpty() bool { return len(k) == 0 }

// append extends k in place with the bytes of other, growing the backing
// array as needed.
func (k *Key) append(other Key) {
	*k = append(*k, other...)
}

// LongestCommonPrefix returns the number of leading bytes a and b share.
func LongestCommonPrefix(a, b Key) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func utf8EncodeRune(buf []byte, r rune) int {
	switch {
	case r <= 0x7F:
		buf[0] = byte(r)
		return 1
	case r <= 0x7FF:
		buf[0] = 0xC0 | byte(r>>6)
		buf[1] = 0x80 | byte(r)&0x3F
		return 2
	case r <= 0xFFFF:
		buf[0] = 0xE0 | byte(r>>12)
		buf[1] = 0x80 | byte(r>>6)&0x3F
		buf[2] = 0x80 | byte(r)&0x3F
		return 3
	default:
		buf[0] = 0xF0 | byte(r>>18)
		buf[1] = 0x80 | byte(r>>12)&0x3F
		buf[2] = 0x80 | byte(r>>6)&0x3F
		buf[3] = 0x80 | byte(r)&0x3F
		return 4
	}
}
