// Package primeutil supplies the next-prime capacity helper
// containers/hashtable's resize policy needs: double hashing's
// full-permutation guarantee only holds when the table capacity is prime.
// The original layer sourced this from a precomputed prime database
// (_examples/original_source/src/hash_table.c includes "prime/include/
// primes.h", a table this pack does not carry); this package computes the
// same answer on demand by trial division instead of shipping a table.
package primeutil

// IsPrime reports whether n is prime.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	if n%3 == 0 {
		return n == 3
	}
	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime >= n (>= 2 for any n <= 2).
func NextPrime(n int) int {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !IsPrime(n) {
		n += 2
	}
	return n
}
