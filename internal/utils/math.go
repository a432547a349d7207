// Package utils holds small numeric helpers shared by the dice sources.
package utils

import (
	crand "crypto/rand"
	"errors"
	"math/big"
	"math/rand/v2"
)

// ErrInvertedRange is returned when lo > hi
var ErrInvertedRange = errors.New("utils: lo is greater than hi")

// RandomInt returns a uniform integer in [lo, hi]. An inverted range yields lo.
func RandomInt(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + rand.IntN(hi-lo+1) //nolint:gosec // dice, not secrets
}

// SecureRandomInt is RandomInt backed by crypto/rand
func SecureRandomInt(lo, hi int) (int, error) {
	if lo > hi {
		return 0, ErrInvertedRange
	}
	n, err := crand.Int(crand.Reader, big.NewInt(int64(hi)-int64(lo)+1))
	if err != nil {
		return 0, err
	}
	return lo + int(n.Int64()), nil
}

// Sum adds values. An empty slice sums to zero.
func Sum[T ~int | ~int64](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}
