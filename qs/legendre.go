package qs

import (
	"math/big"

	"github.com/nxtrace/qsieve/numtheory"
)

// Legendre returns the Legendre symbol (n|p) for an odd prime p using
// Euler's criterion n^((p-1)/2) mod p. The result is 0, 1 or -1.
// p is not checked for primality.
func Legendre(n *big.Int, p int64) int {
	return legendre64(uint64(numtheory.Residue(n, p)), uint64(p))
}

func legendre64(a, p uint64) int {
	a %= p
	if a == 0 {
		return 0
	}
	l := numtheory.PowMod(a, (p-1)/2, p)
	switch l {
	case 1:
		return 1
	case p - 1:
		return -1
	}
	return 0
}

// IsQuadraticResidue reports whether n is a square modulo the prime p.
// Every integer is a residue modulo 2.
func IsQuadraticResidue(n *big.Int, p int64) bool {
	if p == 2 {
		return true
	}
	return Legendre(n, p) == 1
}
