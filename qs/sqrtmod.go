package qs

import (
	"math/big"

	"github.com/nxtrace/qsieve/numtheory"
)

// SqrtMod returns the square roots (r, p-r) of n modulo the prime p using
// Tonelli-Shanks. For p = 2, and for n ≡ 0 (mod p), the root is double and
// both values are equal. ok is false when n is not a residue modulo p.
func SqrtMod(n *big.Int, p int64) (r1, r2 int64, ok bool) {
	a := numtheory.Residue(n, p)
	if p == 2 || a == 0 {
		return a, a, true
	}
	r, ok := tonelliShanks(uint64(a), uint64(p))
	if !ok {
		return 0, 0, false
	}
	return int64(r), p - int64(r), true
}

// tonelliShanks expects 0 < a < p with p an odd prime.
func tonelliShanks(a, p uint64) (uint64, bool) {
	if legendre64(a, p) != 1 {
		return 0, false
	}
	// p-1 = q*2^s with q odd
	q := p - 1
	s := 0
	for q&1 == 0 {
		q >>= 1
		s++
	}
	if s == 1 {
		return numtheory.PowMod(a, (p+1)/4, p), true
	}

	// first non-residue, scanning up from 2
	z := uint64(2)
	for legendre64(z, p) != -1 {
		z++
	}

	m := s
	c := numtheory.PowMod(z, q, p)
	t := numtheory.PowMod(a, q, p)
	r := numtheory.PowMod(a, (q+1)/2, p)
	for t != 1 {
		// least i in (0, m) with t^(2^i) = 1
		i := 0
		t2i := t
		for t2i != 1 {
			t2i = numtheory.MulMod(t2i, t2i, p)
			i++
			if i == m {
				return 0, false
			}
		}
		b := numtheory.PowMod(c, 1<<uint(m-i-1), p)
		r = numtheory.MulMod(r, b, p)
		c = numtheory.MulMod(b, b, p)
		t = numtheory.MulMod(t, c, p)
		m = i
	}
	return r, true
}
