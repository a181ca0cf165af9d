package numtheory

import (
	"math/big"
	"slices"
)

// SignKey is the Factorization key recording a negative input.
const SignKey int64 = -1

// Factorization maps a prime to its exponent. A negative input carries
// SignKey with exponent 1.
type Factorization map[int64]int

// Primes returns the keys in ascending order, SignKey first.
func (f Factorization) Primes() []int64 {
	ps := make([]int64, 0, len(f))
	for p := range f {
		ps = append(ps, p)
	}
	slices.Sort(ps)
	return ps
}

// NaiveFactor factors x by trial division over the primes up to bound.
// With bound <= 0 it divides until the remainder is 1 or prime, which is only
// practical for small x. The returned cofactor is the part of |x| left after
// division; it is 1 when x factors completely.
func NaiveFactor(x *big.Int, bound int64) (Factorization, *big.Int) {
	f := Factorization{}
	rem := new(big.Int).Abs(x)
	if x.Sign() < 0 {
		f[SignKey] = 1
	}
	if rem.Sign() == 0 {
		return f, rem
	}

	var q, r, pp, bp big.Int
	cur := NewPrimeCursor(2)
	for rem.Cmp(bigOne) > 0 {
		p := cur.Next()
		if bound > 0 && p > bound {
			break
		}
		bp.SetInt64(p)
		pp.Mul(&bp, &bp)
		if pp.Cmp(rem) > 0 {
			// rem is prime now
			if rem.IsInt64() && (bound <= 0 || rem.Int64() <= bound) {
				f[rem.Int64()]++
				rem.SetInt64(1)
			}
			break
		}
		for {
			q.QuoRem(rem, &bp, &r)
			if r.Sign() != 0 {
				break
			}
			rem.Set(&q)
			f[p]++
		}
	}
	return f, rem
}

var bigOne = big.NewInt(1)
