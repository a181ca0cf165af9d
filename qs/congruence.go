package qs

import (
	"fmt"
	"math/big"

	"github.com/nxtrace/qsieve/numtheory"
)

// Congruence is a pair with X^2 ≡ Y^2 (mod n), both reduced mod n.
type Congruence struct {
	X *big.Int
	Y *big.Int
}

// Combine turns a dependency into a congruence: X is the product of the
// relations' x mod n and Y the product of p_j^(e_j/2) mod n, where e_j is the
// summed exponent of column j. An odd e_j means dep is not a dependency,
// which panics.
func Combine(n *big.Int, fb *FactorBase, em *ExponentMatrix, rels []Relation, dep []int) Congruence {
	x := big.NewInt(1)
	sums := make([]int, em.Cols)
	for _, i := range dep {
		x.Mul(x, rels[i].X).Mod(x, n)
		for j, e := range em.Rows[i] {
			sums[j] += e
		}
	}

	y := big.NewInt(1)
	var pe big.Int
	for j := 1; j < em.Cols; j++ {
		if sums[j]%2 != 0 {
			panic(fmt.Sprintf("qs: column %d has odd exponent sum %d in dependency %v", j, sums[j], dep))
		}
		if sums[j] == 0 {
			continue
		}
		pe.Exp(big.NewInt(fb.At(j)), big.NewInt(int64(sums[j]/2)), n)
		y.Mul(y, &pe).Mod(y, n)
	}
	if sums[SignColumn]%2 != 0 {
		panic(fmt.Sprintf("qs: sign column has odd sum %d in dependency %v", sums[SignColumn], dep))
	}
	if (sums[SignColumn]/2)%2 == 1 {
		y.Sub(n, y).Mod(y, n)
	}
	return Congruence{X: x, Y: y}
}

// Trivial reports x ≡ ±y (mod n).
func (c Congruence) Trivial(n *big.Int) bool {
	if c.X.Cmp(c.Y) == 0 {
		return true
	}
	var s big.Int
	s.Add(c.X, c.Y).Mod(&s, n)
	return s.Sign() == 0
}

// Factor returns n = p*q with 1 < p < n taken from gcd(x-y, n) or
// gcd(x+y, n). ok is false for a trivial congruence.
func (c Congruence) Factor(n *big.Int) (p, q *big.Int, ok bool) {
	if c.Trivial(n) {
		return nil, nil, false
	}
	var d big.Int
	for _, f := range []*big.Int{
		numtheory.GCD(d.Sub(c.X, c.Y), n),
		numtheory.GCD(new(big.Int).Add(c.X, c.Y), n),
	} {
		if f.Cmp(bigOne) > 0 && f.Cmp(n) < 0 {
			return f, new(big.Int).Quo(n, f), true
		}
	}
	return nil, nil, false
}
