package numtheory

import (
	"math/big"
	"slices"
)

// PollardRho returns a non-trivial divisor of the composite n using Floyd
// cycle detection on x -> x^2 + c, retrying with the next c when a walk
// collapses onto n.
func PollardRho(n *big.Int) *big.Int {
	if n.Bit(0) == 0 {
		return big.NewInt(2)
	}
	for c := int64(1); ; c++ {
		x := big.NewInt(2)
		y := big.NewInt(2)
		bc := big.NewInt(c)
		g := big.NewInt(1)
		var d big.Int
		for g.Cmp(bigOne) == 0 {
			x.Mul(x, x).Add(x, bc).Mod(x, n)
			y.Mul(y, y).Add(y, bc).Mod(y, n)
			y.Mul(y, y).Add(y, bc).Mod(y, n)
			d.Sub(x, y)
			g = GCD(&d, n)
		}
		if g.Cmp(n) != 0 {
			return g
		}
	}
}

// FactorRho returns the prime factors of n > 1 with multiplicity, ascending.
func FactorRho(n *big.Int) []*big.Int {
	var out []*big.Int
	stack := []*big.Int{new(big.Int).Set(n)}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case m.Cmp(bigOne) <= 0:
		case IsProbablePrime(m):
			out = append(out, m)
		default:
			if r, k, ok := PerfectPower(m); ok {
				for range k {
					stack = append(stack, new(big.Int).Set(r))
				}
				continue
			}
			d := PollardRho(m)
			stack = append(stack, d, new(big.Int).Quo(m, d))
		}
	}
	slices.SortFunc(out, func(a, b *big.Int) int { return a.Cmp(b) })
	return out
}
