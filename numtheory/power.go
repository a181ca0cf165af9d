package numtheory

import "math/big"

// ISqrt returns floor(sqrt(n)), 0 for n <= 0.
func ISqrt(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(n)
}

// IRoot returns floor(n^(1/k)) for n >= 0 and k >= 1 (Newton iteration).
func IRoot(n *big.Int, k int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	if k == 1 {
		return new(big.Int).Set(n)
	}
	if k == 2 {
		return ISqrt(n)
	}
	bk := big.NewInt(int64(k))
	bk1 := big.NewInt(int64(k - 1))
	// start above the root
	x := new(big.Int).Lsh(bigOne, uint(n.BitLen()/k+1))
	var y, t big.Int
	for {
		t.Exp(x, bk1, nil)
		t.Quo(n, &t)
		y.Mul(x, bk1)
		y.Add(&y, &t)
		y.Quo(&y, bk)
		if y.Cmp(x) >= 0 {
			return x
		}
		x.Set(&y)
	}
}

// PerfectPower reports whether n = base^k for some k >= 2. The smallest
// such prime k is returned.
func PerfectPower(n *big.Int) (base *big.Int, k int, ok bool) {
	if n.Cmp(big.NewInt(4)) < 0 {
		return nil, 0, false
	}
	var t big.Int
	for k = 2; k <= n.BitLen(); k++ {
		if !IsPrime64(int64(k)) {
			continue
		}
		r := IRoot(n, k)
		if r.Cmp(bigOne) <= 0 {
			break
		}
		if t.Exp(r, big.NewInt(int64(k)), nil).Cmp(n) == 0 {
			return r, k, true
		}
	}
	return nil, 0, false
}
