package numtheory

import (
	"math/big"
	"math/bits"
)

// MulMod returns a*b mod m without overflowing 64 bits.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// PowMod returns a^e mod m by square-and-multiply.
func PowMod(a, e, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	res := uint64(1)
	base := a % m
	for e > 0 {
		if e&1 == 1 {
			res = MulMod(res, base, m)
		}
		base = MulMod(base, base, m)
		e >>= 1
	}
	return res
}

// Residue returns n mod p in [0, p). p must be positive.
func Residue(n *big.Int, p int64) int64 {
	var r big.Int
	r.Mod(n, big.NewInt(p))
	return r.Int64()
}

// GCD returns gcd(|a|, |b|).
func GCD(a, b *big.Int) *big.Int {
	var x, y big.Int
	x.Abs(a)
	y.Abs(b)
	return new(big.Int).GCD(nil, nil, &x, &y)
}
