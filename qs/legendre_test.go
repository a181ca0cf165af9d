package qs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrace/qsieve/numtheory"
)

func TestLegendre(t *testing.T) {
	tests := []struct {
		n    int64
		p    int64
		want int
	}{
		{10, 13, 1},
		{5, 13, -1},
		{26, 13, 0},
		{-1, 13, 1},
		{-1, 7, -1},
		{8051, 5, 1},
		{8051, 3, -1},
		{42, 7, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Legendre(big.NewInt(tt.n), tt.p), "(%d|%d)", tt.n, tt.p)
	}
}

func TestLegendreMatchesSquares(t *testing.T) {
	for _, p := range []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31} {
		squares := map[int64]bool{}
		for x := int64(1); x < p; x++ {
			squares[x*x%p] = true
		}
		for a := int64(1); a < p; a++ {
			want := -1
			if squares[a] {
				want = 1
			}
			assert.Equal(t, want, Legendre(big.NewInt(a), p), "(%d|%d)", a, p)
		}
	}
}

func TestIsQuadraticResidue(t *testing.T) {
	assert.True(t, IsQuadraticResidue(big.NewInt(3), 2))
	assert.True(t, IsQuadraticResidue(big.NewInt(10), 13))
	assert.False(t, IsQuadraticResidue(big.NewInt(5), 13))
	// n ≡ 0 is not a residue in the strict sense
	assert.False(t, IsQuadraticResidue(big.NewInt(26), 13))
}

func TestSqrtMod(t *testing.T) {
	r1, r2, ok := SqrtMod(big.NewInt(10), 13)
	require.True(t, ok)
	assert.Equal(t, int64(7), r1)
	assert.Equal(t, int64(6), r2)

	// p ≡ 1 (mod 16) runs the full Tonelli-Shanks loop
	r1, r2, ok = SqrtMod(big.NewInt(2), 17)
	require.True(t, ok)
	assert.Equal(t, []int64{6, 11}, []int64{r1, r2})

	r1, r2, ok = SqrtMod(big.NewInt(3), 2)
	require.True(t, ok)
	assert.Equal(t, int64(1), r1)
	assert.Equal(t, r1, r2)

	r1, r2, ok = SqrtMod(big.NewInt(14), 7)
	require.True(t, ok)
	assert.Zero(t, r1)
	assert.Zero(t, r2)

	_, _, ok = SqrtMod(big.NewInt(5), 13)
	assert.False(t, ok)
}

func TestSqrtModRoots(t *testing.T) {
	n := new(big.Int).SetUint64(1000000016000000063) // 1000000007 * 1000000009
	for p := range numtheory.TakeWhile(numtheory.Primes(3), func(p int64) bool { return p < 2000 }) {
		r1, r2, ok := SqrtMod(n, p)
		if Legendre(n, p) == -1 {
			assert.False(t, ok, "p=%d", p)
			continue
		}
		require.True(t, ok, "p=%d", p)
		a := numtheory.Residue(n, p)
		assert.Equal(t, a, r1*r1%p, "p=%d", p)
		if a != 0 {
			assert.Equal(t, p-r1, r2, "p=%d", p)
		}
	}
}
