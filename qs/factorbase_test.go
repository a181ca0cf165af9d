package qs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorBaseBound(t *testing.T) {
	fb := NewFactorBaseBound(big.NewInt(42), 10)
	assert.Equal(t, []int64{-1, 2, 3, 7}, fb.Primes())
	assert.Equal(t, int64(7), fb.Max())

	fb = NewFactorBaseBound(big.NewInt(8051), 30)
	assert.Equal(t, []int64{-1, 2, 5, 7, 13, 23}, fb.Primes())
	j, ok := fb.Column(13)
	require.True(t, ok)
	assert.Equal(t, 4, j)
	_, ok = fb.Column(3)
	assert.False(t, ok)
}

func TestFactorBaseCount(t *testing.T) {
	fb := NewFactorBaseCount(big.NewInt(8051), 5)
	assert.Equal(t, []int64{-1, 2, 5, 7, 13, 23}, fb.Primes())
	assert.Equal(t, 6, fb.Len())
}

func TestFactorBaseGrowIsAppendOnly(t *testing.T) {
	n := big.NewInt(8051)
	fb := NewFactorBaseBound(n, 30)
	before := append([]int64(nil), fb.Primes()...)

	added := fb.Grow(3)
	require.Len(t, added, 3)
	assert.Equal(t, before, fb.Primes()[:len(before)])
	for _, p := range added {
		assert.Greater(t, p, int64(30))
		assert.NotEqual(t, -1, Legendre(n, p), "p=%d", p)
	}

	// a fresh base over the same range agrees
	fresh := NewFactorBaseCount(n, fb.Len()-1)
	assert.Equal(t, fresh.Primes(), fb.Primes())
	for j, p := range fb.Primes() {
		col, ok := fb.Column(p)
		require.True(t, ok)
		assert.Equal(t, j, col)
	}
}

func TestFactorBaseDivisor(t *testing.T) {
	p, ok := NewFactorBaseBound(big.NewInt(45), 30).Divisor()
	require.True(t, ok)
	assert.Equal(t, int64(3), p)

	_, ok = NewFactorBaseBound(big.NewInt(8051), 30).Divisor()
	assert.False(t, ok)

	// n itself is not a proper divisor
	_, ok = NewFactorBaseBound(big.NewInt(7), 10).Divisor()
	assert.False(t, ok)
}

func TestFactorBaseGrowResumesScan(t *testing.T) {
	n := big.NewInt(8051)
	fb := NewFactorBaseBound(n, 30)
	assert.Equal(t, []int64{43, 47, 59}, fb.Grow(3))
	assert.Equal(t, []int64{61, 79, 83}, fb.Grow(3))
	assert.Empty(t, fb.Grow(0))

	// 83 divides 8051 and still enters the base
	p, ok := fb.Divisor()
	require.True(t, ok)
	assert.Equal(t, int64(83), p)

	// no admissible prime in (30, 42], the scan continues past the bound
	fb = NewFactorBaseBound(n, 42)
	assert.Equal(t, int64(23), fb.Max())
	assert.Equal(t, []int64{43}, fb.Grow(1))
}
