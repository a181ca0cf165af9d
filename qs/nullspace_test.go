package qs

import (
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependenciesContrived(t *testing.T) {
	pm := ParityFromRows([][]int{{1, 0}, {1, 0}, {0, 0}})
	deps := slices.Collect(Dependencies(pm))
	assert.ElementsMatch(t, [][]int{{0, 1}, {2}}, deps)
}

func TestDependenciesIndependentRows(t *testing.T) {
	pm := ParityFromRows([][]int{{1, 0, 0}, {0, 1, 0}, {1, 1, 1}})
	assert.Empty(t, slices.Collect(Dependencies(pm)))
}

// rank of a 0/1 matrix by brute force over all row subsets
func bruteNullity(pm *ParityMatrix) int {
	m, _ := pm.Dims()
	zero := 0
	for mask := 1; mask < 1<<m; mask++ {
		var subset []int
		for i := range m {
			if mask>>i&1 == 1 {
				subset = append(subset, i)
			}
		}
		if pm.SumsToZero(subset) {
			zero++
		}
	}
	// zero+1 = 2^nullity
	k := 0
	for v := zero + 1; v > 1; v >>= 1 {
		k++
	}
	return k
}

func TestDependenciesAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		m := 1 + rng.IntN(9)
		cols := 1 + rng.IntN(8)
		rows := make([][]int, m)
		for i := range rows {
			rows[i] = make([]int, cols)
			for j := range rows[i] {
				rows[i][j] = rng.IntN(2)
			}
		}
		pm := ParityFromRows(rows)
		deps := slices.Collect(Dependencies(pm))
		for _, dep := range deps {
			require.NotEmpty(t, dep)
			assert.True(t, slices.IsSorted(dep))
			assert.True(t, pm.SumsToZero(dep), "rows=%v dep=%v", rows, dep)
		}
		assert.Len(t, deps, bruteNullity(pm), "rows=%v", rows)
	}
}

func TestDependenciesWideRows(t *testing.T) {
	// more than 64 rows and columns spans several words
	rows := make([][]int, 130)
	for i := range rows {
		rows[i] = make([]int, 100)
		rows[i][i%100] = 1
	}
	pm := ParityFromRows(rows)
	deps := slices.Collect(Dependencies(pm))
	require.Len(t, deps, 30)
	for _, dep := range deps {
		assert.True(t, pm.SumsToZero(dep))
	}
}

func TestDependenciesStopEarly(t *testing.T) {
	pm := ParityFromRows([][]int{{0}, {0}, {0}})
	n := 0
	for range Dependencies(pm) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestCombinations(t *testing.T) {
	basis := [][]int{{0, 1}, {1, 2}, {3}}
	got := slices.Collect(Combinations(basis, 10))
	assert.Equal(t, [][]int{{0, 2}, {0, 1, 3}, {1, 2, 3}}, got)

	assert.Len(t, slices.Collect(Combinations(basis, 2)), 2)
	assert.Empty(t, slices.Collect(Combinations([][]int{{4}, {4}}, 10)))
}

func TestBuildMatrix(t *testing.T) {
	n := big.NewInt(8051)
	fb := NewFactorBaseBound(n, 30)
	rels, _, err := (&TrialSieve{Limit: 50}).Collect(t.Context(), n, fb, NewSearchCursor(), 7)
	require.NoError(t, err)

	em, pm := BuildMatrix(fb, rels)
	rows, cols := pm.Dims()
	assert.Equal(t, 7, rows)
	assert.Equal(t, fb.Len(), cols)
	assert.Equal(t, fb.Len(), em.Cols)
	for i, row := range em.Rows {
		for j, e := range row {
			assert.Equal(t, e%2 == 1, pm.Bit(i, j))
		}
	}
	// 90^2 - 8051 = 7^2 has an all-zero parity row
	assert.True(t, pm.SumsToZero([]int{1}))
}

func TestBuildMatrixAfterGrow(t *testing.T) {
	n := big.NewInt(8051)
	fb := NewFactorBaseBound(n, 30)
	rels, _, _ := (&TrialSieve{Limit: 50}).Collect(t.Context(), n, fb, NewSearchCursor(), 7)
	fb.Grow(2)

	em, _ := BuildMatrix(fb, rels)
	for _, row := range em.Rows {
		require.Len(t, row, fb.Len())
		assert.Zero(t, row[fb.Len()-1])
	}
}

func TestBuildMatrixRejectsForeignRelation(t *testing.T) {
	n := big.NewInt(8051)
	fb := NewFactorBaseBound(n, 30)
	bogus := Relation{X: big.NewInt(92), Y: big.NewInt(413), Exponents: []int{0, 0, 0, 1, 0, 0}}
	assert.Panics(t, func() { BuildMatrix(fb, []Relation{bogus}) })
}
