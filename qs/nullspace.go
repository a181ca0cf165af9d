package qs

import (
	"iter"
	"slices"

	"github.com/nxtrace/qsieve/numtheory"
)

// Dependencies yields subsets of row indices whose parity rows sum to zero.
//
// The matrix is augmented with an m×m identity and brought to row echelon
// form over GF(2). A row that vanishes in the left block carries, in its
// augmentation, exactly the original rows that were added to produce it.
// Those rows form a basis of the left null space; an all-zero parity row
// shows up as a dependency of size one.
func Dependencies(pm *ParityMatrix) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		m := len(pm.rows)
		left := make([]bitVector, m)
		aug := make([]bitVector, m)
		for i, r := range pm.rows {
			left[i] = r.clone()
			aug[i] = newBitVector(m)
			aug[i].set(i)
		}

		rank := 0
		for j := 0; j < pm.cols && rank < m; j++ {
			pivot := -1
			for i := rank; i < m; i++ {
				if left[i].get(j) {
					pivot = i
					break
				}
			}
			if pivot < 0 {
				continue
			}
			left[rank], left[pivot] = left[pivot], left[rank]
			aug[rank], aug[pivot] = aug[pivot], aug[rank]
			for i := rank + 1; i < m; i++ {
				if left[i].get(j) {
					left[i].xor(left[rank])
					aug[i].xor(aug[rank])
				}
			}
			rank++
		}

		// rows past the rank vanished in the left block
		for row := range numtheory.Skip(slices.Values(aug), rank) {
			subset := row.ones()
			if len(subset) == 0 {
				continue
			}
			if !yield(subset) {
				return
			}
		}
	}
}

// Combinations yields the symmetric differences of pairs of dependencies,
// which are dependencies again, up to limit of them. Empty results are skipped.
func Combinations(basis [][]int, limit int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := 0
		for a := 0; a < len(basis); a++ {
			for b := a + 1; b < len(basis); b++ {
				if n >= limit {
					return
				}
				d := symmetricDifference(basis[a], basis[b])
				if len(d) == 0 {
					continue
				}
				n++
				if !yield(d) {
					return
				}
			}
		}
	}
}

// symmetricDifference merges two ascending index lists.
func symmetricDifference(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	return out
}
