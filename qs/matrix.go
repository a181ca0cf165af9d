package qs

import (
	"fmt"
	"math/big"
)

// ExponentMatrix has one row per relation and one column per factor-base
// entry.
type ExponentMatrix struct {
	Rows [][]int
	Cols int
}

// ParityMatrix is an ExponentMatrix reduced mod 2.
type ParityMatrix struct {
	rows []bitVector
	cols int
}

// BuildMatrix lays the relations out over the current base and reduces them
// mod 2. Every relation must recompose to its y over the base; a relation
// that does not is a sieve bug and panics.
func BuildMatrix(fb *FactorBase, rels []Relation) (*ExponentMatrix, *ParityMatrix) {
	t := fb.Len()
	em := &ExponentMatrix{Rows: make([][]int, len(rels)), Cols: t}
	pm := &ParityMatrix{rows: make([]bitVector, len(rels)), cols: t}
	for i, rel := range rels {
		if len(rel.Exponents) > t {
			panic(fmt.Sprintf("qs: relation %d has %d columns, base has %d", i, len(rel.Exponents), t))
		}
		if !recomposes(fb, rel) {
			panic(fmt.Sprintf("qs: relation x=%s, y=%s does not reduce to ±1 over the factor base", rel.X, rel.Y))
		}
		row := make([]int, t)
		bv := newBitVector(t)
		for j := range t {
			e := rel.Exponent(j)
			row[j] = e
			if e%2 == 1 {
				bv.set(j)
			}
		}
		em.Rows[i] = row
		pm.rows[i] = bv
	}
	return em, pm
}

func recomposes(fb *FactorBase, rel Relation) bool {
	prod := big.NewInt(1)
	var pe big.Int
	for j := 1; j < len(rel.Exponents); j++ {
		if e := rel.Exponents[j]; e > 0 {
			pe.Exp(big.NewInt(fb.At(j)), big.NewInt(int64(e)), nil)
			prod.Mul(prod, &pe)
		}
	}
	if rel.Exponent(SignColumn)%2 == 1 {
		prod.Neg(prod)
	}
	return prod.Cmp(rel.Y) == 0
}

// ParityFromRows builds a parity matrix from 0/1 rows of equal width.
func ParityFromRows(rows [][]int) *ParityMatrix {
	pm := &ParityMatrix{rows: make([]bitVector, len(rows))}
	if len(rows) > 0 {
		pm.cols = len(rows[0])
	}
	for i, r := range rows {
		bv := newBitVector(pm.cols)
		for j, b := range r {
			if b%2 != 0 {
				bv.set(j)
			}
		}
		pm.rows[i] = bv
	}
	return pm
}

// Dims returns the number of rows and columns.
func (pm *ParityMatrix) Dims() (rows, cols int) { return len(pm.rows), pm.cols }

// Bit returns entry (i, j).
func (pm *ParityMatrix) Bit(i, j int) bool { return pm.rows[i].get(j) }

// SumsToZero reports whether the rows in subset add to the zero vector mod 2.
func (pm *ParityMatrix) SumsToZero(subset []int) bool {
	acc := newBitVector(pm.cols)
	for _, i := range subset {
		acc.xor(pm.rows[i])
	}
	return acc.isZero()
}
