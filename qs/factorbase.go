package qs

import (
	"iter"
	"math/big"

	"github.com/nxtrace/qsieve/numtheory"
)

// SignColumn is the factor-base column of the sign marker -1.
const SignColumn = 0

// FactorBase is the ordered set {-1, p1 < p2 < ...} of primes modulo which
// n is a square (Legendre symbol 0 or 1; 2 is always admitted). A column
// index, once assigned, never changes: the base only grows by appending.
type FactorBase struct {
	n      *big.Int
	primes []int64
	index  map[int64]int
	// next is the smallest prime candidate not yet considered.
	next int64
}

func newFactorBase(n *big.Int) *FactorBase {
	return &FactorBase{
		n:      new(big.Int).Set(n),
		primes: []int64{-1},
		index:  map[int64]int{-1: SignColumn},
		next:   2,
	}
}

// NewFactorBaseBound builds the base of all admissible primes p <= bound.
func NewFactorBaseBound(n *big.Int, bound int64) *FactorBase {
	fb := newFactorBase(n)
	for p := range numtheory.TakeWhile(fb.candidates(), func(p int64) bool { return p <= bound }) {
		fb.add(p)
	}
	fb.next = max(fb.next, bound+1)
	return fb
}

// NewFactorBaseCount builds the base of the first count admissible primes.
func NewFactorBaseCount(n *big.Int, count int) *FactorBase {
	fb := newFactorBase(n)
	fb.Grow(count)
	return fb
}

// admissible reports whether n is a square or zero modulo p.
func (fb *FactorBase) admissible(p int64) bool {
	return p == 2 || Legendre(fb.n, p) != -1
}

// candidates is the sequence of admissible primes from the scan position on.
// It restarts at fb.next on every range.
func (fb *FactorBase) candidates() iter.Seq[int64] {
	return numtheory.Filter(numtheory.Primes(fb.next), fb.admissible)
}

func (fb *FactorBase) add(p int64) {
	fb.index[p] = len(fb.primes)
	fb.primes = append(fb.primes, p)
	fb.next = p + 1
}

// Grow appends the next k admissible primes above the current largest one
// and returns them. The scan resumes where the previous one stopped.
func (fb *FactorBase) Grow(k int) []int64 {
	start := len(fb.primes)
	for p := range numtheory.Take(fb.candidates(), k) {
		fb.add(p)
	}
	return fb.primes[start:]
}

// Len is the number of columns, sign marker included.
func (fb *FactorBase) Len() int { return len(fb.primes) }

// At returns the entry in column j.
func (fb *FactorBase) At(j int) int64 { return fb.primes[j] }

// Primes returns the entries in column order. The slice must not be modified.
func (fb *FactorBase) Primes() []int64 { return fb.primes }

// Column returns the column of p.
func (fb *FactorBase) Column(p int64) (int, bool) {
	j, ok := fb.index[p]
	return j, ok
}

// Max is the largest prime in the base, or -1 when it holds only the sign.
func (fb *FactorBase) Max() int64 { return fb.primes[len(fb.primes)-1] }

// Divisor returns a base prime that properly divides n, if any. Such primes
// enter the base because their Legendre symbol is 0.
func (fb *FactorBase) Divisor() (int64, bool) {
	for _, p := range fb.primes[1:] {
		if numtheory.Residue(fb.n, p) == 0 && big.NewInt(p).Cmp(fb.n) != 0 {
			return p, true
		}
	}
	return 0, false
}
