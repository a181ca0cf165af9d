package qs

import (
	"iter"
	"math/big"
)

// Relation is a candidate x whose y = x^2 - n factors completely over the
// factor base. Exponents[j] is the exponent of column j; columns appended to
// the base after the relation was found are implicitly zero.
type Relation struct {
	X         *big.Int `json:"x"`
	Y         *big.Int `json:"y"`
	Exponents []int    `json:"exponents"`
}

// Exponent returns the exponent of column j.
func (r Relation) Exponent(j int) int {
	if j < len(r.Exponents) {
		return r.Exponents[j]
	}
	return 0
}

// SearchCursor records how far the candidate sequence around m = floor(sqrt(n))
// has been scanned. Candidates are x = m+Up, m+Up+1, ... above and
// x = m-Down, m-Down-1, ... below; both only move away from m.
type SearchCursor struct {
	Up   int64 `json:"up"`
	Down int64 `json:"down"`
}

// NewSearchCursor starts at x = m going up and x = m-1 going down.
func NewSearchCursor() SearchCursor {
	return SearchCursor{Up: 0, Down: 1}
}

// Scanned is the number of candidates consumed so far.
func (c SearchCursor) Scanned() int64 {
	return c.Up + c.Down - 1
}

// offsets yields the unscanned candidates as offsets from m in search
// order. It depends only on c, so ranging over it twice gives the same
// values; advance records what was consumed.
func (c SearchCursor) offsets(m *big.Int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for {
			var off int64
			if downExhausted(m, c.Down) || c.Up <= c.Down {
				off = c.Up
				c.Up++
			} else {
				off = -c.Down
				c.Down++
			}
			if !yield(off) {
				return
			}
		}
	}
}

// advance returns the cursor just past the candidate at off.
func (c SearchCursor) advance(off int64) SearchCursor {
	if off >= 0 {
		c.Up = off + 1
	} else {
		c.Down = -off + 1
	}
	return c
}

// factorOver divides y over the base. It returns the exponent vector and
// whether y reduced to ±1.
func factorOver(y *big.Int, fb *FactorBase) ([]int, bool) {
	exps := make([]int, fb.Len())
	rem := new(big.Int).Abs(y)
	if y.Sign() < 0 {
		exps[SignColumn] = 1
	}
	var q, r, bp big.Int
	for j := 1; j < fb.Len() && rem.Cmp(bigOne) > 0; j++ {
		bp.SetInt64(fb.At(j))
		for {
			q.QuoRem(rem, &bp, &r)
			if r.Sign() != 0 {
				break
			}
			rem.Set(&q)
			exps[j]++
		}
	}
	return exps, rem.Cmp(bigOne) == 0
}

func newRelation(x, n *big.Int, fb *FactorBase) (Relation, bool) {
	y := new(big.Int).Mul(x, x)
	y.Sub(y, n)
	if y.Sign() == 0 {
		return Relation{}, false
	}
	exps, smooth := factorOver(y, fb)
	if !smooth {
		return Relation{}, false
	}
	return Relation{X: new(big.Int).Set(x), Y: y, Exponents: exps}, true
}

var bigOne = big.NewInt(1)
