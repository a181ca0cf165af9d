package numtheory

import (
	"iter"
	"math/big"
)

// IsPrime64 reports whether x is prime by trial division over 6k±1.
// It is meant for factor-base sized values.
func IsPrime64(x int64) bool {
	if x < 2 {
		return false
	}
	if x < 4 {
		return true
	}
	if x%2 == 0 || x%3 == 0 {
		return false
	}
	for d := int64(5); d <= x/d; d += 6 {
		if x%d == 0 || x%(d+2) == 0 {
			return false
		}
	}
	return true
}

// IsProbablePrime reports whether n is prime. It is exact below 2^64 and
// a Miller-Rabin plus Baillie-PSW test above.
func IsProbablePrime(n *big.Int) bool {
	return n.Sign() > 0 && n.ProbablyPrime(20)
}

// PrimeCursor walks the primes in ascending order. The zero value starts at 2.
// Its state is the next candidate to test, so a cursor can be copied to fork
// the sequence.
type PrimeCursor struct {
	next int64
}

// NewPrimeCursor returns a cursor positioned at the first prime >= from.
func NewPrimeCursor(from int64) *PrimeCursor {
	if from < 2 {
		from = 2
	}
	return &PrimeCursor{next: from}
}

// Peek returns the next prime without consuming it.
func (c *PrimeCursor) Peek() int64 {
	if c.next < 2 {
		c.next = 2
	}
	for !IsPrime64(c.next) {
		c.next++
	}
	return c.next
}

// Next consumes and returns the next prime.
func (c *PrimeCursor) Next() int64 {
	p := c.Peek()
	c.next = p + 1
	return p
}

// Position is the smallest value the cursor has not yet examined.
func (c *PrimeCursor) Position() int64 {
	return c.next
}

// Primes is the infinite ascending sequence of primes >= from. Every range
// over the returned sequence starts again at from.
func Primes(from int64) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		c := NewPrimeCursor(from)
		for {
			if !yield(c.Next()) {
				return
			}
		}
	}
}
