package qs

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nxtrace/qsieve/numtheory"
)

// Factorization is the complete prime factorization of N.
type Factorization struct {
	N *big.Int `json:"n"`
	// Factors holds the primes with multiplicity in ascending order.
	Factors []*big.Int `json:"factors"`
	// Splits records every composite that was split, in the order the
	// waves processed them.
	Splits []*SplitResult `json:"splits"`
}

// PrimePower is a prime with its exponent.
type PrimePower struct {
	Prime *big.Int `json:"prime"`
	Exp   int      `json:"exp"`
}

// Powers groups Factors into prime powers.
func (f *Factorization) Powers() []PrimePower {
	var out []PrimePower
	for _, p := range f.Factors {
		if k := len(out); k > 0 && out[k-1].Prime.Cmp(p) == 0 {
			out[k-1].Exp++
			continue
		}
		out = append(out, PrimePower{Prime: p, Exp: 1})
	}
	return out
}

// Product multiplies Factors back together.
func (f *Factorization) Product() *big.Int {
	prod := big.NewInt(1)
	for _, p := range f.Factors {
		prod.Mul(prod, p)
	}
	return prod
}

func (f *Factorization) String() string {
	parts := make([]string, 0, len(f.Factors))
	for _, pp := range f.Powers() {
		if pp.Exp == 1 {
			parts = append(parts, pp.Prime.String())
		} else {
			parts = append(parts, fmt.Sprintf("%s^%d", pp.Prime, pp.Exp))
		}
	}
	return strings.Join(parts, " · ")
}

// Factor returns the prime factorization of n > 1.
//
// Pending composites are kept on an explicit work list and processed in
// waves; the composites of one wave are split concurrently, at most
// cfg.Workers at a time, each with a fresh factor base and relation buffer.
// The first failing split cancels the rest of its wave.
func Factor(ctx context.Context, n *big.Int, cfg Config) (*Factorization, error) {
	if n == nil || n.Cmp(bigOne) <= 0 {
		return nil, fmt.Errorf("%w: n must be greater than 1, got %v", ErrInvalidInput, n)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	workers := cfg.WithDefaults(n).Workers
	sem := semaphore.NewWeighted(int64(workers))

	out := &Factorization{N: new(big.Int).Set(n)}
	pending := []*big.Int{new(big.Int).Set(n)}
	for len(pending) > 0 {
		var composites []*big.Int
		for _, m := range pending {
			if numtheory.IsProbablePrime(m) {
				out.Factors = append(out.Factors, m)
			} else {
				composites = append(composites, m)
			}
		}
		if len(composites) == 0 {
			break
		}

		results := make([]*SplitResult, len(composites))
		g, gctx := errgroup.WithContext(ctx)
		for i, m := range composites {
			if err := sem.Acquire(gctx, 1); err != nil {
				break
			}
			g.Go(func() error {
				defer sem.Release(1)
				res, err := Split(gctx, m, cfg)
				if err != nil {
					return fmt.Errorf("split %s: %w", m, err)
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSearchBudgetExhausted, err)
		}

		pending = pending[:0:0]
		for _, res := range results {
			out.Splits = append(out.Splits, res)
			pending = append(pending, res.P, res.Q)
		}
	}
	slices.SortFunc(out.Factors, func(a, b *big.Int) int { return a.Cmp(b) })
	return out, nil
}
