package qs

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/nxtrace/qsieve/numtheory"
)

// RelationSieve finds relations for n over a factor base, resuming the
// candidate search at cur. It returns the relations it found and the
// advanced cursor. When fewer than want relations turn up before the
// per-round search limit, the error is ErrInsufficientRelations and the
// relations found are still returned.
type RelationSieve interface {
	Collect(ctx context.Context, n *big.Int, fb *FactorBase, cur SearchCursor, want int) ([]Relation, SearchCursor, error)
}

// NewRelationSieve returns the sieve configured by cfg.Mode.
func NewRelationSieve(cfg Config) RelationSieve {
	if cfg.Mode == ModeTrial {
		return &TrialSieve{Limit: cfg.SearchLimit}
	}
	return &IntervalSieve{Interval: cfg.Interval, Workers: cfg.Workers}
}

// TrialSieve is the sieveless strategy: candidates are visited in the order
// m, m+1, m-1, m+2, m-2, ... and each y is trial divided by the base primes.
type TrialSieve struct {
	// Limit is the number of candidates examined per call.
	Limit int
}

func (s *TrialSieve) Collect(ctx context.Context, n *big.Int, fb *FactorBase, cur SearchCursor, want int) ([]Relation, SearchCursor, error) {
	m := numtheory.ISqrt(n)
	var out []Relation
	var x big.Int
	scanned := 0
	for off := range numtheory.Take(cur.offsets(m), s.Limit) {
		if len(out) >= want {
			break
		}
		if scanned%256 == 0 {
			if err := ctx.Err(); err != nil {
				return out, cur, err
			}
		}
		scanned++
		cur = cur.advance(off)
		x.Add(m, big.NewInt(off))
		if rel, ok := newRelation(&x, n, fb); ok {
			out = append(out, rel)
		}
	}
	if len(out) < want {
		return out, cur, fmt.Errorf("%w: %d of %d after %d candidates", ErrInsufficientRelations, len(out), want, s.Limit)
	}
	return out, cur, nil
}

// downExhausted reports whether x = m - down would drop below 1.
func downExhausted(m *big.Int, down int64) bool {
	return m.IsInt64() && m.Int64()-down < 1
}

// IntervalSieve sieves a block of Interval/2 candidates above m and one
// below m per call. For each base prime p with roots ±r of n mod p, exactly
// the positions with x ≡ ±r (mod p) are divisible by p; those are divided
// out in place and a position is smooth when ±1 remains.
type IntervalSieve struct {
	Interval int
	// Workers partitions each block by index range.
	Workers int
}

type primeRoots struct {
	p     int64
	roots []int64
}

func (s *IntervalSieve) Collect(ctx context.Context, n *big.Int, fb *FactorBase, cur SearchCursor, want int) ([]Relation, SearchCursor, error) {
	half := int64(max(1, s.Interval/2))
	m := numtheory.ISqrt(n)
	roots := sieveRoots(n, fb)

	var out []Relation
	above := new(big.Int).Add(m, big.NewInt(cur.Up))
	rels, err := s.sieveBlock(ctx, n, fb, above, int(half), roots)
	if err != nil {
		return out, cur, err
	}
	out = append(out, rels...)
	cur.Up += half

	if !downExhausted(m, cur.Down) {
		hi := new(big.Int).Sub(m, big.NewInt(cur.Down))
		length := half
		if hi.IsInt64() && hi.Int64() < length {
			length = hi.Int64()
		}
		lo := new(big.Int).Sub(hi, big.NewInt(length-1))
		rels, err := s.sieveBlock(ctx, n, fb, lo, int(length), roots)
		if err != nil {
			return out, cur, err
		}
		out = append(out, rels...)
		cur.Down += length
	}

	if len(out) < want {
		return out, cur, fmt.Errorf("%w: %d of %d in a %d-wide interval", ErrInsufficientRelations, len(out), want, s.Interval)
	}
	return out, cur, nil
}

func sieveRoots(n *big.Int, fb *FactorBase) []primeRoots {
	roots := make([]primeRoots, 0, fb.Len()-1)
	for _, p := range fb.Primes()[1:] {
		r1, r2, ok := SqrtMod(n, p)
		if !ok {
			continue
		}
		pr := primeRoots{p: p, roots: []int64{r1}}
		if r2 != r1 && r2 != p {
			pr.roots = append(pr.roots, r2)
		}
		roots = append(roots, pr)
	}
	return roots
}

// sieveBlock sieves x0, x0+1, ..., x0+length-1 and returns the smooth relations
// in ascending x. Each worker owns a disjoint index range of the block.
func (s *IntervalSieve) sieveBlock(ctx context.Context, n *big.Int, fb *FactorBase, x0 *big.Int, length int, roots []primeRoots) ([]Relation, error) {
	if length <= 0 {
		return nil, nil
	}
	vals := make([]big.Int, length)
	workers := max(1, min(s.Workers, length))
	chunk := (length + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < length; lo += chunk {
		hi := min(lo+chunk, length)
		g.Go(func() error {
			return sieveRange(gctx, n, x0, vals, lo, hi, roots)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Relation
	var x big.Int
	for i := range vals {
		if !isUnit(&vals[i]) {
			continue
		}
		x.Add(x0, big.NewInt(int64(i)))
		rel, ok := newRelation(&x, n, fb)
		if !ok {
			panic(fmt.Sprintf("qs: sieve marked x=%s smooth but it does not factor over the base", x.String()))
		}
		out = append(out, rel)
	}
	return out, nil
}

func sieveRange(ctx context.Context, n, x0 *big.Int, vals []big.Int, lo, hi int, roots []primeRoots) error {
	// y(x+1) = y(x) + 2x + 1
	var x, step big.Int
	x.Add(x0, big.NewInt(int64(lo)))
	vals[lo].Mul(&x, &x).Sub(&vals[lo], n)
	for i := lo + 1; i < hi; i++ {
		step.Lsh(&x, 1).Add(&step, bigOne)
		vals[i].Add(&vals[i-1], &step)
		x.Add(&x, bigOne)
	}

	var q, r, bp big.Int
	for _, pr := range roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := pr.p
		bp.SetInt64(p)
		// index i holds x0+i, so x ≡ root picks i ≡ root - x0 (mod p)
		base := numtheory.Residue(x0, p)
		for _, root := range pr.roots {
			off := ((root-base-int64(lo))%p + p) % p
			for i := lo + int(off); i < hi; i += int(p) {
				v := &vals[i]
				for v.Sign() != 0 {
					q.QuoRem(v, &bp, &r)
					if r.Sign() != 0 {
						break
					}
					v.Set(&q)
				}
			}
		}
	}
	return nil
}

func isUnit(v *big.Int) bool {
	return v.IsInt64() && (v.Int64() == 1 || v.Int64() == -1)
}
