package qs

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/nxtrace/qsieve/numtheory"
)

// Split methods.
const (
	MethodSieve        = "sieve"
	MethodBaseDivisor  = "base-divisor"
	MethodEven         = "even"
	MethodPerfectPower = "perfect-power"
)

// SplitResult is one factorization n = P*Q with 1 < P, Q < n.
type SplitResult struct {
	N        *big.Int `json:"n"`
	P        *big.Int `json:"p"`
	Q        *big.Int `json:"q"`
	Method   string   `json:"method"`
	Rounds   int      `json:"rounds"`
	BaseSize int      `json:"base_size"`
	MaxPrime int64    `json:"max_prime"`
	// RelationCount is the number of relations held when the split was found.
	RelationCount int `json:"relations"`
	// Dependency lists the relation indices whose congruence split n.
	Dependency []int   `json:"dependency,omitempty"`
	Base       []int64 `json:"-"`
	// Relations is the relation buffer at the time of the split.
	Relations []Relation `json:"-"`
}

type phase int

const (
	phasePerfectPower phase = iota
	phaseFactorBase
	phaseCollect
	phaseGrow
	phaseSolve
	phaseExpand
)

func (p phase) String() string {
	switch p {
	case phasePerfectPower:
		return "perfect-power-check"
	case phaseFactorBase:
		return "factor-base-init"
	case phaseCollect:
		return "collect-relations"
	case phaseGrow:
		return "grow-factor-base"
	case phaseSolve:
		return "solve-nullspace"
	case phaseExpand:
		return "expand-relations"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// splitter holds the state of one Split call. Relations are only ever
// appended; a grown base extends older relations with zero exponents.
type splitter struct {
	n     *big.Int
	cfg   Config
	sieve RelationSieve

	fb     *FactorBase
	rels   []Relation
	cursor SearchCursor
	want   int
	round  int

	last error
}

// Split finds one non-trivial factorization of the composite n.
//
// It returns ErrInvalidInput for n <= 1 and for prime n, and
// ErrSearchBudgetExhausted once MaxRounds or MaxBaseSize is reached or ctx is
// done. Insufficient relations and trivial congruences are handled inside by
// growing the base and collecting more relations respectively.
func Split(ctx context.Context, n *big.Int, cfg Config) (*SplitResult, error) {
	if n == nil || n.Cmp(bigOne) <= 0 {
		return nil, fmt.Errorf("%w: n must be greater than 1, got %v", ErrInvalidInput, n)
	}
	if numtheory.IsProbablePrime(n) {
		return nil, fmt.Errorf("%w: %s is prime", ErrInvalidInput, n)
	}
	s := &splitter{
		n:      new(big.Int).Set(n),
		cfg:    cfg.WithDefaults(n),
		cursor: NewSearchCursor(),
	}
	s.sieve = NewRelationSieve(s.cfg)

	next := phasePerfectPower
	for {
		var (
			res *SplitResult
			err error
		)
		switch next {
		case phasePerfectPower:
			res, next = s.checkShortcuts()
		case phaseFactorBase:
			res, next = s.initFactorBase()
		case phaseCollect:
			next, err = s.collect(ctx)
		case phaseGrow:
			res, next, err = s.grow()
		case phaseSolve:
			res, next, err = s.solve(ctx)
		case phaseExpand:
			next = s.expand()
		}
		if err != nil {
			s.cfg.emit(Event{Kind: EventFailed, N: s.n.String(), Round: s.round, BaseSize: s.baseLen(), Relations: len(s.rels), Error: err.Error()})
			return nil, err
		}
		if res != nil {
			s.cfg.emit(Event{
				Kind: EventSplit, N: s.n.String(), Round: s.round, BaseSize: s.baseLen(), Relations: len(s.rels),
				Factor: res.P.String(), Cofactor: res.Q.String(), Method: res.Method,
			})
			return res, nil
		}
	}
}

func (s *splitter) baseLen() int {
	if s.fb == nil {
		return 0
	}
	return s.fb.Len()
}

func (s *splitter) result(p *big.Int, method string) *SplitResult {
	res := &SplitResult{
		N:             s.n,
		P:             p,
		Q:             new(big.Int).Quo(s.n, p),
		Method:        method,
		Rounds:        s.round,
		RelationCount: len(s.rels),
		Relations:     s.rels,
	}
	if res.P.Cmp(res.Q) > 0 {
		res.P, res.Q = res.Q, res.P
	}
	if s.fb != nil {
		res.BaseSize = s.fb.Len()
		res.MaxPrime = s.fb.Max()
		res.Base = append([]int64(nil), s.fb.Primes()...)
	}
	return res
}

// checkShortcuts handles the inputs a sieve cannot: even n and perfect powers.
func (s *splitter) checkShortcuts() (*SplitResult, phase) {
	if s.n.Bit(0) == 0 {
		return s.result(big.NewInt(2), MethodEven), phaseFactorBase
	}
	if r, _, ok := numtheory.PerfectPower(s.n); ok {
		return s.result(r, MethodPerfectPower), phaseFactorBase
	}
	return nil, phaseFactorBase
}

func (s *splitter) initFactorBase() (*SplitResult, phase) {
	if s.cfg.BaseSize > 0 {
		s.fb = NewFactorBaseCount(s.n, s.cfg.BaseSize)
	} else {
		s.fb = NewFactorBaseBound(s.n, s.cfg.Bound)
	}
	s.want = s.fb.Len() + 1
	s.cfg.emit(Event{Kind: EventFactorBase, N: s.n.String(), BaseSize: s.fb.Len(), MaxPrime: s.fb.Max(), Wanted: s.want})
	if p, ok := s.fb.Divisor(); ok {
		return s.result(big.NewInt(p), MethodBaseDivisor), phaseCollect
	}
	return nil, phaseCollect
}

func (s *splitter) budgetErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchBudgetExhausted, err)
	}
	if s.round >= s.cfg.MaxRounds {
		return s.exhausted("%d rounds without a split", s.round)
	}
	return nil
}

// exhausted wraps ErrSearchBudgetExhausted and the last recoverable error.
func (s *splitter) exhausted(format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrSearchBudgetExhausted}, args...)...)
	if s.last != nil {
		err = fmt.Errorf("%w (last: %w)", err, s.last)
	}
	return err
}

func (s *splitter) collect(ctx context.Context) (phase, error) {
	if err := s.budgetErr(ctx); err != nil {
		return phaseCollect, err
	}
	s.round++
	rels, cur, err := s.sieve.Collect(ctx, s.n, s.fb, s.cursor, s.want-len(s.rels))
	s.cursor = cur
	s.rels = append(s.rels, rels...)
	s.cfg.emit(Event{
		Kind: EventRelations, N: s.n.String(), Round: s.round, BaseSize: s.fb.Len(), MaxPrime: s.fb.Max(),
		Relations: len(s.rels), Wanted: s.want, Scanned: s.cursor.Scanned(),
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrInsufficientRelations):
		s.last = err
	case ctx.Err() != nil:
		return phaseCollect, fmt.Errorf("%w: %w", ErrSearchBudgetExhausted, ctx.Err())
	default:
		return phaseCollect, err
	}
	if len(s.rels) < s.want {
		return phaseGrow, nil
	}
	return phaseSolve, nil
}

func (s *splitter) grow() (*SplitResult, phase, error) {
	room := s.cfg.MaxBaseSize - s.fb.Len()
	if room <= 0 {
		return nil, phaseGrow, s.exhausted("factor base reached its cap of %d", s.cfg.MaxBaseSize)
	}
	k := s.cfg.GrowBy
	if k <= 0 {
		k = max(1, s.fb.Len()/10)
	}
	added := s.fb.Grow(min(k, room))
	s.want = s.fb.Len() + 1
	s.cfg.emit(Event{Kind: EventGrowBase, N: s.n.String(), Round: s.round, BaseSize: s.fb.Len(), MaxPrime: s.fb.Max(), Relations: len(s.rels), Wanted: s.want})
	for _, p := range added {
		if numtheory.Residue(s.n, p) == 0 && big.NewInt(p).Cmp(s.n) != 0 {
			return s.result(big.NewInt(p), MethodBaseDivisor), phaseCollect, nil
		}
	}
	return nil, phaseCollect, nil
}

// solve tries the nullspace basis first and then pairwise combinations of it.
func (s *splitter) solve(ctx context.Context) (*SplitResult, phase, error) {
	em, pm := BuildMatrix(s.fb, s.rels)
	var basis [][]int
	for dep := range Dependencies(pm) {
		basis = append(basis, dep)
	}
	s.cfg.emit(Event{Kind: EventDependencies, N: s.n.String(), Round: s.round, BaseSize: s.fb.Len(), Relations: len(s.rels), Dependencies: len(basis)})

	tried := 0
	try := func(dep []int) *SplitResult {
		tried++
		c := Combine(s.n, s.fb, em, s.rels, dep)
		p, _, ok := c.Factor(s.n)
		if !ok {
			return nil
		}
		res := s.result(p, MethodSieve)
		res.Dependency = dep
		return res
	}
	for _, dep := range basis {
		if err := ctx.Err(); err != nil {
			return nil, phaseSolve, fmt.Errorf("%w: %w", ErrSearchBudgetExhausted, err)
		}
		if res := try(dep); res != nil {
			return res, phaseSolve, nil
		}
	}
	for dep := range Combinations(basis, s.cfg.MaxCombinations) {
		if err := ctx.Err(); err != nil {
			return nil, phaseSolve, fmt.Errorf("%w: %w", ErrSearchBudgetExhausted, err)
		}
		if res := try(dep); res != nil {
			return res, phaseSolve, nil
		}
	}

	s.last = fmt.Errorf("%w: %d dependencies over %d relations", ErrNoNontrivialCongruence, tried, len(s.rels))
	s.cfg.emit(Event{Kind: EventTrivial, N: s.n.String(), Round: s.round, BaseSize: s.fb.Len(), Relations: len(s.rels), Dependencies: len(basis), Tried: tried})
	return nil, phaseExpand, nil
}

func (s *splitter) expand() phase {
	extra := s.cfg.ExtraRelations
	if extra <= 0 {
		extra = max(5, s.fb.Len()/10)
	}
	s.want = len(s.rels) + extra
	s.cfg.emit(Event{Kind: EventExpand, N: s.n.String(), Round: s.round, BaseSize: s.fb.Len(), Relations: len(s.rels), Wanted: s.want})
	return phaseCollect
}
