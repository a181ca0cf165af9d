package qs

import (
	"math"
	"math/big"
	"runtime"
	"time"
)

// Mode selects the relation sieve.
type Mode string

const (
	// ModeSieve sieves intervals with precomputed square roots.
	ModeSieve Mode = "sieve"
	// ModeTrial trial divides each candidate.
	ModeTrial Mode = "trial"
)

// ParseMode accepts "sieve" and "trial"; empty means ModeSieve.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeSieve:
		return ModeSieve, true
	case ModeTrial, "sieveless":
		return ModeTrial, true
	}
	return ModeSieve, false
}

// Config tunes one factoring run. Zero fields take defaults derived from n,
// see WithDefaults.
type Config struct {
	Mode Mode `json:"mode"`
	// Bound selects bound mode: the initial base is every admissible prime <= Bound.
	Bound int64 `json:"bound"`
	// BaseSize selects count mode when positive: the first BaseSize admissible primes.
	BaseSize int `json:"base_size"`
	// GrowBy is the number of primes appended after an unproductive round.
	GrowBy int `json:"grow_by"`
	// MaxBaseSize caps growth; reaching it is a permanent failure.
	MaxBaseSize int `json:"max_base_size"`
	// SearchLimit is the candidates per round in ModeTrial.
	SearchLimit int `json:"search_limit"`
	// Interval is the x-values sieved per round in ModeSieve.
	Interval int `json:"interval"`
	// ExtraRelations is requested on top of the held ones when every
	// dependency turned out trivial.
	ExtraRelations int `json:"extra_relations"`
	// MaxRounds bounds the collection rounds of a single split.
	MaxRounds int `json:"max_rounds"`
	// MaxCombinations bounds the pairwise dependency combinations tried per round.
	MaxCombinations int `json:"max_combinations"`
	// Timeout bounds a whole Factor call; zero means no deadline.
	Timeout time.Duration `json:"timeout"`
	Workers int           `json:"workers"`

	// Observer receives progress events. Factor may call it from several
	// goroutines at once.
	Observer func(Event) `json:"-"`
}

const (
	minBound       = 30
	defaultRounds  = 500
	defaultMaxBase = 1 << 14
	defaultCombos  = 256
	maxInterval    = 1 << 20
)

// HeuristicBound is exp(sqrt(ln n · ln ln n)/2), the usual smoothness bound
// for a single-polynomial sieve, and at least 30.
func HeuristicBound(n *big.Int) int64 {
	ln := bigLog(n)
	if ln <= 1 {
		return minBound
	}
	b := math.Exp(math.Sqrt(ln*math.Log(ln)) / 2)
	if b < minBound || math.IsNaN(b) {
		return minBound
	}
	if b > 1<<31 {
		return 1 << 31
	}
	return int64(b)
}

func bigLog(n *big.Int) float64 {
	if n.Sign() <= 0 {
		return 0
	}
	// ln n = ln(mant) + exp·ln 2 with mant in [0.5, 1)
	var mant big.Float
	exp := new(big.Float).SetInt(n).MantExp(&mant)
	f, _ := mant.Float64()
	return math.Log(f) + float64(exp)*math.Ln2
}

// WithDefaults fills the zero fields of c for target n.
func (c Config) WithDefaults(n *big.Int) Config {
	if c.Mode == "" {
		c.Mode = ModeSieve
	}
	if c.Bound <= 0 && c.BaseSize <= 0 {
		c.Bound = HeuristicBound(n)
	}
	scale := c.Bound
	if c.BaseSize > 0 {
		scale = int64(c.BaseSize) * 4
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = int(min(max(50, scale*20), maxInterval))
	}
	if c.Interval <= 0 {
		c.Interval = int(min(max(1000, scale*40), maxInterval))
	}
	if c.MaxBaseSize <= 0 {
		c.MaxBaseSize = defaultMaxBase
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = defaultRounds
	}
	if c.MaxCombinations <= 0 {
		c.MaxCombinations = defaultCombos
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

func (c Config) emit(ev Event) {
	if c.Observer != nil {
		c.Observer(ev)
	}
}
