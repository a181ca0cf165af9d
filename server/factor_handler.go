package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nxtrace/qsieve/qs"
	"github.com/nxtrace/qsieve/util"
)

const (
	maxDigits  = 40
	maxTimeout = 2 * time.Minute
)

type factorRequest struct {
	N           string `json:"n"`
	Mode        string `json:"mode"`
	Bound       int64  `json:"bound"`
	BaseSize    int    `json:"base_size"`
	SearchLimit int    `json:"search_limit"`
	Interval    int    `json:"interval"`
	TimeoutMs   int    `json:"timeout_ms"`
}

type factorExecution struct {
	Req    factorRequest
	N      *big.Int
	Config qs.Config
}

type primePower struct {
	Prime string `json:"prime"`
	Exp   int    `json:"exp"`
}

type splitResponse struct {
	N         string `json:"n"`
	P         string `json:"p"`
	Q         string `json:"q"`
	Method    string `json:"method"`
	Rounds    int    `json:"rounds"`
	BaseSize  int    `json:"base_size"`
	Relations int    `json:"relations"`
}

type factorResponse struct {
	N          string          `json:"n"`
	Factors    []string        `json:"factors"`
	Powers     []primePower    `json:"powers"`
	Splits     []splitResponse `json:"splits"`
	Mode       qs.Mode         `json:"mode"`
	DurationMs int64           `json:"duration_ms"`
}

// prepareFactor validates req and merges it over the service defaults. The
// int is the HTTP status to answer with when err is set.
func (s *service) prepareFactor(req factorRequest) (*factorExecution, int, error) {
	exec := &factorExecution{Req: req, Config: s.base}

	raw := strings.TrimSpace(req.N)
	n, err := util.ParseBigInt(raw)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("n: %w", err)
	}
	if n.Cmp(big.NewInt(1)) <= 0 {
		return nil, http.StatusBadRequest, errors.New("n must be greater than 1")
	}
	if digits := len(n.String()); digits > maxDigits {
		return nil, http.StatusBadRequest, fmt.Errorf("n has %d digits, the limit is %d", digits, maxDigits)
	}
	exec.N = n

	if req.Mode != "" {
		mode, ok := qs.ParseMode(strings.ToLower(strings.TrimSpace(req.Mode)))
		if !ok {
			return nil, http.StatusBadRequest, fmt.Errorf("unsupported mode %q", req.Mode)
		}
		exec.Config.Mode = mode
	}
	if req.Bound < 0 || req.BaseSize < 0 || req.SearchLimit < 0 || req.Interval < 0 || req.TimeoutMs < 0 {
		return nil, http.StatusBadRequest, errors.New("tuning parameters must not be negative")
	}
	if req.Bound > 0 {
		exec.Config.Bound = req.Bound
		exec.Config.BaseSize = 0
	}
	if req.BaseSize > 0 {
		exec.Config.BaseSize = req.BaseSize
	}
	if req.SearchLimit > 0 {
		exec.Config.SearchLimit = req.SearchLimit
	}
	if req.Interval > 0 {
		exec.Config.Interval = req.Interval
	}
	if req.TimeoutMs > 0 {
		exec.Config.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	if exec.Config.Timeout <= 0 || exec.Config.Timeout > maxTimeout {
		exec.Config.Timeout = maxTimeout
	}
	return exec, 0, nil
}

// runFactor holds a limiter slot for the duration of the factorization.
func (s *service) runFactor(ctx context.Context, exec *factorExecution) (*factorResponse, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for a free worker: %w", qs.ErrSearchBudgetExhausted, err)
	}
	defer s.limiter.Finished()

	start := time.Now()
	f, err := qs.Factor(ctx, exec.N, exec.Config)
	if err != nil {
		return nil, err
	}
	return buildFactorResponse(f, exec.Config.Mode, time.Since(start)), nil
}

func buildFactorResponse(f *qs.Factorization, mode qs.Mode, elapsed time.Duration) *factorResponse {
	resp := &factorResponse{
		N:          f.N.String(),
		Factors:    make([]string, 0, len(f.Factors)),
		Mode:       mode,
		DurationMs: elapsed.Milliseconds(),
	}
	for _, p := range f.Factors {
		resp.Factors = append(resp.Factors, p.String())
	}
	for _, pp := range f.Powers() {
		resp.Powers = append(resp.Powers, primePower{Prime: pp.Prime.String(), Exp: pp.Exp})
	}
	for _, s := range f.Splits {
		resp.Splits = append(resp.Splits, splitResponse{
			N:         s.N.String(),
			P:         s.P.String(),
			Q:         s.Q.String(),
			Method:    s.Method,
			Rounds:    s.Rounds,
			BaseSize:  s.BaseSize,
			Relations: s.RelationCount,
		})
	}
	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, qs.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, qs.ErrSearchBudgetExhausted):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *service) factorHandler(c *gin.Context) {
	var req factorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "details": err.Error()})
		return
	}

	exec, statusCode, err := s.prepareFactor(req)
	if err != nil {
		log.Printf("[deploy] prepare factor failed n=%s error=%v", sanitizeLogParam(req.N), err)
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[deploy] factor request n=%s mode=%s bound=%d base_size=%d", exec.N, exec.Config.Mode, exec.Config.Bound, exec.Config.BaseSize)
	resp, err := s.runFactor(c.Request.Context(), exec)
	if err != nil {
		log.Printf("[deploy] factor failed n=%s error=%v", exec.N, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	log.Printf("[deploy] factor completed n=%s factors=%d duration=%dms", exec.N, len(resp.Factors), resp.DurationMs)
	c.JSON(http.StatusOK, resp)
}
