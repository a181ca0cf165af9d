package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nxtrace/qsieve/qs"
)

var supportedModes = []string{string(qs.ModeSieve), string(qs.ModeTrial)}

func (s *service) optionsHandler(c *gin.Context) {
	running, waiting := s.limiter.Stats()
	c.JSON(http.StatusOK, gin.H{
		"modes": supportedModes,
		"defaultOptions": gin.H{
			"mode":         s.base.Mode,
			"bound":        s.base.Bound,
			"base_size":    s.base.BaseSize,
			"search_limit": s.base.SearchLimit,
			"interval":     s.base.Interval,
			"timeout_ms":   s.base.Timeout.Milliseconds(),
		},
		"limits": gin.H{
			"max_digits":     maxDigits,
			"max_timeout_ms": maxTimeout.Milliseconds(),
			"max_jobs":       s.limiter.Capacity(),
			"running_jobs":   running,
			"waiting_jobs":   waiting,
		},
	})
}
