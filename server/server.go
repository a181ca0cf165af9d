package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nxtrace/qsieve/parallel_limiter"
	"github.com/nxtrace/qsieve/qs"
)

const (
	defaultListenAddr = ":1080"
	defaultMaxJobs    = 4
)

type service struct {
	base    qs.Config
	limiter *parallel_limiter.ParallelLimiter
}

func newService(base qs.Config, maxJobs int) *service {
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobs
	}
	base.Observer = nil
	return &service{base: base, limiter: parallel_limiter.New(maxJobs)}
}

func newRouter(s *service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/api/options", s.optionsHandler)
	router.POST("/api/factor", s.factorHandler)
	router.GET("/ws/factor", s.factorWebsocketHandler)
	return router
}

// Run starts the Gin HTTP server exposing the factoring API. base supplies
// the tuning a request does not override; at most maxJobs factorizations
// run at once, the rest queue.
func Run(listenAddr string, base qs.Config, maxJobs int) error {
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(newService(base, maxJobs))

	srv := &http.Server{Addr: listenAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if strings.Contains(err.Error(), "address already in use") {
			return fmt.Errorf("listen %s: %w", listenAddr, err)
		}
		return err
	}

	return nil
}
