// Package httpapi exposes the valuation engine as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/model"
)

// Valuer runs a parsed scenario through the pipeline
type Valuer interface {
	Run(ctx context.Context, sc model.Scenario) (*model.Report, error)
}

// Server serves the API until its context is cancelled
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig describes the API's dependencies
type ServerConfig struct {
	Addr        string
	Valuer      Valuer
	YearsToExit int
}

// NewServer builds the gin engine and registers every route
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Valuer == nil {
		return nil, errors.New("http api requires a valuer")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	return &Server{addr: cfg.Addr, router: newEngine(cfg)}, nil
}

func newEngine(cfg ServerConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewRouter(cfg.Valuer, cfg.YearsToExit).Register(router.Group("/api"))
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"dur", time.Since(start),
		).Debug("http request")
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Infof("foundervalue API listening on %s", s.addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
