package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/release"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/setup"
)

const name = "cortx-prvsnr-status"

// ReleaseSource provides release information to the API.
type ReleaseSource interface {
	Installed() (*release.Info, error)
	UpgradeReleases() ([]string, error)
}

// ResourceSource provides node resource reports to the API.
type ResourceSource interface {
	ShowResources(ctx context.Context, manifest, health bool) (*setup.Resources, error)
}

// Server is the provisioner status HTTP server.
type Server struct {
	cfg       *Config
	releases  ReleaseSource
	resources ResourceSource
	limiter   *rate.Limiter

	httpSrv *http.Server

	mu    sync.RWMutex
	ready bool
}

// Option configures a Server.
type Option func(*Server)

// WithReleaseSource attaches the release information backend.
func WithReleaseSource(src ReleaseSource) Option {
	return func(s *Server) {
		s.releases = src
	}
}

// WithResourceSource attaches the node resource backend.
func WithResourceSource(src ResourceSource) Option {
	return func(s *Server) {
		s.resources = src
	}
}

// New creates a status server. A nil config uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:     cfg,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// SetReady flips the readiness probe.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("status server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	s.SetReady(true)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}
