package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/serializer"
)

// setupRoutes configures all HTTP routes and middleware.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleDefault)

	// System endpoints, never rate limited.
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/release", s.withMiddleware(s.handleRelease))
	mux.HandleFunc("/v1/release/upgrades", s.withMiddleware(s.handleUpgrades))
	mux.HandleFunc("/v1/resources", s.withMiddleware(s.handleResources))

	return mux
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
	)

	resp := struct {
		Name      string   `json:"name" yaml:"name"`
		Ready     bool     `json:"ready" yaml:"ready"`
		Timestamp string   `json:"timestamp" yaml:"timestamp"`
		Routes    []string `json:"routes" yaml:"routes"`
	}{
		Name:      name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes: []string{
			"GET /v1/release",
			"GET /v1/release/upgrades",
			"GET /v1/resources",
			"GET /health",
			"GET /ready",
			"GET /metrics",
		},
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Timestamp: time.Now(),
			Reason:    "service is initializing",
		})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
	})
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed,
			prvsnrerrors.ErrCodeInvalidRequest, "method not allowed", false, nil)
		return
	}
	if s.releases == nil {
		WriteError(w, r, http.StatusServiceUnavailable,
			prvsnrerrors.ErrCodeInternal, "release backend is not configured", true, nil)
		return
	}

	info, err := s.releases.Installed()
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to read installed release", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, info)
}

func (s *Server) handleUpgrades(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed,
			prvsnrerrors.ErrCodeInvalidRequest, "method not allowed", false, nil)
		return
	}
	if s.releases == nil {
		WriteError(w, r, http.StatusServiceUnavailable,
			prvsnrerrors.ErrCodeInternal, "release backend is not configured", true, nil)
		return
	}

	releases, err := s.releases.UpgradeReleases()
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to list upgrade releases", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, struct {
		Releases []string `json:"releases" yaml:"releases"`
	}{Releases: releases})
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed,
			prvsnrerrors.ErrCodeInvalidRequest, "method not allowed", false, nil)
		return
	}
	if s.resources == nil {
		WriteError(w, r, http.StatusServiceUnavailable,
			prvsnrerrors.ErrCodeInternal, "resource backend is not configured", true, nil)
		return
	}

	manifest := r.URL.Query().Get("manifest") != "false"
	health := r.URL.Query().Get("health") != "false"

	res, err := s.resources.ShowResources(r.Context(), manifest, health)
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to collect node resources", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}
