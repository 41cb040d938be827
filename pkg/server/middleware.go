package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// RequestIDHeader carries the request id back to the caller.
const RequestIDHeader = "X-Request-ID"

// withMiddleware wraps an API handler with request id assignment, rate
// limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, requestID))

		if !s.limiter.Allow() {
			WriteError(w, r, http.StatusTooManyRequests,
				prvsnrerrors.ErrCodeRateLimit, "rate limit exceeded", true, nil)
			return
		}

		start := time.Now()
		next(w, r)
		slog.Debug("request handled",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", requestID,
			"duration", time.Since(start).String(),
		)
	}
}
