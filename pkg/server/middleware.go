package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/costpilot/cost-copilot/pkg/logging"
)

const requestIDHeader = "X-Request-Id"

func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.requestIDMiddleware(
		s.rateLimitMiddleware(
			s.loggingMiddleware(handler),
		),
	)
}

// requestIDMiddleware accepts a caller-supplied request ID when it is
// a valid UUID, generating one otherwise.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate_limited",
				fmt.Sprintf("rate limit of %g req/s exceeded", s.config.RateLimit))
			return
		}
		next.ServeHTTP(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		requestDuration.WithLabelValues(r.URL.Path).Observe(duration.Seconds())
		requestsTotal.WithLabelValues(r.URL.Path, fmt.Sprintf("%d", recorder.status)).Inc()

		logging.Debug("request", map[string]interface{}{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    recorder.status,
			"duration":  duration.String(),
			"requestID": recorder.Header().Get(requestIDHeader),
		})
	}
}
