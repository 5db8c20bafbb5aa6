// Package server exposes the estimator over a read-only JSON API for
// the dashboard. No mutation endpoints; every response is derived from
// the usage source and the rate card.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/costpilot/cost-copilot/pkg/datasource"
	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/logging"
	"github.com/costpilot/cost-copilot/pkg/models"
)

// Config holds server configuration.
type Config struct {
	ListenAddr     string
	CacheTTL       time.Duration
	RateLimit      float64
	RateLimitBurst int
	HoursPerMonth  float64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 30 * time.Second
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 10
	}
	if c.RateLimitBurst < 1 {
		c.RateLimitBurst = 20
	}
	if c.HoursPerMonth <= 0 {
		c.HoursPerMonth = estimator.DefaultHoursPerMonth
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		// Collection against a slow cluster can take a while.
		c.WriteTimeout = 60 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Server serves cost estimates over HTTP.
type Server struct {
	config  Config
	card    models.RateCard
	source  datasource.UsageSource
	limiter *rate.Limiter
	cache   *usageCache
}

// New creates a server around a usage source and a resolved rate card.
func New(config Config, card models.RateCard, source datasource.UsageSource) *Server {
	config.applyDefaults()
	return &Server{
		config:  config,
		card:    card,
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst),
		cache:   newUsageCache(config.CacheTTL),
	}
}

// Handler builds the route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/namespaces", s.withMiddleware(s.handleNamespaces))
	mux.HandleFunc("GET /api/v1/namespaces/{ns}/cost", s.withMiddleware(s.handleNamespaceCost))
	mux.HandleFunc("GET /api/v1/cluster/cost", s.withMiddleware(s.handleClusterCost))

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", map[string]interface{}{"addr": s.config.ListenAddr})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	logging.Info("server shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if !s.source.IsAvailable(r.Context()) {
		writeError(w, http.StatusServiceUnavailable, "source_unavailable",
			fmt.Sprintf("usage source %s is not available", s.source.Name()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "source": s.source.Name()})
}

func (s *Server) handleNamespaceCost(w http.ResponseWriter, r *http.Request) {
	namespace := r.PathValue("ns")

	usage, err := s.source.NamespaceUsage(r.Context(), namespace)
	if err != nil {
		writeError(w, http.StatusBadGateway, "collection_failed", err.Error())
		return
	}

	breakdown, err := estimator.EstimateCostHours(usage, s.card, s.config.HoursPerMonth)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"namespace": namespace,
		"usage":     usage,
		"breakdown": breakdown,
	})
}

func (s *Server) handleNamespaces(w http.ResponseWriter, r *http.Request) {
	usages, err := s.clusterUsages(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "collection_failed", err.Error())
		return
	}
	if len(usages) == 0 {
		writeError(w, http.StatusNotFound, "no_namespaces", "cluster has no namespaces")
		return
	}

	comparison, err := estimator.CompareNamespacesHours(usages, s.card, s.config.HoursPerMonth)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"namespaces":       comparison,
		"totalMonthlyCost": comparison.Total(),
	})
}

func (s *Server) handleClusterCost(w http.ResponseWriter, r *http.Request) {
	usages, err := s.clusterUsages(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "collection_failed", err.Error())
		return
	}

	bill, err := estimator.BuildClusterBill(usages, s.card, s.config.HoursPerMonth)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, bill)
}

// clusterUsages serves from the TTL cache when fresh, collecting
// otherwise. Collection hits every namespace, which is the expensive
// path this cache exists for.
func (s *Server) clusterUsages(ctx context.Context) (map[string]models.ResourceUsage, error) {
	if usages, ok := s.cache.get(); ok {
		cacheHits.Inc()
		return usages, nil
	}
	cacheMisses.Inc()

	names, err := s.source.ListNamespaces(ctx)
	if err != nil {
		return nil, err
	}

	usages := make(map[string]models.ResourceUsage, len(names))
	for _, name := range names {
		usage, err := s.source.NamespaceUsage(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("namespace %s: %w", name, err)
		}
		usages[name] = usage
	}

	s.cache.set(usages)
	return usages, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
