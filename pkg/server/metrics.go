package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "costpilot_http_requests_total",
		Help: "HTTP requests by path and status code.",
	}, []string{"path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "costpilot_http_request_duration_seconds",
		Help:    "HTTP request latency by path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	rateLimitRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costpilot_rate_limit_rejects_total",
		Help: "Requests rejected by the rate limiter.",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costpilot_usage_cache_hits_total",
		Help: "Cluster usage requests served from cache.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "costpilot_usage_cache_misses_total",
		Help: "Cluster usage requests that triggered collection.",
	})
)
