package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "integrations_http_requests_total",
		Help: "HTTP requests served, by method and status.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "integrations_http_request_duration_seconds",
		Help:    "HTTP request latency, by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	flowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "integrations_oauth_flow_steps_total",
		Help: "OAuth flow steps, by provider, step and outcome.",
	}, []string{"provider", "step", "outcome"})
)
