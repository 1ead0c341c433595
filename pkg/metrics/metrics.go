package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projman_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// TokenEmails counts side-channel token emails by kind (verification|reset)
	// and result (sent|failed|disabled). Dispatch is best-effort, so failures
	// surface here rather than in request outcomes.
	TokenEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projman_token_emails_total",
			Help: "Total number of verification and reset emails dispatched",
		},
		[]string{"kind", "result"},
	)

	// ProjectOperations counts project and item mutations by entity and action.
	ProjectOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projman_project_operations_total",
			Help: "Total number of project and project item operations",
		},
		[]string{"entity", "action"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "projman_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
