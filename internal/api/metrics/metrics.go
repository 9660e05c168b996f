// Package metrics defines the custom Prometheus metrics for the StoreFlow
// order console. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time and are exposed by the local dashboard server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storeflow"

// APIRequestsTotal counts calls to the remote order API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "login", "list_orders")
//   - outcome: "ok", "timeout", "unauthorized", "server_error", "remote_error", "network_error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of remote API calls, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// APIRequestDuration measures remote API call latency end-to-end.
// Label:
//   - endpoint: logical endpoint name
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of remote API calls from request build to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// SessionVerificationsTotal counts startup token verifications.
// Label:
//   - result: "adopted" (profile restored), "rejected" (401/403, token
//     discarded), "deferred" (backend unreachable, token kept)
var SessionVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_verifications_total",
		Help:      "Total number of startup token verification attempts, by result.",
	},
	[]string{"result"},
)

// OrdersSubmittedTotal counts order form submissions.
// Label:
//   - outcome: "ok", "validation_error", "api_error"
var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of order form submissions, by outcome.",
	},
	[]string{"outcome"},
)
