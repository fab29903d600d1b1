package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finchat_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finchat_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	chatOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finchat_chat_outcomes_total",
			Help: "Chat pipeline outcomes by kind.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDurationSeconds, chatOutcomesTotal)
}

// RecordChatOutcome counts a finished chat request. Outcome is one of
// "answered", "refused", "transport_error", "query_error", "not_found",
// "internal_error".
func RecordChatOutcome(outcome string) {
	chatOutcomesTotal.WithLabelValues(outcome).Inc()
}
