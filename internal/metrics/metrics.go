package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Payment store
	PaymentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_created_total",
			Help: "Payment records created",
		},
		[]string{"method"}, // bank|crypto
	)
	PaymentsVerified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_verified_total",
			Help: "Successful payment verifications",
		},
	)
	// Verifications that had to synthesize a record for an unknown id.
	VerifySynthesized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_verify_synthesized_total",
			Help: "Verifications that upserted a record for an unknown id",
		},
	)

	// Checkout flow
	CheckoutsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkouts_expired_total",
			Help: "Checkout sessions that ran the countdown to zero",
		},
	)

	// Offline queue
	OfflineQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "offline_queue_depth",
			Help: "Currently queued offline actions",
		},
	)
	OfflineReplayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_actions_replayed_total",
			Help: "Offline actions replayed into the store",
		},
		[]string{"type", "outcome"},
	)

	// Exchange rate
	RateRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exchange_rate_refreshes_total",
			Help: "Exchange rate refreshes",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(PaymentsCreated)
	prometheus.MustRegister(PaymentsVerified)
	prometheus.MustRegister(VerifySynthesized)
	prometheus.MustRegister(CheckoutsExpired)
	prometheus.MustRegister(OfflineQueueDepth)
	prometheus.MustRegister(OfflineReplayed)
	prometheus.MustRegister(RateRefreshes)
	prometheus.MustRegister(WorkerQueueDepth)
}
