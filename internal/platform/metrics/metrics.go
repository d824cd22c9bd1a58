// Package metrics provides Prometheus observability for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gate outcome label values recorded by AuthDecisions.
const (
	OutcomeAdmin           = "admin"
	OutcomeOK              = "ok"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeUnavailable     = "unavailable"
	OutcomeInternal        = "internal"
)

// Metrics tracks request gate decisions and sync throughput.
type Metrics struct {
	AuthDecisions     *prometheus.CounterVec
	SyncDuration      prometheus.Histogram
	BarsUpserted      prometheus.Counter
	WatchlistsCreated prometheus.Counter
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		AuthDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockwatch_auth_decisions_total",
			Help: "Request gate decisions by outcome",
		}, []string{"outcome"}),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockwatch_sync_duration_seconds",
			Help:    "Duration of /stocks/sync operations including the provider fetch",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		BarsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockwatch_bars_upserted_total",
			Help: "Total number of price bars written by sync operations",
		}),
		WatchlistsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockwatch_watchlists_created_total",
			Help: "Total number of watchlists created",
		}),
	}
}

// RecordAuthDecision counts one request gate decision.
func (m *Metrics) RecordAuthDecision(outcome string) {
	m.AuthDecisions.WithLabelValues(outcome).Inc()
}

// ObserveSync records the duration of a sync operation and the number of
// bars it wrote. Call with time.Now() captured at the start.
func (m *Metrics) ObserveSync(start time.Time, bars int) {
	m.SyncDuration.Observe(time.Since(start).Seconds())
	m.BarsUpserted.Add(float64(bars))
}

// IncrementWatchlistsCreated records a successful watchlist creation.
func (m *Metrics) IncrementWatchlistsCreated() {
	m.WatchlistsCreated.Inc()
}
