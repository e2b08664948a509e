// Package metrics exposes the supervisor core's observability surface
// as Prometheus collectors. §4.1 requires that broadcast-channel drops
// be surfaced in metrics; this package is the concrete sink the
// supervisor.Bus reports into.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Only BusEventsEmitted and BusEventsDropped are updated, through Sink.
// The other collectors are registered and exported, but nothing in this
// repository updates them, so they keep their initial values.
var (
	ApplicationsRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ironforged_applications_running",
			Help: "Number of applications currently in the Running state",
		},
	)

	ApplicationStarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironforged_application_starts_total",
			Help: "Total number of successful application starts, including restarts",
		},
		[]string{"name"},
	)

	ApplicationSpawnFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironforged_application_spawn_failures_total",
			Help: "Total number of creation requests that failed to spawn",
		},
		[]string{"name"},
	)

	BusEventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironforged_bus_events_emitted_total",
			Help: "Total number of events successfully delivered to an asynchronous subscriber",
		},
		[]string{"kind"},
	)

	BusEventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironforged_bus_events_dropped_total",
			Help: "Total number of events dropped because an asynchronous subscriber's buffer was full",
		},
		[]string{"application_id", "kind"},
	)

	SyncHandlerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ironforged_sync_handler_duration_seconds",
			Help:    "Time the emitter spent awaiting synchronous handler dispatch",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	PersistenceFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ironforged_persistence_failures_total",
			Help: "Total number of creation requests aborted by a persistence failure",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ApplicationsRunning,
		ApplicationStarts,
		ApplicationSpawnFailures,
		BusEventsEmitted,
		BusEventsDropped,
		SyncHandlerDuration,
		PersistenceFailures,
	)
}

// Handler returns the HTTP handler that serves the registered
// collectors in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
