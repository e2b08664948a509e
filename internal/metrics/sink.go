package metrics

import "github.com/cuemby/ironforged/internal/supervisor"

// Sink adapts the package-level collectors to supervisor.MetricsSink so
// every Bus can report into the same process-wide registry without
// importing the metrics package's naming directly.
type Sink struct{}

// NewSink returns the process-wide metrics sink.
func NewSink() Sink { return Sink{} }

func (Sink) BusEventDropped(appID string, kind supervisor.Kind) {
	BusEventsDropped.WithLabelValues(appID, kind.String()).Inc()
}

func (Sink) BusEventEmitted(appID string, kind supervisor.Kind) {
	BusEventsEmitted.WithLabelValues(kind.String()).Inc()
}
