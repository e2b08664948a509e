package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cuemby/ironforged/internal/supervisor"
)

func TestSinkRecordsDroppedAndEmittedEvents(t *testing.T) {
	sink := NewSink()

	sink.BusEventDropped("app-1", supervisor.KindPrint)
	sink.BusEventEmitted("app-1", supervisor.KindPrint)

	if got := testutil.ToFloat64(BusEventsDropped.WithLabelValues("app-1", "Print")); got != 1 {
		t.Fatalf("expected 1 dropped event, got %v", got)
	}
	if got := testutil.ToFloat64(BusEventsEmitted.WithLabelValues("Print")); got != 1 {
		t.Fatalf("expected 1 emitted event, got %v", got)
	}
}
