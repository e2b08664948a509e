package supervisor

import (
	"context"
	"sync"

	"github.com/cuemby/ironforged/pkg/log"
)

// DefaultBusCapacity is the default bound on each asynchronous
// subscriber's event buffer, per §4.1. The specification treats this as
// a constant; Bus accepts a capacity override at construction, which is
// the compatible extension §9's open question anticipates.
const DefaultBusCapacity = 16

// MetricsSink receives bus telemetry. internal/metrics implements it;
// a nil sink is valid and simply discards observations.
type MetricsSink interface {
	BusEventDropped(appID string, kind Kind)
	BusEventEmitted(appID string, kind Kind)
}

type asyncSub struct {
	handler AsyncHandler
	ch      chan *Event
	spawned bool
}

// Bus is the per-application broadcast fabric of §4.1: a fan-out of
// events to a dynamic set of synchronous handlers (awaited by Emit) and
// asynchronous handlers (each with its own bounded, drop-when-full
// channel and consumption goroutine). Go has no single multi-reader
// broadcast channel, so unlike the source design's one tokio::broadcast
// channel, each async subscriber gets its own buffered channel; the
// observable semantics — bounded capacity, oldest-is-not-evicted but
// newest-is-dropped-when-full, and a terminal sentinel per subscriber —
// are identical.
type Bus struct {
	mu       sync.RWMutex
	sync     []SyncHandler
	async    []*asyncSub
	capacity int
	sink     MetricsSink
	ctx      context.Context
}

// NewBus creates an event bus with the given per-subscriber capacity.
// A capacity of 0 selects DefaultBusCapacity.
func NewBus(ctx context.Context, capacity int, sink MetricsSink) *Bus {
	if capacity <= 0 {
		capacity = DefaultBusCapacity
	}
	return &Bus{capacity: capacity, sink: sink, ctx: ctx}
}

// SubscribeSync appends a synchronous handler. Synchronous handlers are
// always active: Emit awaits every registered one before returning.
func (b *Bus) SubscribeSync(h SyncHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sync = append(b.sync, h)
}

// SubscribeAsync registers an asynchronous handler. If activateNow is
// true, its consumption goroutine is started immediately (the handler
// observes events from this moment on); otherwise it is queued and must
// be started later by Activate, matching §4.1's NotStarted deferral.
func (b *Bus) SubscribeAsync(h AsyncHandler, activateNow bool) {
	b.mu.Lock()
	sub := &asyncSub{handler: h, ch: make(chan *Event, b.capacity)}
	b.async = append(b.async, sub)
	if activateNow {
		sub.spawned = true
	}
	b.mu.Unlock()

	if activateNow {
		go b.runAsyncConsumer(sub)
	}
}

// Activate starts consumption goroutines for every asynchronous handler
// registered so far that has not yet been activated. Application calls
// this once from Initialize; it is idempotent.
func (b *Bus) Activate() {
	b.mu.Lock()
	var toStart []*asyncSub
	for _, sub := range b.async {
		if !sub.spawned {
			sub.spawned = true
			toStart = append(toStart, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range toStart {
		go b.runAsyncConsumer(sub)
	}
}

// Emit constructs no envelope of its own — callers build *Event with the
// App field populated — and delivers it to every subscriber. It blocks
// until every synchronous handler has returned; asynchronous handlers
// are merely handed the event (non-blocking, dropped if their buffer is
// full) and never awaited.
func (b *Bus) Emit(ctx context.Context, ev *Event) error {
	b.mu.RLock()
	syncHandlers := append([]SyncHandler(nil), b.sync...)
	asyncSubs := append([]*asyncSub(nil), b.async...)
	b.mu.RUnlock()

	appID := ev.App.ID().String()

	for _, sub := range asyncSubs {
		if !sub.spawned {
			continue
		}
		select {
		case sub.ch <- ev:
			if b.sink != nil {
				b.sink.BusEventEmitted(appID, ev.Kind)
			}
		default:
			if b.sink != nil {
				b.sink.BusEventDropped(appID, ev.Kind)
			}
			log.WithComponent("bus").Warn().
				Str("application_id", appID).
				Str("event", ev.Kind.String()).
				Msg("async subscriber buffer full, dropping event")
		}
	}

	if len(syncHandlers) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(len(syncHandlers))
	for _, h := range syncHandlers {
		go func(h SyncHandler) {
			defer wg.Done()
			if err := h.HandleSync(ctx, ev); err != nil {
				log.WithComponent("bus").Warn().
					Err(err).
					Str("application_id", appID).
					Str("event", ev.Kind.String()).
					Msg("synchronous handler failed")
			}
		}(h)
	}
	wg.Wait()
	return nil
}

// Close sends the terminal sentinel to every activated asynchronous
// subscriber, asking its consumption goroutine to exit. The send blocks
// (rather than dropping) so the sentinel can never be lost to buffer
// pressure, which would otherwise strand a consumption goroutine.
func (b *Bus) Close() {
	b.mu.RLock()
	subs := append([]*asyncSub(nil), b.async...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if sub.spawned {
			sub.ch <- nil
		}
	}
}

func (b *Bus) runAsyncConsumer(sub *asyncSub) {
	for ev := range sub.ch {
		if ev == nil {
			return
		}
		go func(ev *Event) {
			if err := sub.handler.HandleAsync(b.ctx, ev); err != nil {
				log.WithComponent("bus").Warn().
					Err(err).
					Str("application_id", ev.App.ID().String()).
					Str("event", ev.Kind.String()).
					Msg("asynchronous handler failed")
			}
		}(ev)
	}
}
