package supervisor

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeApplicationRef struct {
	id ID
}

func (f fakeApplicationRef) ID() ID               { return f.id }
func (f fakeApplicationRef) Name() string         { return "fake" }
func (f fakeApplicationRef) Command() Command     { return Command{} }
func (f fakeApplicationRef) WorkingDir() string   { return "" }
func (f fakeApplicationRef) RunState() StateKind  { return Running }

func TestBusSyncHandlerIsAwaitedBeforeEmitReturns(t *testing.T) {
	bus := NewBus(context.Background(), 4, nil)

	var mu sync.Mutex
	var observed []Kind
	bus.SubscribeSync(SyncHandlerFunc(func(ctx context.Context, ev *Event) error {
		mu.Lock()
		observed = append(observed, ev.Kind)
		mu.Unlock()
		return nil
	}))

	ref := fakeApplicationRef{id: NewID()}
	if err := bus.Emit(context.Background(), &Event{App: ref, Kind: KindStart}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(observed) != 1 || observed[0] != KindStart {
		t.Fatalf("expected [Start] observed synchronously, got %v", observed)
	}
}

func TestBusAsyncHandlerDropsWhenBufferFull(t *testing.T) {
	bus := NewBus(context.Background(), 1, nil)

	release := make(chan struct{})
	var processed int32
	var mu sync.Mutex
	bus.SubscribeAsync(AsyncHandlerFunc(func(ctx context.Context, ev *Event) error {
		<-release
		mu.Lock()
		processed++
		mu.Unlock()
		return nil
	}), true)

	ref := fakeApplicationRef{id: NewID()}
	for i := 0; i < 5; i++ {
		if err := bus.Emit(context.Background(), &Event{App: ref, Kind: KindPrint}); err != nil {
			t.Fatalf("emit %d: %v", i, err)
		}
	}

	close(release)
	bus.Close()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	got := processed
	mu.Unlock()
	if got >= 5 {
		t.Fatalf("expected some events dropped under a capacity-1 buffer, processed %d of 5", got)
	}
}

func TestBusCloseReturnsWithActiveAsyncSubscriber(t *testing.T) {
	bus := NewBus(context.Background(), 4, nil)

	done := make(chan struct{})
	bus.SubscribeAsync(AsyncHandlerFunc(func(ctx context.Context, ev *Event) error {
		return nil
	}), true)

	go func() {
		bus.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return within a second")
	}
}

func TestBusEmitWithNoSubscribersSucceeds(t *testing.T) {
	bus := NewBus(context.Background(), 4, nil)
	ref := fakeApplicationRef{id: NewID()}
	if err := bus.Emit(context.Background(), &Event{App: ref, Kind: KindStart}); err != nil {
		t.Fatalf("expected emit with zero subscribers to succeed, got %v", err)
	}
}
