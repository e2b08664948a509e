package supervisor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// StateKind tags an application's position in the NotStarted -> Running
// -> Stopped lifecycle of §3, without exposing the state's private
// payload (the live Harness, or the terminal Result) to handlers.
type StateKind int

const (
	NotStarted StateKind = iota
	Running
	Stopped
)

func (k StateKind) String() string {
	switch k {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// state is the private, mutable payload behind an Application's
// StateKind: a live Harness while Running, the terminal Result once
// Stopped, and nothing while NotStarted.
type state struct {
	kind    StateKind
	harness *Harness
	result  *Result
}

// Application is the supervised unit of §4.3: an identity, a launch
// command, a working directory derived from its name and identifier,
// the event bus its handlers are attached to, and the single piece of
// mutable state describing where it is in its lifecycle.
//
// Handlers only ever see an Application through the ApplicationRef
// interface, which exposes RunState() but not Start or SubmitInput —
// a handler cannot drive the very application whose events it reacts
// to, which is what lets built-in handlers like the registry remover
// run without risking reentrant restarts.
type Application struct {
	id         ID
	name       string
	cmd        Command
	workingDir string
	prepare    func(workingDir string) error

	bus *Bus

	mu          sync.Mutex
	initialized bool
	st          state

	group *errgroup.Group
}

// NewApplication constructs an application in the NotStarted state. Its
// working directory is "{baseDir}/{name}_{id}", per §6's layout. prepare
// may be nil; if set, Initialize calls it once the working directory
// exists. The bus is owned exclusively by this application; nothing
// else writes to it.
func NewApplication(id ID, name string, cmd Command, baseDir string, prepare func(string) error, bus *Bus) *Application {
	return &Application{
		id:         id,
		name:       name,
		cmd:        cmd,
		workingDir: filepath.Join(baseDir, fmt.Sprintf("%s_%s", name, id)),
		prepare:    prepare,
		bus:        bus,
		st:         state{kind: NotStarted},
	}
}

func (a *Application) ID() ID           { return a.id }
func (a *Application) Name() string     { return a.name }
func (a *Application) Command() Command { return a.cmd }

// WorkingDir returns the directory the child is launched in and where
// its log file lives.
func (a *Application) WorkingDir() string { return a.workingDir }

func (a *Application) RunState() StateKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st.kind
}

// Result returns the terminal outcome once the application has stopped,
// and false otherwise.
func (a *Application) Result() (*Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.st.kind != Stopped {
		return nil, false
	}
	return a.st.result, true
}

// Bus returns the application's event bus, for callers that need to
// register additional handlers before Initialize is called.
func (a *Application) Bus() *Bus { return a.bus }

// Initialize ensures the working directory exists and activates every
// asynchronous handler registered on the bus so far. It is idempotent:
// repeated calls neither recreate the directory destructively nor
// re-activate already-running consumption goroutines (Bus.Activate is
// itself idempotent).
func (a *Application) Initialize() error {
	a.mu.Lock()
	a.initialized = true
	a.mu.Unlock()

	if err := os.MkdirAll(a.workingDir, 0o755); err != nil {
		return fmt.Errorf("supervisor: create working directory: %w", err)
	}
	if a.prepare != nil {
		if err := a.prepare(a.workingDir); err != nil {
			return fmt.Errorf("supervisor: prepare working directory: %w", err)
		}
	}
	a.bus.Activate()
	return nil
}

// Start dispatches on the current run state, per §4.3:
//   - NotStarted: initializes, then launches the child and transitions
//     to Running.
//   - Running: a no-op; returns nil without emitting another Start.
//   - Stopped: launches the child again (restart); the prior result
//     becomes unreachable once overwritten.
func (a *Application) Start(ctx context.Context) error {
	a.mu.Lock()
	switch a.st.kind {
	case Running:
		a.mu.Unlock()
		return nil
	case NotStarted:
		initialized := a.initialized
		a.mu.Unlock()
		if !initialized {
			if err := a.Initialize(); err != nil {
				return err
			}
		}
	default:
		a.mu.Unlock()
	}

	h, err := Launch(a.cmd, a.workingDir)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.st = state{kind: Running, harness: h}
	a.mu.Unlock()

	if err := a.bus.Emit(ctx, &Event{App: a, Kind: KindStart}); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	a.mu.Lock()
	a.group = g
	a.mu.Unlock()

	g.Go(func() error {
		return a.pumpLines(gctx, h)
	})
	g.Go(func() error {
		return a.awaitEnd(gctx, h)
	})

	return nil
}

// Wait blocks until the background tasks started by the most recent
// Start have finished (the application has reached Stopped).
func (a *Application) Wait() error {
	a.mu.Lock()
	g := a.group
	a.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.Wait()
}

// SubmitInput forwards a line to the child's stdin, per §4.3's contract:
// it fails with ErrNotRunning outside the Running state, and with
// ErrInputChannelClosed if the harness's input channel is closed.
func (a *Application) SubmitInput(line string) error {
	a.mu.Lock()
	st := a.st
	a.mu.Unlock()

	if st.kind != Running {
		return &ErrInputNotDeliverable{ID: a.id, Cause: ErrNotRunning}
	}
	if err := st.harness.SubmitInput(line); err != nil {
		return &ErrInputNotDeliverable{ID: a.id, Cause: err}
	}
	return nil
}

func (a *Application) pumpLines(ctx context.Context, h *Harness) error {
	for line := range h.Lines() {
		if err := a.bus.Emit(ctx, &Event{App: a, Kind: KindPrint, Line: line}); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) awaitEnd(ctx context.Context, h *Harness) error {
	result := h.Wait()

	a.mu.Lock()
	a.st = state{kind: Stopped, result: result}
	a.mu.Unlock()

	return a.bus.Emit(ctx, &Event{App: a, Kind: KindEnd, Result: result})
}
