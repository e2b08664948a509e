package supervisor

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuemby/ironforged/pkg/log"
)

// Registry is the process-wide map from application identifier to
// application of §4.4: it routes creation requests, serves lookups, and
// is the only writer of the map besides the built-in registry-remover
// handler it installs on every application it creates.
type Registry struct {
	mu   sync.RWMutex
	apps map[ID]*Application

	baseDir     string
	busCapacity int
	metrics     MetricsSink
	persistence Persistence
}

// NewRegistry constructs an empty registry. baseDir is the parent
// directory under which every application's working directory is
// created. persistence may be nil to skip the persistence collaborator
// entirely.
func NewRegistry(baseDir string, busCapacity int, metrics MetricsSink, persistence Persistence) *Registry {
	return &Registry{
		apps:        make(map[ID]*Application),
		baseDir:     baseDir,
		busCapacity: busCapacity,
		metrics:     metrics,
		persistence: persistence,
	}
}

// SubmitCreationRequest constructs an application from req, subscribes
// the built-in handlers and the caller's initial handlers, persists a
// record of it, inserts it into the registry, and starts it. It returns
// the assigned identifier on success.
func (r *Registry) SubmitCreationRequest(ctx context.Context, req CreationRequest) (ID, error) {
	if err := req.Validate(); err != nil {
		return ID{}, err
	}

	id := NewID()
	bus := NewBus(ctx, r.busCapacity, r.metrics)
	app := NewApplication(id, req.Name, req.Command, r.baseDir, req.Prepare, bus)

	bus.SubscribeAsync(NewRegistryRemover(r), false)
	bus.SubscribeAsync(NewLogHandler(), false)
	for _, h := range req.AsyncHandlers {
		bus.SubscribeAsync(h, false)
	}
	for _, h := range req.SyncHandlers {
		bus.SubscribeSync(h)
	}

	if r.persistence != nil {
		if err := r.persist(app); err != nil {
			return ID{}, err
		}
	}

	r.mu.Lock()
	r.apps[id] = app
	r.mu.Unlock()

	if err := app.Start(ctx); err != nil {
		r.remove(id)
		return ID{}, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	return id, nil
}

func (r *Registry) persist(app *Application) error {
	tx, err := r.persistence.BeginTransaction()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	record := ApplicationRecord{
		ID:      app.ID(),
		Name:    app.Name(),
		Program: app.Command().Program,
		Args:    app.Command().Args,
	}
	if err := tx.Insert(record); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if err := r.persistence.Commit(tx); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil
}

// Lookup returns the application registered under id, and whether it
// was found.
func (r *Registry) Lookup(id ID) (*Application, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	return app, ok
}

// List returns a snapshot of every currently registered application.
func (r *Registry) List() []*Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Application, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, app)
	}
	return out
}

// remove deletes and returns the application registered under id.
func (r *Registry) remove(id ID) (*Application, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, false
	}
	delete(r.apps, id)
	log.WithComponent("registry").Info().
		Str("application_id", id.String()).
		Str("name", app.Name()).
		Msg("application removed")
	return app, true
}
