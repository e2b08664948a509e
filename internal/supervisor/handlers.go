package supervisor

import "context"

// RegistryRemover is the built-in asynchronous handler of §4.4: on End
// it removes the application from the registry that created it, and
// ignores every other event kind. It holds a reference to the registry,
// not to the application — the application reaches it through the event
// envelope, which is what keeps application -> bus -> handler -> ...
// from cycling back to an owned application reference (§9).
type RegistryRemover struct {
	registry *Registry
}

// NewRegistryRemover constructs the built-in removal handler for
// registry.
func NewRegistryRemover(registry *Registry) *RegistryRemover {
	return &RegistryRemover{registry: registry}
}

func (h *RegistryRemover) HandleAsync(ctx context.Context, ev *Event) error {
	if ev.Kind != KindEnd {
		return nil
	}
	h.registry.remove(ev.App.ID())
	return nil
}
