package dispatcher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/leap/internal/dispatcher/handler"
)

// Registry maps namespaces to handlers.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]handler.Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		namespaces: make(map[string]handler.Handler),
	}
}

// RegisterNamespace sets the handler for every action in a namespace.
func (r *Registry) RegisterNamespace(nh handler.NamespaceHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns := nh.Namespace()
	if _, exists := r.namespaces[ns]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNamespace, ns)
	}
	r.namespaces[ns] = handler.NewNamespaceAdapter(nh)
	return nil
}

// Lookup returns the handler for an action, or nil.
func (r *Registry) Lookup(actionName, namespace string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.namespaces[namespace]; ok && h.CanHandle(actionName) {
		return h
	}
	return nil
}

// Namespaces returns the sorted namespaces registered.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
