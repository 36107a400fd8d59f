package hooks

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores handlers by name. Hook attributes naming a registered
// handler resolve to it; surrounding whitespace is ignored.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler. Duplicate names return an error.
func (r *Registry) Register(name string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("hooks: handler is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("hooks: handler name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handlers == nil {
		r.handlers = make(map[string]Handler)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("hooks: handler %q already registered", name)
	}
	r.handlers[name] = handler
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, handler Handler) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Resolve implements Resolver.
func (r *Registry) Resolve(source string) (Handler, error) {
	name := strings.TrimSpace(source)

	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("hooks: %w %q", ErrUnknownHandler, name)
	}
	return handler, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a handler is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.handlers[strings.TrimSpace(name)]
	return ok
}
