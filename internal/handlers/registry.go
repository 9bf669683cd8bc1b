package handlers

import (
	"fmt"
	"sort"
	"sync"

	"mathshell/internal/classify"
	"mathshell/internal/logger"
)

// Registry maps routes to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[classify.Route]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[classify.Route]Handler),
	}
}

// NewDefaultRegistry registers one handler per route, all sharing deps.
func NewDefaultRegistry(deps Deps) *Registry {
	r := NewRegistry()
	for _, h := range []Handler{
		NewExitHandler(),
		NewHelpHandler(),
		NewPlotHandler(deps),
		NewEquationHandler(deps),
		NewIntegralHandler(deps),
		NewDerivativeHandler(deps),
		NewLimitHandler(deps),
		NewExpressionHandler(deps),
	} {
		if err := r.Register(h); err != nil {
			panic(fmt.Sprintf("failed to register %s handler: %v", h.Name(), err))
		}
	}
	return r
}

// Register adds a handler. It fails when the route already has one.
func (r *Registry) Register(h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	if _, exists := r.handlers[h.Route()]; exists {
		return fmt.Errorf("route %s already has a handler", h.Route())
	}
	r.handlers[h.Route()] = h
	return nil
}

// Replace installs h for its route, replacing any existing handler.
func (r *Registry) Replace(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Route()] = h
}

// Get returns the handler for a route.
func (r *Registry) Get(route classify.Route) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[route]
	return h, ok
}

// GetAll returns the registered handlers ordered by route.
func (r *Registry) GetAll() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route() < out[j].Route() })
	return out
}

// Dispatch classifies a line and returns the chosen handler with its
// route. A route without a handler is an error.
func (r *Registry) Dispatch(line string) (classify.Route, Handler, error) {
	route := classify.Classify(line)
	logger.Dispatch(route.String(), line)
	h, ok := r.Get(route)
	if !ok {
		return route, nil, fmt.Errorf("no handler for route %s", route)
	}
	return route, h, nil
}
