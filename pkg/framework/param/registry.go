package param

import "sync"

// Registry holds a plugin's parameters in registration order. Parameters are
// registered once during setup; lookups are safe from any goroutine.
type Registry struct {
	mu    sync.RWMutex
	byID  map[uint32]int
	order []*Parameter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[uint32]int)}
}

// Add appends parameters. A parameter whose ID is already registered is
// ignored.
func (r *Registry) Add(params ...*Parameter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = len(r.order)
		r.order = append(r.order, p)
	}
}

// Get returns the parameter with the given ID, or nil.
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i, ok := r.byID[id]; ok {
		return r.order[i]
	}
	return nil
}

// GetByIndex returns the parameter at a registration index, or nil.
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || int(index) >= len(r.order) {
		return nil
	}
	return r.order[index]
}

// Count returns the number of parameters.
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.order))
}

// All returns a copy of the parameter list in registration order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Parameter(nil), r.order...)
}

// ResetToDefaults sets every parameter back to its default value.
func (r *Registry) ResetToDefaults() {
	for _, p := range r.All() {
		p.SetValue(p.DefaultValue)
	}
}
