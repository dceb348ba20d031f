// Package registry provides the named definition stores used by dialects.
package registry

import (
	"fmt"
	"sort"
)

// Registry maps names to definitions of one kind.
type Registry[T any] struct {
	kind   string
	items  map[string]T
	frozen bool
}

// New creates an empty registry. kind names the definitions in error
// messages.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Set registers def under name, replacing any previous definition.
func (r *Registry[T]) Set(name string, def T) {
	r.mustBeOpen()
	r.items[name] = def
}

// Wrap replaces the definition registered under name with decorate(prev).
func (r *Registry[T]) Wrap(name string, decorate func(prev T) T) error {
	r.mustBeOpen()
	prev, ok := r.items[name]
	if !ok {
		return fmt.Errorf("cannot wrap %s %q: not registered", r.kind, name)
	}
	r.items[name] = decorate(prev)
	return nil
}

// Get returns the definition registered under name.
func (r *Registry[T]) Get(name string) (T, bool) {
	def, ok := r.items[name]
	return def, ok
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.items[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of definitions.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Freeze makes the registry read-only. Later writes panic.
func (r *Registry[T]) Freeze() {
	r.frozen = true
}

func (r *Registry[T]) mustBeOpen() {
	if r.frozen {
		panic(fmt.Sprintf("registry: %s registry is frozen", r.kind))
	}
}
