package escape

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Names of the escapers registered by NewDefaultRegistry.
const (
	NameEntities = "entities"
	NameStrict   = "strict"
	NameUGC      = "ugc"
)

// Registry stores escapers by name so configuration can select one with a
// plain string.
type Registry struct {
	mu       sync.RWMutex
	escapers map[string]Escaper
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		escapers: make(map[string]Escaper),
	}
}

// NewDefaultRegistry returns a registry holding the entities, strict and ugc
// escapers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NameEntities, Entities())
	r.MustRegister(NameStrict, Strict())
	r.MustRegister(NameUGC, UGC())
	return r
}

// Register adds an escaper under name. Duplicate names return an error.
func (r *Registry) Register(name string, escaper Escaper) error {
	if escaper == nil {
		return fmt.Errorf("escape: escaper is required")
	}
	name = normalizeName(name)
	if name == "" {
		return fmt.Errorf("escape: escaper name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.escapers[name]; exists {
		return fmt.Errorf("escape: escaper %q already registered", name)
	}

	r.escapers[name] = escaper
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, escaper Escaper) {
	if err := r.Register(name, escaper); err != nil {
		panic(err)
	}
}

// Get retrieves an escaper by name. Lookups ignore case and surrounding
// whitespace.
func (r *Registry) Get(name string) (Escaper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	escaper, ok := r.escapers[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("escape: escaper %q not found (known: %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return escaper, nil
}

// List returns a sorted list of escaper names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Has reports whether an escaper is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.escapers[normalizeName(name)]
	return ok
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.escapers))
	for name := range r.escapers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
