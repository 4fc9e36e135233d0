// Package registry keeps the fixture definitions known to the runner.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"itd/internal/domain"
)

// Registry is a set of fixture definitions keyed by full name
type Registry struct {
	mu       sync.RWMutex
	fixtures map[string]*domain.Fixture
}

var defaultRegistry = New()

// New creates an empty registry
func New() *Registry {
	return &Registry{fixtures: make(map[string]*domain.Fixture)}
}

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// MustRegister adds fixture to the default registry and panics on conflict
func MustRegister(fixture *domain.Fixture) {
	if err := defaultRegistry.Register(fixture); err != nil {
		panic(err)
	}
}

// Register adds a fixture definition
func (r *Registry) Register(fixture *domain.Fixture) error {
	if fixture == nil || fixture.Name == "" {
		return fmt.Errorf("fixture must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := fixture.FullName()
	if _, exists := r.fixtures[name]; exists {
		return fmt.Errorf("fixture %s already registered", name)
	}
	r.fixtures[name] = fixture
	return nil
}

// Fixtures returns every registered fixture sorted by full name
func (r *Registry) Fixtures() []*domain.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixtures := make([]*domain.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		fixtures = append(fixtures, f)
	}
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].FullName() < fixtures[j].FullName()
	})
	return fixtures
}

// Len returns the number of registered fixtures
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fixtures)
}
