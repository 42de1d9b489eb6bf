package specconfig

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/epexport/internal/game/player"
)

// Registry maps specs to their configuration. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	specs map[player.Spec]*SpecConfig
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[player.Spec]*SpecConfig)}
}

// Register adds c to the registry.
//
// Precondition: c must be non-nil with a known Spec.
// Postcondition: c is retrievable via Lookup(c.Spec); the last registration for a spec wins.
func (r *Registry) Register(c *SpecConfig) {
	if c == nil {
		panic("Registry.Register: precondition violated: config must be non-nil")
	}
	if c.Spec == player.SpecUnknown {
		panic("Registry.Register: precondition violated: config spec must be known")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[c.Spec] = c
}

// Lookup returns the configuration of spec.
//
// Postcondition: Returns the SpecConfig, or an error wrapping ErrUnknownSpec.
func (r *Registry) Lookup(spec player.Spec) (*SpecConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.specs[spec]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpec, spec.Key())
	}
	return c, nil
}

// LookupKey resolves key with player.ParseSpec and looks it up.
func (r *Registry) LookupKey(key string) (*SpecConfig, error) {
	spec, err := player.ParseSpec(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpec, key)
	}
	return r.Lookup(spec)
}

// Specs returns the registered specs sorted by key.
func (r *Registry) Specs() []player.Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]player.Spec, 0, len(r.specs))
	for s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
