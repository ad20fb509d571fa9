package studio

import (
	"sync"

	"github.com/color-game/palette-api/datastore"
)

// Registry keeps one hydrated Studio per workspace.
type Registry struct {
	mu      sync.Mutex
	studios map[string]*Studio
	store   datastore.KeyValueRepository
	opts    Options
}

func NewRegistry(store datastore.KeyValueRepository, opts Options) *Registry {
	return &Registry{
		studios: make(map[string]*Studio),
		store:   store,
		opts:    opts.withDefaults(),
	}
}

// Get returns the studio of workspaceID, creating and hydrating it on first
// use.
func (r *Registry) Get(workspaceID string) *Studio {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.studios[workspaceID]; ok {
		return s
	}

	s := New(workspaceID, r.store, r.opts)
	s.Hydrate()
	r.studios[workspaceID] = s
	return s
}

// Forget drops the cached studio of workspaceID. Persisted state is kept.
func (r *Registry) Forget(workspaceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.studios, workspaceID)
}
