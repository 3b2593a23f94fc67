package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns one cart per user. Mutations go through Update, which
// applies a single transition at a time, so each cart has exactly one
// writer even when handlers run concurrently.
type Registry struct {
	mu    sync.Mutex
	carts map[uuid.UUID]State
}

// NewRegistry creates an empty cart registry.
func NewRegistry() *Registry {
	return &Registry{
		carts: make(map[uuid.UUID]State),
	}
}

// Update applies a transition to the user's cart and returns the resulting
// state. Users without a cart start from the empty state.
func (r *Registry) Update(userID uuid.UUID, fn func(State) State) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.carts[userID]
	if !ok {
		state = Empty()
	}
	state = fn(state)
	r.carts[userID] = state
	return state
}

// Snapshot returns a copy of the user's current cart state.
func (r *Registry) Snapshot(userID uuid.UUID) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.carts[userID]
	if !ok {
		return Empty()
	}
	return state
}

// Drop discards the user's cart, e.g. on logout.
func (r *Registry) Drop(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
}
