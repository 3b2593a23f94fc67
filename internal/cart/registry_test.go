package cart

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegistryStartsEmpty(t *testing.T) {
	r := NewRegistry()

	state := r.Snapshot(uuid.New())
	assert.Empty(t, state.Items)
}

func TestRegistryIsolatesUsers(t *testing.T) {
	r := NewRegistry()
	alice := uuid.New()
	bob := uuid.New()

	r.Update(alice, func(s State) State {
		return s.AddItem(woodenMask(), 2)
	})

	assert.Equal(t, 2, r.Snapshot(alice).TotalItems)
	assert.Zero(t, r.Snapshot(bob).TotalItems)
}

func TestRegistryDrop(t *testing.T) {
	r := NewRegistry()
	alice := uuid.New()

	r.Update(alice, func(s State) State {
		return s.AddItem(woodenMask(), 1)
	})
	r.Drop(alice)

	assert.Empty(t, r.Snapshot(alice).Items)
}

func TestRegistrySerializesConcurrentUpdates(t *testing.T) {
	r := NewRegistry()
	alice := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Update(alice, func(s State) State {
				return s.AddItem(woodenMask(), 1)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Snapshot(alice).TotalItems)
}
