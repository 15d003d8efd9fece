package engine

import (
	"sync"

	"github.com/dzaramelcone/ninjamagic/core"
)

// World contains all entities and their components using typed stores.
// The store exclusively owns component data; signals carry entity ids
// only, and receivers tolerate missing entities.
type World struct {
	mu           sync.Mutex
	nextEntityID core.Entity
	live         map[core.Entity]struct{}

	// C exposes the typed component stores for direct system access.
	C *Components

	allStores []AnyStore
}

// NewWorld creates an empty world.
func NewWorld() *World {
	c, all := newComponents()
	return &World{
		nextEntityID: 1,
		live:         make(map[core.Entity]struct{}),
		C:            c,
		allStores:    all,
	}
}

// Create reserves a new entity id.
func (w *World) Create() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextEntityID
	w.nextEntityID++
	w.live[id] = struct{}{}
	return id
}

// Exists reports whether the entity is live.
func (w *World) Exists(e core.Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.live[e]
	return ok
}

// Destroy removes the entity and all its components. Children of a
// destroyed container are not cascaded automatically; callers that need
// a cascade walk Contents first.
func (w *World) Destroy(e core.Entity) {
	w.mu.Lock()
	delete(w.live, e)
	w.mu.Unlock()
	for _, s := range w.allStores {
		s.RemoveComponent(e)
	}
}

// Clear removes all entities and components.
func (w *World) Clear() {
	w.mu.Lock()
	w.nextEntityID = 1
	w.live = make(map[core.Entity]struct{})
	w.mu.Unlock()
	for _, s := range w.allStores {
		s.ClearAllComponent()
	}
}

// Root follows ContainedBy edges up to the containing root. The
// containment graph is a forest, so this terminates; a defensive hop
// bound guards against authoring mistakes.
func (w *World) Root(e core.Entity) core.Entity {
	for hops := 0; hops < 1024; hops++ {
		cb, ok := w.C.ContainedBy.Get(e)
		if !ok || cb.Parent == core.None {
			return e
		}
		e = cb.Parent
	}
	return e
}
