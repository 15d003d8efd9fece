package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
)

func TestStoreAddGetRemove(t *testing.T) {
	s := NewStore[component.Health]()
	e := core.Entity(1)

	_, ok := s.Get(e)
	assert.False(t, ok)

	s.Add(e, component.NewHealth())
	h, ok := s.Get(e)
	assert.True(t, ok)
	assert.Equal(t, 100.0, h.Cur)
	assert.Equal(t, 1, s.Count())

	// Re-add replaces without duplicating the dense entry.
	h.Cur = 50
	s.Add(e, h)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 50.0, s.MustGet(e).Cur)

	s.Remove(e)
	assert.False(t, s.Has(e))
	assert.Equal(t, 0, s.Count())
}

func TestStoreAllIsSnapshot(t *testing.T) {
	s := NewStore[component.Level]()
	s.Add(1, component.Level{Value: 1})
	s.Add(2, component.Level{Value: 2})

	snapshot := s.All()
	s.Add(3, component.Level{Value: 3})

	assert.Len(t, snapshot, 2)
	assert.Len(t, s.All(), 3)
}

func TestWorldCreateDestroy(t *testing.T) {
	w := NewWorld()
	a := w.Create()
	b := w.Create()
	assert.NotEqual(t, a, b)
	assert.True(t, w.Exists(a))

	w.C.Transform.Add(a, component.Transform{MapID: 9, Y: 1, X: 1})
	w.C.Noun.Add(a, component.Noun{Value: "rock"})

	w.Destroy(a)
	assert.False(t, w.Exists(a))
	assert.False(t, w.C.Transform.Has(a))
	assert.False(t, w.C.Noun.Has(a))
	assert.True(t, w.Exists(b))
}

func TestWorldIDsAreNeverReused(t *testing.T) {
	w := NewWorld()
	a := w.Create()
	w.Destroy(a)
	b := w.Create()
	assert.Greater(t, b, a)
}

func TestContainmentRootTerminates(t *testing.T) {
	w := NewWorld()
	player := w.Create()
	pack := w.Create()
	torch := w.Create()

	w.C.ContainedBy.Add(pack, component.ContainedBy{Parent: player})
	w.C.ContainedBy.Add(torch, component.ContainedBy{Parent: pack})

	assert.Equal(t, player, w.Root(torch))
	assert.Equal(t, player, w.Root(pack))
	assert.Equal(t, player, w.Root(player))
}

func TestContents(t *testing.T) {
	w := NewWorld()
	pack := w.Create()
	a := w.Create()
	b := w.Create()
	w.C.ContainedBy.Add(a, component.ContainedBy{Parent: pack})
	w.C.ContainedBy.Add(b, component.ContainedBy{Parent: pack})
	w.C.ContainedBy.Add(w.Create(), component.ContainedBy{Parent: a})

	got := w.Contents(pack)
	assert.Len(t, got, 2)
	assert.ElementsMatch(t, []core.Entity{a, b}, got)
}
