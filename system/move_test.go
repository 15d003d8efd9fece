package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestMoveBlockedByWall(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	chips, _ := h.w.C.Chips.Get(mapID)
	chips.Set(1, 2, 2) // wall east of the player

	player, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "east"})
	h.sim.Tick(0.0)

	// Exactly one rejection, no movement.
	texts := msgTexts(t, peer)
	require.Len(t, texts, 1)
	assert.Equal(t, "You can't go there.", texts[0])

	tf, _ := h.w.C.Transform.Get(player)
	assert.Equal(t, component.Transform{MapID: mapID, Y: 1, X: 1}, tf)
}

func TestMoveCompassApplies(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 5, 5, "drifter")

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "se"})
	h.sim.Tick(0.0)

	tf, _ := h.w.C.Transform.Get(player)
	assert.Equal(t, 6, tf.Y)
	assert.Equal(t, 6, tf.X)
}

func TestMoveRequiresStanding(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 5, 5, "drifter")
	h.w.C.Stance.Add(player, component.Stance{Cur: component.Sitting})

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "north"})
	h.sim.Tick(0.0)

	texts := msgTexts(t, peer)
	require.Len(t, texts, 1)
	assert.Equal(t, "You must stand first.", texts[0])
}

func TestMoveEntityResetsTransform(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 5, 5, "drifter")

	item := h.w.Create()
	h.w.C.Noun.Add(item, component.Noun{Value: "rock"})
	h.w.C.Transform.Add(item, component.Transform{MapID: mapID, Y: 5, X: 5})

	h.bus.MoveEntity.Pulse(signal.MoveEntity{
		Source: item, Container: player, Slot: component.SlotAny,
	})
	h.sim.Tick(0.0)

	// Contained items have no world transform.
	assert.False(t, h.w.C.Transform.Has(item))
	cb, _ := h.w.C.ContainedBy.Get(item)
	assert.Equal(t, player, cb.Parent)

	// Moving back into the world resets containment.
	h.bus.MovePosition.Pulse(signal.MovePosition{
		Source: item, ToMap: mapID, ToY: 6, ToX: 6, Quiet: true,
	})
	h.sim.Tick(0.001)

	cb, _ = h.w.C.ContainedBy.Get(item)
	assert.Equal(t, component.ContainedBy{}, cb)
	tf, ok := h.w.C.Transform.Get(item)
	assert.True(t, ok)
	assert.Equal(t, 6, tf.X)
}

func TestTransformContainedByExclusivity(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	carrier, _ := h.player(mapID, 3, 3, "carrier")

	item := h.w.Create()
	h.w.C.Noun.Add(item, component.Noun{Value: "stone"})
	h.w.C.Transform.Add(item, component.Transform{MapID: mapID, Y: 3, X: 3})

	h.bus.MoveEntity.Pulse(signal.MoveEntity{
		Source: item, Container: carrier, Slot: component.SlotAny,
	})
	h.sim.Tick(0.0)

	// At end of tick no entity holds both a world transform and a
	// non-sentinel containment edge.
	for _, e := range h.w.C.ContainedBy.All() {
		cb, _ := h.w.C.ContainedBy.Get(e)
		if cb.Parent != 0 {
			assert.False(t, h.w.C.Transform.Has(e))
		}
	}
}
