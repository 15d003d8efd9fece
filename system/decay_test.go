package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestDecaySparesProtectedAndOccupiedTiles(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(3, 1) // three tiles stacked vertically
	chips, _ := h.w.C.Chips.Get(mapID)

	// An anchor whose disk only covers the top tile's center.
	anchor := h.w.Create()
	h.w.C.Anchor.Add(anchor, component.Anchor{Threshold: 4, Fuel: 10, MaxFuel: 10})
	h.w.C.Transform.Add(anchor, component.Transform{MapID: mapID, Y: 8, X: 8})

	// A bystander inside the middle tile.
	squatter := h.w.Create()
	h.w.C.Transform.Add(squatter, component.Transform{MapID: mapID, Y: 20, X: 8})

	h.bus.DecayCheck.Pulse(signal.DecayCheck{})
	h.sim.Tick(0.0)

	_, protected := chips.Tiles[component.ChipKey{Top: 0, Left: 0}]
	_, occupied := chips.Tiles[component.ChipKey{Top: 16, Left: 0}]
	_, empty := chips.Tiles[component.ChipKey{Top: 32, Left: 0}]

	assert.True(t, protected, "anchored tile must survive")
	assert.True(t, occupied, "occupied tile must survive")
	assert.False(t, empty, "unprotected empty tile decays")
}

func TestDecayedTileBlocksMovement(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(2, 1)
	chips, _ := h.w.C.Chips.Get(mapID)
	delete(chips.Tiles, component.ChipKey{Top: 16, Left: 0})

	player, peer := h.player(mapID, 15, 8, "drifter")
	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "south"})
	h.sim.Tick(0.0)

	assert.Contains(t, msgTexts(t, peer), "You can't go there.")
	tf, _ := h.w.C.Transform.Get(player)
	assert.Equal(t, 15, tf.Y)
}

func TestSpentAnchorStopsProtecting(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)

	anchor := h.w.Create()
	h.w.C.Anchor.Add(anchor, component.Anchor{Threshold: 40, Fuel: 0, MaxFuel: 10})
	h.w.C.Transform.Add(anchor, component.Transform{MapID: mapID, Y: 8, X: 8})

	assert.False(t, AnyAnchorProtects(h.w, mapID, 8, 8))

	h.w.C.Anchor.Add(anchor, component.Anchor{Threshold: 40, Fuel: 5, MaxFuel: 10})
	assert.True(t, AnyAnchorProtects(h.w, mapID, 8, 8))
}
