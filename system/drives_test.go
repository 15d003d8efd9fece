package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/world"
)

func (h *harness) mob(mapID core.Entity, y, x int, drives component.Drives) core.Entity {
	return world.CreateMob(h.w, mapID, y, x, "goblin",
		component.Glyph{Char: 'g'}, component.PronounIt,
		func(e core.Entity) {
			h.w.C.Drives.Add(e, drives)
		})
}

func TestFearfulMobFlees(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(2, 2)
	h.player(mapID, 10, 10, "drifter")
	mob := h.mob(mapID, 10, 12, component.Drives{Fear: 1.0})

	h.sim.Tick(1.0)

	// The chosen move strictly increases distance from the player.
	tf, _ := h.w.C.Transform.Get(mob)
	assert.Greater(t, tf.X, 12)
}

func TestAggressiveMobClosesIn(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(2, 2)
	h.player(mapID, 10, 10, "drifter")
	mob := h.mob(mapID, 10, 16, component.Drives{Aggression: 1.0})

	h.sim.Tick(1.0)

	tf, _ := h.w.C.Transform.Get(mob)
	assert.Less(t, tf.X, 16)
}

func TestAdjacentAggressiveMobAttacks(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 5, 5, "drifter")
	mob := h.mob(mapID, 5, 6, component.Drives{Aggression: 1.0})

	h.sim.Tick(1.0)

	// The reaction arrives through the ingress as a command; the next
	// tick's parser turns it into a melee windup.
	h.sim.Tick(1.001)
	assert.True(t, h.acts.IsBusy(mob))

	// The player takes the hit once the windup completes.
	h.sim.Tick(4.0)
	hp, _ := h.w.C.Health.Get(player)
	require.Less(t, hp.Cur, 100.0)
}

func TestDriveTickRateGates(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(2, 2)
	h.player(mapID, 10, 10, "drifter")
	mob := h.mob(mapID, 10, 14, component.Drives{Fear: 1.0})

	h.sim.Tick(1.0)
	first, _ := h.w.C.Transform.Get(mob)

	// Within the same half-second window the mob holds still.
	h.sim.Tick(1.1)
	second, _ := h.w.C.Transform.Get(mob)
	assert.Equal(t, first, second)
}

func TestWoundedMobsFearRises(t *testing.T) {
	d := component.Drives{Aggression: 0.8, Fear: 0.2}

	assert.InDelta(t, 0.8, d.EffectiveAggression(1.0), 1e-9)
	assert.Less(t, d.EffectiveAggression(0.25), d.EffectiveAggression(1.0))
	assert.Greater(t, d.EffectiveFear(0.25), d.EffectiveFear(1.0))

	// Curves stay continuous at the edges.
	assert.InDelta(t, 0.2, d.EffectiveFear(1.0), 1e-9)
	assert.InDelta(t, 0.0, d.EffectiveAggression(0.0), 1e-9)
}

func TestBehaviorQueueMobsSkipDrives(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(2, 2)
	h.player(mapID, 10, 10, "drifter")
	mob := h.mob(mapID, 10, 14, component.Drives{Fear: 1.0})
	h.w.C.BehaviorQueue.Add(mob, &component.BehaviorQueue{
		Items: []component.Behavior{{Kind: component.Wait, Until: 100}},
	})

	h.sim.Tick(1.0)

	tf, _ := h.w.C.Transform.Get(mob)
	assert.Equal(t, 14, tf.X)
}
