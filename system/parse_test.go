package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "xyzzy"})
	h.sim.Tick(0.0)

	texts := msgTexts(t, peer)
	require.Len(t, texts, 1)
	assert.Equal(t, "Huh?", texts[0])
}

func TestApostropheRewritesToSay(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")
	_, other := h.player(mapID, 1, 2, "witness")

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "'hello"})
	h.sim.Tick(0.0)

	mine := msgTexts(t, peer)
	require.NotEmpty(t, mine)
	assert.Contains(t, mine[0], "hello")
	assert.Contains(t, mine[0], "You say")

	theirs := msgTexts(t, other)
	require.NotEmpty(t, theirs)
	assert.Contains(t, theirs[0], "says")
}

func TestSayWithNothingToSay(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "say"})
	h.sim.Tick(0.0)

	texts := msgTexts(t, peer)
	require.Len(t, texts, 1)
	assert.Equal(t, "You open your mouth, as if to speak.", texts[0])
}

func TestUnhealthyGate(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")
	h.player(mapID, 1, 2, "brona")

	hp, _ := h.w.C.Health.Get(player)
	hp.Condition = component.ConditionUnconscious
	h.w.C.Health.Add(player, hp)

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "attack brona"})
	h.sim.Tick(0.0)

	texts := msgTexts(t, peer)
	require.Len(t, texts, 1)
	assert.Equal(t, "You're unconscious!", texts[0])
}

func TestStanceCommands(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "sit"})
	h.sim.Tick(0.0)

	st, _ := h.w.C.Stance.Get(player)
	assert.Equal(t, component.Sitting, st.Cur)

	// Repeating the stance is refused.
	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "sit"})
	h.sim.Tick(0.001)
	assert.Contains(t, msgTexts(t, peer), "You're already sitting.")
}

func TestGetAndDrop(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 2, 2, "drifter")

	sword := content.CreateItem(h.w, content.ItemSpec{
		Key:       "broadsword",
		Transform: component.Transform{MapID: mapID, Y: 2, X: 2},
	})

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "get broad"})
	h.sim.Tick(0.0)

	cb, _ := h.w.C.ContainedBy.Get(sword)
	assert.Equal(t, player, cb.Parent)
	assert.False(t, h.w.C.Transform.Has(sword))

	h.bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "drop broad"})
	h.sim.Tick(0.001)

	tf, ok := h.w.C.Transform.Get(sword)
	assert.True(t, ok)
	assert.Equal(t, 2, tf.Y)
	cb, _ = h.w.C.ContainedBy.Get(sword)
	assert.Equal(t, component.ContainedBy{}, cb)
}
