package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/network"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestAttackResolvesAfterDelay(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	attacker, peerA := h.player(mapID, 0, 0, "aldric")
	target, peerB := h.player(mapID, 0, 1, "brona")

	h.bus.Inbound.Pulse(signal.Inbound{Source: attacker, Text: "attack brona"})
	h.sim.Tick(0.0)

	// The windup lands an act, not damage.
	assert.True(t, h.acts.IsBusy(attacker))
	hp, _ := h.w.C.Health.Get(target)
	assert.Equal(t, 100.0, hp.Cur)

	// Ticks before the delay do nothing.
	h.sim.Tick(constant.MeleeDelaySeconds - 0.5)
	hp, _ = h.w.C.Health.Get(target)
	assert.Equal(t, 100.0, hp.Cur)

	// Past the delay the melee fires, damage lands, both sides hear
	// about it, and the attacker gets the target's health bar.
	h.sim.Tick(constant.MeleeDelaySeconds + 0.1)

	assert.False(t, h.acts.IsBusy(attacker))
	hp, _ = h.w.C.Health.Get(target)
	assert.Less(t, hp.Cur, 100.0)

	assert.NotEmpty(t, msgTexts(t, peerA))
	assert.NotEmpty(t, msgTexts(t, peerB))
	assert.GreaterOrEqual(t, countKind(t, peerA, network.KindHealth), 1)
}

func TestInterruptCancelsAttack(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	attacker, _ := h.player(mapID, 0, 0, "aldric")
	target, _ := h.player(mapID, 0, 1, "brona")

	h.bus.Inbound.Pulse(signal.Inbound{Source: attacker, Text: "attack brona"})
	h.sim.Tick(0.0)
	require.True(t, h.acts.IsBusy(attacker))

	h.bus.Interrupt.Pulse(signal.Interrupt{Source: attacker})
	h.sim.Tick(1.0)
	assert.False(t, h.acts.IsBusy(attacker))

	// The act's deadline passes without a melee.
	h.sim.Tick(constant.MeleeDelaySeconds + 0.1)
	hp, _ := h.w.C.Health.Get(target)
	assert.Equal(t, 100.0, hp.Cur)
}

func TestNewActReplacesOld(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	source, _ := h.player(mapID, 0, 0, "aldric")
	target, _ := h.player(mapID, 0, 1, "brona")

	first := signal.Act{
		Source: source, Target: target, Delay: 1.0,
		Then:  signal.Outbound{To: source, Text: "first"},
		Start: 0.0, ID: core.ActID(h.bus.NextActID()),
	}
	second := signal.Act{
		Source: source, Target: target, Delay: 1.0,
		Then:  signal.Outbound{To: source, Text: "second"},
		Start: 0.5, ID: core.ActID(h.bus.NextActID()),
	}
	h.bus.Act.Pulse(first)
	h.sim.Tick(0.0)
	h.bus.Act.Pulse(second)
	h.sim.Tick(0.5)

	// The superseded act's deadline passes silently; only the
	// replacement fires.
	peer := &fakePeer{}
	h.w.C.Connection.Add(source, component.NewConnection(peer))
	h.sim.Tick(1.1)
	assert.Empty(t, msgTexts(t, peer))
	assert.True(t, h.acts.IsBusy(source))

	h.sim.Tick(1.6)
	texts := msgTexts(t, peer)
	require.Len(t, texts, 1)
	assert.Equal(t, "second", texts[0])
	assert.False(t, h.acts.IsBusy(source))
}

func TestBusyGateBlocksSecondCommand(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	attacker, peer := h.player(mapID, 0, 0, "aldric")
	h.player(mapID, 0, 1, "brona")

	h.bus.Inbound.Pulse(signal.Inbound{Source: attacker, Text: "attack brona"})
	h.sim.Tick(0.0)

	h.bus.Inbound.Pulse(signal.Inbound{Source: attacker, Text: "attack brona"})
	h.sim.Tick(0.5)

	assert.Contains(t, msgTexts(t, peer), "You're busy!")
}

func TestBeingAttacked(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	attacker, _ := h.player(mapID, 0, 0, "aldric")
	target, _ := h.player(mapID, 0, 1, "brona")

	assert.False(t, h.acts.BeingAttacked(target))

	h.bus.Inbound.Pulse(signal.Inbound{Source: attacker, Text: "attack brona"})
	h.sim.Tick(0.0)
	assert.True(t, h.acts.BeingAttacked(target))
	assert.False(t, h.acts.AttackedByOther(attacker, target))

	// A stunned attacker no longer threatens.
	h.w.C.Stunned.Add(attacker, component.Stunned{End: 100})
	assert.False(t, h.acts.BeingAttacked(target))
}

func TestActUniquenessInvariant(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	source, _ := h.player(mapID, 0, 0, "aldric")

	for i := 0; i < 5; i++ {
		h.bus.Act.Pulse(signal.Act{
			Source: source, Delay: 10,
			Then:  signal.Outbound{To: source, Text: "x"},
			Start: core.Looptime(i), ID: core.ActID(h.bus.NextActID()),
		})
		h.sim.Tick(core.Looptime(i))
	}

	// Exactly one heap entry matches the current marker.
	matches := 0
	for _, act := range h.acts.pq {
		if cur, ok := h.acts.current[source]; ok && cur == act.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}
