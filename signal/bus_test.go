package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulseAndIterOrder(t *testing.T) {
	bus := NewBus()
	bus.Outbound.Pulse(
		Outbound{To: 1, Text: "a"},
		Outbound{To: 1, Text: "b"},
		Outbound{To: 2, Text: "c"},
	)

	got := bus.Outbound.Iter()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
	assert.Equal(t, "c", got[2].Text)
}

func TestIterIsSnapshot(t *testing.T) {
	bus := NewBus()
	bus.Inbound.Pulse(Inbound{Source: 1, Text: "one"})

	snapshot := bus.Inbound.Iter()
	bus.Inbound.Pulse(Inbound{Source: 1, Text: "two"})

	// The earlier snapshot must not observe the later pulse.
	assert.Len(t, snapshot, 1)
	assert.Len(t, bus.Inbound.Iter(), 2)
}

func TestClearEmptiesEveryQueue(t *testing.T) {
	bus := NewBus()
	bus.Inbound.Pulse(Inbound{Source: 1, Text: "x"})
	bus.Outbound.Pulse(Outbound{To: 1, Text: "y"})
	bus.Melee.Pulse(Melee{Source: 1, Target: 2})
	bus.RestCheck.Pulse(RestCheck{})
	bus.TileDecay.Pulse(TileDecay{MapID: 3, Y: 1, X: 1})

	bus.Clear()

	assert.True(t, bus.Inbound.IsEmpty())
	assert.True(t, bus.Outbound.IsEmpty())
	assert.True(t, bus.Melee.IsEmpty())
	assert.True(t, bus.RestCheck.IsEmpty())
	assert.True(t, bus.TileDecay.IsEmpty())
}

func TestIngressDrainsInPostOrder(t *testing.T) {
	bus := NewBus()
	bus.Post(func(b *Bus) { b.Inbound.Pulse(Inbound{Source: 1, Text: "first"}) })
	bus.Post(func(b *Bus) { b.Inbound.Pulse(Inbound{Source: 1, Text: "second"}) })

	assert.True(t, bus.Inbound.IsEmpty())
	bus.DrainIngress()

	got := bus.Inbound.Iter()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
}

func TestPulseAnyRoutesKnownTypes(t *testing.T) {
	bus := NewBus()
	bus.PulseAny(Melee{Source: 1, Target: 2})
	bus.PulseAny(RestCheck{})
	bus.PulseAny(struct{ unknown bool }{true})

	assert.Len(t, bus.Melee.Iter(), 1)
	assert.Len(t, bus.RestCheck.Iter(), 1)
}

func TestActIDsAreSerial(t *testing.T) {
	bus := NewBus()
	a := bus.NextActID()
	b := bus.NextActID()
	assert.Greater(t, b, a)
}
