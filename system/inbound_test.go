package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestLagBufferBounded(t *testing.T) {
	w := engine.NewWorld()
	bus := signal.NewBus()
	inb := NewInbound(w, bus)

	player := w.Create()
	w.C.Lag.Add(player, component.Lag{Until: 1000})

	for i := 0; i < constant.PendingMax+15; i++ {
		bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "look"})
	}
	inb.Update(0.0)

	// The deque holds its bound; the overflow dropped silently.
	assert.Len(t, inb.pending[player], constant.PendingMax)
	assert.True(t, bus.Parse.IsEmpty())
}

func TestLagDrainsOnePerTickWithPenalty(t *testing.T) {
	w := engine.NewWorld()
	bus := signal.NewBus()
	inb := NewInbound(w, bus)

	player := w.Create()
	w.C.Lag.Add(player, component.Lag{Until: 5})
	for i := 0; i < 3; i++ {
		bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "look"})
	}
	inb.Update(0.0)
	bus.Clear()
	require.Len(t, inb.pending[player], 3)

	// Once the lag expires, one line drains per tick and each drain
	// re-lags the source.
	inb.Update(6.0)
	assert.Len(t, bus.Parse.Iter(), 1)
	assert.Len(t, inb.pending[player], 2)
	lag, _ := w.C.Lag.Get(player)
	assert.InDelta(t, 6.0+constant.SpamPenalty, lag.Until, 1e-9)

	// Still lagged next tick.
	bus.Clear()
	inb.Update(6.1)
	assert.True(t, bus.Parse.IsEmpty())
}

func TestUnlaggedPassesStraightThrough(t *testing.T) {
	w := engine.NewWorld()
	bus := signal.NewBus()
	inb := NewInbound(w, bus)

	player := w.Create()
	bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "look"})
	inb.Update(0.0)

	got := bus.Parse.Iter()
	require.Len(t, got, 1)
	assert.Equal(t, "look", got[0].Text)
}

func TestPromptMatrix(t *testing.T) {
	w := engine.NewWorld()
	bus := signal.NewBus()
	inb := NewInbound(w, bus)
	player := w.Create()

	var called string
	prompt := component.Prompt{
		Text:  "reach into the fire",
		OnOk:  func(core.Entity) { called = "ok" },
		OnErr: func(core.Entity) { called = "err" },
	}

	w.C.Prompt.Add(player, prompt)
	bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "reach into the fire"})
	inb.Update(0.0)
	assert.Equal(t, "ok", called)
	assert.False(t, w.C.Prompt.Has(player))

	w.C.Prompt.Add(player, prompt)
	bus.Clear()
	bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "flinch"})
	inb.Update(0.0)
	assert.Equal(t, "err", called)
}

func TestExpiredPromptRoutes(t *testing.T) {
	w := engine.NewWorld()
	bus := signal.NewBus()
	inb := NewInbound(w, bus)
	player := w.Create()

	var called string
	w.C.Prompt.Add(player, component.Prompt{
		Text:        "speak",
		OnOk:        func(core.Entity) { called = "ok" },
		OnExpiredOk: func(core.Entity) { called = "expired_ok" },
		End:         1.0,
	})

	bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "speak"})
	inb.Update(5.0)
	assert.Equal(t, "expired_ok", called)
}

func TestUnboundPromptFallsThroughToParse(t *testing.T) {
	w := engine.NewWorld()
	bus := signal.NewBus()
	inb := NewInbound(w, bus)
	player := w.Create()

	w.C.Prompt.Add(player, component.Prompt{Text: "whisper"})
	bus.Inbound.Pulse(signal.Inbound{Source: player, Text: "north"})
	inb.Update(0.0)

	// No handler bound: the line is treated as a normal command.
	got := bus.Parse.Iter()
	require.Len(t, got, 1)
	assert.Equal(t, "north", got[0].Text)
}
