package system

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/network"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestOutboxTileDedup(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")

	// The same tile requested repeatedly, across ticks, in and out of
	// normalized coordinates.
	h.bus.OutboundTile.Pulse(
		signal.OutboundTile{To: player, MapID: mapID, Top: 0, Left: 0},
		signal.OutboundTile{To: player, MapID: mapID, Top: 3, Left: 7},
	)
	h.sim.Tick(0.0)
	h.bus.OutboundTile.Pulse(signal.OutboundTile{To: player, MapID: mapID, Top: 0, Left: 0})
	h.sim.Tick(0.001)

	assert.Equal(t, 1, countKind(t, peer, network.KindTile))
}

func TestOutboxSelfIDRewrite(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")
	other, _ := h.player(mapID, 1, 2, "witness")

	h.bus.OutboundMove.Pulse(
		signal.OutboundMove{To: player, Source: player, MapID: mapID, X: 1, Y: 1},
		signal.OutboundMove{To: player, Source: other, MapID: mapID, X: 2, Y: 1},
	)
	h.sim.Tick(0.0)

	require.Len(t, peer.packets, 1)
	entries, err := network.Decode(peer.packets[0])
	require.NoError(t, err)

	var ids []uint64
	for _, e := range entries {
		if e.Kind == network.KindPos {
			ids = append(ids, binary.BigEndian.Uint64(e.Payload[:8]))
		}
	}
	require.Len(t, ids, 2)
	assert.Equal(t, uint64(0), ids[0])
	assert.Equal(t, uint64(other), ids[1])
}

func TestOutboxDropsRecipientsWithoutConnection(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	ghost := h.w.Create()
	_, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.Outbound.Pulse(signal.Outbound{To: ghost, Text: "into the void"})
	h.sim.Tick(0.0)

	assert.Empty(t, peer.packets)
}

func TestOutboxOnePacketPerTick(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.Outbound.Pulse(
		signal.Outbound{To: player, Text: "one"},
		signal.Outbound{To: player, Text: "two"},
	)
	h.bus.OutboundStance.Pulse(signal.OutboundStance{To: player, Source: player, Text: "standing"})
	h.sim.Tick(0.0)

	require.Len(t, peer.packets, 1)
	entries, err := network.Decode(peer.packets[0])
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Delivered in pulse order.
	texts := msgTexts(t, peer)
	assert.Equal(t, []string{"one", "two"}, texts)
}

func TestTileBodyBytes(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	chips, _ := h.w.C.Chips.Get(mapID)
	chips.Set(0, 3, 5)
	player, peer := h.player(mapID, 1, 1, "drifter")

	h.bus.OutboundTile.Pulse(signal.OutboundTile{To: player, MapID: mapID, Top: 0, Left: 0})
	h.sim.Tick(0.0)

	require.Len(t, peer.packets, 1)
	entries, err := network.Decode(peer.packets[0])
	require.NoError(t, err)
	require.Len(t, entries, 1)

	payload := entries[0].Payload
	// [map:8][top:4][left:4][256 bytes]
	require.Len(t, payload, 8+4+4+network.TileBytes)
	body := payload[16:]
	assert.Equal(t, byte(5), body[3])
	assert.Equal(t, byte(1), body[0])
}
