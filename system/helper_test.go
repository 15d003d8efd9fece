package system

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/network"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

type fakePeer struct {
	packets [][]byte
	closed  bool
}

func (p *fakePeer) Send(packet []byte) bool {
	p.packets = append(p.packets, packet)
	return true
}

func (p *fakePeer) Close() { p.closed = true }

// testingT is the subset of testing.TB that newHarness needs; it is
// satisfied by both *testing.T and *rapid.T.
type testingT interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

type harness struct {
	t    testingT
	w    *engine.World
	bus  *signal.Bus
	sim  *engine.Simulation
	acts *ActQueue
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newHarness wires the simulation path these tests exercise: inbound
// through commands, acts, movement, combat, health, decay, outbox.
func newHarness(t testingT) *harness {
	t.Helper()
	require.NoError(t, content.Load())
	core.SeedRNG(1)

	w := engine.NewWorld()
	bus := signal.NewBus()
	log := quietLog()
	sim := engine.NewSimulation(w, bus, log)
	acts := NewActQueue(w, bus)

	for _, sys := range []engine.System{
		NewConn(w, bus, log),
		NewInbound(w, bus),
		NewParser(w, bus, acts),
		acts,
		NewDrives(w, bus, acts),
		NewMove(w, bus),
		NewCombat(w, bus, log),
		NewProcs(w, bus),
		NewEchoSys(w, bus),
		NewEmitSys(w, bus),
		NewDecay(w, bus),
		NewExperience(w, bus),
		NewHealthSys(w, bus),
		NewStanceSys(w, bus),
		NewCleanup(w, bus, log),
		NewVisibility(w, bus),
		NewOutbox(w, bus, log),
	} {
		sim.AddSystem(sys)
	}
	sim.Init()

	return &harness{t: t, w: w, bus: bus, sim: sim, acts: acts}
}

// openMap builds a map of all-floor tiles, tilesH by tilesW.
func (h *harness) openMap(tilesH, tilesW int) core.Entity {
	mapID := h.w.Create()
	chips := component.NewChips(tilesH*constant.TileStrideH, tilesW*constant.TileStrideW)
	for ty := 0; ty < tilesH; ty++ {
		for tx := 0; tx < tilesW; tx++ {
			tile := new(component.TileData)
			for i := range tile {
				tile[i] = 1
			}
			chips.Tiles[component.ChipKey{
				Top:  ty * constant.TileStrideH,
				Left: tx * constant.TileStrideW,
			}] = tile
		}
	}
	h.w.C.Chips.Add(mapID, chips)
	h.w.C.ChipSet.Add(mapID, component.ChipSet{
		{ID: 1, MapID: mapID, Glyph: '.', V: 0.9, A: 1.0},
	})
	return mapID
}

// player spawns a connected, named, standing player.
func (h *harness) player(mapID core.Entity, y, x int, name string) (core.Entity, *fakePeer) {
	peer := &fakePeer{}
	e := world.CreateMob(h.w, mapID, y, x, name,
		component.Glyph{Char: '@', V: 0.9}, component.PronounThey, nil)
	h.w.C.Connection.Add(e, component.NewConnection(peer))
	return e, peer
}

// msgTexts decodes every packet the peer received and returns the
// plain-text entries in order.
func msgTexts(t *testing.T, peer *fakePeer) []string {
	t.Helper()
	var out []string
	for _, packet := range peer.packets {
		entries, err := network.Decode(packet)
		require.NoError(t, err)
		for _, e := range entries {
			if e.Kind != network.KindMsg {
				continue
			}
			size := binary.BigEndian.Uint16(e.Payload[:2])
			out = append(out, string(e.Payload[2:2+size]))
		}
	}
	return out
}

// countKind tallies entries of one kind across the peer's packets.
func countKind(t *testing.T, peer *fakePeer, kind network.EntryKind) int {
	t.Helper()
	n := 0
	for _, packet := range peer.packets {
		entries, err := network.Decode(packet)
		require.NoError(t, err)
		for _, e := range entries {
			if e.Kind == kind {
				n++
			}
		}
	}
	return n
}
