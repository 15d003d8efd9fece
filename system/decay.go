package system

import (
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Decay removes unprotected terrain. The darkness eats tiles outside
// every anchor's disk, but never out from under an entity.
type Decay struct {
	w   *engine.World
	bus *signal.Bus
}

func NewDecay(w *engine.World, bus *signal.Bus) *Decay {
	return &Decay{w: w, bus: bus}
}

func (s *Decay) Init()         {}
func (s *Decay) Priority() int { return constant.PriorityDecay }

// AnyAnchorProtects reports whether some fueled anchor's manhattan disk
// covers (y, x) on the map.
func AnyAnchorProtects(w *engine.World, mapID core.Entity, y, x int) bool {
	for _, eid := range w.C.Anchor.All() {
		anchor, _ := w.C.Anchor.Get(eid)
		tf, ok := w.C.Transform.Get(eid)
		if !ok || tf.MapID != mapID {
			continue
		}
		if anchor.Protects(tf.Y, tf.X, y, x) {
			return true
		}
	}
	return false
}

func (s *Decay) entitiesInTile(mapID core.Entity, top, left int) bool {
	for _, eid := range s.w.C.Transform.All() {
		tf, _ := s.w.C.Transform.Get(eid)
		if tf.MapID != mapID {
			continue
		}
		if top <= tf.Y && tf.Y < top+constant.TileStrideH &&
			left <= tf.X && tf.X < left+constant.TileStrideW {
			return true
		}
	}
	return false
}

func (s *Decay) Update(now core.Looptime) {
	// On DecayCheck, mark every unprotected tile.
	if !s.bus.DecayCheck.IsEmpty() {
		for _, mapID := range s.w.C.Chips.All() {
			chips, _ := s.w.C.Chips.Get(mapID)
			for key := range chips.Tiles {
				centerY := key.Top + constant.TileStrideH/2
				centerX := key.Left + constant.TileStrideW/2
				if !AnyAnchorProtects(s.w, mapID, centerY, centerX) {
					s.bus.TileDecay.Pulse(signal.TileDecay{
						MapID: mapID, Y: centerY, X: centerX,
					})
				}
			}
		}
	}

	for _, sig := range s.bus.TileDecay.Iter() {
		chips, ok := s.w.C.Chips.Get(sig.MapID)
		if !ok {
			continue
		}
		key := chips.KeyAt(sig.Y, sig.X)

		switch {
		case AnyAnchorProtects(s.w, sig.MapID, sig.Y, sig.X):
			// Protected again by the recheck; nothing happens tonight.
		case s.entitiesInTile(sig.MapID, key.Top, key.Left):
			// Occupied; spared until next night.
		default:
			delete(chips.Tiles, key)
		}
	}
}
