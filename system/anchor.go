package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Anchors burns fuel, accepts tending, and grows anchors that players
// feed with sacrifice.
type Anchors struct {
	w   *engine.World
	bus *signal.Bus

	lastBurn core.Looptime
}

func NewAnchors(w *engine.World, bus *signal.Bus) *Anchors {
	return &Anchors{w: w, bus: bus}
}

func (s *Anchors) Init()         {}
func (s *Anchors) Priority() int { return constant.PriorityAnchor }

func (s *Anchors) Update(now core.Looptime) {
	for _, sig := range s.bus.TendAnchor.Iter() {
		anchor, ok := s.w.C.Anchor.Get(sig.Anchor)
		if !ok {
			continue
		}
		if anchor.Eternal {
			continue
		}
		anchor.Fuel = min(anchor.MaxFuel, anchor.Fuel+sig.Fuel)
		s.w.C.Anchor.Add(sig.Anchor, anchor)
	}

	for _, sig := range s.bus.GrowAnchor.Iter() {
		s.grow(sig)
	}

	// Burn fuel once per second rather than per tick.
	if now-s.lastBurn >= 1.0 {
		elapsed := now - s.lastBurn
		if s.lastBurn == 0 {
			elapsed = 1.0
		}
		s.lastBurn = now
		for _, eid := range s.w.C.Anchor.All() {
			anchor, _ := s.w.C.Anchor.Get(eid)
			if anchor.Eternal || anchor.Fuel <= 0 {
				continue
			}
			anchor.Fuel = max(0, anchor.Fuel-constant.AnchorFuelRate*elapsed)
			s.w.C.Anchor.Add(eid, anchor)
			if anchor.Fuel <= 0 {
				StoryEcho(s.w, s.bus, "{0} gutters and dies to embers.",
					component.Visible, nil, eid)
			}
		}
	}
}

func (s *Anchors) grow(sig signal.GrowAnchor) {
	anchor, ok := s.w.C.Anchor.Get(sig.Anchor)
	if !ok {
		return
	}
	rank := sig.PlayerRank
	if rank < 1 {
		rank = 1
	}
	anchor.Tnl += float64(rank) * 0.2
	for anchor.Tnl >= 1.0 {
		anchor.Tnl -= 1.0
		anchor.Rank++
		anchor.Threshold += constant.AnchorBaseThreshold / 4
		if anchor.RankupEcho != "" {
			StoryEcho(s.w, s.bus, anchor.RankupEcho, component.Visible, nil, sig.Anchor)
		}
	}
	s.w.C.Anchor.Add(sig.Anchor, anchor)
}
