package system

import (
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Visibility turns position changes into per-client move reports and
// tile pre-sends: the mover learns the view around its destination,
// observers entering or leaving range learn about the mover.
type Visibility struct {
	w   *engine.World
	bus *signal.Bus
}

func NewVisibility(w *engine.World, bus *signal.Bus) *Visibility {
	return &Visibility{w: w, bus: bus}
}

func (s *Visibility) Init()         {}
func (s *Visibility) Priority() int { return constant.PriorityVisibility }

func (s *Visibility) Update(now core.Looptime) {
	for _, sig := range s.bus.PositionChanged.Iter() {
		if sig.Quiet {
			continue
		}
		s.publish(sig)
	}
}

func (s *Visibility) publish(sig signal.PositionChanged) {
	notifySource := s.w.C.Connection.Has(sig.Source)
	sameMap := sig.ToMap == sig.FromMap

	if notifySource {
		s.bus.OutboundMove.Pulse(signal.OutboundMove{
			To: sig.Source, Source: sig.Source,
			MapID: sig.ToMap, X: sig.ToX, Y: sig.ToY,
		})
		for _, d := range viewCorners {
			s.bus.OutboundTile.Pulse(signal.OutboundTile{
				To: sig.Source, MapID: sig.ToMap,
				Top: sig.ToY + d[0], Left: sig.ToX + d[1],
			})
		}
		if !sameMap {
			if cs, ok := s.w.C.ChipSet.Get(sig.ToMap); ok {
				s.bus.OutboundChipSet.Pulse(signal.OutboundChipSet{To: sig.Source, ChipSet: cs})
			}
		}
	}

	for _, other := range s.w.C.Transform.All() {
		if other == sig.Source {
			continue
		}
		pos, _ := s.w.C.Transform.Get(other)
		notifyOther := s.w.C.Connection.Has(other)

		inTo := pos.MapID == sig.ToMap &&
			core.Abs(pos.X-sig.ToX) <= constant.ViewW &&
			core.Abs(pos.Y-sig.ToY) <= constant.ViewH
		inFrom := pos.MapID == sig.FromMap &&
			core.Abs(pos.X-sig.FromX) <= constant.ViewW &&
			core.Abs(pos.Y-sig.FromY) <= constant.ViewH

		// Publish to new observers.
		if notifyOther && inTo {
			s.bus.OutboundMove.Pulse(signal.OutboundMove{
				To: other, Source: sig.Source,
				MapID: sig.ToMap, X: sig.ToX, Y: sig.ToY,
			})
			s.introduce(other, sig.Source)
		}

		// Symmetrical: the mover learns about what it can now see.
		if notifySource && inTo {
			s.bus.OutboundMove.Pulse(signal.OutboundMove{
				To: sig.Source, Source: other,
				MapID: pos.MapID, X: pos.X, Y: pos.Y,
			})
			s.introduce(sig.Source, other)
		}

		// Publish the departure to former observers.
		if notifyOther && inFrom && !inTo {
			s.bus.OutboundMove.Pulse(signal.OutboundMove{
				To: other, Source: sig.Source,
				MapID: sig.ToMap, X: sig.ToX, Y: sig.ToY,
			})
		}
	}
}

// introduce sends the glyph and noun a client needs to render a newly
// visible entity.
func (s *Visibility) introduce(to, subject core.Entity) {
	if g, ok := s.w.C.Glyph.Get(subject); ok {
		s.bus.OutboundGlyph.Pulse(signal.OutboundGlyph{To: to, Source: subject, Glyph: g})
	}
	if n, ok := s.w.C.Noun.Get(subject); ok {
		s.bus.OutboundNoun.Pulse(signal.OutboundNoun{To: to, Source: subject, Text: n.String()})
	}
}
