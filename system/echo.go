package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// EchoSys fans Echo signals out to their audiences: source text to the
// source, target text to the target, other text to connected entities
// within reach.
type EchoSys struct {
	w   *engine.World
	bus *signal.Bus
}

func NewEchoSys(w *engine.World, bus *signal.Bus) *EchoSys {
	return &EchoSys{w: w, bus: bus}
}

func (s *EchoSys) Init()         {}
func (s *EchoSys) Priority() int { return constant.PriorityEcho }

func (s *EchoSys) Update(now core.Looptime) {
	if s.bus.Echo.IsEmpty() {
		return
	}

	clients := s.w.C.Connection.All()
	for _, sig := range s.bus.Echo.Iter() {
		reach := sig.Reach
		if reach == nil {
			reach = component.Adjacent
		}
		origin, hasOrigin := s.w.C.Transform.Get(sig.Source)

		for _, eid := range clients {
			pos, ok := s.w.C.Transform.Get(eid)
			if !ok {
				continue
			}

			if sig.Source == eid {
				if sig.Text != "" {
					s.bus.Outbound.Pulse(signal.Outbound{To: eid, Text: sig.Text})
				}
				continue
			}
			if sig.Target == eid && sig.TargetText != "" {
				if sig.ForceSendToTarget || (hasOrigin && reach(origin, pos)) {
					s.bus.Outbound.Pulse(signal.Outbound{To: eid, Text: sig.TargetText})
				}
				continue
			}
			if sig.OText != "" && hasOrigin && reach(origin, pos) {
				s.bus.Outbound.Pulse(signal.Outbound{To: eid, Text: sig.OText})
			}
		}
	}
}
