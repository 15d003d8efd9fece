package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// EmitSys sends Emit text to connected bystanders within reach of the
// source, with target override.
type EmitSys struct {
	w   *engine.World
	bus *signal.Bus
}

func NewEmitSys(w *engine.World, bus *signal.Bus) *EmitSys {
	return &EmitSys{w: w, bus: bus}
}

func (s *EmitSys) Init()         {}
func (s *EmitSys) Priority() int { return constant.PriorityEmit }

func (s *EmitSys) Update(now core.Looptime) {
	if s.bus.Emit.IsEmpty() {
		return
	}

	clients := s.w.C.Connection.All()
	for _, sig := range s.bus.Emit.Iter() {
		origin, ok := s.w.C.Transform.Get(sig.Source)
		if !ok {
			continue
		}
		reach := sig.Reach
		if reach == nil {
			reach = component.Adjacent
		}

		for _, eid := range clients {
			if sig.Source == eid {
				continue
			}
			pos, ok := s.w.C.Transform.Get(eid)
			if !ok {
				continue
			}
			if sig.TargetText != "" && sig.Target == eid {
				s.bus.Outbound.Pulse(signal.Outbound{To: eid, Text: sig.TargetText})
				continue
			}
			if reach(origin, pos) {
				s.bus.Outbound.Pulse(signal.Outbound{To: eid, Text: sig.Text})
			}
		}
	}
}
