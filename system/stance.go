package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

var stanceVerbs = map[component.Posture]string{
	component.Standing:   "{0} {0:stands} up.",
	component.Kneeling:   "{0} {0:kneels}.",
	component.Sitting:    "{0} {0:sits} down.",
	component.LyingProne: "{0} {0:lies} down.",
}

// StanceSys applies stance changes and reports them.
type StanceSys struct {
	w   *engine.World
	bus *signal.Bus
}

func NewStanceSys(w *engine.World, bus *signal.Bus) *StanceSys {
	return &StanceSys{w: w, bus: bus}
}

func (s *StanceSys) Init()         {}
func (s *StanceSys) Priority() int { return constant.PriorityStance }

func (s *StanceSys) Update(now core.Looptime) {
	for _, sig := range s.bus.StanceChanged.Iter() {
		if !s.w.Exists(sig.Source) {
			continue
		}
		s.w.C.Stance.Add(sig.Source, component.Stance{Cur: sig.Stance, Prop: sig.Prop})

		if sig.Echo {
			StoryEcho(s.w, s.bus, stanceVerbs[sig.Stance], component.Visible, nil, sig.Source)
		}

		text := string(sig.Stance)
		if s.w.C.Connection.Has(sig.Source) {
			s.bus.OutboundStance.Pulse(signal.OutboundStance{
				To: sig.Source, Source: sig.Source, Text: text,
			})
		}
		// Observers in view track stance for rendering.
		if tf, ok := s.w.C.Transform.Get(sig.Source); ok {
			for _, other := range s.w.C.Connection.All() {
				if other == sig.Source {
					continue
				}
				if otf, ok := s.w.C.Transform.Get(other); ok && component.Visible(tf, otf) {
					s.bus.OutboundStance.Pulse(signal.OutboundStance{
						To: other, Source: sig.Source, Text: text,
					})
				}
			}
		}
	}
}
