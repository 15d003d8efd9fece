package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Regen heals prone entities on a slow cadence. The while-loop guard
// keeps the cadence exact even after a stalled stretch of ticks.
type Regen struct {
	w   *engine.World
	bus *signal.Bus

	nextCall core.Looptime
}

func NewRegen(w *engine.World, bus *signal.Bus) *Regen {
	return &Regen{w: w, bus: bus, nextCall: constant.RegenTickRate}
}

func (s *Regen) Init()         {}
func (s *Regen) Priority() int { return constant.PriorityRegen }

func (s *Regen) Update(now core.Looptime) {
	for now >= s.nextCall {
		for _, eid := range s.w.C.Health.All() {
			health, _ := s.w.C.Health.Get(eid)
			stance, ok := s.w.C.Stance.Get(eid)
			if !ok || stance.Cur != component.LyingProne {
				continue
			}
			s.bus.HealthChanged.Pulse(signal.HealthChanged{
				Source:       eid,
				HealthChange: constant.RegenHealth,
				StressChange: constant.RegenStress,
			})
			// Fully recovered: sit up.
			if health.Cur >= constant.MaxHealth && health.Stress <= health.AggravatedStress {
				s.bus.StanceChanged.Pulse(signal.StanceChanged{
					Source: eid, Stance: component.Sitting, Prop: stance.Prop, Echo: true,
				})
			}
		}
		s.nextCall += constant.RegenTickRate
	}
}
