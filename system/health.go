package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// HealthSys is the single writer of Health pools. It applies deltas,
// derives condition transitions, and reports both to clients.
type HealthSys struct {
	w   *engine.World
	bus *signal.Bus
}

func NewHealthSys(w *engine.World, bus *signal.Bus) *HealthSys {
	return &HealthSys{w: w, bus: bus}
}

func (s *HealthSys) Init()         {}
func (s *HealthSys) Priority() int { return constant.PriorityHealth }

func conditionFor(cur float64) component.Condition {
	switch {
	case cur <= -50:
		return component.ConditionDead
	case cur <= -25:
		return component.ConditionInShock
	case cur <= 0:
		return component.ConditionUnconscious
	default:
		return component.ConditionNormal
	}
}

func (s *HealthSys) Update(now core.Looptime) {
	for _, sig := range s.bus.HealthChanged.Iter() {
		h, ok := s.w.C.Health.Get(sig.Source)
		if !ok {
			continue
		}
		h.Cur += sig.HealthChange
		if h.Cur > constant.MaxHealth {
			h.Cur = constant.MaxHealth
		}
		h.Stress += sig.StressChange
		if h.Stress < 0 {
			h.Stress = 0
		}

		was := h.Condition
		is := conditionFor(h.Cur)
		// Death is sticky until an explicit revive path exists.
		if was != component.ConditionDead {
			h.Condition = is
		}
		s.w.C.Health.Add(sig.Source, h)

		if s.w.C.Connection.Has(sig.Source) {
			s.bus.OutboundHealth.Pulse(signal.OutboundHealth{
				To: sig.Source, Source: sig.Source,
				Pct:       core.Clamp01(h.Cur / constant.MaxHealth),
				StressPct: core.Clamp01(h.Stress / constant.MaxHealth),
			})
		}

		if was != h.Condition {
			s.bus.ConditionChanged.Pulse(signal.ConditionChanged{
				Source: sig.Source, Condition: h.Condition,
			})
			if h.Condition == component.ConditionDead {
				s.bus.Die.Pulse(signal.Die{Source: sig.Source})
			}
		}
	}

	for _, sig := range s.bus.ConditionChanged.Iter() {
		text := string(sig.Condition)
		if s.w.C.Connection.Has(sig.Source) {
			s.bus.OutboundCondition.Pulse(signal.OutboundCondition{
				To: sig.Source, Source: sig.Source, Text: text,
			})
		}
		if tf, ok := s.w.C.Transform.Get(sig.Source); ok {
			for _, other := range s.w.C.Connection.All() {
				if other == sig.Source {
					continue
				}
				if otf, ok := s.w.C.Transform.Get(other); ok && component.Visible(tf, otf) {
					s.bus.OutboundCondition.Pulse(signal.OutboundCondition{
						To: other, Source: sig.Source, Text: text,
					})
				}
			}
		}
	}
}
