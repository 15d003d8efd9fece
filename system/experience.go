package system

import (
	"math"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// GetAward maps a contest multiplier to a fraction of TNL using an
// exponential ease-in-out bump: zero outside [mn, mx], peaking at
// mult == 1.0, scaled by a log-normal jitter.
func GetAward(mult float64) float64 {
	const (
		lo = 0.0
		hi = constant.AwardPeak
		mn = constant.AwardMinMult
		mx = constant.AwardMaxMult
	)
	if mult <= 0 || mult < mn || mult > mx {
		return lo
	}
	a := math.Log2(mult)
	denom := math.Max(math.Abs(math.Log2(mn)), math.Abs(math.Log2(mx)))
	if denom == 0 {
		denom = 1.0
	}
	t := math.Min(1.0, math.Abs(a)/denom)
	w := 1.0 - core.EaseInOutExpo(t)
	return (lo + (hi-lo)*w) * core.LogNormal(0.0, 0.4)
}

// Experience applies Learn awards and resolves rest absorption.
type Experience struct {
	w   *engine.World
	bus *signal.Bus
}

func NewExperience(w *engine.World, bus *signal.Bus) *Experience {
	return &Experience{w: w, bus: bus}
}

func (s *Experience) Init()         {}
func (s *Experience) Priority() int { return constant.PriorityExperience }

func (s *Experience) Update(now core.Looptime) {
	for _, sig := range s.bus.Learn.Iter() {
		s.learn(sig)
	}
	for _, sig := range s.bus.AbsorbRestExp.Iter() {
		s.absorb(sig)
	}
}

func (s *Experience) learn(sig signal.Learn) {
	if !s.w.Exists(sig.Source) {
		return
	}
	skills, ok := s.w.C.Skills.Get(sig.Source)
	if !ok || skills.Generation != sig.Generation {
		// Stale after a character reset.
		return
	}
	skill := skills.ByName(sig.Skill)
	if skill == nil {
		return
	}

	award := GetAward(sig.Mult * core.Clamp01(sig.Risk))
	skill.Tnl += award
	skill.Pending += award * 0.5

	ranksGained := 0
	for skill.Tnl >= 1.0 {
		ranksGained++
		skill.Tnl = (skill.Tnl - 1.0) * constant.TnlSpillover
	}
	if ranksGained > 0 {
		skill.Rank += ranksGained
		if s.w.C.Connection.Has(sig.Source) {
			s.bus.Outbound.Pulse(signal.Outbound{
				To:   sig.Source,
				Text: "You gain " + core.Tally(ranksGained, "rank") + " in " + skill.Name + ".",
			})
		}
		s.recordGain(sig.Source, skill.Name, ranksGained)
	}
	s.w.C.Skills.Add(sig.Source, skills)

	if s.w.C.Connection.Has(sig.Source) {
		s.bus.OutboundSkill.Pulse(signal.OutboundSkill{
			To: sig.Source, Name: skill.Name, Rank: skill.Rank,
			Tnl: skill.Tnl, Pending: skill.Pending,
		})
	}
}

func (s *Experience) recordGain(e core.Entity, skill string, ranks int) {
	gains, ok := s.w.C.LastRestGains.Get(e)
	if !ok {
		gains = &component.LastRestGains{Gains: make(map[string]int)}
		s.w.C.LastRestGains.Add(e, gains)
	}
	gains.Gains[skill] += ranks
}

// absorb moves pending experience into TNL with the rest bonus. An
// idle night (no pending) grows the bonus instead.
func (s *Experience) absorb(sig signal.AbsorbRestExp) {
	skills, ok := s.w.C.Skills.Get(sig.Source)
	if !ok {
		return
	}
	for _, skill := range skills.All() {
		if skill.RestBonus < 1.0 {
			skill.RestBonus = 1.0
		}
		if skill.Pending > 0 {
			skill.Tnl += skill.Pending * skill.RestBonus
			skill.Pending = 0
			skill.RestBonus = 1.0
			ranks := 0
			for skill.Tnl >= 1.0 {
				ranks++
				skill.Tnl = (skill.Tnl - 1.0) * constant.TnlSpillover
			}
			skill.Rank += ranks
			if ranks > 0 {
				s.recordGain(sig.Source, skill.Name, ranks)
			}
		} else {
			skill.RestBonus = math.Min(skill.RestBonus*constant.RestBonusGrowth, constant.RestBonusMax)
		}
		if s.w.C.Connection.Has(sig.Source) {
			s.bus.OutboundSkill.Pulse(signal.OutboundSkill{
				To: sig.Source, Name: skill.Name, Rank: skill.Rank,
				Tnl: skill.Tnl, Pending: skill.Pending,
			})
		}
	}
	s.w.C.Skills.Add(sig.Source, skills)
}
