package system

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/nightclock"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Rest tuning.
const (
	restHealth           = 45.0
	restStress           = -75.0
	restAggravatedStress = -125.0
)

// Survive resolves eating and the nightly rest check.
type Survive struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger
}

func NewSurvive(w *engine.World, bus *signal.Bus, log *logrus.Logger) *Survive {
	return &Survive{w: w, bus: bus, log: log}
}

func (s *Survive) Init()         {}
func (s *Survive) Priority() int { return constant.PrioritySurvive }

func (s *Survive) Update(now core.Looptime) {
	for _, sig := range s.bus.Eat.Iter() {
		s.eat(sig)
	}
	if !s.bus.RestCheck.IsEmpty() {
		s.rest()
	}
}

func (s *Survive) hostilityAt(tf component.Transform) int {
	h, ok := s.w.C.Hostility.Get(tf.MapID)
	if !ok {
		return 0
	}
	chips, ok := s.w.C.Chips.Get(tf.MapID)
	if !ok {
		return h.Default
	}
	return h.RankAt(chips, tf.Y, tf.X)
}

// eat scores a meal in pips: quality of food, posture, light, warmth,
// safety, company. The best meal since last rest carries forward.
func (s *Survive) eat(sig signal.Eat) {
	if !s.w.Exists(sig.Source) || !s.w.Exists(sig.Food) {
		return
	}
	skills, ok := s.w.C.Skills.Get(sig.Source)
	if !ok {
		return
	}
	stance, ok := s.w.C.Stance.Get(sig.Source)
	if !ok {
		return
	}
	food, ok := s.w.C.Food.Get(sig.Food)
	if !ok {
		return
	}
	foodLvl := s.w.C.Level.MustGet(sig.Food).Value

	prop := core.None
	if s.w.Exists(stance.Prop) {
		prop = stance.Prop
	}

	hurdle := skills.Highest()
	mult, _, _ := Contest(float64(foodLvl), float64(hurdle), ContestOpts{JitterPct: -1})

	isTasty := TrialCheck(mult, TrialSomewhatEasy)
	isVeryTasty := TrialCheck(mult, TrialHard)
	isResting := stance.Cur == component.Sitting || stance.Cur == component.LyingProne
	isWarm := prop != core.None && s.w.C.ProvidesHeat.Has(prop)
	isLit := prop != core.None && s.w.C.ProvidesLight.Has(prop)
	isLit = isLit || nightclock.Now().BrightnessIndex() >= 6
	isSafe := prop != core.None && s.w.C.Anchor.Has(prop)
	hostility := 0
	if !isSafe {
		if tf, ok := s.w.C.Transform.Get(sig.Source); ok {
			hostility = s.hostilityAt(tf)
			survMult, _, _ := Contest(float64(skills.Survival.Rank), float64(hostility), ContestOpts{})
			isSafe = TrialCheck(survMult, TrialNormal)
			s.bus.Learn.Pulse(signal.Learn{
				Source: sig.Source, Skill: skills.Survival.Name,
				Mult: survMult, Risk: 1.0, Generation: skills.Generation,
			})
		}
	}

	anyLeft := food.Count - 1
	if anyLeft > 0 {
		s.w.C.Food.Add(sig.Food, component.Food{Count: anyLeft})
	} else {
		defer s.w.Destroy(sig.Food)
	}

	isShared := false
	if prop != core.None {
		for _, other := range s.w.C.Connection.All() {
			if other == sig.Source {
				continue
			}
			if st, ok := s.w.C.Stance.Get(other); ok && st.Prop == prop {
				isShared = true
				break
			}
		}
	}

	pips := 0
	for _, check := range []bool{isTasty, isVeryTasty, isResting, isLit, isWarm, isSafe,
		isShared, isShared, isShared, isShared} {
		if check {
			pips++
		}
	}

	var conditions []string
	if !isSafe {
		conditions = append(conditions, "hostile")
	}
	if !isWarm {
		conditions = append(conditions, "cold")
	}
	if !isLit {
		conditions = append(conditions, "dark")
	}

	lvl := foodLvl
	if lvl < 1 {
		lvl = 1
	}
	nourishment := lvl * pips
	final := nourishment
	alreadyAte, hadMeal := s.w.C.Ate.Get(sig.Source)
	if hadMeal && alreadyAte.MealLevel > final {
		final = alreadyAte.MealLevel
	}
	s.w.C.Ate.Add(sig.Source, component.Ate{MealLevel: final, Pips: pips})

	quality := s.mealQuality(sig.Source, nourishment, pips, alreadyAte, hadMeal)

	verb := "{0:chokes} down"
	if isResting {
		verb = "{0:eats}"
	}
	if isShared {
		verb = "{0:shares} a meal of"
	}

	parts := []string{"{0}", verb}
	if anyLeft <= 0 {
		parts = append(parts, "the last of")
	}
	parts = append(parts, "{1}")
	if len(conditions) > 0 {
		parts = append(parts, "in the", strings.Join(conditions, " "))
	}
	if prop != core.None && isWarm {
		parts = append(parts, "by {2}")
	}
	msg := strings.Join(parts, " ") + ". " + quality

	StoryEcho(s.w, s.bus, msg, component.Adjacent, nil, sig.Source, sig.Food, prop)

	s.log.WithFields(logrus.Fields{
		"source": sig.Source, "food_lvl": foodLvl, "hostility": hostility,
		"pips": pips, "final": final,
	}).Info("eat")
}

func (s *Survive) mealQuality(e core.Entity, nourishment, pips int, prev component.Ate, hadMeal bool) string {
	if hadMeal {
		switch {
		case float64(nourishment) > float64(prev.MealLevel)*1.5:
			return "A proper meal, finally."
		case nourishment > prev.MealLevel:
			return "Better than before."
		case nourishment == prev.MealLevel:
			return "More of the same."
		default:
			return "It's worse than what {0:they} already ate."
		}
	}
	switch {
	case pips > 11:
		return "It soothes the soul."
	case pips > 5:
		return "It's nourishing."
	case pips > 4:
		return "It'll do."
	case pips > 3:
		return "It leaves {0:them} wanting."
	default:
		if h, ok := s.w.C.Health.Get(e); ok && h.Stress > 80 {
			return "Hearth and home feel forever away."
		}
		return "Awful."
	}
}

// rest resolves the night for every player: heal those who camped,
// consolidate pending experience. A player who did not camp, or failed
// the survival check, gets only a rough-night message; no penalty is
// applied.
func (s *Survive) rest() {
	for _, eid := range s.w.C.Connection.All() {
		tf, hasTf := s.w.C.Transform.Get(eid)
		health, ok := s.w.C.Health.Get(eid)
		if !ok {
			continue
		}
		stance, ok := s.w.C.Stance.Get(eid)
		if !ok {
			continue
		}
		skills, ok := s.w.C.Skills.Get(eid)
		if !ok {
			continue
		}

		// Last night's meal is spent either way.
		ate, hadMeal := s.w.C.Ate.Get(eid)
		s.w.C.Ate.Remove(eid)

		if health.Condition != component.ConditionNormal {
			continue
		}

		camping := stance.Cur == component.Sitting || stance.Cur == component.LyingProne
		if !camping {
			StoryEcho(s.w, s.bus, "{0} {0:endures} a rough night.", component.Adjacent, nil, eid)
			continue
		}

		prop := stance.Prop
		atAnchor := s.w.Exists(prop) && s.w.C.Anchor.Has(prop)
		rested := false

		if atAnchor {
			s.bus.GrowAnchor.Pulse(signal.GrowAnchor{
				Anchor: prop, PlayerRank: skills.Survival.Rank,
			})
			rested = true
		} else if hasTf {
			hostility := s.hostilityAt(tf)
			mult, _, _ := Contest(float64(skills.Survival.Rank), float64(hostility), ContestOpts{})
			rested = TrialCheck(mult, TrialNormal)
			s.bus.Learn.Pulse(signal.Learn{
				Source: eid, Skill: skills.Survival.Name,
				Mult: mult, Risk: 1.0, Generation: skills.Generation,
			})
		}

		if rested {
			heal := restHealth
			if hadMeal {
				heal += float64(ate.MealLevel)
			}
			s.bus.HealthChanged.Pulse(signal.HealthChanged{
				Source: eid, HealthChange: heal, StressChange: restStress,
			})
			s.bus.AbsorbRestExp.Pulse(signal.AbsorbRestExp{Source: eid})
			StoryEcho(s.w, s.bus, "{0} {0:wakes} rested.", component.Adjacent, nil, eid)
		} else {
			StoryEcho(s.w, s.bus, "{0} {0:endures} a rough night.", component.Adjacent, nil, eid)
		}
	}
}
