package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// ForageSys rolls the local biome's table against the forager's skill.
type ForageSys struct {
	w   *engine.World
	bus *signal.Bus
}

func NewForageSys(w *engine.World, bus *signal.Bus) *ForageSys {
	return &ForageSys{w: w, bus: bus}
}

func (s *ForageSys) Init()         {}
func (s *ForageSys) Priority() int { return constant.PriorityForage }

func (s *ForageSys) Update(now core.Looptime) {
	for _, sig := range s.bus.Forage.Iter() {
		s.forage(sig)
	}
}

func (s *ForageSys) forage(sig signal.Forage) {
	if !s.w.Exists(sig.Source) {
		return
	}
	tf, ok := s.w.C.Transform.Get(sig.Source)
	if !ok {
		return
	}
	skills, ok := s.w.C.Skills.Get(sig.Source)
	if !ok {
		return
	}

	spot := component.ForageSpot{Biome: "forest"}
	if env, ok := s.w.C.ForageEnvironment.Get(tf.MapID); ok {
		if chips, ok := s.w.C.Chips.Get(tf.MapID); ok {
			spot = env.SpotAt(chips, tf.Y, tf.X)
		} else {
			spot = env.Default
		}
	}

	mult, _, _ := Contest(float64(skills.Foraging.Rank), float64(spot.Richness), ContestOpts{})
	s.bus.Learn.Pulse(signal.Learn{
		Source: sig.Source, Skill: skills.Foraging.Name,
		Mult: mult, Risk: 1.0, Generation: skills.Generation,
	})

	if !TrialCheck(mult, TrialNormal) {
		StoryEcho(s.w, s.bus, "{0} {0:comes} up with nothing but dirt.",
			component.Adjacent, nil, sig.Source)
		return
	}

	entry, ok := content.RollForage(spot.Biome)
	if !ok {
		StoryEcho(s.w, s.bus, "{0} {0:comes} up with nothing but dirt.",
			component.Adjacent, nil, sig.Source)
		return
	}

	level := entry.MinLevel
	if entry.MaxLevel > entry.MinLevel {
		level += core.RNG.Intn(entry.MaxLevel - entry.MinLevel + 1)
	}
	found := content.CreateItem(s.w, content.ItemSpec{
		Key: "forage",
		Noun: &component.Noun{
			Value: entry.Noun, Pronoun: component.PronounIt, Num: core.Singular,
		},
		Level:       level,
		ContainedBy: sig.Source,
		Slot:        component.SlotAny,
	})

	StoryEcho(s.w, s.bus, "{0} {0:unearths} {1}.",
		component.Adjacent, nil, sig.Source, found)
}
