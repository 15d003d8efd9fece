package system

import (
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// CookSys turns the ingredients in a cookware container into one meal,
// its level decided by a cooking contest against the best ingredient.
type CookSys struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger
}

func NewCookSys(w *engine.World, bus *signal.Bus, log *logrus.Logger) *CookSys {
	return &CookSys{w: w, bus: bus, log: log}
}

func (s *CookSys) Init()         {}
func (s *CookSys) Priority() int { return constant.PriorityCook }

func (s *CookSys) Update(now core.Looptime) {
	for _, sig := range s.bus.Cook.Iter() {
		s.cook(sig)
	}
}

func (s *CookSys) cook(sig signal.Cook) {
	if !s.w.Exists(sig.Source) || !s.w.Exists(sig.Cookware) {
		return
	}
	skills, ok := s.w.C.Skills.Get(sig.Source)
	if !ok {
		return
	}
	cooking := &skills.Cooking

	var ingredients []core.Entity
	for _, item := range s.w.Contents(sig.Cookware) {
		if s.w.C.Ingredient.Has(item) {
			ingredients = append(ingredients, item)
		}
	}
	if len(ingredients) == 0 {
		StoryEcho(s.w, s.bus, "{0} {0:warms} {1}, empty as it is.",
			component.Adjacent, nil, sig.Source, sig.Cookware)
		return
	}

	bestMult := -1.0
	mealLevel := -1
	var mealNoun component.Noun
	for _, ing := range ingredients {
		lvl := s.w.C.Level.MustGet(ing).Value
		mult, ar, dr := Contest(float64(cooking.Rank), float64(lvl), ContestOpts{MaxMult: 2})
		if mult > bestMult {
			bestMult = mult
		}
		resultLevel := int(mult * (ar + dr) / 2)
		if resultLevel > mealLevel {
			mealLevel = resultLevel
			mealNoun = nounOf(s.w, ing)
		}
		s.w.Destroy(ing)
	}

	adj := "seared"
	flavor := ""
	if float64(mealLevel) > float64(cooking.Rank)*1.2 {
		adj = "sauteed"
		flavor = "It smells delicious!"
	}
	if float64(mealLevel) < float64(cooking.Rank)*0.8 {
		adj = "burnt"
		flavor = "Acrid smoke assaults your senses!"
	}

	meal := content.CreateItem(s.w, content.ItemSpec{
		Key: "meal",
		Noun: &component.Noun{
			Value: mealNoun.Value, Adjective: adj,
			Pronoun: component.PronounIt, Num: core.Singular,
		},
		Level:       mealLevel,
		ContainedBy: sig.Cookware,
		Slot:        component.SlotAny,
	})

	StoryEcho(s.w, s.bus, "{0} {0:cooks} a meal in {1}. "+flavor,
		component.Adjacent, nil, sig.Source, sig.Cookware)

	s.bus.Learn.Pulse(signal.Learn{
		Source: sig.Source, Skill: cooking.Name,
		Mult: bestMult, Risk: 1.0, Generation: skills.Generation,
	})

	s.log.WithFields(logrus.Fields{
		"chef": sig.Source, "meal": meal, "level": mealLevel,
	}).Info("cook")
}
