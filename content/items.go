// Package content holds the authored tables the simulation consumes:
// item templates, story fragments, and forage tables.
package content

import (
	"fmt"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

// ItemTemplate declares the components an item key instantiates with.
// Nil fields are absent from the template.
type ItemTemplate struct {
	Noun            component.Noun
	Glyph           component.Glyph
	Weapon          *component.Weapon
	Armor           *component.Armor
	Container       bool
	Cookware        bool
	Food            *component.Food
	Ingredient      bool
	Rotting         bool
	DoNotSave       bool
	ProvidesLight   bool
	ProvidesHeat    bool
	ProvidesShelter string
	Wearable        *component.Wearable
	Anchor          *component.Anchor
}

// ItemTypes is the template table, keyed by item key.
var ItemTypes = map[string]ItemTemplate{
	"scenery": {
		Noun:  component.Noun{Value: "scenery", Pronoun: component.PronounIt, Num: core.Plural},
		Glyph: component.Glyph{Char: 'ო', H: 0.33, S: 0.6, V: 0.6},
	},
	"prop": {
		Noun:  component.Noun{Value: "prop", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph: component.Glyph{Char: '?', H: 0.0, S: 0.0, V: 0.7},
	},
	"torch": {
		Noun:          component.Noun{Value: "torch", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:         component.Glyph{Char: '!', H: 0.1, S: 0.8, V: 0.9},
		ProvidesLight: true,
	},
	"bonfire": {
		Noun:          component.Noun{Value: "bonfire", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:         component.Glyph{Char: '⚶', H: 0.95, S: 0.6, V: 0.65},
		ProvidesHeat:  true,
		ProvidesLight: true,
		Anchor: &component.Anchor{
			Rank: 1, Threshold: 24, MaxFuel: 100, Fuel: 100,
			RankupEcho: "{0} flares, casting back the darkness.",
		},
	},
	"broadsword": {
		Noun:   component.Noun{Value: "broadsword", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:  component.Glyph{Char: '/', H: 0.0, S: 0.1, V: 0.8},
		Weapon: &component.Weapon{Damage: 15.0, StoryKey: "blade", SkillKey: "Martial Arts"},
	},
	"hide armor": {
		Noun:     component.Noun{Value: "hide armor", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:    component.Glyph{Char: ']', H: 0.08, S: 0.45, V: 0.45},
		Armor:    &component.Armor{Mitigation: 0.25},
		Wearable: &component.Wearable{Slot: component.SlotArmor},
	},
	"backpack": {
		Noun:      component.Noun{Value: "backpack", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:     component.Glyph{Char: '(', H: 0.08, S: 0.5, V: 0.5},
		Container: true,
		Wearable:  &component.Wearable{Slot: component.SlotBack},
	},
	"bedroll": {
		Noun:            component.Noun{Value: "bedroll", Adjective: "leather", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:           component.Glyph{Char: '=', H: 0.1, S: 0.4, V: 0.5},
		ProvidesShelter: "settle into bedroll",
	},
	"cookpot": {
		Noun:      component.Noun{Value: "cookpot", Adjective: "crude", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:     component.Glyph{Char: 'u', H: 0.08, S: 0.3, V: 0.4},
		Container: true,
		Cookware:  true,
	},
	"meal": {
		Noun:    component.Noun{Value: "meal", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:   component.Glyph{Char: 'ʘ', H: 0.33, S: 0.65, V: 0.55},
		Food:    &component.Food{Count: 1},
		Rotting: true,
	},
	"forage": {
		Noun:       component.Noun{Value: "forage", Pronoun: component.PronounIt, Num: core.Plural},
		Glyph:      component.Glyph{Char: '♣', H: 0.33, S: 0.65, V: 0.55},
		Ingredient: true,
	},
	"corpse": {
		Noun:      component.Noun{Value: "corpse", Pronoun: component.PronounIt, Num: core.Singular},
		Glyph:     component.Glyph{Char: '%', H: 0.0, S: 0.0, V: 0.4},
		Rotting:   true,
		DoNotSave: true,
	},
}

// ItemSpec is the create-time shape of an item.
type ItemSpec struct {
	Key         string
	Transform   component.Transform
	Level       int
	ContainedBy core.Entity
	Slot        component.Slot

	// Overrides replace template components when set.
	Noun  *component.Noun
	Glyph *component.Glyph
	Food  *component.Food

	// Extra marks applied after the template.
	DoNotSave bool
	Junk      bool
}

// ValidateItemKey fails fast at the authoring boundary.
func ValidateItemKey(key string) error {
	if _, ok := ItemTypes[key]; !ok {
		return fmt.Errorf("content: unknown item key %q", key)
	}
	return nil
}

// CreateItem instantiates an entity from a template, then layers
// overrides, then placement. Unknown keys panic: loaders validate at
// ingress, so inside the loop this never fires.
func CreateItem(w *engine.World, spec ItemSpec) core.Entity {
	tpl, ok := ItemTypes[spec.Key]
	if !ok {
		panic(fmt.Sprintf("content: unknown item key %q", spec.Key))
	}

	eid := w.Create()
	w.C.ItemKey.Add(eid, component.ItemKey{Key: spec.Key})
	w.C.Level.Add(eid, component.Level{Value: spec.Level})

	noun := tpl.Noun
	if spec.Noun != nil {
		noun = *spec.Noun
	}
	w.C.Noun.Add(eid, noun)

	glyph := tpl.Glyph
	if spec.Glyph != nil {
		glyph = *spec.Glyph
	}
	w.C.Glyph.Add(eid, glyph)

	if tpl.Weapon != nil {
		w.C.Weapon.Add(eid, *tpl.Weapon)
	}
	if tpl.Armor != nil {
		w.C.Armor.Add(eid, *tpl.Armor)
	}
	if tpl.Wearable != nil {
		w.C.Wearable.Add(eid, *tpl.Wearable)
	}
	if tpl.Anchor != nil {
		w.C.Anchor.Add(eid, *tpl.Anchor)
	}
	if tpl.Container {
		w.C.Container.Add(eid, component.Container{})
	}
	if tpl.Cookware {
		w.C.Cookware.Add(eid, component.Cookware{})
	}
	if tpl.Food != nil || spec.Food != nil {
		food := tpl.Food
		if spec.Food != nil {
			food = spec.Food
		}
		w.C.Food.Add(eid, *food)
	}
	if tpl.Ingredient {
		w.C.Ingredient.Add(eid, component.Ingredient{})
	}
	if tpl.Rotting {
		w.C.Rotting.Add(eid, component.Rotting{})
	}
	if tpl.DoNotSave || spec.DoNotSave {
		w.C.DoNotSave.Add(eid, component.DoNotSave{})
	}
	if tpl.ProvidesLight {
		w.C.ProvidesLight.Add(eid, component.ProvidesLight{})
	}
	if tpl.ProvidesHeat {
		w.C.ProvidesHeat.Add(eid, component.ProvidesHeat{})
	}
	if tpl.ProvidesShelter != "" {
		w.C.ProvidesShelter.Add(eid, component.ProvidesShelter{Prompt: tpl.ProvidesShelter})
	}
	if spec.Junk {
		w.C.Junk.Add(eid, component.Junk{})
	}

	if spec.ContainedBy != core.None {
		w.C.ContainedBy.Add(eid, component.ContainedBy{Parent: spec.ContainedBy})
		w.C.Slot.Add(eid, spec.Slot)
	} else {
		w.C.Transform.Add(eid, spec.Transform)
		w.C.Slot.Add(eid, spec.Slot)
	}
	return eid
}
