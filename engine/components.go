package engine

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
)

// Components holds every typed store, one named field each, for direct
// system access with compile-time type safety.
type Components struct {
	// Placement
	Transform   *Store[component.Transform]
	ContainedBy *Store[component.ContainedBy]
	Slot        *Store[component.Slot]

	// Identity
	Noun  *Store[component.Noun]
	Glyph *Store[component.Glyph]

	// Vitals
	Health *Store[component.Health]
	Stance *Store[component.Stance]
	Stats  *Store[component.Stats]
	Skills *Store[component.Skills]

	// Connection state
	Connection *Store[component.Connection]
	Lag        *Store[component.Lag]
	Prompt     *Store[component.Prompt]
	OwnerID    *Store[component.OwnerID]

	// Terrain
	Chips             *Store[*component.Chips]
	ChipSet           *Store[component.ChipSet]
	TileInstantiation *Store[*component.TileInstantiation]
	Hostility         *Store[*component.Hostility]
	ForageEnvironment *Store[*component.ForageEnvironment]

	// AI
	Drives        *Store[component.Drives]
	BehaviorQueue *Store[*component.BehaviorQueue]
	Target        *Store[component.Target]
	Den           *Store[*component.Den]
	FromDen       *Store[component.FromDen]

	// Combat
	Stunned               *Store[component.Stunned]
	DoubleDamage          *Store[component.DoubleDamage]
	DamageTakenMultiplier *Store[component.DamageTakenMultiplier]
	ProcBonus             *Store[component.ProcBonus]

	// Items
	ItemKey         *Store[component.ItemKey]
	Level           *Store[component.Level]
	Container       *Store[component.Container]
	Cookware        *Store[component.Cookware]
	Weapon          *Store[component.Weapon]
	Wearable        *Store[component.Wearable]
	Armor           *Store[component.Armor]
	Food            *Store[component.Food]
	Ingredient      *Store[component.Ingredient]
	Rotting         *Store[component.Rotting]
	Junk            *Store[component.Junk]
	DoNotSave       *Store[component.DoNotSave]
	ProvidesLight   *Store[component.ProvidesLight]
	ProvidesHeat    *Store[component.ProvidesHeat]
	ProvidesShelter *Store[component.ProvidesShelter]

	// World features
	Anchor   *Store[component.Anchor]
	Blocking *Store[component.Blocking]
	Gas      *Store[*component.Gas]
	GasBox   *Store[*component.AABB]

	// Wyrd
	Wyrd          *Store[component.Wyrd]
	Anima         *Store[component.Anima]
	StatSickness  *Store[component.StatSickness]
	LastRestGains *Store[*component.LastRestGains]
	Ate           *Store[component.Ate]
}

func newComponents() (*Components, []AnyStore) {
	c := &Components{
		Transform:   NewStore[component.Transform](),
		ContainedBy: NewStore[component.ContainedBy](),
		Slot:        NewStore[component.Slot](),

		Noun:  NewStore[component.Noun](),
		Glyph: NewStore[component.Glyph](),

		Health: NewStore[component.Health](),
		Stance: NewStore[component.Stance](),
		Stats:  NewStore[component.Stats](),
		Skills: NewStore[component.Skills](),

		Connection: NewStore[component.Connection](),
		Lag:        NewStore[component.Lag](),
		Prompt:     NewStore[component.Prompt](),
		OwnerID:    NewStore[component.OwnerID](),

		Chips:             NewStore[*component.Chips](),
		ChipSet:           NewStore[component.ChipSet](),
		TileInstantiation: NewStore[*component.TileInstantiation](),
		Hostility:         NewStore[*component.Hostility](),
		ForageEnvironment: NewStore[*component.ForageEnvironment](),

		Drives:        NewStore[component.Drives](),
		BehaviorQueue: NewStore[*component.BehaviorQueue](),
		Target:        NewStore[component.Target](),
		Den:           NewStore[*component.Den](),
		FromDen:       NewStore[component.FromDen](),

		Stunned:               NewStore[component.Stunned](),
		DoubleDamage:          NewStore[component.DoubleDamage](),
		DamageTakenMultiplier: NewStore[component.DamageTakenMultiplier](),
		ProcBonus:             NewStore[component.ProcBonus](),

		ItemKey:         NewStore[component.ItemKey](),
		Level:           NewStore[component.Level](),
		Container:       NewStore[component.Container](),
		Cookware:        NewStore[component.Cookware](),
		Weapon:          NewStore[component.Weapon](),
		Wearable:        NewStore[component.Wearable](),
		Armor:           NewStore[component.Armor](),
		Food:            NewStore[component.Food](),
		Ingredient:      NewStore[component.Ingredient](),
		Rotting:         NewStore[component.Rotting](),
		Junk:            NewStore[component.Junk](),
		DoNotSave:       NewStore[component.DoNotSave](),
		ProvidesLight:   NewStore[component.ProvidesLight](),
		ProvidesHeat:    NewStore[component.ProvidesHeat](),
		ProvidesShelter: NewStore[component.ProvidesShelter](),

		Anchor:   NewStore[component.Anchor](),
		Blocking: NewStore[component.Blocking](),
		Gas:      NewStore[*component.Gas](),
		GasBox:   NewStore[*component.AABB](),

		Wyrd:          NewStore[component.Wyrd](),
		Anima:         NewStore[component.Anima](),
		StatSickness:  NewStore[component.StatSickness](),
		LastRestGains: NewStore[*component.LastRestGains](),
		Ate:           NewStore[component.Ate](),
	}

	all := []AnyStore{
		c.Transform, c.ContainedBy, c.Slot,
		c.Noun, c.Glyph,
		c.Health, c.Stance, c.Stats, c.Skills,
		c.Connection, c.Lag, c.Prompt, c.OwnerID,
		c.Chips, c.ChipSet, c.TileInstantiation, c.Hostility, c.ForageEnvironment,
		c.Drives, c.BehaviorQueue, c.Target, c.Den, c.FromDen,
		c.Stunned, c.DoubleDamage, c.DamageTakenMultiplier, c.ProcBonus,
		c.ItemKey, c.Level, c.Container, c.Cookware, c.Weapon, c.Wearable,
		c.Armor, c.Food, c.Ingredient, c.Rotting, c.Junk, c.DoNotSave,
		c.ProvidesLight, c.ProvidesHeat, c.ProvidesShelter,
		c.Anchor, c.Blocking, c.Gas, c.GasBox,
		c.Wyrd, c.Anima, c.StatSickness, c.LastRestGains, c.Ate,
	}
	return c, all
}

// Contents lists the direct children of a container.
func (w *World) Contents(container core.Entity) []core.Entity {
	var out []core.Entity
	for _, e := range w.C.ContainedBy.All() {
		cb, ok := w.C.ContainedBy.Get(e)
		if ok && cb.Parent == container {
			out = append(out, e)
		}
	}
	return out
}
