package component

// ItemKey names the template an item was instantiated from.
type ItemKey struct {
	Key string
}

// Level is an item's quality tier.
type Level struct {
	Value int
}

// Container marks an entity whose contents are resolved by querying
// ContainedBy edges pointing at it.
type Container struct{}

// Cookware tags a container that supports cooking.
type Cookware struct{}

// Weapon carries base damage and the story table used for its hits.
type Weapon struct {
	Damage   float64
	StoryKey string
	SkillKey string
}

// Wearable declares the slot an item occupies when worn.
type Wearable struct {
	Slot Slot
}

// Armor mitigates incoming damage by a flat fraction.
type Armor struct {
	Mitigation float64
}

// Food is edible; Count portions remain.
type Food struct {
	Count int
}

// Ingredient can go into cookware.
type Ingredient struct{}

// Rotting items rot on the nightly check.
type Rotting struct{}

// Junk is swept on the nightly rest check.
type Junk struct{}

// DoNotSave excludes an entity from inventory persistence.
type DoNotSave struct{}

// ProvidesLight, ProvidesHeat and ProvidesShelter tag props that improve
// resting and eating.
type ProvidesLight struct{}

type ProvidesHeat struct{}

type ProvidesShelter struct {
	Prompt string
}
