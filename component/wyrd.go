package component

import "github.com/dzaramelcone/ninjamagic/core"

// Wyrd marks a player carrying fire from an anchor. The bound anima item
// and the modifier components added on entry are tracked for cleanup.
type Wyrd struct {
	Anima core.Entity
}

// Anima is the carried fire itself, bound to its source anchor and
// whatever was sacrificed for it.
type Anima struct {
	SourceAnchor core.Entity
	SourcePlayer core.Entity
	Stat         string
	Skill        string
	Rank         int
}

// StatSickness is the price of a stat sacrifice.
type StatSickness struct {
	Stat            string
	NightsRemaining int
}

// LastRestGains remembers the ranks gained at the last rest, per skill.
type LastRestGains struct {
	Gains map[string]int
}

// Ate records the best meal eaten since the last rest.
type Ate struct {
	MealLevel int
	Pips      int
}
