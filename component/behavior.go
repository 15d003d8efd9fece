package component

import "github.com/dzaramelcone/ninjamagic/core"

// BehaviorKind tags one scripted behavior variant.
type BehaviorKind uint8

const (
	SelectNearestPlayer BehaviorKind = iota
	SelectNearestAnchor
	PathTowardEntity
	PathTowardCoordinate
	AttackTarget
	FleeFromEntity
	Wait
)

// Behavior is one entry in a mob's script. Fields beyond Kind are
// interpreted per variant: Target for entity-directed behaviors, (Y, X)
// for coordinate pathing, Until for waits.
type Behavior struct {
	Kind   BehaviorKind
	Target core.Entity
	Y, X   int
	Until  core.Looptime
}

// BehaviorQueue is an ordered script; each tick the first behavior whose
// preconditions hold executes and processing stops.
type BehaviorQueue struct {
	Items []Behavior
}

// Target records a mob's current quarry. At most one; re-adding
// replaces.
type Target struct {
	Entity core.Entity
}
