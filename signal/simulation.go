package signal

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
)

// Parse asks the command dispatcher to handle a line that has cleared
// prompt and lag handling.
type Parse struct {
	Source core.Entity
	Text   string
}

// MoveCompass is an intent to step in a compass direction.
type MoveCompass struct {
	Source core.Entity
	Dir    core.Compass
}

// MovePosition is an intent to move to absolute coordinates. Moving a
// contained or slotted item back into the world resets its containment.
type MovePosition struct {
	Source core.Entity
	ToMap  core.Entity
	ToY    int
	ToX    int
	Quiet  bool
}

// MoveEntity puts the source into a container at a slot.
type MoveEntity struct {
	Source    core.Entity
	Container core.Entity
	Slot      component.Slot
}

// PositionChanged is authored only by the movement system; the mutation
// itself happens at the end of the movement pass.
type PositionChanged struct {
	Source  core.Entity
	FromMap core.Entity
	FromY   int
	FromX   int
	ToMap   core.Entity
	ToY     int
	ToX     int
	Quiet   bool
}

// StanceChanged is an intent or report of a posture change.
type StanceChanged struct {
	Source core.Entity
	Stance component.Posture
	Prop   core.Entity
	Echo   bool
}

// ConditionChanged reports a health condition transition.
type ConditionChanged struct {
	Source    core.Entity
	Condition component.Condition
}

// HealthChanged applies deltas to a health pool.
type HealthChanged struct {
	Source       core.Entity
	HealthChange float64
	StressChange float64
}

// Melee is one entity attacking another in melee.
type Melee struct {
	Source core.Entity
	Target core.Entity
	Verb   string
}

// Proc applies a per-verb combat side effect.
type Proc struct {
	Verb   string
	Source core.Entity
	Target core.Entity
}

// Die reports an entity death.
type Die struct {
	Source core.Entity
}

// Learn carries a difficulty-shaped experience award.
type Learn struct {
	Source     core.Entity
	Skill      string
	Mult       float64
	Risk       float64
	Generation int
}

// AbsorbRestExp promotes pending experience at rest.
type AbsorbRestExp struct {
	Source core.Entity
}

// Act is a delayed signal bound to a source; exactly one active per
// source. Target is recorded so threat queries can inspect pending
// offense without unpacking the payload.
type Act struct {
	Source core.Entity
	Target core.Entity
	Delay  float64
	Then   any
	Start  core.Looptime
	ID     core.ActID
}

// End is the walltime at which the act fires.
func (a Act) End() core.Looptime {
	return a.Start + a.Delay
}

// Interrupt cancels the source's outstanding act.
type Interrupt struct {
	Source core.Entity
}

// Echo sends Text to the source, OText to entities within Reach, and
// TargetText to Target.
type Echo struct {
	Source            core.Entity
	Text              string
	Reach             component.Reach
	OText             string
	Target            core.Entity
	TargetText        string
	ForceSendToTarget bool
}

// Emit sends Text to connected entities within Reach of the source,
// TargetText to Target.
type Emit struct {
	Source     core.Entity
	Reach      component.Reach
	Text       string
	Target     core.Entity
	TargetText string
}

// ItemDropped reports that source let go of an item.
type ItemDropped struct {
	Source core.Entity
	Item   core.Entity
}

// Eat consumes one portion of a food entity.
type Eat struct {
	Source core.Entity
	Food   core.Entity
}

// CreateGas spawns a gas cloud at a cell.
type CreateGas struct {
	MapID core.Entity
	Y, X  int
}

// GasUpdated reports that a cloud changed this step.
type GasUpdated struct {
	Source core.Entity
}
