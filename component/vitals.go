package component

import "github.com/dzaramelcone/ninjamagic/core"

// Condition is the coarse health state gating most actions.
type Condition string

const (
	ConditionNormal      Condition = "normal"
	ConditionUnconscious Condition = "unconscious"
	ConditionInShock     Condition = "in shock"
	ConditionDead        Condition = "dead"
)

// Health tracks hit points and the two stress pools.
type Health struct {
	Cur              float64
	Stress           float64
	AggravatedStress float64
	Condition        Condition
}

// NewHealth returns full health in normal condition.
func NewHealth() Health {
	return Health{Cur: 100.0, Condition: ConditionNormal}
}

// Posture is a body position.
type Posture string

const (
	Standing   Posture = "standing"
	Kneeling   Posture = "kneeling"
	Sitting    Posture = "sitting"
	LyingProne Posture = "lying prone"
)

// Stance is the current posture, optionally against a prop (a bedroll,
// a bonfire).
type Stance struct {
	Cur  Posture
	Prop core.Entity
}

// NewStance returns a standing stance.
func NewStance() Stance {
	return Stance{Cur: Standing}
}

// Stats are the three core attributes.
type Stats struct {
	Grace, Grit, Wit int
}

// Blocking marks an entity whose cell cannot be entered.
type Blocking struct{}
