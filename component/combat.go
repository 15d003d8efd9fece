package component

import "github.com/dzaramelcone/ninjamagic/core"

// Stunned suppresses acting until End.
type Stunned struct {
	End core.Looptime
}

// DoubleDamage doubles the next hit's damage.
type DoubleDamage struct{}

// DamageTakenMultiplier scales incoming damage (wyrd state).
type DamageTakenMultiplier struct {
	Value float64
}

// ProcBonus raises proc chances (wyrd state).
type ProcBonus struct {
	Value float64
}
