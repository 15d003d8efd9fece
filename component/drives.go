package component

import "math"

// Drives weight the Dijkstra layers steering a mob. Effective aggression
// and fear scale with the mob's current health fraction: a wounded mob
// presses less and flees more. Both curves are monotone and continuous.
type Drives struct {
	Aggression float64
	Fear       float64
	Hunger     float64
	AnchorHate float64
}

// EffectiveAggression decays toward zero as health falls.
func (d Drives) EffectiveAggression(hpFrac float64) float64 {
	if hpFrac < 0 {
		hpFrac = 0
	}
	return d.Aggression * math.Sqrt(hpFrac)
}

// EffectiveFear rises as health falls, closing three quarters of the gap
// between Fear and one at zero health.
func (d Drives) EffectiveFear(hpFrac float64) float64 {
	if hpFrac > 1 {
		hpFrac = 1
	}
	if hpFrac < 0 {
		hpFrac = 0
	}
	return d.Fear + (1.0-d.Fear)*(1.0-hpFrac)*0.75
}
