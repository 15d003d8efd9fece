package system

import (
	"math"

	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
)

// ContestOpts tune a skill contest. Zero fields take defaults.
type ContestOpts struct {
	JitterPct     float64
	Dilute        float64
	FlatTierRanks float64
	PctTierRanks  float64
	TierAmplify   float64
	MinMult       float64
	MaxMult       float64
}

func (o ContestOpts) withDefaults() ContestOpts {
	def := ContestOpts{
		JitterPct:     constant.ContestJitterPct,
		Dilute:        constant.ContestDilute,
		FlatTierRanks: constant.ContestFlatTierRanks,
		PctTierRanks:  constant.ContestPctTierRanks,
		TierAmplify:   constant.ContestTierAmplify,
		MinMult:       constant.ContestMinMult,
		MaxMult:       constant.ContestMaxMult,
	}
	// Negative means "no jitter"; zero means default.
	if o.JitterPct < 0 {
		def.JitterPct = 0
	} else if o.JitterPct != 0 {
		def.JitterPct = o.JitterPct
	}
	if o.Dilute != 0 {
		def.Dilute = o.Dilute
	}
	if o.FlatTierRanks != 0 {
		def.FlatTierRanks = o.FlatTierRanks
	}
	if o.PctTierRanks != 0 {
		def.PctTierRanks = o.PctTierRanks
	}
	if o.TierAmplify != 0 {
		def.TierAmplify = o.TierAmplify
	}
	if o.MaxMult != 0 {
		def.MaxMult = o.MaxMult
	}
	if o.MinMult != 0 {
		def.MinMult = o.MinMult
	}
	return def
}

// Contest rolls two ranks against each other and returns the damage
// multiplier plus the rolled ranks (dilution removed).
//
// Both ranks are diluted to damp low-rank blowups, jittered, and
// compared in tiers that widen as raw skill grows. The delta in tiers
// becomes a multiplicative factor, inverted for the underdog, clamped.
func Contest(attackRank, defendRank float64, opts ContestOpts) (mult, atkRoll, defRoll float64) {
	o := opts.withDefaults()

	jitter := func() float64 {
		return 1.0 + (core.RNG.Float64()*2-1)*o.JitterPct
	}
	roll := func(ranks float64) float64 {
		return math.Max(0, math.Floor(ranks*jitter()+o.Dilute+0.5))
	}

	attack, defend := roll(attackRank), roll(defendRank)

	ranksPerTier := math.Max(
		o.FlatTierRanks,
		o.PctTierRanks*math.Min(attack, defend)+o.TierAmplify,
	)
	tierDelta := (attack - defend) / ranksPerTier

	mult = 1.0 + math.Abs(tierDelta)
	if tierDelta < 0 {
		mult = 1.0 / mult
	}
	mult = core.Clamp(mult, o.MinMult, o.MaxMult)

	return mult, attack - o.Dilute, defend - o.Dilute
}

// Trial difficulties for simple pass/fail checks against a contest
// multiplier.
const (
	TrialSomewhatEasy = 0.75
	TrialNormal       = 1.0
	TrialHard         = 1.35
	TrialInfeasible   = 2.5
)

// TrialCheck passes when the contest multiplier beats the difficulty,
// with proportional luck near the boundary.
func TrialCheck(mult, difficulty float64) bool {
	if difficulty <= 0 {
		difficulty = TrialNormal
	}
	odds := core.Clamp01(mult / (2.0 * difficulty))
	return core.RNG.Float64() < odds
}
