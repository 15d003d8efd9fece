package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestGetAwardShape(t *testing.T) {
	core.SeedRNG(1)

	// Zero outside the band.
	assert.Equal(t, 0.0, GetAward(0.0))
	assert.Equal(t, 0.0, GetAward(0.1))
	assert.Equal(t, 0.0, GetAward(3.0))

	// Positive at the peak, larger there than near the edges.
	core.SeedRNG(1)
	peak := GetAward(1.0)
	core.SeedRNG(1)
	edge := GetAward(constant.AwardMaxMult * 0.99)
	assert.Greater(t, peak, 0.0)
	assert.Greater(t, peak, edge)
}

func TestLearnInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		core.SeedRNG(int64(rapid.IntRange(1, 1<<30).Draw(t, "seed")))

		h := newHarness(t)
		mapID := h.openMap(1, 1)
		player, _ := h.player(mapID, 1, 1, "drifter")

		rounds := rapid.IntRange(1, 60).Draw(t, "rounds")
		lastRank := 0
		for i := 0; i < rounds; i++ {
			h.bus.Learn.Pulse(signal.Learn{
				Source: player, Skill: "Martial Arts",
				Mult: rapid.Float64Range(0.2, 2.5).Draw(t, "mult"),
				Risk: rapid.Float64Range(0, 2).Draw(t, "risk"),
			})
			h.sim.Tick(core.Looptime(i))

			skills, _ := h.w.C.Skills.Get(player)
			sk := skills.MartialArts
			if sk.Tnl < 0 || sk.Tnl >= 1.0 {
				t.Fatalf("tnl out of range: %f", sk.Tnl)
			}
			if sk.Rank < lastRank {
				t.Fatalf("rank regressed: %d -> %d", lastRank, sk.Rank)
			}
			lastRank = sk.Rank
		}
	})
}

func TestStaleGenerationRejected(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 1, 1, "drifter")

	h.bus.Learn.Pulse(signal.Learn{
		Source: player, Skill: "Evasion", Mult: 1.0, Risk: 1.0, Generation: 99,
	})
	h.sim.Tick(0.0)

	skills, _ := h.w.C.Skills.Get(player)
	assert.Equal(t, 0.0, skills.Evasion.Tnl)
	assert.Equal(t, 0.0, skills.Evasion.Pending)
}

func TestAbsorbRestExpConsumesPending(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 1, 1, "drifter")

	skills, _ := h.w.C.Skills.Get(player)
	skills.Survival.Pending = 0.1
	skills.Survival.RestBonus = 2.0
	h.w.C.Skills.Add(player, skills)

	h.bus.AbsorbRestExp.Pulse(signal.AbsorbRestExp{Source: player})
	h.sim.Tick(0.0)

	skills, _ = h.w.C.Skills.Get(player)
	assert.InDelta(t, 0.2, skills.Survival.Tnl, 1e-9)
	assert.Equal(t, 0.0, skills.Survival.Pending)
	// Consuming pending resets the bonus.
	assert.Equal(t, 1.0, skills.Survival.RestBonus)
}

func TestIdleNightGrowsRestBonus(t *testing.T) {
	h := newHarness(t)
	mapID := h.openMap(1, 1)
	player, _ := h.player(mapID, 1, 1, "drifter")

	for i := 0; i < 10; i++ {
		h.bus.AbsorbRestExp.Pulse(signal.AbsorbRestExp{Source: player})
		h.sim.Tick(core.Looptime(i))
	}

	skills, _ := h.w.C.Skills.Get(player)
	// Grown every idle night, capped at the maximum.
	assert.Equal(t, constant.RestBonusMax, skills.Survival.RestBonus)
}

func TestContestClamps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		core.SeedRNG(int64(rapid.IntRange(1, 1<<30).Draw(t, "seed")))
		atk := rapid.Float64Range(0, 500).Draw(t, "atk")
		def := rapid.Float64Range(0, 500).Draw(t, "def")

		mult, _, _ := Contest(atk, def, ContestOpts{})
		if mult < constant.ContestMinMult || mult > constant.ContestMaxMult {
			t.Fatalf("mult %f outside clamp", mult)
		}
	})
}

func TestContestFavorsSkill(t *testing.T) {
	core.SeedRNG(5)
	high, _, _ := Contest(100, 0, ContestOpts{JitterPct: -1})
	low, _, _ := Contest(0, 100, ContestOpts{JitterPct: -1})
	even, _, _ := Contest(50, 50, ContestOpts{JitterPct: -1})

	assert.Greater(t, high, 1.0)
	assert.Less(t, low, 1.0)
	assert.InDelta(t, 1.0, even, 1e-9)
}
