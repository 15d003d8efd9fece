package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChipsToroidalWrap(t *testing.T) {
	chips := NewChips(32, 32)
	chips.Set(1, 1, 7)

	// Negative and oversized coordinates land in the same cell via
	// floored modular arithmetic.
	assert.Equal(t, byte(7), chips.At(1, 1))
	assert.Equal(t, byte(7), chips.At(33, 33))
	assert.Equal(t, byte(7), chips.At(-31, -31))
}

func TestChipsKeyFloorsNegatives(t *testing.T) {
	chips := NewChips(32, 32)

	// -1 wraps to 31, whose tile starts at 16.
	key := chips.KeyAt(-1, -1)
	assert.Equal(t, ChipKey{Top: 16, Left: 16}, key)

	key = chips.KeyAt(17, 3)
	assert.Equal(t, ChipKey{Top: 16, Left: 0}, key)
}

func TestChipsMissingTileReadsZero(t *testing.T) {
	chips := NewChips(32, 32)
	assert.Equal(t, byte(0), chips.At(20, 20))

	_, data := chips.Tile(20, 20)
	assert.Nil(t, data)
}

func TestOverlayLookups(t *testing.T) {
	chips := NewChips(32, 32)
	host := &Hostility{Default: 50, Coords: map[ChipKey]int{{Top: 0, Left: 0}: 0}}

	assert.Equal(t, 0, host.RankAt(chips, 3, 3))
	assert.Equal(t, 50, host.RankAt(chips, 20, 20))

	env := &ForageEnvironment{
		Default: ForageSpot{Biome: "cave", Richness: 30},
		Coords:  map[ChipKey]ForageSpot{{Top: 0, Left: 0}: {Biome: "forest"}},
	}
	assert.Equal(t, "forest", env.SpotAt(chips, 5, 5).Biome)
	assert.Equal(t, "cave", env.SpotAt(chips, 20, 5).Biome)
}

func TestAnchorProtectsManhattanDisk(t *testing.T) {
	anchor := Anchor{Threshold: 4, Fuel: 10, MaxFuel: 10}

	assert.True(t, anchor.Protects(0, 0, 1, 2))   // distance 3
	assert.False(t, anchor.Protects(0, 0, 2, 2))  // distance 4, strict
	assert.True(t, anchor.Protects(0, 0, 0, 0))

	spent := Anchor{Threshold: 4, Fuel: 0, MaxFuel: 10}
	assert.False(t, spent.Protects(0, 0, 0, 0))

	eternal := Anchor{Threshold: 4, Eternal: true}
	assert.True(t, eternal.Protects(0, 0, 1, 1))
}
