package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPossessive(t *testing.T) {
	assert.Equal(t, "the wolf's", Possessive("the wolf"))
	assert.Equal(t, "bones'", Possessive("bones"))
	assert.Equal(t, "", Possessive(""))
}

func TestConjugate(t *testing.T) {
	assert.Equal(t, "draws", Conjugate("draws", Singular))
	assert.Equal(t, "draw", Conjugate("draws", Plural))
	assert.Equal(t, "reach", Conjugate("reaches", Plural))
	assert.Equal(t, "carry", Conjugate("carries", Plural))
	assert.Equal(t, "are", Conjugate("is", Plural))
	assert.Equal(t, "do", Conjugate("does", Plural))
	assert.Equal(t, "lie", Conjugate("lies", Plural))
}

func TestAutoCap(t *testing.T) {
	assert.Equal(t, "The wolf lunges.", AutoCap("the wolf lunges."))
	assert.Equal(t, "Already", AutoCap("Already"))
	assert.Equal(t, "", AutoCap(""))
	assert.Equal(t, "'hello'", AutoCap("'hello'"))
}

func TestTally(t *testing.T) {
	assert.Equal(t, "1 rank", Tally(1, "rank"))
	assert.Equal(t, "3 ranks", Tally(3, "rank"))
}

func TestFloorDivMod(t *testing.T) {
	assert.Equal(t, -1, FloorDiv(-1, 16))
	assert.Equal(t, 15, FloorMod(-1, 16))
	assert.Equal(t, 0, FloorDiv(15, 16))
	assert.Equal(t, 1, FloorDiv(16, 16))
	assert.Equal(t, 31, FloorMod(-33, 64))
}

func TestCompassParsing(t *testing.T) {
	c, ok := ParseCompass("north")
	assert.True(t, ok)
	assert.Equal(t, North, c)

	c, ok = ParseCompass("NE")
	assert.True(t, ok)
	assert.Equal(t, Northeast, c)

	_, ok = ParseCompass("up")
	assert.False(t, ok)

	dy, dx := Southwest.Vector()
	back, ok := CompassFromVector(dy, dx)
	assert.True(t, ok)
	assert.Equal(t, Southwest, back)
}
