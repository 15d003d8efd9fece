package component

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dzaramelcone/ninjamagic/core"
)

func TestNounFormatMatrix(t *testing.T) {
	wolf := Noun{Value: "wolf", Pronoun: PronounIt, Num: core.Singular,
		Hypernyms: []string{"beast"}}

	cases := map[string]string{
		"":         "the wolf",
		"s":        "the wolf's",
		"noun":     "wolf",
		"hyp":      "beast",
		"hyps":     "beast's",
		"hyp_def":  "the beast",
		"hyp_defs": "the beast's",
		"they":     "it",
		"them":     "it",
		"their":    "its",
		"theirs":   "its",
		"draws":    "draws",
		"reaches":  "reaches",
	}
	for spec, want := range cases {
		assert.Equal(t, want, wolf.Format(spec), "spec %q", spec)
	}
}

func TestNounSecondPersonConjugation(t *testing.T) {
	assert.Equal(t, "draw", You.Format("draws"))
	assert.Equal(t, "reach", You.Format("reaches"))
	assert.Equal(t, "are", You.Format("is"))
	assert.Equal(t, "have", You.Format("has"))
	assert.Equal(t, "carry", You.Format("carries"))
	assert.Equal(t, "you", You.Format(""))
	assert.Equal(t, "your", You.Format("their"))
}

func TestNounDefinite(t *testing.T) {
	assert.Equal(t, "the crude cookpot",
		(Noun{Value: "cookpot", Adjective: "crude"}).Definite())
	assert.Equal(t, "Ashvane", (Noun{Value: "Ashvane"}).Definite())
	assert.Equal(t, "you", You.Definite())
}

func TestNounMatchesPrefix(t *testing.T) {
	wolf := Noun{Value: "Wolf"}
	assert.True(t, wolf.Matches("wo"))
	assert.True(t, wolf.Matches("WOLF"))
	assert.False(t, wolf.Matches("ox"))
	assert.True(t, wolf.Matches(""))
}
