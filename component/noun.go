package component

import (
	"strings"
	"unicode"

	"github.com/dzaramelcone/ninjamagic/core"
)

// Pronoun is one agreement set for a noun.
type Pronoun struct {
	They, Them, Their, Theirs string
	Num                       core.GrammaticalNumber
}

var (
	PronounIt   = Pronoun{"it", "it", "its", "its", core.Singular}
	PronounHe   = Pronoun{"he", "him", "his", "his", core.Singular}
	PronounShe  = Pronoun{"she", "her", "her", "hers", core.Singular}
	PronounThey = Pronoun{"they", "them", "their", "theirs", core.Plural}
	PronounYou  = Pronoun{"you", "you", "your", "yours", core.Plural}
)

// Noun is an entity's name plus the grammar needed to render it inside
// story fragments. Frozen after creation.
type Noun struct {
	Value     string
	Adjective string
	Pronoun   Pronoun
	Num       core.GrammaticalNumber
	Hypernyms []string
}

// You is the first-person noun substituted for the reader.
var You = Noun{Value: "you", Pronoun: PronounYou, Num: core.Plural}

// Matches reports whether the noun's value starts with prefix,
// case-insensitively.
func (n Noun) Matches(prefix string) bool {
	return strings.HasPrefix(strings.ToLower(n.Value), strings.ToLower(prefix))
}

// Definite renders with a definite article: "the wolf". Proper nouns and
// "you" pass through untouched.
func (n Noun) Definite() string {
	if n.Value == "you" {
		return "you"
	}
	if n.Value != "" && unicode.IsUpper([]rune(n.Value)[0]) {
		return n.Value
	}
	return "the " + n.display()
}

func (n Noun) display() string {
	if n.Adjective != "" {
		return n.Adjective + " " + n.Value
	}
	return n.Value
}

func (n Noun) String() string {
	return n.display()
}

// Format renders the noun under the story mini-language. Specifiers:
//
//	""        definite article form
//	"s"       possessive of the definite form
//	"noun"    bare value
//	"hyp"     random hypernym (value if none)
//	"hyps"    possessive hypernym
//	"hyp_def" definite hypernym
//	"hyp_defs" possessive definite hypernym
//	"they"/"them"/"their"/"theirs" pronoun forms
//	anything else: a verb, conjugated against the noun's number
func (n Noun) Format(spec string) string {
	switch spec {
	case "":
		return n.Definite()
	case "s":
		return core.Possessive(n.Definite())
	case "noun":
		return n.Value
	case "hyp":
		return n.hypernym()
	case "hyps":
		return core.Possessive(n.hypernym())
	case "hyp_def":
		if len(n.Hypernyms) > 0 {
			return "the " + n.hypernym()
		}
		return n.Definite()
	case "hyp_defs":
		if len(n.Hypernyms) > 0 {
			return core.Possessive("the " + n.hypernym())
		}
		return core.Possessive(n.Definite())
	case "they":
		return n.Pronoun.They
	case "them":
		return n.Pronoun.Them
	case "their":
		return n.Pronoun.Their
	case "theirs":
		return n.Pronoun.Theirs
	}
	return core.Conjugate(spec, n.Num)
}

func (n Noun) hypernym() string {
	if len(n.Hypernyms) == 0 {
		return n.Value
	}
	return n.Hypernyms[core.RNG.Intn(len(n.Hypernyms))]
}
