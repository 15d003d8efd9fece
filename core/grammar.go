package core

import (
	"fmt"
	"strings"
	"unicode"
)

// GrammaticalNumber selects verb agreement.
type GrammaticalNumber uint8

const (
	Singular GrammaticalNumber = 1
	Plural   GrammaticalNumber = 2
)

// Possessive appends the English possessive marker.
// "the wolf" -> "the wolf's", "bones" -> "bones'".
func Possessive(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "s") {
		return s + "'"
	}
	return s + "'s"
}

var irregularVerbs = map[GrammaticalNumber]map[string]string{
	Plural: {
		"is":   "are",
		"has":  "have",
		"was":  "were",
		"does": "do",
		"goes": "go",
		// -ie verbs just take -s; the -ies rule below is for -y stems.
		"lies": "lie",
		"dies": "die",
		"ties": "tie",
	},
}

// Conjugate agrees a third-person-singular verb form with num.
// Story specs carry the singular form; plural (and second person)
// subjects drop the inflection: "draws" -> "draw", "reaches" -> "reach".
func Conjugate(verb string, num GrammaticalNumber) string {
	if num == Singular {
		return verb
	}
	if out, ok := irregularVerbs[Plural][verb]; ok {
		return out
	}
	for _, suffix := range []string{"ches", "shes", "sses", "xes", "zes"} {
		if strings.HasSuffix(verb, suffix) {
			return strings.TrimSuffix(verb, "es")
		}
	}
	if strings.HasSuffix(verb, "ies") {
		return strings.TrimSuffix(verb, "ies") + "y"
	}
	if strings.HasSuffix(verb, "s") {
		return strings.TrimSuffix(verb, "s")
	}
	return verb
}

// AutoCap uppercases the first letter of a rendered sentence.
func AutoCap(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
		}
		if !unicode.IsSpace(r) {
			break
		}
	}
	return s
}

// Tally formats a count with a naively pluralized unit: "1 rank", "3 ranks".
func Tally(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
