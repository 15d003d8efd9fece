package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dzaramelcone/ninjamagic/core"
)

//go:embed forage.yaml
var forageYAML []byte

//go:embed damage.yaml
var damageYAML []byte

// ForageEntry is one line of a biome's forage table.
type ForageEntry struct {
	Noun     string `yaml:"noun"`
	Weight   int    `yaml:"weight"`
	MinLevel int    `yaml:"min_level"`
	MaxLevel int    `yaml:"max_level"`
}

// ForageTables maps biome name to its entries. Populated by Load.
var ForageTables map[string][]ForageEntry

// DamageStories maps story key -> severity tier -> templates.
// Populated by Load.
var DamageStories map[string]map[string][]string

// Severity tiers in ascending order.
var SeverityTiers = []string{"graze", "light", "heavy", "grievous"}

// Load parses the embedded tables. Fatal at boot on malformed content;
// inside the loop lookups never miss because this validated them.
func Load() error {
	if err := yaml.Unmarshal(forageYAML, &ForageTables); err != nil {
		return fmt.Errorf("content: forage tables: %w", err)
	}
	for biome, entries := range ForageTables {
		for _, e := range entries {
			if e.Weight <= 0 || e.MinLevel > e.MaxLevel {
				return fmt.Errorf("content: forage table %q: bad entry %q", biome, e.Noun)
			}
		}
	}
	if err := yaml.Unmarshal(damageYAML, &DamageStories); err != nil {
		return fmt.Errorf("content: damage stories: %w", err)
	}
	for key, tiers := range DamageStories {
		for _, tier := range SeverityTiers {
			if len(tiers[tier]) == 0 {
				return fmt.Errorf("content: damage stories %q: missing tier %q", key, tier)
			}
		}
	}
	return nil
}

// RollForage draws a weighted entry from a biome's table; ok=false for
// unknown or empty biomes.
func RollForage(biome string) (ForageEntry, bool) {
	entries := ForageTables[biome]
	if len(entries) == 0 {
		return ForageEntry{}, false
	}
	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	pick := core.RNG.Intn(total)
	for _, e := range entries {
		pick -= e.Weight
		if pick < 0 {
			return e, true
		}
	}
	return entries[len(entries)-1], true
}

// SeverityFor buckets a damage fraction of max health into a tier.
func SeverityFor(frac float64) string {
	switch {
	case frac < 0.08:
		return "graze"
	case frac < 0.2:
		return "light"
	case frac < 0.45:
		return "heavy"
	default:
		return "grievous"
	}
}

// DamageStory renders a hit narration for a story key and damage
// fraction. Missing keys fall back to the fist table.
func DamageStory(storyKey string, frac float64) string {
	tiers, ok := DamageStories[storyKey]
	if !ok {
		tiers = DamageStories["fist"]
	}
	tier := SeverityFor(frac)
	templates := tiers[tier]
	return templates[core.RNG.Intn(len(templates))]
}
