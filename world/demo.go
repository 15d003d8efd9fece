package world

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

// BuildDemo creates the starter map: generated level, hand-authored hub
// tile, hostility and forage overlays, dens, fixtures.
func BuildDemo(w *engine.World) core.Entity {
	out := w.Create()
	chips := buildLevel()

	w.C.Hostility.Add(out, &component.Hostility{
		Default: 50,
		Coords:  map[component.ChipKey]int{{Top: 0, Left: 0}: 0},
	})
	w.C.ForageEnvironment.Add(out, &component.ForageEnvironment{
		Default: component.ForageSpot{Biome: "cave", Richness: 30},
		Coords: map[component.ChipKey]component.ForageSpot{
			{Top: 0, Left: 0}: {Biome: "forest", Richness: 0},
		},
	})

	buildHub(w, out, chips)

	w.C.Chips.Add(out, chips)
	w.C.ChipSet.Add(out, component.ChipSet{
		{ID: 0, MapID: out, Glyph: ' ', H: 1.0, S: 1.0, V: 1.0, A: 1.0},
		{ID: 1, MapID: out, Glyph: '.', H: 0.52777, S: 0.5, V: 0.9, A: 1.0},
		{ID: 2, MapID: out, Glyph: '#', H: 0.10, S: 0.10, V: 0.40, A: 1.0},
		{ID: 3, MapID: out, Glyph: '≈', H: 0.58, S: 0.85, V: 0.85, A: 1.0},
		{ID: 4, MapID: out, Glyph: 'Ϙ', H: 0.33, S: 0.65, V: 0.55, A: 1.0},
		{ID: 5, MapID: out, Glyph: 'ϒ', H: 0.08, S: 0.30, V: 0.35, A: 1.0},
	})
	return out
}

func buildHub(w *engine.World, mapID core.Entity, chips *component.Chips) {
	CreateMob(w, mapID, 8, 5, "wanderer",
		component.Glyph{Char: 'w', H: 0.12, S: 0.55, V: 0.75},
		component.PronounHe, nil)

	content.CreateItem(w, content.ItemSpec{
		Key: "prop",
		Noun: &component.Noun{
			Value: "fern", Pronoun: component.PronounIt, Num: core.Singular,
		},
		Glyph:     &component.Glyph{Char: 'ᖗ', H: 0.33, S: 0.65, V: 0.55},
		DoNotSave: true,
		Transform: component.Transform{MapID: mapID, Y: 12, X: 5},
	})

	content.CreateItem(w, content.ItemSpec{
		Key:       "bonfire",
		DoNotSave: true,
		Transform: component.Transform{MapID: mapID, Y: 9, X: 9},
	})

	placeDens(w, mapID, chips)

	chips.Tiles[component.ChipKey{Top: 0, Left: 0}] = hubTile()
}

type propDef struct {
	name    string
	char    rune
	h, s, v float64
}

// placeDens stamps a cave prefab, a hovel, decoration props and spawn
// slots into every tile but the hub.
func placeDens(w *engine.World, mapID core.Entity, chips *component.Chips) {
	props := []propDef{
		{"bones", '⸸', 0.08, 0.15, 0.75},
		{"skull", '☠', 0.08, 0.10, 0.85},
		{"totem", 'ᚲ', 0.08, 0.40, 0.50},
	}

	for key, tile := range chips.Tiles {
		if key == (component.ChipKey{Top: 0, Left: 0}) {
			continue
		}

		prefab := GenerateDenPrefab()
		offY, offX := StampDenPrefab(tile, prefab, chipFloor)

		spots := FindOpenSpots(tile, offY, offX, chipFloor, 5)
		if len(spots) == 0 {
			continue
		}

		hutY, hutX := spots[0][0], spots[0][1]
		denEID := content.CreateItem(w, content.ItemSpec{
			Key: "prop",
			Noun: &component.Noun{
				Value: "hovel", Adjective: "goblin",
				Pronoun: component.PronounIt, Num: core.Singular,
			},
			Glyph:     &component.Glyph{Char: 'π', H: 0.08, S: 0.30, V: 0.40},
			DoNotSave: true,
			Transform: component.Transform{MapID: mapID, Y: key.Top + hutY, X: key.Left + hutX},
		})

		for i, p := range props {
			if i+1 >= len(spots) {
				break
			}
			py, px := spots[i+1][0], spots[i+1][1]
			content.CreateItem(w, content.ItemSpec{
				Key: "prop",
				Noun: &component.Noun{
					Value: p.name, Pronoun: component.PronounIt, Num: core.Singular,
				},
				Glyph:     &component.Glyph{Char: p.char, H: p.h, S: p.s, V: p.v},
				DoNotSave: true,
				Transform: component.Transform{MapID: mapID, Y: key.Top + py, X: key.Left + px},
			})
		}

		spawnSpots := [][2]int{spots[0]}
		if len(spots) > 4 {
			spawnSpots = append(spawnSpots, spots[4])
		} else if len(spots) > 1 {
			spawnSpots = append(spawnSpots, spots[len(spots)-1])
		}
		den := &component.Den{WakeDistance: constant.ViewW + 2, RespawnDelay: 30}
		for _, s := range spawnSpots {
			den.Slots = append(den.Slots, &component.SpawnSlot{
				MapID: mapID, Y: key.Top + s[0], X: key.Left + s[1],
			})
		}
		w.C.Den.Add(denEID, den)
	}
}
