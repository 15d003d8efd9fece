// Package world owns terrain state and the initial map bootstrap.
package world

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

// CanEnter reports whether (y, x) on the map is walkable. Decayed tiles
// block: the void is not terrain.
func CanEnter(w *engine.World, mapID core.Entity, y, x int) bool {
	chips, ok := w.C.Chips.Get(mapID)
	if !ok {
		return false
	}
	return constant.WalkableChips[chips.At(y, x)]
}

// GetTile returns the normalized tile origin and bytes containing
// (top, left); nil data when the tile is gone.
func GetTile(w *engine.World, mapID core.Entity, top, left int) (component.ChipKey, *component.TileData) {
	chips, ok := w.C.Chips.Get(mapID)
	if !ok {
		return component.ChipKey{}, nil
	}
	return chips.Tile(top, left)
}

// MarkTileSent records the first time a tile reached any client. A tile
// counts as existing once someone has seen it.
func MarkTileSent(w *engine.World, mapID core.Entity, key component.ChipKey, now core.Looptime) {
	inst, ok := w.C.TileInstantiation.Get(mapID)
	if !ok {
		inst = &component.TileInstantiation{Times: make(map[component.ChipKey]core.Looptime)}
		w.C.TileInstantiation.Add(mapID, inst)
	}
	if _, seen := inst.Times[key]; !seen {
		inst.Times[key] = now
	}
}

// CreateMob builds a standard mob entity at a position.
func CreateMob(w *engine.World, mapID core.Entity, y, x int, name string, glyph component.Glyph, pronoun component.Pronoun, add func(core.Entity)) core.Entity {
	eid := w.Create()
	w.C.Transform.Add(eid, component.Transform{MapID: mapID, Y: y, X: x})
	w.C.Noun.Add(eid, component.Noun{Value: name, Pronoun: pronoun, Num: core.Singular})
	w.C.Health.Add(eid, component.NewHealth())
	w.C.Stance.Add(eid, component.NewStance())
	w.C.Skills.Add(eid, component.NewSkills())
	w.C.Stats.Add(eid, component.Stats{})
	w.C.Glyph.Add(eid, glyph)
	if add != nil {
		add(eid)
	}
	return eid
}

// Recall finds the nearest thing to a safe return point: any anchor
// with a world position.
func Recall(w *engine.World) (core.Entity, component.Transform, bool) {
	for _, eid := range w.C.Anchor.All() {
		if tf, ok := w.C.Transform.Get(eid); ok {
			return eid, tf, true
		}
	}
	return core.None, component.Transform{}, false
}
