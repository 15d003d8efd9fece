package persist

import (
	"encoding/json"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

// ItemState is the serializable overlay of components that can drift
// from their template at runtime. Only differing components persist,
// keeping state blobs diff-efficient.
type ItemState struct {
	Noun  *component.Noun  `json:"noun,omitempty"`
	Glyph *component.Glyph `json:"glyph,omitempty"`
	Food  *component.Food  `json:"food,omitempty"`
}

func stateFrom(w *engine.World, eid core.Entity) ItemState {
	key := w.C.ItemKey.MustGet(eid).Key
	tpl := content.ItemTypes[key]

	var out ItemState
	if noun, ok := w.C.Noun.Get(eid); ok && !nounEqual(noun, tpl.Noun) {
		n := noun
		out.Noun = &n
	}
	if glyph, ok := w.C.Glyph.Get(eid); ok && glyph != tpl.Glyph {
		g := glyph
		out.Glyph = &g
	}
	if food, ok := w.C.Food.Get(eid); ok && (tpl.Food == nil || food != *tpl.Food) {
		f := food
		out.Food = &f
	}
	return out
}

func nounEqual(a, b component.Noun) bool {
	if a.Value != b.Value || a.Adjective != b.Adjective || a.Pronoun != b.Pronoun || a.Num != b.Num {
		return false
	}
	if len(a.Hypernyms) != len(b.Hypernyms) {
		return false
	}
	for i := range a.Hypernyms {
		if a.Hypernyms[i] != b.Hypernyms[i] {
			return false
		}
	}
	return true
}

func encodeState(s ItemState) string {
	out, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// SaveOwnerInventory walks the owner's containment tree breadth-first,
// assigning dense 1-based eids in traversal order.
func SaveOwnerInventory(w *engine.World, ownerID int64, ownerEntity core.Entity) []InventoryRow {
	var rows []InventoryRow
	entityToEID := map[core.Entity]int64{}
	seen := map[core.Entity]bool{ownerEntity: true}
	queue := []core.Entity{ownerEntity}
	nextEID := int64(1)

	for len(queue) > 0 {
		container := queue[0]
		queue = queue[1:]
		for _, entity := range w.Contents(container) {
			if seen[entity] || !w.C.ItemKey.Has(entity) || w.C.DoNotSave.Has(entity) {
				continue
			}
			seen[entity] = true

			rows = append(rows, InventoryRow{
				EID:          nextEID,
				OwnerID:      ownerID,
				Key:          w.C.ItemKey.MustGet(entity).Key,
				Slot:         w.C.Slot.MustGet(entity).String(),
				ContainerEID: entityToEID[container], // 0 at the root
				State:        encodeState(stateFrom(w, entity)),
				Level:        w.C.Level.MustGet(entity).Value,
			})
			entityToEID[entity] = nextEID
			nextEID++
			if w.C.Container.Has(entity) {
				queue = append(queue, entity)
			}
		}
	}
	return rows
}

// SaveMapInventory saves world-space roots on a map and their nested
// contents.
func SaveMapInventory(w *engine.World, mapID core.Entity) []InventoryRow {
	var rows []InventoryRow
	entityToEID := map[core.Entity]int64{}
	seen := map[core.Entity]bool{}
	var queue []core.Entity
	nextEID := int64(1)

	// Roots: items with a Transform on this map, not inside a
	// container.
	for _, entity := range w.C.ItemKey.All() {
		tf, ok := w.C.Transform.Get(entity)
		if !ok || tf.MapID != mapID || w.C.DoNotSave.Has(entity) {
			continue
		}
		if cb, ok := w.C.ContainedBy.Get(entity); ok && cb.Parent != core.None {
			continue
		}
		seen[entity] = true
		rows = append(rows, InventoryRow{
			EID:          nextEID,
			Key:          w.C.ItemKey.MustGet(entity).Key,
			Slot:         component.SlotAny.String(),
			ContainerEID: 0,
			MapID:        int64(mapID),
			X:            tf.X,
			Y:            tf.Y,
			State:        encodeState(stateFrom(w, entity)),
			Level:        w.C.Level.MustGet(entity).Value,
		})
		entityToEID[entity] = nextEID
		nextEID++
		if w.C.Container.Has(entity) {
			queue = append(queue, entity)
		}
	}

	for len(queue) > 0 {
		container := queue[0]
		queue = queue[1:]
		for _, entity := range w.Contents(container) {
			if seen[entity] || !w.C.ItemKey.Has(entity) || w.C.DoNotSave.Has(entity) {
				continue
			}
			seen[entity] = true
			rows = append(rows, InventoryRow{
				EID:          nextEID,
				Key:          w.C.ItemKey.MustGet(entity).Key,
				Slot:         w.C.Slot.MustGet(entity).String(),
				ContainerEID: entityToEID[container],
				State:        encodeState(stateFrom(w, entity)),
				Level:        w.C.Level.MustGet(entity).Value,
			})
			entityToEID[entity] = nextEID
			nextEID++
			if w.C.Container.Has(entity) {
				queue = append(queue, entity)
			}
		}
	}
	return rows
}

// LoadInventory reconstructs entities from rows in two passes: create
// everything uncontained first, then rewire containment. A row with
// ContainerEID 0 attaches to the fallback owner entity when one is
// given, else stands in the world at its saved transform.
func LoadInventory(w *engine.World, rows []InventoryRow, owner core.Entity) map[int64]core.Entity {
	entityByEID := make(map[int64]core.Entity, len(rows))

	for _, row := range rows {
		if content.ValidateItemKey(row.Key) != nil {
			continue
		}
		var state ItemState
		json.Unmarshal([]byte(row.State), &state)

		tf := component.Transform{}
		if row.ContainerEID == 0 && owner == core.None && row.MapID >= 0 {
			tf = component.Transform{MapID: core.Entity(row.MapID), Y: row.Y, X: row.X}
		}
		entity := content.CreateItem(w, content.ItemSpec{
			Key:       row.Key,
			Transform: tf,
			Level:     row.Level,
			Slot:      component.ParseSlot(row.Slot),
			Noun:      state.Noun,
			Glyph:     state.Glyph,
			Food:      state.Food,
		})
		entityByEID[row.EID] = entity
	}

	for _, row := range rows {
		entity, ok := entityByEID[row.EID]
		if !ok {
			continue
		}
		container := core.None
		if row.ContainerEID != 0 {
			container = entityByEID[row.ContainerEID]
		} else if owner != core.None {
			container = owner
		}
		if container != core.None {
			w.C.ContainedBy.Add(entity, component.ContainedBy{Parent: container})
			w.C.Transform.Remove(entity)
		}
	}
	return entityByEID
}
