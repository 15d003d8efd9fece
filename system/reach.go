package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

// Find yields entities whose noun starts with prefix and whose position
// satisfies reach relative to source. The source itself is excluded.
func Find(w *engine.World, source core.Entity, prefix string, reach component.Reach) []core.Entity {
	src, ok := w.C.Transform.Get(source)
	if !ok {
		return nil
	}
	var out []core.Entity
	for _, other := range w.C.Noun.All() {
		if other == source {
			continue
		}
		noun, _ := w.C.Noun.Get(other)
		if !noun.Matches(prefix) {
			continue
		}
		tf, ok := w.C.Transform.Get(other)
		if !ok {
			continue
		}
		if !reach(tf, src) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// FindFirst is Find stopping at the first match.
func FindFirst(w *engine.World, source core.Entity, prefix string, reach component.Reach) (core.Entity, bool) {
	matches := Find(w, source, prefix, reach)
	if len(matches) == 0 {
		return core.None, false
	}
	return matches[0], true
}

// FindCarried returns the first carried item whose noun starts with
// prefix, searching the source's direct inventory.
func FindCarried(w *engine.World, source core.Entity, prefix string) (core.Entity, bool) {
	for _, item := range w.Contents(source) {
		if noun, ok := w.C.Noun.Get(item); ok && noun.Matches(prefix) {
			return item, true
		}
	}
	return core.None, false
}
