package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

func TestBuildNowhere(t *testing.T) {
	w := engine.NewWorld()
	mapID := BuildNowhere(w)

	assert.True(t, CanEnter(w, mapID, 0, 0))
	assert.True(t, CanEnter(w, mapID, 31, 31))

	cs, ok := w.C.ChipSet.Get(mapID)
	require.True(t, ok)
	assert.Len(t, cs, 3)
}

func TestBuildDemoHasHubAndDens(t *testing.T) {
	require.NoError(t, content.Load())
	core.SeedRNG(99)

	w := engine.NewWorld()
	mapID := BuildDemo(w)

	chips, ok := w.C.Chips.Get(mapID)
	require.True(t, ok)
	assert.NotEmpty(t, chips.Tiles)

	// The hub tile is the hand-authored one.
	hub := chips.Tiles[component.ChipKey{Top: 0, Left: 0}]
	require.NotNil(t, hub)
	assert.Equal(t, byte(2), hub[0])

	// Dens exist somewhere beyond the hub.
	assert.Greater(t, w.C.Den.Count(), 0)

	// Overlays answer everywhere: calm hub, hostile wilds.
	host, _ := w.C.Hostility.Get(mapID)
	assert.Equal(t, 0, host.RankAt(chips, 3, 3))
	for key := range chips.Tiles {
		if key == (component.ChipKey{}) {
			continue
		}
		assert.Equal(t, 50, host.RankAt(chips, key.Top+2, key.Left+2))
		break
	}
}

func TestCanEnterRespectsWalkableSet(t *testing.T) {
	w := engine.NewWorld()
	mapID := w.Create()
	chips := component.NewChips(16, 16)
	tile := new(component.TileData)
	tile[0] = 1 // floor
	tile[1] = 2 // wall
	tile[2] = 3 // water is walkable
	chips.Tiles[component.ChipKey{}] = tile
	w.C.Chips.Add(mapID, chips)

	assert.True(t, CanEnter(w, mapID, 0, 0))
	assert.False(t, CanEnter(w, mapID, 0, 1))
	assert.True(t, CanEnter(w, mapID, 0, 2))
	assert.False(t, CanEnter(w, mapID, 0, 3)) // void
}

func TestDenPrefabHasWalledBorder(t *testing.T) {
	core.SeedRNG(4)
	prefab := GenerateDenPrefab()
	require.Len(t, prefab, denSize*denSize)

	for i := 0; i < denSize; i++ {
		assert.Equal(t, byte(1), prefab[i], "top border")
		assert.Equal(t, byte(1), prefab[(denSize-1)*denSize+i], "bottom border")
		assert.Equal(t, byte(1), prefab[i*denSize], "left border")
		assert.Equal(t, byte(1), prefab[i*denSize+denSize-1], "right border")
	}
}

func TestMarkTileSentRecordsFirstOnly(t *testing.T) {
	w := engine.NewWorld()
	mapID := BuildNowhere(w)
	key := component.ChipKey{Top: 0, Left: 0}

	MarkTileSent(w, mapID, key, 1.0)
	MarkTileSent(w, mapID, key, 9.0)

	inst, ok := w.C.TileInstantiation.Get(mapID)
	require.True(t, ok)
	assert.Equal(t, 1.0, inst.Times[key])
}
