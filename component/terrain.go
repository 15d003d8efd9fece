package component

import (
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
)

// ChipKey addresses one 16x16 tile inside a map by its top-left corner;
// both coordinates are multiples of the tile stride.
type ChipKey struct {
	Top, Left int
}

// TileKey addresses a tile globally, for per-connection send dedup.
type TileKey struct {
	MapID core.Entity
	Top   int
	Left  int
}

// TileData is one 16x16 block of chip ids, row-major.
type TileData [constant.TileCells]byte

// Chips is the sparse tile grid a map entity owns. Lookups wrap
// toroidally on the map extent, then floor to the tile boundary; the
// floor uses floored division so negative coordinates land in the same
// tile as their wrapped positives.
type Chips struct {
	Tiles  map[ChipKey]*TileData
	Height int
	Width  int
}

// NewChips returns an empty grid with the given extent in cells. The
// extent must be a multiple of the tile stride.
func NewChips(height, width int) *Chips {
	return &Chips{
		Tiles:  make(map[ChipKey]*TileData),
		Height: height,
		Width:  width,
	}
}

// Wrap maps arbitrary coordinates into the map extent.
func (c *Chips) Wrap(y, x int) (int, int) {
	return core.FloorMod(y, c.Height), core.FloorMod(x, c.Width)
}

// KeyAt returns the tile key containing (y, x) after wrapping.
func (c *Chips) KeyAt(y, x int) ChipKey {
	y, x = c.Wrap(y, x)
	return ChipKey{
		Top:  core.FloorDiv(y, constant.TileStrideH) * constant.TileStrideH,
		Left: core.FloorDiv(x, constant.TileStrideW) * constant.TileStrideW,
	}
}

// At returns the chip id at (y, x), or 0 when the tile has decayed away.
func (c *Chips) At(y, x int) byte {
	y, x = c.Wrap(y, x)
	key := c.KeyAt(y, x)
	tile, ok := c.Tiles[key]
	if !ok {
		return 0
	}
	return tile[(y-key.Top)*constant.TileStrideW+(x-key.Left)]
}

// Set writes the chip id at (y, x), creating the tile if needed.
func (c *Chips) Set(y, x int, id byte) {
	y, x = c.Wrap(y, x)
	key := c.KeyAt(y, x)
	tile, ok := c.Tiles[key]
	if !ok {
		tile = new(TileData)
		c.Tiles[key] = tile
	}
	tile[(y-key.Top)*constant.TileStrideW+(x-key.Left)] = id
}

// Tile returns the normalized key and data for the tile containing
// (top, left); data is nil when the tile does not exist.
func (c *Chips) Tile(top, left int) (ChipKey, *TileData) {
	key := c.KeyAt(top, left)
	return key, c.Tiles[key]
}

// ChipRow maps one chip id to its rendering.
type ChipRow struct {
	ID         byte
	MapID      core.Entity
	Glyph      rune
	H, S, V, A float64
}

// ChipSet is a map's ordered palette.
type ChipSet []ChipRow

// TileInstantiation tracks when each tile was first sent to any client.
// A tile counts as "existing" once a client has seen it.
type TileInstantiation struct {
	Times map[ChipKey]core.Looptime
}

// Hostility overlays per-tile danger ranks on a map entity.
type Hostility struct {
	Default int
	Coords  map[ChipKey]int
}

// RankAt returns the hostility at a cell, keyed by its tile.
func (h *Hostility) RankAt(chips *Chips, y, x int) int {
	if v, ok := h.Coords[chips.KeyAt(y, x)]; ok {
		return v
	}
	return h.Default
}

// ForageSpot describes the forage table and richness of a region.
type ForageSpot struct {
	Biome    string
	Richness int
}

// ForageEnvironment overlays per-tile forage tables on a map entity.
type ForageEnvironment struct {
	Default ForageSpot
	Coords  map[ChipKey]ForageSpot
}

// SpotAt returns the forage spot at a cell, keyed by its tile.
func (f *ForageEnvironment) SpotAt(chips *Chips, y, x int) ForageSpot {
	if v, ok := f.Coords[chips.KeyAt(y, x)]; ok {
		return v
	}
	return f.Default
}
