package constant

// Tile geometry. A tile is the unit of map streaming and decay.
const (
	TileStrideW = 16
	TileStrideH = 16
	TileCells   = TileStrideW * TileStrideH
)

// View window half-extents for visibility checks and tile pre-sends.
const (
	ViewW = 7
	ViewH = 7
)

// Walkable chip ids. Everything else blocks movement.
var WalkableChips = map[byte]bool{1: true, 3: true}

// Gas simulation
const (
	// GasStepRate is the interval between spread steps of one gas cloud.
	GasStepRate = 1.0 / 3.0

	// GasLossRate is potence lost per step.
	GasLossRate = 1.0 / 125.0 * GasStepRate

	// GasEpsilon culls cells below this potence.
	GasEpsilon = 1e-3
)

// Anchor decay protection
const (
	// AnchorBaseThreshold is the default manhattan protection radius in
	// cells for a rank-1 anchor.
	AnchorBaseThreshold = 24

	// AnchorFuelRate is fuel consumed per second.
	AnchorFuelRate = 0.1
)
