package world

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
)

const (
	denSize = 8
	denGenerations = 6
)

var (
	denBirth   = map[int]bool{5: true, 6: true, 7: true}
	denSurvive = map[int]bool{4: true, 5: true, 6: true, 7: true}
)

func lifeStep(grid []byte) []byte {
	isAlive := func(y, x int) bool {
		if y >= 0 && y < denSize && x >= 0 && x < denSize {
			return grid[y*denSize+x] == 1
		}
		return true
	}

	next := make([]byte, denSize*denSize)
	for y := 0; y < denSize; y++ {
		for x := 0; x < denSize; x++ {
			pop := 0
			for _, d := range core.EightDirs {
				if isAlive(y+d[0], x+d[1]) {
					pop++
				}
			}
			alive := isAlive(y, x)
			if (alive && denSurvive[pop]) || (!alive && denBirth[pop]) {
				next[y*denSize+x] = 1
			}
		}
	}

	// Enforce walls at border
	for y := 0; y < denSize; y++ {
		next[y*denSize] = 1
		next[y*denSize+denSize-1] = 1
	}
	for x := 0; x < denSize; x++ {
		next[x] = 1
		next[(denSize-1)*denSize+x] = 1
	}
	return next
}

// GenerateDenPrefab builds an 8x8 cave-like prefab with cellular
// automata.
func GenerateDenPrefab() []byte {
	grid := make([]byte, denSize*denSize)
	for i := range grid {
		if core.RNG.Float64() >= 0.575 {
			grid[i] = 1
		}
	}
	for i := 0; i < denGenerations; i++ {
		grid = lifeStep(grid)
	}
	return grid
}

// StampDenPrefab copies the prefab's walkable cells onto a 16x16 tile at
// a random offset. Only open cells copy, preserving the tile's
// connectivity. Returns the chosen offset.
func StampDenPrefab(tile *component.TileData, prefab []byte, floorID byte) (int, int) {
	maxOffset := constant.TileStrideH - denSize
	offY := core.RNG.Intn(maxOffset + 1)
	offX := core.RNG.Intn(maxOffset + 1)

	for dy := 0; dy < denSize; dy++ {
		for dx := 0; dx < denSize; dx++ {
			if prefab[dy*denSize+dx] == 0 {
				tile[(offY+dy)*constant.TileStrideW+(offX+dx)] = floorID
			}
		}
	}
	return offY, offX
}

// FindOpenSpots lists tile-local walkable cells inside the stamped den
// region, sampled down to n when n > 0.
func FindOpenSpots(tile *component.TileData, offY, offX int, walkableID byte, n int) [][2]int {
	var spots [][2]int
	for dy := 0; dy < denSize; dy++ {
		for dx := 0; dx < denSize; dx++ {
			if tile[(offY+dy)*constant.TileStrideW+(offX+dx)] == walkableID {
				spots = append(spots, [2]int{offY + dy, offX + dx})
			}
		}
	}
	if n > 0 && len(spots) > n {
		core.RNG.Shuffle(len(spots), func(i, j int) {
			spots[i], spots[j] = spots[j], spots[i]
		})
		spots = spots[:n]
	}
	return spots
}
