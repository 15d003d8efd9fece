package world

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
)

// Chip ids used by the generated maps.
const (
	chipVoid  byte = 0
	chipFloor byte = 1
	chipWall  byte = 2
	chipWater byte = 3
	chipBrush byte = 4
	chipTree  byte = 5
)

// BuildNowhere creates the minimal holding map: four open tiles.
func BuildNowhere(w *engine.World) core.Entity {
	out := w.Create()
	chips := component.NewChips(2*constant.TileStrideH, 2*constant.TileStrideW)
	for _, key := range []component.ChipKey{
		{Top: 0, Left: 0},
		{Top: constant.TileStrideH, Left: 0},
		{Top: 0, Left: constant.TileStrideW},
		{Top: constant.TileStrideH, Left: constant.TileStrideW},
	} {
		tile := new(component.TileData)
		for i := range tile {
			tile[i] = chipFloor
		}
		chips.Tiles[key] = tile
	}
	w.C.Chips.Add(out, chips)
	w.C.ChipSet.Add(out, component.ChipSet{
		{ID: 0, MapID: out, Glyph: ' ', H: 1.0, S: 1.0, V: 1.0, A: 1.0},
		{ID: 1, MapID: out, Glyph: '.', H: 0.52777, S: 0.5, V: 0.9, A: 1.0},
		{ID: 2, MapID: out, Glyph: 'Ϙ', H: 0.73888, S: 0.34, V: 1.0, A: 1.0},
	})
	return out
}

type roomKind uint8

const (
	roomMain roomKind = iota
	roomSide
	roomEntrance
	roomExit
)

type roomEdge struct {
	a, b [2]int
}

func orderEdge(a, b [2]int) roomEdge {
	if b[0] < a[0] || (b[0] == a[0] && b[1] < a[1]) {
		a, b = b, a
	}
	return roomEdge{a: a, b: b}
}

var fourDirs = [4][2]int{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}

// generateRooms crawls a main path from entrance to exit, then grows
// side rooms off a frontier with decaying extra-edge probability.
func generateRooms(exitDistance, minRooms, maxRooms int) (map[[2]int]roomKind, map[roomEdge]bool) {
	rooms := make(map[[2]int]roomKind)
	edges := make(map[roomEdge]bool)

	dir := fourDirs[core.RNG.Intn(4)]
	y, x := 0, 0
	for len(rooms) < exitDistance {
		rooms[[2]int{y, x}] = roomMain

		// Occasionally turn left or right.
		if len(rooms)%2 == 1 && core.RNG.Float64() < 0.66 {
			if core.RNG.Intn(2) == 0 {
				dir = [2]int{-dir[1], dir[0]}
			} else {
				dir = [2]int{dir[1], dir[0]}
			}
		}

		edges[orderEdge([2]int{y, x}, [2]int{y + dir[0], x + dir[1]})] = true
		y, x = y+dir[0], x+dir[1]
	}
	rooms[[2]int{0, 0}] = roomEntrance
	rooms[[2]int{y - dir[0], x - dir[1]}] = roomExit

	// Build frontier.
	var frontier [][2]int
	seen := make(map[[2]int]bool)
	for r := range rooms {
		seen[r] = true
	}
	for r := range rooms {
		for _, d := range fourDirs {
			n := [2]int{r[0] + d[0], r[1] + d[1]}
			if !seen[n] {
				frontier = append(frontier, n)
				seen[n] = true
			}
		}
	}

	target := minRooms + core.RNG.Intn(maxRooms-minRooms)
	for len(rooms) < target && len(frontier) > 0 {
		pick := core.RNG.Intn(len(frontier))
		frontier[pick], frontier[len(frontier)-1] = frontier[len(frontier)-1], frontier[pick]
		r := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		rooms[r] = roomSide

		var possible []roomEdge
		for _, d := range fourDirs {
			n := [2]int{r[0] + d[0], r[1] + d[1]}
			if _, ok := rooms[n]; ok {
				possible = append(possible, orderEdge(r, n))
			}
		}
		// Always connect once; extra edges decay geometrically.
		k := 0
		for i := range possible {
			p := 1.0
			for j := 0; j < i; j++ {
				p *= 0.45
			}
			if core.RNG.Float64() < p {
				k++
			}
		}
		core.RNG.Shuffle(len(possible), func(i, j int) {
			possible[i], possible[j] = possible[j], possible[i]
		})
		for i := 0; i < k && i < len(possible); i++ {
			edges[possible[i]] = true
		}

		for _, d := range fourDirs {
			n := [2]int{r[0] + d[0], r[1] + d[1]}
			if !seen[n] {
				frontier = append(frontier, n)
				seen[n] = true
			}
		}
	}
	return rooms, edges
}

// buildLevel turns the room graph into chips: one 16x16 tile per room,
// walls at tile borders, doorways carved where edges connect.
func buildLevel() *component.Chips {
	rooms, edges := generateRooms(6, 10, 30)

	minY, minX := 0, 0
	maxY, maxX := 0, 0
	for r := range rooms {
		if r[0] < minY {
			minY = r[0]
		}
		if r[1] < minX {
			minX = r[1]
		}
		if r[0] > maxY {
			maxY = r[0]
		}
		if r[1] > maxX {
			maxX = r[1]
		}
	}
	height := (maxY - minY + 1) * constant.TileStrideH
	width := (maxX - minX + 1) * constant.TileStrideW
	chips := component.NewChips(height, width)

	for r := range rooms {
		tile := new(component.TileData)
		for y := 0; y < constant.TileStrideH; y++ {
			for x := 0; x < constant.TileStrideW; x++ {
				id := chipFloor
				if y == 0 || y == constant.TileStrideH-1 || x == 0 || x == constant.TileStrideW-1 {
					id = chipWall
				} else if core.RNG.Float64() < 0.06 {
					id = chipBrush
				} else if core.RNG.Float64() < 0.02 {
					id = chipTree
				}
				tile[y*constant.TileStrideW+x] = id
			}
		}
		key := component.ChipKey{
			Top:  (r[0] - minY) * constant.TileStrideH,
			Left: (r[1] - minX) * constant.TileStrideW,
		}
		chips.Tiles[key] = tile
	}

	// Carve doorways across each connecting edge.
	for e := range edges {
		ay := (e.a[0]-minY)*constant.TileStrideH + constant.TileStrideH/2
		ax := (e.a[1]-minX)*constant.TileStrideW + constant.TileStrideW/2
		by := (e.b[0]-minY)*constant.TileStrideH + constant.TileStrideH/2
		bx := (e.b[1]-minX)*constant.TileStrideW + constant.TileStrideW/2
		y, x := ay, ax
		for y != by || x != bx {
			chips.Set(y, x, chipFloor)
			if y < by {
				y++
			} else if y > by {
				y--
			} else if x < bx {
				x++
			} else {
				x--
			}
		}
		chips.Set(by, bx, chipFloor)
	}
	return chips
}

// hubTile is the hand-authored starting tile stamped over the entrance.
func hubTile() *component.TileData {
	rows := [constant.TileStrideH][constant.TileStrideW]byte{
		{2, 4, 5, 1, 1, 1, 1, 1, 1, 1, 4, 2, 2, 2, 2, 2},
		{5, 2, 2, 2, 1, 1, 4, 1, 1, 1, 5, 4, 2, 2, 2, 2},
		{4, 2, 2, 2, 2, 2, 4, 1, 1, 4, 1, 4, 2, 2, 2, 2},
		{1, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 4, 2, 2, 2},
		{1, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 4, 2, 2},
		{1, 2, 2, 1, 1, 3, 3, 1, 1, 1, 1, 1, 1, 1, 2, 2},
		{1, 2, 1, 1, 3, 3, 3, 3, 1, 1, 1, 1, 1, 1, 2, 2},
		{1, 1, 1, 1, 3, 3, 3, 3, 1, 1, 1, 1, 1, 1, 1, 2},
		{1, 1, 1, 1, 1, 3, 3, 1, 1, 1, 1, 1, 1, 1, 1, 2},
		{1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2},
		{1, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2},
		{1, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2},
		{1, 2, 2, 2, 2, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2},
		{1, 2, 2, 2, 2, 2, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2},
		{1, 4, 2, 2, 2, 2, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2},
		{2, 1, 5, 2, 2, 2, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2},
	}
	tile := new(component.TileData)
	for y := range rows {
		copy(tile[y*constant.TileStrideW:(y+1)*constant.TileStrideW], rows[y][:])
	}
	return tile
}
