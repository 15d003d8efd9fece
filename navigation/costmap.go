// Package navigation provides Dijkstra flood-fill distance maps for mob
// steering.
//
// Reference: https://www.roguebasin.com/index.php/The_Incredible_Power_of_Dijkstra_Maps
//
// Costs are stored in sparse 16x16 tiles matching the game's map
// structure. Compute runs a few times per second, not per tick.
package navigation

import (
	"math"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
)

const inf = math.MaxFloat64

// WalkChecker reports whether a cell can be entered.
type WalkChecker func(y, x int) bool

// --- Min-heap for Dijkstra ---

type heapEntry struct {
	y, x int
	cost float64
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].cost <= (*h)[i].cost {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].cost < (*h)[left].cost {
			smallest = right
		}
		if (*h)[i].cost <= (*h)[smallest].cost {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// CostMap is a Dijkstra flood-fill distance map stored as sparse tiles
// of flat float64 cells.
//
// Sentinel design: internally unvisited cells hold +inf. Cost translates
// at the boundary — MaxCost for approach maps, 0 for inverted (flee)
// maps — so callers stay branch-free.
type CostMap struct {
	costs   map[component.ChipKey][]float64
	MaxCost float64

	heap minHeap
}

// NewCostMap returns an empty map with the standard cutoff.
func NewCostMap() *CostMap {
	return &CostMap{
		costs:   make(map[component.ChipKey][]float64),
		MaxCost: constant.DriveMaxCost,
	}
}

// Compute flood fills from goals over 8-neighbor moves with uniform
// cost 1, stopping past MaxCost. Previous contents are discarded.
func (m *CostMap) Compute(goals [][2]int, canEnter WalkChecker) {
	clear(m.costs)
	if len(goals) == 0 {
		return
	}

	visited := make(map[[2]int]float64)
	m.heap = m.heap[:0]
	for _, g := range goals {
		y, x := g[0], g[1]
		if !canEnter(y, x) {
			continue
		}
		m.heap.push(heapEntry{y: y, x: x, cost: 0})
		visited[[2]int{y, x}] = 0
	}

	for len(m.heap) > 0 {
		e := m.heap.pop()
		if v, ok := visited[[2]int{e.y, e.x}]; ok && e.cost > v {
			continue // Stale entry
		}
		if e.cost > m.MaxCost {
			continue
		}
		m.set(e.y, e.x, e.cost)

		for _, d := range core.EightDirs {
			ny, nx := e.y+d[0], e.x+d[1]
			if !canEnter(ny, nx) {
				continue
			}
			next := e.cost + 1.0
			if v, ok := visited[[2]int{ny, nx}]; !ok || next < v {
				visited[[2]int{ny, nx}] = next
				m.heap.push(heapEntry{y: ny, x: nx, cost: next})
			}
		}
	}
}

func tileKey(y, x int) (component.ChipKey, int) {
	top := core.FloorDiv(y, constant.TileStrideH) * constant.TileStrideH
	left := core.FloorDiv(x, constant.TileStrideW) * constant.TileStrideW
	idx := (y-top)*constant.TileStrideW + (x - left)
	return component.ChipKey{Top: top, Left: left}, idx
}

func (m *CostMap) set(y, x int, cost float64) {
	key, idx := tileKey(y, x)
	tile, ok := m.costs[key]
	if !ok {
		tile = make([]float64, constant.TileCells)
		for i := range tile {
			tile[i] = inf
		}
		m.costs[key] = tile
	}
	tile[idx] = cost
}

// Cost returns the distance at (y, x). Unvisited cells read as MaxCost.
func (m *CostMap) Cost(y, x int) float64 {
	key, idx := tileKey(y, x)
	tile, ok := m.costs[key]
	if !ok || tile[idx] == inf {
		return m.MaxCost
	}
	return tile[idx]
}

// InvCost returns MaxCost minus the raw distance, for flee and hate
// layers. Unvisited cells read as 0: no repulsion.
func (m *CostMap) InvCost(y, x int) float64 {
	key, idx := tileKey(y, x)
	tile, ok := m.costs[key]
	if !ok || tile[idx] == inf {
		return 0.0
	}
	return m.MaxCost - tile[idx]
}
