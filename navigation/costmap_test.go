package navigation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dzaramelcone/ninjamagic/core"
)

func openGrid(h, w int, walls map[[2]int]bool) WalkChecker {
	return func(y, x int) bool {
		if y < 0 || x < 0 || y >= h || x >= w {
			return false
		}
		return !walls[[2]int{y, x}]
	}
}

func TestCostZeroAtGoal(t *testing.T) {
	m := NewCostMap()
	m.Compute([][2]int{{5, 5}}, openGrid(32, 32, nil))

	assert.Equal(t, 0.0, m.Cost(5, 5))
	assert.Equal(t, 1.0, m.Cost(5, 6))
	assert.Equal(t, 1.0, m.Cost(6, 6))
}

func TestUnvisitedSentinels(t *testing.T) {
	m := NewCostMap()
	m.Compute([][2]int{{1, 1}}, openGrid(8, 8, nil))

	// Off-grid cells are unreachable: max cost straight, zero inverted.
	assert.Equal(t, m.MaxCost, m.Cost(100, 100))
	assert.Equal(t, 0.0, m.InvCost(100, 100))
}

func TestInvertedCost(t *testing.T) {
	m := NewCostMap()
	m.Compute([][2]int{{0, 0}}, openGrid(16, 16, nil))

	// Inverted cost falls as distance grows: rolling downhill flees.
	assert.Greater(t, m.InvCost(0, 0), m.InvCost(0, 5))
	assert.Greater(t, m.InvCost(0, 5), m.InvCost(0, 15))
}

func TestWallsBlockFlood(t *testing.T) {
	// A full wall column splits the grid.
	walls := map[[2]int]bool{}
	for y := 0; y < 8; y++ {
		walls[[2]int{y, 4}] = true
	}
	m := NewCostMap()
	m.Compute([][2]int{{3, 1}}, openGrid(8, 8, walls))

	assert.Less(t, m.Cost(3, 3), m.MaxCost)
	assert.Equal(t, m.MaxCost, m.Cost(3, 6))
}

func TestMultiSourceTakesNearest(t *testing.T) {
	m := NewCostMap()
	m.Compute([][2]int{{0, 0}, {0, 10}}, openGrid(16, 16, nil))

	assert.Equal(t, 0.0, m.Cost(0, 10))
	assert.Equal(t, 1.0, m.Cost(0, 9))
	// Midpoint is 5 steps from either source.
	assert.Equal(t, 5.0, m.Cost(0, 5))
}

func TestDijkstraMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h, w := 24, 24
		walls := map[[2]int]bool{}
		n := rapid.IntRange(0, 80).Draw(t, "walls")
		for i := 0; i < n; i++ {
			y := rapid.IntRange(0, h-1).Draw(t, "wy")
			x := rapid.IntRange(0, w-1).Draw(t, "wx")
			walls[[2]int{y, x}] = true
		}
		gy := rapid.IntRange(0, h-1).Draw(t, "gy")
		gx := rapid.IntRange(0, w-1).Draw(t, "gx")
		delete(walls, [2]int{gy, gx})

		m := NewCostMap()
		m.Compute([][2]int{{gy, gx}}, openGrid(h, w, walls))

		// Adjacent reachable cells never differ by more than one step.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a := m.Cost(y, x)
				if a >= m.MaxCost {
					continue
				}
				for _, d := range core.EightDirs {
					b := m.Cost(y+d[0], x+d[1])
					if b >= m.MaxCost {
						continue
					}
					if math.Abs(a-b) > 1.0 {
						t.Fatalf("gradient break at (%d,%d): %f vs %f", y, x, a, b)
					}
				}
			}
		}
	})
}
