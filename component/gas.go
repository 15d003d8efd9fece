package component

// Cell is a map coordinate used by sparse overlays.
type Cell struct {
	Y, X int
}

// Gas is a sparse cloud of potence values that spreads and thins each
// simulation step. An entity whose gas empties is deleted.
type Gas struct {
	Cells map[Cell]float64
}

// AABB is the cloud's bounding box, recomputed each step.
type AABB struct {
	Top, Bot, Left, Right int
}

// Clear zeroes the box.
func (b *AABB) Clear() {
	b.Top, b.Bot, b.Left, b.Right = 0, 0, 0, 0
}

// Contains reports whether (y, x) lies inside the box.
func (b *AABB) Contains(y, x int) bool {
	return b.Top <= y && y <= b.Bot && b.Left <= x && x <= b.Right
}

// Append grows the box to include (y, x).
func (b *AABB) Append(y, x int) {
	if y < b.Top {
		b.Top = y
	}
	if y > b.Bot {
		b.Bot = y
	}
	if x < b.Left {
		b.Left = x
	}
	if x > b.Right {
		b.Right = x
	}
}

// Intersects reports whether two boxes overlap.
func (b *AABB) Intersects(other *AABB) bool {
	return !(b.Right < other.Left || b.Left > other.Right ||
		b.Bot < other.Top || b.Top > other.Bot)
}

// Reset collapses the box onto a single cell.
func (b *AABB) Reset(y, x int) {
	b.Top, b.Bot, b.Left, b.Right = y, y, x, x
}
