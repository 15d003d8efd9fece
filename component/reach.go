package component

import (
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
)

// Reach is a binary predicate over two transforms, used for audience
// selection.
type Reach func(this, that Transform) bool

// Adjacent is the melee reach: the same cell or any of its eight
// neighbors.
func Adjacent(this, that Transform) bool {
	return this.MapID == that.MapID &&
		core.Abs(this.Y-that.Y) <= 1 &&
		core.Abs(this.X-that.X) <= 1
}

// Visible holds within the standard view window on the same map.
func Visible(this, that Transform) bool {
	return this.MapID == that.MapID &&
		core.Abs(this.X-that.X) <= constant.ViewW &&
		core.Abs(this.Y-that.Y) <= constant.ViewH
}

// World holds for any two transforms on the same map.
func World(this, that Transform) bool {
	return this.MapID == that.MapID
}

// Chebyshev builds a max-norm window reach with explicit radii.
func Chebyshev(ry, rx int) Reach {
	return func(this, that Transform) bool {
		return this.MapID == that.MapID &&
			core.Abs(this.Y-that.Y) <= ry &&
			core.Abs(this.X-that.X) <= rx
	}
}
