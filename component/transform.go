package component

import "github.com/dzaramelcone/ninjamagic/core"

// Transform is a world position. Entities owned by a container carry a
// ContainedBy edge instead; the two never coexist at end-of-tick.
type Transform struct {
	MapID core.Entity
	Y, X  int
}
