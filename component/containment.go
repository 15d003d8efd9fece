package component

import "github.com/dzaramelcone/ninjamagic/core"

// ContainedBy links an item to its parent container (or carrier).
// Parent 0 is the sentinel for "not contained"; movement resets to it.
// The containment graph is a forest: commands refuse cycles.
type ContainedBy struct {
	Parent core.Entity
}

// Slot names where a contained item sits on its carrier.
type Slot uint8

const (
	SlotAny Slot = iota
	SlotLeftHand
	SlotRightHand
	SlotBack
	SlotArmor
)

var slotNames = map[Slot]string{
	SlotAny:       "any",
	SlotLeftHand:  "left_hand",
	SlotRightHand: "right_hand",
	SlotBack:      "back",
	SlotArmor:     "armor",
}

func (s Slot) String() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return "any"
}

// ParseSlot resolves a persisted slot name; unknown names map to SlotAny.
func ParseSlot(name string) Slot {
	for s, n := range slotNames {
		if n == name {
			return s
		}
	}
	return SlotAny
}
