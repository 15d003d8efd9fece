package component

import "github.com/dzaramelcone/ninjamagic/core"

// SpawnSlot is one respawn point near a hovel. It remembers the last
// spawn time and the mob it produced.
type SpawnSlot struct {
	MapID     core.Entity
	Y, X      int
	SpawnTime core.Looptime
	MobEID    core.Entity
}

// IsReady reports whether the slot may spawn again.
func (s *SpawnSlot) IsReady(respawnDelay float64, now core.Looptime) bool {
	return s.SpawnTime == 0 || now-s.SpawnTime >= respawnDelay
}

// Den groups the spawn slots of one hovel.
type Den struct {
	Slots        []*SpawnSlot
	WakeDistance int
	RespawnDelay float64
}

// Clear forgets spawn history so the den restocks next wake.
func (d *Den) Clear() {
	for _, s := range d.Slots {
		s.SpawnTime = 0
		s.MobEID = 0
	}
}

// FromDen ties a spawned mob back to its slot for despawn accounting.
type FromDen struct {
	Slot *SpawnSlot
}
