package signal

import "github.com/dzaramelcone/ninjamagic/core"

// NightstormWarning fires shortly before the nightstorm coda.
type NightstormWarning struct{}

// RestCheck fires at dawn: rest resolution, junk sweep, rot.
type RestCheck struct{}

// DespawnMobs fires at nightstorm: den mobs vanish, dens reset.
type DespawnMobs struct{}

// PhaseChanged reports a day-cycle phase transition.
type PhaseChanged struct {
	Old string
	New string
}

// DecayCheck triggers the nightly terrain decay scan.
type DecayCheck struct{}

// TileDecay marks one tile for removal, pending rechecks.
type TileDecay struct {
	MapID core.Entity
	Y, X  int
}

// Rot advances rotting items.
type Rot struct{}

// Cook resolves a cooking attempt in a cookware container.
type Cook struct {
	Source   core.Entity
	Cookware core.Entity
}

// Forage resolves a forage attempt at the source's position.
type Forage struct {
	Source core.Entity
}

// GrowAnchor advances an anchor's rank progress.
type GrowAnchor struct {
	Anchor     core.Entity
	PlayerRank int
}

// TendAnchor adds fuel to an anchor.
type TendAnchor struct {
	Anchor core.Entity
	Fuel   float64
}
