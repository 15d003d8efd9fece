package core

import (
	"math"
	"math/rand"
)

// RNG is the simulation-wide random source. Seeded once at boot; tests
// reseed for determinism. The simulation is single-threaded, so an
// unlocked source is fine.
var RNG = rand.New(rand.NewSource(1))

// SeedRNG reseeds the shared source.
func SeedRNG(seed int64) {
	RNG = rand.New(rand.NewSource(seed))
}

// LogNormal draws from a log-normal distribution with the given
// location and scale of the underlying normal.
func LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*RNG.NormFloat64())
}
