package engine

import "github.com/dzaramelcone/ninjamagic/core"

// AnyStore provides type-erased operations for lifecycle management.
// World manages all stores uniformly for operations like entity
// destruction without knowing the concrete type.
type AnyStore interface {
	RemoveComponent(e core.Entity)
	HasComponent(e core.Entity) bool
	CountEntity() int
	ClearAllComponent()
}
