package core

// Entity identifies a simulation entity. Components are attached by type;
// an entity has at most one component of each type.
// Entity 0 is the none sentinel and is never allocated.
type Entity uint64

// None is the zero entity.
const None Entity = 0

// ActID identifies a queued act. Serial, never reused within a process.
type ActID uint64

// Looptime is monotonic seconds since simulation start.
type Looptime = float64

// Walltime is seconds since the unix epoch.
type Walltime = float64
