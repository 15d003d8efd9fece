package engine

import "github.com/dzaramelcone/ninjamagic/core"

// System is one pass of the tick. Update reads the current signal
// queues and component stores, mutates components, and pulses follow-up
// signals. Systems never block on I/O.
type System interface {
	Init()
	Update(now core.Looptime)
	Priority() int // Lower values run first
}
