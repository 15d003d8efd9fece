// Package system holds the per-tick passes of the simulation, ordered
// by priority: leaves first, outbox last.
package system

import (
	"container/heap"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

type actHeap []signal.Act

func (h actHeap) Len() int            { return len(h) }
func (h actHeap) Less(i, j int) bool  { return h[i].End() < h[j].End() }
func (h actHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *actHeap) Push(x any)         { *h = append(*h, x.(signal.Act)) }
func (h *actHeap) Pop() any {
	old := *h
	n := len(old)
	out := old[n-1]
	*h = old[:n-1]
	return out
}

// ActQueue owns the delayed-act min-heap and the one-action-per-source
// discipline. An entity has at most one outstanding act; new acts
// replace it, and the superseded heap entry becomes a tombstone that is
// discarded on pop.
type ActQueue struct {
	w   *engine.World
	bus *signal.Bus

	pq      actHeap
	current map[core.Entity]core.ActID
}

// NewActQueue builds the act layer.
func NewActQueue(w *engine.World, bus *signal.Bus) *ActQueue {
	return &ActQueue{
		w:       w,
		bus:     bus,
		current: make(map[core.Entity]core.ActID),
	}
}

func (a *ActQueue) Init()         {}
func (a *ActQueue) Priority() int { return constant.PriorityAct }

// Update reaps interrupts, fires expired acts, and admits this tick's
// new acts.
func (a *ActQueue) Update(now core.Looptime) {
	for _, sig := range a.bus.Interrupt.Iter() {
		delete(a.current, sig.Source)
	}

	for len(a.pq) > 0 && a.pq[0].End() < now {
		act := heap.Pop(&a.pq).(signal.Act)
		if a.current[act.Source] != act.ID {
			continue
		}
		delete(a.current, act.Source)
		if a.w.Exists(act.Source) {
			a.bus.PulseAny(act.Then)
		}
	}

	for _, act := range a.bus.Act.Iter() {
		a.current[act.Source] = act.ID
		heap.Push(&a.pq, act)
	}
}

// IsBusy reports whether the entity has an outstanding act.
func (a *ActQueue) IsBusy(e core.Entity) bool {
	_, ok := a.current[e]
	return ok
}

// Interrupt clears the source's marker immediately; the heap entry
// stays and is silently discarded when popped.
func (a *ActQueue) Interrupt(e core.Entity) {
	delete(a.current, e)
}

func (a *ActQueue) actThreatens(act signal.Act, target core.Entity) bool {
	if act.Target != target {
		return false
	}
	if !a.w.Exists(act.Source) {
		return false
	}
	// Acts pulsed this tick are not in current yet; absence passes.
	if cur, ok := a.current[act.Source]; ok && cur != act.ID {
		return false
	}
	if h, ok := a.w.C.Health.Get(act.Source); ok && h.Condition != component.ConditionNormal {
		return false
	}
	if a.w.C.Stunned.Has(act.Source) {
		return false
	}
	return true
}

// BeingAttacked reports a live, un-stunned, normal-condition pending act
// against target, in the heap or in this tick's pulses.
func (a *ActQueue) BeingAttacked(target core.Entity) bool {
	for _, act := range a.pq {
		if a.actThreatens(act, target) {
			return true
		}
	}
	for _, act := range a.bus.Act.Iter() {
		if a.actThreatens(act, target) {
			return true
		}
	}
	return false
}

// AttackedByOther is BeingAttacked excluding acts from source.
func (a *ActQueue) AttackedByOther(source, target core.Entity) bool {
	for _, act := range a.pq {
		if act.Source != source && a.actThreatens(act, target) {
			return true
		}
	}
	for _, act := range a.bus.Act.Iter() {
		if act.Source != source && a.actThreatens(act, target) {
			return true
		}
	}
	return false
}
