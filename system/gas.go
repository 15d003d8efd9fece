package system

import (
	"container/heap"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

type gasEntry struct {
	due core.Looptime
	eid core.Entity
}

type gasHeap []gasEntry

func (h gasHeap) Len() int           { return len(h) }
func (h gasHeap) Less(i, j int) bool { return h[i].due < h[j].due }
func (h gasHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *gasHeap) Push(x any)        { *h = append(*h, x.(gasEntry)) }
func (h *gasHeap) Pop() any {
	old := *h
	n := len(old)
	out := old[n-1]
	*h = old[:n-1]
	return out
}

// GasSys spreads gas clouds: each step a cell's potence divides among
// itself and its walkable neighbors, less a loss rate; thin cells cull;
// empty clouds delete their entity.
type GasSys struct {
	w   *engine.World
	bus *signal.Bus

	pq gasHeap
}

func NewGasSys(w *engine.World, bus *signal.Bus) *GasSys {
	return &GasSys{w: w, bus: bus}
}

func (s *GasSys) Init()         {}
func (s *GasSys) Priority() int { return constant.PriorityGas }

func (s *GasSys) Update(now core.Looptime) {
	for _, sig := range s.bus.CreateGas.Iter() {
		s.create(sig, now)
	}

	for len(s.pq) > 0 && s.pq[0].due <= now {
		entry := heap.Pop(&s.pq).(gasEntry)
		s.step(entry.eid, now)
	}
}

func (s *GasSys) create(sig signal.CreateGas, now core.Looptime) {
	eid := s.w.Create()
	gas := &component.Gas{Cells: map[component.Cell]float64{{Y: sig.Y, X: sig.X}: 1.0}}
	box := &component.AABB{}
	box.Reset(sig.Y, sig.X)
	s.w.C.Gas.Add(eid, gas)
	s.w.C.GasBox.Add(eid, box)
	s.w.C.Transform.Add(eid, component.Transform{MapID: sig.MapID, Y: sig.Y, X: sig.X})
	heap.Push(&s.pq, gasEntry{due: now, eid: eid})
}

func (s *GasSys) step(eid core.Entity, now core.Looptime) {
	gas, ok := s.w.C.Gas.Get(eid)
	if !ok {
		return
	}
	tf, ok := s.w.C.Transform.Get(eid)
	if !ok {
		s.w.Destroy(eid)
		return
	}
	box, _ := s.w.C.GasBox.Get(eid)

	spread := make(map[component.Cell]float64, len(gas.Cells)*2)
	for cell, potence := range gas.Cells {
		var neighbors []component.Cell
		for _, d := range core.EightDirs {
			n := component.Cell{Y: cell.Y + d[0], X: cell.X + d[1]}
			if world.CanEnter(s.w, tf.MapID, n.Y, n.X) {
				neighbors = append(neighbors, n)
			}
		}

		share := (potence - constant.GasLossRate) / float64(len(neighbors)+1)
		if share <= constant.GasEpsilon {
			continue
		}
		spread[cell] += share
		for _, n := range neighbors {
			spread[n] += share
		}
	}

	clear(gas.Cells)
	first := true
	for cell, potence := range spread {
		gas.Cells[cell] = potence
		if first {
			box.Reset(cell.Y, cell.X)
			first = false
		} else {
			box.Append(cell.Y, cell.X)
		}
	}

	if len(gas.Cells) == 0 {
		s.w.Destroy(eid)
		return
	}

	tf.Y, tf.X = box.Top, box.Left
	s.w.C.Transform.Add(eid, tf)
	heap.Push(&s.pq, gasEntry{due: now + constant.GasStepRate, eid: eid})
	s.bus.GasUpdated.Pulse(signal.GasUpdated{Source: eid})

	// Stream the cloud to anyone who can see its box.
	for _, player := range s.w.C.Connection.All() {
		ptf, ok := s.w.C.Transform.Get(player)
		if !ok || ptf.MapID != tf.MapID {
			continue
		}
		view := component.AABB{
			Top: ptf.Y - constant.ViewH, Bot: ptf.Y + constant.ViewH,
			Left: ptf.X - constant.ViewW, Right: ptf.X + constant.ViewW,
		}
		if !box.Intersects(&view) {
			continue
		}
		for cell, potence := range gas.Cells {
			if view.Contains(cell.Y, cell.X) {
				s.bus.OutboundGas.Pulse(signal.OutboundGas{
					To: player, GasID: eid, MapID: tf.MapID,
					X: cell.X, Y: cell.Y, V: potence,
				})
			}
		}
	}
}
