package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

// Behaviors runs scripted mob behavior queues: for each mob, the first
// behavior whose preconditions hold executes, and processing stops
// there for the tick.
type Behaviors struct {
	w   *engine.World
	bus *signal.Bus
	act *ActQueue

	lastTick core.Looptime
}

func NewBehaviors(w *engine.World, bus *signal.Bus, act *ActQueue) *Behaviors {
	return &Behaviors{w: w, bus: bus, act: act}
}

func (s *Behaviors) Init()         {}
func (s *Behaviors) Priority() int { return constant.PriorityBehavior }

func (s *Behaviors) Update(now core.Looptime) {
	if now-s.lastTick < 1.0/constant.DriveTickRate {
		return
	}
	s.lastTick = now

	for _, eid := range s.w.C.BehaviorQueue.All() {
		queue, _ := s.w.C.BehaviorQueue.Get(eid)
		loc, ok := s.w.C.Transform.Get(eid)
		if !ok {
			continue
		}
		if h, ok := s.w.C.Health.Get(eid); ok && h.Condition != component.ConditionNormal {
			continue
		}
		if s.w.C.Stunned.Has(eid) || s.act.IsBusy(eid) {
			continue
		}

		for _, b := range queue.Items {
			if s.execute(eid, loc, b, now) {
				break
			}
		}
	}
}

// execute returns true when the behavior ran.
func (s *Behaviors) execute(eid core.Entity, loc component.Transform, b component.Behavior, now core.Looptime) bool {
	switch b.Kind {
	case component.SelectNearestPlayer:
		target := s.nearest(loc, s.w.C.Connection.All())
		if target == core.None {
			return false
		}
		s.w.C.Target.Add(eid, component.Target{Entity: target})
		return true

	case component.SelectNearestAnchor:
		target := s.nearest(loc, s.w.C.Anchor.All())
		if target == core.None {
			return false
		}
		s.w.C.Target.Add(eid, component.Target{Entity: target})
		return true

	case component.PathTowardEntity:
		target := b.Target
		if target == core.None {
			if t, ok := s.w.C.Target.Get(eid); ok {
				target = t.Entity
			}
		}
		ttf, ok := s.w.C.Transform.Get(target)
		if !ok || ttf.MapID != loc.MapID || ttf == loc {
			return false
		}
		return s.stepToward(eid, loc, ttf.Y, ttf.X)

	case component.PathTowardCoordinate:
		if loc.Y == b.Y && loc.X == b.X {
			return false
		}
		return s.stepToward(eid, loc, b.Y, b.X)

	case component.AttackTarget:
		target := b.Target
		if target == core.None {
			if t, ok := s.w.C.Target.Get(eid); ok {
				target = t.Entity
			}
		}
		ttf, ok := s.w.C.Transform.Get(target)
		if !ok || !component.Adjacent(loc, ttf) {
			return false
		}
		if h, ok := s.w.C.Health.Get(target); ok && h.Condition != component.ConditionNormal {
			return false
		}
		s.bus.Act.Pulse(signal.Act{
			Source: eid,
			Target: target,
			Delay:  constant.MeleeDelaySeconds,
			Then:   signal.Melee{Source: eid, Target: target},
			Start:  now,
			ID:     core.ActID(s.bus.NextActID()),
		})
		return true

	case component.FleeFromEntity:
		ttf, ok := s.w.C.Transform.Get(b.Target)
		if !ok || ttf.MapID != loc.MapID {
			return false
		}
		// Step that maximizes distance from the threat.
		bestDist := core.Abs(loc.Y-ttf.Y) + core.Abs(loc.X-ttf.X)
		var best [2]int
		found := false
		for _, d := range core.EightDirs {
			ny, nx := loc.Y+d[0], loc.X+d[1]
			if !world.CanEnter(s.w, loc.MapID, ny, nx) {
				continue
			}
			dist := core.Abs(ny-ttf.Y) + core.Abs(nx-ttf.X)
			if dist > bestDist {
				bestDist = dist
				best = d
				found = true
			}
		}
		if !found {
			return false
		}
		s.bus.MovePosition.Pulse(signal.MovePosition{
			Source: eid, ToMap: loc.MapID, ToY: loc.Y + best[0], ToX: loc.X + best[1],
		})
		return true

	case component.Wait:
		return now < b.Until
	}
	return false
}

func (s *Behaviors) nearest(loc component.Transform, candidates []core.Entity) core.Entity {
	best := core.None
	bestDist := 1 << 30
	for _, c := range candidates {
		tf, ok := s.w.C.Transform.Get(c)
		if !ok || tf.MapID != loc.MapID {
			continue
		}
		if h, ok := s.w.C.Health.Get(c); ok && h.Condition == component.ConditionDead {
			continue
		}
		dist := core.Abs(tf.Y-loc.Y) + core.Abs(tf.X-loc.X)
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}

// stepToward greedily closes distance, preferring the straight-line
// step and falling back to any step that doesn't lose ground.
func (s *Behaviors) stepToward(eid core.Entity, loc component.Transform, ty, tx int) bool {
	sign := func(v int) int {
		if v > 0 {
			return 1
		}
		if v < 0 {
			return -1
		}
		return 0
	}
	dy, dx := sign(ty-loc.Y), sign(tx-loc.X)
	if world.CanEnter(s.w, loc.MapID, loc.Y+dy, loc.X+dx) {
		s.bus.MovePosition.Pulse(signal.MovePosition{
			Source: eid, ToMap: loc.MapID, ToY: loc.Y + dy, ToX: loc.X + dx,
		})
		return true
	}
	cur := core.Abs(ty-loc.Y) + core.Abs(tx-loc.X)
	for _, d := range core.EightDirs {
		ny, nx := loc.Y+d[0], loc.X+d[1]
		if !world.CanEnter(s.w, loc.MapID, ny, nx) {
			continue
		}
		if core.Abs(ty-ny)+core.Abs(tx-nx) < cur {
			s.bus.MovePosition.Pulse(signal.MovePosition{
				Source: eid, ToMap: loc.MapID, ToY: ny, ToX: nx,
			})
			return true
		}
	}
	return false
}
