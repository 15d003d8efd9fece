package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/navigation"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

// Drives steers mobs by weighted Dijkstra layers. Movement emerges from
// combining per-drive costs; mobs with a behavior queue are left to the
// behavior system.
type Drives struct {
	w   *engine.World
	bus *signal.Bus
	act *ActQueue

	lastTick core.Looptime
}

func NewDrives(w *engine.World, bus *signal.Bus, act *ActQueue) *Drives {
	return &Drives{w: w, bus: bus, act: act}
}

func (s *Drives) Init()         {}
func (s *Drives) Priority() int { return constant.PriorityDrives }

type mobRow struct {
	eid    core.Entity
	drives component.Drives
	loc    component.Transform
	health component.Health
}

func (s *Drives) Update(now core.Looptime) {
	if now-s.lastTick < 1.0/constant.DriveTickRate {
		return
	}
	s.lastTick = now

	mobsByMap := make(map[core.Entity][]mobRow)
	for _, eid := range s.w.C.Drives.All() {
		if s.w.C.BehaviorQueue.Has(eid) {
			continue
		}
		drives, _ := s.w.C.Drives.Get(eid)
		loc, ok := s.w.C.Transform.Get(eid)
		if !ok {
			continue
		}
		health, ok := s.w.C.Health.Get(eid)
		if !ok || health.Condition != component.ConditionNormal {
			continue
		}
		mobsByMap[loc.MapID] = append(mobsByMap[loc.MapID], mobRow{eid, drives, loc, health})
	}

	for mapID, mobs := range mobsByMap {
		canEnter := func(y, x int) bool {
			return world.CanEnter(s.w, mapID, y, x)
		}

		playerLayer := navigation.NewCostMap()
		foodLayer := navigation.NewCostMap()
		anchorLayer := navigation.NewCostMap()

		if players := s.findPlayers(mapID); len(players) > 0 {
			playerLayer.Compute(players, canEnter)
		}
		if food := s.findGoals(s.w.C.Food.All(), mapID); len(food) > 0 {
			foodLayer.Compute(food, canEnter)
		}
		if anchors := s.findGoals(s.w.C.Anchor.All(), mapID); len(anchors) > 0 {
			anchorLayer.Compute(anchors, canEnter)
		}

		for _, mob := range mobs {
			hpFrac := mob.health.Cur / constant.MaxHealth
			aggr := mob.drives.EffectiveAggression(hpFrac)
			fear := mob.drives.EffectiveFear(hpFrac)

			if s.react(mob.eid, mob.loc, aggr, fear) {
				continue
			}

			dy, dx, ok := bestDirection(
				mob.loc.Y, mob.loc.X,
				playerLayer, foodLayer, anchorLayer,
				aggr, fear, mob.drives.Hunger, mob.drives.AnchorHate,
				fear > 0,
				canEnter,
			)
			if ok {
				s.bus.MovePosition.Pulse(signal.MovePosition{
					Source: mob.eid,
					ToMap:  mob.loc.MapID,
					ToY:    mob.loc.Y + dy,
					ToX:    mob.loc.X + dx,
				})
			}
		}
	}
}

func (s *Drives) findPlayers(mapID core.Entity) [][2]int {
	var out [][2]int
	for _, eid := range s.w.C.Connection.All() {
		tf, ok := s.w.C.Transform.Get(eid)
		if !ok || tf.MapID != mapID {
			continue
		}
		if h, ok := s.w.C.Health.Get(eid); ok && h.Condition == component.ConditionDead {
			continue
		}
		out = append(out, [2]int{tf.Y, tf.X})
	}
	return out
}

func (s *Drives) findGoals(entities []core.Entity, mapID core.Entity) [][2]int {
	var out [][2]int
	for _, eid := range entities {
		if tf, ok := s.w.C.Transform.Get(eid); ok && tf.MapID == mapID {
			out = append(out, [2]int{tf.Y, tf.X})
		}
	}
	return out
}

// react pulses an attack command when an aggressive mob stands beside a
// live player, letting the parser and commands path handle the swing.
func (s *Drives) react(eid core.Entity, loc component.Transform, aggression, fear float64) bool {
	if s.act.IsBusy(eid) {
		return true
	}
	if aggression <= 0.3 || aggression <= fear {
		return false
	}
	for _, player := range s.w.C.Connection.All() {
		ptf, ok := s.w.C.Transform.Get(player)
		if !ok || ptf.MapID != loc.MapID {
			continue
		}
		if h, ok := s.w.C.Health.Get(player); ok && h.Condition == component.ConditionDead {
			continue
		}
		if core.Abs(ptf.Y-loc.Y)+core.Abs(ptf.X-loc.X) <= 1 {
			noun, ok := s.w.C.Noun.Get(player)
			if !ok {
				continue
			}
			// Route through the ingress so next tick's parser pass
			// handles the attack like any other command.
			line := "attack " + noun.Value
			src := eid
			s.bus.Post(func(b *signal.Bus) {
				b.Inbound.Pulse(signal.Inbound{Source: src, Text: line})
			})
			return true
		}
	}
	return false
}

// bestDirection scores each adjacent cell with the weighted layer sum;
// lower is better. When no neighbor strictly improves and the mob is
// escaping a local minimum, any walkable fallback beats paralysis.
func bestDirection(
	y, x int,
	playerLayer, foodLayer, anchorLayer *navigation.CostMap,
	aggression, fear, hunger, anchorHate float64,
	escapeLocalMinimum bool,
	canEnter navigation.WalkChecker,
) (int, int, bool) {
	score := func(cy, cx int) float64 {
		return playerLayer.Cost(cy, cx)*aggression +
			playerLayer.InvCost(cy, cx)*fear +
			foodLayer.Cost(cy, cx)*hunger +
			anchorLayer.InvCost(cy, cx)*anchorHate
	}

	bestScore := score(y, x)
	var best, fallback [2]int
	haveBest, haveFallback := false, false

	for _, d := range core.EightDirs {
		ny, nx := y+d[0], x+d[1]
		if !canEnter(ny, nx) {
			continue
		}
		fallback = [2]int{d[0], d[1]}
		haveFallback = true

		if sc := score(ny, nx); sc < bestScore {
			bestScore = sc
			best = [2]int{d[0], d[1]}
			haveBest = true
		}
	}

	if haveBest {
		return best[0], best[1], true
	}
	if escapeLocalMinimum && haveFallback {
		return fallback[0], fallback[1], true
	}
	return 0, 0, false
}
