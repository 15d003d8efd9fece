package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

// Move turns movement intents into PositionChanged and applies the
// transform mutation last, so every reader in this pass sees the
// pre-move world.
type Move struct {
	w   *engine.World
	bus *signal.Bus
}

func NewMove(w *engine.World, bus *signal.Bus) *Move {
	return &Move{w: w, bus: bus}
}

func (s *Move) Init()         {}
func (s *Move) Priority() int { return constant.PriorityMove }

func (s *Move) Update(now core.Looptime) {
	for _, sig := range s.bus.MoveCompass.Iter() {
		s.compass(sig, now)
	}
	for _, sig := range s.bus.MovePosition.Iter() {
		s.position(sig)
	}
	for _, sig := range s.bus.MoveEntity.Iter() {
		s.contain(sig)
	}

	// Mutate last.
	for _, sig := range s.bus.PositionChanged.Iter() {
		if sig.ToMap == core.None {
			// Entered a container; the world transform goes away.
			s.w.C.Transform.Remove(sig.Source)
			continue
		}
		s.w.C.Transform.Add(sig.Source, component.Transform{
			MapID: sig.ToMap, Y: sig.ToY, X: sig.ToX,
		})
	}
}

func (s *Move) compass(sig signal.MoveCompass, now core.Looptime) {
	loc, ok := s.w.C.Transform.Get(sig.Source)
	if !ok {
		return
	}
	dy, dx := sig.Dir.Vector()
	toY, toX := loc.Y+dy, loc.X+dx

	if !world.CanEnter(s.w, loc.MapID, toY, toX) {
		if s.w.C.Connection.Has(sig.Source) {
			s.bus.Outbound.Pulse(signal.Outbound{To: sig.Source, Text: "You can't go there."})
		}
		return
	}

	s.bus.PositionChanged.Pulse(signal.PositionChanged{
		Source:  sig.Source,
		FromMap: loc.MapID, FromY: loc.Y, FromX: loc.X,
		ToMap: loc.MapID, ToY: toY, ToX: toX,
	})

	// Wake nearby dens before the position applies so mobs exist for
	// the visibility pass.
	if s.w.C.Connection.Has(sig.Source) {
		s.wakeDens(loc.MapID, toY, toX, now)
	}
}

func (s *Move) wakeDens(mapID core.Entity, y, x int, now core.Looptime) {
	for _, denEID := range s.w.C.Den.All() {
		den, _ := s.w.C.Den.Get(denEID)
		tf, ok := s.w.C.Transform.Get(denEID)
		if !ok || tf.MapID != mapID {
			continue
		}
		inReach := component.Chebyshev(den.WakeDistance, den.WakeDistance)
		if !inReach(component.Transform{MapID: mapID, Y: y, X: x}, tf) {
			continue
		}
		for _, slot := range den.Slots {
			if !slot.IsReady(den.RespawnDelay, now) {
				continue
			}
			slot.MobEID = world.CreateMob(s.w, slot.MapID, slot.Y, slot.X, "goblin",
				component.Glyph{Char: 'g', H: 0.25, S: 0.7, V: 0.6},
				component.PronounIt,
				func(e core.Entity) {
					s.w.C.Drives.Add(e, component.Drives{
						Aggression: 0.7, Fear: 0.1, Hunger: 0.3, AnchorHate: 0.4,
					})
					s.w.C.FromDen.Add(e, component.FromDen{Slot: slot})
				})
			slot.SpawnTime = now
		}
	}
}

func (s *Move) position(sig signal.MovePosition) {
	loc, hadTransform := s.w.C.Transform.Get(sig.Source)
	if !hadTransform {
		loc = component.Transform{}
	}
	s.bus.PositionChanged.Pulse(signal.PositionChanged{
		Source:  sig.Source,
		FromMap: loc.MapID, FromY: loc.Y, FromX: loc.X,
		ToMap: sig.ToMap, ToY: sig.ToY, ToX: sig.ToX,
		Quiet: sig.Quiet,
	})
	// Moving into the world resets containment.
	if s.w.C.ContainedBy.Has(sig.Source) {
		s.w.C.ContainedBy.Add(sig.Source, component.ContainedBy{})
	}
	if s.w.C.Slot.Has(sig.Source) {
		s.w.C.Slot.Add(sig.Source, component.SlotAny)
	}
}

func (s *Move) contain(sig signal.MoveEntity) {
	s.w.C.ContainedBy.Add(sig.Source, component.ContainedBy{Parent: sig.Container})
	s.w.C.Slot.Add(sig.Source, sig.Slot)

	if loc, ok := s.w.C.Transform.Get(sig.Source); ok {
		s.bus.PositionChanged.Pulse(signal.PositionChanged{
			Source:  sig.Source,
			FromMap: loc.MapID, FromY: loc.Y, FromX: loc.X,
			ToMap: core.None, ToY: 0, ToX: 0,
			Quiet: true,
		})
	}
}
