package system

import (
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Cleanup handles deaths, the nightly junk sweep, and rot.
type Cleanup struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger
}

func NewCleanup(w *engine.World, bus *signal.Bus, log *logrus.Logger) *Cleanup {
	return &Cleanup{w: w, bus: bus, log: log}
}

func (s *Cleanup) Init()         {}
func (s *Cleanup) Priority() int { return constant.PriorityCleanup }

func (s *Cleanup) Update(now core.Looptime) {
	for _, sig := range s.bus.Die.Iter() {
		s.die(sig)
	}

	// Junk sweeps with the dawn.
	if !s.bus.RestCheck.IsEmpty() {
		for _, eid := range s.w.C.Junk.All() {
			s.w.Destroy(eid)
		}
	}

	if !s.bus.Rot.IsEmpty() {
		for _, eid := range s.w.C.Rotting.All() {
			if s.w.C.Transform.Has(eid) {
				StoryEcho(s.w, s.bus, "{0} rots away.", component.Visible, nil, eid)
			}
			s.w.Destroy(eid)
		}
	}
}

func (s *Cleanup) die(sig signal.Die) {
	if !s.w.Exists(sig.Source) {
		return
	}
	StoryEcho(s.w, s.bus, "{0} {0:collapses}, still at last.",
		component.Visible, nil, sig.Source)

	// Mobs leave a corpse and go away; players stay down.
	if s.w.C.Connection.Has(sig.Source) {
		return
	}
	if tf, ok := s.w.C.Transform.Get(sig.Source); ok {
		noun := nounOf(s.w, sig.Source)
		content.CreateItem(s.w, content.ItemSpec{
			Key: "corpse",
			Noun: &component.Noun{
				Value: "corpse", Adjective: noun.Value,
				Pronoun: component.PronounIt, Num: core.Singular,
			},
			Junk:      true,
			Transform: tf,
		})
	}
	if fd, ok := s.w.C.FromDen.Get(sig.Source); ok && fd.Slot != nil {
		fd.Slot.MobEID = core.None
	}
	s.log.WithFields(logrus.Fields{"entity": sig.Source}).Info("died")
	s.w.Destroy(sig.Source)
}
