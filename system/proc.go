package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Procs expires stuns and applies per-verb combat side effects.
type Procs struct {
	w   *engine.World
	bus *signal.Bus
}

func NewProcs(w *engine.World, bus *signal.Bus) *Procs {
	return &Procs{w: w, bus: bus}
}

func (s *Procs) Init()         {}
func (s *Procs) Priority() int { return constant.PriorityProc }

func (s *Procs) Update(now core.Looptime) {
	for _, e := range s.w.C.Stunned.All() {
		if stun, ok := s.w.C.Stunned.Get(e); ok && stun.End <= now {
			s.w.C.Stunned.Remove(e)
		}
	}

	for _, sig := range s.bus.Proc.Iter() {
		switch sig.Verb {
		case "block":
			if !s.w.Exists(sig.Target) {
				continue
			}
			noun := nounOf(s.w, sig.Target)
			s.bus.Echo.Pulse(signal.Echo{
				Source: sig.Target,
				Text:   "You reel, stunned!",
				Reach:  component.Visible,
				OText:  core.AutoCap(noun.Definite() + " is stunned!"),
			})
			s.w.C.Stunned.Add(sig.Target, component.Stunned{
				End: now + constant.StunLengthSeconds,
			})
		case "punch":
			if !s.w.Exists(sig.Source) {
				continue
			}
			if s.w.C.Connection.Has(sig.Source) {
				s.bus.Outbound.Pulse(signal.Outbound{
					To: sig.Source, Text: "Blood! Your focus sharpens!",
				})
			}
			s.w.C.DoubleDamage.Add(sig.Source, component.DoubleDamage{})
		}
	}
}
