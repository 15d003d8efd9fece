package system

import (
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/nightclock"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Cues drives the nightclock scheduler and resolves its world-level
// signals: storm warnings, despawns, and the hourly clock report.
type Cues struct {
	w     *engine.World
	bus   *signal.Bus
	sched *nightclock.Scheduler

	lastHour int
}

func NewCues(w *engine.World, bus *signal.Bus, sched *nightclock.Scheduler) *Cues {
	return &Cues{w: w, bus: bus, sched: sched, lastHour: -1}
}

// Init seeds the standing nightly cues.
func (s *Cues) Init() {
	s.sched.Cue(signal.NightstormWarning{}, nightclock.NightTime{Hour: 1, Minute: 50}, nightclock.Nightly())
	s.sched.Cue(signal.RestCheck{}, nightclock.NightTime{Hour: 6}, nightclock.Nightly())
	s.sched.Cue(signal.DespawnMobs{}, nightclock.NightTime{Hour: 2}, nightclock.Nightly())
	s.sched.Cue(signal.DecayCheck{}, nightclock.NightTime{Hour: 2}, nightclock.Nightly())
	s.sched.Cue(signal.Rot{}, nightclock.NightTime{Hour: 6}, nightclock.Nightly())
}

func (s *Cues) Priority() int { return constant.PriorityCues }

func (s *Cues) Update(now core.Looptime) {
	s.sched.Process(s.bus)

	for range s.bus.NightstormWarning.Iter() {
		Broadcast(s.w, s.bus, "The worst of night approaches! Take cover!")
	}

	if !s.bus.DespawnMobs.IsEmpty() {
		for _, eid := range s.w.C.FromDen.All() {
			s.w.Destroy(eid)
		}
		for _, denEID := range s.w.C.Den.All() {
			if den, ok := s.w.C.Den.Get(denEID); ok {
				den.Clear()
			}
		}
	}

	// Hourly clock report to every client.
	clock := nightclock.Now()
	if hour := clock.Hour(); hour != s.lastHour {
		s.lastHour = hour
		for _, e := range s.w.C.Connection.All() {
			s.bus.OutboundDatetime.Pulse(signal.OutboundDatetime{
				To: e, Seconds: clock.SecondsSinceEpoch(),
			})
		}
	}
}
