package system

import (
	"math"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/nightclock"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

// Phase names the stretch of the night cycle.
type Phase string

const (
	PhaseDay     Phase = "day"     // 06-18: safe to venture
	PhaseEvening Phase = "evening" // 18-23: tension rises, head back
	PhaseWaves   Phase = "waves"   // 23-01: peak mob spawning, defend
	PhaseFade    Phase = "fade"    // 01-02: waves die off, eat
	PhaseRest    Phase = "rest"    // 02-06: camp triggers, XP consolidates
)

// SpawnMultipliers scale wave spawning by phase.
var SpawnMultipliers = map[Phase]float64{
	PhaseDay:     0.2,
	PhaseEvening: 0.8,
	PhaseWaves:   3.0,
	PhaseFade:    0.5,
	PhaseRest:    0.0,
}

// PhaseFor buckets an in-game hour.
func PhaseFor(hour int) Phase {
	switch {
	case 6 <= hour && hour < 18:
		return PhaseDay
	case 18 <= hour && hour < 23:
		return PhaseEvening
	case hour == 23 || hour == 0:
		return PhaseWaves
	case hour == 1:
		return PhaseFade
	default:
		return PhaseRest
	}
}

// WaveIntensity ramps 0..1..0 through the wave hours, peaking at
// midnight.
func WaveIntensity(hour, minute int) float64 {
	if PhaseFor(hour) != PhaseWaves {
		return 0.0
	}
	minutesSinceStart := minute
	if hour != 23 {
		minutesSinceStart += 60
	}
	progress := float64(minutesSinceStart) / 120.0
	return math.Sin(progress * math.Pi)
}

var phaseAnnouncements = map[Phase]string{
	PhaseEvening: "The sun dips low. Darkness stirs.",
	PhaseWaves:   "The darkness comes in waves. Stand fast.",
	PhaseFade:    "The pressure ebbs. The night thins.",
	PhaseRest:    "The world holds its breath. Rest while you can.",
	PhaseDay:     "Dawn breaks. The world is quiet again.",
}

// Phases tracks the day-cycle phase, announces transitions, and spawns
// wave mobs outside anchor protection during the waves.
type Phases struct {
	w   *engine.World
	bus *signal.Bus

	last      Phase
	started   bool
	nextSpawn core.Looptime
}

func NewPhases(w *engine.World, bus *signal.Bus) *Phases {
	return &Phases{w: w, bus: bus}
}

func (s *Phases) Init()         {}
func (s *Phases) Priority() int { return constant.PriorityPhases }

func (s *Phases) Update(now core.Looptime) {
	clock := nightclock.Now()
	current := PhaseFor(clock.Hour())

	if s.started && current != s.last {
		s.bus.PhaseChanged.Pulse(signal.PhaseChanged{
			Old: string(s.last), New: string(current),
		})
	}
	s.started = true
	s.last = current

	for _, sig := range s.bus.PhaseChanged.Iter() {
		if text, ok := phaseAnnouncements[Phase(sig.New)]; ok {
			Broadcast(s.w, s.bus, text)
		}
	}

	if current == PhaseWaves && now >= s.nextSpawn {
		s.nextSpawn = now + 20.0/math.Max(WaveIntensity(clock.Hour(), clock.Minute()), 0.1)
		s.spawnWaveMob(now)
	}
}

// spawnWaveMob samples a spawn point outside every anchor disk and
// drops an anchor-hating mob there.
func (s *Phases) spawnWaveMob(now core.Looptime) {
	for _, anchorEID := range s.w.C.Anchor.All() {
		tf, ok := s.w.C.Transform.Get(anchorEID)
		if !ok {
			continue
		}
		anchor, _ := s.w.C.Anchor.Get(anchorEID)
		y, x, ok := findSpawnPoint(s.w, tf.MapID, tf.Y, tf.X, anchor.Threshold)
		if !ok {
			continue
		}
		world.CreateMob(s.w, tf.MapID, y, x, "shade",
			component.Glyph{Char: 's', H: 0.7, S: 0.3, V: 0.35},
			component.PronounIt,
			func(e core.Entity) {
				s.w.C.Drives.Add(e, component.Drives{
					Aggression: 0.6, Fear: 0.0, Hunger: 0.0, AnchorHate: 0.9,
				})
				s.w.C.DoNotSave.Add(e, component.DoNotSave{})
			})
		return
	}
}

// findSpawnPoint samples points in a ring past the anchor's protection.
func findSpawnPoint(w *engine.World, mapID core.Entity, ay, ax, radius int) (int, int, bool) {
	const maxAttempts = 50
	for i := 0; i < maxAttempts; i++ {
		angle := core.RNG.Float64() * 2 * math.Pi
		dist := float64(radius+1) + core.RNG.Float64()*float64(radius)
		y := ay + int(dist*math.Sin(angle))
		x := ax + int(dist*math.Cos(angle))

		if AnyAnchorProtects(w, mapID, y, x) {
			continue
		}
		if !world.CanEnter(w, mapID, y, x) {
			continue
		}
		return y, x, true
	}
	return 0, 0, false
}
