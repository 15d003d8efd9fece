package engine

import (
	"context"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Simulation owns the world, the bus, and the ordered system list, and
// runs them on one cooperative single-threaded loop. All shared mutable
// state lives on this loop; network producers reach it only through the
// bus ingress.
type Simulation struct {
	World *World
	Bus   *signal.Bus

	systems []System
	log     *logrus.Logger

	start time.Time
}

// NewSimulation wires an empty simulation.
func NewSimulation(w *World, bus *signal.Bus, log *logrus.Logger) *Simulation {
	return &Simulation{World: w, Bus: bus, log: log, start: time.Now()}
}

// AddSystem registers a system; the list stays sorted by priority.
func (s *Simulation) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
}

// Init runs every system's Init in priority order.
func (s *Simulation) Init() {
	for _, sys := range s.systems {
		sys.Init()
	}
}

// Now is monotonic seconds since simulation start.
func (s *Simulation) Now() core.Looptime {
	return time.Since(s.start).Seconds()
}

// Tick runs one full system pass and clears the bus. Exposed for
// tests; Run drives it at the fixed rate.
func (s *Simulation) Tick(now core.Looptime) {
	s.Bus.DrainIngress()
	for _, sys := range s.systems {
		sys.Update(now)
	}
	s.Bus.Clear()
}

// Run drives the fixed-step loop until the context ends.
//
// Each tick: run systems, clear the bus, then sleep just short of the
// deadline and spin-yield across the remainder. Overshoot folds into a
// 30-second-half-life EMA; a loop more than MaxLagReset behind resets
// its deadline rather than death-spiraling through catch-up ticks.
func (s *Simulation) Run(ctx context.Context) {
	alpha := 1.0 - math.Pow(2.0, -1.0/float64(constant.TicksPerHalfLife))
	step := constant.Step.Seconds()
	slack := constant.SleepSlack.Seconds()
	maxLag := constant.MaxLagReset.Seconds()

	deadline := s.Now()
	jitterEMA := 0.0
	lastReport := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := s.Now()
		s.Tick(frameStart)
		metricTicks.Inc()

		deadline += step
		delay := deadline - s.Now()
		if delay > 0 {
			if pause := delay - slack; pause > 0 {
				time.Sleep(time.Duration(pause * float64(time.Second)))
			}
			for deadline-s.Now() > 0 {
				runtime.Gosched()
			}
		} else if -delay > maxLag {
			// Too far behind to catch up; start fresh.
			deadline = s.Now()
		}

		now := s.Now()
		jitter := now - deadline
		jitterEMA = (1-alpha)*jitterEMA + alpha*jitter
		metricJitterEMA.Set(jitterEMA)
		if jitter > 0 {
			metricLateTicks.Observe(jitter)
		}

		if sec := int(now); sec != lastReport && sec%int(constant.JitterHalfLife.Seconds()) == 0 {
			lastReport = sec
			s.log.WithFields(logrus.Fields{"jitter_ema": jitterEMA}).Info("tick health")
		}
	}
}
