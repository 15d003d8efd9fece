package nightclock

import (
	"container/heap"

	"github.com/dzaramelcone/ninjamagic/signal"
)

// Rule yields the interval to the next recurrence, or ok=false when the
// cue is spent.
type Rule func() (NightDelta, bool)

// Recurring yields interval nMoreTimes times.
func Recurring(nMoreTimes int, interval NightDelta) Rule {
	i := 0
	return func() (NightDelta, bool) {
		if i >= nMoreTimes {
			return NightDelta{}, false
		}
		i++
		return interval, true
	}
}

// Forever yields interval without end.
func Forever(interval NightDelta) Rule {
	return func() (NightDelta, bool) { return interval, true }
}

// Nightly recurs once per cycle, forever.
func Nightly() Rule {
	return Forever(Nights(1))
}

type cue struct {
	due      NightClock
	tiebreak uint64
	sig      any
	rule     Rule
}

type cueHeap []cue

func (h cueHeap) Len() int { return len(h) }
func (h cueHeap) Less(i, j int) bool {
	if h[i].due.Time().Equal(h[j].due.Time()) {
		return h[i].tiebreak < h[j].tiebreak
	}
	return h[i].due.Before(h[j].due)
}
func (h cueHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *cueHeap) Push(x any)        { *h = append(*h, x.(cue)) }
func (h *cueHeap) Pop() any {
	old := *h
	n := len(old)
	out := old[n-1]
	*h = old[:n-1]
	return out
}

// Scheduler fires signals at in-game times. Ties break by schedule
// order via a monotonic serial.
type Scheduler struct {
	pq     cueHeap
	serial uint64
	now    func() NightClock
}

// NewScheduler uses the wallclock; tests substitute now.
func NewScheduler(now func() NightClock) *Scheduler {
	if now == nil {
		now = Now
	}
	return &Scheduler{now: now}
}

// CueAt schedules sig at an absolute clock.
func (s *Scheduler) CueAt(sig any, at NightClock, rule Rule) {
	s.serial++
	heap.Push(&s.pq, cue{due: at, tiebreak: s.serial, sig: sig, rule: rule})
}

// Cue schedules sig at the next occurrence of t.
func (s *Scheduler) Cue(sig any, t NightTime, rule Rule) {
	clock := s.now()
	s.CueAt(sig, clock.Add(clock.Next(t)), rule)
}

// Pending reports queued cue count.
func (s *Scheduler) Pending() int { return len(s.pq) }

// Process pops every due cue, pulses its signal, and reschedules those
// whose rule yields another interval.
func (s *Scheduler) Process(bus *signal.Bus) {
	clock := s.now()
	for len(s.pq) > 0 && !s.pq[0].due.After(clock) {
		c := heap.Pop(&s.pq).(cue)
		bus.PulseAny(c.sig)
		if c.rule == nil {
			continue
		}
		if eta, ok := c.rule(); ok {
			s.serial++
			heap.Push(&s.pq, cue{
				due:      c.due.Add(eta),
				tiebreak: s.serial,
				sig:      c.sig,
				rule:     c.rule,
			})
		}
	}
}
