package nightclock

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dzaramelcone/ninjamagic/signal"
)

func TestNightTimeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seconds := rapid.Float64Range(0, SecondsPerNight-0.001).Draw(t, "seconds")
		nt := NightTimeFromSeconds(seconds)
		back := nt.TotalSeconds()

		// Truncation to whole minutes loses at most one in-game minute
		// of real seconds, which is larger in the storm segment.
		tolerance := SecondsPerNightHour / 60.0
		if seconds >= SecondsPerNightActive {
			tolerance = SecondsPerStormHour
		}
		if math.Abs(back-seconds) > tolerance+1.0 {
			t.Fatalf("round trip drifted: %f -> %v -> %f", seconds, nt, back)
		}
	})
}

func TestNightTimeSegments(t *testing.T) {
	six := NightTime{Hour: 6}
	assert.Equal(t, 0.0, six.TotalSeconds())

	one := NightTime{Hour: 1}
	assert.InDelta(t, 19*SecondsPerNightHour, one.TotalSeconds(), 1e-9)

	two := NightTime{Hour: 2}
	assert.InDelta(t, SecondsPerNightActive, two.TotalSeconds(), 1e-9)

	five30 := NightTime{Hour: 5, Minute: 30}
	assert.Greater(t, five30.TotalSeconds(), two.TotalSeconds())
	assert.Less(t, five30.TotalSeconds(), SecondsPerNight)
}

func TestNewNightTimeValidates(t *testing.T) {
	_, err := NewNightTime(24, 0)
	require.ErrorIs(t, err, ErrBadNightTime)
	_, err = NewNightTime(0, 60)
	require.ErrorIs(t, err, ErrBadNightTime)
	_, err = NewNightTime(23, 59)
	require.NoError(t, err)
}

func TestBrightnessZeroIffNightstorm(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offset := rapid.Float64Range(0, SecondsPerDay).Draw(t, "offset")
		clock := At(Epoch.Add(time.Duration(offset * float64(time.Second))))
		if clock.InNightstorm() {
			if clock.BrightnessIndex() != 0 {
				t.Fatalf("nightstorm but brightness %d", clock.BrightnessIndex())
			}
		} else if clock.BrightnessIndex() == 0 {
			t.Fatalf("brightness 0 outside nightstorm at %v", clock.Time())
		}
	})
}

func TestNightstormBoundary(t *testing.T) {
	// Exactly at the last second of the active night.
	edge := At(Epoch.Add(time.Duration(SecondsPerNightActive * float64(time.Second))))
	assert.True(t, edge.InNightstorm())
	assert.Equal(t, 0, edge.BrightnessIndex())

	before := At(Epoch.Add(time.Duration((SecondsPerNightActive - 1.0) * float64(time.Second))))
	assert.False(t, before.InNightstorm())
	assert.Greater(t, before.BrightnessIndex(), 0)
}

func TestClockDeltaRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offset := rapid.Float64Range(0, 30*SecondsPerDay).Draw(t, "offset")
		deltaSecs := rapid.Float64Range(0, SecondsPerNight*3).Draw(t, "delta")

		clock := At(Epoch.Add(time.Duration(offset * float64(time.Second))))
		delta := Seconds(deltaSecs)

		back := clock.Add(delta).SubDelta(delta)
		if math.Abs(back.Diff(clock).Seconds) > 1e-6 {
			t.Fatalf("clock + d - d drifted by %f", back.Diff(clock).Seconds)
		}
	})
}

func TestHourMinuteProgression(t *testing.T) {
	start := At(Epoch)
	assert.Equal(t, 6, start.Hour())
	assert.Equal(t, 0, start.Minute())

	oneHour := start.Add(Hours(1))
	assert.Equal(t, 7, oneHour.Hour())

	// Nineteen active hours in: 01:00, the last pre-storm hour.
	late := start.Add(Hours(19))
	assert.Equal(t, 1, late.Hour())
	assert.False(t, late.InNightstorm())
}

func TestEpochCounters(t *testing.T) {
	clock := At(Epoch.Add(25 * time.Hour))
	assert.Equal(t, 1, clock.MoonsSinceEpoch())
	assert.Equal(t, BaseNightyear, clock.Nightyears())
	assert.Equal(t, clock.MoonsSinceEpoch()*NightsPerDay+int(clock.secondsSinceMidnight()/SecondsPerNight), clock.NightsSinceEpoch())
}

func TestDawnBeforeDusk(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offset := rapid.Float64Range(0, 365*SecondsPerDay).Draw(t, "offset")
		clock := At(Epoch.Add(time.Duration(offset * float64(time.Second))))
		if clock.Dawn() >= clock.Dusk() {
			t.Fatalf("dawn %f not before dusk %f", clock.Dawn(), clock.Dusk())
		}
	})
}

func TestSchedulerFiresAndRecurs(t *testing.T) {
	now := At(Epoch)
	current := now
	sched := NewScheduler(func() NightClock { return current })
	bus := signal.NewBus()

	sched.Cue(signal.RestCheck{}, NightTime{Hour: 7}, Recurring(1, Nights(1)))

	// Not yet due.
	sched.Process(bus)
	assert.True(t, bus.RestCheck.IsEmpty())

	// Advance past 07:00.
	current = now.Add(Hours(1)).Add(Seconds(1))
	sched.Process(bus)
	assert.Len(t, bus.RestCheck.Iter(), 1)
	assert.Equal(t, 1, sched.Pending())

	// The single recurrence fires one night later, then retires.
	bus.Clear()
	current = current.Add(Nights(1))
	sched.Process(bus)
	assert.Len(t, bus.RestCheck.Iter(), 1)
	assert.Equal(t, 0, sched.Pending())
}

func TestSchedulerTiebreakIsScheduleOrder(t *testing.T) {
	now := At(Epoch)
	current := now
	sched := NewScheduler(func() NightClock { return current })
	bus := signal.NewBus()

	at := now.Add(Hours(1))
	sched.CueAt(signal.Outbound{To: 1, Text: "first"}, at, nil)
	sched.CueAt(signal.Outbound{To: 1, Text: "second"}, at, nil)

	current = at.Add(Seconds(1))
	sched.Process(bus)

	got := bus.Outbound.Iter()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
}
