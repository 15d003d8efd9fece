// Package nightclock maps real time onto the game's nonlinear
// day/night cycle and schedules cues against it.
package nightclock

import (
	"errors"
	"math"
	"time"
)

// EST anchors the cycle; all conversions happen in this zone.
var EST = time.FixedZone("EST", -5*60*60)

// Configurable world constants.
const (
	HoursPerNight          = 20 // 06:00 -> 02:00
	SecondsPerNight        = 18.0 * 60.0
	SecondsPerNightstorm   = 25.0
	SecondsPerStormHour    = SecondsPerNightstorm / (24 - HoursPerNight)
	SecondsPerNightActive  = SecondsPerNight - SecondsPerNightstorm
	SecondsPerNightHour    = SecondsPerNightActive / HoursPerNight
	BaseNightyear          = 200
	SecondsPerDay          = 86400.0
	NightsPerDay           = int(SecondsPerDay / SecondsPerNight)
)

// Epoch is the world's first instant: Dec 2025 is nightyear 200.
var Epoch = time.Date(2025, time.December, 1, 0, 0, 0, 0, EST)

// NightTime is an in-game hour/minute pair.
type NightTime struct {
	Hour   int
	Minute int
}

// ErrBadNightTime rejects out-of-range authoring input.
var ErrBadNightTime = errors.New("nightclock: hour or minute out of range")

// NewNightTime validates at the authoring boundary; inside the loop
// times are always constructed valid.
func NewNightTime(hour, minute int) (NightTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return NightTime{}, ErrBadNightTime
	}
	return NightTime{Hour: hour, Minute: minute}, nil
}

// TotalSeconds maps the time into [0, SecondsPerNight) on the
// two-segment curve: hours 06..01 run at the active rate, 02..05 at the
// compressed nightstorm rate.
func (t NightTime) TotalSeconds() float64 {
	var hour int
	switch {
	case t.Hour >= 6:
		hour = t.Hour - 6
	case t.Hour < 2:
		hour = t.Hour + 18
	default:
		// Nightstorm.
		offset := float64(t.Hour-2) * SecondsPerStormHour
		offset += float64(t.Minute) * SecondsPerStormHour / 60.0
		return SecondsPerNightActive + offset
	}
	out := float64(hour) * SecondsPerNightHour
	out += float64(t.Minute) * SecondsPerNightHour / 60.0
	return out
}

// NightTimeFromSeconds inverts TotalSeconds.
func NightTimeFromSeconds(seconds float64) NightTime {
	seconds = math.Mod(seconds, SecondsPerNight)
	if seconds < 0 {
		seconds += SecondsPerNight
	}
	var hour float64
	if seconds < SecondsPerNightActive {
		hour = math.Mod(seconds/SecondsPerNightHour+6.0, 24.0)
	} else {
		hour = 2.0 + (seconds-SecondsPerNightActive)/SecondsPerStormHour
	}
	h := math.Floor(hour)
	return NightTime{Hour: int(h), Minute: int((hour - h) * 60)}
}

// NightDelta is a span of real seconds expressed in game units.
type NightDelta struct {
	Seconds float64
}

// Nights builds a delta of whole cycles.
func Nights(n float64) NightDelta {
	return NightDelta{Seconds: n * SecondsPerNight}
}

// Hours builds a delta of active-segment hours.
func Hours(h float64) NightDelta {
	return NightDelta{Seconds: h * SecondsPerNightHour}
}

// Minutes builds a delta of active-segment minutes.
func Minutes(m float64) NightDelta {
	return NightDelta{Seconds: m * SecondsPerNightHour / 60.0}
}

// Seconds builds a raw real-second delta.
func Seconds(s float64) NightDelta {
	return NightDelta{Seconds: s}
}

// NightClock is a stateless, injective mapping from a real-world EST
// timestamp to game time. All values derive by arithmetic from the
// wallclock; there is no hidden state.
type NightClock struct {
	dt time.Time
}

// Now reads the wallclock.
func Now() NightClock {
	return At(time.Now())
}

// At fixes a clock to a timestamp.
func At(dt time.Time) NightClock {
	return NightClock{dt: dt.In(EST)}
}

// Time exposes the underlying instant.
func (c NightClock) Time() time.Time { return c.dt }

// Add advances the clock by a delta.
func (c NightClock) Add(d NightDelta) NightClock {
	return NightClock{dt: c.dt.Add(time.Duration(d.Seconds * float64(time.Second)))}
}

// SubDelta rewinds the clock by a delta.
func (c NightClock) SubDelta(d NightDelta) NightClock {
	return NightClock{dt: c.dt.Add(-time.Duration(d.Seconds * float64(time.Second)))}
}

// Diff is clock minus clock.
func (c NightClock) Diff(other NightClock) NightDelta {
	return NightDelta{Seconds: c.dt.Sub(other.dt).Seconds()}
}

// Before and After order clocks.
func (c NightClock) Before(other NightClock) bool { return c.dt.Before(other.dt) }
func (c NightClock) After(other NightClock) bool  { return c.dt.After(other.dt) }

// Next returns the delta to the next occurrence of t: today if still
// ahead, else tomorrow.
func (c NightClock) Next(t NightTime) NightDelta {
	target := t.TotalSeconds()
	s := c.Seconds()
	if target > s {
		return NightDelta{Seconds: target - s}
	}
	return NightDelta{Seconds: (SecondsPerNight - s) + target}
}

func (c NightClock) midnight() time.Time {
	y, m, d := c.dt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, EST)
}

func (c NightClock) secondsSinceMidnight() float64 {
	return c.dt.Sub(c.midnight()).Seconds()
}

// Seconds is the position inside the current night cycle.
func (c NightClock) Seconds() float64 {
	return math.Mod(c.secondsSinceMidnight(), SecondsPerNight)
}

// Hour is the in-game hour in 24-hour format.
func (c NightClock) Hour() int {
	s := c.Seconds()
	if s < SecondsPerNightActive {
		h := 6 + int(s/SecondsPerNightHour)
		if h >= 24 {
			h -= 24
		}
		return h
	}
	return 2 + int((s-SecondsPerNightActive)/SecondsPerStormHour)
}

// HoursFloat is the continuous in-game hour in [0, 24).
func (c NightClock) HoursFloat() float64 {
	s := c.Seconds()
	if s < SecondsPerNightActive {
		return math.Mod(s/SecondsPerNightHour+6.0, 24.0)
	}
	return 2.0 + (s-SecondsPerNightActive)/SecondsPerStormHour
}

// Minute is the in-game minute.
func (c NightClock) Minute() int {
	s := c.Seconds()
	if s < SecondsPerNightActive {
		rem := math.Mod(s, SecondsPerNightHour)
		return int(rem / SecondsPerNightHour * 60)
	}
	rem := math.Mod(s-SecondsPerNightActive, SecondsPerStormHour)
	return int(rem / SecondsPerStormHour * 60)
}

// ElapsedPct is the fraction elapsed through the active night.
func (c NightClock) ElapsedPct() float64 {
	return math.Min(c.Seconds()/SecondsPerNightActive, 1.0)
}

// InNightstorm reports whether the coda has begun.
func (c NightClock) InNightstorm() bool {
	return c.Seconds() >= SecondsPerNightActive
}

// NightstormETA is seconds until the coda begins; negative inside it.
func (c NightClock) NightstormETA() float64 {
	return SecondsPerNightActive - c.Seconds()
}

// NightstormElapsedPct is the fraction through the coda.
func (c NightClock) NightstormElapsedPct() float64 {
	if !c.InNightstorm() {
		return 0.0
	}
	remaining := SecondsPerNight - c.Seconds()
	return 1.0 - remaining/SecondsPerNightstorm
}

// NextHourETA is seconds until the next active-segment hour mark.
func (c NightClock) NextHourETA() float64 {
	s := c.Seconds()
	next := (math.Floor(s/SecondsPerNightHour) + 1) * SecondsPerNightHour
	eta := next - s
	return math.Max(0.0, math.Min(eta, SecondsPerNightActive-s))
}

func (c NightClock) monthStart() time.Time {
	y, m, _ := c.dt.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, EST)
}

func (c NightClock) nextMonthStart() time.Time {
	return c.monthStart().AddDate(0, 1, 0)
}

// Nightyears: one real month is one nightyear; Dec 2025 is the base.
func (c NightClock) Nightyears() int {
	monthsSinceEpoch := (c.dt.Year()-2025)*12 + int(c.dt.Month()) - 12
	return BaseNightyear + monthsSinceEpoch
}

// NightyearElapsedPct is the fraction through the current nightyear.
func (c NightClock) NightyearElapsedPct() float64 {
	start, end := c.monthStart(), c.nextMonthStart()
	dur := end.Sub(start).Seconds()
	if dur <= 0 {
		return 0.0
	}
	return c.dt.Sub(start).Seconds() / dur
}

// SecondsSinceEpoch clamps to zero before the epoch.
func (c NightClock) SecondsSinceEpoch() float64 {
	return math.Max(0.0, c.dt.Sub(Epoch).Seconds())
}

// MoonsSinceEpoch: one real day is one moon.
func (c NightClock) MoonsSinceEpoch() int {
	return int(c.SecondsSinceEpoch() / SecondsPerDay)
}

// NightsSinceEpoch counts whole cycles since the epoch.
func (c NightClock) NightsSinceEpoch() int {
	nightsToday := int(c.secondsSinceMidnight() / SecondsPerNight)
	return c.MoonsSinceEpoch()*NightsPerDay + nightsToday
}

// seasonal day-length model shared by Dawn and Dusk. Day length swings
// 10.5h..16h; midday centre swings 12.25..14.0.
func (c NightClock) daySpan() (center, length float64) {
	angle := 2 * math.Pi * c.NightyearElapsedPct()
	length = 13.25 - 2.75*math.Cos(angle)
	center = 13.125 - 0.875*math.Cos(angle)
	return center, length
}

// Dawn is the seasonal sunrise in 24h hours.
func (c NightClock) Dawn() float64 {
	center, length := c.daySpan()
	return math.Max(0.0, math.Min(24.0, center-length/2.0))
}

// Dusk is the seasonal sunset in 24h hours.
func (c NightClock) Dusk() float64 {
	center, length := c.daySpan()
	return math.Max(0.0, math.Min(24.0, center+length/2.0))
}

// BrightnessIndex is the 0-7 light band.
//
//   - Nightstorm: 0 (full dark).
//   - Deep night: ~1.
//   - At seasonal dawn/dusk: ~4.
//   - At seasonal noon: 7.
func (c NightClock) BrightnessIndex() int {
	// Nightstorm overrides everything: world swallowed.
	if c.InNightstorm() {
		return 0
	}

	h := c.HoursFloat()
	sunrise, sunset := c.Dawn(), c.Dusk()

	var norm float64
	if sunrise <= h && h <= sunset {
		// Daytime: half-sine from 0.5 at the edges to 1.0 at noon.
		t := (h - sunrise) / (sunset - sunrise)
		t = math.Max(0.0, math.Min(1.0, t))
		norm = 0.5 + 0.5*math.Sin(math.Pi*t)
	} else {
		var d float64
		if h < sunrise {
			d = (24.0 - sunset) + h
		} else {
			d = h - sunset
		}
		// After ~6 hours from the edge the night is fully dark.
		falloff := math.Max(0.0, 1.0-d/6.0)
		norm = 0.5 * falloff
	}

	band := 1 + int(math.Round(6.0*norm))
	if band < 1 {
		band = 1
	}
	if band > 7 {
		band = 7
	}
	return band
}
