package constant

import "time"

// Game Loop & Engine Timing
const (
	// TPS is the fixed simulation tick rate.
	TPS = 1000

	// Step is the fixed tick interval.
	Step = time.Second / TPS

	// MaxLagReset bounds catch-up: if the loop falls further behind than
	// this, the deadline is reset to now instead of death-spiraling.
	MaxLagReset = 250 * time.Millisecond

	// SleepSlack is subtracted from the frame sleep; the remainder is
	// spin-yielded for deadline precision.
	SleepSlack = time.Millisecond

	// JitterHalfLife is the half-life of the tick jitter EMA and the
	// period of the jitter-EMA log report.
	JitterHalfLife = 30 * time.Second

	// TicksPerHalfLife derives from the half-life at the fixed rate.
	TicksPerHalfLife = int(JitterHalfLife / Step)
)

// Inbound throttling
const (
	// SpamPenalty is the lag applied per drained command while catching
	// up a backlogged source.
	SpamPenalty = 0.275

	// PendingMax bounds each source's inbound backlog; excess is
	// silently dropped.
	PendingMax = 20
)
