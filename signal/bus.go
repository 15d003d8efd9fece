package signal

import (
	"sync"
	"sync/atomic"
	"time"
)

// Bus holds one typed FIFO queue per signal type. Signals pulsed during
// a tick are visible to later-ordered systems in the same tick; the
// tick loop calls Clear exactly once per tick after all systems.
// This is the sole mechanism for intra-tick dataflow.
type Bus struct {
	// Transport
	Connected         Queue[Connected]
	Disconnected      Queue[Disconnected]
	Inbound           Queue[Inbound]
	InboundPrompt     Queue[InboundPrompt]
	Outbound          Queue[Outbound]
	OutboundTile      Queue[OutboundTile]
	OutboundChipSet   Queue[OutboundChipSet]
	OutboundMove      Queue[OutboundMove]
	OutboundGas       Queue[OutboundGas]
	OutboundSkill     Queue[OutboundSkill]
	OutboundPrompt    Queue[OutboundPrompt]
	OutboundGlyph     Queue[OutboundGlyph]
	OutboundNoun      Queue[OutboundNoun]
	OutboundHealth    Queue[OutboundHealth]
	OutboundStance    Queue[OutboundStance]
	OutboundCondition Queue[OutboundCondition]
	OutboundDatetime  Queue[OutboundDatetime]

	// Simulation
	Parse            Queue[Parse]
	MoveCompass      Queue[MoveCompass]
	MovePosition     Queue[MovePosition]
	MoveEntity       Queue[MoveEntity]
	PositionChanged  Queue[PositionChanged]
	StanceChanged    Queue[StanceChanged]
	ConditionChanged Queue[ConditionChanged]
	HealthChanged    Queue[HealthChanged]
	Melee            Queue[Melee]
	Proc             Queue[Proc]
	Die              Queue[Die]
	Learn            Queue[Learn]
	AbsorbRestExp    Queue[AbsorbRestExp]
	Act              Queue[Act]
	Interrupt        Queue[Interrupt]
	Echo             Queue[Echo]
	Emit             Queue[Emit]
	ItemDropped      Queue[ItemDropped]
	Eat              Queue[Eat]
	CreateGas        Queue[CreateGas]
	GasUpdated       Queue[GasUpdated]

	// Time
	NightstormWarning Queue[NightstormWarning]
	RestCheck         Queue[RestCheck]
	DespawnMobs       Queue[DespawnMobs]
	PhaseChanged      Queue[PhaseChanged]
	DecayCheck        Queue[DecayCheck]
	TileDecay         Queue[TileDecay]
	Rot               Queue[Rot]
	Cook              Queue[Cook]
	Forage            Queue[Forage]
	GrowAnchor        Queue[GrowAnchor]
	TendAnchor        Queue[TendAnchor]

	clearers []clearer

	// ingress collects posts from network goroutines and timers; the
	// tick drains it at phase start, making the bus logically
	// single-producer from the tick's perspective.
	ingressMu sync.Mutex
	ingress   []func(*Bus)

	nextAct atomic.Uint64
}

// NewBus wires the clear registry.
func NewBus() *Bus {
	b := &Bus{}
	b.clearers = []clearer{
		&b.Connected, &b.Disconnected, &b.Inbound, &b.InboundPrompt,
		&b.Outbound, &b.OutboundTile, &b.OutboundChipSet, &b.OutboundMove,
		&b.OutboundGas, &b.OutboundSkill, &b.OutboundPrompt, &b.OutboundGlyph,
		&b.OutboundNoun, &b.OutboundHealth, &b.OutboundStance,
		&b.OutboundCondition, &b.OutboundDatetime,
		&b.Parse, &b.MoveCompass, &b.MovePosition, &b.MoveEntity,
		&b.PositionChanged, &b.StanceChanged, &b.ConditionChanged,
		&b.HealthChanged, &b.Melee, &b.Proc, &b.Die, &b.Learn,
		&b.AbsorbRestExp, &b.Act, &b.Interrupt, &b.Echo, &b.Emit,
		&b.ItemDropped, &b.Eat, &b.CreateGas, &b.GasUpdated,
		&b.NightstormWarning, &b.RestCheck, &b.DespawnMobs,
		&b.PhaseChanged, &b.DecayCheck, &b.TileDecay, &b.Rot, &b.Cook,
		&b.Forage, &b.GrowAnchor, &b.TendAnchor,
	}
	return b
}

// Clear empties every queue.
func (b *Bus) Clear() {
	for _, q := range b.clearers {
		q.Clear()
	}
}

// NextActID allocates a serial act id.
func (b *Bus) NextActID() uint64 {
	return b.nextAct.Add(1)
}

// Post schedules fn to run on the tick thread at the next ingress
// drain. Safe to call from any goroutine.
func (b *Bus) Post(fn func(*Bus)) {
	b.ingressMu.Lock()
	b.ingress = append(b.ingress, fn)
	b.ingressMu.Unlock()
}

// Later pulses signals after delay real-seconds, timer-backed.
func (b *Bus) Later(delay time.Duration, fn func(*Bus)) {
	time.AfterFunc(delay, func() { b.Post(fn) })
}

// DrainIngress runs posted closures in post order. Called by the tick
// loop at phase start, before any system.
func (b *Bus) DrainIngress() {
	b.ingressMu.Lock()
	posted := b.ingress
	b.ingress = nil
	b.ingressMu.Unlock()
	for _, fn := range posted {
		fn(b)
	}
}

// PulseAny routes a dynamically-typed payload signal into its queue.
// Used by the act queue to fire stored payloads. Unknown types drop,
// matching the lookup-miss policy.
func (b *Bus) PulseAny(sig any) {
	switch s := sig.(type) {
	case Melee:
		b.Melee.Pulse(s)
	case Outbound:
		b.Outbound.Pulse(s)
	case Echo:
		b.Echo.Pulse(s)
	case Emit:
		b.Emit.Pulse(s)
	case Eat:
		b.Eat.Pulse(s)
	case Cook:
		b.Cook.Pulse(s)
	case Forage:
		b.Forage.Pulse(s)
	case MovePosition:
		b.MovePosition.Pulse(s)
	case MoveEntity:
		b.MoveEntity.Pulse(s)
	case StanceChanged:
		b.StanceChanged.Pulse(s)
	case HealthChanged:
		b.HealthChanged.Pulse(s)
	case Proc:
		b.Proc.Pulse(s)
	case Die:
		b.Die.Pulse(s)
	case GrowAnchor:
		b.GrowAnchor.Pulse(s)
	case TendAnchor:
		b.TendAnchor.Pulse(s)
	case Inbound:
		b.Inbound.Pulse(s)
	case NightstormWarning:
		b.NightstormWarning.Pulse(s)
	case RestCheck:
		b.RestCheck.Pulse(s)
	case DespawnMobs:
		b.DespawnMobs.Pulse(s)
	case DecayCheck:
		b.DecayCheck.Pulse(s)
	case Rot:
		b.Rot.Pulse(s)
	case PhaseChanged:
		b.PhaseChanged.Pulse(s)
	case TileDecay:
		b.TileDecay.Pulse(s)
	}
}
