package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Inbound resolves prompts, applies lag back-pressure, and forwards
// clean lines to the parser.
type Inbound struct {
	w   *engine.World
	bus *signal.Bus

	pending map[core.Entity][]signal.Inbound
}

func NewInbound(w *engine.World, bus *signal.Bus) *Inbound {
	return &Inbound{w: w, bus: bus, pending: make(map[core.Entity][]signal.Inbound)}
}

func (s *Inbound) Init()         {}
func (s *Inbound) Priority() int { return constant.PriorityInbound }

func (s *Inbound) Update(now core.Looptime) {
	// Intercept prompted sources first; the prompt is consumed either
	// way.
	for _, sig := range s.bus.Inbound.Iter() {
		if prompt, ok := s.w.C.Prompt.Get(sig.Source); ok {
			s.w.C.Prompt.Remove(sig.Source)
			s.bus.InboundPrompt.Pulse(signal.InboundPrompt{
				Source: sig.Source, Text: sig.Text, Prompt: prompt,
			})
			continue
		}
		s.route(sig, now)
	}

	for _, sig := range s.bus.InboundPrompt.Iter() {
		s.resolvePrompt(sig, now)
	}

	// Drain one pending line per unlagged source, charging the spam
	// penalty so backlogs clear slowly.
	for entity, queue := range s.pending {
		if !s.w.Exists(entity) {
			delete(s.pending, entity)
			s.w.C.Lag.Remove(entity)
			continue
		}
		if lag, ok := s.w.C.Lag.Get(entity); ok && now < lag.Until {
			continue
		}
		sig := queue[0]
		queue = queue[1:]
		s.bus.Parse.Pulse(signal.Parse{Source: sig.Source, Text: sig.Text})

		if len(queue) == 0 {
			delete(s.pending, entity)
			s.w.C.Lag.Remove(entity)
		} else {
			s.pending[entity] = queue
			s.w.C.Lag.Add(entity, component.Lag{Until: now + constant.SpamPenalty})
		}
	}
}

func (s *Inbound) route(sig signal.Inbound, now core.Looptime) {
	if lag, ok := s.w.C.Lag.Get(sig.Source); ok && now < lag.Until {
		if len(s.pending[sig.Source]) < constant.PendingMax {
			s.pending[sig.Source] = append(s.pending[sig.Source], sig)
		}
		// Over the bound: dropped silently, the source is already laggy.
		return
	}
	s.bus.Parse.Pulse(signal.Parse{Source: sig.Source, Text: sig.Text})
}

func (s *Inbound) resolvePrompt(sig signal.InboundPrompt, now core.Looptime) {
	prompt := sig.Prompt
	matched := prompt.Text == sig.Text
	expired := prompt.End != 0 && prompt.End < now

	var handler func(core.Entity)
	switch {
	case matched && !expired:
		handler = prompt.OnOk
	case !matched && !expired:
		handler = prompt.OnErr
	case matched && expired:
		handler = prompt.OnExpiredOk
	default:
		handler = prompt.OnExpiredErr
	}

	// Clear the client-side prompt display either way.
	s.bus.OutboundPrompt.Pulse(signal.OutboundPrompt{To: sig.Source, Text: ""})

	if handler != nil {
		handler(sig.Source)
		return
	}
	s.route(signal.Inbound{Source: sig.Source, Text: sig.Text}, now)
}
