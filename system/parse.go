package system

import (
	"strings"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Parser dispatches parsed lines against the command table by prefix
// match on the first token.
type Parser struct {
	w    *engine.World
	bus  *signal.Bus
	acts *ActQueue

	commands []Command
	now      core.Looptime
}

func NewParser(w *engine.World, bus *signal.Bus, acts *ActQueue) *Parser {
	p := &Parser{w: w, bus: bus, acts: acts}
	p.commands = p.buildCommands()
	return p
}

func (p *Parser) Init()         {}
func (p *Parser) Priority() int { return constant.PriorityParse }

func (p *Parser) Update(now core.Looptime) {
	p.now = now
	for _, sig := range p.bus.Parse.Iter() {
		p.parse(sig)
	}
}

func (p *Parser) parse(sig signal.Parse) {
	text := sig.Text
	if text == "" {
		return
	}

	// A leading apostrophe rewrites to say.
	if text[0] == '\'' {
		text = "say " + text[1:]
	}

	first, _, _ := strings.Cut(text, " ")
	first = strings.ToLower(first)

	for i := range p.commands {
		cmd := &p.commands[i]
		if !strings.HasPrefix(cmd.Text, first) {
			continue
		}
		if msg, ok := p.gate(cmd, sig.Source); !ok {
			p.reply(sig.Source, msg)
			return
		}
		ok, errMsg := cmd.Trigger(sig.Source, text)
		if !ok && errMsg != "" {
			p.reply(sig.Source, errMsg)
		}
		return
	}

	p.reply(sig.Source, "Huh?")
}

func (p *Parser) gate(cmd *Command, source core.Entity) (string, bool) {
	if cmd.RequiresHealthy {
		if h, ok := p.w.C.Health.Get(source); ok && h.Condition != component.ConditionNormal {
			return "You're " + string(h.Condition) + "!", false
		}
	}
	if cmd.RequiresNotBusy && p.acts.IsBusy(source) {
		return "You're busy!", false
	}
	return "", true
}

func (p *Parser) reply(source core.Entity, text string) {
	if p.w.C.Connection.Has(source) {
		p.bus.Outbound.Pulse(signal.Outbound{To: source, Text: text})
	}
}
