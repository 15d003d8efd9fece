package system

import (
	"strings"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Command is one row of the dispatch table. Trigger returns ok and an
// error message for the source when not ok.
type Command struct {
	Text            string
	RequiresHealthy bool
	RequiresNotBusy bool
	Trigger         func(source core.Entity, text string) (bool, string)
}

func (p *Parser) stanceIs(e core.Entity, check component.Posture) bool {
	st, ok := p.w.C.Stance.Get(e)
	return ok && st.Cur == check
}

// propAt finds a usable prop in or next to the source's cell.
func (p *Parser) propAt(e core.Entity) core.Entity {
	for _, other := range Find(p.w, e, "", component.Adjacent) {
		if p.w.C.Anchor.Has(other) || p.w.C.ProvidesShelter.Has(other) ||
			p.w.C.ProvidesHeat.Has(other) {
			return other
		}
	}
	return core.None
}

func (p *Parser) moveCommand(name string, dir core.Compass) Command {
	return Command{
		Text:            name,
		RequiresHealthy: true,
		RequiresNotBusy: true,
		Trigger: func(source core.Entity, _ string) (bool, string) {
			if !p.stanceIs(source, component.Standing) {
				return false, "You must stand first."
			}
			p.bus.MoveCompass.Pulse(signal.MoveCompass{Source: source, Dir: dir})
			return true, ""
		},
	}
}

func (p *Parser) stanceCommand(name string, to component.Posture, already string) Command {
	return Command{
		Text:            name,
		RequiresHealthy: true,
		RequiresNotBusy: true,
		Trigger: func(source core.Entity, _ string) (bool, string) {
			if p.stanceIs(source, to) {
				return false, already
			}
			p.bus.StanceChanged.Pulse(signal.StanceChanged{
				Source: source, Stance: to, Prop: p.propAt(source), Echo: true,
			})
			return true, ""
		},
	}
}

func rest(text string) string {
	_, after, _ := strings.Cut(text, " ")
	return strings.TrimSpace(after)
}

func (p *Parser) buildCommands() []Command {
	cmds := []Command{}
	for c := core.North; c < core.CompassCount; c++ {
		cmds = append(cmds, p.moveCommand(c.String(), c))
	}
	for _, short := range []string{"ne", "se", "sw", "nw"} {
		dir, _ := core.ParseCompass(short)
		cmds = append(cmds, p.moveCommand(short, dir))
	}

	cmds = append(cmds,
		Command{
			Text: "look",
			Trigger: func(source core.Entity, text string) (bool, string) {
				prefix := rest(text)
				if prefix == "" {
					return false, "Look at what?"
				}
				match, ok := FindFirst(p.w, source, prefix, component.Visible)
				if !ok {
					return false, "You see nothing like that."
				}
				noun := nounOf(p.w, match)
				p.bus.Outbound.Pulse(signal.Outbound{
					To:   source,
					Text: core.AutoCap("you see " + noun.Definite() + "."),
				})
				return true, ""
			},
		},
		Command{
			Text: "say",
			Trigger: func(source core.Entity, text string) (bool, string) {
				speech := rest(text)
				if speech == "" {
					return false, "You open your mouth, as if to speak."
				}
				StoryEcho(p.w, p.bus, "{0} {0:says}, '{speech}'", component.Visible,
					map[string]string{"speech": speech}, source)
				return true, ""
			},
		},
		Command{
			Text:            "attack",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				prefix := rest(text)
				if prefix == "" {
					return false, "Attack whom?"
				}
				target, ok := FindFirst(p.w, source, prefix, component.Adjacent)
				if !ok {
					return false, "Attack whom?"
				}
				if h, ok := p.w.C.Health.Get(target); ok && h.Condition != component.ConditionNormal {
					return false, "They're " + string(h.Condition) + "!"
				}
				StoryEcho(p.w, p.bus, "{0} {0:draws} back {0:their} fist...",
					component.Adjacent, nil, source, target)
				p.bus.Act.Pulse(signal.Act{
					Source: source,
					Target: target,
					Delay:  constant.MeleeDelaySeconds,
					Then:   signal.Melee{Source: source, Target: target},
					Start:  p.now,
					ID:     core.ActID(p.bus.NextActID()),
				})
				return true, ""
			},
		},
		p.stanceCommand("stand", component.Standing, "You're already standing."),
		p.stanceCommand("sit", component.Sitting, "You're already sitting."),
		p.stanceCommand("kneel", component.Kneeling, "You're already kneeling."),
		p.stanceCommand("lie", component.LyingProne, "You're already lying prone."),
		Command{
			Text:            "get",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				prefix := rest(text)
				if prefix == "" {
					return false, "Get what?"
				}
				item, ok := FindFirst(p.w, source, prefix, component.Adjacent)
				if !ok || !p.w.C.ItemKey.Has(item) {
					return false, "You see nothing like that here."
				}
				if p.w.C.DoNotSave.Has(item) && !p.w.C.Food.Has(item) {
					// Fixtures stay put.
					return false, "It won't budge."
				}
				p.bus.MoveEntity.Pulse(signal.MoveEntity{
					Source: item, Container: source, Slot: component.SlotAny,
				})
				StoryEcho(p.w, p.bus, "{0} {0:picks} up {1}.", component.Adjacent,
					nil, source, item)
				return true, ""
			},
		},
		Command{
			Text:            "drop",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				prefix := rest(text)
				if prefix == "" {
					return false, "Drop what?"
				}
				item, ok := FindCarried(p.w, source, prefix)
				if !ok {
					return false, "You aren't carrying that."
				}
				tf, ok := p.w.C.Transform.Get(source)
				if !ok {
					return false, "There is no here here."
				}
				p.bus.MovePosition.Pulse(signal.MovePosition{
					Source: item, ToMap: tf.MapID, ToY: tf.Y, ToX: tf.X, Quiet: true,
				})
				p.bus.ItemDropped.Pulse(signal.ItemDropped{Source: source, Item: item})
				StoryEcho(p.w, p.bus, "{0} {0:drops} {1}.", component.Adjacent,
					nil, source, item)
				return true, ""
			},
		},
		Command{
			Text:            "eat",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				prefix := rest(text)
				if prefix == "" {
					return false, "Eat what?"
				}
				food, ok := FindCarried(p.w, source, prefix)
				if !ok {
					food, ok = FindFirst(p.w, source, prefix, component.Adjacent)
				}
				if !ok || !p.w.C.Food.Has(food) {
					return false, "That's not food."
				}
				p.bus.Eat.Pulse(signal.Eat{Source: source, Food: food})
				return true, ""
			},
		},
		Command{
			Text:            "forage",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				StoryEcho(p.w, p.bus, "{0} {0:searches} the ground...",
					component.Adjacent, nil, source)
				p.bus.Act.Pulse(signal.Act{
					Source: source,
					Delay:  4.0,
					Then:   signal.Forage{Source: source},
					Start:  p.now,
					ID:     core.ActID(p.bus.NextActID()),
				})
				return true, ""
			},
		},
		Command{
			Text:            "cook",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				pot, ok := FindFirst(p.w, source, "cookpot", component.Adjacent)
				if !ok || !p.w.C.Cookware.Has(pot) {
					return false, "There's nothing to cook in."
				}
				p.bus.Act.Pulse(signal.Act{
					Source: source,
					Delay:  6.0,
					Then:   signal.Cook{Source: source, Cookware: pot},
					Start:  p.now,
					ID:     core.ActID(p.bus.NextActID()),
				})
				return true, ""
			},
		},
		Command{
			Text:            "tend",
			RequiresHealthy: true,
			RequiresNotBusy: true,
			Trigger: func(source core.Entity, text string) (bool, string) {
				anchor := core.None
				for _, e := range Find(p.w, source, "", component.Adjacent) {
					if p.w.C.Anchor.Has(e) {
						anchor = e
						break
					}
				}
				if anchor == core.None {
					return false, "There's no fire here to tend."
				}
				p.bus.TendAnchor.Pulse(signal.TendAnchor{Anchor: anchor, Fuel: 10})
				StoryEcho(p.w, p.bus, "{0} {0:tends} {1}.", component.Adjacent,
					nil, source, anchor)
				return true, ""
			},
		},
	)
	return cmds
}
