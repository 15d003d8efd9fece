package system

import (
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Wyrd state modifiers.
const (
	wyrdDamageMultiplier = 2.0
	wyrdProcBonus        = 0.1
	statSicknessNights   = 3
)

// WyrdSys runs the sacrifice-at-anchor decision tree: kneel at a fire,
// answer its prompts, carry the anima — and pay for it.
//
// Prompt chain: first "reach into the fire" sacrifices rested learning;
// failing that, a stat-keyed prompt trades a stat sickness; failing
// both, the moment passes.
type WyrdSys struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger
}

func NewWyrdSys(w *engine.World, bus *signal.Bus, log *logrus.Logger) *WyrdSys {
	return &WyrdSys{w: w, bus: bus, log: log}
}

func (s *WyrdSys) Init()         {}
func (s *WyrdSys) Priority() int { return constant.PriorityWyrd }

func (s *WyrdSys) Update(now core.Looptime) {
	// Death lets go of the fire.
	for _, sig := range s.bus.Die.Iter() {
		if wyrd, ok := s.w.C.Wyrd.Get(sig.Source); ok {
			if s.w.Exists(wyrd.Anima) {
				s.w.Destroy(wyrd.Anima)
			}
			s.exitWyrd(sig.Source)
			StoryEcho(s.w, s.bus, "The anima fades into nothing.",
				component.Adjacent, nil, sig.Source)
		}
	}

	// A dropped anima breaks the bond.
	for _, sig := range s.bus.ItemDropped.Iter() {
		anima, ok := s.w.C.Anima.Get(sig.Item)
		if !ok {
			continue
		}
		if s.w.C.Wyrd.Has(anima.SourcePlayer) {
			s.exitWyrd(anima.SourcePlayer)
			if s.w.C.Connection.Has(anima.SourcePlayer) {
				s.bus.Outbound.Pulse(signal.Outbound{
					To:   anima.SourcePlayer,
					Text: "The anima slips from your grasp. The fire fades.",
				})
			}
		}
	}

	// Kneeling at an anchor starts the prompt tree.
	for _, sig := range s.bus.StanceChanged.Iter() {
		if sig.Stance != component.Kneeling {
			continue
		}
		if sig.Prop == core.None || !s.w.C.Anchor.Has(sig.Prop) {
			continue
		}
		s.startPrompt(sig.Source)
	}
}

func (s *WyrdSys) startPrompt(player core.Entity) {
	if s.w.C.Wyrd.Has(player) {
		if s.w.C.Connection.Has(player) {
			s.bus.Outbound.Pulse(signal.Outbound{
				To: player, Text: "You already carry the fire.",
			})
		}
		return
	}

	const firstPrompt = "reach into the fire"
	s.w.C.Prompt.Add(player, component.Prompt{
		Text: firstPrompt,
		OnOk: s.onXPSacrificeOk,
		OnErr: s.onXPSacrificeErr,
	})
	if s.w.C.Connection.Has(player) {
		s.bus.Outbound.Pulse(signal.Outbound{
			To: player, Text: "The anchor's fire beckons...",
		})
		s.bus.OutboundPrompt.Pulse(signal.OutboundPrompt{To: player, Text: firstPrompt})
	}
}

func (s *WyrdSys) anchorAt(player core.Entity) core.Entity {
	tf, ok := s.w.C.Transform.Get(player)
	if !ok {
		return core.None
	}
	for _, eid := range s.w.C.Anchor.All() {
		if atf, ok := s.w.C.Transform.Get(eid); ok && component.Adjacent(tf, atf) {
			return eid
		}
	}
	return core.None
}

func (s *WyrdSys) onXPSacrificeOk(player core.Entity) {
	anchor := s.anchorAt(player)
	if anchor == core.None {
		s.reply(player, "The fire has gone out.")
		return
	}

	skill, rank := "", 0
	if gains, ok := s.w.C.LastRestGains.Get(player); ok {
		for name, r := range gains.Gains {
			if r > rank {
				skill, rank = name, r
			}
		}
	}

	s.enterWyrd(player, anchor, "", skill, rank)
	StoryEcho(s.w, s.bus,
		"{0} {0:reaches} into the fire. Something tears free. {0} {0:holds} it now.",
		component.Adjacent, nil, player)
}

func (s *WyrdSys) onXPSacrificeErr(player core.Entity) {
	stat := s.highestStat(player)
	prompt := statPrompts[stat]

	s.w.C.Prompt.Add(player, component.Prompt{
		Text: prompt,
		OnOk: func(p core.Entity) { s.onStatSacrificeOk(p, stat) },
		OnErr: func(p core.Entity) {
			StoryEcho(s.w, s.bus, "The moment passes.", component.Adjacent, nil, p)
		},
	})
	s.reply(player, "You pull away. But it beckons within...")
	if s.w.C.Connection.Has(player) {
		s.bus.OutboundPrompt.Pulse(signal.OutboundPrompt{To: player, Text: prompt})
	}
}

func (s *WyrdSys) onStatSacrificeOk(player core.Entity, stat string) {
	anchor := s.anchorAt(player)
	if anchor == core.None {
		s.reply(player, "The fire has gone out.")
		return
	}
	s.enterWyrd(player, anchor, stat, "", 0)
	StoryEcho(s.w, s.bus, "{0} {0:grasps} something that burns. It leaves a mark.",
		component.Adjacent, nil, player)
}

var statPrompts = map[string]string{
	"grace": "catch the falling ash",
	"grit":  "hold the coal",
	"wit":   "name the flame",
}

func (s *WyrdSys) highestStat(player core.Entity) string {
	stats, _ := s.w.C.Stats.Get(player)
	best, bestVal := "grit", stats.Grit
	if stats.Grace > bestVal {
		best, bestVal = "grace", stats.Grace
	}
	if stats.Wit > bestVal {
		best = "wit"
	}
	return best
}

func (s *WyrdSys) enterWyrd(player, anchor core.Entity, stat, skill string, rank int) {
	anima := s.createAnima(player, anchor, stat, skill, rank)

	s.w.C.DamageTakenMultiplier.Add(player, component.DamageTakenMultiplier{Value: wyrdDamageMultiplier})
	s.w.C.ProcBonus.Add(player, component.ProcBonus{Value: wyrdProcBonus})
	if stat != "" {
		s.w.C.StatSickness.Add(player, component.StatSickness{
			Stat: stat, NightsRemaining: statSicknessNights,
		})
	}
	s.w.C.Wyrd.Add(player, component.Wyrd{Anima: anima})

	playerRank := rank
	if playerRank == 0 {
		playerRank = 1
	}
	s.bus.GrowAnchor.Pulse(signal.GrowAnchor{Anchor: anchor, PlayerRank: playerRank})

	s.log.WithFields(logrus.Fields{
		"player": player, "anchor": anchor, "stat": stat, "skill": skill,
	}).Info("wyrd_entered")
}

func (s *WyrdSys) exitWyrd(player core.Entity) {
	if !s.w.C.Wyrd.Has(player) {
		return
	}
	s.w.C.DamageTakenMultiplier.Remove(player)
	s.w.C.ProcBonus.Remove(player)
	s.w.C.StatSickness.Remove(player)
	s.w.C.Wyrd.Remove(player)
	s.log.WithFields(logrus.Fields{"player": player}).Info("wyrd_exited")
}

// createAnima puts the carried fire in an empty hand, dropping the left
// hand's item when both are full.
func (s *WyrdSys) createAnima(player, anchor core.Entity, stat, skill string, rank int) core.Entity {
	anima := s.w.Create()
	s.w.C.Anima.Add(anima, component.Anima{
		SourceAnchor: anchor, SourcePlayer: player,
		Stat: stat, Skill: skill, Rank: rank,
	})
	s.w.C.Noun.Add(anima, component.Noun{
		Value: "anima", Pronoun: component.PronounIt, Num: core.Singular,
	})
	s.w.C.Glyph.Add(anima, component.Glyph{Char: '*', H: 0.08, S: 0.9, V: 0.7})

	dest := component.SlotLeftHand
	var left, right core.Entity
	for _, item := range s.w.Contents(player) {
		switch s.w.C.Slot.MustGet(item) {
		case component.SlotLeftHand:
			left = item
		case component.SlotRightHand:
			right = item
		}
	}
	switch {
	case left == core.None:
		dest = component.SlotLeftHand
	case right == core.None:
		dest = component.SlotRightHand
	default:
		// Hands full: the left hand item hits the ground.
		if tf, ok := s.w.C.Transform.Get(player); ok {
			s.bus.MovePosition.Pulse(signal.MovePosition{
				Source: left, ToMap: tf.MapID, ToY: tf.Y, ToX: tf.X, Quiet: true,
			})
			s.bus.ItemDropped.Pulse(signal.ItemDropped{Source: player, Item: left})
		}
		dest = component.SlotLeftHand
	}

	s.w.C.ContainedBy.Add(anima, component.ContainedBy{Parent: player})
	s.w.C.Slot.Add(anima, dest)
	return anima
}

func (s *WyrdSys) reply(player core.Entity, text string) {
	if s.w.C.Connection.Has(player) {
		s.bus.Outbound.Pulse(signal.Outbound{To: player, Text: text})
	}
}
