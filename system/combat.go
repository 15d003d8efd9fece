package system

import (
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Combat resolves melee: contested skill rolls, weapon base damage,
// pain and wyrd multipliers, armor mitigation, then the damage and
// learning fan-out.
type Combat struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger
}

func NewCombat(w *engine.World, bus *signal.Bus, log *logrus.Logger) *Combat {
	return &Combat{w: w, bus: bus, log: log}
}

func (s *Combat) Init()         {}
func (s *Combat) Priority() int { return constant.PriorityCombat }

func (s *Combat) Update(now core.Looptime) {
	for _, sig := range s.bus.Melee.Iter() {
		s.melee(sig)
	}
}

func (s *Combat) painMult(e core.Entity) float64 {
	h, ok := s.w.C.Health.Get(e)
	if !ok {
		return 1.0
	}
	frac := h.Cur / constant.MaxHealth
	if frac < constant.PainFloor {
		return constant.PainFloor
	}
	return frac
}

// wieldedWeapon finds a weapon in the attacker's hands or carried
// unslotted (SlotAny).
func (s *Combat) wieldedWeapon(e core.Entity) (core.Entity, component.Weapon, bool) {
	for _, item := range s.w.Contents(e) {
		slot, _ := s.w.C.Slot.Get(item)
		if slot != component.SlotLeftHand && slot != component.SlotRightHand && slot != component.SlotAny {
			continue
		}
		if weapon, ok := s.w.C.Weapon.Get(item); ok {
			return item, weapon, true
		}
	}
	return core.None, component.Weapon{}, false
}

// wornArmor finds armor in the defender's armor slot.
func (s *Combat) wornArmor(e core.Entity) (component.Armor, bool) {
	for _, item := range s.w.Contents(e) {
		if slot, _ := s.w.C.Slot.Get(item); slot != component.SlotArmor {
			continue
		}
		if armor, ok := s.w.C.Armor.Get(item); ok {
			return armor, true
		}
	}
	return component.Armor{}, false
}

func (s *Combat) melee(sig signal.Melee) {
	if !s.w.Exists(sig.Source) || !s.w.Exists(sig.Target) {
		return
	}
	atkSkills, ok := s.w.C.Skills.Get(sig.Source)
	if !ok {
		return
	}
	defSkills, ok := s.w.C.Skills.Get(sig.Target)
	if !ok {
		return
	}
	srcTf, ok := s.w.C.Transform.Get(sig.Source)
	if !ok {
		return
	}
	tgtTf, ok := s.w.C.Transform.Get(sig.Target)
	if !ok || !component.Adjacent(srcTf, tgtTf) {
		s.bus.Outbound.Pulse(signal.Outbound{To: sig.Source, Text: "They're out of reach."})
		return
	}

	baseDamage := constant.DefaultWeaponDamage
	storyKey := "fist"
	attackSkill := &atkSkills.MartialArts
	if _, weapon, ok := s.wieldedWeapon(sig.Source); ok {
		baseDamage = weapon.Damage
		storyKey = weapon.StoryKey
		if named := atkSkills.ByName(weapon.SkillKey); named != nil {
			attackSkill = named
		}
	}

	mult, _, _ := Contest(float64(attackSkill.Rank), float64(defSkills.Evasion.Rank), ContestOpts{})
	damage := mult * s.painMult(sig.Source) * baseDamage

	if s.w.C.DoubleDamage.Has(sig.Source) {
		damage *= 2
		s.w.C.DoubleDamage.Remove(sig.Source)
	}
	if dtm, ok := s.w.C.DamageTakenMultiplier.Get(sig.Target); ok {
		damage *= dtm.Value
	}

	// Armor blocks a fraction, scaled by how decisively the defense
	// contested the blow.
	if armor, ok := s.wornArmor(sig.Target); ok {
		armorMult, _, _ := Contest(float64(defSkills.Evasion.Rank), float64(attackSkill.Rank), ContestOpts{
			Dilute: 25.0, MinMult: 0.08, MaxMult: 12.5,
		})
		block := armor.Mitigation * core.Clamp01((armorMult-1.0)/(12.5-1.0)+0.5)
		damage *= 1.0 - block
	}

	s.bus.HealthChanged.Pulse(signal.HealthChanged{
		Source: sig.Target, HealthChange: -damage,
	})

	frac := damage / constant.MaxHealth
	story := content.DamageStory(storyKey, frac)
	StoryEcho(s.w, s.bus, story, component.Visible, content.ChooseWords(story),
		sig.Source, sig.Target)

	// Occasional procs keyed to decisive outcomes.
	switch {
	case frac >= 0.2 && core.RNG.Float64() < s.procChance(sig.Source):
		s.bus.Proc.Pulse(signal.Proc{Verb: "punch", Source: sig.Source, Target: sig.Target})
	case mult <= 0.2 && core.RNG.Float64() < s.procChance(sig.Target):
		// A decisive defense staggers the attacker.
		s.bus.Proc.Pulse(signal.Proc{Verb: "block", Source: sig.Target, Target: sig.Source})
	}

	gen := atkSkills.Generation
	s.bus.Learn.Pulse(signal.Learn{
		Source: sig.Source, Skill: attackSkill.Name,
		Mult: mult, Risk: 1.0, Generation: gen,
	})
	s.bus.Learn.Pulse(signal.Learn{
		Source: sig.Target, Skill: defSkills.Evasion.Name,
		Mult: 1.0 / mult, Risk: 1.0, Generation: defSkills.Generation,
	})

	// The attacker tracks the target's health bar.
	if s.w.C.Connection.Has(sig.Source) {
		if h, ok := s.w.C.Health.Get(sig.Target); ok {
			s.bus.OutboundHealth.Pulse(signal.OutboundHealth{
				To: sig.Source, Source: sig.Target,
				Pct:       core.Clamp01((h.Cur - damage) / constant.MaxHealth),
				StressPct: core.Clamp01(h.Stress / constant.MaxHealth),
			})
		}
	}

	s.log.WithFields(logrus.Fields{
		"source": sig.Source, "target": sig.Target,
		"mult": mult, "damage": damage,
	}).Debug("melee")
}

func (s *Combat) procChance(e core.Entity) float64 {
	chance := 0.1
	if bonus, ok := s.w.C.ProcBonus.Get(e); ok {
		chance += bonus.Value
	}
	return chance
}
