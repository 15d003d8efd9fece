package system

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/persist"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Saver snapshots a departing player's character, skills, and
// inventory on the tick thread, then writes them out on a goroutine so
// the loop never waits on storage. It runs before Conn so the
// Connection component is still attached when the snapshot happens.
type Saver struct {
	w    *engine.World
	bus  *signal.Bus
	repo persist.Repo
	log  *logrus.Logger
}

func NewSaver(w *engine.World, bus *signal.Bus, repo persist.Repo, log *logrus.Logger) *Saver {
	return &Saver{w: w, bus: bus, repo: repo, log: log}
}

func (s *Saver) Init()         {}
func (s *Saver) Priority() int { return constant.PriorityConn - 5 }

func (s *Saver) Update(now core.Looptime) {
	for _, sig := range s.bus.Disconnected.Iter() {
		s.save(sig.Source)
	}
}

func (s *Saver) save(e core.Entity) {
	owner, ok := s.w.C.OwnerID.Get(e)
	if !ok {
		return
	}

	brief := persist.CharacterBrief{Health: 100, Stance: string(component.Standing)}
	if n, ok := s.w.C.Noun.Get(e); ok {
		brief.Name = n.Value
		brief.Pronoun = n.Pronoun.They
	}
	if tf, ok := s.w.C.Transform.Get(e); ok {
		brief.MapID, brief.Y, brief.X = int64(tf.MapID), tf.Y, tf.X
	}
	if h, ok := s.w.C.Health.Get(e); ok {
		brief.Health, brief.Stress = h.Cur, h.Stress
	}
	if st, ok := s.w.C.Stance.Get(e); ok {
		brief.Stance = string(st.Cur)
	}
	if stats, ok := s.w.C.Stats.Get(e); ok {
		brief.Grace, brief.Grit, brief.Wit = stats.Grace, stats.Grit, stats.Wit
	}

	var skillRows []persist.SkillRow
	if skills, ok := s.w.C.Skills.Get(e); ok {
		for _, sk := range skills.All() {
			skillRows = append(skillRows, persist.SkillRow{
				Name: sk.Name, Rank: sk.Rank, Tnl: sk.Tnl, Pending: sk.Pending,
			})
		}
	}

	invRows := persist.SaveOwnerInventory(s.w, owner.Value, e)

	go func() {
		ctx := context.Background()
		if err := s.repo.UpsertCharacter(ctx, owner.Value, brief); err != nil {
			s.log.WithError(err).Warn("character save failed")
			return
		}
		// Re-read the id for the skills write; the upsert may have
		// created the row.
		saved, found, err := s.repo.GetCharacterBrief(ctx, owner.Value)
		if err != nil || !found {
			s.log.WithError(err).Warn("character reload failed")
			return
		}
		if err := s.repo.UpsertSkills(ctx, saved.ID, skillRows); err != nil {
			s.log.WithError(err).Warn("skills save failed")
		}
		if err := s.repo.ReplaceInventoriesForOwner(ctx, owner.Value, invRows); err != nil {
			s.log.WithError(err).Warn("inventory save failed")
		}
	}()
}
