package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/config"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/network"
	"github.com/dzaramelcone/ninjamagic/nightclock"
	"github.com/dzaramelcone/ninjamagic/persist"
	sigbus "github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/system"
	"github.com/dzaramelcone/ninjamagic/world"
)

func main() {
	cfg, err := config.Load("ninjamagic.toml")
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := cfg.Logger()

	if err := content.Load(); err != nil {
		log.WithError(err).Fatal("content tables")
	}
	if cfg.RandomSeed != 0 {
		core.SeedRNG(cfg.RandomSeed)
	}

	repo, err := persist.OpenSQLite(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	defer repo.Close()

	w := engine.NewWorld()
	bus := sigbus.NewBus()

	world.BuildNowhere(w)
	demo := world.BuildDemo(w)

	// World items persisted from earlier runs come back before anyone
	// connects.
	if rows, err := repo.GetWorldInventories(context.Background()); err == nil {
		persist.LoadInventory(w, rows, core.None)
	} else {
		log.WithError(err).Warn("world inventory load failed")
	}

	sim := engine.NewSimulation(w, bus, log)
	acts := system.NewActQueue(w, bus)
	sched := nightclock.NewScheduler(nil)

	for _, sys := range []engine.System{
		system.NewSaver(w, bus, repo, log),
		system.NewConn(w, bus, log),
		system.NewInbound(w, bus),
		system.NewParser(w, bus, acts),
		system.NewCues(w, bus, sched),
		acts,
		system.NewDrives(w, bus, acts),
		system.NewBehaviors(w, bus, acts),
		system.NewMove(w, bus),
		system.NewCombat(w, bus, log),
		system.NewProcs(w, bus),
		system.NewEchoSys(w, bus),
		system.NewEmitSys(w, bus),
		system.NewCookSys(w, bus, log),
		system.NewSurvive(w, bus, log),
		system.NewForageSys(w, bus),
		system.NewDecay(w, bus),
		system.NewAnchors(w, bus),
		system.NewGasSys(w, bus),
		system.NewRegen(w, bus),
		system.NewPhases(w, bus),
		system.NewExperience(w, bus),
		system.NewWyrdSys(w, bus, log),
		system.NewHealthSys(w, bus),
		system.NewStanceSys(w, bus),
		system.NewCleanup(w, bus, log),
		system.NewVisibility(w, bus),
		system.NewOutbox(w, bus, log),
	} {
		sim.AddSystem(sys)
	}
	sim.Init()

	spawn := newPlayerFactory(w, repo, demo, log)
	server := network.NewServer(bus, spawn, log, cfg.AllowLocalAuth)

	httpServer := &http.Server{Addr: cfg.Listen, Handler: server.Router()}
	go func() {
		log.WithField("listen", cfg.Listen).Info("serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim.Run(ctx)

	httpServer.Shutdown(context.Background())
}

// newPlayerFactory builds the tick-thread spawn path: load or create
// the character, attach components, restore inventory.
func newPlayerFactory(w *engine.World, repo persist.Repo, defaultMap core.Entity, log *logrus.Logger) network.SpawnFunc {
	return func(b *sigbus.Bus, ownerID int64) core.Entity {
		ctx := context.Background()

		brief, found, err := repo.GetCharacterBrief(ctx, ownerID)
		if err != nil {
			log.WithError(err).Warn("character load failed")
		}
		if !found {
			brief = persist.CharacterBrief{
				Name: "newcomer", Pronoun: "they", Glyph: "@",
				MapID: int64(defaultMap), Y: 8, X: 8,
				Health: 100, Stance: string(component.Standing),
			}
			if id, err := repo.CreateCharacter(ctx, ownerID, brief); err == nil {
				brief.ID = id
			} else {
				log.WithError(err).Warn("character create failed")
			}
		}

		e := w.Create()
		w.C.OwnerID.Add(e, component.OwnerID{Value: ownerID})
		w.C.Transform.Add(e, component.Transform{
			MapID: core.Entity(brief.MapID), Y: brief.Y, X: brief.X,
		})
		w.C.Noun.Add(e, component.Noun{
			Value: brief.Name, Pronoun: pronounFor(brief.Pronoun), Num: core.Singular,
		})
		glyph := '@'
		for _, r := range brief.Glyph {
			glyph = r
			break
		}
		w.C.Glyph.Add(e, component.Glyph{Char: glyph, H: 0.6, S: 0.2, V: 0.95})
		w.C.Health.Add(e, component.Health{
			Cur: brief.Health, Stress: brief.Stress,
			Condition: component.ConditionNormal,
		})
		w.C.Stance.Add(e, component.Stance{Cur: component.Posture(brief.Stance)})
		w.C.Stats.Add(e, component.Stats{Grace: brief.Grace, Grit: brief.Grit, Wit: brief.Wit})

		skills := component.NewSkills()
		if found {
			if rows, err := repo.GetSkillsForCharacter(ctx, brief.ID); err == nil {
				for _, row := range rows {
					if sk := skills.ByName(row.Name); sk != nil {
						sk.Rank, sk.Tnl, sk.Pending = row.Rank, row.Tnl, row.Pending
					}
				}
			}
		}
		w.C.Skills.Add(e, skills)

		if rows, err := repo.GetInventoriesForOwner(ctx, ownerID); err == nil {
			persist.LoadInventory(w, rows, e)
		} else {
			log.WithError(err).Warn("inventory load failed")
		}

		return e
	}
}

func pronounFor(name string) component.Pronoun {
	switch name {
	case "he":
		return component.PronounHe
	case "she":
		return component.PronounShe
	case "it":
		return component.PronounIt
	default:
		return component.PronounThey
	}
}
