package system

import (
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/nightclock"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// Conn admits and drops connections. On admit it attaches the
// Connection component and sends the client its opening state: chipset,
// position, nouns and glyphs in view, skills, clock.
type Conn struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger
}

func NewConn(w *engine.World, bus *signal.Bus, log *logrus.Logger) *Conn {
	return &Conn{w: w, bus: bus, log: log}
}

func (s *Conn) Init()         {}
func (s *Conn) Priority() int { return constant.PriorityConn }

func (s *Conn) Update(now core.Looptime) {
	for _, c := range s.bus.Connected.Iter() {
		s.log.WithFields(logrus.Fields{"entity": c.Source}).Info("connected")
		s.w.C.Connection.Add(c.Source, component.NewConnection(c.Peer))
		s.greet(c.Source)
	}

	for _, d := range s.bus.Disconnected.Iter() {
		s.log.WithFields(logrus.Fields{"entity": d.Source}).Info("disconnected")
		s.w.C.Connection.Remove(d.Source)
	}
}

func (s *Conn) greet(e core.Entity) {
	tf, ok := s.w.C.Transform.Get(e)
	if !ok {
		return
	}
	if cs, ok := s.w.C.ChipSet.Get(tf.MapID); ok {
		s.bus.OutboundChipSet.Pulse(signal.OutboundChipSet{To: e, ChipSet: cs})
	}
	s.bus.OutboundMove.Pulse(signal.OutboundMove{
		To: e, Source: e, MapID: tf.MapID, X: tf.X, Y: tf.Y,
	})
	for _, d := range viewCorners {
		s.bus.OutboundTile.Pulse(signal.OutboundTile{
			To: e, MapID: tf.MapID, Top: tf.Y + d[0], Left: tf.X + d[1],
		})
	}
	if g, ok := s.w.C.Glyph.Get(e); ok {
		s.bus.OutboundGlyph.Pulse(signal.OutboundGlyph{To: e, Source: e, Glyph: g})
	}
	if n, ok := s.w.C.Noun.Get(e); ok {
		s.bus.OutboundNoun.Pulse(signal.OutboundNoun{To: e, Source: e, Text: n.String()})
	}
	if sk, ok := s.w.C.Skills.Get(e); ok {
		for _, skill := range sk.All() {
			s.bus.OutboundSkill.Pulse(signal.OutboundSkill{
				To: e, Name: skill.Name, Rank: skill.Rank,
				Tnl: skill.Tnl, Pending: skill.Pending,
			})
		}
	}
	s.bus.OutboundDatetime.Pulse(signal.OutboundDatetime{
		To: e, Seconds: nightclock.Now().SecondsSinceEpoch(),
	})
}

// viewCorners pre-sends the four tiles covering the view window.
var viewCorners = [4][2]int{
	{constant.ViewH, constant.ViewW},
	{-constant.ViewH, constant.ViewW},
	{constant.ViewH, -constant.ViewW},
	{-constant.ViewH, -constant.ViewW},
}
