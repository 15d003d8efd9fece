package system

import (
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/constant"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/network"
	"github.com/dzaramelcone/ninjamagic/signal"
	"github.com/dzaramelcone/ninjamagic/world"
)

// Outbox bags outbound signals per recipient, frames at most one
// binary packet per client per tick, and hands it to the async writer.
// Entity ids referencing the recipient rewrite to 0, the client's
// "self" marker.
type Outbox struct {
	w   *engine.World
	bus *signal.Bus
	log *logrus.Logger

	mailbag map[core.Entity][]any
}

func NewOutbox(w *engine.World, bus *signal.Bus, log *logrus.Logger) *Outbox {
	return &Outbox{w: w, bus: bus, log: log, mailbag: make(map[core.Entity][]any)}
}

func (s *Outbox) Init()         {}
func (s *Outbox) Priority() int { return constant.PriorityOutbox }

func (s *Outbox) Update(now core.Looptime) {
	s.bag()

	for eid, mail := range s.mailbag {
		conn, ok := s.w.C.Connection.Get(eid)
		if !ok {
			// No connection on this entity; nothing to send.
			continue
		}

		env := &network.Envelope{}
		for _, sig := range mail {
			s.insert(env, sig, eid, conn, now)
		}

		if env.Len() > 0 {
			if !conn.Peer.Send(env.Bytes()) {
				s.log.WithFields(logrus.Fields{"entity": eid}).
					Debug("send buffer full; packet dropped")
			}
		}
	}

	clear(s.mailbag)
}

func (s *Outbox) bag() {
	add := func(to core.Entity, sig any) {
		s.mailbag[to] = append(s.mailbag[to], sig)
	}
	for _, sig := range s.bus.Outbound.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundMove.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundChipSet.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundTile.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundGas.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundGlyph.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundNoun.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundHealth.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundStance.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundCondition.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundSkill.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundDatetime.Iter() {
		add(sig.To, sig)
	}
	for _, sig := range s.bus.OutboundPrompt.Iter() {
		add(sig.To, sig)
	}
}

// selfID rewrites the recipient's own id to the wire's self marker.
func selfID(to, subject core.Entity) uint64 {
	if to == subject {
		return 0
	}
	return uint64(subject)
}

func (s *Outbox) insert(env *network.Envelope, sig any, to core.Entity, conn component.Connection, now core.Looptime) {
	switch v := sig.(type) {
	case signal.Outbound:
		env.Msg(v.Text)
	case signal.OutboundMove:
		env.Pos(selfID(to, v.Source), uint64(v.MapID), v.X, v.Y)
	case signal.OutboundChipSet:
		for _, row := range v.ChipSet {
			env.Chip(row.ID, uint64(row.MapID), row.Glyph, row.H, row.S, row.V, row.A)
		}
	case signal.OutboundTile:
		key, data := world.GetTile(s.w, v.MapID, v.Top, v.Left)
		if data == nil {
			return
		}
		dedupKey := component.TileKey{MapID: v.MapID, Top: key.Top, Left: key.Left}
		if _, seen := conn.SentTiles[dedupKey]; seen {
			return
		}
		conn.SentTiles[dedupKey] = struct{}{}
		env.Tile(uint64(v.MapID), key.Top, key.Left, data[:])
		world.MarkTileSent(s.w, v.MapID, key, now)
	case signal.OutboundGas:
		env.Gas(uint64(v.GasID), uint64(v.MapID), v.X, v.Y, v.V)
	case signal.OutboundGlyph:
		env.Glyph(selfID(to, v.Source), v.Glyph.Char, v.Glyph.H, v.Glyph.S, v.Glyph.V)
	case signal.OutboundNoun:
		env.Noun(selfID(to, v.Source), v.Text)
	case signal.OutboundHealth:
		env.Health(selfID(to, v.Source), v.Pct, v.StressPct)
	case signal.OutboundStance:
		env.Stance(selfID(to, v.Source), v.Text)
	case signal.OutboundCondition:
		env.Condition(selfID(to, v.Source), v.Text)
	case signal.OutboundSkill:
		env.Skill(v.Name, v.Rank, v.Tnl, v.Pending)
	case signal.OutboundDatetime:
		env.Datetime(v.Seconds)
	case signal.OutboundPrompt:
		env.Prompt(v.Text)
	}
}
