package signal

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
)

// Connected reports a client connection. Posted from a network
// goroutine through the bus ingress.
type Connected struct {
	Source core.Entity
	Peer   component.Peer
}

// Disconnected reports a closed client connection.
type Disconnected struct {
	Source core.Entity
}

// Inbound is one raw command line from a client or a mob's synthesized
// command.
type Inbound struct {
	Source core.Entity
	Text   string
}

// InboundPrompt is an inbound line intercepted by a pending prompt.
type InboundPrompt struct {
	Source core.Entity
	Text   string
	Prompt component.Prompt
}

// Outbound is plain text for one recipient.
type Outbound struct {
	To   core.Entity
	Text string
}

// OutboundTile requests a map tile send, subject to per-connection
// dedup.
type OutboundTile struct {
	To    core.Entity
	MapID core.Entity
	Top   int
	Left  int
}

// OutboundChipSet delivers a map's palette.
type OutboundChipSet struct {
	To      core.Entity
	ChipSet component.ChipSet
}

// OutboundMove reports an entity position to a client.
type OutboundMove struct {
	To     core.Entity
	Source core.Entity
	MapID  core.Entity
	X, Y   int
}

// OutboundGas reports one gas cell.
type OutboundGas struct {
	To    core.Entity
	GasID core.Entity
	MapID core.Entity
	X, Y  int
	V     float64
}

// OutboundSkill reports one skill row.
type OutboundSkill struct {
	To      core.Entity
	Name    string
	Rank    int
	Tnl     float64
	Pending float64
}

// OutboundPrompt shows (or, with empty text, clears) a client prompt.
type OutboundPrompt struct {
	To   core.Entity
	Text string
}

// OutboundGlyph reports an entity's glyph.
type OutboundGlyph struct {
	To     core.Entity
	Source core.Entity
	Glyph  component.Glyph
}

// OutboundNoun reports an entity's display name.
type OutboundNoun struct {
	To     core.Entity
	Source core.Entity
	Text   string
}

// OutboundHealth reports health percentages.
type OutboundHealth struct {
	To        core.Entity
	Source    core.Entity
	Pct       float64
	StressPct float64
}

// OutboundStance reports a stance change.
type OutboundStance struct {
	To     core.Entity
	Source core.Entity
	Text   string
}

// OutboundCondition reports a condition change.
type OutboundCondition struct {
	To     core.Entity
	Source core.Entity
	Text   string
}

// OutboundDatetime reports the in-game clock.
type OutboundDatetime struct {
	To      core.Entity
	Seconds float64
}
