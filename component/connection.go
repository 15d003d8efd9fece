package component

import "github.com/dzaramelcone/ninjamagic/core"

// Peer is the transport handle behind a Connection. Send must never
// block the tick: implementations enqueue and report false when the
// peer's buffer is full or the peer is gone.
type Peer interface {
	Send(packet []byte) bool
	Close()
}

// Connection marks a player-controlled entity and carries its transport
// handle. SentTiles dedups tile sends for the connection's lifetime; the
// set dies with the component.
type Connection struct {
	Peer      Peer
	SentTiles map[TileKey]struct{}
}

// NewConnection wraps a peer with a fresh dedup set.
func NewConnection(peer Peer) Connection {
	return Connection{Peer: peer, SentTiles: make(map[TileKey]struct{})}
}

// Lag queues a source's inbound until the deadline passes.
type Lag struct {
	Until core.Looptime
}

// Prompt intercepts the source's next inbound line. The handler matrix
// is (matched, expired); unbound cases re-pulse the text as a normal
// inbound. End 0 means the prompt never expires.
type Prompt struct {
	Text        string
	OnOk        func(source core.Entity)
	OnErr       func(source core.Entity)
	OnExpiredOk func(source core.Entity)
	OnExpiredErr func(source core.Entity)
	End         core.Looptime
}

// OwnerID binds a player entity to its account for persistence.
type OwnerID struct {
	Value int64
}
