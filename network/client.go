package network

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/signal"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	// Outbound packet buffer; a full buffer drops the packet for this
	// client only.
	sendQueueSize = 256
)

// Client is one websocket connection's pumps. It implements
// component.Peer: Send enqueues without blocking the tick.
type Client struct {
	entity core.Entity
	conn   *websocket.Conn
	bus    *signal.Bus
	log    *logrus.Logger

	send chan []byte
	done chan struct{}
}

// NewClient wraps an upgraded connection bound to a player entity.
func NewClient(entity core.Entity, conn *websocket.Conn, bus *signal.Bus, log *logrus.Logger) *Client {
	return &Client{
		entity: entity,
		conn:   conn,
		bus:    bus,
		log:    log,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}

// Send hands a packet to the writer. Never blocks; reports false when
// the client's buffer is full or the client is gone.
func (c *Client) Send(packet []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- packet:
		return true
	default:
		return false
	}
}

// Close tears the connection down.
func (c *Client) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	c.conn.Close()
}

// ReadPump converts inbound frames into signals posted through the bus
// ingress. Runs on its own goroutine; exits on transport close, posting
// Disconnected.
func (c *Client) ReadPump() {
	defer func() {
		entity := c.entity
		c.bus.Post(func(b *signal.Bus) {
			b.Disconnected.Pulse(signal.Disconnected{Source: entity})
		})
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Debug("read pump closed")
			}
			return
		}
		text := string(message)
		entity := c.entity
		c.bus.Post(func(b *signal.Bus) {
			b.Inbound.Pulse(signal.Inbound{Source: entity, Text: text})
		})
	}
}

// WritePump drains the send queue onto the wire. A send failure closes
// only this client; the tick never notices.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case packet := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, packet); err != nil {
				c.log.WithError(err).Debug("write failed; dropping client")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
