package network

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/signal"
)

// SpawnFunc builds a player entity for an authenticated owner. It runs
// on the tick thread via the bus ingress.
type SpawnFunc func(b *signal.Bus, ownerID int64) core.Entity

// Server hosts the websocket upgrade and the minimal auth surface the
// core needs. Real OAuth lives outside; sessions here are an in-memory
// token map fed by the dev login.
type Server struct {
	bus   *signal.Bus
	spawn SpawnFunc
	log   *logrus.Logger

	allowLocalAuth bool

	mu       sync.Mutex
	sessions map[string]int64
	nextUser int64

	upgrader websocket.Upgrader
}

// NewServer wires the HTTP surface.
func NewServer(bus *signal.Bus, spawn SpawnFunc, log *logrus.Logger, allowLocalAuth bool) *Server {
	return &Server{
		bus:            bus,
		spawn:          spawn,
		log:            log,
		allowLocalAuth: allowLocalAuth,
		sessions:       make(map[string]int64),
		nextUser:       1,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Router builds the route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWS)
	r.Handle("/metrics", promhttp.Handler())
	if s.allowLocalAuth {
		r.Post("/auth/dev", s.handleDevLogin)
	}
	return r
}

// handleDevLogin issues a session token; development only.
func (s *Server) handleDevLogin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	token := uuid.NewString()
	s.sessions[token] = s.nextUser
	s.nextUser++
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(token))
}

// RegisterSession binds a token to an owner; the external OAuth
// callback calls this after it has authenticated the owner.
func (s *Server) RegisterSession(token string, ownerID int64) {
	s.mu.Lock()
	s.sessions[token] = ownerID
	s.mu.Unlock()
}

func (s *Server) ownerFor(r *http.Request) (int64, bool) {
	token := r.URL.Query().Get("session")
	if token == "" {
		if c, err := r.Cookie("session"); err == nil {
			token = c.Value
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.sessions[token]
	return owner, ok
}

// handleWS authenticates, upgrades, and hands the socket to its pumps.
// A request without a known session token is refused with 401 before
// any upgrade.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.ownerFor(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	// Entity creation and the Connected pulse both happen on the tick
	// thread; the pumps start once the entity exists.
	s.bus.Post(func(b *signal.Bus) {
		entity := s.spawn(b, owner)
		client := NewClient(entity, conn, s.bus, s.log)
		b.Connected.Pulse(signal.Connected{Source: entity, Peer: client})
		go client.ReadPump()
		go client.WritePump()
	})
}
