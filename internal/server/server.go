package server

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/starbridge/bridgeserver/internal/sim"
	"github.com/starbridge/bridgeserver/internal/world"
)

// inboundCommand is a parsed command waiting to be applied on the
// event-loop goroutine. Per-connection readers decode bytes into this
// shape and hand it off; only Server.Run ever touches world state.
type inboundCommand struct {
	clientID int
	subtype  uint32
	params   map[string]any
}

// Server is the single authoritative event loop over the world, the
// client table, and the console-occupation table (spec.md §5: "single
// authoritative event loop goroutine owns world, change set, client
// table, console table"). Grounded on the teacher's Server/Run in
// websocket.go, with the teacher's mutex-guarded multi-goroutine
// gameLoop replaced by folding the tick into the same select as
// register/unregister/commands, so nothing here needs a lock.
type Server struct {
	World    *world.World
	Engine   *sim.Engine
	Consoles *consoleTable
	Clients  map[int]*Client

	register   chan *Client
	unregister chan *Client
	commands   chan inboundCommand

	tickInterval      time.Duration
	broadcastDivider  int
	heartbeatInterval time.Duration
	clientTimeout     time.Duration

	tickCount    int
	started      bool
	gameOverSent bool

	// nextClientID is allocated from connection-accepting goroutines,
	// outside the event loop, so it's the one piece of server state
	// that needs atomic rather than single-goroutine ownership.
	nextClientID atomic.Int64

	log zerolog.Logger
}

// allocateClientID hands out a fresh client id. Safe to call from any
// goroutine (spec.md §5 only requires the world, change set, client
// table, and console table to be single-goroutine-owned).
func (s *Server) allocateClientID() int {
	return int(s.nextClientID.Add(1))
}

// Config holds the process-surface-exposed knobs (spec.md §6.3).
type Config struct {
	TickRate      int
	MaxPacketSize int
}

// NewServer builds a Server with a freshly bootstrapped scenario.
func NewServer(cfg Config, log zerolog.Logger) *Server {
	w := world.New()
	bootstrapScenario(w)

	tickHz := cfg.TickRate
	if tickHz <= 0 {
		tickHz = world.TickRate
	}

	return &Server{
		World:             w,
		Engine:            sim.NewEngine(w, log, 1),
		Consoles:          newConsoleTable(),
		Clients:           make(map[int]*Client),
		register:          make(chan *Client),
		unregister:        make(chan *Client),
		commands:          make(chan inboundCommand, 256),
		tickInterval:      time.Second / time.Duration(tickHz),
		broadcastDivider:  world.BroadcastDivider,
		heartbeatInterval: world.HeartbeatInterval,
		clientTimeout:     world.ClientTimeout,
		log:               log,
	}
}

// Run is the server's single event-loop goroutine. It never returns
// until stop is closed or signaled.
func (s *Server) Run(stop <-chan struct{}) {
	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()
	heartbeat := time.NewTicker(s.heartbeatInterval)
	defer heartbeat.Stop()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("simulation invariant violated, terminating")
			panic(r)
		}
	}()

	for {
		select {
		case <-stop:
			s.closeAll()
			return

		case c := <-s.register:
			s.handleRegister(c)

		case c := <-s.unregister:
			s.handleUnregister(c)

		case cmd := <-s.commands:
			c, ok := s.Clients[cmd.clientID]
			if !ok {
				continue
			}
			c.LastHeartbeat = time.Now()
			s.dispatch(c, cmd.subtype, cmd.params)

		case <-tick.C:
			s.onTick()

		case <-heartbeat.C:
			s.onHeartbeat()
		}
	}
}

func (s *Server) handleRegister(c *Client) {
	s.Clients[c.ID] = c
	s.log.Info().Int("client", c.ID).Str("remote", c.RemoteAddress).Msg("client connected")
}

func (s *Server) handleUnregister(c *Client) {
	if _, ok := s.Clients[c.ID]; !ok {
		return
	}
	delete(s.Clients, c.ID)
	s.Consoles.releaseClient(c.ID)
	close(c.send)
	c.State = world.StateClosed
	if c.ShipIndex != noShip {
		s.broadcastConsoleStatus(c.ShipIndex)
	}
	s.log.Info().Int("client", c.ID).Msg("client disconnected")
}

func (s *Server) closeAll() {
	for _, c := range s.Clients {
		close(c.send)
	}
}

func (s *Server) onTick() {
	if !s.started {
		return
	}
	changes := s.Engine.Tick(float32(s.tickInterval.Seconds()))
	s.tickCount++
	if s.Engine.Status != sim.StatusInProgress && !s.gameOverSent {
		s.gameOverSent = true
		s.broadcastGameOver()
	}
	if s.tickCount%s.broadcastDivider != 0 {
		return
	}
	if changes.IsEmpty() {
		return
	}
	s.broadcastChanges(changes)
}

func (s *Server) onHeartbeat() {
	now := time.Now()
	s.broadcastHeartbeat()
	for id, c := range s.Clients {
		if now.Sub(c.LastHeartbeat) > s.clientTimeout {
			s.log.Info().Int("client", id).Msg("client heartbeat timeout")
			c.closeConn()
			delete(s.Clients, id)
			s.Consoles.releaseClient(id)
		}
	}
}
