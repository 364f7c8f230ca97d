package server

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/starbridge/bridgeserver/internal/world"
)

func newTestServer() *Server {
	return NewServer(Config{TickRate: 20}, zerolog.Nop())
}

func newTestClient(s *Server, id int) *Client {
	c := newClient(id, world.TransportTCP, "test")
	s.Clients[id] = c
	return c
}

func TestConsoleOccupationIsUniquePerShip(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	b := newTestClient(s, 2)

	handleSetShip(s, a, map[string]any{"shipIndex": 0})
	handleSetConsole(s, a, map[string]any{"consoleType": int(world.ConsoleHelm)})

	handleSetShip(s, b, map[string]any{"shipIndex": 0})
	handleSetConsole(s, b, map[string]any{"consoleType": int(world.ConsoleHelm)})

	assert.Equal(t, a.ID, s.Consoles.occupant(0, world.ConsoleHelm))
	assert.NotEqual(t, b.ConsoleType, int(world.ConsoleHelm), "second client must not take an already-occupied console")
}

func TestConsoleReleasedOnReassignment(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)

	handleSetShip(s, a, map[string]any{"shipIndex": 0})
	handleSetConsole(s, a, map[string]any{"consoleType": int(world.ConsoleHelm)})
	assert.Equal(t, a.ID, s.Consoles.occupant(0, world.ConsoleHelm))

	handleSetConsole(s, a, map[string]any{"consoleType": int(world.ConsoleWeapons)})

	assert.Equal(t, 0, s.Consoles.occupant(0, world.ConsoleHelm), "prior console must be released")
	assert.Equal(t, a.ID, s.Consoles.occupant(0, world.ConsoleWeapons))
}

func TestConsoleReleasedOnDisconnect(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)

	handleSetShip(s, a, map[string]any{"shipIndex": 0})
	handleSetConsole(s, a, map[string]any{"consoleType": int(world.ConsoleHelm)})
	a.send = make(chan []byte, 4)

	s.handleUnregister(a)

	assert.Equal(t, 0, s.Consoles.occupant(0, world.ConsoleHelm))
}

func TestAtMostOneOccupantPerShipConsolePair(t *testing.T) {
	s := newTestServer()
	clients := make([]*Client, 5)
	for i := range clients {
		clients[i] = newTestClient(s, i+1)
		handleSetShip(s, clients[i], map[string]any{"shipIndex": 0})
		handleSetConsole(s, clients[i], map[string]any{"consoleType": int(world.ConsoleScience)})
	}

	occupant := s.Consoles.occupant(0, world.ConsoleScience)
	count := 0
	for _, c := range clients {
		if c.ConsoleType == int(world.ConsoleScience) {
			count++
			assert.Equal(t, occupant, c.ID)
		}
	}
	assert.Equal(t, 1, count, "exactly one client may hold a given ship+console pair")
}
