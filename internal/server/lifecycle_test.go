package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starbridge/bridgeserver/internal/sim"
	"github.com/starbridge/bridgeserver/internal/world"
)

func readyClient(s *Server, c *Client, shipIndex int, console world.ConsoleType) {
	handleSetShip(s, c, map[string]any{"shipIndex": shipIndex})
	handleSetConsole(s, c, map[string]any{"consoleType": int(console)})
}

func TestFirstReadyStartsTheGame(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	readyClient(s, a, 0, world.ConsoleHelm)

	assert.False(t, s.started)
	assert.Equal(t, sim.StatusInProgress, s.Engine.Status, "engine status starts at its zero value regardless")

	handleReady(s, a, nil)

	assert.True(t, s.started)
	assert.Equal(t, world.StateInGame, a.State)
	assert.Equal(t, sim.StatusInProgress, s.Engine.Status)
}

func TestReadyBeforeGameStartDoesNotAdvanceSimulation(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	readyClient(s, a, 0, world.ConsoleHelm)

	assert.False(t, s.started, "no tick should run between ready and gameStart")
}

func TestSubsequentReadyAfterStartGoesStraightToInGame(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	b := newTestClient(s, 2)
	readyClient(s, a, 0, world.ConsoleHelm)
	readyClient(s, b, 1, world.ConsoleHelm)

	handleReady(s, a, nil)
	assert.True(t, s.started)

	handleReady(s, b, nil)
	assert.Equal(t, world.StateInGame, b.State)
}

func TestReadyClientsPromotedWhenGameStarts(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	b := newTestClient(s, 2)
	readyClient(s, a, 0, world.ConsoleHelm)
	readyClient(s, b, 1, world.ConsoleHelm)

	handleReady(s, b, nil) // b readies first but hasn't started the game yet
	assert.Equal(t, world.StateReady, b.State)

	handleReady(s, a, nil) // a's ready flips the whole session to InGame
	assert.True(t, s.started)
	assert.Equal(t, world.StateInGame, a.State)
	assert.Equal(t, world.StateInGame, b.State, "already-ready clients are promoted alongside the starter")
}

func TestDisconnectingOnlyReadyClientBeforeGameStartReturnsToPreGameState(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	readyClient(s, a, 0, world.ConsoleHelm)
	handleReady(s, a, nil)
	s.started = false // undo: simulate a would-be quorum policy where nobody actually started yet
	a.State = world.StateReady
	a.Ready = true

	s.handleUnregister(a)

	assert.False(t, s.started)
	_, stillPresent := s.Clients[a.ID]
	assert.False(t, stillPresent)
}

func TestOnTickIsNoOpBeforeGameStarted(t *testing.T) {
	s := newTestServer()
	startEnergy := s.World.PlayerShips // no player ships yet, nothing to mutate
	_ = startEnergy

	s.onTick()

	assert.Equal(t, 0, s.tickCount, "onTick must not advance while the session hasn't started")
}

func TestOnTickAdvancesOnceStarted(t *testing.T) {
	s := newTestServer()
	a := newTestClient(s, 1)
	readyClient(s, a, 0, world.ConsoleHelm)
	handleReady(s, a, nil)

	s.onTick()

	assert.Equal(t, 1, s.tickCount)
}
