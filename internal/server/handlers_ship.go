package server

import (
	"github.com/starbridge/bridgeserver/internal/sim"
	"github.com/starbridge/bridgeserver/internal/world"
)

// shipFor resolves the player ship a client is seated on, or nil if it
// hasn't picked one yet.
func (s *Server) shipFor(c *Client) *world.PlayerShip {
	if c.ShipIndex == noShip {
		return nil
	}
	return s.World.PlayerShipByIndex(c.ShipIndex)
}

func hasConsole(c *Client, required world.ConsoleType) bool {
	return c.ConsoleType == int(required)
}

func anyConsoleSelected(c *Client) bool {
	return c.ConsoleType != noConsole
}

// handleSetShip implements spec.md §4.7 setShip: permitted in any
// pre-InGame state, releases the client's prior console occupation,
// and lazily spawns the player ship for that slot if absent.
func handleSetShip(s *Server, c *Client, params map[string]any) {
	if c.State >= world.StateInGame {
		return
	}
	shipIndex := paramInt(params, "shipIndex")
	if shipIndex < 0 || shipIndex >= len(world.ShipIndexNames) {
		return
	}

	s.Consoles.releaseClient(c.ID)
	c.ShipIndex = shipIndex
	c.ConsoleType = noConsole
	c.State = world.StateShipSelected
	if name, ok := params["playerName"].(string); ok && name != "" {
		c.PlayerName = name
	}

	if s.World.PlayerShipByIndex(shipIndex) == nil {
		id := s.World.NextID()
		s.World.PlayerShips[id] = world.NewPlayerShip(id, shipIndex)
	}
	s.broadcastConsoleStatus(shipIndex)
}

// handleSetConsole implements spec.md §4.7 setConsole: requires
// ShipSelected+, fails silently if the console is already occupied on
// this ship, and releases the client's prior console on success.
func handleSetConsole(s *Server, c *Client, params map[string]any) {
	if c.State < world.StateShipSelected || c.ShipIndex == noShip {
		return
	}
	console := world.ConsoleType(paramInt(params, "consoleType"))
	if int(console) < 0 || int(console) >= world.NumConsoleTypes {
		return
	}
	if s.Consoles.occupant(c.ShipIndex, console) != 0 {
		return
	}

	s.Consoles.releaseClient(c.ID)
	s.Consoles.occupy(c.ShipIndex, console, c.ID)
	c.ConsoleType = int(console)
	c.State = world.StateConsoleSelected
	s.broadcastConsoleStatus(c.ShipIndex)
}

// handleReady implements spec.md §4.7 ready and the "first ready
// starts the game" policy documented as the resolution of the
// game-start-quorum open question (spec.md §9 Open Questions).
func handleReady(s *Server, c *Client, params map[string]any) {
	if c.State < world.StateConsoleSelected {
		return
	}
	c.Ready = true
	c.State = world.StateReady

	if s.started {
		c.State = world.StateInGame
		return
	}
	s.started = true
	s.Engine.Status = sim.StatusInProgress
	for _, other := range s.Clients {
		if other.State == world.StateReady {
			other.State = world.StateInGame
		}
	}
	s.broadcastGameStart()
}

// handleHeartbeat implements spec.md §4.7 heartbeat: the explicit TCP
// heartbeat subtype carries no effect beyond the liveness bookkeeping
// Server.Run already does for every inbound command, TCP or WS alike
// (spec.md §4.6: "for WS clients, any inbound message counts").
func handleHeartbeat(s *Server, c *Client, params map[string]any) {}
