package server

import (
	"fmt"

	"github.com/starbridge/bridgeserver/internal/world"
)

func handleSetRedAlert(s *Server, c *Client, params map[string]any) {
	if !anyConsoleSelected(c) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.RedAlert = paramBool(params, "active")
}

func handleSetMainScreen(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleMainScreen) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	view := world.MainScreenView(paramInt(params, "view"))
	if view < world.ViewForward || view > world.ViewLongRange {
		return
	}
	p.MainScreen = view
}

// handleSendComms implements spec.md §4.7 sendComms: hailing another
// entity produces no simulation effect, only a gameMessage event for
// the hailing ship's own clients.
func handleSendComms(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleComms) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	targetID := paramInt(params, "targetId")
	if !s.World.EntityExists(targetID) {
		return
	}
	s.broadcastGameMessage(p.ShipIndex, c.ID, fmt.Sprintf("hailing contact %d", targetID))
}
