package server

import "github.com/starbridge/bridgeserver/internal/world"

// handleScanTarget implements spec.md §4.7 scanTarget. The range check
// against SensorRange lives in sim.Engine.StartScan, since a scan can
// also be interrupted by later movement that the handler can't see.
func handleScanTarget(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleScience) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	s.Engine.StartScan(p.ID, paramInt(params, "targetId"))
}

// handleSelectTarget implements spec.md §4.7 selectTarget: a
// client-scoped UI selection with no simulation effect.
func handleSelectTarget(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleScience) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.SelectedTargetID = paramInt(params, "targetId")
}
