package server

import "github.com/starbridge/bridgeserver/internal/world"

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func handleSetImpulse(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleHelm) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.Impulse = clampF32(paramFloat(params, "value"), -1, 1)
}

func handleSetWarp(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleHelm) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	v := paramInt(params, "value")
	if v < 0 {
		v = 0
	}
	if v > 9 {
		v = 9
	}
	p.Warp = v
}

func handleSetSteering(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleHelm) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.Rudder = clampF32(paramFloat(params, "value"), -1, 1)
}

func handleClimbDive(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleHelm) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.Pitch = clampF32(paramFloat(params, "value"), -1, 1)
}

func handleToggleReverse(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleHelm) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.Reverse = !p.Reverse
}

// handleRequestDock implements spec.md §4.7 requestDock: the range,
// impulse, and shields preconditions are re-checked by the simulation
// engine on the next tick (sim.phaseDocking), since they can go stale
// between the command arriving and the tick consuming it. The handler
// only records the request.
func handleRequestDock(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleHelm) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.DockRequested = true
}
