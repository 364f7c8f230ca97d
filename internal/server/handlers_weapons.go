package server

import "github.com/starbridge/bridgeserver/internal/world"

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func handleSetTarget(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
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
	p.TargetID = targetID
}

func handleFireTube(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	_ = s.Engine.FireTube(p.ID, paramInt(params, "tubeIndex"))
}

func handleLoadTube(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	tubeIndex := paramInt(params, "tubeIndex")
	ordType := world.OrdnanceType(paramInt(params, "ordnanceType"))
	s.Engine.LoadTube(p.ID, tubeIndex, ordType)
}

func handleUnloadTube(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	s.Engine.UnloadTube(p.ID, paramInt(params, "tubeIndex"))
}

func handleToggleAutoBeams(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.AutoBeams = !p.AutoBeams
}

// handleToggleShields implements spec.md §4.7 toggleShields: flips
// shieldsActive. Forcing an undock when raised to true is the
// simulation engine's responsibility (sim.phaseDocking already drops
// dock on ShieldsActive), not this handler's.
func handleToggleShields(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.ShieldsActive = !p.ShieldsActive
}

func handleSetBeamFrequency(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleWeapons) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	p.BeamFrequency = clampInt(paramInt(params, "value"), 0, world.NumBeamFrequencies-1)
}
