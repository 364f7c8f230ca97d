package server

import (
	"github.com/starbridge/bridgeserver/internal/sim"
	"github.com/starbridge/bridgeserver/internal/world"
)

// handleSetEnergy implements spec.md §4.7 setEnergy: the requested
// system's allocation is clamped to 0..3, then clamped further so the
// ship's total allocation across all systems never exceeds
// sim.EnergyBudget (spec.md invariant, §8 "Engineering invariants").
func handleSetEnergy(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleEngineering) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	idx := paramInt(params, "systemIndex")
	if idx < 0 || idx >= world.NumSystems {
		return
	}

	value := clampF32(paramFloat(params, "value"), 0, 3)

	var othersTotal float32
	for i := range p.Systems {
		if i == idx {
			continue
		}
		othersTotal += p.Systems[i].EnergyAllocation
	}
	if room := float32(sim.EnergyBudget) - othersTotal; value > room {
		value = room
	}
	if value < 0 {
		value = 0
	}
	p.Systems[idx].EnergyAllocation = value
}

// handleSetCoolant implements spec.md §4.7 setCoolant: the requested
// system's coolant units are clamped so the ship's total assigned
// coolant never exceeds sim.CoolantPool.
func handleSetCoolant(s *Server, c *Client, params map[string]any) {
	if !hasConsole(c, world.ConsoleEngineering) {
		return
	}
	p := s.shipFor(c)
	if p == nil {
		return
	}
	idx := paramInt(params, "systemIndex")
	if idx < 0 || idx >= world.NumSystems {
		return
	}

	units := paramInt(params, "units")
	if units < 0 {
		units = 0
	}

	othersTotal := 0
	for i := range p.Systems {
		if i == idx {
			continue
		}
		othersTotal += p.Systems[i].Coolant
	}
	if room := sim.CoolantPool - othersTotal; units > room {
		units = room
	}
	if units < 0 {
		units = 0
	}
	p.Systems[idx].Coolant = units
}
