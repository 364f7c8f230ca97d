package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starbridge/bridgeserver/internal/sim"
	"github.com/starbridge/bridgeserver/internal/world"
)

func seatedEngineer(s *Server) *Client {
	c := newTestClient(s, 1)
	readyClient(s, c, 0, world.ConsoleEngineering)
	return c
}

func TestSetEnergyClampsToSystemRange(t *testing.T) {
	s := newTestServer()
	c := seatedEngineer(s)

	handleSetEnergy(s, c, map[string]any{"systemIndex": int(world.SystemBeams), "value": 10.0})

	p := s.shipFor(c)
	assert.LessOrEqual(t, p.Systems[world.SystemBeams].EnergyAllocation, float32(3))
}

func TestSetEnergyTotalAcrossSystemsNeverExceedsBudget(t *testing.T) {
	s := newTestServer()
	c := seatedEngineer(s)
	p := s.shipFor(c)

	for i := 0; i < world.NumSystems; i++ {
		handleSetEnergy(s, c, map[string]any{"systemIndex": i, "value": 3.0})
	}

	var total float32
	for _, sys := range p.Systems {
		total += sys.EnergyAllocation
	}
	assert.LessOrEqual(t, total, float32(sim.EnergyBudget)+0.001)
}

func TestSetCoolantTotalNeverExceedsPool(t *testing.T) {
	s := newTestServer()
	c := seatedEngineer(s)
	p := s.shipFor(c)

	for i := 0; i < world.NumSystems; i++ {
		handleSetCoolant(s, c, map[string]any{"systemIndex": i, "units": sim.CoolantPool})
	}

	total := 0
	for _, sys := range p.Systems {
		total += sys.Coolant
	}
	assert.LessOrEqual(t, total, sim.CoolantPool)
}

func TestSetCoolantNegativeUnitsClampToZero(t *testing.T) {
	s := newTestServer()
	c := seatedEngineer(s)
	p := s.shipFor(c)

	handleSetCoolant(s, c, map[string]any{"systemIndex": int(world.SystemBeams), "units": -5})

	assert.Equal(t, 0, p.Systems[world.SystemBeams].Coolant)
}

func TestEngineeringCommandsRequireEngineeringConsole(t *testing.T) {
	s := newTestServer()
	c := newTestClient(s, 1)
	readyClient(s, c, 0, world.ConsoleHelm)
	p := s.shipFor(c)
	before := p.Systems[world.SystemBeams].EnergyAllocation

	handleSetEnergy(s, c, map[string]any{"systemIndex": int(world.SystemBeams), "value": 3.0})

	assert.Equal(t, before, p.Systems[world.SystemBeams].EnergyAllocation)
}
