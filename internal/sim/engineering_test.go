package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starbridge/bridgeserver/internal/world"
)

func TestEngineeringZeroEnergyZeroesAllAllocationsAndNeverGoesNegative(t *testing.T) {
	e, w := newTestEngine()

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Energy = 0
	for i := range p.Systems {
		p.Systems[i].EnergyAllocation = 2.0
	}
	w.PlayerShips[p.ID] = p

	e.updateShipEngineering(p, 1.0/20)

	assert.Equal(t, float32(0), p.Energy)
	for i := range p.Systems {
		assert.Equal(t, float32(0), p.Systems[i].EnergyAllocation, "system %d should be zeroed when energy is exhausted", i)
	}
}

func TestEngineeringEnergyNeverGoesNegativeUnderHeavyDrain(t *testing.T) {
	e, w := newTestEngine()

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Energy = 1
	p.ShieldsActive = true
	p.Warp = 9
	for i := range p.Systems {
		p.Systems[i].EnergyAllocation = 3.0
	}
	w.PlayerShips[p.ID] = p

	e.updateShipEngineering(p, 1.0)

	assert.Equal(t, float32(0), p.Energy)
}

func TestEngineeringDamagedSystemContributesZeroEffectiveAllocation(t *testing.T) {
	p := world.NewPlayerShip(1000, 0)
	p.Systems[world.SystemBeams].EnergyAllocation = 3.0
	p.Systems[world.SystemBeams].Damage = 1.0

	assert.Equal(t, float32(0), effectiveAllocation(p, world.SystemBeams))
}

func TestEngineeringOverheatDamagesSystemAndCriticalHeatResetsAllocation(t *testing.T) {
	e, w := newTestEngine()

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Systems[world.SystemBeams].EnergyAllocation = 3.0
	p.Systems[world.SystemBeams].Heat = CriticalHeatThreshold
	w.PlayerShips[p.ID] = p

	e.updateShipEngineering(p, 1.0/20)

	assert.Equal(t, float32(0), p.Systems[world.SystemBeams].EnergyAllocation)
	assert.Equal(t, float32(0.8), p.Systems[world.SystemBeams].Heat)

	q := world.NewPlayerShip(w.NextID(), 1)
	q.Systems[world.SystemBeams].EnergyAllocation = 3.0
	q.Systems[world.SystemBeams].Coolant = 0
	q.Systems[world.SystemBeams].Heat = OverheatThreshold
	w.PlayerShips[q.ID] = q

	e.updateShipEngineering(q, 1.0/20)

	assert.Greater(t, q.Systems[world.SystemBeams].Damage, float32(0), "overheated system takes damage")
}

func TestEngineeringHeatNeverGoesNegative(t *testing.T) {
	e, w := newTestEngine()

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Systems[world.SystemBeams].EnergyAllocation = 0
	p.Systems[world.SystemBeams].Coolant = 8
	p.Systems[world.SystemBeams].Heat = 0
	w.PlayerShips[p.ID] = p

	e.updateShipEngineering(p, 10.0)

	assert.Equal(t, float32(0), p.Systems[world.SystemBeams].Heat)
}
