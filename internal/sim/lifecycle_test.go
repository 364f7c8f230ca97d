package sim

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/starbridge/bridgeserver/internal/world"
)

func TestTickIsNoOpWhenStatusNotInProgress(t *testing.T) {
	w := world.New()
	e := NewEngine(w, zerolog.Nop(), 1)
	e.Status = StatusInProgress

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Energy = 500
	w.PlayerShips[p.ID] = p

	e.Status = StatusWon

	changes := e.Tick(1.0 / 20)

	assert.True(t, changes.IsEmpty(), "no tick should mutate the world once the game has ended")
	assert.Equal(t, float32(500), p.Energy)
}

func TestTickRunsPhasesWhileInProgress(t *testing.T) {
	w := world.New()
	e := NewEngine(w, zerolog.Nop(), 1)
	e.Status = StatusInProgress

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Systems[world.SystemBeams].EnergyAllocation = 1.0
	w.PlayerShips[p.ID] = p

	startEnergy := p.Energy
	e.Tick(1.0 / 20)

	assert.Less(t, p.Energy, startEnergy, "engineering drain should have run")
}

func TestChangesReturnsLastTickResultWithoutAdvancing(t *testing.T) {
	w := world.New()
	e := NewEngine(w, zerolog.Nop(), 1)
	e.Status = StatusInProgress

	p := world.NewPlayerShip(w.NextID(), 0)
	w.PlayerShips[p.ID] = p

	first := e.Tick(1.0 / 20)
	again := e.Changes()

	assert.Equal(t, first, again)
}
