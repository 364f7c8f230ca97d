package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starbridge/bridgeserver/internal/world"
)

func TestDockingRequestSucceedsWithinRangeAndClearsRequestFlag(t *testing.T) {
	e, w := newTestEngine()

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 0, Y: 0, Z: 0})
	w.Bases[base.ID] = base

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Position = world.Vec3{X: DockRange / 2, Y: 0, Z: 0}
	p.DockRequested = true
	w.PlayerShips[p.ID] = p

	e.updateDocking(p, 1.0/20)

	require.True(t, p.Docked)
	assert.Equal(t, base.ID, p.DockedWith)
	assert.False(t, p.DockRequested)
}

func TestDockingRepeatedRequestWhileDockedIsNoOp(t *testing.T) {
	e, w := newTestEngine()

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 0, Y: 0, Z: 0})
	w.Bases[base.ID] = base

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Position = world.Vec3{X: DockRange / 2, Y: 0, Z: 0}
	p.DockRequested = true
	p.Energy = 500
	w.PlayerShips[p.ID] = p

	e.updateDocking(p, 1.0/20)
	require.True(t, p.Docked)
	firstBase := p.DockedWith

	// Repeated requestDock calls while already docked must not compound
	// any rate (restock/recharge keeps accruing once, not once per
	// redundant request).
	p.DockRequested = true
	p.DockRequested = true
	before := p.Energy
	e.updateDocking(p, 1.0/20)

	assert.Equal(t, firstBase, p.DockedWith)
	assert.Greater(t, p.Energy, before, "energy still recharges normally")
}

func TestDockingRequestIgnoredWithShieldsActive(t *testing.T) {
	e, w := newTestEngine()

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 0, Y: 0, Z: 0})
	w.Bases[base.ID] = base

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Position = world.Vec3{X: DockRange / 2, Y: 0, Z: 0}
	p.ShieldsActive = true
	p.DockRequested = true
	w.PlayerShips[p.ID] = p

	e.updateDocking(p, 1.0/20)

	assert.False(t, p.Docked)
	assert.False(t, p.DockRequested)
}

func TestDockingRequestIgnoredOutOfRange(t *testing.T) {
	e, w := newTestEngine()

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 0, Y: 0, Z: 0})
	w.Bases[base.ID] = base

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Position = world.Vec3{X: DockRange * 2, Y: 0, Z: 0}
	p.DockRequested = true
	w.PlayerShips[p.ID] = p

	e.updateDocking(p, 1.0/20)

	assert.False(t, p.Docked)
}

func TestDockingRaisingShieldsForcesUndock(t *testing.T) {
	e, w := newTestEngine()

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 0, Y: 0, Z: 0})
	w.Bases[base.ID] = base

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Docked = true
	p.DockedWith = base.ID
	w.PlayerShips[p.ID] = p

	p.ShieldsActive = true
	e.updateDocking(p, 1.0/20)

	assert.False(t, p.Docked)
	assert.Equal(t, 0, p.DockedWith)
}

func TestDockingStaleBaseReferenceClearsRatherThanErrors(t *testing.T) {
	e, w := newTestEngine()

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Docked = true
	p.DockedWith = 9999 // no such base
	w.PlayerShips[p.ID] = p

	e.updateDocking(p, 1.0/20)

	assert.False(t, p.Docked)
	assert.Equal(t, 0, p.DockedWith)
}

func TestDockingRestocksLowestOrdnanceFromBaseInventory(t *testing.T) {
	e, w := newTestEngine()

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 0, Y: 0, Z: 0})
	w.Bases[base.ID] = base

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Docked = true
	p.DockedWith = base.ID
	p.OrdnanceStock[world.OrdnanceHoming] = 0
	p.DockRestockTimer = 0.001
	w.PlayerShips[p.ID] = p

	baseStockBefore := base.OrdnanceStock[world.OrdnanceHoming]
	e.updateDocking(p, 1.0/20)

	assert.Equal(t, 1, p.OrdnanceStock[world.OrdnanceHoming])
	assert.Equal(t, baseStockBefore-1, base.OrdnanceStock[world.OrdnanceHoming])
}
