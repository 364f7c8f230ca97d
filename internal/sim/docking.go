package sim

import "github.com/starbridge/bridgeserver/internal/world"

// phaseDocking is tick phase 4: entering/leaving dock, and in-dock
// recharge/repair/restock while docked.
func (e *Engine) phaseDocking(dt float32) {
	for _, p := range e.World.PlayerShips {
		e.updateDocking(p, dt)
	}
}

func (e *Engine) updateDocking(p *world.PlayerShip, dt float32) {
	if !p.Docked {
		if !p.DockRequested {
			return
		}
		p.DockRequested = false
		if p.ShieldsActive || p.Impulse > DockImpulseThreshold {
			return
		}
		if base := e.nearestBaseWithin(p.Position, DockRange); base != nil {
			p.Docked = true
			p.DockedWith = base.ID
			p.DockRestockTimer = RestockInterval
			e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
		}
		return
	}

	// Raising shields or exceeding the impulse threshold forces undock.
	if p.ShieldsActive || p.Impulse > DockImpulseThreshold {
		p.Docked = false
		p.DockedWith = 0
		e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
		return
	}

	base := e.World.Bases[p.DockedWith]
	if base == nil {
		// Base destroyed out from under us; undock rather than error
		// (spec.md §4.5 failure semantics: clear the stale reference).
		p.Docked = false
		p.DockedWith = 0
		e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
		return
	}

	p.Energy += EnergyRechargeRate * dt
	if p.Energy > 1000 {
		p.Energy = 1000
	}
	p.ShieldsFore += ShieldRepairRate * dt
	if p.ShieldsFore > p.ShieldsForeMax {
		p.ShieldsFore = p.ShieldsForeMax
	}
	p.ShieldsAft += ShieldRepairRate * dt
	if p.ShieldsAft > p.ShieldsAftMax {
		p.ShieldsAft = p.ShieldsAftMax
	}
	for i := range p.Systems {
		if p.Systems[i].Damage > 0 {
			p.Systems[i].Damage -= RepairRate * dt
			if p.Systems[i].Damage < 0 {
				p.Systems[i].Damage = 0
			}
		}
	}

	p.DockRestockTimer -= dt
	if p.DockRestockTimer <= 0 {
		p.DockRestockTimer += RestockInterval
		restockLowestOrdnance(p, base)
	}

	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}

// restockLowestOrdnance moves one unit of the ship's lowest-stocked
// ordnance type from the base's inventory to the ship (spec.md §4.5
// phase 4). If the base has none of that type, nothing is restocked.
func restockLowestOrdnance(p *world.PlayerShip, base *world.Base) {
	lowest := 0
	for t := 1; t < world.NumOrdnanceTypes; t++ {
		if p.OrdnanceStock[t] < p.OrdnanceStock[lowest] {
			lowest = t
		}
	}
	if base.OrdnanceStock[lowest] <= 0 {
		return
	}
	base.OrdnanceStock[lowest]--
	p.OrdnanceStock[lowest]++
}

func (e *Engine) nearestBaseWithin(pos world.Vec3, maxDist float32) *world.Base {
	var best *world.Base
	bestDist := maxDist
	for _, b := range e.World.Bases {
		d := world.Distance(pos, b.Position)
		if d <= bestDist {
			best = b
			bestDist = d
		}
	}
	return best
}
