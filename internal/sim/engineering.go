package sim

import "github.com/starbridge/bridgeserver/internal/world"

// phaseEngineering is tick phase 1 (spec.md §4.5): per-system energy
// drain, heat, overheat damage, and shield/warp surcharges.
func (e *Engine) phaseEngineering(dt float32) {
	for _, p := range e.World.PlayerShips {
		e.updateShipEngineering(p, dt)
	}
}

func (e *Engine) updateShipEngineering(p *world.PlayerShip, dt float32) {
	if p.Energy <= 0 {
		p.Energy = 0
		for i := range p.Systems {
			p.Systems[i].EnergyAllocation = 0
		}
	}

	var drain float32 = BaseEnergyDrainPerTick * dt

	for i := range p.Systems {
		sys := &p.Systems[i]
		alloc := sys.EnergyAllocation
		if sys.Damage >= 1.0 {
			alloc = 0
		}

		drain += alloc * SystemDrainPerAlloc * dt

		excess := alloc - 1.0
		if excess < 0 {
			excess = 0
		}
		heatDelta := excess*HeatRisePerAllocExcess*dt - float32(sys.Coolant)*CoolantEfficiency*dt
		sys.Heat += heatDelta
		if sys.Heat < 0 {
			sys.Heat = 0
		}

		if sys.Heat >= CriticalHeatThreshold {
			sys.EnergyAllocation = 0
			sys.Heat = 0.8
		} else if sys.Heat >= OverheatThreshold {
			sys.Damage += DamageRatePerSecond * dt
			if sys.Damage > 1.0 {
				sys.Damage = 1.0
			}
		}
	}

	if p.ShieldsActive {
		mult := float32(1.0)
		if p.InNebula {
			mult = ShieldNebulaDrainMult
		}
		drain += ShieldActiveDrainPerSec * mult * dt
	}

	if p.Warp > 0 {
		drain += float32(p.Warp) * WarpDrainPerFactorPerS * dt
	}

	p.Energy -= drain
	if p.Energy < 0 {
		p.Energy = 0
	}

	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}

// effectiveAllocation returns a system's allocation for combat/movement
// computations, applying the damage-offline rule (spec.md §4.5:
// "systems with damage >= 1.0 are offline").
func effectiveAllocation(p *world.PlayerShip, idx world.SystemIndex) float32 {
	return p.Systems[idx].EffectiveAllocation()
}
