package sim

import "github.com/starbridge/bridgeserver/internal/world"

// phaseNebula is tick phase 3: set inNebula flags for every ship.
// The shield-drain multiplier (ShieldNebulaDrainMult in engineering.go)
// keys off this flag, applied next tick as spec.md §4.5 phase 3 notes.
// Scan range checks in scans.go use the full SensorRange whether or not
// InNebula is set; SensorRangeHalvingInNebula is not applied anywhere.
func (e *Engine) phaseNebula(dt float32) {
	for _, p := range e.World.PlayerShips {
		wasIn := p.InNebula
		p.InNebula = e.withinAnyNebula(p.Position)
		if wasIn != p.InNebula {
			e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
		}
	}
	for _, n := range e.World.NPCShips {
		wasIn := n.InNebula
		n.InNebula = e.withinAnyNebula(n.Position)
		if wasIn != n.InNebula {
			e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)
		}
	}
}

func (e *Engine) withinAnyNebula(pos world.Vec3) bool {
	for _, n := range e.World.Nebulae {
		if world.Distance(pos, n.Position) <= n.Radius {
			return true
		}
	}
	return false
}
