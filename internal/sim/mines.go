package sim

import "github.com/starbridge/bridgeserver/internal/world"

// phaseMines is tick phase 10: arm-delay countdown and detonation
// against any non-owner ship within MineTriggerRadius.
func (e *Engine) phaseMines(dt float32) {
	for id, m := range e.World.Mines {
		if m.ArmDelayRemaining > 0 {
			m.ArmDelayRemaining -= dt
			if m.ArmDelayRemaining < 0 {
				m.ArmDelayRemaining = 0
			}
			e.changes.RecordMutated(world.ObjectMine, id, nil)
			continue
		}

		kind, targetID, hit := e.findMineTarget(m)
		if !hit {
			continue
		}
		e.applyBeamDamage(kind, targetID, MineDamage, m.Position)
		delete(e.World.Mines, id)
		e.changes.RecordDestroyed(world.ObjectMine, id)
	}
}

func (e *Engine) findMineTarget(m *world.Mine) (world.ObjectType, int, bool) {
	for id, p := range e.World.PlayerShips {
		if id == m.OwnerID {
			continue
		}
		if world.Distance(m.Position, p.Position) <= MineTriggerRadius {
			return world.ObjectPlayerShip, id, true
		}
	}
	for id, n := range e.World.NPCShips {
		if id == m.OwnerID {
			continue
		}
		if world.Distance(m.Position, n.Position) <= MineTriggerRadius {
			return world.ObjectNPCShip, id, true
		}
	}
	return 0, 0, false
}
