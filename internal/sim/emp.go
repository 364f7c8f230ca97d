package sim

import "github.com/starbridge/bridgeserver/internal/world"

// phaseEMP is tick phase 11: count down EMP disable timers, restoring
// normal NPC behavior once they expire (spec.md §4.5 phase 11).
func (e *Engine) phaseEMP(dt float32) {
	for _, n := range e.World.NPCShips {
		if n.EmpDisableUntil <= 0 {
			continue
		}
		n.EmpDisableUntil -= dt
		if n.EmpDisableUntil < 0 {
			n.EmpDisableUntil = 0
		}
		e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)
	}
}
