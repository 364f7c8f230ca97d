package sim

import "github.com/starbridge/bridgeserver/internal/world"

// phaseVictory is tick phase 14: loss if every friendly base has been
// destroyed, win if every enemy NPC is destroyed or surrendered (after
// a grace period to let the final broadcast land). Either condition
// transitions Status and the engine stops mutating state on
// subsequent ticks (spec.md §4.5 phase 14).
func (e *Engine) phaseVictory(dt float32) {
	if len(e.World.Bases) == 0 {
		e.Status = StatusLost
		return
	}

	enemiesRemaining := false
	for _, n := range e.World.NPCShips {
		if n.Faction == world.FactionEnemy && !n.Surrendered {
			enemiesRemaining = true
			break
		}
	}

	if !enemiesRemaining {
		if !e.lastEnemyFellAt {
			e.lastEnemyFellAt = true
			e.victoryGraceRemaining = VictoryGraceSeconds
		}
		e.victoryGraceRemaining -= dt
		if e.victoryGraceRemaining <= 0 {
			e.Status = StatusWon
		}
		return
	}

	e.lastEnemyFellAt = false
}
