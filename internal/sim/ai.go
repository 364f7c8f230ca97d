package sim

import (
	"math"

	"github.com/starbridge/bridgeserver/internal/world"
)

// phaseAI is tick phase 5: enemy pursuit/attack-range holding and
// neutral flee/wander behavior. EMP-disabled NPCs neither move nor
// fire (checked here and again in phase 7).
func (e *Engine) phaseAI(dt float32) {
	for _, n := range e.World.NPCShips {
		if n.EmpDisableUntil > 0 || n.Surrendered {
			continue
		}
		switch n.Faction {
		case world.FactionEnemy:
			e.updateEnemyAI(n, dt)
		case world.FactionNeutral:
			e.updateNeutralAI(n, dt)
		}
	}
}

func (e *Engine) updateEnemyAI(n *world.NPCShip, dt float32) {
	target := e.nearestPlayerShip(n.Position)
	if target == nil {
		n.AITarget = 0
		return
	}
	n.AITarget = target.ID

	dist := world.Distance(n.Position, target.Position)
	if dist > AttackRange {
		n.Heading = world.HeadingTo(n.Position, target.Position)
		n.Velocity = CruiseSpeed
	} else {
		n.Heading = world.HeadingTo(n.Position, target.Position)
		n.Velocity = 0
	}
	e.integrateNPC(n, dt)
}

func (e *Engine) updateNeutralAI(n *world.NPCShip, dt float32) {
	if enemy := e.nearestEnemyWithin(n.Position, FleeRange); enemy != nil {
		away := world.HeadingTo(enemy.Position, n.Position)
		n.Heading = away
		n.Velocity = FleeSpeed
		e.integrateNPC(n, dt)
		return
	}

	n.WanderTimerRemain -= dt
	if n.WanderTimerRemain <= 0 {
		n.WanderTimerRemain = WanderInterval
		n.WanderHeading = world.NormalizeAngle(n.WanderHeading + float32(e.rng.Float64()*4-2))
	}
	n.Heading = n.WanderHeading
	n.Velocity = WanderSpeed
	e.integrateNPC(n, dt)
}

func (e *Engine) integrateNPC(n *world.NPCShip, dt float32) {
	dx := float32(math.Cos(float64(n.Heading))) * n.Velocity * dt
	dz := float32(math.Sin(float64(n.Heading))) * n.Velocity * dt
	n.Position.X += dx
	n.Position.Z += dz
	n.Position = n.Position.Clamp()
	e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)
}

func (e *Engine) nearestPlayerShip(pos world.Vec3) *world.PlayerShip {
	var best *world.PlayerShip
	var bestDist float32 = math.MaxFloat32
	for _, p := range e.World.PlayerShips {
		d := world.Distance(pos, p.Position)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func (e *Engine) nearestEnemyWithin(pos world.Vec3, maxDist float32) *world.NPCShip {
	var best *world.NPCShip
	bestDist := maxDist
	for _, n := range e.World.NPCShips {
		if n.Faction != world.FactionEnemy || n.Surrendered {
			continue
		}
		d := world.Distance(pos, n.Position)
		if d <= bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
