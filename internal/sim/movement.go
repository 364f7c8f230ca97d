package sim

import (
	"math"

	"github.com/starbridge/bridgeserver/internal/world"
)

// phaseMovement is tick phase 2: helm integration for player ships.
func (e *Engine) phaseMovement(dt float32) {
	for _, p := range e.World.PlayerShips {
		e.moveShip(p, dt)
	}
}

func (e *Engine) moveShip(p *world.PlayerShip, dt float32) {
	if p.Docked {
		p.Velocity = 0
		e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
		return
	}

	impulseAlloc := effectiveAllocation(p, world.SystemImpulse)
	warpAlloc := effectiveAllocation(p, world.SystemWarp)
	maneuverAlloc := effectiveAllocation(p, world.SystemManeuvering)

	desiredSpeed := p.Impulse*MaxImpulseSpeed*impulseAlloc + float32(p.Warp)*WarpSpeedPerFactor*warpAlloc
	if p.Reverse {
		desiredSpeed *= -0.5
	}

	if p.Velocity < desiredSpeed {
		p.Velocity += ShipAccel * dt
		if p.Velocity > desiredSpeed {
			p.Velocity = desiredSpeed
		}
	} else if p.Velocity > desiredSpeed {
		p.Velocity -= ShipAccel * dt
		if p.Velocity < desiredSpeed {
			p.Velocity = desiredSpeed
		}
	}

	p.Heading = world.NormalizeAngle(p.Heading + p.Rudder*TurnRate*maneuverAlloc*dt)

	dx := float32(math.Cos(float64(p.Heading))) * p.Velocity * dt
	dz := float32(math.Sin(float64(p.Heading))) * p.Velocity * dt
	dy := p.Pitch * VerticalSpeed * dt

	p.Position.X += dx
	p.Position.Y += dy
	p.Position.Z += dz
	p.Position = p.Position.Clamp()

	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}
