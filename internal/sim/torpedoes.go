package sim

import (
	"math"

	"github.com/starbridge/bridgeserver/internal/world"
)

// FireTube consumes a loaded tube's ordnance and spawns the flying
// ordnance it represents. Mine-type tubes spawn a stationary Mine
// instead of a flying Torpedo (spec.md §4.5 phase 9). Ids are assigned
// here from the world's id counter (w.NextID), never reserved ahead of
// a tick (spec.md §4.4).
func (e *Engine) FireTube(shipID, tubeIndex int) error {
	p := e.World.PlayerShips[shipID]
	if p == nil || tubeIndex < 0 || tubeIndex >= len(p.Tubes) {
		return nil
	}
	t := &p.Tubes[tubeIndex]
	if t.State != world.TubeLoaded {
		return nil
	}

	ordType := t.OrdnanceType
	t.State = world.TubeEmpty
	t.OrdnanceType = 0
	t.LoadTimer = 0
	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)

	if ordType == world.OrdnanceMine {
		id := e.nextTorpID()
		m := &world.Mine{ID: id, Position: p.Position, OwnerID: p.ID, ArmDelayRemaining: MineArmDelay}
		e.World.Mines[id] = m
		e.changes.RecordCreated(world.ObjectMine, id)
		return nil
	}

	id := e.nextTorpID()
	homing := 0
	if ordType == world.OrdnanceHoming {
		homing = e.validTargetOrClear(p.TargetID)
	}
	torp := &world.Torpedo{
		ID:                id,
		Position:          p.Position,
		Heading:           p.Heading,
		Velocity:          TorpedoSpeed,
		OrdnanceType:      ordType,
		OwnerID:           p.ID,
		HomingTargetID:    homing,
		LifetimeRemaining: TorpedoLifetime,
	}
	e.World.Torpedoes[id] = torp
	e.changes.RecordCreated(world.ObjectTorpedo, id)
	return nil
}

// phaseTorpedoFlight is tick phase 9: homing, integration, collision,
// and ordnance-effect resolution for all flying torpedoes.
func (e *Engine) phaseTorpedoFlight(dt float32) {
	for id, t := range e.World.Torpedoes {
		if t.HomingTargetID != 0 {
			kind, ok := e.lookupEntityKind(t.HomingTargetID)
			if !ok {
				t.HomingTargetID = 0
			} else if pos, ok := e.targetPosition(kind, t.HomingTargetID); ok {
				desired := world.HeadingTo(t.Position, pos)
				diff := world.NormalizeAngle(desired - t.Heading)
				maxTurn := HomingTurnRate * dt
				if diff > maxTurn {
					diff = maxTurn
				} else if diff < -maxTurn {
					diff = -maxTurn
				}
				t.Heading = world.NormalizeAngle(t.Heading + diff)
			}
		}

		t.Position.X += float32(math.Cos(float64(t.Heading))) * t.Velocity * dt
		t.Position.Z += float32(math.Sin(float64(t.Heading))) * t.Velocity * dt

		t.LifetimeRemaining -= dt
		outOfBounds := !t.Position.InBounds()
		expired := t.LifetimeRemaining <= 0

		if hitKind, hitID, hit := e.findCollision(t, id); hit {
			e.resolveOrdnanceHit(t, hitKind, hitID)
			delete(e.World.Torpedoes, id)
			e.changes.RecordDestroyed(world.ObjectTorpedo, id)
			continue
		}

		if outOfBounds || expired {
			delete(e.World.Torpedoes, id)
			e.changes.RecordDestroyed(world.ObjectTorpedo, id)
			continue
		}

		e.changes.RecordMutated(world.ObjectTorpedo, id, nil)
	}
}

func (e *Engine) findCollision(t *world.Torpedo, torpID int) (world.ObjectType, int, bool) {
	for id, p := range e.World.PlayerShips {
		if id == t.OwnerID {
			continue
		}
		if world.Distance(t.Position, p.Position) <= HitRadius {
			return world.ObjectPlayerShip, id, true
		}
	}
	for id, n := range e.World.NPCShips {
		if id == t.OwnerID {
			continue
		}
		if world.Distance(t.Position, n.Position) <= HitRadius {
			return world.ObjectNPCShip, id, true
		}
	}
	for id, b := range e.World.Bases {
		if world.Distance(t.Position, b.Position) <= HitRadius {
			return world.ObjectBase, id, true
		}
	}
	return 0, 0, false
}

// resolveOrdnanceHit applies the ordnance-specific effect for a
// torpedo that has just collided. Beacon/Probe/Tag carry no combat
// effect in this core and are simply consumed (spec.md §4.5 phase 9).
func (e *Engine) resolveOrdnanceHit(t *world.Torpedo, hitKind world.ObjectType, hitID int) {
	switch t.OrdnanceType {
	case world.OrdnanceHoming:
		e.applyBeamDamage(hitKind, hitID, HomingDamage, t.Position)
	case world.OrdnanceNuke:
		e.applyNukeAOE(t.Position)
	case world.OrdnanceEMP:
		e.applyEMPBurst(t.Position)
	case world.OrdnancePShock:
		e.applyBeamDamage(hitKind, hitID, PShockDamage, t.Position)
		e.zeroFacingShield(hitKind, hitID, t.Position)
	case world.OrdnanceBeacon, world.OrdnanceProbe, world.OrdnanceTag:
		// Harmless; reserved ids only.
	}
}

// applyNukeAOE damages every ship and base within NukeRadius of
// center, full damage at the center tapering linearly to zero at the
// radius edge (spec.md combat invariant: "an entity exactly at the
// radius receives 0 damage").
func (e *Engine) applyNukeAOE(center world.Vec3) {
	for id, p := range e.World.PlayerShips {
		if d := world.Distance(center, p.Position); d < NukeRadius {
			e.applyBeamDamage(world.ObjectPlayerShip, id, nukeFalloff(d), center)
		}
	}
	for id, n := range e.World.NPCShips {
		if d := world.Distance(center, n.Position); d < NukeRadius {
			e.applyBeamDamage(world.ObjectNPCShip, id, nukeFalloff(d), center)
		}
	}
	for id, b := range e.World.Bases {
		if d := world.Distance(center, b.Position); d < NukeRadius {
			e.applyBeamDamage(world.ObjectBase, id, nukeFalloff(d), center)
		}
	}
}

func nukeFalloff(dist float32) float32 {
	frac := 1 - dist/NukeRadius
	if frac < 0 {
		frac = 0
	}
	return NukeDamage * frac
}

// applyEMPBurst disables every NPC within EmpRadius for EmpDuration
// seconds, touching no other field (spec.md combat invariant).
func (e *Engine) applyEMPBurst(center world.Vec3) {
	for _, n := range e.World.NPCShips {
		if world.Distance(center, n.Position) <= EmpRadius {
			n.EmpDisableUntil = EmpDuration
			e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)
		}
	}
}

// zeroFacingShield models the PShock ordnance's "temporary shield
// drop": the facing shield is immediately zeroed on top of its direct
// damage. A player ship recovers it through docking regen; NPC shields
// do not regenerate.
func (e *Engine) zeroFacingShield(kind world.ObjectType, id int, attackerPos world.Vec3) {
	switch kind {
	case world.ObjectPlayerShip:
		if p := e.World.PlayerShips[id]; p != nil {
			if isFacingAway(p.Position, p.Heading, attackerPos) {
				p.ShieldsFore = 0
			} else {
				p.ShieldsAft = 0
			}
		}
	case world.ObjectNPCShip:
		if n := e.World.NPCShips[id]; n != nil {
			if isFacingAway(n.Position, n.Heading, attackerPos) {
				n.ShieldsFore = 0
			} else {
				n.ShieldsAft = 0
			}
		}
	}
}
