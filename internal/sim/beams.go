package sim

import (
	"math"

	"github.com/starbridge/bridgeserver/internal/world"
)

// phasePlayerBeams is tick phase 6: player-fired beam weapons.
func (e *Engine) phasePlayerBeams(dt float32) {
	for _, p := range e.World.PlayerShips {
		e.firePlayerBeam(p, dt)
	}
}

func (e *Engine) firePlayerBeam(p *world.PlayerShip, dt float32) {
	if p.BeamCooldown > 0 {
		p.BeamCooldown -= dt
		if p.BeamCooldown < 0 {
			p.BeamCooldown = 0
		}
	}

	beamsAlloc := effectiveAllocation(p, world.SystemBeams)
	if beamsAlloc <= 0 || p.BeamCooldown > 0 {
		return
	}

	kind, ok := e.lookupEntityKind(p.TargetID)
	if !ok {
		p.TargetID = 0
		return
	}
	targetPos, ok := e.targetPosition(kind, p.TargetID)
	if !ok {
		p.TargetID = 0
		return
	}
	if world.Distance(p.Position, targetPos) > BeamRange {
		return
	}
	if e.lineBlockedByNebula(p.Position, targetPos) {
		return
	}

	dmg := BaseBeamDamage * beamsAlloc * e.frequencyBonus(p.BeamFrequency, kind, p.TargetID)
	e.applyBeamDamage(kind, p.TargetID, dmg, p.Position)

	p.BeamCooldown = BeamCooldownSeconds / beamsAlloc
	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}

// phaseNPCAttacks is tick phase 7: enemy NPC beam fire against their
// AI target. Surrendered or EMP-disabled NPCs skip this phase.
func (e *Engine) phaseNPCAttacks(dt float32) {
	for _, n := range e.World.NPCShips {
		if n.Faction != world.FactionEnemy || n.Surrendered || n.EmpDisableUntil > 0 {
			continue
		}
		e.fireNPCBeam(n, dt)
	}
}

func (e *Engine) fireNPCBeam(n *world.NPCShip, dt float32) {
	if n.BeamCooldown > 0 {
		n.BeamCooldown -= dt
		if n.BeamCooldown < 0 {
			n.BeamCooldown = 0
		}
	}
	if n.AITarget == 0 || n.BeamCooldown > 0 {
		return
	}

	kind, ok := e.lookupEntityKind(n.AITarget)
	if !ok || (kind != world.ObjectPlayerShip && kind != world.ObjectBase) {
		n.AITarget = 0
		return
	}
	targetPos, ok := e.targetPosition(kind, n.AITarget)
	if !ok {
		n.AITarget = 0
		return
	}
	if world.Distance(n.Position, targetPos) > AttackRange {
		return
	}

	dmg := NPCBeamDamage * e.frequencyBonus(n.ShieldFrequency, kind, n.AITarget)
	e.applyBeamDamage(kind, n.AITarget, dmg, n.Position)

	n.BeamCooldown = NPCBeamCooldown
	e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)
}

// frequencyBonus returns 1.5 when the attacker's beam/shield frequency
// matches the target NPC's shield frequency, else 1.0. Only NPC
// targets carry a shield frequency; other kinds never get the bonus.
func (e *Engine) frequencyBonus(attackerFreq int, kind world.ObjectType, id int) float32 {
	if kind != world.ObjectNPCShip {
		return 1.0
	}
	if n := e.World.NPCShips[id]; n != nil && attackerFreq == n.ShieldFrequency {
		return BeamFrequencyBonus
	}
	return 1.0
}

func (e *Engine) lookupEntityKind(id int) (world.ObjectType, bool) {
	if id == 0 {
		return 0, false
	}
	if _, ok := e.World.PlayerShips[id]; ok {
		return world.ObjectPlayerShip, true
	}
	if _, ok := e.World.NPCShips[id]; ok {
		return world.ObjectNPCShip, true
	}
	if _, ok := e.World.Bases[id]; ok {
		return world.ObjectBase, true
	}
	return 0, false
}

func (e *Engine) targetPosition(kind world.ObjectType, id int) (world.Vec3, bool) {
	switch kind {
	case world.ObjectPlayerShip:
		if p := e.World.PlayerShips[id]; p != nil {
			return p.Position, true
		}
	case world.ObjectNPCShip:
		if n := e.World.NPCShips[id]; n != nil {
			return n.Position, true
		}
	case world.ObjectBase:
		if b := e.World.Bases[id]; b != nil {
			return b.Position, true
		}
	}
	return world.Vec3{}, false
}

func (e *Engine) targetHeading(kind world.ObjectType, id int) (float32, bool) {
	switch kind {
	case world.ObjectPlayerShip:
		if p := e.World.PlayerShips[id]; p != nil {
			return p.Heading, true
		}
	case world.ObjectNPCShip:
		if n := e.World.NPCShips[id]; n != nil {
			return n.Heading, true
		}
	}
	return 0, false
}

// isFacingAway reports whether the target's heading points away from
// the attacker's position (spec.md §4.5 phase 6: "fore if target's
// heading points away from us, aft otherwise").
func isFacingAway(targetPos world.Vec3, targetHeading float32, attackerPos world.Vec3) bool {
	dirToAttacker := world.HeadingTo(targetPos, attackerPos)
	diff := world.NormalizeAngle(targetHeading - dirToAttacker)
	return float32(math.Abs(float64(diff))) > math.Pi/2
}

// applyBeamDamage hits the target's facing shield, bleeding through to
// hull once that shield is exhausted (spec.md combat invariants:
// shields never negative, hull damage only while facing shield <= 0).
// Bases have a single shield layer and no hull: damage simply drains
// shields and the base is destroyed once they reach 0. Player ships
// carry no hull field (spec.md §3); bleed-through against them has no
// sink and is dropped, matching the "no ship destruction" design note.
func (e *Engine) applyBeamDamage(kind world.ObjectType, id int, dmg float32, attackerPos world.Vec3) {
	switch kind {
	case world.ObjectPlayerShip:
		p := e.World.PlayerShips[id]
		if p == nil {
			return
		}
		away := isFacingAway(p.Position, p.Heading, attackerPos)
		if away {
			p.ShieldsFore = applyToShield(p.ShieldsFore, dmg)
		} else {
			p.ShieldsAft = applyToShield(p.ShieldsAft, dmg)
		}
		e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)

	case world.ObjectNPCShip:
		n := e.World.NPCShips[id]
		if n == nil {
			return
		}
		away := isFacingAway(n.Position, n.Heading, attackerPos)
		var bleed float32
		if away {
			n.ShieldsFore, bleed = applyToShieldWithBleed(n.ShieldsFore, dmg)
		} else {
			n.ShieldsAft, bleed = applyToShieldWithBleed(n.ShieldsAft, dmg)
		}
		n.Hull -= bleed
		if n.Hull <= world.NPCDefaults(n.Faction).Hull*SurrenderHullFraction && n.Hull > 0 && n.Faction == world.FactionEnemy {
			n.Surrendered = true
		}
		if n.Hull <= 0 {
			n.Hull = 0
			delete(e.World.NPCShips, id)
			e.changes.RecordDestroyed(world.ObjectNPCShip, id)
			return
		}
		e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)

	case world.ObjectBase:
		b := e.World.Bases[id]
		if b == nil {
			return
		}
		b.Shields -= dmg
		if b.Shields <= 0 {
			b.Shields = 0
			delete(e.World.Bases, id)
			e.changes.RecordDestroyed(world.ObjectBase, id)
			return
		}
		e.changes.RecordMutated(world.ObjectBase, b.ID, nil)
	}
}

func applyToShield(shield, dmg float32) float32 {
	shield -= dmg
	if shield < 0 {
		shield = 0
	}
	return shield
}

func applyToShieldWithBleed(shield, dmg float32) (newShield, bleed float32) {
	remaining := shield - dmg
	if remaining >= 0 {
		return remaining, 0
	}
	return 0, -remaining
}

func (e *Engine) lineBlockedByNebula(a, b world.Vec3) bool {
	for _, n := range e.World.Nebulae {
		if segmentDistance(a, b, n.Position) <= n.Radius {
			return true
		}
	}
	return false
}

// segmentDistance returns the minimum distance from point p to the
// segment a-b.
func segmentDistance(a, b, p world.Vec3) float32 {
	abx, aby, abz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	apx, apy, apz := p.X-a.X, p.Y-a.Y, p.Z-a.Z
	abLenSq := abx*abx + aby*aby + abz*abz
	if abLenSq == 0 {
		return world.Distance(a, p)
	}
	t := (apx*abx + apy*aby + apz*abz) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := world.Vec3{X: a.X + abx*t, Y: a.Y + aby*t, Z: a.Z + abz*t}
	return world.Distance(closest, p)
}
