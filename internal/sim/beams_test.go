package sim

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starbridge/bridgeserver/internal/world"
)

func newTestEngine() (*Engine, *world.World) {
	w := world.New()
	e := NewEngine(w, zerolog.Nop(), 1)
	e.Status = StatusInProgress
	return e, w
}

func TestBeamDamageNeverExceedsCeiling(t *testing.T) {
	e, w := newTestEngine()

	attacker := world.NewPlayerShip(w.NextID(), 0)
	attacker.Position = world.Vec3{X: 100, Y: 0, Z: 100}
	attacker.Systems[world.SystemBeams].EnergyAllocation = 3.0 // max allocation
	w.PlayerShips[attacker.ID] = attacker

	target := world.NewNPCShip(w.NextID(), "Target", world.FactionEnemy, world.Vec3{X: 100, Y: 0, Z: 200})
	target.Heading = 0 // facing away from attacker along +X, irrelevant here
	target.ShieldFrequency = attacker.BeamFrequency
	w.NPCShips[target.ID] = target

	attacker.TargetID = target.ID

	startShields := target.ShieldsFore + target.ShieldsAft
	e.firePlayerBeam(attacker, 1.0/20)

	ceiling := BaseBeamDamage * 3.0 * BeamFrequencyBonus
	dealt := startShields - (target.ShieldsFore + target.ShieldsAft) - hullLoss(target)
	assert.LessOrEqual(t, dealt, ceiling+0.001)
}

func hullLoss(n *world.NPCShip) float32 {
	d := world.NPCDefaults(n.Faction)
	return d.Hull - n.Hull
}

func TestApplyToShieldNeverNegative(t *testing.T) {
	result := applyToShield(10, 50)
	assert.Equal(t, float32(0), result)

	result = applyToShield(100, 30)
	assert.Equal(t, float32(70), result)
}

func TestApplyToShieldWithBleedHullDamageOnlyWhenShieldExhausted(t *testing.T) {
	newShield, bleed := applyToShieldWithBleed(50, 30)
	assert.Equal(t, float32(20), newShield)
	assert.Equal(t, float32(0), bleed)

	newShield, bleed = applyToShieldWithBleed(20, 50)
	assert.Equal(t, float32(0), newShield)
	assert.Equal(t, float32(30), bleed)
}

func TestApplyBeamDamageNPCHullUntouchedWhileShieldAbsorbs(t *testing.T) {
	e, w := newTestEngine()

	n := world.NewNPCShip(w.NextID(), "Raider", world.FactionEnemy, world.Vec3{X: 0, Y: 0, Z: 0})
	n.Heading = 0
	w.NPCShips[n.ID] = n
	startHull := n.Hull

	// Attacker positioned so the NPC is facing away (heading 0 points
	// +X; attacker behind at -X means the NPC's fore shield absorbs).
	attackerPos := world.Vec3{X: -100, Y: 0, Z: 0}
	e.applyBeamDamage(world.ObjectNPCShip, n.ID, n.ShieldsFore-5, attackerPos)

	assert.Equal(t, startHull, n.Hull, "hull should be untouched while the facing shield still has capacity")
	assert.GreaterOrEqual(t, n.ShieldsFore, float32(0))
}

func TestApplyBeamDamageBleedsIntoHullOnceShieldDepleted(t *testing.T) {
	e, w := newTestEngine()

	n := world.NewNPCShip(w.NextID(), "Raider", world.FactionEnemy, world.Vec3{X: 0, Y: 0, Z: 0})
	n.Heading = 0
	w.NPCShips[n.ID] = n

	attackerPos := world.Vec3{X: -100, Y: 0, Z: 0}
	e.applyBeamDamage(world.ObjectNPCShip, n.ID, n.ShieldsFore+25, attackerPos)

	assert.Equal(t, float32(0), n.ShieldsFore)
	assert.Less(t, n.Hull, world.NPCDefaults(world.FactionEnemy).Hull)
	assert.GreaterOrEqual(t, n.Hull, float32(0))
}

func TestApplyBeamDamageDestroysNPCAtZeroHull(t *testing.T) {
	e, w := newTestEngine()

	n := world.NewNPCShip(w.NextID(), "Raider", world.FactionEnemy, world.Vec3{X: 0, Y: 0, Z: 0})
	w.NPCShips[n.ID] = n

	e.applyBeamDamage(world.ObjectNPCShip, n.ID, 10000, world.Vec3{X: -1, Y: 0, Z: 0})

	_, stillExists := w.NPCShips[n.ID]
	assert.False(t, stillExists)
	destroyed := e.Changes().Destroyed[world.ObjectNPCShip]
	assert.Contains(t, destroyed, n.ID)
}

func TestNukeAOEExactRadiusReceivesZeroDamage(t *testing.T) {
	e, w := newTestEngine()

	center := world.Vec3{X: 0, Y: 0, Z: 0}
	atEdge := world.NewNPCShip(w.NextID(), "Edge", world.FactionEnemy, world.Vec3{X: NukeRadius, Y: 0, Z: 0})
	w.NPCShips[atEdge.ID] = atEdge
	startShields := atEdge.ShieldsFore

	e.applyNukeAOE(center)

	assert.Equal(t, startShields, atEdge.ShieldsFore, "an entity exactly at the radius receives 0 damage")
}

func TestNukeAOEDamageNeverExceedsFullDamageAtCenter(t *testing.T) {
	assert.Equal(t, float32(NukeDamage), nukeFalloff(0))
	assert.Equal(t, float32(0), nukeFalloff(NukeRadius))
	assert.Less(t, nukeFalloff(NukeRadius/2), float32(NukeDamage))
}

func TestEMPBurstSetsDisableDurationAndTouchesNoOtherField(t *testing.T) {
	e, w := newTestEngine()

	n := world.NewNPCShip(w.NextID(), "Drone", world.FactionEnemy, world.Vec3{X: 100, Y: 0, Z: 0})
	n.ShieldsFore = 42
	n.Hull = 77
	w.NPCShips[n.ID] = n

	e.applyEMPBurst(world.Vec3{X: 0, Y: 0, Z: 0})

	require.Equal(t, float32(EmpDuration), n.EmpDisableUntil)
	assert.Equal(t, float32(42), n.ShieldsFore)
	assert.Equal(t, float32(77), n.Hull)
}

func TestEMPBurstDoesNotTouchEntitiesOutsideRadius(t *testing.T) {
	e, w := newTestEngine()

	n := world.NewNPCShip(w.NextID(), "Far", world.FactionEnemy, world.Vec3{X: EmpRadius + 1000, Y: 0, Z: 0})
	w.NPCShips[n.ID] = n

	e.applyEMPBurst(world.Vec3{X: 0, Y: 0, Z: 0})

	assert.Equal(t, float32(0), n.EmpDisableUntil)
}
