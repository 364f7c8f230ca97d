package sim

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/starbridge/bridgeserver/internal/world"
)

// buildDeterminismScenario returns a fresh world+engine pair with the
// same fixed entity layout every call, so two independently built runs
// start from identical state.
func buildDeterminismScenario() (*Engine, *world.World) {
	w := world.New()
	e := NewEngine(w, zerolog.Nop(), 42)
	e.Status = StatusInProgress

	p := world.NewPlayerShip(w.NextID(), 0)
	p.Position = world.Vec3{X: 40000, Y: 0, Z: 40000}
	p.Impulse = 0.5
	p.Systems[world.SystemBeams].EnergyAllocation = 1.2
	p.TargetID = 0
	w.PlayerShips[p.ID] = p

	n := world.NewNPCShip(w.NextID(), "Raider", world.FactionEnemy, world.Vec3{X: 41000, Y: 0, Z: 40500})
	w.NPCShips[n.ID] = n
	p.TargetID = n.ID
	n.AITarget = p.ID

	base := world.NewBase(w.NextID(), "Starbase Alpha", world.Vec3{X: 10000, Y: 0, Z: 10000})
	w.Bases[base.ID] = base

	return e, w
}

// snapshotPlayer captures the fields that matter for determinism
// comparison without depending on map iteration order.
type snapshotPlayer struct {
	pos            world.Vec3
	heading        float32
	energy         float32
	shieldsFore    float32
	shieldsAft     float32
	beamCooldown   float32
}

func snapshotWorld(w *world.World) map[int]snapshotPlayer {
	out := make(map[int]snapshotPlayer, len(w.PlayerShips))
	for id, p := range w.PlayerShips {
		out[id] = snapshotPlayer{
			pos:          p.Position,
			heading:      p.Heading,
			energy:       p.Energy,
			shieldsFore:  p.ShieldsFore,
			shieldsAft:   p.ShieldsAft,
			beamCooldown: p.BeamCooldown,
		}
	}
	return out
}

func TestIdenticalInputsProduceIdenticalWorldState(t *testing.T) {
	const dt = 1.0 / 20
	const steps = 50

	e1, w1 := buildDeterminismScenario()
	for i := 0; i < steps; i++ {
		e1.Tick(dt)
	}

	e2, w2 := buildDeterminismScenario()
	for i := 0; i < steps; i++ {
		e2.Tick(dt)
	}

	assert.Equal(t, snapshotWorld(w1), snapshotWorld(w2))
	assert.Equal(t, len(w1.NPCShips), len(w2.NPCShips))
	assert.Equal(t, len(w1.Bases), len(w2.Bases))
}

func TestIdenticalInputsProduceIdenticalChangeSetsPerTick(t *testing.T) {
	const dt = 1.0 / 20

	e1, _ := buildDeterminismScenario()
	e2, _ := buildDeterminismScenario()

	for i := 0; i < 20; i++ {
		c1 := e1.Tick(dt)
		c2 := e2.Tick(dt)
		assert.Equal(t, c1.Created, c2.Created, "tick %d created set diverged", i)
		assert.Equal(t, c1.Destroyed, c2.Destroyed, "tick %d destroyed set diverged", i)
		assert.Equal(t, c1.Mutated, c2.Mutated, "tick %d mutated set diverged", i)
	}
}
