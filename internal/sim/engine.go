package sim

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/starbridge/bridgeserver/internal/world"
)

// Status is the engine-level game status (spec.md §4.5 phase 14).
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// Engine drives the fourteen-phase tick over a *world.World. It owns
// no wall-clock or scheduling (spec.md §4.5: "the engine itself does
// not own wall-clock or scheduling") — callers pass dt explicitly so
// the engine is deterministic under replay and testable under
// arbitrary step sizes.
type Engine struct {
	World  *world.World
	Status Status

	changes *world.ChangeSet
	rng     *rand.Rand
	log     zerolog.Logger

	victoryGraceRemaining float32
	lastEnemyFellAt       bool

	nextTorpID func() int
}

// NewEngine wraps w with a tick driver. seed initializes the AI's
// random source; fresh entity ids (e.g. fired torpedoes) come from
// w.NextID.
func NewEngine(w *world.World, log zerolog.Logger, seed int64) *Engine {
	return &Engine{
		World:   w,
		changes: world.NewChangeSet(),
		rng:     rand.New(rand.NewSource(seed)),
		log:     log,
		nextTorpID: w.NextID,
	}
}

// Tick advances the world by dt seconds through all fourteen phases in
// order and returns the resulting change set. The returned pointer is
// reused and cleared at the start of the next Tick call — callers must
// finish consuming it (e.g. encode broadcasts) before calling Tick
// again (spec.md §5: "the session server reads it between engine
// calls, never during").
func (e *Engine) Tick(dt float32) *world.ChangeSet {
	e.changes.Reset()

	if e.Status != StatusInProgress {
		return e.changes
	}

	e.phaseEngineering(dt)
	e.phaseMovement(dt)
	e.phaseNebula(dt)
	e.phaseDocking(dt)
	e.phaseAI(dt)
	e.phasePlayerBeams(dt)
	e.phaseNPCAttacks(dt)
	e.phaseTubeLoading(dt)
	e.phaseTorpedoFlight(dt)
	e.phaseMines(dt)
	e.phaseEMP(dt)
	e.phaseScans(dt)
	// Phase 13 (shield drain) is folded into phase 1; kept only as a
	// name to match the fourteen-phase convention.
	e.phaseVictory(dt)

	return e.changes
}

// Changes returns the change set produced by the most recent Tick call
// without advancing the simulation.
func (e *Engine) Changes() *world.ChangeSet { return e.changes }

// validTargetOrClear clears a dangling reference field instead of
// raising an error (spec.md §4.5 "Failure semantics": "an NPC
// referencing a missing target is a transient condition and cleared,
// not an error").
func (e *Engine) validTargetOrClear(id int) int {
	if id == 0 {
		return 0
	}
	if e.World.EntityExists(id) {
		return id
	}
	return 0
}
