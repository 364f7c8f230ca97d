package sim

import "github.com/starbridge/bridgeserver/internal/world"

// LoadTube begins loading a tube with an ordnance type, decrementing
// the ship's stock of that type immediately (spec.md §4.7 loadTube:
// "tube enters Loading; stock decremented"). A no-op if the tube isn't
// Empty or the ship holds none of the requested ordnance.
func (e *Engine) LoadTube(shipID, tubeIndex int, ordType world.OrdnanceType) {
	p := e.World.PlayerShips[shipID]
	if p == nil || tubeIndex < 0 || tubeIndex >= len(p.Tubes) {
		return
	}
	if ordType < 0 || int(ordType) >= world.NumOrdnanceTypes {
		return
	}
	t := &p.Tubes[tubeIndex]
	if t.State != world.TubeEmpty || p.OrdnanceStock[ordType] <= 0 {
		return
	}
	p.OrdnanceStock[ordType]--
	t.State = world.TubeLoading
	t.OrdnanceType = ordType
	t.LoadTimer = LoadTimeSeconds
	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}

// UnloadTube reverses a Loading or Loaded tube, refunding its stock
// once the Unloading timer completes (spec.md §4.7 unloadTube).
func (e *Engine) UnloadTube(shipID, tubeIndex int) {
	p := e.World.PlayerShips[shipID]
	if p == nil || tubeIndex < 0 || tubeIndex >= len(p.Tubes) {
		return
	}
	t := &p.Tubes[tubeIndex]
	if t.State != world.TubeLoading && t.State != world.TubeLoaded {
		return
	}
	t.State = world.TubeUnloading
	t.LoadTimer = LoadTimeSeconds
	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}

// phaseTubeLoading is tick phase 8: count down tubes in the Loading or
// Unloading state, promoting Loading tubes to Loaded and returning
// Unloading tubes to Empty with their ordnance stock refunded once
// their timer reaches zero.
func (e *Engine) phaseTubeLoading(dt float32) {
	for _, p := range e.World.PlayerShips {
		torpAlloc := effectiveAllocation(p, world.SystemTorpedoes)
		mutated := false
		for i := range p.Tubes {
			t := &p.Tubes[i]
			switch t.State {
			case world.TubeLoading:
				t.LoadTimer -= dt * torpAlloc
				if t.LoadTimer <= 0 {
					t.LoadTimer = 0
					t.State = world.TubeLoaded
				}
				mutated = true
			case world.TubeUnloading:
				t.LoadTimer -= dt * torpAlloc
				if t.LoadTimer <= 0 {
					p.OrdnanceStock[t.OrdnanceType]++
					t.State = world.TubeEmpty
					t.OrdnanceType = 0
					t.LoadTimer = 0
				}
				mutated = true
			}
		}
		if mutated {
			e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
		}
	}
}
