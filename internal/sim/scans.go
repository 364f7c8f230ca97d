package sim

import "github.com/starbridge/bridgeserver/internal/world"

// StartScan begins or retargets a player ship's science scan, clamped
// to SensorRange (spec.md §4.7 scanTarget). Out-of-range or missing
// targets are dropped silently, matching §4.7's "references to
// non-existent ids are dropped silently."
func (e *Engine) StartScan(shipID, targetID int) {
	p := e.World.PlayerShips[shipID]
	if p == nil {
		return
	}
	pos, ok := e.World.PositionOf(targetID)
	if !ok || world.Distance(p.Position, pos) > SensorRange {
		return
	}
	p.ScanTargetID = targetID
	p.ScanProgress = 0
	e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
}

// phaseScans is tick phase 12: advance in-progress scans, resetting
// when the target is lost or leaves SensorRange. A disconnect of the
// client that started the scan does not reset it.
func (e *Engine) phaseScans(dt float32) {
	for _, p := range e.World.PlayerShips {
		if p.ScanTargetID == 0 {
			continue
		}

		kind, ok := e.lookupEntityKind(p.ScanTargetID)
		if !ok {
			p.ScanTargetID = 0
			p.ScanProgress = 0
			e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
			continue
		}
		pos, _ := e.targetPosition(kind, p.ScanTargetID)
		if world.Distance(p.Position, pos) > SensorRange {
			p.ScanTargetID = 0
			p.ScanProgress = 0
			e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
			continue
		}

		p.ScanProgress += dt
		if p.ScanProgress >= ScanDuration {
			e.advanceScanState(kind, p.ScanTargetID)
			p.ScanTargetID = 0
			p.ScanProgress = 0
		}
		e.changes.RecordMutated(world.ObjectPlayerShip, p.ID, nil)
	}
}

func (e *Engine) advanceScanState(kind world.ObjectType, id int) {
	if kind != world.ObjectNPCShip {
		return
	}
	n := e.World.NPCShips[id]
	if n == nil {
		return
	}
	if n.ScanState < 2 {
		n.ScanState++
		e.changes.RecordMutated(world.ObjectNPCShip, n.ID, nil)
	}
}
