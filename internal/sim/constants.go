// Package sim implements the fourteen-phase fixed-rate simulation
// engine (spec.md §4.5): movement, engineering, AI, combat,
// docking, and win/loss, plus the per-tick change-tracking the session
// server needs for incremental broadcasts.
package sim

// Tuning constants. Centralized here the way the teacher centralizes
// AI tuning in ai_constants.go, so combat/engineering numbers stay in
// one place instead of scattered through phase code.
const (
	// Engineering (phase 1).
	BaseEnergyDrainPerTick  = 0.05
	SystemDrainPerAlloc     = 0.6  // per full unit of allocation, per second
	ShieldActiveDrainPerSec = 8.0
	ShieldNebulaDrainMult   = 3.0
	WarpDrainPerFactorPerS  = 15.0
	HeatRisePerAllocExcess  = 0.35 // per second, per unit allocation above 1.0
	CoolantEfficiency       = 0.12 // heat reduction per coolant unit per second
	OverheatThreshold       = 1.0
	CriticalHeatThreshold   = 1.3
	DamageRatePerSecond     = 0.15
	CoolantPool             = 8
	EnergyBudget            = 12.0 // sum of per-system allocations a ship may set at once

	// Player movement (phase 2).
	MaxImpulseSpeed   = 200.0 // units/s at impulse 1.0
	WarpSpeedPerFactor = 800.0 // units/s per warp factor
	ShipAccel         = 120.0 // units/s^2
	TurnRate          = 0.9   // radians/s at rudder=1, maneuvering alloc=1
	VerticalSpeed     = 80.0  // units/s at pitch=1

	// Nebula (phase 3).
	SensorRangeHalvingInNebula = 0.5

	// Docking (phase 4).
	DockImpulseThreshold = 0.05
	DockRange            = 1500.0
	EnergyRechargeRate   = 40.0 // per second
	ShieldRepairRate     = 10.0 // per second
	RepairRate           = 0.02 // damage fraction repaired per second
	RestockInterval       = 5.0 // seconds between ordnance restocks while docked

	// NPC AI (phase 5).
	AttackRange    = 4000.0
	CruiseSpeed    = 150.0
	FleeRange      = 6000.0
	FleeSpeed      = 220.0
	WanderInterval = 8.0
	WanderSpeed    = 60.0

	// Beams (phases 6-7).
	BaseBeamDamage       = 60.0
	BeamRange            = 5000.0
	BeamCooldownSeconds  = 1.5
	BeamFrequencyBonus   = 1.5
	NPCBeamDamage        = 25.0
	NPCBeamCooldown      = 2.0
	SurrenderHullFraction = 0.15

	// Tube loading (phase 8).
	LoadTimeSeconds = 6.0

	// Torpedo flight (phase 9).
	TorpedoSpeed     = 600.0
	TorpedoLifetime  = 20.0
	HomingTurnRate   = 1.4 // radians/s
	HitRadius        = 150.0
	NukeRadius       = 2500.0
	NukeDamage       = 150.0
	HomingDamage     = 80.0
	PShockDamage     = 50.0
	EmpRadius        = 3000.0
	EmpDuration      = 8.0

	// Mines (phase 10).
	MineArmDelay      = 3.0
	MineTriggerRadius = 400.0
	MineDamage        = 100.0

	// Scans (phase 12).
	SensorRange  = 8000.0
	ScanDuration = 4.0

	// Win/loss (phase 14).
	VictoryGraceSeconds = 5.0
)
