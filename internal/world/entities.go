package world

// System holds the per-system engineering state for one of a player
// ship's eight systems (spec.md §3, "per-system state").
type System struct {
	EnergyAllocation float32 // 0..3.0, 1.0 = nominal
	Heat             float32 // 0..1
	Coolant          int     // units assigned from the ship's coolant pool
	Damage           float32 // 0..1; >=1.0 means offline
}

// EffectiveAllocation returns the system's allocation as actually
// applied this tick: zero if the system is destroyed by damage.
func (s System) EffectiveAllocation() float32 {
	if s.Damage >= 1.0 {
		return 0
	}
	return s.EnergyAllocation
}

// Tube is one of a player ship's six weapons slots.
type Tube struct {
	State        TubeState
	OrdnanceType OrdnanceType
	LoadTimer    float32 // seconds remaining in Loading/Unloading
}

// PlayerShip is a human-operated vessel. See spec.md §3.
type PlayerShip struct {
	ID        int
	ShipIndex int
	Name      string

	Position Vec3
	Heading  float32
	Velocity float32
	Impulse  float32
	Warp     int
	Reverse  bool
	Rudder   float32
	Pitch    float32

	ShieldsFore    float32
	ShieldsAft     float32
	ShieldsForeMax float32
	ShieldsAftMax  float32
	ShieldsActive  bool
	BeamFrequency  int

	Energy float32

	Systems          [NumSystems]System
	CoolantAvailable int

	Tubes            [6]Tube
	OrdnanceStock    [NumOrdnanceTypes]int
	TargetID         int // 0 means none; entity ids start at FirstEntityID
	AutoBeams        bool
	BeamCooldown     float32

	Docked        bool
	DockedWith    int
	DockRequested bool
	RedAlert      bool
	MainScreen MainScreenView
	InNebula   bool

	// DockRestockTimer counts down seconds until the next one-ordnance
	// restock while docked. Server-internal bookkeeping, not on the wire.
	DockRestockTimer float32

	// Science-console scan progress, keyed by the id being scanned.
	ScanTargetID    int
	ScanProgress    float32

	// Per-client UI-scoped selection (not simulated, just stored for
	// readouts); spec.md §4.7 selectTarget.
	SelectedTargetID int
}

// NewPlayerShip returns a default-configured player ship for the given
// slot (spec.md §4.4: full shields, full energy, systems at 1.0,
// zero heat/coolant/damage, empty tubes, no ordnance).
func NewPlayerShip(id, shipIndex int) *PlayerShip {
	p := &PlayerShip{
		ID:             id,
		ShipIndex:      shipIndex,
		Name:           ShipIndexNames[shipIndex%len(ShipIndexNames)],
		ShieldsFore:    100,
		ShieldsAft:     100,
		ShieldsForeMax: 100,
		ShieldsAftMax:  100,
		Energy:         1000,
		BeamFrequency:  0,
		MainScreen:     ViewForward,
	}
	for i := range p.Systems {
		p.Systems[i] = System{EnergyAllocation: 1.0}
	}
	return p
}

// NPCShip is a non-player vessel controlled by the AI phase.
type NPCShip struct {
	ID              int
	Name            string
	Position        Vec3
	Heading         float32
	Velocity        float32
	Faction         Faction
	ShieldsFore     float32
	ShieldsAft      float32
	Hull            float32
	ShieldFrequency int
	Surrendered     bool
	InNebula        bool
	ScanState       int // scan level: 0=unknown, 1=basic, 2=detailed
	BeamCooldown    float32
	EmpDisableUntil float32 // simulation seconds remaining, 0 = not disabled
	AITarget        int     // 0 = none

	// WanderHeading/WanderTimerRemain are AI bookkeeping for Neutral
	// wander behavior; server-internal, not on the wire.
	WanderHeading     float32
	WanderTimerRemain float32
}

// NPCStats are faction-specific defaults for a freshly spawned NPC.
type NPCStats struct {
	Hull            float32
	ShieldsFore     float32
	ShieldsAft      float32
	ShieldFrequency int
}

var npcDefaultsByFaction = map[Faction]NPCStats{
	FactionEnemy:    {Hull: 100, ShieldsFore: 60, ShieldsAft: 60, ShieldFrequency: 2},
	FactionNeutral:  {Hull: 60, ShieldsFore: 40, ShieldsAft: 40, ShieldFrequency: 0},
	FactionFriendly: {Hull: 120, ShieldsFore: 80, ShieldsAft: 80, ShieldFrequency: 1},
}

// NPCDefaults exposes the faction default stats table so other
// packages can reference a faction's baseline hull for thresholds
// (e.g. surrender-on-low-hull) without duplicating the table.
func NPCDefaults(f Faction) NPCStats {
	return npcDefaultsByFaction[f]
}

// NewNPCShip returns a faction-appropriate default NPC ship.
func NewNPCShip(id int, name string, faction Faction, pos Vec3) *NPCShip {
	d := npcDefaultsByFaction[faction]
	return &NPCShip{
		ID:              id,
		Name:            name,
		Position:        pos,
		Faction:         faction,
		Hull:            d.Hull,
		ShieldsFore:     d.ShieldsFore,
		ShieldsAft:      d.ShieldsAft,
		ShieldFrequency: d.ShieldFrequency,
		AITarget:        0,
	}
}

// Base is a stationary station, friendly by construction in this core
// (only friendly bases are spawned by the scenario).
type Base struct {
	ID            int
	Name          string
	Position      Vec3
	Shields       float32
	ShieldsMax    float32
	OrdnanceStock [NumOrdnanceTypes]int
}

// NewBase returns a default-stocked friendly base.
func NewBase(id int, name string, pos Vec3) *Base {
	b := &Base{ID: id, Name: name, Position: pos, Shields: 200, ShieldsMax: 200}
	for i := range b.OrdnanceStock {
		b.OrdnanceStock[i] = 10
	}
	return b
}

// Torpedo is a flying ordnance instance.
type Torpedo struct {
	ID                int
	Position          Vec3
	Heading           float32
	Velocity          float32
	OrdnanceType      OrdnanceType
	OwnerID           int
	HomingTargetID    int // 0 = none
	LifetimeRemaining float32
}

// Mine is a stationary, delayed-arm ordnance instance.
type Mine struct {
	ID               int
	Position         Vec3
	OwnerID          int
	ArmDelayRemaining float32
}

// Nebula is a static sector hazard affecting sensors and shields.
type Nebula struct {
	ID         int
	Position   Vec3
	NebulaType int
	Radius     float32
}

// Anomaly and Creature are carried only so the wire codec's property
// tables are total over the full object-type tag space (spec.md §9's
// "GM/Fighter/Observer/Data consoles... enum values only" applies the
// same way to these two object kinds: real tag, no behavior). Neither
// is ever spawned by the scenario bootstrap.
type Anomaly struct {
	ID       int
	Position Vec3
}

type Creature struct {
	ID       int
	Position Vec3
}
