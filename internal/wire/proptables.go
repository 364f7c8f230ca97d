package wire

import "github.com/starbridge/bridgeserver/internal/world"

// PrimType is a wire-level primitive type tag (spec.md §4.2).
type PrimType int

const (
	PrimInt32 PrimType = iota
	PrimUint8
	PrimFloat32
	PrimString
)

// Field describes one entry of an entity kind's property table: a
// name, its wire primitive type, and typed accessors into the Go
// struct it maps to. Values travel as `any` holding int32, uint8,
// float32, or string to keep the codec core kind-agnostic while each
// kind keeps exactly one authoritative table (spec.md §4.2).
type Field struct {
	Name string
	Type PrimType
	Get  func(entity any) any
	Set  func(entity any, v any)
}

// fieldsByKind is the single authoritative property table per object
// kind. Bit index k in an entity-update bitfield is the position of
// fieldsByKind[kind][k].
var fieldsByKind = map[world.ObjectType][]Field{
	world.ObjectPlayerShip: playerShipFields,
	world.ObjectNPCShip:    npcShipFields,
	world.ObjectBase:       baseFields,
	world.ObjectTorpedo:    torpedoFields,
	world.ObjectMine:       mineFields,
	world.ObjectNebula:     nebulaFields,
	world.ObjectAnomaly:    anomalyFields,
	world.ObjectCreature:   creatureFields,
}

// FieldsFor returns the property table for kind, or nil (and false) if
// kind is not a known entity kind (spec.md §4.2: "unknown kinds are a
// decode error").
func FieldsFor(kind world.ObjectType) ([]Field, bool) {
	f, ok := fieldsByKind[kind]
	return f, ok
}

func i32get(f func(any) int32) func(any) any {
	return func(e any) any { return f(e) }
}
func i32set(f func(any, int32)) func(any, any) {
	return func(e any, v any) { f(e, v.(int32)) }
}
func f32get(f func(any) float32) func(any) any {
	return func(e any) any { return f(e) }
}
func f32set(f func(any, float32)) func(any, any) {
	return func(e any, v any) { f(e, v.(float32)) }
}
func u8get(f func(any) uint8) func(any) any {
	return func(e any) any { return f(e) }
}
func u8set(f func(any, uint8)) func(any, any) {
	return func(e any, v any) { f(e, v.(uint8)) }
}
func strget(f func(any) string) func(any) any {
	return func(e any) any { return f(e) }
}
func strset(f func(any, string)) func(any, any) {
	return func(e any, v any) { f(e, v.(string)) }
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

var playerShipFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).ID) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).ID = int(v) })},
	{"shipIndex", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).ShipIndex) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).ShipIndex = int(v) })},
	{"name", PrimString,
		strget(func(e any) string { return e.(*world.PlayerShip).Name }),
		strset(func(e any, v string) { e.(*world.PlayerShip).Name = v })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Position.X }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Position.Z = v })},
	{"heading", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Heading }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Heading = v })},
	{"velocity", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Velocity }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Velocity = v })},
	{"impulse", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Impulse }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Impulse = v })},
	{"warp", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).Warp) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).Warp = int(v) })},
	{"reverse", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.PlayerShip).Reverse) }),
		u8set(func(e any, v uint8) { e.(*world.PlayerShip).Reverse = v != 0 })},
	{"rudder", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Rudder }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Rudder = v })},
	{"pitch", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Pitch }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Pitch = v })},
	{"shieldsFore", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).ShieldsFore }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).ShieldsFore = v })},
	{"shieldsAft", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).ShieldsAft }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).ShieldsAft = v })},
	{"shieldsForeMax", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).ShieldsForeMax }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).ShieldsForeMax = v })},
	{"shieldsAftMax", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).ShieldsAftMax }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).ShieldsAftMax = v })},
	{"shieldsActive", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.PlayerShip).ShieldsActive) }),
		u8set(func(e any, v uint8) { e.(*world.PlayerShip).ShieldsActive = v != 0 })},
	{"beamFrequency", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).BeamFrequency) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).BeamFrequency = int(v) })},
	{"energy", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).Energy }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).Energy = v })},
	{"docked", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.PlayerShip).Docked) }),
		u8set(func(e any, v uint8) { e.(*world.PlayerShip).Docked = v != 0 })},
	{"dockedWith", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).DockedWith) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).DockedWith = int(v) })},
	{"redAlert", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.PlayerShip).RedAlert) }),
		u8set(func(e any, v uint8) { e.(*world.PlayerShip).RedAlert = v != 0 })},
	{"mainScreenView", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).MainScreen) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).MainScreen = world.MainScreenView(v) })},
	{"inNebula", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.PlayerShip).InNebula) }),
		u8set(func(e any, v uint8) { e.(*world.PlayerShip).InNebula = v != 0 })},
	{"targetId", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).TargetID) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).TargetID = int(v) })},
	{"autoBeams", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.PlayerShip).AutoBeams) }),
		u8set(func(e any, v uint8) { e.(*world.PlayerShip).AutoBeams = v != 0 })},
	{"beamCooldown", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).BeamCooldown }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).BeamCooldown = v })},
	{"scanTargetId", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).ScanTargetID) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).ScanTargetID = int(v) })},
	{"scanProgress", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.PlayerShip).ScanProgress }),
		f32set(func(e any, v float32) { e.(*world.PlayerShip).ScanProgress = v })},
	{"selectedTargetId", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.PlayerShip).SelectedTargetID) }),
		i32set(func(e any, v int32) { e.(*world.PlayerShip).SelectedTargetID = int(v) })},
}

// Per-system (8-wide) and per-tube (6-wide) arrays, plus the 8-wide
// ordnance inventory, are not flattened into the bitfield table: doing
// so would cost 22 extra bit positions on every player-ship update for
// state that only an occupant of that ship's own engineering/weapons
// console needs. The WS JSON protocol carries these as nested arrays
// on the full per-ship record instead (spec.md §9 "naive full-state
// JSON broadcast is... acceptable for the core").

var npcShipFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.NPCShip).ID) }),
		i32set(func(e any, v int32) { e.(*world.NPCShip).ID = int(v) })},
	{"name", PrimString,
		strget(func(e any) string { return e.(*world.NPCShip).Name }),
		strset(func(e any, v string) { e.(*world.NPCShip).Name = v })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).Position.X }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).Position.Z = v })},
	{"heading", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).Heading }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).Heading = v })},
	{"velocity", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).Velocity }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).Velocity = v })},
	{"faction", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.NPCShip).Faction) }),
		i32set(func(e any, v int32) { e.(*world.NPCShip).Faction = world.Faction(v) })},
	{"shieldsFore", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).ShieldsFore }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).ShieldsFore = v })},
	{"shieldsAft", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).ShieldsAft }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).ShieldsAft = v })},
	{"hull", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.NPCShip).Hull }),
		f32set(func(e any, v float32) { e.(*world.NPCShip).Hull = v })},
	{"shieldFrequency", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.NPCShip).ShieldFrequency) }),
		i32set(func(e any, v int32) { e.(*world.NPCShip).ShieldFrequency = int(v) })},
	{"surrendered", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.NPCShip).Surrendered) }),
		u8set(func(e any, v uint8) { e.(*world.NPCShip).Surrendered = v != 0 })},
	{"inNebula", PrimUint8,
		u8get(func(e any) uint8 { return boolToU8(e.(*world.NPCShip).InNebula) }),
		u8set(func(e any, v uint8) { e.(*world.NPCShip).InNebula = v != 0 })},
	{"scanState", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.NPCShip).ScanState) }),
		i32set(func(e any, v int32) { e.(*world.NPCShip).ScanState = int(v) })},
}

var baseFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Base).ID) }),
		i32set(func(e any, v int32) { e.(*world.Base).ID = int(v) })},
	{"name", PrimString,
		strget(func(e any) string { return e.(*world.Base).Name }),
		strset(func(e any, v string) { e.(*world.Base).Name = v })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Base).Position.X }),
		f32set(func(e any, v float32) { e.(*world.Base).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Base).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.Base).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Base).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.Base).Position.Z = v })},
	{"shields", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Base).Shields }),
		f32set(func(e any, v float32) { e.(*world.Base).Shields = v })},
	{"shieldsMax", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Base).ShieldsMax }),
		f32set(func(e any, v float32) { e.(*world.Base).ShieldsMax = v })},
}

var torpedoFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Torpedo).ID) }),
		i32set(func(e any, v int32) { e.(*world.Torpedo).ID = int(v) })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Torpedo).Position.X }),
		f32set(func(e any, v float32) { e.(*world.Torpedo).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Torpedo).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.Torpedo).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Torpedo).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.Torpedo).Position.Z = v })},
	{"heading", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Torpedo).Heading }),
		f32set(func(e any, v float32) { e.(*world.Torpedo).Heading = v })},
	{"velocity", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Torpedo).Velocity }),
		f32set(func(e any, v float32) { e.(*world.Torpedo).Velocity = v })},
	{"ordnanceType", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Torpedo).OrdnanceType) }),
		i32set(func(e any, v int32) { e.(*world.Torpedo).OrdnanceType = world.OrdnanceType(v) })},
	{"ownerId", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Torpedo).OwnerID) }),
		i32set(func(e any, v int32) { e.(*world.Torpedo).OwnerID = int(v) })},
	{"homingTargetId", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Torpedo).HomingTargetID) }),
		i32set(func(e any, v int32) { e.(*world.Torpedo).HomingTargetID = int(v) })},
}

var mineFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Mine).ID) }),
		i32set(func(e any, v int32) { e.(*world.Mine).ID = int(v) })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Mine).Position.X }),
		f32set(func(e any, v float32) { e.(*world.Mine).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Mine).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.Mine).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Mine).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.Mine).Position.Z = v })},
	{"ownerId", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Mine).OwnerID) }),
		i32set(func(e any, v int32) { e.(*world.Mine).OwnerID = int(v) })},
}

var nebulaFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Nebula).ID) }),
		i32set(func(e any, v int32) { e.(*world.Nebula).ID = int(v) })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Nebula).Position.X }),
		f32set(func(e any, v float32) { e.(*world.Nebula).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Nebula).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.Nebula).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Nebula).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.Nebula).Position.Z = v })},
	{"nebulaType", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Nebula).NebulaType) }),
		i32set(func(e any, v int32) { e.(*world.Nebula).NebulaType = int(v) })},
	{"radius", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Nebula).Radius }),
		f32set(func(e any, v float32) { e.(*world.Nebula).Radius = v })},
}

var anomalyFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Anomaly).ID) }),
		i32set(func(e any, v int32) { e.(*world.Anomaly).ID = int(v) })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Anomaly).Position.X }),
		f32set(func(e any, v float32) { e.(*world.Anomaly).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Anomaly).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.Anomaly).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Anomaly).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.Anomaly).Position.Z = v })},
}

var creatureFields = []Field{
	{"id", PrimInt32,
		i32get(func(e any) int32 { return int32(e.(*world.Creature).ID) }),
		i32set(func(e any, v int32) { e.(*world.Creature).ID = int(v) })},
	{"posX", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Creature).Position.X }),
		f32set(func(e any, v float32) { e.(*world.Creature).Position.X = v })},
	{"posY", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Creature).Position.Y }),
		f32set(func(e any, v float32) { e.(*world.Creature).Position.Y = v })},
	{"posZ", PrimFloat32,
		f32get(func(e any) float32 { return e.(*world.Creature).Position.Z }),
		f32set(func(e any, v float32) { e.(*world.Creature).Position.Z = v })},
}
