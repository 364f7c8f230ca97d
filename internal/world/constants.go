// Package world holds the shared data model for the bridge simulator:
// entity records, the world container, and the constants/enums every
// other package keys off of.
package world

import "time"

// Packet-type tags for the binary wire protocol. Treated as opaque
// identifiers by callers; only the codec and stream parser interpret
// their numeric value.
const (
	PacketPlainTextGreeting uint32 = 0x0001
	PacketVersion           uint32 = 0x0002
	PacketServerHeartbeat   uint32 = 0x0003
	PacketGameStart         uint32 = 0x0004
	PacketGameOver          uint32 = 0x0005
	PacketConsoleStatus     uint32 = 0x0006
	PacketObjectUpdate      uint32 = 0x0007
	PacketDestroyObject     uint32 = 0x0008
	PacketGameMessage       uint32 = 0x0009
	PacketClientCommand     uint32 = 0x0100
)

// Object-type tags, one byte on the wire, identifying an entity kind
// inside an OBJECT_UPDATE batch.
type ObjectType uint8

const (
	ObjectTerminator ObjectType = 0x00
	ObjectPlayerShip ObjectType = 0x01
	ObjectNPCShip    ObjectType = 0x05
	ObjectBase       ObjectType = 0x06
	ObjectMine       ObjectType = 0x07
	ObjectAnomaly    ObjectType = 0x08
	ObjectNebula     ObjectType = 0x0A
	ObjectTorpedo    ObjectType = 0x0B
	ObjectCreature   ObjectType = 0x0F
)

// Console enumeration. The wire's CONSOLE_STATUS packet always carries
// 11 flags even though only the first six have behavior (see
// spec.md §9, "hard-coded 11-wide array").
type ConsoleType int

const (
	ConsoleHelm ConsoleType = iota
	ConsoleWeapons
	ConsoleEngineering
	ConsoleScience
	ConsoleComms
	ConsoleMainScreen
	ConsoleGameMaster
	ConsoleFighter
	ConsoleObserver
	ConsoleData
	ConsoleReserved10
	consoleCount
)

// NumConsoleTypes is the fixed width of the CONSOLE_STATUS flag array.
const NumConsoleTypes = int(consoleCount)

// Ship-system indices, fixed order, shared by allocation/heat/coolant/
// damage tables on PlayerShip.
type SystemIndex int

const (
	SystemBeams SystemIndex = iota
	SystemTorpedoes
	SystemSensors
	SystemManeuvering
	SystemImpulse
	SystemWarp
	SystemForeShields
	SystemAftShields
	systemCount
)

// NumSystems is the fixed width of a player ship's per-system arrays.
const NumSystems = int(systemCount)

// OrdnanceType enumerates the loadable tube payloads.
type OrdnanceType int

const (
	OrdnanceHoming OrdnanceType = iota
	OrdnanceNuke
	OrdnanceMine
	OrdnanceEMP
	OrdnancePShock
	OrdnanceBeacon
	OrdnanceProbe
	OrdnanceTag
	ordnanceCount
)

// NumOrdnanceTypes is the count of distinct ordnance kinds.
const NumOrdnanceTypes = int(ordnanceCount)

// NumBeamFrequencies is the count of selectable beam-frequency slots.
const NumBeamFrequencies = 5

// TubeState is the lifecycle state of a single weapons tube.
type TubeState int

const (
	TubeEmpty TubeState = iota
	TubeLoading
	TubeLoaded
	TubeUnloading
)

// MainScreenView selects what the main-screen console renders.
type MainScreenView int

const (
	ViewForward MainScreenView = iota
	ViewAft
	ViewTactical
	ViewLongRange
)

// Faction tags NPC ships carry.
type Faction int

const (
	FactionEnemy Faction = iota
	FactionNeutral
	FactionFriendly
)

// Transport identifies which listener a Client is attached to.
type Transport int

const (
	TransportTCP Transport = iota
	TransportWS
)

// ClientState is the session lifecycle state machine from spec.md §4.6.
type ClientState int

const (
	StateConnected ClientState = iota
	StateShipSelected
	StateConsoleSelected
	StateReady
	StateInGame
	StatePostGame
	StateClosed
)

// World bounds (spec.md §3, "Vector").
const (
	WorldMinX, WorldMaxX = 0, 100000
	WorldMinY, WorldMaxY = -100000, 100000
	WorldMinZ, WorldMaxZ = 0, 100000
)

// FirstEntityID is the first id handed out by the world's id counter;
// ids increase monotonically and are never reused (spec.md §3).
const FirstEntityID = 1000

// Scenario bootstrap constants (spec.md §4.1).
const (
	NumScenarioBases   = 4
	NumScenarioEnemies = 6
	NumScenarioNeutral = 2
	NumScenarioNebulae = 3
)

// ShipIndexNames are the eight player-ship slot names the scenario
// assigns on first use of a shipIndex.
var ShipIndexNames = [8]string{
	"Endeavour", "Resolute", "Intrepid", "Valiant",
	"Constellation", "Pathfinder", "Vigilant", "Horizon",
}

// StationNames are the friendly-base names spawned at startup.
var StationNames = [NumScenarioBases]string{
	"Starbase Alpha", "Starbase Bravo", "Starbase Gamma", "Starbase Delta",
}

// Faction tag strings. No log field or GAME_MESSAGE text currently
// references them.
const (
	FactionTagEnemy    = "hostile"
	FactionTagNeutral  = "neutral"
	FactionTagFriendly = "allied"
)

// TickRate is the fixed logical simulation rate (spec.md §4.5).
const TickRate = 20 // Hz
// TickDuration is the fixed dt passed to Engine.Tick under normal operation.
const TickDuration = time.Second / TickRate

// BroadcastDivider: a broadcast happens every Nth tick (10 Hz default).
const BroadcastDivider = 2

// HeartbeatInterval is how often the server emits SERVER_HEARTBEAT.
const HeartbeatInterval = 3 * time.Second

// ClientTimeout is the inactivity window after which a client is
// disconnected (spec.md §4.6).
const ClientTimeout = 10 * time.Second

// DefaultMaxPacketSize bounds a single framed packet (spec.md §4.3).
const DefaultMaxPacketSize = 1 << 20 // 1 MiB

// WireMagic is the 32-bit prefix marking the start of every framed
// binary packet (spec.md §4.2).
const WireMagic uint32 = 0xDEADBEEF

// HeaderSize is the fixed length of the binary packet header.
const HeaderSize = 24

// Origin tags inside the binary header.
const (
	OriginServer uint8 = 0x01
	OriginClient uint8 = 0x02
)
