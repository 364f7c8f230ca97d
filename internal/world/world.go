package world

// World is the authoritative entity container, partitioned by kind and
// keyed by id (spec.md §3, "World container"). It is owned exclusively
// by the session server's event-loop goroutine; nothing here is
// synchronized internally (spec.md §5).
type World struct {
	PlayerShips map[int]*PlayerShip
	NPCShips    map[int]*NPCShip
	Bases       map[int]*Base
	Torpedoes   map[int]*Torpedo
	Mines       map[int]*Mine
	Nebulae     map[int]*Nebula
	Anomalies   map[int]*Anomaly
	Creatures   map[int]*Creature

	nextID int
}

// New returns an empty world with the id counter seeded at FirstEntityID.
func New() *World {
	return &World{
		PlayerShips: make(map[int]*PlayerShip),
		NPCShips:    make(map[int]*NPCShip),
		Bases:       make(map[int]*Base),
		Torpedoes:   make(map[int]*Torpedo),
		Mines:       make(map[int]*Mine),
		Nebulae:     make(map[int]*Nebula),
		Anomalies:   make(map[int]*Anomaly),
		Creatures:   make(map[int]*Creature),
		nextID:      FirstEntityID,
	}
}

// NextID returns a fresh, never-before-used entity id. Only the
// session server calls this (spec.md §4.4: "the simulation engine
// never needs to reserve ids during a tick").
func (w *World) NextID() int {
	id := w.nextID
	w.nextID++
	return id
}

// PlayerShipByIndex finds the player ship occupying a given shipIndex
// slot, if one has been spawned yet.
func (w *World) PlayerShipByIndex(shipIndex int) *PlayerShip {
	for _, p := range w.PlayerShips {
		if p.ShipIndex == shipIndex {
			return p
		}
	}
	return nil
}

// EntityExists reports whether id refers to any currently-present
// entity, regardless of kind. Used to validate targetId-style
// references (spec.md §3 invariant).
func (w *World) EntityExists(id int) bool {
	if id == 0 {
		return false
	}
	if _, ok := w.PlayerShips[id]; ok {
		return true
	}
	if _, ok := w.NPCShips[id]; ok {
		return true
	}
	if _, ok := w.Bases[id]; ok {
		return true
	}
	if _, ok := w.Torpedoes[id]; ok {
		return true
	}
	if _, ok := w.Mines[id]; ok {
		return true
	}
	if _, ok := w.Nebulae[id]; ok {
		return true
	}
	return false
}

// PositionOf returns the position of any entity kind that has one, and
// whether it was found. Used by the scan range check in StartScan.
func (w *World) PositionOf(id int) (Vec3, bool) {
	if p, ok := w.PlayerShips[id]; ok {
		return p.Position, true
	}
	if n, ok := w.NPCShips[id]; ok {
		return n.Position, true
	}
	if b, ok := w.Bases[id]; ok {
		return b.Position, true
	}
	if t, ok := w.Torpedoes[id]; ok {
		return t.Position, true
	}
	if m, ok := w.Mines[id]; ok {
		return m.Position, true
	}
	return Vec3{}, false
}

// ChangeSet is the simulation engine's per-tick record of created,
// destroyed, and mutated entities (spec.md §3, "Change set per tick").
// MutatedFields optionally records which property-table bit indices
// changed for a mutated entity, enabling bit-accurate incremental
// encoding; a kind/id absent from the map means "assume all fields
// changed" (used for created entities).
type ChangeSet struct {
	Created   map[ObjectType][]int
	Destroyed map[ObjectType][]int
	Mutated   map[ObjectType][]int

	MutatedFields map[ObjectType]map[int][]int
}

// NewChangeSet returns an empty change set.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		Created:       make(map[ObjectType][]int),
		Destroyed:     make(map[ObjectType][]int),
		Mutated:       make(map[ObjectType][]int),
		MutatedFields: make(map[ObjectType]map[int][]int),
	}
}

// Reset clears the change set in place so the engine can reuse the
// same allocation tick after tick.
func (c *ChangeSet) Reset() {
	for k := range c.Created {
		delete(c.Created, k)
	}
	for k := range c.Destroyed {
		delete(c.Destroyed, k)
	}
	for k := range c.Mutated {
		delete(c.Mutated, k)
	}
	for k := range c.MutatedFields {
		delete(c.MutatedFields, k)
	}
}

// RecordCreated records a newly created entity.
func (c *ChangeSet) RecordCreated(kind ObjectType, id int) {
	c.Created[kind] = append(c.Created[kind], id)
}

// RecordDestroyed records a removed entity.
func (c *ChangeSet) RecordDestroyed(kind ObjectType, id int) {
	c.Destroyed[kind] = append(c.Destroyed[kind], id)
}

// RecordMutated records a mutated entity and, optionally, the specific
// property-table bit indices that changed. Passing a nil/empty fields
// slice still marks the entity mutated but leaves encoders to fall
// back to a full re-encode.
func (c *ChangeSet) RecordMutated(kind ObjectType, id int, fields []int) {
	c.Mutated[kind] = append(c.Mutated[kind], id)
	if len(fields) == 0 {
		return
	}
	byID, ok := c.MutatedFields[kind]
	if !ok {
		byID = make(map[int][]int)
		c.MutatedFields[kind] = byID
	}
	byID[id] = append(byID[id], fields...)
}

// IsEmpty reports whether nothing changed this tick.
func (c *ChangeSet) IsEmpty() bool {
	return len(c.Created) == 0 && len(c.Destroyed) == 0 && len(c.Mutated) == 0
}
