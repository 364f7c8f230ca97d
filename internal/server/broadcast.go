package server

import (
	"encoding/binary"
	"encoding/json"
	"unicode/utf16"

	"github.com/starbridge/bridgeserver/internal/sim"
	"github.com/starbridge/bridgeserver/internal/wire"
	"github.com/starbridge/bridgeserver/internal/world"
)

// wireVersion is the {major, minor, patch} shape carried in the WS
// welcome message, matching the three uint32 of the TCP VERSION packet.
type wireVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

var serverVersion = wireVersion{Major: 1, Minor: 0, Patch: 0}

// wsWelcome, wsSimple, wsConsoleStatus, wsWorldUpdate, wsDestroyObject,
// wsGameMessage, wsGameOver, wsHeartbeat are the exact flat JSON shapes
// spec.md §6.2 lists per message type; each carries its own "type"
// field rather than sharing a generic envelope, grounded on the
// teacher's per-message struct types in websocket.go.
type wsWelcome struct {
	Type    string      `json:"type"`
	Version wireVersion `json:"version"`
}

type wsSimple struct {
	Type string `json:"type"`
}

type wsConsoleStatus struct {
	Type      string `json:"type"`
	ShipIndex int    `json:"shipIndex"`
	Consoles  []bool `json:"consoles"`
}

// worldPayload groups changed entities by kind, matching the
// {playerShips, npcShips, bases, mines, nebulae, torpedoes} shape
// spec.md §6.2 describes for worldUpdate.
type worldPayload struct {
	PlayerShips []any `json:"playerShips,omitempty"`
	NPCShips    []any `json:"npcShips,omitempty"`
	Bases       []any `json:"bases,omitempty"`
	Mines       []any `json:"mines,omitempty"`
	Nebulae     []any `json:"nebulae,omitempty"`
	Torpedoes   []any `json:"torpedoes,omitempty"`
}

type wsWorldUpdate struct {
	Type  string       `json:"type"`
	World worldPayload `json:"world"`
}

type wsDestroyObject struct {
	Type       string           `json:"type"`
	ObjectType world.ObjectType `json:"objectType"`
	ObjectID   int              `json:"objectId"`
}

type wsGameMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type wsGameOver struct {
	Type string `json:"type"`
	Won  bool   `json:"won"`
}

type wsHeartbeat struct {
	Type string `json:"type"`
	Tick int    `json:"tick"`
}

// broadcastChanges sends a post-tick change set to every connected
// client: an OBJECT_UPDATE batch plus DESTROY_OBJECT entries on TCP, a
// worldUpdate plus one destroyObject per destroyed entity on WS. Only
// ever called from Server.Run, so it observes a consistent,
// fully-settled post-tick state (spec.md §9, "a broadcast reflects a
// consistent post-tick state").
func (s *Server) broadcastChanges(changes *world.ChangeSet) {
	var tcpUpdates [][]byte
	wp := worldPayload{}

	for kind, ids := range changes.Created {
		for _, id := range ids {
			s.appendEntityRecord(kind, id, &tcpUpdates, &wp)
		}
	}
	for kind, ids := range changes.Mutated {
		for _, id := range ids {
			s.appendEntityRecord(kind, id, &tcpUpdates, &wp)
		}
	}

	var destroyedTCP [][2]int
	var destroyedWS []wsDestroyObject
	for kind, ids := range changes.Destroyed {
		for _, id := range ids {
			destroyedTCP = append(destroyedTCP, [2]int{int(kind), id})
			destroyedWS = append(destroyedWS, wsDestroyObject{Type: "destroyObject", ObjectType: kind, ObjectID: id})
		}
	}

	var tcpPacket []byte
	if len(tcpUpdates) > 0 {
		tcpPacket = wire.WritePacket(world.OriginServer, world.PacketObjectUpdate, wire.WriteEntityBatch(tcpUpdates))
	}
	var destroyPacket []byte
	if len(destroyedTCP) > 0 {
		destroyPacket = s.encodeDestroyPacket(destroyedTCP)
	}

	hasWorldUpdate := len(wp.PlayerShips) > 0 || len(wp.NPCShips) > 0 || len(wp.Bases) > 0 ||
		len(wp.Mines) > 0 || len(wp.Nebulae) > 0 || len(wp.Torpedoes) > 0
	worldMsg := wsWorldUpdate{Type: "worldUpdate", World: wp}

	for _, c := range s.Clients {
		switch c.Transport {
		case world.TransportTCP:
			if tcpPacket != nil {
				c.sendTCP(tcpPacket)
			}
			if destroyPacket != nil {
				c.sendTCP(destroyPacket)
			}
		case world.TransportWS:
			if hasWorldUpdate {
				c.sendWS(worldMsg)
			}
			for _, d := range destroyedWS {
				c.sendWS(d)
			}
		}
	}
}

// encodeDestroyPacket builds the DESTROY_OBJECT payload: a flat run of
// kind+id pairs, not a property-table record, since a destroyed entity
// carries no field state worth sending.
func (s *Server) encodeDestroyPacket(destroyed [][2]int) []byte {
	out := make([]byte, 0, len(destroyed)*5)
	for _, d := range destroyed {
		out = append(out, byte(d[0]))
		out = append(out, int32ToLE(int32(d[1]))...)
	}
	return wire.WritePacket(world.OriginServer, world.PacketDestroyObject, out)
}

func int32ToLE(v int32) []byte {
	u := uint32(v)
	return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}

// encodeGameMessage builds the GAME_MESSAGE payload: shipIndex, the
// sending client's id, then the message text in the same UTF-16LE
// length-prefixed form the entity codec uses for string fields
// (spec.md §4.2).
func encodeGameMessage(shipIndex, fromClientID int, text string) []byte {
	out := append([]byte{}, int32ToLE(int32(shipIndex))...)
	out = append(out, int32ToLE(int32(fromClientID))...)

	units := utf16.Encode([]rune(text))
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(units)+1))
	out = append(out, lenBuf...)
	for _, u := range units {
		unitBuf := make([]byte, 2)
		binary.LittleEndian.PutUint16(unitBuf, u)
		out = append(out, unitBuf...)
	}
	out = append(out, 0, 0)
	return out
}

func (s *Server) appendEntityRecord(kind world.ObjectType, id int, tcpUpdates *[][]byte, wp *worldPayload) {
	entity, jsonData, ok := s.entityByID(kind, id)
	if !ok {
		return
	}
	if u, err := wire.WriteEntityUpdate(kind, id, entity, nil); err == nil {
		*tcpUpdates = append(*tcpUpdates, u)
	}
	switch kind {
	case world.ObjectPlayerShip:
		wp.PlayerShips = append(wp.PlayerShips, jsonData)
	case world.ObjectNPCShip:
		wp.NPCShips = append(wp.NPCShips, jsonData)
	case world.ObjectBase:
		wp.Bases = append(wp.Bases, jsonData)
	case world.ObjectTorpedo:
		wp.Torpedoes = append(wp.Torpedoes, jsonData)
	case world.ObjectMine:
		wp.Mines = append(wp.Mines, jsonData)
	case world.ObjectNebula:
		wp.Nebulae = append(wp.Nebulae, jsonData)
	}
}

// entityByID returns the concrete struct pointer (for the wire codec)
// and the same entity again typed as `any` for JSON marshaling.
func (s *Server) entityByID(kind world.ObjectType, id int) (entity any, jsonData any, ok bool) {
	switch kind {
	case world.ObjectPlayerShip:
		if p, found := s.World.PlayerShips[id]; found {
			return p, p, true
		}
	case world.ObjectNPCShip:
		if n, found := s.World.NPCShips[id]; found {
			return n, n, true
		}
	case world.ObjectBase:
		if b, found := s.World.Bases[id]; found {
			return b, b, true
		}
	case world.ObjectTorpedo:
		if t, found := s.World.Torpedoes[id]; found {
			return t, t, true
		}
	case world.ObjectMine:
		if m, found := s.World.Mines[id]; found {
			return m, m, true
		}
	case world.ObjectNebula:
		if n, found := s.World.Nebulae[id]; found {
			return n, n, true
		}
	}
	return nil, nil, false
}

// broadcastConsoleStatus sends the CONSOLE_STATUS packet for one ship
// to every client (TCP binary + WS JSON), per spec.md §4.6. It is sent
// after setShip, setConsole, and the unregister of a client seated on a
// ship. The heartbeat-timeout removal in onHeartbeat releases consoles
// without calling it, and the TCP accept snapshot is built directly by
// consoleStatusPacket.
func (s *Server) broadcastConsoleStatus(shipIndex int) {
	tcpPacket, payload := s.consoleStatusPacket(shipIndex)
	wsMsg := wsConsoleStatus{Type: "consoleStatus", ShipIndex: payload.ShipIndex, Consoles: payload.Consoles}

	for _, c := range s.Clients {
		switch c.Transport {
		case world.TransportTCP:
			c.sendTCP(tcpPacket)
		case world.TransportWS:
			c.sendWS(wsMsg)
		}
	}
}

type consoleStatusPayload struct {
	ShipIndex int    `json:"shipIndex"`
	Consoles  []bool `json:"consoles"`
}

// consoleStatusPacket renders the CONSOLE_STATUS packet for one ship
// in both wire forms, shared by the broadcast path and the
// accept-time snapshot a fresh TCP client gets before picking a ship.
func (s *Server) consoleStatusPacket(shipIndex int) ([]byte, consoleStatusPayload) {
	flags := s.Consoles.statusFlags(shipIndex)

	buf := make([]byte, 0, 4+world.NumConsoleTypes*4)
	buf = append(buf, int32ToLE(int32(shipIndex))...)
	for _, occupied := range flags {
		if occupied {
			buf = append(buf, int32ToLE(1)...)
		} else {
			buf = append(buf, int32ToLE(0)...)
		}
	}
	tcpPacket := wire.WritePacket(world.OriginServer, world.PacketConsoleStatus, buf)
	return tcpPacket, consoleStatusPayload{ShipIndex: shipIndex, Consoles: flags[:]}
}

// broadcastGameMessage implements the sendComms command's effect: a
// server-originated chat event visible to the ship's clients.
func (s *Server) broadcastGameMessage(shipIndex int, fromClientID int, text string) {
	tcpPacket := wire.WritePacket(world.OriginServer, world.PacketGameMessage, encodeGameMessage(shipIndex, fromClientID, text))
	wsMsg := wsGameMessage{Type: "gameMessage", Message: text}

	for _, c := range s.Clients {
		if c.ShipIndex != shipIndex {
			continue
		}
		switch c.Transport {
		case world.TransportTCP:
			c.sendTCP(tcpPacket)
		case world.TransportWS:
			c.sendWS(wsMsg)
		}
	}
}

// broadcastGameStart emits GAME_START to every client (spec.md §8 S1:
// "receives {type:\"gameStart\"} within one tick" of the triggering ready).
func (s *Server) broadcastGameStart() {
	tcpPacket := wire.WritePacket(world.OriginServer, world.PacketGameStart, nil)
	wsMsg := wsSimple{Type: "gameStart"}
	for _, c := range s.Clients {
		switch c.Transport {
		case world.TransportTCP:
			c.sendTCP(tcpPacket)
		case world.TransportWS:
			c.sendWS(wsMsg)
		}
	}
}

// broadcastGameOver emits GAME_OVER once the engine transitions out of
// StatusInProgress (spec.md §4.5 phase 14). The TCP packet carries no
// payload; the won/lost signal lives only on the WS gameOver.won field.
func (s *Server) broadcastGameOver() {
	won := s.Engine.Status == sim.StatusWon

	tcpPacket := wire.WritePacket(world.OriginServer, world.PacketGameOver, nil)
	wsMsg := wsGameOver{Type: "gameOver", Won: won}

	for _, c := range s.Clients {
		switch c.Transport {
		case world.TransportTCP:
			c.sendTCP(tcpPacket)
		case world.TransportWS:
			c.sendWS(wsMsg)
		}
	}
}

func (c *Client) sendTCP(payload []byte) {
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) sendWS(msg any) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}
