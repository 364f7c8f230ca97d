// Package wire implements the binary wire protocol layer: little-endian
// primitive encoding, the 24-byte packet header, the tagged bitfield
// entity-update codec, and the stream reassembly parser (spec.md §4.2,
// §4.3). encoding/binary is used directly rather than a third-party
// framing library: no example repo in this corpus ships a codec for a
// bespoke tagged-bitfield wire format, so the primitive layer is
// necessarily hand-rolled against the declared layout (see DESIGN.md).
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/starbridge/bridgeserver/internal/world"
)

// ErrFraming is returned for any header/length inconsistency.
type ErrFraming struct{ Reason string }

func (e *ErrFraming) Error() string { return "wire: framing error: " + e.Reason }

// ErrUnknownKind is returned by ReadEntityUpdate for an object-type tag
// with no registered property table.
type ErrUnknownKind struct{ Kind world.ObjectType }

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("wire: unknown object kind 0x%02x", uint8(e.Kind))
}

// --- primitive writers ---

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putInt32(buf *bytes.Buffer, v int32)     { putUint32(buf, uint32(v)) }
func putUint8(buf *bytes.Buffer, v uint8)     { buf.WriteByte(v) }
func putFloat32(buf *bytes.Buffer, v float32) { putUint32(buf, math.Float32bits(v)) }

// putString writes a UTF-16LE string with a leading 32-bit char count
// that includes the trailing null terminator (spec.md §4.2).
func putString(buf *bytes.Buffer, s string) {
	units := utf16.Encode([]rune(s))
	putUint32(buf, uint32(len(units)+1))
	var b [2]byte
	for _, u := range units {
		binary.LittleEndian.PutUint16(b[:], u)
		buf.Write(b[:])
	}
	binary.LittleEndian.PutUint16(b[:], 0)
	buf.Write(b[:])
}

// --- primitive readers ---

type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) readUint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, &ErrFraming{"truncated uint32"}
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) readInt32() (int32, error) {
	v, err := r.readUint32()
	return int32(v), err
}

func (r *reader) readUint8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, &ErrFraming{"truncated uint8"}
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) readFloat32() (float32, error) {
	v, err := r.readUint32()
	return math.Float32frombits(v), err
}

// readString reads a UTF-16LE string with a leading 32-bit char count
// that includes the trailing null terminator. The terminator is
// dropped from the returned string (spec.md §4.2).
func (r *reader) readString() (string, error) {
	count, err := r.readUint32()
	if err != nil {
		return "", err
	}
	n := int(count)
	if n < 1 || r.remaining() < n*2 {
		return "", &ErrFraming{"truncated string"}
	}
	units := make([]uint16, n-1)
	for i := 0; i < n-1; i++ {
		units[i] = binary.LittleEndian.Uint16(r.data[r.pos:])
		r.pos += 2
	}
	r.pos += 2 // skip the null terminator unit
	return string(utf16.Decode(units)), nil
}

// --- header ---

// WriteHeader emits the 24-byte packet prefix: six 32-bit words —
// magic, total length (including the header), origin, a reserved zero
// word, the remaining-bytes field (total-20), and the packet-type tag.
func WriteHeader(origin uint8, packetType uint32, payload []byte) []byte {
	total := uint32(world.HeaderSize + len(payload))
	buf := new(bytes.Buffer)
	buf.Grow(world.HeaderSize)
	putUint32(buf, world.WireMagic)
	putUint32(buf, total)
	putUint32(buf, uint32(origin))
	putUint32(buf, 0) // reserved
	putUint32(buf, total-20)
	putUint32(buf, packetType)
	return buf.Bytes()
}

// WritePacket builds a complete framed packet: header + payload.
func WritePacket(origin uint8, packetType uint32, payload []byte) []byte {
	h := WriteHeader(origin, packetType, payload)
	out := make([]byte, 0, len(h)+len(payload))
	out = append(out, h...)
	out = append(out, payload...)
	return out
}

// Header is the decoded form of the 24-byte packet prefix.
type Header struct {
	Magic      uint32
	Total      uint32
	Origin     uint8
	Remaining  uint32
	PacketType uint32
}

// ReadHeader decodes and validates the 24-byte prefix of a framed
// packet. It does not consult buf's length beyond the header itself;
// callers (the stream parser) are responsible for ensuring buf holds
// at least Total bytes before calling this.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < world.HeaderSize {
		return Header{}, &ErrFraming{"short header"}
	}
	r := &reader{data: buf}
	magic, _ := r.readUint32()
	if magic != world.WireMagic {
		return Header{}, &ErrFraming{"bad magic"}
	}
	total, _ := r.readUint32()
	originWord, _ := r.readUint32()
	origin := uint8(originWord)
	r.pos += 4 // reserved word
	remaining, _ := r.readUint32()
	packetType, _ := r.readUint32()
	if remaining != total-20 {
		return Header{}, &ErrFraming{"remaining-bytes field disagrees with total length"}
	}
	return Header{Magic: magic, Total: total, Origin: origin, Remaining: remaining, PacketType: packetType}, nil
}

// --- entity update bitfield codec ---

// WriteEntityUpdate emits one entity update: the object-type byte, the
// id, a ceil(n/8)-byte bitfield of which properties are present, then
// the present properties in bit order using each property's declared
// primitive type. present holds the property-table bit indices to
// include, in any order; a nil/empty present writes every field
// (full-state encoding).
func WriteEntityUpdate(kind world.ObjectType, id int, entity any, present []int) ([]byte, error) {
	fields, ok := FieldsFor(kind)
	if !ok {
		return nil, &ErrUnknownKind{kind}
	}
	if len(present) == 0 {
		present = make([]int, len(fields))
		for i := range fields {
			present[i] = i
		}
	}
	set := make(map[int]bool, len(present))
	for _, idx := range present {
		if idx < 0 || idx >= len(fields) {
			return nil, fmt.Errorf("wire: present index %d out of range for kind 0x%02x", idx, uint8(kind))
		}
		set[idx] = true
	}

	buf := new(bytes.Buffer)
	putUint8(buf, uint8(kind))
	putInt32(buf, int32(id))

	bitmapLen := (len(fields) + 7) / 8
	bitmap := make([]byte, bitmapLen)
	for idx := range set {
		bitmap[idx/8] |= 1 << uint(idx%8)
	}
	buf.Write(bitmap)

	for idx, f := range fields {
		if !set[idx] {
			continue
		}
		v := f.Get(entity)
		switch f.Type {
		case PrimInt32:
			putInt32(buf, v.(int32))
		case PrimUint8:
			putUint8(buf, v.(uint8))
		case PrimFloat32:
			putFloat32(buf, v.(float32))
		case PrimString:
			putString(buf, v.(string))
		}
	}
	return buf.Bytes(), nil
}

// EntityUpdate is the decoded form of one WriteEntityUpdate payload.
type EntityUpdate struct {
	Kind     world.ObjectType
	ID       int
	Values   map[string]any // field name -> decoded value
	Consumed int             // bytes consumed from the input slice
}

// ReadEntityUpdate decodes one entity update from the front of buf. It
// returns the kind, id, and a map of only the properties whose bit was
// set, plus how many bytes were consumed so callers can advance past
// it (used by ReadEntityBatch).
func ReadEntityUpdate(buf []byte) (EntityUpdate, error) {
	if len(buf) < 1 {
		return EntityUpdate{}, &ErrFraming{"empty entity update"}
	}
	kind := world.ObjectType(buf[0])
	fields, ok := FieldsFor(kind)
	if !ok {
		return EntityUpdate{}, &ErrUnknownKind{kind}
	}
	r := &reader{data: buf, pos: 1}
	id32, err := r.readInt32()
	if err != nil {
		return EntityUpdate{}, err
	}
	bitmapLen := (len(fields) + 7) / 8
	if r.remaining() < bitmapLen {
		return EntityUpdate{}, &ErrFraming{"truncated bitfield"}
	}
	bitmap := r.data[r.pos : r.pos+bitmapLen]
	r.pos += bitmapLen

	values := make(map[string]any)
	for idx, f := range fields {
		if bitmap[idx/8]&(1<<uint(idx%8)) == 0 {
			continue
		}
		var v any
		var err error
		switch f.Type {
		case PrimInt32:
			v, err = r.readInt32()
		case PrimUint8:
			v, err = r.readUint8()
		case PrimFloat32:
			v, err = r.readFloat32()
		case PrimString:
			v, err = r.readString()
		}
		if err != nil {
			return EntityUpdate{}, err
		}
		values[f.Name] = v
	}
	return EntityUpdate{Kind: kind, ID: int(id32), Values: values, Consumed: r.pos}, nil
}

// ApplyEntityUpdate copies the decoded values of u onto entity using
// kind's property table setters. entity must be a pointer to the Go
// type matching u.Kind (e.g. *world.PlayerShip for ObjectPlayerShip).
func ApplyEntityUpdate(u EntityUpdate, entity any) error {
	fields, ok := FieldsFor(u.Kind)
	if !ok {
		return &ErrUnknownKind{u.Kind}
	}
	for _, f := range fields {
		if v, present := u.Values[f.Name]; present {
			f.Set(entity, v)
		}
	}
	return nil
}

// WriteEntityBatch concatenates entity updates and appends the single
// 0x00 terminator byte (spec.md §4.2).
func WriteEntityBatch(updates [][]byte) []byte {
	buf := new(bytes.Buffer)
	for _, u := range updates {
		buf.Write(u)
	}
	buf.WriteByte(0x00)
	return buf.Bytes()
}

// ReadEntityBatch decodes a batch terminated by a single 0x00 byte,
// returning every entity update in order.
func ReadEntityBatch(buf []byte) ([]EntityUpdate, error) {
	var out []EntityUpdate
	pos := 0
	for {
		if pos >= len(buf) {
			return nil, &ErrFraming{"batch missing terminator"}
		}
		if buf[pos] == 0x00 {
			return out, nil
		}
		u, err := ReadEntityUpdate(buf[pos:])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
		pos += u.Consumed
	}
}
