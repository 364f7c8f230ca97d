package wire

import "bytes"

// Command subtypes: the leading 32-bit tag inside a CLIENT_COMMAND
// packet's payload (spec.md §4.7, §6.1). The exact numeric mapping is
// this implementation's own (spec.md §6.1 notes the source's mapping
// is preserved verbatim; since this core unifies the two historical
// code paths per spec.md §9, these values are the single authoritative
// assignment).
const (
	CmdSetShip uint32 = iota + 1
	CmdSetConsole
	CmdReady
	CmdHeartbeat
	CmdSetImpulse
	CmdSetWarp
	CmdSetSteering
	CmdClimbDive
	CmdToggleReverse
	CmdRequestDock
	CmdSetTarget
	CmdFireTube
	CmdLoadTube
	CmdUnloadTube
	CmdToggleAutoBeams
	CmdToggleShields
	CmdSetBeamFrequency
	CmdSetEnergy
	CmdSetCoolant
	CmdScanTarget
	CmdSelectTarget
	CmdSetRedAlert
	CmdSetMainScreen
	CmdSendComms
)

// CommandNames maps a subtype to the canonical command name shared
// with the WS JSON protocol's "command" field (spec.md §9, "Command
// dispatch duplication" — both transports resolve to the same name).
var CommandNames = map[uint32]string{
	CmdSetShip:          "setShip",
	CmdSetConsole:       "setConsole",
	CmdReady:            "ready",
	CmdHeartbeat:        "heartbeat",
	CmdSetImpulse:       "setImpulse",
	CmdSetWarp:          "setWarp",
	CmdSetSteering:      "setSteering",
	CmdClimbDive:        "climbDive",
	CmdToggleReverse:    "toggleReverse",
	CmdRequestDock:      "requestDock",
	CmdSetTarget:        "setTarget",
	CmdFireTube:         "fireTube",
	CmdLoadTube:         "loadTube",
	CmdUnloadTube:       "unloadTube",
	CmdToggleAutoBeams:  "toggleAutoBeams",
	CmdToggleShields:    "toggleShields",
	CmdSetBeamFrequency: "setBeamFrequency",
	CmdSetEnergy:        "setEnergy",
	CmdSetCoolant:       "setCoolant",
	CmdScanTarget:       "scanTarget",
	CmdSelectTarget:     "selectTarget",
	CmdSetRedAlert:      "setRedAlert",
	CmdSetMainScreen:    "setMainScreen",
	CmdSendComms:        "sendComms",
}

var namesToSubtype = func() map[string]uint32 {
	m := make(map[string]uint32, len(CommandNames))
	for subtype, name := range CommandNames {
		m[name] = subtype
	}
	return m
}()

// SubtypeForName returns the numeric subtype for a command name, and
// whether it is known.
func SubtypeForName(name string) (uint32, bool) {
	s, ok := namesToSubtype[name]
	return s, ok
}

// CommandParam describes one positional parameter of a command's
// binary payload.
type CommandParam struct {
	Name string
	Type PrimType
}

// commandSchemas lists, in wire order, the parameters following the
// subtype tag for each command (spec.md §4.7 "Parameters" column).
// Commands with no parameters are omitted (nil schema).
var commandSchemas = map[uint32][]CommandParam{
	CmdSetShip:          {{"shipIndex", PrimInt32}},
	CmdSetConsole:       {{"consoleType", PrimInt32}},
	CmdSetImpulse:       {{"value", PrimFloat32}},
	CmdSetWarp:          {{"value", PrimInt32}},
	CmdSetSteering:      {{"value", PrimFloat32}},
	CmdClimbDive:        {{"value", PrimFloat32}},
	CmdRequestDock:      nil,
	CmdSetTarget:        {{"targetId", PrimInt32}},
	CmdFireTube:         {{"tubeIndex", PrimInt32}},
	CmdLoadTube:         {{"tubeIndex", PrimInt32}, {"ordnanceType", PrimInt32}},
	CmdUnloadTube:       {{"tubeIndex", PrimInt32}},
	CmdSetBeamFrequency: {{"value", PrimInt32}},
	CmdSetEnergy:        {{"systemIndex", PrimInt32}, {"value", PrimFloat32}},
	CmdSetCoolant:       {{"systemIndex", PrimInt32}, {"units", PrimInt32}},
	CmdScanTarget:       {{"targetId", PrimInt32}},
	CmdSelectTarget:     {{"targetId", PrimInt32}},
	CmdSetRedAlert:      {{"active", PrimUint8}},
	CmdSetMainScreen:    {{"view", PrimInt32}},
	CmdSendComms:        {{"targetId", PrimInt32}},
}

// ParseClientCommand reads the leading 32-bit subtype from a
// CLIENT_COMMAND packet's payload and decodes its parameters according
// to the per-subtype schema (spec.md §4.2, §6.1).
func ParseClientCommand(payload []byte) (subtype uint32, params map[string]any, err error) {
	r := &reader{data: payload}
	subtype, err = r.readUint32()
	if err != nil {
		return 0, nil, err
	}
	schema := commandSchemas[subtype]
	params = make(map[string]any, len(schema))
	for _, p := range schema {
		var v any
		switch p.Type {
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
			return subtype, nil, err
		}
		params[p.Name] = v
	}
	return subtype, params, nil
}

// EncodeClientCommand is the inverse of ParseClientCommand, used by
// tests to synthesize TCP command packets. params must supply exactly
// the fields the subtype's schema declares.
func EncodeClientCommand(subtype uint32, params map[string]any) []byte {
	buf := new(bytes.Buffer)
	putUint32(buf, subtype)
	for _, p := range commandSchemas[subtype] {
		v := params[p.Name]
		switch p.Type {
		case PrimInt32:
			putInt32(buf, toInt32(v))
		case PrimUint8:
			putUint8(buf, toUint8(v))
		case PrimFloat32:
			putFloat32(buf, toFloat32(v))
		case PrimString:
			putString(buf, v.(string))
		}
	}
	return buf.Bytes()
}

func toInt32(v any) int32 {
	switch t := v.(type) {
	case int32:
		return t
	case int:
		return int32(t)
	}
	return 0
}

func toUint8(v any) uint8 {
	switch t := v.(type) {
	case uint8:
		return t
	case bool:
		return boolToU8(t)
	case int:
		return uint8(t)
	}
	return 0
}

func toFloat32(v any) float32 {
	switch t := v.(type) {
	case float32:
		return t
	case float64:
		return float32(t)
	}
	return 0
}
