package server

import "github.com/starbridge/bridgeserver/internal/wire"

// commandHandler applies one already-parsed command to the world on
// behalf of a client. Handlers run synchronously on the server's
// single event-loop goroutine (spec.md §5): they never block, never
// perform I/O, and validate/clamp rather than reject (spec.md §4.7:
// "out-of-range numeric parameters are clamped... references to
// non-existent ids are dropped silently").
type commandHandler func(s *Server, c *Client, params map[string]any)

// commandTable is the single shared dispatch table spec.md §9 calls
// for ("Command dispatch duplication"): both the TCP binary path and
// the WS JSON path decode into the same (subtype, params) shape and
// route through this one table, grounded on the teacher's single
// handleMessage switch in websocket.go.
var commandTable = map[uint32]commandHandler{
	wire.CmdSetShip:          handleSetShip,
	wire.CmdSetConsole:       handleSetConsole,
	wire.CmdReady:            handleReady,
	wire.CmdHeartbeat:        handleHeartbeat,
	wire.CmdSetImpulse:       handleSetImpulse,
	wire.CmdSetWarp:          handleSetWarp,
	wire.CmdSetSteering:      handleSetSteering,
	wire.CmdClimbDive:        handleClimbDive,
	wire.CmdToggleReverse:    handleToggleReverse,
	wire.CmdRequestDock:      handleRequestDock,
	wire.CmdSetTarget:        handleSetTarget,
	wire.CmdFireTube:         handleFireTube,
	wire.CmdLoadTube:         handleLoadTube,
	wire.CmdUnloadTube:       handleUnloadTube,
	wire.CmdToggleAutoBeams:  handleToggleAutoBeams,
	wire.CmdToggleShields:    handleToggleShields,
	wire.CmdSetBeamFrequency: handleSetBeamFrequency,
	wire.CmdSetEnergy:        handleSetEnergy,
	wire.CmdSetCoolant:       handleSetCoolant,
	wire.CmdScanTarget:       handleScanTarget,
	wire.CmdSelectTarget:     handleSelectTarget,
	wire.CmdSetRedAlert:      handleSetRedAlert,
	wire.CmdSetMainScreen:    handleSetMainScreen,
	wire.CmdSendComms:        handleSendComms,
}

// dispatch looks up and runs the handler for subtype, if any. It does
// no screening of its own: each handler checks the spec.md §4.7
// preconditions (lifecycle state, console occupation) itself.
func (s *Server) dispatch(c *Client, subtype uint32, params map[string]any) {
	h, ok := commandTable[subtype]
	if !ok {
		s.log.Debug().Uint32("subtype", subtype).Int("client", c.ID).Msg("unknown command subtype")
		return
	}
	h(s, c, params)
}

func paramInt(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case int32:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func paramFloat(params map[string]any, key string) float32 {
	switch v := params[key].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	}
	return 0
}

func paramBool(params map[string]any, key string) bool {
	switch v := params[key].(type) {
	case uint8:
		return v != 0
	case bool:
		return v
	}
	return false
}
