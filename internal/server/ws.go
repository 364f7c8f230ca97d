package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/starbridge/bridgeserver/internal/wire"
	"github.com/starbridge/bridgeserver/internal/world"
)

// isValidOrigin mirrors the teacher's same-origin/localhost allowance
// (websocket.go), since this is a browser-facing console surface with
// the same cross-origin concerns.
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	return strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" || originURL.Host == "127.0.0.1"
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// wsClientMessage is the client->server JSON envelope (spec.md §6.2).
type wsClientMessage struct {
	Type        string          `json:"type"`
	ShipIndex   int             `json:"shipIndex"`
	ConsoleType int             `json:"consoleType"`
	PlayerName  string          `json:"playerName"`
	Command     string          `json:"command"`
	Params      json.RawMessage `json:"params"`
}

// HandleWS upgrades an HTTP request to a WebSocket connection and
// registers the resulting client with the server, grounded on the
// teacher's HandleWebSocket/readPump/writePump (websocket.go).
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	id := s.allocateClientID()
	c := newClient(id, world.TransportWS, conn.RemoteAddr().String())
	c.wsConn = conn

	s.register <- c
	c.sendWS(wsWelcome{Type: "welcome", Version: serverVersion})

	go s.wsWritePump(c)
	s.wsReadPump(c)
}

func (s *Server) wsReadPump(c *Client) {
	defer func() { s.unregister <- c }()

	c.wsConn.SetReadDeadline(time.Now().Add(world.ClientTimeout))
	c.wsConn.SetPongHandler(func(string) error {
		c.wsConn.SetReadDeadline(time.Now().Add(world.ClientTimeout))
		return nil
	})

	for {
		var msg wsClientMessage
		if err := c.wsConn.ReadJSON(&msg); err != nil {
			return
		}
		s.handleWSMessage(c, msg)
	}
}

func (s *Server) wsWritePump(c *Client) {
	ticker := time.NewTicker(world.HeartbeatInterval * 2)
	defer func() {
		ticker.Stop()
		c.wsConn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.wsConn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.wsConn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.wsConn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWSMessage maps the JSON message shape onto the same
// (subtype, params) dispatch TCP commands use (spec.md §9, "Command
// dispatch duplication" unified across transports). "join" composes
// setShip+setConsole, matching the S1 scenario (spec.md §8).
// handleWSMessage drops (rather than closes, per spec.md §7's
// transport-specific severity) any message past the client's inbound
// rate budget, then maps the JSON shape onto command dispatch.
func (s *Server) handleWSMessage(c *Client, msg wsClientMessage) {
	if !c.limiter.Allow() {
		s.log.Warn().Int("client", c.ID).Msg("ws command rate exceeded, dropping")
		return
	}
	switch msg.Type {
	case "join":
		s.commands <- inboundCommand{clientID: c.ID, subtype: wire.CmdSetShip, params: map[string]any{
			"shipIndex":  msg.ShipIndex,
			"playerName": msg.PlayerName,
		}}
		s.commands <- inboundCommand{clientID: c.ID, subtype: wire.CmdSetConsole, params: map[string]any{"consoleType": msg.ConsoleType}}
	case "ready":
		s.commands <- inboundCommand{clientID: c.ID, subtype: wire.CmdReady, params: nil}
	case "heartbeat":
		s.commands <- inboundCommand{clientID: c.ID, subtype: wire.CmdHeartbeat, params: nil}
	case "command":
		subtype, ok := wire.SubtypeForName(msg.Command)
		if !ok {
			return
		}
		var raw map[string]any
		if len(msg.Params) > 0 {
			if err := json.Unmarshal(msg.Params, &raw); err != nil {
				return
			}
		}
		s.commands <- inboundCommand{clientID: c.ID, subtype: subtype, params: raw}
	}
}
