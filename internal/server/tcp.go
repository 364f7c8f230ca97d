package server

import (
	"net"

	"github.com/starbridge/bridgeserver/internal/wire"
	"github.com/starbridge/bridgeserver/internal/world"
)

// ListenTCP starts the raw binary listener on addr and accepts
// connections until stop is closed. Each connection gets its own
// reader/writer goroutine pair; decoded commands are forwarded onto
// the server's single command channel, never applied directly.
func (s *Server) ListenTCP(addr string, maxPacketBytes int, stop <-chan struct{}) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-stop
		ln.Close()
	}()

	s.log.Info().Str("addr", addr).Msg("tcp listener started")
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-stop:
				return nil
			default:
				s.log.Warn().Err(err).Msg("tcp accept error")
				continue
			}
		}
		go s.handleTCPConn(conn, maxPacketBytes)
	}
}

func (s *Server) handleTCPConn(conn net.Conn, maxPacketBytes int) {
	id := s.allocateClientID()
	c := newClient(id, world.TransportTCP, conn.RemoteAddr().String())
	c.tcpConn = conn

	s.register <- c
	s.sendTCPGreeting(c)

	go s.tcpWritePump(c)
	s.tcpReadPump(c, maxPacketBytes)
}

// sendTCPGreeting sends the plaintext greeting, version, and an
// initial console-status snapshot for shipIndex 0 immediately on
// accept, before the client has picked a ship of its own (spec.md
// §4.6, §8 S6: "Server sends greeting, version, console-status").
func (s *Server) sendTCPGreeting(c *Client) {
	greeting := wire.WritePacket(world.OriginServer, world.PacketPlainTextGreeting, []byte("bridgeserver\x00"))
	versionPayload := append(append(int32ToLE(int32(serverVersion.Major)), int32ToLE(int32(serverVersion.Minor))...), int32ToLE(int32(serverVersion.Patch))...)
	version := wire.WritePacket(world.OriginServer, world.PacketVersion, versionPayload)
	c.sendTCP(greeting)
	c.sendTCP(version)

	statusPacket, _ := s.consoleStatusPacket(0)
	c.sendTCP(statusPacket)
}

func (s *Server) tcpReadPump(c *Client, maxPacketBytes int) {
	defer func() { s.unregister <- c }()

	parser := wire.NewParser(maxPacketBytes)
	buf := make([]byte, 4096)
	for {
		n, err := c.tcpConn.Read(buf)
		if n > 0 {
			parser.Feed(buf[:n])
			packets, perr := parser.Drain()
			for _, pkt := range packets {
				s.handleTCPPacket(c, pkt)
			}
			if perr != nil {
				s.log.Warn().Int("client", c.ID).Err(perr).Msg("tcp framing error, closing")
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Server) handleTCPPacket(c *Client, pkt []byte) {
	header, err := wire.ReadHeader(pkt)
	if err != nil {
		return
	}
	if header.PacketType != world.PacketClientCommand {
		return
	}
	if !c.limiter.Allow() {
		s.log.Warn().Int("client", c.ID).Msg("tcp command rate exceeded, closing")
		c.closeConn()
		return
	}
	payload := pkt[world.HeaderSize:]
	subtype, params, err := wire.ParseClientCommand(payload)
	if err != nil {
		return
	}
	s.commands <- inboundCommand{clientID: c.ID, subtype: subtype, params: params}
}

func (s *Server) tcpWritePump(c *Client) {
	for payload := range c.send {
		if _, err := c.tcpConn.Write(payload); err != nil {
			c.tcpConn.Close()
			return
		}
	}
	c.tcpConn.Close()
}
