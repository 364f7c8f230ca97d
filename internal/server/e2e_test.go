package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starbridge/bridgeserver/internal/wire"
	"github.com/starbridge/bridgeserver/internal/world"
)

// tcpHarness drives a Server over an in-memory net.Pipe connection, the
// way the teacher's own handler tests build a Server directly rather
// than dialing a real socket.
type tcpHarness struct {
	conn     net.Conn
	packets  chan []byte
	server   *Server
	stop     chan struct{}
}

func newTCPHarness(t *testing.T) *tcpHarness {
	t.Helper()
	s := newTestServer()
	stop := make(chan struct{})
	go s.Run(stop)

	clientConn, serverConn := net.Pipe()
	go s.handleTCPConn(serverConn, 1<<20)

	h := &tcpHarness{conn: clientConn, packets: make(chan []byte, 64), server: s, stop: stop}
	go h.readLoop()
	t.Cleanup(func() {
		close(stop)
		clientConn.Close()
	})
	return h
}

func (h *tcpHarness) readLoop() {
	parser := wire.NewParser(1 << 20)
	buf := make([]byte, 4096)
	for {
		n, err := h.conn.Read(buf)
		if n > 0 {
			parser.Feed(buf[:n])
			pkts, _ := parser.Drain()
			for _, pkt := range pkts {
				h.packets <- pkt
			}
		}
		if err != nil {
			close(h.packets)
			return
		}
	}
}

func (h *tcpHarness) next(t *testing.T) wire.Header {
	t.Helper()
	select {
	case pkt, ok := <-h.packets:
		require.True(t, ok, "connection closed before expected packet arrived")
		hdr, err := wire.ReadHeader(pkt)
		require.NoError(t, err)
		return hdr
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a packet")
		return wire.Header{}
	}
}

func (h *tcpHarness) nextOfType(t *testing.T, packetType uint32) wire.Header {
	t.Helper()
	for i := 0; i < 32; i++ {
		hdr := h.next(t)
		if hdr.PacketType == packetType {
			return hdr
		}
	}
	t.Fatalf("never saw packet type 0x%x", packetType)
	return wire.Header{}
}

func (h *tcpHarness) sendCommand(t *testing.T, subtype uint32, params map[string]any) {
	t.Helper()
	payload := wire.EncodeClientCommand(subtype, params)
	pkt := wire.WritePacket(world.OriginClient, world.PacketClientCommand, payload)
	_, err := h.conn.Write(pkt)
	require.NoError(t, err)
}

// TestS1JoinReadyReceivesGameStart mirrors spec.md's S1 scenario: a
// fresh TCP client receives greeting/version/consoleStatus on accept,
// then after setShip+setConsole+ready it receives gameStart.
func TestS1JoinReadyReceivesGameStart(t *testing.T) {
	h := newTCPHarness(t)

	greeting := h.next(t)
	require.Equal(t, world.PacketPlainTextGreeting, greeting.PacketType)

	version := h.next(t)
	require.Equal(t, world.PacketVersion, version.PacketType)

	status := h.next(t)
	require.Equal(t, world.PacketConsoleStatus, status.PacketType)

	h.sendCommand(t, wire.CmdSetShip, map[string]any{"shipIndex": int32(0)})
	h.nextOfType(t, world.PacketConsoleStatus)

	h.sendCommand(t, wire.CmdSetConsole, map[string]any{"consoleType": int32(world.ConsoleHelm)})
	h.nextOfType(t, world.PacketConsoleStatus)

	h.sendCommand(t, wire.CmdReady, nil)
	h.nextOfType(t, world.PacketGameStart)
}

// TestS6GreetingOrderOnAccept verifies the fixed ordering spec.md §8's
// S6 scenario names: greeting, then version, then console-status, all
// before the client has picked a ship of its own.
func TestS6GreetingOrderOnAccept(t *testing.T) {
	h := newTCPHarness(t)

	require.Equal(t, world.PacketPlainTextGreeting, h.next(t).PacketType)
	require.Equal(t, world.PacketVersion, h.next(t).PacketType)
	require.Equal(t, world.PacketConsoleStatus, h.next(t).PacketType)
}
