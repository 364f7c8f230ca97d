package server

import (
	"github.com/starbridge/bridgeserver/internal/wire"
	"github.com/starbridge/bridgeserver/internal/world"
)

// broadcastHeartbeat emits SERVER_HEARTBEAT on both transports. Client
// liveness detection itself (closing stale connections) stays in
// Server.onHeartbeat, which already owns the per-client iteration;
// this just handles the outbound side of the same tick.
func (s *Server) broadcastHeartbeat() {
	tcpPacket := wire.WritePacket(world.OriginServer, world.PacketServerHeartbeat, nil)
	wsMsg := wsHeartbeat{Type: "heartbeat", Tick: s.tickCount}

	for _, c := range s.Clients {
		switch c.Transport {
		case world.TransportTCP:
			c.sendTCP(tcpPacket)
		case world.TransportWS:
			c.sendWS(wsMsg)
		}
	}
}
