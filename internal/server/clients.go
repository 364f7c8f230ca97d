package server

import (
	"net"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/starbridge/bridgeserver/internal/world"
)

// commandBurst and commandRefillRate bound each client's inbound
// command rate (spec.md §7 taxonomy item 4, resource exhaustion),
// grounded on Vitadek-OwnWorld/utils.go's getLimiter per-IP token
// bucket. Scoped per-client here since each Client already has its
// own lifetime and there's no cross-client map to guard.
const (
	commandBurst      = 20
	commandRefillRate = 10 // per second
)

// noShip and noConsole are the sentinel values for a Client that
// hasn't picked a ship or console yet, mirroring the teacher's
// PlayerID-int-with -1-sentinel convention in websocket.go.
const (
	noShip    = -1
	noConsole = -1
)

// Client is one connected participant, on either transport (spec.md
// §3, "Client"). Reads happen on a per-connection goroutine and are
// forwarded as parsed commands onto the server's command channel;
// only the server's single event-loop goroutine ever touches State,
// ShipIndex, ConsoleType, Ready, or LastHeartbeat.
type Client struct {
	ID            int
	Transport     world.Transport
	RemoteAddress string
	PlayerName    string
	ShipIndex     int
	ConsoleType   int
	Ready         bool
	LastHeartbeat time.Time
	State         world.ClientState

	tcpConn net.Conn
	wsConn  *websocket.Conn
	send    chan []byte

	limiter *rate.Limiter
}

// closeConn closes whichever transport connection this client holds.
// Closing unblocks the client's reader goroutine, which then sends it
// on the unregister channel.
func (c *Client) closeConn() {
	if c.tcpConn != nil {
		c.tcpConn.Close()
	}
	if c.wsConn != nil {
		c.wsConn.Close()
	}
}

func newClient(id int, transport world.Transport, remoteAddr string) *Client {
	return &Client{
		ID:            id,
		Transport:     transport,
		RemoteAddress: remoteAddr,
		ShipIndex:     noShip,
		ConsoleType:   noConsole,
		LastHeartbeat: time.Now(),
		State:         world.StateConnected,
		send:          make(chan []byte, 256),
		limiter:       rate.NewLimiter(commandRefillRate, commandBurst),
	}
}

// consoleTable is the per-ship console-occupation mapping (spec.md
// §3, "Console-occupation table"): 0 means free, any other value is
// the occupying client's id. Client ids are allocated starting at 1
// so 0 is never a valid client id.
type consoleTable [len(world.ShipIndexNames)][world.NumConsoleTypes]int

func newConsoleTable() *consoleTable {
	return &consoleTable{}
}

func (t *consoleTable) occupant(shipIndex int, console world.ConsoleType) int {
	return t[shipIndex][console]
}

func (t *consoleTable) occupy(shipIndex int, console world.ConsoleType, clientID int) {
	t[shipIndex][console] = clientID
}

func (t *consoleTable) release(shipIndex int, console world.ConsoleType) {
	t[shipIndex][console] = 0
}

// releaseClient clears every console occupation held by clientID,
// called on disconnect or on voluntarily changing ship/console.
func (t *consoleTable) releaseClient(clientID int) {
	for s := range t {
		for c := range t[s] {
			if t[s][c] == clientID {
				t[s][c] = 0
			}
		}
	}
}

// statusFlags renders the 11-wide occupied/free flag array the
// CONSOLE_STATUS packet carries for one ship (spec.md §9: "hard-coded
// 11-wide array" even though only six consoles have behavior).
func (t *consoleTable) statusFlags(shipIndex int) [world.NumConsoleTypes]bool {
	var flags [world.NumConsoleTypes]bool
	for c := 0; c < world.NumConsoleTypes; c++ {
		flags[c] = t[shipIndex][c] != 0
	}
	return flags
}
