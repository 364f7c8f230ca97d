package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starbridge/bridgeserver/internal/world"
)

func TestHeaderInvariants(t *testing.T) {
	payload := []byte("hello fleet")
	pkt := WritePacket(world.OriginServer, world.PacketGameMessage, payload)

	h, err := ReadHeader(pkt)
	require.NoError(t, err)
	assert.Equal(t, world.WireMagic, h.Magic)
	assert.Equal(t, uint32(world.HeaderSize+len(payload)), h.Total)
	assert.Equal(t, h.Total-20, h.Remaining)
	assert.Equal(t, world.PacketGameMessage, h.PacketType)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, world.HeaderSize)
	_, err := ReadHeader(buf)
	assert.Error(t, err)
}

func TestEntityUpdateRoundTripFullState(t *testing.T) {
	ship := world.NewPlayerShip(1000, 0)
	ship.Position = world.Vec3{X: 123.5, Y: -10, Z: 9999}
	ship.Name = "Endeavour"
	ship.Energy = 750

	enc, err := WriteEntityUpdate(world.ObjectPlayerShip, ship.ID, ship, nil)
	require.NoError(t, err)

	u, err := ReadEntityUpdate(enc)
	require.NoError(t, err)
	assert.Equal(t, world.ObjectPlayerShip, u.Kind)
	assert.Equal(t, ship.ID, u.ID)
	assert.Equal(t, ship.Name, u.Values["name"])
	assert.Equal(t, ship.Position.X, u.Values["posX"])
	assert.Equal(t, ship.Energy, u.Values["energy"])
	assert.Equal(t, len(enc), u.Consumed)

	decoded := world.NewPlayerShip(0, 0)
	require.NoError(t, ApplyEntityUpdate(u, decoded))
	assert.Equal(t, ship.ID, decoded.ID)
	assert.Equal(t, ship.Name, decoded.Name)
	assert.Equal(t, ship.Position, decoded.Position)
	assert.Equal(t, ship.Energy, decoded.Energy)
}

func TestEntityUpdatePartialBits(t *testing.T) {
	ship := world.NewPlayerShip(1001, 1)
	ship.Energy = 42
	ship.Heading = 1.5

	fields, _ := FieldsFor(world.ObjectPlayerShip)
	var energyIdx, headingIdx int
	for i, f := range fields {
		switch f.Name {
		case "energy":
			energyIdx = i
		case "heading":
			headingIdx = i
		}
	}

	enc, err := WriteEntityUpdate(world.ObjectPlayerShip, ship.ID, ship, []int{energyIdx, headingIdx})
	require.NoError(t, err)

	u, err := ReadEntityUpdate(enc)
	require.NoError(t, err)
	assert.Len(t, u.Values, 2)
	assert.Equal(t, ship.Energy, u.Values["energy"])
	assert.Equal(t, ship.Heading, u.Values["heading"])
	_, hasName := u.Values["name"]
	assert.False(t, hasName)
}

func TestEntityBatchRoundTrip(t *testing.T) {
	var updates [][]byte
	ships := []*world.PlayerShip{
		world.NewPlayerShip(1000, 0),
		world.NewPlayerShip(1001, 1),
		world.NewPlayerShip(1002, 2),
	}
	for _, s := range ships {
		enc, err := WriteEntityUpdate(world.ObjectPlayerShip, s.ID, s, nil)
		require.NoError(t, err)
		updates = append(updates, enc)
	}
	batch := WriteEntityBatch(updates)
	assert.Equal(t, byte(0x00), batch[len(batch)-1])

	decoded, err := ReadEntityBatch(batch)
	require.NoError(t, err)
	require.Len(t, decoded, len(ships))
	for i, u := range decoded {
		assert.Equal(t, ships[i].ID, u.ID)
	}
}

func TestStringRoundTripUnicode(t *testing.T) {
	ship := world.NewPlayerShip(1000, 0)
	ship.Name = "ßé\U0001F680 tail" // BMP, surrogate pair, embedded null

	enc, err := WriteEntityUpdate(world.ObjectPlayerShip, ship.ID, ship, nil)
	require.NoError(t, err)
	u, err := ReadEntityUpdate(enc)
	require.NoError(t, err)
	assert.Equal(t, ship.Name, u.Values["name"])
}

func TestReadEntityUpdateUnknownKind(t *testing.T) {
	buf := []byte{0xEE, 0, 0, 0, 0}
	_, err := ReadEntityUpdate(buf)
	var unk *ErrUnknownKind
	assert.ErrorAs(t, err, &unk)
}
