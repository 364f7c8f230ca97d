package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientCommandRoundTrip(t *testing.T) {
	payload := EncodeClientCommand(CmdSetEnergy, map[string]any{
		"systemIndex": int32(2),
		"value":       float32(1.5),
	})
	subtype, params, err := ParseClientCommand(payload)
	require.NoError(t, err)
	assert.Equal(t, CmdSetEnergy, subtype)
	assert.Equal(t, int32(2), params["systemIndex"])
	assert.Equal(t, float32(1.5), params["value"])
}

func TestParseClientCommandNoParams(t *testing.T) {
	payload := EncodeClientCommand(CmdReady, nil)
	subtype, params, err := ParseClientCommand(payload)
	require.NoError(t, err)
	assert.Equal(t, CmdReady, subtype)
	assert.Empty(t, params)
}

func TestCommandNameSubtypeSymmetry(t *testing.T) {
	for subtype, name := range CommandNames {
		got, ok := SubtypeForName(name)
		require.True(t, ok)
		assert.Equal(t, subtype, got)
	}
}
