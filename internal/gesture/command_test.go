package gesture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommand_MarshalShapes verifies each command type carries only its own fields.
func TestCommand_MarshalShapes(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{Move(1.5, -2), `{"type":"move","dx":1.5,"dy":-2}`},
		{Scroll(0, 3), `{"type":"scroll","dx":0,"dy":3}`},
		{Zoom(-4), `{"type":"zoom","delta":-4}`},
		{Click(ButtonRight, false), `{"type":"click","button":"right","press":false}`},
		{Key("esc"), `{"type":"key","key":"esc"}`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.cmd)
		require.NoError(t, err)
		assert.JSONEq(t, tc.want, string(data))
	}
}

// TestCommand_MarshalUnknownType verifies a zero command cannot be encoded.
func TestCommand_MarshalUnknownType(t *testing.T) {
	_, err := json.Marshal(Command{})
	assert.Error(t, err)
}

// TestCommand_UnmarshalValidates verifies the receiver rejects malformed commands.
func TestCommand_UnmarshalValidates(t *testing.T) {
	var c Command
	require.NoError(t, json.Unmarshal([]byte(`{"type":"click","button":"middle","press":true}`), &c))
	assert.Equal(t, Click(ButtonMiddle, true), c)

	for _, bad := range []string{
		`{"type":"warp"}`,
		`{"type":"click","button":"fourth","press":true}`,
		`{"type":"key"}`,
	} {
		assert.Error(t, json.Unmarshal([]byte(bad), &c), bad)
	}
}
