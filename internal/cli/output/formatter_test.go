package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

func TestFormatData(t *testing.T) {
	reg := protocol.NewRegistrationRequest("alice", []byte{0x01, 0x02}, []byte{0xff})

	tests := []struct {
		name     string
		format   Format
		expected string
	}{
		{"json", FormatJSON, "{\n  \"username\": \"alice\",\n  \"salt\": \"AQI=\",\n  \"verifier\": \"/w==\"\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatData(reg, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	got, err := FormatData(reg, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, got, "username: alice\n")

	_, err = FormatData(reg, Format("xml"))
	assert.Error(t, err)
}

func TestWrite_AppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]string{"a": "b"}, FormatJSON))
	assert.Equal(t, "{\n  \"a\": \"b\"\n}\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "yml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)
}
