package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_InvalidModeFallsBackToAuto(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, Mode("bogus"))

	// Non-TTY buffer: auto resolves to markdown.
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_EffectiveMode_Explicit(t *testing.T) {
	var buf bytes.Buffer
	for _, mode := range []Mode{ModeText, ModeMarkdown, ModeJSON} {
		r := NewRenderer(&buf, &buf, mode)
		assert.Equal(t, mode, r.EffectiveMode())
	}
}

func TestRenderer_HeaderAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	r.Header("Constraints")
	r.KeyValue("Total", "3")

	out := buf.String()
	assert.Contains(t, out, "## Constraints")
	assert.Contains(t, out, "- **Total**: 3")

	buf.Reset()
	r = NewRenderer(&buf, &buf, ModeText)
	r.Header("Constraints")
	r.KeyValue("Total", "3")

	out = buf.String()
	assert.Contains(t, out, "Constraints\n")
	assert.Contains(t, out, "Total: 3")
}

func TestRenderer_Table(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	r.Table([]string{"Unit", "Requires"}, [][]string{
		{"api", "core, storage"},
		{"core", ""},
	})

	out := buf.String()
	// Default style renders headers uppercase.
	assert.Contains(t, out, "UNIT")
	assert.Contains(t, out, "| api |")
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"units": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["units"])
}
