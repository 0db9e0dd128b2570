package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.DebugLevel, false)

	log.Debug("shape re-resolved by name", "name", "Box A")
	log.Warn("stale host reference", "op", "shape.Bounds", "attempt", 2)
	log.Error("command failed", errors.New("boom"), "command", "align")
	log.Info("odd", "k")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "Box A", lines[0]["name"])
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, float64(2), lines[1]["attempt"])
	assert.Equal(t, "boom", lines[2]["error"])
	assert.Equal(t, "align", lines[2]["command"])
	assert.Equal(t, "k", lines[3]["extra"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, ParseLevel("warn"), false)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, zerolog.InfoLevel, true).Info("glass card drawn", "slide", 1)
	assert.Contains(t, buf.String(), "glass card drawn")
	assert.Contains(t, buf.String(), "slide=1")
}
