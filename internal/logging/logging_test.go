package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"WARNING", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestJSONLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := JSON("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("trade_id", "T1").Float64("profit_loss", -250).Msg("capital changed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "capital changed", entry["message"])
	assert.Equal(t, "T1", entry["trade_id"])
	assert.Equal(t, -250.0, entry["profit_loss"])
}

func TestConsoleWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New("info", &buf).Info().Str("result", "win").Msg("trade added")
	assert.Contains(t, buf.String(), "trade added")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	// must not panic or write anywhere
	Discard().Error().Msg("dropped")
}
