package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "json")

	logger.Debug("hidden")
	logger.Info("provider selected", "provider", "local")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "provider selected", entry["message"])
	assert.Equal(t, "local", entry["provider"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug, "console")

	logger.Debug("retrying request", "attempt", 1)
	assert.Contains(t, buf.String(), "retrying request")
	assert.Contains(t, buf.String(), "attempt=1")
}
