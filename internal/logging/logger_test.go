package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("profile saved", slog.String("user", "alice"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "profile saved", line["msg"])
	assert.Equal(t, "alice", line["user"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "warn", "text").Info("dropped")
	assert.Empty(t, buf.String())

	New(&buf, "warn", "text").Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}
