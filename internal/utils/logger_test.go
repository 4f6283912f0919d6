package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "production", "warn")
	require.NoError(t, err)

	logger.Info("dropped")
	logger.With("course_id", "c1").Error("Failed to evaluate", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Failed to evaluate", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "c1", entry["course_id"])
}

func TestNewLogger_DevelopmentText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "development", "debug")
	require.NoError(t, err)

	logger.Debug("evaluating", "rules", 2)
	assert.Contains(t, buf.String(), "rules=2")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "production", "verbose")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("ERROR")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, lvl)

	lvl, err = ParseLevel(" debug ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
