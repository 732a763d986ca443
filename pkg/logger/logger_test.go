package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "json")

	log.Debug("slot enabled", "slot", 3, "text", "cat", "err", errors.New("boom"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "debug", line["level"])
	require.Equal(t, "slot enabled", line["message"])
	require.Equal(t, float64(3), line["slot"])
	require.Equal(t, "cat", line["text"])
	require.Equal(t, "boom", line["err"])
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")

	log.Info("hidden")
	require.Zero(t, buf.Len())

	log.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestLoggerDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "not-a-level", "json")

	log.Debug("hidden")
	require.Zero(t, buf.Len())
	log.Info("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestLoggerIgnoresDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.Info("odd", "key")
	require.Contains(t, buf.String(), `"message":"odd"`)
	require.NotContains(t, buf.String(), `"key"`)
}

func TestNop(t *testing.T) {
	require.NotPanics(t, func() {
		Nop().Error("nothing", "a", 1)
	})
}
