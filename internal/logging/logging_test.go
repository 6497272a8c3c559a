package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	require.NoError(t, err)

	logger.Debug("compared", zap.String("citing", "smith2020"))
	logger.Info("loaded")
	logger.Warn("skipping row without year", zap.Int("row", 3))

	out := buf.String()
	assert.NotContains(t, out, "compared")
	assert.NotContains(t, out, "loaded")
	assert.Contains(t, out, "skipping row without year")
	assert.Contains(t, out, "WARN")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Verbose: true, Output: &buf})
	require.NoError(t, err)

	logger.Debug("compared", zap.Float64("score", 93.5))
	assert.Contains(t, buf.String(), "compared")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: FormatJSON, Output: &buf})
	require.NoError(t, err)

	logger.Warn("no references section", zap.String("cite_id", "smith2020"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "smith2020", entry["cite_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}
