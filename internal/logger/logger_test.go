package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	err := Setup(LogConfig{Level: "loud", Format: "json", Output: "stderr"})
	assert.Error(t, err)
}

func TestSetupJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdrd.log")
	require.NoError(t, Setup(LogConfig{Level: "debug", Format: "json", TimeFormat: time.RFC3339, Output: path}))
	t.Cleanup(func() { _ = Setup(DefaultConfig()) })

	log := WithRequestID("run-1").With().Str("component", "orchestrator").Logger()
	log.Info().Int("pages", 3).Msg("Report saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "run-1", entry["request_id"])
	assert.Equal(t, "orchestrator", entry["component"])
	assert.Equal(t, "Report saved", entry["message"])
	assert.EqualValues(t, 3, entry["pages"])
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestDefaultConfigWritesToStderr(t *testing.T) {
	assert.Equal(t, "stderr", DefaultConfig().Output)
	require.NoError(t, Setup(DefaultConfig()))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
