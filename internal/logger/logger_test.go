package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestSetupWriter_JSON(t *testing.T) {
	restoreLevel(t)

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(LogConfig{Level: "debug", Format: "json"}, &buf))

	l := WithComponent("detect")
	l.Debug().Int("findings", 3).Msg("done")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "detect", line["component"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "done", line["message"])
	assert.EqualValues(t, 3, line["findings"])
}

func TestSetupWriter_LevelFilters(t *testing.T) {
	restoreLevel(t)

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(LogConfig{Level: "warn", Format: "json"}, &buf))
	l := WithComponent("inject")
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupWriter_Errors(t *testing.T) {
	restoreLevel(t)

	assert.Error(t, SetupWriter(LogConfig{Level: "loud"}, &bytes.Buffer{}))
	assert.Error(t, SetupWriter(LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}))
}

func TestSetup_File(t *testing.T) {
	restoreLevel(t)

	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = filepath.Join(t.TempDir(), "auditsim.log")
	closeFn, err := Setup(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Logger = zerolog.New(io.Discard) })

	log.Info().Msg("written to file")
	require.NoError(t, closeFn())
	assert.Error(t, closeFn(), "second close reports the file is already closed")

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	cfg.Output = filepath.Join(t.TempDir(), "missing", "auditsim.log")
	_, err = Setup(cfg)
	assert.Error(t, err)
}

func TestSetup_StandardStreamsCloseIsNoop(t *testing.T) {
	restoreLevel(t)
	t.Cleanup(func() { log.Logger = zerolog.New(io.Discard) })

	cfg := DefaultConfig()
	cfg.Output = "stdout"
	closeFn, err := Setup(cfg)
	require.NoError(t, err)
	assert.NoError(t, closeFn())
}
