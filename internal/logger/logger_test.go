package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dushixiang/ejpatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), `"run"`)
}

func TestNewWithWriterInvalidLevel(t *testing.T) {
	_, err := NewWithWriter(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewWritesRotatingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ejpatch.log")
	log, err := NewWithWriter(config.LogConfig{Level: "info", Filename: filename, MaxSize: 1}, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info("patched")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "patched", entry["msg"])
	assert.NotEmpty(t, entry["run"])
}
