package config

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.Nil(t, cfg.Validate())
}

func TestLoadBytesOverridesDefaults(t *testing.T) {
	data := []byte("viewport:\n  width: 1024\n  height: 768\nmaxUndoDepth: 50\n")
	cfg, err := LoadBytes(data)
	require.Nil(t, err)
	assert.Equals(t, cfg.Viewport.Width, 1024.0, "viewport width")
	assert.Equals(t, cfg.Viewport.Height, 768.0, "viewport height")
	assert.Equals(t, cfg.MaxUndoDepth, 50, "max undo depth")
	assert.Truef(t, cfg.Format.DedupUse, "unset format fields should keep Default()'s values")
}

func TestLoadBytesRejectsInvalidViewport(t *testing.T) {
	data := []byte("viewport:\n  width: 0\n  height: 600\n")
	_, err := LoadBytes(data)
	require.NotNil(t, err)
}

func TestLoadBytesRejectsInvalidLintSeverity(t *testing.T) {
	data := []byte("lintSeverity:\n  unused-style: critical\n")
	_, err := LoadBytes(data)
	require.NotNil(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/fd-config.yaml")
	require.NotNil(t, err)
}
