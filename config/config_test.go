package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Wires.Opacity)
	assert.Equal(t, 0.5, cfg.Wires.Tension)
	assert.Equal(t, 0, cfg.Layout.Rows)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Layout.Rows = 3
	cfg.Wires.Opacity = 0.7
	cfg.Wires.Tension = 0.9
	cfg.UI.LastPatch = "drone"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRestoresOpacity(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// A config saved with opacity 0 omits the field; loading must not
	// come back with invisible cables.
	cfg := DefaultConfig()
	cfg.Wires.Opacity = 0
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.0, loaded.Wires.Opacity)
}
