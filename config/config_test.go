package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/gridedit/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, geom.DefaultZoom, cfg.Editor.GetZoom())
	w, h := cfg.Editor.GetWindowSize()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 800, h)
	assert.Equal(t, "prefabs", cfg.Paths.GetPrefabDir())
	assert.Equal(t, "levels", cfg.Paths.GetMapsDir())
	assert.Equal(t, ".autosave", cfg.Autosave.GetDir())
	assert.Equal(t, 30*time.Second, cfg.Autosave.GetInterval())
	assert.Equal(t, 72*time.Hour, cfg.Autosave.GetRetention())
	assert.False(t, cfg.Autosave.Disabled)
}

func TestLoadFileAndEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridedit.yaml")
	body := `
editor:
  zoom: 16
paths:
  prefabs: defs
autosave:
  disabled: true
  interval_seconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv(EnvConfig, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Editor.GetZoom())
	assert.Equal(t, "defs", cfg.Paths.GetPrefabDir())
	assert.True(t, cfg.Autosave.Disabled)
	assert.Equal(t, 5*time.Second, cfg.Autosave.GetInterval())
	assert.Equal(t, 72*time.Hour, cfg.Autosave.GetRetention())
}

func TestEnvFallbackPriority(t *testing.T) {
	t.Setenv("GRIDEDIT_ZOOM", "64")
	t.Setenv("GRIDEDIT_MAPS", "/tmp/maps")
	t.Setenv("GRIDEDIT_AUTOSAVE_RETENTION", "not-a-number")

	cfg := &Config{}
	assert.Equal(t, 64, cfg.Editor.GetZoom())
	assert.Equal(t, "/tmp/maps", cfg.Paths.GetMapsDir())
	assert.Equal(t, 72*time.Hour, cfg.Autosave.GetRetention())

	cfg.Editor.Zoom = 8
	cfg.Paths.Maps = "here"
	assert.Equal(t, 8, cfg.Editor.GetZoom())
	assert.Equal(t, "here", cfg.Paths.GetMapsDir())

	cfg.Editor.Zoom = 4000
	assert.Equal(t, geom.MaxZoom, cfg.Editor.GetZoom())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
