package physvis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "physvis.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Render.FramesInFlight)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[window]
width = 800
height = 600

[render]
tint = [0.2, 0.4, 0.6, 1.0]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "physvis", cfg.Window.Title) // default kept
	assert.Equal(t, float32(60), cfg.Camera.FovY)

	tint, err := cfg.Render.TintColor()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.2, 0.4, 0.6, 1.0}, tint)
}

func TestNamedTintColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.TintName = "CornflowerBlue"

	tint, err := cfg.Render.TintColor()
	require.NoError(t, err)
	assert.InDelta(t, 100.0/255, tint.X(), 1e-6)
	assert.InDelta(t, 149.0/255, tint.Y(), 1e-6)
	assert.InDelta(t, 237.0/255, tint.Z(), 1e-6)
	assert.Equal(t, float32(1), tint.W())

	cfg.Render.TintName = "not-a-color"
	_, err = cfg.Render.TintColor()
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FovY = 180 }},
		{"negative near", func(c *Config) { c.Camera.Near = -1 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"too many frames", func(c *Config) { c.Render.FramesInFlight = 16 }},
		{"tint out of range", func(c *Config) { c.Render.Tint = [4]float32{2, 0, 0, 1} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestConfigWatcherDeliversUpdates(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[render]
tint_name = "red"
`)

	watcher, err := WatchConfig(path, NewNopLogger())
	require.NoError(t, err)
	defer watcher.Close()

	writeConfig(t, dir, `
[render]
tint_name = "blue"
`)

	select {
	case cfg := <-watcher.Updates():
		assert.Equal(t, "blue", cfg.Render.TintName)
	case <-time.After(3 * time.Second):
		t.Fatal("no config update delivered")
	}
}

func TestConfigWatcherSkipsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[render]
frames_in_flight = 2
`)

	watcher, err := WatchConfig(path, NewNopLogger())
	require.NoError(t, err)
	defer watcher.Close()

	writeConfig(t, dir, `
[render]
frames_in_flight = 99
`)

	select {
	case cfg := <-watcher.Updates():
		t.Fatalf("invalid config delivered: %+v", cfg.Render)
	case <-time.After(500 * time.Millisecond):
	}
}
