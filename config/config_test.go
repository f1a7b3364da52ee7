package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/photowall/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PIXABAY_API_KEY", "PHOTOWALL_QUERY", "PHOTOWALL_FPS", "PHOTOWALL_AUDIO"} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "city", cfg.Catalog.Query.Q)
	assert.Equal(t, 30, cfg.Display.FPS)
	assert.Equal(t, "quadrant", cfg.Display.Glyphs)
	assert.Equal(t, constants.LoadBatchSize, cfg.Wall.BatchSize)
	assert.Equal(t, constants.LoadBatchDelay, cfg.GetBatchDelay())
	assert.Equal(t, constants.CatalogCacheTTL, cfg.GetCacheTTL())
	assert.True(t, cfg.Audio.Enabled)
	assert.False(t, cfg.Logging.Enabled)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "photowall.yaml")

	cfg := Default()
	cfg.Catalog.APIKey = "file-key"
	cfg.Catalog.Query.Q = "mountains"
	cfg.Catalog.Query.Colors = "blue"
	cfg.Display.Glyphs = "half"
	cfg.Audio.MasterVolume = 0.25
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "photowall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  fps: 60\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Display.FPS)
	assert.Equal(t, "quadrant", cfg.Display.Glyphs)
	assert.Equal(t, "city", cfg.Catalog.Query.Q)
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [unterminated"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIXABAY_API_KEY", "env-key")
	t.Setenv("PHOTOWALL_QUERY", "forest")
	t.Setenv("PHOTOWALL_FPS", "45")
	t.Setenv("PHOTOWALL_AUDIO", "off")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "env-key", cfg.Catalog.APIKey)
	assert.Equal(t, "forest", cfg.Catalog.Query.Q)
	assert.Equal(t, 45, cfg.Display.FPS)
	assert.False(t, cfg.Audio.Enabled)

	t.Setenv("PHOTOWALL_FPS", "fast")
	t.Setenv("PHOTOWALL_AUDIO", "1")
	cfg.ApplyEnv()
	assert.Equal(t, 45, cfg.Display.FPS, "malformed value ignored")
	assert.True(t, cfg.Audio.Enabled)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PHOTOWALL_QUERY=ocean\n"), 0644))

	// t.Setenv("", ...) above registered cleanup; unset so godotenv may fill it
	require.NoError(t, os.Unsetenv("PHOTOWALL_QUERY"))
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "ocean", os.Getenv("PHOTOWALL_QUERY"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ocean", cfg.Catalog.Query.Q)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps zero", func(c *Config) { c.Display.FPS = 0 }},
		{"fps too high", func(c *Config) { c.Display.FPS = 500 }},
		{"glyphs", func(c *Config) { c.Display.Glyphs = "braille" }},
		{"per page", func(c *Config) { c.Catalog.Query.PerPage = 1 }},
		{"batch size", func(c *Config) { c.Wall.BatchSize = 0 }},
		{"batch delay", func(c *Config) { c.Wall.BatchDelay = "soon" }},
		{"cache ttl", func(c *Config) { c.Catalog.CacheTTL = "forever" }},
		{"volume", func(c *Config) { c.Audio.MasterVolume = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
