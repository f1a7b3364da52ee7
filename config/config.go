// Package config loads photowall settings from a YAML file, a .env file and
// environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/photowall/audio"
	"github.com/lixenwraith/photowall/catalog"
	"github.com/lixenwraith/photowall/constants"
)

// Config holds all photowall configuration
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Display DisplayConfig `yaml:"display"`
	Wall    WallConfig    `yaml:"wall"`
	Audio   audio.Config  `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig configures the photo search
type CatalogConfig struct {
	APIKey   string        `yaml:"api_key"`
	Endpoint string        `yaml:"endpoint"`
	CacheTTL string        `yaml:"cache_ttl"`
	Query    catalog.Query `yaml:"query"`
}

// DisplayConfig configures the terminal output
type DisplayConfig struct {
	FPS    int    `yaml:"fps"`
	Glyphs string `yaml:"glyphs"` // quadrant, half
}

// WallConfig configures tile loading and retention
type WallConfig struct {
	BatchSize  int    `yaml:"batch_size"`
	BatchDelay string `yaml:"batch_delay"`
	EvictAfter uint64 `yaml:"evict_after_frames"`
}

// LoggingConfig configures the debug log file
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Endpoint: catalog.DefaultEndpoint,
			CacheTTL: constants.CatalogCacheTTL.String(),
			Query:    catalog.DefaultQuery(),
		},
		Display: DisplayConfig{
			FPS:    int(time.Second / constants.FrameUpdateInterval),
			Glyphs: "quadrant",
		},
		Wall: WallConfig{
			BatchSize:  constants.LoadBatchSize,
			BatchDelay: constants.LoadBatchDelay.String(),
			EvictAfter: constants.EvictAfterFrames,
		},
		Audio: audio.DefaultConfig(),
		Logging: LoggingConfig{
			Level:      "debug",
			File:       filepath.Join("logs", "photowall.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults and applies environment overrides
// A missing file is not an error
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment; existing variables win and missing files are skipped
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv applies environment variable overrides
// Malformed numeric or boolean values are ignored
func (c *Config) ApplyEnv() {
	if key := os.Getenv("PIXABAY_API_KEY"); key != "" {
		c.Catalog.APIKey = key
	}
	if q := os.Getenv("PHOTOWALL_QUERY"); q != "" {
		c.Catalog.Query.Q = q
	}
	if v := os.Getenv("PHOTOWALL_FPS"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil {
			c.Display.FPS = fps
		}
	}
	if v := os.Getenv("PHOTOWALL_AUDIO"); v != "" {
		switch strings.ToLower(v) {
		case "off", "no":
			c.Audio.Enabled = false
		case "on", "yes":
			c.Audio.Enabled = true
		default:
			if b, err := strconv.ParseBool(v); err == nil {
				c.Audio.Enabled = b
			}
		}
	}
}

// ValidGlyphs lists the supported glyph modes
var ValidGlyphs = []string{"quadrant", "half"}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Display.FPS < 1 || c.Display.FPS > 120 {
		return fmt.Errorf("display.fps out of range [1, 120]: %d", c.Display.FPS)
	}

	validGlyphs := false
	for _, g := range ValidGlyphs {
		if c.Display.Glyphs == g {
			validGlyphs = true
			break
		}
	}
	if !validGlyphs {
		return fmt.Errorf("invalid display.glyphs: %s (valid: %v)", c.Display.Glyphs, ValidGlyphs)
	}

	if pp := c.Catalog.Query.PerPage; pp < 3 || pp > 200 {
		return fmt.Errorf("catalog.query.per_page out of range [3, 200]: %d", pp)
	}
	if c.Wall.BatchSize < 1 {
		return fmt.Errorf("wall.batch_size must be positive: %d", c.Wall.BatchSize)
	}
	if _, err := time.ParseDuration(c.Wall.BatchDelay); err != nil {
		return fmt.Errorf("invalid wall.batch_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.Catalog.CacheTTL); err != nil {
		return fmt.Errorf("invalid catalog.cache_ttl: %w", err)
	}
	if v := c.Audio.MasterVolume; v < 0 || v > 1 {
		return fmt.Errorf("audio.master_volume out of range [0, 1]: %g", v)
	}
	return nil
}

// FrameInterval returns the frame period for the configured FPS
func (c *Config) FrameInterval() time.Duration {
	if c.Display.FPS <= 0 {
		return constants.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.Display.FPS)
}

// GetBatchDelay returns the loader batch spacing as a duration
func (c *Config) GetBatchDelay() time.Duration {
	d, err := time.ParseDuration(c.Wall.BatchDelay)
	if err != nil {
		return constants.LoadBatchDelay
	}
	return d
}

// GetCacheTTL returns the catalog cache TTL as a duration
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Catalog.CacheTTL)
	if err != nil {
		return constants.CatalogCacheTTL
	}
	return d
}
