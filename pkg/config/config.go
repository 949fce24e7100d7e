// Package config loads renderer settings from RT_* environment variables
// and command line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds the render and server settings. Zero Width, Samples and Depth
// keep the scene's own defaults.
type Config struct {
	Scene        string `envconfig:"SCENE" default:"cornell-box"`
	Width        int    `envconfig:"WIDTH" default:"0"`
	Samples      int    `envconfig:"SAMPLES" default:"0"`
	Depth        int    `envconfig:"DEPTH" default:"0"`
	Seed         int64  `envconfig:"SEED" default:"0"`
	Workers      int    `envconfig:"WORKERS" default:"0"`
	TileSize     int    `envconfig:"TILE_SIZE" default:"32"`
	Format       string `envconfig:"FORMAT" default:"png"`
	OutputDir    string `envconfig:"OUTPUT_DIR" default:"output"`
	EarthTexture string `envconfig:"EARTH_TEXTURE" default:"assets/earthmap.jpg"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	Port         int    `envconfig:"PORT" default:"8080"`

	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:*,127.0.0.1:*"`
}

// Flags holds CLI flag values that override environment settings
type Flags struct {
	Scene     string
	Width     int
	Samples   int
	Depth     int
	Seed      int64
	Workers   int
	Format    string
	OutputDir string
	Port      int
}

// Load reads RT_* environment variables on top of the defaults
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("rt", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Resolve applies non-zero flags over the loaded values
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.Depth > 0 {
		c.Depth = flags.Depth
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Port > 0 {
		c.Port = flags.Port
	}
}

// Validate checks that the settings can be used to render
func (c *Config) Validate() error {
	if _, ok := scene.Lookup(c.Scene); !ok {
		return fmt.Errorf("config: unknown scene %q", c.Scene)
	}
	if c.Width < 0 || c.Samples < 0 || c.Depth < 0 || c.Workers < 0 || c.TileSize < 0 {
		return fmt.Errorf("config: sizes and counts must not be negative")
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// OutputFormat returns the parsed output format
func (c *Config) OutputFormat() (output.Format, error) {
	return output.ParseFormat(c.Format)
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Origins returns the WebSocket origin patterns
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// SceneOptions returns the scene overrides for scene.Build
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		Width:           c.Width,
		SamplesPerPixel: c.Samples,
		MaxDepth:        c.Depth,
		Seed:            c.Seed,
		EarthTexture:    c.EarthTexture,
	}
}
