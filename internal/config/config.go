package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "MOVETANK_CONFIG"

// Config 应用配置
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Playback PlaybackConfig `toml:"playback"`
	Viewport ViewportConfig `toml:"viewport"`
	Glyph    GlyphConfig    `toml:"glyph"`
	Network  NetworkConfig  `toml:"network"`
}

// ServerConfig controls the HTTP surface
type ServerConfig struct {
	Port      string `toml:"port"`
	JWTSecret string `toml:"jwt_secret"` // Empty disables auth on control routes
	RateLimit int    `toml:"rate_limit"` // Control requests per second and client, 0 disables
}

// DatabaseConfig locates the dataset store
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PlaybackConfig controls the draw loop
type PlaybackConfig struct {
	DelayMS  int    `toml:"delay_ms"` // Pause between two frames
	Strategy string `toml:"strategy"` // "glyph" or "network"
}

// Delay returns the pause between two frames
func (p PlaybackConfig) Delay() time.Duration {
	return time.Duration(p.DelayMS) * time.Millisecond
}

// ViewportConfig is the size of the drawing area in pixels
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin float64 `toml:"margin"`
}

// GlyphConfig sizes the glyph variant
type GlyphConfig struct {
	AnimalScale      float64 `toml:"animal_scale"`       // Inner circle radius
	OuterRing        float64 `toml:"outer_ring"`         // Outer radius of a single animal's arcs
	OuterRingCluster float64 `toml:"outer_ring_cluster"` // Arc ring width around clusters
	NodeSize         float64 `toml:"node_size"`          // Radius of nodes inside clusters
	ArcWidth         float64 `toml:"arc_width"`          // Default angular bin width in radians
	FadeFrames       int     `toml:"fade_frames"`        // Frames an exiting cluster stays visible
}

// NetworkConfig sizes the network variant
type NetworkConfig struct {
	AnimalScale float64 `toml:"animal_scale"` // Node radius
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: ":8080", RateLimit: 50},
		Database: DatabaseConfig{Path: "./data/movetank.db"},
		Playback: PlaybackConfig{DelayMS: 100, Strategy: "glyph"},
		Viewport: ViewportConfig{Width: 800, Height: 600, Margin: 10},
		Glyph: GlyphConfig{
			AnimalScale:      3,
			OuterRing:        10,
			OuterRingCluster: 8,
			NodeSize:         1.5,
			ArcWidth:         0.2,
			FadeFrames:       1,
		},
		Network: NetworkConfig{AnimalScale: 10},
	}
}

// Load 加载配置
// Defaults are overlaid by the TOML file at path (or $MOVETANK_CONFIG) and
// then by the PORT, DB_PATH, JWT_SECRET and MOVETANK_DELAY_MS variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Server.JWTSecret = secret
	}
	if delay := os.Getenv("MOVETANK_DELAY_MS"); delay != "" {
		ms, err := strconv.Atoi(delay)
		if err != nil {
			return nil, fmt.Errorf("invalid MOVETANK_DELAY_MS %q: %w", delay, err)
		}
		cfg.Playback.DelayMS = ms
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the renderers depend on
func (c *Config) Validate() error {
	var errs []error
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	if c.Playback.DelayMS < 0 {
		errs = append(errs, errors.New("playback.delay_ms must not be negative"))
	}
	if c.Viewport.Width <= 2*c.Viewport.Margin || c.Viewport.Height <= 2*c.Viewport.Margin {
		errs = append(errs, errors.New("viewport must be larger than twice its margin"))
	}
	if c.Glyph.ArcWidth <= 0 {
		errs = append(errs, errors.New("glyph.arc_width must be positive"))
	}
	if c.Glyph.AnimalScale <= 0 || c.Glyph.OuterRing <= 0 {
		errs = append(errs, errors.New("glyph radii must be positive"))
	}
	if c.Glyph.FadeFrames < 0 {
		errs = append(errs, errors.New("glyph.fade_frames must not be negative"))
	}
	return errors.Join(errs...)
}
