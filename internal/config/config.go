package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/san-kum/memtree/internal/geom"
	"github.com/san-kum/memtree/internal/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBackend   = "file"
	DefaultDataDir   = ".memtree"
	DefaultKey       = "mars_memories_2025"
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultMaxTokens = 256
	DefaultLogLevel  = "info"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Seed     int64         `yaml:"seed"`
	LogLevel string        `yaml:"log_level"`
	Storage  StorageConfig `yaml:"storage"`
	Insight  InsightConfig `yaml:"insight"`
	Audio    AudioConfig   `yaml:"audio"`
	Window   WindowConfig  `yaml:"window"`
	Scene    scene.Params  `yaml:"scene"`
	Geometry geom.Params   `yaml:"geometry"`
}

// StorageConfig selects where the project list lives. Backend is one of
// file, sqlite, valkey or memory.
type StorageConfig struct {
	Backend    string `yaml:"backend"`
	Dir        string `yaml:"dir"`
	Key        string `yaml:"key"`
	SQLitePath string `yaml:"sqlite_path"`
	ValkeyAddr string `yaml:"valkey_addr"`
}

type InsightConfig struct {
	Model     string        `yaml:"model"`
	MaxTokens int64         `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int64         `yaml:"cache_size"`
	// APIKey only ever comes from the environment.
	APIKey string `yaml:"-"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
	Bloom  bool   `yaml:"bloom"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Storage: StorageConfig{
			Backend:    DefaultBackend,
			Dir:        DefaultDataDir,
			Key:        DefaultKey,
			SQLitePath: "memtree.db",
			ValkeyAddr: "127.0.0.1:6379",
		},
		Insight: InsightConfig{
			Model:     DefaultModel,
			MaxTokens: DefaultMaxTokens,
			Timeout:   15 * time.Second,
			CacheSize: 1 << 20,
		},
		Audio:    AudioConfig{Enabled: true, Volume: 0.25},
		Window:   WindowConfig{Width: 1280, Height: 720, Title: "memtree", FPS: 60, Bloom: true},
		Scene:    scene.DefaultParams(),
		Geometry: geom.DefaultParams(),
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Overlay(path); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Overlay applies the YAML file at path on top of c. Keys missing from the
// file keep their current values.
func (c *Config) Overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Resolve layers the defaults, the named preset and the config file, in
// that order, so the file overrides the preset. Empty arguments are
// skipped. The result is not validated; callers apply flags first.
func Resolve(path, preset string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalid, preset, ListPresets())
	}
	if path != "" {
		if err := cfg.Overlay(path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads a .env file if one exists and applies the environment.
// A missing file is not an error.
func (c *Config) LoadEnv(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	c.ApplyEnv()
	return nil
}

// ApplyEnv copies recognised environment variables into the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
	if v := os.Getenv("MEMTREE_VALKEY_ADDR"); v != "" {
		c.Storage.ValkeyAddr = v
	}
	if v := os.Getenv("MEMTREE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("MEMTREE_DATA"); v != "" {
		c.Storage.Dir = v
	}
}

// Validate rejects values no component can work with. Geometry counts are
// deliberately unchecked: they only scale cost.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "valkey", "memory":
	default:
		return fmt.Errorf("%w: storage backend %q", ErrInvalid, c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: empty storage key", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// Rand returns the random source for scene layout. A zero seed draws a
// fresh layout every run.
func Rand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
