// Package config loads the runtime configuration of the demo agent from YAML
// or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/comalice/behaviortreex/arena"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the full runtime configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" toml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler" toml:"scheduler"`
	Arena     ArenaConfig     `yaml:"arena" toml:"arena"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console or json
}

type SchedulerConfig struct {
	TickRate time.Duration `yaml:"tick_rate" toml:"tick_rate"`
	MaxTicks uint64        `yaml:"max_ticks" toml:"max_ticks"`
}

type ArenaConfig struct {
	Capacity int `yaml:"capacity" toml:"capacity"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Addr    string `yaml:"addr" toml:"addr"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Scheduler: SchedulerConfig{
			TickRate: 100 * time.Millisecond,
			MaxTicks: 1000,
		},
		Arena: ArenaConfig{
			Capacity: arena.DefaultCapacity,
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

// Load reads path, picking the format from its extension, applies the
// values over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in format ("yaml", "yml" or "toml") over Default and
// validates the result.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("yaml decode: %w", err)
		}
	case "toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("toml decode: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("toml: unknown key %q", undecoded[0].String())
		}
	default:
		return Config{}, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges:
// - log level known to zerolog, format console or json
// - non-negative tick rate
// - arena capacity holding at least one node record
// - a listen address when metrics are enabled
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: want console or json", c.Log.Format)
	}
	if c.Scheduler.TickRate < 0 {
		return fmt.Errorf("scheduler tick_rate %s is negative", c.Scheduler.TickRate)
	}
	if c.Arena.Capacity < arena.NodeSize {
		return fmt.Errorf("arena capacity %d is below one node record (%d bytes)", c.Arena.Capacity, arena.NodeSize)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics enabled without addr")
	}
	return nil
}
