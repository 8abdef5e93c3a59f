// Package config loads the integrate CLI configuration from TOML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "INTEGRATE_CONFIG"

// Config holds the complete CLI configuration
type Config struct {
	Log        LogConfig        `toml:"log" json:"log" yaml:"log"`
	Riemann    RiemannConfig    `toml:"riemann" json:"riemann" yaml:"riemann"`
	MonteCarlo MonteCarloConfig `toml:"montecarlo" json:"montecarlo" yaml:"montecarlo"`
	Study      StudyConfig      `toml:"study" json:"study" yaml:"study"`
	Output     OutputConfig     `toml:"output" json:"output" yaml:"output"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `toml:"level" json:"level" yaml:"level"`
	TimeFormat string `toml:"time_format" json:"time_format" yaml:"time_format"`
	NoColor    bool   `toml:"no_color" json:"no_color" yaml:"no_color"`
}

// RiemannConfig holds rectangle-rule settings
type RiemannConfig struct {
	Steps int `toml:"steps" json:"steps" yaml:"steps"`
}

// MonteCarloConfig holds hit-or-miss settings
type MonteCarloConfig struct {
	Tests      int    `toml:"tests" json:"tests" yaml:"tests"`
	RangeSteps int    `toml:"range_steps" json:"range_steps" yaml:"range_steps"`
	Parallel   bool   `toml:"parallel" json:"parallel" yaml:"parallel"`
	Seed       uint64 `toml:"seed" json:"seed" yaml:"seed"` // 0 = unseeded
}

// StudyConfig holds convergence study settings
type StudyConfig struct {
	Levels  []int    `toml:"levels" json:"levels" yaml:"levels"`
	Repeats int      `toml:"repeats" json:"repeats" yaml:"repeats"`
	Workers int      `toml:"workers" json:"workers" yaml:"workers"`
	Timeout Duration `toml:"timeout" json:"timeout" yaml:"timeout"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `toml:"format" json:"format" yaml:"format"` // text, json or yaml
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromEnv loads the file named by INTEGRATE_CONFIG, else the first
// default location that exists, else the built-in defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	defaultPaths := []string{
		"./integrate.toml",
		filepath.Join(os.Getenv("HOME"), ".config/integrate/config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.TimeFormat == "" {
		c.Log.TimeFormat = "15:04:05"
	}

	if c.Riemann.Steps <= 0 {
		c.Riemann.Steps = 10000
	}

	if c.MonteCarlo.Tests <= 0 {
		c.MonteCarlo.Tests = 10000
	}
	if c.MonteCarlo.RangeSteps <= 0 {
		c.MonteCarlo.RangeSteps = 1000
	}

	if len(c.Study.Levels) == 0 {
		c.Study.Levels = []int{100, 1000, 10000, 100000}
	}
	if c.Study.Repeats <= 0 {
		c.Study.Repeats = 8
	}
	if c.Study.Timeout.Duration <= 0 {
		c.Study.Timeout.Duration = 5 * time.Minute
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
}

// Validate rejects settings that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output format %q (want text, json or yaml)", c.Output.Format)
	}

	for _, n := range c.Study.Levels {
		if n <= 0 {
			return fmt.Errorf("study level %d must be positive", n)
		}
	}

	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
