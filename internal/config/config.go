// Package config loads the codec's runtime profile configuration: named
// footprint profiles (super-block geometry) and logging defaults. The
// selected profile and the log level are overridable by environment
// variables or command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	globalConfig *Config
	configMutex  sync.Mutex
)

// Config holds the codec's runtime configuration.
type Config struct {
	DefaultProfile string             `yaml:"defaultProfile"`
	Profiles       map[string]Profile `yaml:"profiles"`
	Logging        LoggingConfig      `yaml:"logging"`
}

// Profile names one footprint configuration: either a single fixed
// super-block size, or a size-tiered table keyed by the larger of a
// texture's width/height (matching the historical thresholds the format
// was distilled from).
type Profile struct {
	// FootprintID is the radix-25 digit this profile writes into the
	// container header's configuration word.
	FootprintID uint32 `yaml:"footprintID"`

	// Width and Height are the fixed super-block size in blocks. Ignored
	// when Tiers is non-empty.
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`

	// Tiers, when present, picks a power-of-two footprint from the raw
	// texture extent instead of using a fixed Width/Height.
	Tiers []Tier `yaml:"tiers"`
}

// Tier is one entry of a size-tiered footprint table: extents strictly
// below UpperBound (in the larger of width/height) use Footprint.
type Tier struct {
	UpperBound uint32 `yaml:"upperBound"`
	Footprint  uint16 `yaml:"footprint"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`
}

// LoadOptions holds command-line override options.
type LoadOptions struct {
	Profile    string
	LogLevel   string
	ConfigFile string
}

// baselineYAML is the built-in profile set used when no config file is
// supplied. "baseline" matches the container format's default
// footprint_id = 0 (1024x1024 blocks per super-block). "tiered"
// reproduces the size-tiered footprint table as an opt-in alternative.
const baselineYAML = `
defaultProfile: baseline
profiles:
  baseline:
    footprintID: 0
    width: 1024
    height: 1024
  tiered:
    footprintID: 1
    tiers:
      - {upperBound: 64,   footprint: 16}
      - {upperBound: 128,  footprint: 64}
      - {upperBound: 256,  footprint: 128}
      - {upperBound: 512,  footprint: 256}
      - {upperBound: 4294967295, footprint: 512}
logging:
  level: info
`

// Load loads configuration from the built-in baseline profile set, with
// environment-variable overrides applied.
func Load() (*Config, error) {
	return LoadWithOverrides(LoadOptions{})
}

// LoadWithOverrides loads configuration, optionally from a YAML file at
// opts.ConfigFile, with command-line and environment overrides applied on
// top.
func LoadWithOverrides(opts LoadOptions) (*Config, error) {
	source := []byte(baselineYAML)
	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.ConfigFile, err)
		}
		source = data
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(source, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if opts.Profile != "" {
		cfg.DefaultProfile = opts.Profile
	} else if env := os.Getenv("TEXC_PROFILE"); env != "" {
		cfg.DefaultProfile = env
	}

	cfg.Logging.Level = getOverrideOrEnv(opts.LogLevel, "LOG_LEVEL", cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return cfg, nil
}

// GetGlobalConfig returns the most recently loaded configuration, or nil
// if Load/LoadWithOverrides has not been called.
func GetGlobalConfig() *Config {
	configMutex.Lock()
	defer configMutex.Unlock()
	return globalConfig
}

// Validate checks structural invariants of the loaded configuration.
func (c *Config) Validate() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	if _, ok := c.Profiles[c.DefaultProfile]; !ok {
		return fmt.Errorf("default profile %q not defined", c.DefaultProfile)
	}

	for name, p := range c.Profiles {
		if p.FootprintID > 24 {
			return fmt.Errorf("profile %q: footprintID %d exceeds the header's radix-25 field", name, p.FootprintID)
		}
		if len(p.Tiers) == 0 && (p.Width == 0 || p.Height == 0) {
			return fmt.Errorf("profile %q: width/height must be positive when no tiers are given", name)
		}
		for _, t := range p.Tiers {
			if t.Footprint == 0 {
				return fmt.Errorf("profile %q: tier footprint must be positive", name)
			}
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// Footprint resolves the super-block size (in blocks) this profile uses
// for a texture of the given raw width/height.
func (p Profile) Footprint(width, height uint32) (w, h uint16) {
	if len(p.Tiers) == 0 {
		return p.Width, p.Height
	}

	larger := width
	if height > larger {
		larger = height
	}

	for _, t := range p.Tiers {
		if larger < t.UpperBound {
			return t.Footprint, t.Footprint
		}
	}
	last := p.Tiers[len(p.Tiers)-1]
	return last.Footprint, last.Footprint
}

func getOverrideOrEnv(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// parseLevel maps a level name (or a numeric string) to its ordinal. Only
// this package's tests call it; it does not participate in YAML decoding.
func parseLevel(s string) (int, error) {
	switch s {
	case "debug":
		return 0, nil
	case "info":
		return 1, nil
	case "warn":
		return 2, nil
	case "error":
		return 3, nil
	default:
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
