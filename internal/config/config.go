// Package config loads the process configuration (log levels, PRNG seed,
// translator form) from an optional YAML file over built-in defaults, the
// same load/default pattern chaos-utils' pkg/config uses. The FX domain
// tables, the network-class table and the GA bounds stay compile-time
// constants of their own packages and are not read from the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the core's tunable surface: PRNG seeding, logging, and the name
// of an address-translator form (mask-based canonical, or legacy class-based
// for historical comparisons — spec.md §9 "Class table vs mask table"; see
// TranslatorConfig for what the form setting does).
type Config struct {
	Log        LogConfig        `yaml:"log"`
	RNG        RNGConfig        `yaml:"rng"`
	Translator TranslatorConfig `yaml:"translator"`
	GA         GAConfig         `yaml:"ga"`
}

// LogConfig controls internal/mlog's base level and per-component
// overrides.
type LogConfig struct {
	Level      string            `yaml:"level"`
	Components map[string]string `yaml:"components"`
}

// RNGConfig seeds the process-wide PRNG (spec.md §5: "callers seed it for
// reproducibility").
type RNGConfig struct {
	Seed int64 `yaml:"seed"`
}

// TranslatorConfig names mask-based (canonical) or class-based (legacy)
// address translation. Validate checks the value; nothing in this module
// reads it otherwise, and cmd/wlgen and internal/gaadapter always build the
// mask-based translator (xlate.New).
type TranslatorConfig struct {
	// Form is "mask" (default, canonical) or "legacy" (class-based,
	// historical reference only — spec.md §9).
	Form string `yaml:"form"`
}

// GAConfig mirrors the fixed population bounds of spec.md §6
// "Configuration": "fixed GA bounds (net count 1-10, node count 1-100, flow
// count 1-10, texp in [0,100))". The fields are tagged yaml:"-", so Load
// never reads them from a file and Save never writes them; DefaultConfig
// fills them in. internal/genome uses its own constants for these bounds and
// does not consult this struct.
type GAConfig struct {
	MinNets, MaxNets   int     `yaml:"-"`
	MinNodes, MaxNodes int     `yaml:"-"`
	MinFlows, MaxFlows int     `yaml:"-"`
	MaxTexp            float64 `yaml:"-"`
}

// DefaultConfig returns the core's default configuration: info logging, an
// unseeded (zero, meaning "use process start entropy") RNG, and the
// canonical mask-based translator.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		RNG: RNGConfig{Seed: 0},
		Translator: TranslatorConfig{
			Form: "mask",
		},
		GA: GAConfig{
			MinNets: 1, MaxNets: 10,
			MinNodes: 1, MaxNodes: 100,
			MinFlows: 1, MaxFlows: 10,
			MaxTexp: 100,
		},
	}
}

// Load reads configuration from a YAML file, falling back to DefaultConfig
// if path is empty or the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration back out as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks the loaded configuration is usable.
func (c *Config) Validate() error {
	switch c.Translator.Form {
	case "mask", "legacy":
	default:
		return fmt.Errorf("config: translator.form must be \"mask\" or \"legacy\", got %q", c.Translator.Form)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q not recognized", c.Log.Level)
	}

	return nil
}
