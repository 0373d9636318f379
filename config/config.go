// Package config loads run settings from defaults, an optional YAML file,
// EUCHRESIM_* environment variables and command-line flags, in increasing
// priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/TiKevin83/EuchreSimulation/engine"
	"github.com/TiKevin83/EuchreSimulation/report"
	"github.com/TiKevin83/EuchreSimulation/simulation"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is prepended to environment variable names
const EnvPrefix = "EUCHRESIM"

// Config is the complete run configuration
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Output     OutputConfig     `mapstructure:"output"`
	Log        LogConfig        `mapstructure:"log"`
}

type SimulationConfig struct {
	Deals   int    `mapstructure:"deals"`
	Seed    uint64 `mapstructure:"seed"` // 0 = time-based
	Workers int    `mapstructure:"workers"`
	Mode    string `mapstructure:"mode"`
	AI      string `mapstructure:"ai"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"` // empty = stdout
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// flag name → config key
var flagKeys = map[string]string{
	"deals":     "simulation.deals",
	"seed":      "simulation.seed",
	"workers":   "simulation.workers",
	"mode":      "simulation.mode",
	"ai":        "simulation.ai",
	"format":    "output.format",
	"output":    "output.path",
	"log-level": "log.level",
	"dev-log":   "log.development",
}

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("deals", 100000, "Number of deals to simulate")
	fs.Uint64("seed", 0, "Random seed (0 = use current time)")
	fs.Int("workers", 0, "Number of worker goroutines (0 = auto-detect CPU count)")
	fs.String("mode", "dealer-calls", "Trump selection (dealer-calls, fixed-trump)")
	fs.String("ai", "heuristic", "Play policy (heuristic, random)")
	fs.String("format", "json", "Report format (json, yaml, text, flatbuffers)")
	fs.String("output", "", "Report file (default: stdout)")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.Bool("dev-log", false, "Human-readable development logging")
	fs.String("config", "", "YAML configuration file")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.deals", 100000)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.mode", engine.DealerCalls.String())
	v.SetDefault("simulation.ai", engine.HeuristicAI.String())
	v.SetDefault("output.format", string(report.FormatJSON))
	v.SetDefault("output.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load builds the configuration. configPath may be empty; fs may be nil.
// Only flags that were set on the command line override file and env values.
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that must not reach the simulator
func (c *Config) Validate() error {
	if c.Simulation.Deals <= 0 {
		return fmt.Errorf("%w: deals must be positive, got %d", ErrInvalidConfig, c.Simulation.Deals)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Simulation.Workers)
	}
	if _, ok := engine.ParseTrumpMode(c.Simulation.Mode); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Simulation.Mode)
	}
	if _, ok := engine.ParseAIPlayerType(c.Simulation.AI); !ok {
		return fmt.Errorf("%w: unknown ai %q", ErrInvalidConfig, c.Simulation.AI)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Options converts the simulation section into runner options. seed replaces
// a zero configured seed.
func (c *Config) Options(seed uint64) simulation.Options {
	mode, _ := engine.ParseTrumpMode(c.Simulation.Mode)
	ai, _ := engine.ParseAIPlayerType(c.Simulation.AI)
	if c.Simulation.Seed != 0 {
		seed = c.Simulation.Seed
	}
	return simulation.Options{
		NumDeals: c.Simulation.Deals,
		Seed:     seed,
		Mode:     mode,
		AIType:   ai,
		Workers:  c.Simulation.Workers,
	}
}

// Format returns the validated report format
func (c *Config) Format() report.Format {
	f, _ := report.ParseFormat(c.Output.Format)
	return f
}
