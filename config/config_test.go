package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/TiKevin83/EuchreSimulation/engine"
	"github.com/TiKevin83/EuchreSimulation/report"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "euchresim.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.Deals != 100000 {
		t.Errorf("Expected 100000 deals, got %d", cfg.Simulation.Deals)
	}
	if cfg.Simulation.Mode != "dealer-calls" || cfg.Simulation.AI != "heuristic" {
		t.Errorf("Unexpected defaults: %+v", cfg.Simulation)
	}
	if cfg.Format() != report.FormatJSON || cfg.Log.Level != "info" {
		t.Errorf("Unexpected output/log defaults: %+v %+v", cfg.Output, cfg.Log)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
simulation:
  deals: 2500
  seed: 99
  workers: 3
  mode: fixed-trump
  ai: random
output:
  format: yaml
  path: out.yaml
log:
  level: debug
  development: true
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	opts := cfg.Options(1)
	if opts.NumDeals != 2500 || opts.Seed != 99 || opts.Workers != 3 {
		t.Errorf("Unexpected options %+v", opts)
	}
	if opts.Mode != engine.FixedTrump || opts.AIType != engine.RandomAI {
		t.Errorf("Unexpected mode/ai %s/%s", opts.Mode, opts.AIType)
	}
	if cfg.Format() != report.FormatYAML || cfg.Output.Path != "out.yaml" {
		t.Errorf("Unexpected output %+v", cfg.Output)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("Unexpected log %+v", cfg.Log)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero deals", "simulation:\n  deals: 0\n"},
		{"negative workers", "simulation:\n  workers: -2\n"},
		{"unknown mode", "simulation:\n  mode: bidding\n"},
		{"unknown ai", "simulation:\n  ai: mcts\n"},
		{"unknown format", "output:\n  format: xml\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body), nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("A read failure is not a validation failure")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  deals: 500\n")
	t.Setenv("EUCHRESIM_SIMULATION_DEALS", "750")
	t.Setenv("EUCHRESIM_OUTPUT_FORMAT", "text")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.Deals != 750 {
		t.Errorf("Expected env to win with 750 deals, got %d", cfg.Simulation.Deals)
	}
	if cfg.Format() != report.FormatText {
		t.Errorf("Expected text format from env, got %s", cfg.Format())
	}
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  deals: 500\n  mode: fixed-trump\n")
	t.Setenv("EUCHRESIM_SIMULATION_DEALS", "750")

	cfg, err := Load(path, newFlags(t, "--deals=42", "--seed=7", "--log-level=warn"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.Deals != 42 || cfg.Simulation.Seed != 7 {
		t.Errorf("Expected flags to win, got %+v", cfg.Simulation)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected warn log level, got %s", cfg.Log.Level)
	}
	// Flags left at their defaults do not mask the file
	if cfg.Simulation.Mode != "fixed-trump" {
		t.Errorf("Unset mode flag overrode the file: %s", cfg.Simulation.Mode)
	}
}

func TestOptionsSeed(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Options(1234).Seed; got != 1234 {
		t.Errorf("Expected the fallback seed, got %d", got)
	}
	cfg.Simulation.Seed = 5
	if got := cfg.Options(1234).Seed; got != 5 {
		t.Errorf("Expected the configured seed, got %d", got)
	}
}
