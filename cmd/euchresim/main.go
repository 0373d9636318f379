// Package main provides the euchresim CLI for Monte-Carlo estimation of Euchre
// card strength and dealer-call outcomes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TiKevin83/EuchreSimulation/config"
	"github.com/TiKevin83/EuchreSimulation/report"
	"github.com/TiKevin83/EuchreSimulation/simulation"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the exit code; main is the only caller of os.Exit so the
// deferred logger sync always runs.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("euchresim", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	showVersion := fs.Bool("version", false, "Show version information")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "euchresim %s (built %s)\n", Version, BuildTime)
		return 0
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 2
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	seed := uint64(time.Now().UnixNano())
	opts := cfg.Options(seed)
	printBanner(stderr, cfg, opts)

	// Cancel the run on SIGINT/SIGTERM; shards stop at their next check
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := simulation.NewRunner(logger)
	result, err := runner.Run(ctx, opts)
	if err != nil {
		var dealErr *simulation.DealError
		if errors.As(err, &dealErr) {
			fmt.Fprintf(stderr, "Simulation failed at deal %d; replay with seed %d\n", dealErr.Index, dealErr.Seed)
		} else {
			fmt.Fprintf(stderr, "Simulation failed: %v\n", err)
		}
		return 1
	}

	r := report.Build(result)
	if err := writeReport(stdout, r, cfg); err != nil {
		logger.Error("failed to write report", zap.Error(err))
		return 1
	}
	fmt.Fprintf(stderr, "\nSimulated %d deals (%d tricks) in %s\n",
		r.Summary.Deals, r.Summary.Tricks, result.Duration.Round(time.Millisecond))
	return 0
}

// printBanner goes to stderr so the report on stdout stays clean
func printBanner(w io.Writer, cfg *config.Config, opts simulation.Options) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║              Euchre Monte-Carlo Simulator (Go)             ║")
	fmt.Fprintln(w, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Configuration:\n")
	fmt.Fprintf(w, "  Deals:          %d\n", opts.NumDeals)
	fmt.Fprintf(w, "  Seed:           %d\n", opts.Seed)
	fmt.Fprintf(w, "  Trump mode:     %s\n", opts.Mode)
	fmt.Fprintf(w, "  Play policy:    %s\n", opts.AIType)
	if opts.Workers == 0 {
		fmt.Fprintf(w, "  Workers:        auto\n")
	} else {
		fmt.Fprintf(w, "  Workers:        %d\n", opts.Workers)
	}
	fmt.Fprintf(w, "  Report:         %s\n", cfg.Format())
	fmt.Fprintln(w)
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func writeReport(stdout io.Writer, r *report.Report, cfg *config.Config) error {
	w := stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return report.Write(w, r, cfg.Format())
}
