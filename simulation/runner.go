package simulation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TiKevin83/EuchreSimulation/engine"
)

// ErrInvalidDealCount rejects runs that would simulate nothing
var ErrInvalidDealCount = errors.New("number of deals must be positive")

// ctxCheckInterval is how many deals a shard plays between cancellation checks
const ctxCheckInterval = 1024

// Options configures a batch of simulated deals
type Options struct {
	NumDeals int
	Seed     uint64
	Mode     engine.TrumpMode
	AIType   engine.AIPlayerType
	Workers  int // 0 = runtime.NumCPU()
}

// Validate rejects options that cannot produce a run
func (o Options) Validate() error {
	if o.NumDeals <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDealCount, o.NumDeals)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	return nil
}

// DealError identifies the deal that broke a run. Replaying Seed with
// RunSingleDeal reproduces it.
type DealError struct {
	Index int
	Seed  uint64
	Err   error
}

func (e *DealError) Error() string {
	return fmt.Sprintf("deal %d (seed %d): %v", e.Index, e.Seed, e.Err)
}

func (e *DealError) Unwrap() error {
	return e.Err
}

// Result is a finished run
type Result struct {
	RunID     string
	Options   Options
	Workers   int
	Stats     *Aggregator
	StartedAt time.Time
	Duration  time.Duration
}

// DealSeed derives the seed of deal index from the run seed (splitmix64), so
// a deal's randomness does not depend on which worker plays it.
func DealSeed(runSeed uint64, index int) uint64 {
	z := runSeed + uint64(index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// RunSingleDeal plays one deal on a fresh state
func RunSingleDeal(seed uint64, mode engine.TrumpMode, aiType engine.AIPlayerType, rec engine.Recorder) (engine.RoundResult, error) {
	state := engine.NewGameState()
	return state.PlayDeal(seed, mode, aiType, rec)
}

// RunBatch simulates opts.NumDeals deals serially
func RunBatch(ctx context.Context, opts Options) (*Aggregator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	stats := NewAggregator()
	if err := runShard(ctx, opts, 0, opts.NumDeals, stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// runShard plays deals [start, end) on one reusable state into stats
func runShard(ctx context.Context, opts Options, start, end int, stats *Aggregator) error {
	state := engine.NewGameState()
	for i := start; i < end; i++ {
		if (i-start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		seed := DealSeed(opts.Seed, i)
		if _, err := state.PlayDeal(seed, opts.Mode, opts.AIType, stats); err != nil {
			return &DealError{Index: i, Seed: seed, Err: err}
		}
		stats.Deals++
	}
	return nil
}

// Runner executes runs and logs their progress
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a runner; a nil logger disables logging
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run simulates the configured deals, serially for one worker and sharded
// otherwise.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.NumDeals {
		workers = opts.NumDeals
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Options:   opts,
		Workers:   workers,
		StartedAt: time.Now(),
	}
	log := r.logger.With(zap.String("run_id", result.RunID))
	log.Info("simulation started",
		zap.Int("deals", opts.NumDeals),
		zap.Uint64("seed", opts.Seed),
		zap.Stringer("mode", opts.Mode),
		zap.Stringer("ai", opts.AIType),
		zap.Int("workers", workers))

	var (
		stats *Aggregator
		err   error
	)
	if workers == 1 {
		stats, err = RunBatch(ctx, opts)
	} else {
		stats, err = RunBatchParallelN(ctx, opts, workers)
	}
	result.Duration = time.Since(result.StartedAt)
	result.Stats = stats

	if err != nil {
		var dealErr *DealError
		if errors.As(err, &dealErr) {
			log.Error("simulation aborted",
				zap.Int("deal_index", dealErr.Index),
				zap.Uint64("deal_seed", dealErr.Seed),
				zap.Error(dealErr.Err))
		} else {
			log.Warn("simulation stopped", zap.Error(err))
		}
		return result, err
	}

	log.Info("simulation complete",
		zap.Uint64("rounds", stats.Rounds),
		zap.Uint64("tricks", stats.Tricks),
		zap.Uint64("cards_played", stats.TotalPlayed()),
		zap.Duration("elapsed", result.Duration))
	return result, nil
}
