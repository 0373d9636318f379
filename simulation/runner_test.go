package simulation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/TiKevin83/EuchreSimulation/engine"
)

func TestRunBatchFixedTrumpCounts(t *testing.T) {
	const n = 500
	stats, err := RunBatch(context.Background(), Options{
		NumDeals: n,
		Seed:     42,
		Mode:     engine.FixedTrump,
		AIType:   engine.HeuristicAI,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if stats.Deals != n || stats.Rounds != n {
		t.Errorf("Expected %d deals and rounds, got %d/%d", n, stats.Deals, stats.Rounds)
	}
	if got := stats.TotalPlayed(); got != n*20 {
		t.Errorf("Expected %d cards played, got %d", n*20, got)
	}
	if stats.Tricks != n*5 || stats.TotalWon() != n*5 {
		t.Errorf("Expected %d tricks, got %d (won %d)", n*5, stats.Tricks, stats.TotalWon())
	}
	if stats.AloneRounds != 0 {
		t.Errorf("Fixed trump never plays alone, got %d", stats.AloneRounds)
	}
	for _, b := range Buckets() {
		for d := 0; d < NumDeciles; d++ {
			if stats.Dealer[b][d].Count != 0 {
				t.Fatalf("fixed-trump run recorded into %s decile %d", b, d)
			}
		}
	}
}

func TestRunBatchDealerCallsCounts(t *testing.T) {
	const n = 500
	stats, err := RunBatch(context.Background(), Options{
		NumDeals: n,
		Seed:     7,
		Mode:     engine.DealerCalls,
		AIType:   engine.HeuristicAI,
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	want := uint64(n*20) - 5*stats.AloneRounds
	if got := stats.TotalPlayed(); got != want {
		t.Errorf("Expected %d cards played with %d lone rounds, got %d", want, stats.AloneRounds, got)
	}
	if stats.AloneRounds == 0 || stats.AloneRounds == n {
		t.Errorf("Expected a mix of lone and partnered rounds, got %d of %d", stats.AloneRounds, n)
	}

	var recorded uint64
	for _, b := range Buckets() {
		for d := 0; d < NumDeciles; d++ {
			recorded += stats.Dealer[b][d].Count
		}
	}
	if recorded != n {
		t.Errorf("Expected every dealer-called round recorded, got %d of %d", recorded, n)
	}
	if stats.TeamPoints[0]+stats.TeamPoints[1] < n {
		t.Errorf("Every round scores at least one point, got %v", stats.TeamPoints)
	}
}

func TestTokenWinRates(t *testing.T) {
	for _, ai := range []engine.AIPlayerType{engine.HeuristicAI, engine.RandomAI} {
		stats, err := RunBatch(context.Background(), Options{NumDeals: 1000, Seed: 3, AIType: ai})
		if err != nil {
			t.Fatal(err)
		}
		rate, ok := stats.WinRate(engine.TokenJackTrump)
		if !ok || rate != 1.0 {
			t.Errorf("%s: right bower should always win, got %f (%v)", ai, rate, ok)
		}
		rate, ok = stats.WinRate(engine.TokenNone)
		if !ok || rate != 0 {
			t.Errorf("%s: off-suit cards never win, got %f (%v)", ai, rate, ok)
		}
		for _, tok := range engine.Tokens() {
			c := stats.Tokens[tok]
			if c.Won > c.Played {
				t.Errorf("%s: %s won %d of %d", ai, tok, c.Won, c.Played)
			}
		}
	}
}

func TestRunBatchDeterministic(t *testing.T) {
	opts := Options{NumDeals: 300, Seed: 12345, Mode: engine.DealerCalls}
	a, err := RunBatch(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunBatch(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if *a != *b {
		t.Error("Same seed produced different statistics")
	}

	opts.Seed = 54321
	c, err := RunBatch(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if *a == *c {
		t.Error("Different seeds produced identical statistics")
	}
}

func TestOptionsValidate(t *testing.T) {
	for _, n := range []int{0, -5} {
		_, err := RunBatch(context.Background(), Options{NumDeals: n})
		if !errors.Is(err, ErrInvalidDealCount) {
			t.Errorf("NumDeals=%d: expected ErrInvalidDealCount, got %v", n, err)
		}
	}
	if err := (Options{NumDeals: 1, Workers: -1}).Validate(); err == nil {
		t.Error("Expected negative workers to be rejected")
	}
}

func TestRunBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBatch(ctx, Options{NumDeals: 10, Seed: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestDealSeed(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 10000; i++ {
		s := DealSeed(42, i)
		if seen[s] {
			t.Fatalf("DealSeed collision at index %d", i)
		}
		seen[s] = true
	}
	if DealSeed(42, 7) != DealSeed(42, 7) {
		t.Error("DealSeed is not deterministic")
	}
	if DealSeed(1, 0) == DealSeed(2, 0) {
		t.Error("Run seed does not affect deal seeds")
	}
}

func TestDealErrorUnwrap(t *testing.T) {
	inv := &engine.InvariantError{Err: engine.ErrEmptyLegalSet, Seat: 2}
	err := fmt.Errorf("shard failed: %w", &DealError{Index: 17, Seed: 99, Err: inv})

	var dealErr *DealError
	if !errors.As(err, &dealErr) {
		t.Fatal("Expected a DealError in the chain")
	}
	if dealErr.Index != 17 || dealErr.Seed != 99 {
		t.Errorf("Unexpected deal error %+v", dealErr)
	}
	if !errors.Is(err, engine.ErrEmptyLegalSet) {
		t.Error("Expected the engine sentinel to unwrap")
	}
}

func TestRunSingleDealReplays(t *testing.T) {
	seed := DealSeed(5, 3)
	a := NewAggregator()
	b := NewAggregator()
	ra, err := RunSingleDeal(seed, engine.DealerCalls, engine.HeuristicAI, a)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := RunSingleDeal(seed, engine.DealerCalls, engine.HeuristicAI, b)
	if err != nil {
		t.Fatal(err)
	}
	if ra != rb || *a != *b {
		t.Error("Replaying a deal seed gave a different outcome")
	}
}

func TestRunnerRun(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	runner := NewRunner(zap.New(core))

	res, err := runner.Run(context.Background(), Options{NumDeals: 200, Seed: 9, Workers: 4})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", res.RunID, err)
	}
	if res.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", res.Workers)
	}
	if res.Stats.Deals != 200 {
		t.Errorf("Expected 200 deals, got %d", res.Stats.Deals)
	}

	if logs.FilterMessage("simulation started").Len() != 1 {
		t.Error("Expected a start log entry")
	}
	done := logs.FilterMessage("simulation complete").All()
	if len(done) != 1 {
		t.Fatalf("Expected one completion log entry, got %d", len(done))
	}
	if id := done[0].ContextMap()["run_id"]; id != res.RunID {
		t.Errorf("Completion log carries run_id %v, want %s", id, res.RunID)
	}
}

func TestRunnerClampsWorkers(t *testing.T) {
	res, err := NewRunner(nil).Run(context.Background(), Options{NumDeals: 3, Seed: 1, Workers: 16})
	if err != nil {
		t.Fatal(err)
	}
	if res.Workers != 3 {
		t.Errorf("Expected workers clamped to 3, got %d", res.Workers)
	}
}

func TestRunnerLogsCancellation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(zap.New(core)).Run(ctx, Options{NumDeals: 100, Seed: 1, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if logs.FilterMessage("simulation stopped").Len() != 1 {
		t.Error("Expected a stop warning")
	}
}
