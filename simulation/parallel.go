package simulation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// shard is a contiguous range of deal indices
type shard struct {
	start, end int
}

// splitShards divides numDeals into numWorkers contiguous ranges; the first
// numDeals%numWorkers shards take one extra deal.
func splitShards(numDeals, numWorkers int) []shard {
	if numWorkers > numDeals {
		numWorkers = numDeals
	}
	shards := make([]shard, 0, numWorkers)
	per := numDeals / numWorkers
	extra := numDeals % numWorkers
	start := 0
	for w := 0; w < numWorkers; w++ {
		size := per
		if w < extra {
			size++
		}
		shards = append(shards, shard{start: start, end: start + size})
		start += size
	}
	return shards
}

// RunBatchParallel executes the batch on one worker per CPU
func RunBatchParallel(ctx context.Context, opts Options) (*Aggregator, error) {
	return RunBatchParallelN(ctx, opts, runtime.NumCPU())
}

// RunBatchParallelN executes the batch across numWorkers goroutines. Each
// worker owns its game state and aggregator; the aggregators are merged once
// every worker is done. The first failing deal cancels the remaining shards.
func RunBatchParallelN(ctx context.Context, opts Options, numWorkers int) (*Aggregator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	shards := splitShards(opts.NumDeals, numWorkers)
	locals := make([]*Aggregator, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for w, sh := range shards {
		w, sh := w, sh
		locals[w] = NewAggregator()
		g.Go(func() error {
			return runShard(gctx, opts, sh.start, sh.end, locals[w])
		})
	}
	err := g.Wait()

	stats := NewAggregator()
	for _, local := range locals {
		stats.Merge(local)
	}
	return stats, err
}
