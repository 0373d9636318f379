// Package report turns aggregated simulation statistics into the run's
// output documents.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/TiKevin83/EuchreSimulation/engine"
	"github.com/TiKevin83/EuchreSimulation/simulation"
)

// Format selects the output encoding
type Format string

const (
	FormatJSON        Format = "json"
	FormatYAML        Format = "yaml"
	FormatText        Format = "text"
	FormatFlatbuffers Format = "flatbuffers"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatJSON, FormatYAML, FormatText, FormatFlatbuffers:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", name)
}

// TokenStat is one card token's played/won tally. WinRate is nil when the
// token was never played.
type TokenStat struct {
	Token   string   `json:"token" yaml:"token"`
	Played  uint64   `json:"played" yaml:"played"`
	Won     uint64   `json:"won" yaml:"won"`
	WinRate *float64 `json:"win_rate" yaml:"win_rate"`
}

// BucketStat holds a dealer-call bucket indexed by hand value decile. Means
// entries are nil where no round landed.
type BucketStat struct {
	Bucket string     `json:"bucket" yaml:"bucket"`
	Means  []*float64 `json:"means" yaml:"means"`
	Sums   []int64    `json:"sums" yaml:"sums"`
	Counts []uint64   `json:"counts" yaml:"counts"`
}

// Summary carries run-wide counters
type Summary struct {
	Deals       uint64    `json:"deals" yaml:"deals"`
	Rounds      uint64    `json:"rounds" yaml:"rounds"`
	Tricks      uint64    `json:"tricks" yaml:"tricks"`
	CardsPlayed uint64    `json:"cards_played" yaml:"cards_played"`
	AloneRounds uint64    `json:"alone_rounds" yaml:"alone_rounds"`
	Marches     uint64    `json:"marches" yaml:"marches"`
	Euchres     uint64    `json:"euchres" yaml:"euchres"`
	TeamPoints  [2]uint64 `json:"team_points" yaml:"team_points"`
}

// Report is the complete output of a run
type Report struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	Seed       uint64       `json:"seed" yaml:"seed"`
	Mode       string       `json:"mode" yaml:"mode"`
	AIType     string       `json:"ai" yaml:"ai"`
	Workers    int          `json:"workers" yaml:"workers"`
	DurationMs int64        `json:"duration_ms" yaml:"duration_ms"`
	Summary    Summary      `json:"summary" yaml:"summary"`
	Tokens     []TokenStat  `json:"tokens" yaml:"tokens"`
	Buckets    []BucketStat `json:"dealer_calls" yaml:"dealer_calls"`
}

// Build converts a finished run into a report
func Build(res *simulation.Result) *Report {
	r := &Report{
		RunID:      res.RunID,
		Seed:       res.Options.Seed,
		Mode:       res.Options.Mode.String(),
		AIType:     res.Options.AIType.String(),
		Workers:    res.Workers,
		DurationMs: res.Duration.Milliseconds(),
	}
	if res.Stats != nil {
		fill(r, res.Stats)
	}
	return r
}

func fill(r *Report, stats *simulation.Aggregator) {
	r.Summary = Summary{
		Deals:       stats.Deals,
		Rounds:      stats.Rounds,
		Tricks:      stats.Tricks,
		CardsPlayed: stats.TotalPlayed(),
		AloneRounds: stats.AloneRounds,
		Marches:     stats.Marches,
		Euchres:     stats.Euchres,
		TeamPoints:  stats.TeamPoints,
	}

	r.Tokens = make([]TokenStat, 0, engine.NumTokens)
	for _, t := range engine.Tokens() {
		c := stats.Tokens[t]
		r.Tokens = append(r.Tokens, TokenStat{Token: t.String(), Played: c.Played, Won: c.Won})
	}

	r.Buckets = make([]BucketStat, 0, simulation.NumBuckets)
	for _, b := range simulation.Buckets() {
		bs := BucketStat{
			Bucket: b.String(),
			Sums:   make([]int64, simulation.NumDeciles),
			Counts: make([]uint64, simulation.NumDeciles),
		}
		for d, stat := range stats.Dealer[b] {
			bs.Sums[d] = stat.Sum
			bs.Counts[d] = stat.Count
		}
		r.Buckets = append(r.Buckets, bs)
	}
	r.computeRatios()
}

// computeRatios derives WinRate and Means from the raw counts. A zero
// denominator stays nil ("no data").
func (r *Report) computeRatios() {
	for i := range r.Tokens {
		t := &r.Tokens[i]
		t.WinRate = nil
		if t.Played > 0 {
			rate := float64(t.Won) / float64(t.Played)
			t.WinRate = &rate
		}
	}
	for i := range r.Buckets {
		b := &r.Buckets[i]
		b.Means = make([]*float64, len(b.Counts))
		for d, n := range b.Counts {
			if n == 0 || d >= len(b.Sums) {
				continue
			}
			mean := float64(b.Sums[d]) / float64(n)
			b.Means[d] = &mean
		}
	}
}

// Duration returns the run's wall time
func (r *Report) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// Write encodes r to w in the requested format
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatText:
		_, err := io.WriteString(w, RenderText(r))
		return err
	case FormatFlatbuffers:
		_, err := w.Write(EncodeFlatbuffers(r))
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}
