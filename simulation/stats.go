package simulation

import (
	"github.com/TiKevin83/EuchreSimulation/engine"
)

// NumDeciles covers rounded hand values 0.0..5.0 in tenths
const NumDeciles = engine.HandSize*10 + 1

// Bucket groups dealer-called rounds for the call heuristic report
type Bucket uint8

const (
	BucketAlone Bucket = iota
	BucketOneSuited
	BucketTwoSuited
	BucketThreeSuited
	BucketFourSuited

	NumBuckets = int(BucketFourSuited) + 1
)

var bucketNames = [NumBuckets]string{"alone", "one-suited", "two-suited", "three-suited", "four-suited"}

func (b Bucket) String() string {
	if int(b) < NumBuckets {
		return bucketNames[b]
	}
	return "unknown"
}

// Buckets lists every bucket in report order
func Buckets() []Bucket {
	return []Bucket{BucketAlone, BucketOneSuited, BucketTwoSuited, BucketThreeSuited, BucketFourSuited}
}

// BucketFor places a dealer-called round: lone hands first, then by the
// number of suits in the dealer's dealt hand.
func BucketFor(r engine.RoundResult) Bucket {
	if r.Alone {
		return BucketAlone
	}
	switch r.DealerSuitCount {
	case 1:
		return BucketOneSuited
	case 2:
		return BucketTwoSuited
	case 3:
		return BucketThreeSuited
	default:
		return BucketFourSuited
	}
}

// TokenCount tallies how often a token was played and how often it won
type TokenCount struct {
	Played uint64
	Won    uint64
}

// DecileStat accumulates dealer point differentials for one decile
type DecileStat struct {
	Sum   int64
	Count uint64
}

// Aggregator is the cross-round statistics accumulator. Each worker owns one;
// shards are combined with Merge.
type Aggregator struct {
	Tokens [engine.NumTokens]TokenCount
	Dealer [NumBuckets][NumDeciles]DecileStat

	Deals       uint64
	Rounds      uint64
	Tricks      uint64
	AloneRounds uint64
	Marches     uint64
	Euchres     uint64
	TeamPoints  [2]uint64
}

// NewAggregator returns an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// CardPlayed implements engine.Recorder
func (a *Aggregator) CardPlayed(tc engine.TrickCard) {
	a.Tokens[tc.Token].Played++
}

// TrickWon implements engine.Recorder
func (a *Aggregator) TrickWon(tc engine.TrickCard) {
	a.Tokens[tc.Token].Won++
	a.Tricks++
}

// RoundScored implements engine.Recorder
func (a *Aggregator) RoundScored(r engine.RoundResult) {
	a.Rounds++
	if r.Alone {
		a.AloneRounds++
	}
	if r.March() {
		a.Marches++
	}
	if r.Euchred() {
		a.Euchres++
	}
	a.TeamPoints[0] += uint64(r.Points[0])
	a.TeamPoints[1] += uint64(r.Points[1])

	if !r.DealerCalled() {
		return
	}
	decile := r.CallDecile()
	if decile < 0 {
		decile = 0
	} else if decile >= NumDeciles {
		decile = NumDeciles - 1
	}
	stat := &a.Dealer[BucketFor(r)][decile]
	stat.Sum += int64(r.DealerDifferential())
	stat.Count++
}

// Merge adds other's counts into a
func (a *Aggregator) Merge(other *Aggregator) {
	for i := range a.Tokens {
		a.Tokens[i].Played += other.Tokens[i].Played
		a.Tokens[i].Won += other.Tokens[i].Won
	}
	for b := range a.Dealer {
		for d := range a.Dealer[b] {
			a.Dealer[b][d].Sum += other.Dealer[b][d].Sum
			a.Dealer[b][d].Count += other.Dealer[b][d].Count
		}
	}
	a.Deals += other.Deals
	a.Rounds += other.Rounds
	a.Tricks += other.Tricks
	a.AloneRounds += other.AloneRounds
	a.Marches += other.Marches
	a.Euchres += other.Euchres
	a.TeamPoints[0] += other.TeamPoints[0]
	a.TeamPoints[1] += other.TeamPoints[1]
}

// WinRate is Won/Played for a token; ok is false when it was never played
func (a *Aggregator) WinRate(t engine.RankToken) (rate float64, ok bool) {
	c := a.Tokens[t]
	if c.Played == 0 {
		return 0, false
	}
	return float64(c.Won) / float64(c.Played), true
}

// MeanDifferential is the dealer team's mean point differential for a
// bucket and decile; ok is false when no round landed there.
func (a *Aggregator) MeanDifferential(b Bucket, decile int) (mean float64, ok bool) {
	if decile < 0 || decile >= NumDeciles {
		return 0, false
	}
	stat := a.Dealer[b][decile]
	if stat.Count == 0 {
		return 0, false
	}
	return float64(stat.Sum) / float64(stat.Count), true
}

// TotalPlayed sums PlayedCount over every token
func (a *Aggregator) TotalPlayed() uint64 {
	total := uint64(0)
	for _, c := range a.Tokens {
		total += c.Played
	}
	return total
}

// TotalWon sums WonCount over every token; it equals the number of tricks
func (a *Aggregator) TotalWon() uint64 {
	total := uint64(0)
	for _, c := range a.Tokens {
		total += c.Won
	}
	return total
}
