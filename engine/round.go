package engine

import "math"

// Round points under standard Euchre scoring
const (
	PointsMade      = 1
	PointsMarch     = 2
	PointsLoneMarch = 4
	PointsEuchre    = 2
)

// RoundResult is the outcome of one completed round
type RoundResult struct {
	CallerSeat   int
	CallerTeam   int
	CallerTricks int
	Alone        bool
	Points       [2]int

	Mode            TrumpMode
	Dealer          int
	CallValue       float64
	DealerSuitCount int
}

// March reports whether the calling team took every trick
func (r RoundResult) March() bool {
	return r.CallerTricks == TricksPerRound
}

// Euchred reports whether the calling team failed to take three tricks
func (r RoundResult) Euchred() bool {
	return r.CallerTricks < 3
}

// DealerCalled reports whether the round should feed the dealer-call buckets
func (r RoundResult) DealerCalled() bool {
	return r.Mode == DealerCalls && r.CallerSeat == r.Dealer
}

// DealerDifferential is the dealer team's points minus the opponents' points
func (r RoundResult) DealerDifferential() int {
	team := TeamOf(r.Dealer)
	return r.Points[team] - r.Points[1-team]
}

// CallDecile is the call-time hand value rounded to tenths, as an index
func (r RoundResult) CallDecile() int {
	return int(math.Round(r.CallValue * 10))
}

// ScoreRound returns the points each team earns given the tricks the calling
// team took.
func ScoreRound(callerTeam, callerTricks int, alone bool) [2]int {
	var points [2]int
	switch {
	case callerTricks == TricksPerRound && alone:
		points[callerTeam] = PointsLoneMarch
	case callerTricks == TricksPerRound:
		points[callerTeam] = PointsMarch
	case callerTricks >= 3:
		points[callerTeam] = PointsMade
	default:
		points[1-callerTeam] = PointsEuchre
	}
	return points
}

// PlayRound plays tricks until five have been taken, scores the round into
// GameScore and resets the per-round state for the next round.
func (s *GameState) PlayRound(ai AIPlayerType, rec Recorder) (RoundResult, error) {
	for s.TricksTaken() < TricksPerRound {
		if len(s.PlayerAt(s.LeadPlayer).Hand) == 0 {
			return RoundResult{}, s.invariantError(ErrRoundStalled, s.LeadPlayer)
		}
		if _, err := s.PlayTrick(ai, rec); err != nil {
			return RoundResult{}, err
		}
	}

	callerTeam := TeamOf(s.SuitCaller)
	result := RoundResult{
		CallerSeat:      s.SuitCaller,
		CallerTeam:      callerTeam,
		CallerTricks:    s.RoundScore[callerTeam],
		Alone:           s.SuitCallerIsAlone,
		Mode:            s.Mode,
		Dealer:          s.Dealer,
		CallValue:       s.CallValue,
		DealerSuitCount: s.DealerSuitCount,
	}
	result.Points = ScoreRound(callerTeam, result.CallerTricks, result.Alone)
	s.GameScore[0] += result.Points[0]
	s.GameScore[1] += result.Points[1]

	if rec != nil {
		rec.RoundScored(result)
	}
	s.ResetRound()
	return result, nil
}

// PlayDeal resets the state for seed, deals, resolves trump and plays the
// deal's single round.
func (s *GameState) PlayDeal(seed uint64, mode TrumpMode, ai AIPlayerType, rec Recorder) (RoundResult, error) {
	s.Reset(seed)
	s.Deal()
	s.ChooseTrump(mode)
	return s.PlayRound(ai, rec)
}
