package engine

// AIPlayerType specifies which play policy a seat uses
type AIPlayerType uint8

const (
	HeuristicAI AIPlayerType = iota
	RandomAI
)

func (t AIPlayerType) String() string {
	switch t {
	case HeuristicAI:
		return "heuristic"
	case RandomAI:
		return "random"
	}
	return "unknown"
}

// ParseAIPlayerType accepts the names produced by AIPlayerType.String
func ParseAIPlayerType(name string) (AIPlayerType, bool) {
	switch name {
	case "heuristic":
		return HeuristicAI, true
	case "random":
		return RandomAI, true
	}
	return HeuristicAI, false
}

// SelectPlay picks the card seat plays from legal
func (s *GameState) SelectPlay(seat int, legal []PlayableCard, ai AIPlayerType) (PlayableCard, error) {
	if len(legal) == 0 {
		return PlayableCard{}, s.invariantError(ErrEmptyLegalSet, seat)
	}
	switch ai {
	case RandomAI:
		return legal[s.Rand.Intn(len(legal))], nil
	default:
		return s.selectHeuristic(seat, legal), nil
	}
}

func (s *GameState) selectHeuristic(seat int, legal []PlayableCard) PlayableCard {
	trick := s.Trick.Cards

	if len(trick) == 0 {
		// Lead high, but don't lead into a trump that can still be beaten
		best := highest(legal)
		if !s.higherTrumpPossible(seat, best.Token) {
			return best
		}
		nonTrump := make([]PlayableCard, 0, len(legal))
		for _, pc := range legal {
			if pc.Token < TokenNineTrump {
				nonTrump = append(nonTrump, pc)
			}
		}
		if len(nonTrump) == 0 {
			return best
		}
		return highest(nonTrump)
	}

	if teamControlsTrick(trick) {
		return s.shortSuitOrLowest(legal)
	}

	controlling := TokenNone
	for _, tc := range trick {
		if tc.Token > controlling {
			controlling = tc.Token
		}
	}
	overtakes := make([]PlayableCard, 0, len(legal))
	for _, pc := range legal {
		if pc.Token > controlling {
			overtakes = append(overtakes, pc)
		}
	}
	if len(overtakes) > 0 {
		return lowest(overtakes)
	}
	return s.shortSuitOrLowest(legal)
}

// teamControlsTrick approximates "my side holds the best card so far" from
// trick positions: leading, partner's lead still beating the second card, or
// partner's second card beating both neighbours.
func teamControlsTrick(trick []TrickCard) bool {
	switch len(trick) {
	case 0:
		return true
	case 2:
		return trick[0].Token > trick[1].Token
	case 3:
		return trick[1].Token > trick[0].Token && trick[1].Token > trick[2].Token
	}
	return false
}

// higherTrumpPossible scans the unseen cards outside seat's hand for a trump
// that outranks token.
func (s *GameState) higherTrumpPossible(seat int, token RankToken) bool {
	hand := s.PlayerAt(seat).Hand
	for _, c := range s.RoundUnknownCards {
		if containsCard(hand, c) {
			continue
		}
		t := ResolveToken(c, s.Trump, s.LeftBauerSuit, NoSuit)
		if t.IsTrump() && t > token {
			return true
		}
	}
	return false
}

// shortSuitOrLowest throws the low card of a singleton off-suit while still
// holding trump, so the seat can ruff that suit later. Otherwise it plays the
// lowest legal card.
func (s *GameState) shortSuitOrLowest(legal []PlayableCard) PlayableCard {
	var counts [4]int
	for _, pc := range legal {
		if s.trumpMember(pc.Card) {
			counts[s.Trump]++
		} else {
			counts[pc.Card.Suit]++
		}
	}

	if counts[s.Trump] > 0 {
		candidates := make([]PlayableCard, 0, len(legal))
		for _, pc := range legal {
			if s.trumpMember(pc.Card) || counts[pc.Card.Suit] != 1 {
				continue
			}
			if pc.Token < TokenKing {
				candidates = append(candidates, pc)
			}
		}
		if len(candidates) > 0 {
			return lowest(candidates)
		}
	}
	return lowest(legal)
}

// highest returns the first card with the greatest token
func highest(cards []PlayableCard) PlayableCard {
	best := cards[0]
	for _, pc := range cards[1:] {
		if pc.Token > best.Token {
			best = pc
		}
	}
	return best
}

// lowest returns the first card with the smallest token
func lowest(cards []PlayableCard) PlayableCard {
	low := cards[0]
	for _, pc := range cards[1:] {
		if pc.Token < low.Token {
			low = pc
		}
	}
	return low
}
