package engine

// HandValue estimates the strength of hand if trump were named. Each card
// contributes the prior of its token, with off-suit cards valued as if they
// led their own suit.
//
// Holding both bowers makes the right bower certain; holding both bowers
// plus another trump makes the left bower certain too. No other card gets
// the adjustment.
func HandValue(hand []Card, trump Suit) float64 {
	left := trump.Partner()
	right := Card{Rank: Jack, Suit: trump}
	leftBower := Card{Rank: Jack, Suit: left}

	hasRight := containsCard(hand, right)
	hasLeft := containsCard(hand, leftBower)
	otherTrump := false
	for _, c := range hand {
		if c.Suit == trump && c != right {
			otherTrump = true
			break
		}
	}

	total := 0.0
	for _, c := range hand {
		token := ResolveToken(c, trump, left, c.Suit)
		value := token.EstimatedValue()
		switch {
		case token == TokenJackTrump && hasLeft:
			value = 1.0
		case token == TokenLeftBauerTrump && hasRight && otherTrump:
			value = 1.0
		}
		total += value
	}
	return total
}

// BestTrump returns the suit with the highest HandValue; ties go to the
// earliest suit in Suits order.
func BestTrump(hand []Card) (Suit, float64) {
	best := Suits[0]
	bestValue := HandValue(hand, best)
	for _, suit := range Suits[1:] {
		if v := HandValue(hand, suit); v > bestValue {
			best, bestValue = suit, v
		}
	}
	return best, bestValue
}

// SetTrump names trump and derives the left bower's suit
func (s *GameState) SetTrump(trump Suit) {
	s.Trump = trump
	s.LeftBauerSuit = trump.Partner()
}

// ChooseTrump resolves trump for the deal. Under DealerCalls the dealer names
// the best suit for their hand and flips a coin to go alone; under FixedTrump
// trump is drawn at random and the dealer plays with a partner.
func (s *GameState) ChooseTrump(mode TrumpMode) {
	s.Mode = mode
	dealerHand := s.PlayerAt(s.Dealer).Hand
	s.DealerSuitCount = distinctSuits(dealerHand)
	s.SuitCaller = s.Dealer

	switch mode {
	case FixedTrump:
		s.SetTrump(Suits[s.Rand.Intn(len(Suits))])
		s.CallValue = HandValue(dealerHand, s.Trump)
		s.SuitCallerIsAlone = false
	default:
		trump, value := BestTrump(dealerHand)
		s.SetTrump(trump)
		s.CallValue = value
		s.SuitCallerIsAlone = s.Rand.Intn(2) == 0
	}
}
