package engine

// Recorder receives simulation events as they happen. The statistics
// aggregator implements it; a nil Recorder is allowed.
type Recorder interface {
	CardPlayed(tc TrickCard)
	TrickWon(tc TrickCard)
	RoundScored(result RoundResult)
}

// PlayCard moves c from seat's hand into the trick. The first card of a trick
// fixes the lead suit from its raw suit.
func (s *GameState) PlayCard(seat int, c Card, rec Recorder) (TrickCard, error) {
	player := s.PlayerAt(seat)
	hand, ok := removeCard(player.Hand, c)
	if !ok {
		return TrickCard{}, s.invariantError(ErrCardNotInHand, seat)
	}
	player.Hand = hand

	if len(s.Trick.Cards) == 0 {
		s.Trick.LeadSuit = c.Suit
	}
	s.RoundUnknownCards, _ = removeCard(s.RoundUnknownCards, c)

	tc := TrickCard{
		Card:  c,
		Token: ResolveToken(c, s.Trump, s.LeftBauerSuit, s.Trick.LeadSuit),
		Seat:  seat,
	}
	s.Trick.Cards = append(s.Trick.Cards, tc)
	if rec != nil {
		rec.CardPlayed(tc)
	}

	s.Turn = s.nextActiveSeat(seat)
	return tc, nil
}

// PlayTurn lets the seat whose turn it is choose and play a card
func (s *GameState) PlayTurn(ai AIPlayerType, rec Recorder) (TrickCard, error) {
	seat := s.Turn
	legal := s.LegalCards(seat)
	choice, err := s.SelectPlay(seat, legal, ai)
	if err != nil {
		return TrickCard{}, err
	}
	return s.PlayCard(seat, choice.Card, rec)
}

// TrickComplete reports whether every active seat has played
func (s *GameState) TrickComplete() bool {
	return len(s.Trick.Cards) >= s.ActiveSeats()
}

// PlayTrick plays turns until the trick is complete, then resolves it
func (s *GameState) PlayTrick(ai AIPlayerType, rec Recorder) (TrickCard, error) {
	if s.Turn == 0 || s.Turn == s.SkippedSeat() {
		s.Turn = s.nextActiveSeat(s.LeadPlayer - 1)
	}
	for !s.TrickComplete() {
		if _, err := s.PlayTurn(ai, rec); err != nil {
			return TrickCard{}, err
		}
	}
	return s.ResolveTrick(rec), nil
}

// ResolveTrick awards the trick to the highest token. The winner leads next
// and its team's round score goes up by one.
func (s *GameState) ResolveTrick(rec Recorder) TrickCard {
	winner := s.Trick.Cards[0]
	for _, tc := range s.Trick.Cards[1:] {
		if tc.Token > winner.Token {
			winner = tc
		}
	}
	if rec != nil {
		rec.TrickWon(winner)
	}

	s.LeadPlayer = winner.Seat
	s.Turn = winner.Seat
	s.RoundScore[TeamOf(winner.Seat)]++

	s.Trick.Cards = s.Trick.Cards[:0]
	s.Trick.LeadSuit = NoSuit
	return winner
}
