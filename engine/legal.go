package engine

// PlayableCard is a legal card for the acting seat with its token in the
// current trick context.
type PlayableCard struct {
	Card  Card
	Token RankToken
}

// followsLead reports whether c counts as the lead suit. When trump is led the
// left bower follows; otherwise the left bower never follows its nominal suit.
func (s *GameState) followsLead(c Card, leadSuit Suit) bool {
	isLeft := IsLeftBower(c, s.LeftBauerSuit)
	if leadSuit == s.Trump {
		return c.Suit == s.Trump || isLeft
	}
	return c.Suit == leadSuit && !isLeft
}

// tokenFor resolves c in the current trick. Before anything is led only
// trump cards carry a rank; every other card is None.
func (s *GameState) tokenFor(c Card) RankToken {
	return ResolveToken(c, s.Trump, s.LeftBauerSuit, s.Trick.LeadSuit)
}

// LegalCards returns the cards seat may play, in hand order. A seat that can
// follow the lead suit must; otherwise (or when leading) the whole hand is
// legal.
func (s *GameState) LegalCards(seat int) []PlayableCard {
	hand := s.PlayerAt(seat).Hand
	legal := make([]PlayableCard, 0, len(hand))

	lead := s.Trick.LeadSuit
	if lead != NoSuit && len(s.Trick.Cards) > 0 {
		for _, c := range hand {
			if s.followsLead(c, lead) {
				legal = append(legal, PlayableCard{Card: c, Token: s.tokenFor(c)})
			}
		}
		if len(legal) > 0 {
			return legal
		}
	}

	for _, c := range hand {
		legal = append(legal, PlayableCard{Card: c, Token: s.tokenFor(c)})
	}
	return legal
}

// trumpMember reports whether c belongs to the trump bucket for suit counting
func (s *GameState) trumpMember(c Card) bool {
	return c.Suit == s.Trump || IsLeftBower(c, s.LeftBauerSuit)
}
