package engine

// UpCardIndex is the deck offset of the turned-up card after the deal
const UpCardIndex = NumSeats * HandSize

// ShuffleDeck randomizes deck order in place with the deal's random source
func (s *GameState) ShuffleDeck() {
	s.Rand.Shuffle(len(s.Deck), func(i, j int) {
		s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i]
	})
}

// Deal builds and shuffles the deck, hands five cards to each player in array
// order, turns up deck[20] and rotates the dealer to a random seat.
func (s *GameState) Deal() {
	s.Deck = s.Deck[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			s.Deck = append(s.Deck, Card{Rank: rank, Suit: suit})
		}
	}
	s.ShuffleDeck()

	for i := range s.Players {
		s.Players[i].Hand = append(s.Players[i].Hand[:0], s.Deck[i*HandSize:(i+1)*HandSize]...)
	}
	s.UpCard = s.Deck[UpCardIndex]
	s.Kitty = append(s.Kitty[:0], s.Deck[UpCardIndex+1:]...)

	s.Dealer = s.Rand.Intn(NumSeats) + 1
	s.LeadPlayer = NextSeat(s.Dealer)
	s.Turn = s.LeadPlayer
}

// removeCard deletes the first occurrence of c, preserving order
func removeCard(cards []Card, c Card) ([]Card, bool) {
	for i, held := range cards {
		if held == c {
			return append(cards[:i], cards[i+1:]...), true
		}
	}
	return cards, false
}

func containsCard(cards []Card, c Card) bool {
	for _, held := range cards {
		if held == c {
			return true
		}
	}
	return false
}

// distinctSuits counts the nominal suits present in a hand
func distinctSuits(cards []Card) int {
	var seen [4]bool
	n := 0
	for _, c := range cards {
		if !seen[c.Suit] {
			seen[c.Suit] = true
			n++
		}
	}
	return n
}
