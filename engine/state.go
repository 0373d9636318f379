package engine

import (
	"math/rand"
)

// NumSeats is the number of players at a Euchre table
const NumSeats = 4

// TricksPerRound is the number of tricks taken in one round
const TricksPerRound = 5

// TrumpMode selects how trump is chosen for a deal
type TrumpMode uint8

const (
	// DealerCalls forces the dealer to name the suit with the best hand value
	DealerCalls TrumpMode = iota
	// FixedTrump draws trump at random with no call heuristic
	FixedTrump
)

func (m TrumpMode) String() string {
	switch m {
	case DealerCalls:
		return "dealer-calls"
	case FixedTrump:
		return "fixed-trump"
	}
	return "unknown"
}

// ParseTrumpMode accepts the names produced by TrumpMode.String
func ParseTrumpMode(name string) (TrumpMode, bool) {
	switch name {
	case "dealer-calls", "dealer", "call":
		return DealerCalls, true
	case "fixed-trump", "fixed":
		return FixedTrump, true
	}
	return DealerCalls, false
}

// Player is one seat at the table. Hand order is deal order.
type Player struct {
	Hand []Card
	Team int
	Seat int
}

// TrickCard is a played card with its resolved token and owner
type TrickCard struct {
	Card  Card
	Token RankToken
	Seat  int
}

// Trick holds the cards played so far; LeadSuit is NoSuit until the first play.
type Trick struct {
	Cards    []TrickCard
	LeadSuit Suit
}

// GameState is the scratch context for one simulated deal. It is owned by a
// single worker and reused across deals via Reset.
type GameState struct {
	Players [NumSeats]Player
	Deck    []Card
	UpCard  Card
	Kitty   []Card

	Trump         Suit
	LeftBauerSuit Suit

	Dealer            int
	LeadPlayer        int
	SuitCaller        int
	SuitCallerIsAlone bool
	Turn              int

	Trick             Trick
	RoundUnknownCards []Card
	RoundScore        [2]int
	GameScore         [2]int

	// Dealer call bookkeeping, captured when trump is named
	Mode            TrumpMode
	CallValue       float64
	DealerSuitCount int

	Rand *rand.Rand
}

// NewGameState allocates a state with seat/team assignments and slice capacity
// for a full deal.
func NewGameState() *GameState {
	s := &GameState{
		Deck:              make([]Card, 0, DeckSize),
		Kitty:             make([]Card, 0, DeckSize-NumSeats*HandSize-1),
		RoundUnknownCards: make([]Card, 0, DeckSize),
		Trick:             Trick{Cards: make([]TrickCard, 0, NumSeats), LeadSuit: NoSuit},
	}
	for i := range s.Players {
		s.Players[i] = Player{
			Hand: make([]Card, 0, HandSize),
			Team: TeamOf(i + 1),
			Seat: i + 1,
		}
	}
	s.Reset(0)
	return s
}

// Reset clears every per-deal field and reseeds the deal's random source
func (s *GameState) Reset(seed uint64) {
	for i := range s.Players {
		s.Players[i].Hand = s.Players[i].Hand[:0]
	}
	s.Deck = s.Deck[:0]
	s.Kitty = s.Kitty[:0]
	s.UpCard = Card{}

	s.Trump = NoSuit
	s.LeftBauerSuit = NoSuit
	s.Dealer = 1
	s.LeadPlayer = 2
	s.SuitCaller = 0
	s.SuitCallerIsAlone = false
	s.Turn = 0

	s.GameScore = [2]int{}
	s.CallValue = 0
	s.DealerSuitCount = 0

	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(int64(seed)))
	} else {
		s.Rand.Seed(int64(seed))
	}

	s.ResetRound()
}

// ResetRound restores the per-round fields: empty trick, zero round score and
// the full deck as unknown cards.
func (s *GameState) ResetRound() {
	s.Trick.Cards = s.Trick.Cards[:0]
	s.Trick.LeadSuit = NoSuit
	s.RoundScore = [2]int{}
	s.RoundUnknownCards = s.RoundUnknownCards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			s.RoundUnknownCards = append(s.RoundUnknownCards, Card{Rank: rank, Suit: suit})
		}
	}
}

// PlayerAt returns the player sitting at seat (1..4)
func (s *GameState) PlayerAt(seat int) *Player {
	return &s.Players[seat-1]
}

// TeamOf returns the team of a seat: seats 1,3 are team 0; seats 2,4 team 1
func TeamOf(seat int) int {
	return (seat - 1) % 2
}

// PartnerOf returns the seat across the table
func PartnerOf(seat int) int {
	return (seat+1)%NumSeats + 1
}

// NextSeat returns the seat after seat in rotation (1→2→3→4→1)
func NextSeat(seat int) int {
	return seat%NumSeats + 1
}

// SkippedSeat is the lone caller's partner, or 0 when everyone plays
func (s *GameState) SkippedSeat() int {
	if s.SuitCallerIsAlone && s.SuitCaller != 0 {
		return PartnerOf(s.SuitCaller)
	}
	return 0
}

// ActiveSeats is the number of cards that complete a trick
func (s *GameState) ActiveSeats() int {
	if s.SkippedSeat() != 0 {
		return NumSeats - 1
	}
	return NumSeats
}

// nextActiveSeat advances from seat, stepping over the lone caller's partner
func (s *GameState) nextActiveSeat(seat int) int {
	next := NextSeat(seat)
	if next == s.SkippedSeat() {
		next = NextSeat(next)
	}
	return next
}

// TricksTaken is the number of tricks resolved so far this round
func (s *GameState) TricksTaken() int {
	return s.RoundScore[0] + s.RoundScore[1]
}
