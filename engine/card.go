package engine

import "fmt"

// Suit of a Euchre card
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// NoSuit marks an unset lead suit
const NoSuit Suit = 255

// Suits lists every suit in deck-building order
var Suits = [4]Suit{Spades, Hearts, Clubs, Diamonds}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case NoSuit:
		return "None"
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// Symbol returns the single-rune suit glyph used in diagnostics
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	}
	return "?"
}

// Partner returns the other suit of the same colour (Spades↔Clubs, Hearts↔Diamonds).
func (s Suit) Partner() Suit {
	switch s {
	case Spades:
		return Clubs
	case Clubs:
		return Spades
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	}
	return NoSuit
}

// Rank of a Euchre card (Nine through Ace)
type Rank uint8

const (
	Nine Rank = iota
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in ascending order
var Ranks = [6]Rank{Nine, Ten, Jack, Queen, King, Ace}

var rankNames = [6]string{"Nine", "Ten", "Jack", "Queen", "King", "Ace"}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// Card is an immutable rank/suit pair
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Index maps the card to a dense 0..23 slot (suit-major)
func (c Card) Index() int {
	return int(c.Suit)*len(Ranks) + int(c.Rank)
}

// DeckSize is the number of cards in a Euchre deck
const DeckSize = 24

// HandSize is the number of cards dealt to each player
const HandSize = 5

// NewDeck builds the 24 (suit, rank) pairs in suit-major order
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}
