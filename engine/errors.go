package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyLegalSet means a seat had nothing it could legally play
	ErrEmptyLegalSet = errors.New("empty legal set")
	// ErrCardNotInHand means a play named a card the seat does not hold
	ErrCardNotInHand = errors.New("card not in hand")
	// ErrRoundStalled means hands ran out before five tricks were taken
	ErrRoundStalled = errors.New("round ended before five tricks")
)

// InvariantError is a broken hand/legality invariant with enough context to
// reproduce it: the acting seat, its hand and the trick so far.
type InvariantError struct {
	Err      error
	Seat     int
	Hand     []Card
	Trick    []TrickCard
	LeadSuit Suit
	Trump    Suit
}

func (e *InvariantError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: seat=%d trump=%s lead=%s hand=[", e.Err, e.Seat, e.Trump, e.LeadSuit)
	for i, c := range e.Hand {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteString("] trick=[")
	for i, tc := range e.Trick {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%s(%s)", tc.Seat, tc.Card, tc.Token)
	}
	b.WriteByte(']')
	return b.String()
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// invariantError snapshots the seat's context so later mutation of the
// state cannot change the diagnostic.
func (s *GameState) invariantError(err error, seat int) *InvariantError {
	e := &InvariantError{
		Err:      err,
		Seat:     seat,
		Trick:    append([]TrickCard(nil), s.Trick.Cards...),
		LeadSuit: s.Trick.LeadSuit,
		Trump:    s.Trump,
	}
	if seat >= 1 && seat <= NumSeats {
		e.Hand = append([]Card(nil), s.PlayerAt(seat).Hand...)
	}
	return e
}
