package engine

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		hand  []Card
		trump Suit
		want  float64
	}{
		{
			name:  "both bowers plus trump makes the left certain",
			hand:  []Card{{Jack, Spades}, {Jack, Clubs}, {Ace, Spades}, {Nine, Hearts}, {Ten, Diamonds}},
			trump: Spades,
			want:  1 + 1 + .46907 + .02754 + .05086,
		},
		{
			name:  "both bowers without another trump",
			hand:  []Card{{Jack, Spades}, {Jack, Clubs}, {Nine, Hearts}, {Ten, Diamonds}, {King, Hearts}},
			trump: Spades,
			want:  1 + .76092 + .02754 + .05086 + .39910,
		},
		{
			name:  "left bower and trump without the right",
			hand:  []Card{{Jack, Clubs}, {Ace, Spades}, {King, Spades}, {Ace, Hearts}, {Nine, Diamonds}},
			trump: Spades,
			want:  .76092 + .46907 + .39150 + .72050 + .02754,
		},
		{
			name:  "off-suit cards valued as their own lead",
			hand:  []Card{{Ace, Hearts}, {King, Diamonds}, {Queen, Clubs}, {Ten, Hearts}, {Nine, Clubs}},
			trump: Spades,
			want:  .72050 + .39910 + .19607 + .05086 + .02754,
		},
		{
			name:  "red trump",
			hand:  []Card{{Jack, Diamonds}, {Queen, Hearts}, {Ten, Hearts}, {Ace, Clubs}, {Nine, Spades}},
			trump: Hearts,
			want:  .76092 + .32882 + .29242 + .72050 + .02754,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HandValue(tc.hand, tc.trump)
			if !approxEqual(got, tc.want) {
				t.Errorf("HandValue = %.5f, want %.5f", got, tc.want)
			}
		})
	}
}

func TestBestTrump(t *testing.T) {
	hand := []Card{{Jack, Hearts}, {Jack, Diamonds}, {Ace, Hearts}, {King, Hearts}, {Queen, Hearts}}
	suit, value := BestTrump(hand)
	if suit != Hearts {
		t.Errorf("Expected Hearts, got %s", suit)
	}
	if !approxEqual(value, HandValue(hand, Hearts)) {
		t.Errorf("Returned value %.5f does not match HandValue", value)
	}
	for _, other := range Suits {
		if HandValue(hand, other) > value {
			t.Errorf("%s scores higher than the chosen suit", other)
		}
	}
}

func TestChooseTrumpDealerCalls(t *testing.T) {
	s := NewGameState()
	alone := 0
	const deals = 400
	for seed := uint64(1); seed <= deals; seed++ {
		s.Reset(seed)
		s.Deal()
		s.ChooseTrump(DealerCalls)

		hand := s.PlayerAt(s.Dealer).Hand
		want, value := BestTrump(hand)
		if s.Trump != want || !approxEqual(s.CallValue, value) {
			t.Fatalf("seed %d: dealer called %s (%.3f), best is %s (%.3f)", seed, s.Trump, s.CallValue, want, value)
		}
		if s.LeftBauerSuit != s.Trump.Partner() {
			t.Fatalf("seed %d: left bower suit %s for trump %s", seed, s.LeftBauerSuit, s.Trump)
		}
		if s.SuitCaller != s.Dealer {
			t.Fatalf("seed %d: caller %d is not dealer %d", seed, s.SuitCaller, s.Dealer)
		}
		if s.DealerSuitCount < 1 || s.DealerSuitCount > 4 {
			t.Fatalf("seed %d: dealer suit count %d", seed, s.DealerSuitCount)
		}
		if s.SuitCallerIsAlone {
			alone++
		}
	}
	// A fair coin: well inside [30%, 70%] for 400 deals
	if alone < deals*3/10 || alone > deals*7/10 {
		t.Errorf("alone flips look biased: %d of %d", alone, deals)
	}
}

func TestChooseTrumpFixed(t *testing.T) {
	s := NewGameState()
	seen := make(map[Suit]bool)
	for seed := uint64(1); seed <= 100; seed++ {
		s.Reset(seed)
		s.Deal()
		s.ChooseTrump(FixedTrump)
		if s.SuitCallerIsAlone {
			t.Fatalf("seed %d: fixed trump must not play alone", seed)
		}
		if s.LeftBauerSuit != s.Trump.Partner() {
			t.Fatalf("seed %d: bad left bower suit", seed)
		}
		seen[s.Trump] = true
	}
	if len(seen) != 4 {
		t.Errorf("Expected all four suits as trump over 100 deals, got %d", len(seen))
	}
}
