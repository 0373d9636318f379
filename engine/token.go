package engine

import "fmt"

// RankToken is a card's identity once trump and lead suit are known.
// The numeric value is the strength ordinal: a larger token always wins.
type RankToken uint8

const (
	TokenNone RankToken = iota
	TokenNine
	TokenTen
	TokenJack
	TokenQueen
	TokenKing
	TokenAce
	TokenNineTrump
	TokenTenTrump
	TokenQueenTrump
	TokenKingTrump
	TokenAceTrump
	TokenLeftBauerTrump
	TokenJackTrump

	NumTokens = int(TokenJackTrump) + 1
)

var tokenNames = [NumTokens]string{
	"None",
	"Nine",
	"Ten",
	"Jack",
	"Queen",
	"King",
	"Ace",
	"NineTrump",
	"TenTrump",
	"QueenTrump",
	"KingTrump",
	"AceTrump",
	"LeftBauerTrump",
	"JackTrump",
}

// EstimatedRankValues is the prior win probability of each token, used only
// by the dealer's hand value heuristic.
var EstimatedRankValues = [NumTokens]float64{
	TokenNone:           0,
	TokenNine:           .02754,
	TokenTen:            .05086,
	TokenJack:           .09659,
	TokenQueen:          .19607,
	TokenKing:           .39910,
	TokenAce:            .72050,
	TokenNineTrump:      .27270,
	TokenTenTrump:       .29242,
	TokenQueenTrump:     .32882,
	TokenKingTrump:      .39150,
	TokenAceTrump:       .46907,
	TokenLeftBauerTrump: .76092,
	TokenJackTrump:      1,
}

// plainTokens and trumpTokens are indexed by Rank. The Jack of trump has no
// "<rank>Trump" slot of its own; it is the right bower.
var plainTokens = [6]RankToken{TokenNine, TokenTen, TokenJack, TokenQueen, TokenKing, TokenAce}
var trumpTokens = [6]RankToken{TokenNineTrump, TokenTenTrump, TokenJackTrump, TokenQueenTrump, TokenKingTrump, TokenAceTrump}

func (t RankToken) String() string {
	if int(t) < NumTokens {
		return tokenNames[t]
	}
	return fmt.Sprintf("RankToken(%d)", uint8(t))
}

// Ordinal is the token's position in the strength order (0..13)
func (t RankToken) Ordinal() int {
	return int(t)
}

// IsTrump reports whether the token belongs to the trump suit (left bower included)
func (t RankToken) IsTrump() bool {
	return t >= TokenNineTrump
}

// EstimatedValue looks up the token's prior in EstimatedRankValues
func (t RankToken) EstimatedValue() float64 {
	return EstimatedRankValues[t]
}

// Tokens lists every token in ascending strength
func Tokens() []RankToken {
	tokens := make([]RankToken, NumTokens)
	for i := range tokens {
		tokens[i] = RankToken(i)
	}
	return tokens
}

// IsLeftBower reports whether c is the Jack of the trump's same-colour suit
func IsLeftBower(c Card, leftBauerSuit Suit) bool {
	return c.Rank == Jack && c.Suit == leftBauerSuit
}

// ResolveToken maps a card to its token for the given trump, left-bower
// suit and lead suit (NoSuit when no card has been led).
func ResolveToken(c Card, trump, leftBauerSuit, leadSuit Suit) RankToken {
	if IsLeftBower(c, leftBauerSuit) {
		return TokenLeftBauerTrump
	}
	if c.Suit == trump {
		return trumpTokens[c.Rank]
	}
	if leadSuit != NoSuit && c.Suit == leadSuit {
		return plainTokens[c.Rank]
	}
	return TokenNone
}
