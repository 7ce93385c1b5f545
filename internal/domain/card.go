package domain

import (
	"fmt"
	"strings"
)

// Suits used by the deck. Jokers carry their own pseudo-suit.
const (
	SuitSpade   = "♠"
	SuitHeart   = "♥"
	SuitDiamond = "♦"
	SuitClub    = "♣"
	SuitJoker   = "JK"
)

// Suits lists the four natural suits in deal order.
var Suits = []string{SuitSpade, SuitHeart, SuitDiamond, SuitClub}

// Rank values. 3..10 are face value, 11..13 are J/Q/K, 14 is the ace,
// 15 is the "2" (strongest natural card) and 99 is the joker.
const (
	RankMin   = 3
	RankKing  = 13
	RankAce   = 14
	RankTwo   = 15
	RankJoker = 99
)

// Card is a single card of the 54-card deck.
type Card struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

// sortOrder positions each legal rank on the total order used for
// comparison and sorting: 3 < 4 < ... < K < A < 2 < Joker.
var sortOrder = map[int]int{
	3: 0, 4: 1, 5: 2, 6: 3, 7: 4, 8: 5, 9: 6, 10: 7,
	11: 8, 12: 9, 13: 10, RankAce: 11, RankTwo: 12, RankJoker: 13,
}

// NewCard builds a card, rejecting ranks outside the legal set.
func NewCard(suit string, rank int) (Card, error) {
	if _, ok := sortOrder[rank]; !ok {
		return Card{}, fmt.Errorf("illegal card rank %d", rank)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// Order returns the position of a rank on the total order, or -1 for a
// rank outside the legal set.
func Order(rank int) int {
	o, ok := sortOrder[rank]
	if !ok {
		return -1
	}
	return o
}

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool {
	return c.Rank == RankJoker
}

var rankLabels = map[int]string{11: "J", 12: "Q", 13: "K", RankAce: "A", RankTwo: "2"}

// Label renders a card the way the round log shows it, e.g. ♠8 or JK.
func (c Card) Label() string {
	if c.IsJoker() {
		return "JK"
	}
	if l, ok := rankLabels[c.Rank]; ok {
		return c.Suit + l
	}
	return fmt.Sprintf("%s%d", c.Suit, c.Rank)
}

// FormatCards renders a play for the round log, e.g. [♠8,♥J,JK].
func FormatCards(cards []Card) string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.Label()
	}
	return "[" + strings.Join(labels, ",") + "]"
}
