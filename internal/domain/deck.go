package domain

import (
	"math/rand"
	"sort"
)

// DeckSize is the full deck: 52 standard cards plus two jokers.
const DeckSize = 54

// NewDeck returns an ordered 54-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := RankMin; r <= RankTwo; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	deck = append(deck, Card{Suit: SuitJoker, Rank: RankJoker})
	deck = append(deck, Card{Suit: SuitJoker, Rank: RankJoker})
	return deck
}

// Shuffle permutes the deck in place with the given source.
func Shuffle(rng *rand.Rand, deck []Card) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// SortHand orders a hand by the total order, suits breaking ties.
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		oi, oj := Order(hand[i].Rank), Order(hand[j].Rank)
		if oi != oj {
			return oi < oj
		}
		return hand[i].Suit < hand[j].Suit
	})
}
