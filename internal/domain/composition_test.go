package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnalyzeComposition(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected Composition
	}{
		{
			name:     "Single",
			cards:    []Card{{Suit: SuitSpade, Rank: 7}},
			expected: Composition{Type: Single, Rank: 7, Length: 1, FlexHigh: 7},
		},
		{
			name:     "Single two",
			cards:    []Card{{Suit: SuitHeart, Rank: RankTwo}},
			expected: Composition{Type: Single, Rank: RankTwo, Length: 1, FlexHigh: RankTwo},
		},
		{
			name:     "Pair",
			cards:    []Card{{Suit: SuitSpade, Rank: 9}, {Suit: SuitClub, Rank: 9}},
			expected: Composition{Type: Pair, Rank: 9, Length: 2, FlexHigh: 9},
		},
		{
			name:     "Joker-filled pair",
			cards:    []Card{{Suit: SuitSpade, Rank: 9}, {Suit: SuitJoker, Rank: RankJoker}},
			expected: Composition{Type: Pair, Rank: 9, Length: 2, FlexHigh: 9},
		},
		{
			name: "Triple counts as pair group",
			cards: []Card{
				{Suit: SuitSpade, Rank: 5}, {Suit: SuitHeart, Rank: 5}, {Suit: SuitClub, Rank: 5},
			},
			expected: Composition{Type: Pair, Rank: 5, Length: 3, FlexHigh: 5},
		},
		{
			name: "Sequence",
			cards: []Card{
				{Suit: SuitSpade, Rank: 5}, {Suit: SuitHeart, Rank: 6}, {Suit: SuitClub, Rank: 7},
			},
			expected: Composition{Type: Sequence, Rank: 5, Length: 3, FlexHigh: 5},
		},
		{
			name: "Sequence with gap filled by joker",
			cards: []Card{
				{Suit: SuitSpade, Rank: 5}, {Suit: SuitJoker, Rank: RankJoker}, {Suit: SuitClub, Rank: 7},
			},
			expected: Composition{Type: Sequence, Rank: 5, Length: 3, FlexHigh: 5},
		},
		{
			name: "Sequence with surplus joker slides low",
			cards: []Card{
				{Suit: SuitSpade, Rank: 7}, {Suit: SuitHeart, Rank: 8}, {Suit: SuitJoker, Rank: RankJoker},
			},
			expected: Composition{Type: Sequence, Rank: 6, Length: 3, FlexHigh: 7},
		},
		{
			name: "Sequence clamped at the bottom rank",
			cards: []Card{
				{Suit: SuitSpade, Rank: 4}, {Suit: SuitHeart, Rank: 5},
				{Suit: SuitJoker, Rank: RankJoker}, {Suit: SuitJoker, Rank: RankJoker},
			},
			expected: Composition{Type: Sequence, Rank: RankMin, Length: 4, FlexHigh: 4},
		},
		{
			name: "Sequence across king and ace",
			cards: []Card{
				{Suit: SuitSpade, Rank: 12}, {Suit: SuitHeart, Rank: RankKing}, {Suit: SuitClub, Rank: RankAce},
			},
			expected: Composition{Type: Sequence, Rank: 12, Length: 3, FlexHigh: 12},
		},
		{
			name: "Paired sequence",
			cards: []Card{
				{Suit: SuitSpade, Rank: 9}, {Suit: SuitHeart, Rank: 9},
				{Suit: SuitSpade, Rank: 10}, {Suit: SuitHeart, Rank: 10},
			},
			expected: Composition{Type: PairSequence, Rank: 9, Length: 4, FlexHigh: 9},
		},
		{
			name: "Paired sequence with joker half-pair",
			cards: []Card{
				{Suit: SuitSpade, Rank: 9}, {Suit: SuitHeart, Rank: 9},
				{Suit: SuitSpade, Rank: 10}, {Suit: SuitJoker, Rank: RankJoker},
			},
			expected: Composition{Type: PairSequence, Rank: 9, Length: 4, FlexHigh: 9},
		},
		{
			name: "All-joker pair",
			cards: []Card{
				{Suit: SuitJoker, Rank: RankJoker}, {Suit: SuitJoker, Rank: RankJoker},
			},
			expected: Composition{Type: Pair, Rank: RankJoker, Length: 2, FlexHigh: RankJoker},
		},
		{
			name:     "Reject two in a pair",
			cards:    []Card{{Suit: SuitSpade, Rank: RankTwo}, {Suit: SuitHeart, Rank: RankTwo}},
			expected: Composition{Type: Invalid},
		},
		{
			name: "Reject sequence missing too many ranks",
			cards: []Card{
				{Suit: SuitSpade, Rank: 5}, {Suit: SuitHeart, Rank: 9}, {Suit: SuitJoker, Rank: RankJoker},
			},
			expected: Composition{Type: Invalid},
		},
		{
			name: "Reject mixed group",
			cards: []Card{
				{Suit: SuitSpade, Rank: 5}, {Suit: SuitHeart, Rank: 7},
			},
			expected: Composition{Type: Invalid},
		},
		{
			name: "Reject odd paired sequence",
			cards: []Card{
				{Suit: SuitSpade, Rank: 9}, {Suit: SuitHeart, Rank: 9},
				{Suit: SuitSpade, Rank: 10}, {Suit: SuitHeart, Rank: 10},
				{Suit: SuitClub, Rank: 11},
			},
			expected: Composition{Type: Invalid},
		},
		{
			name:     "Reject empty selection",
			cards:    nil,
			expected: Composition{Type: Invalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeComposition(tt.cards)
			if tt.expected.Type == Invalid {
				if got.Type != Invalid {
					t.Fatalf("expected invalid shape, got %+v", got)
				}
				return
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("AnalyzeComposition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeCompositionIdempotent(t *testing.T) {
	cards := []Card{
		{Suit: SuitSpade, Rank: 7}, {Suit: SuitHeart, Rank: 8}, {Suit: SuitJoker, Rank: RankJoker},
	}
	first := AnalyzeComposition(cards)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, AnalyzeComposition(cards)); diff != "" {
			t.Fatalf("classifier not deterministic on run %d (-first +got):\n%s", i, diff)
		}
	}
	// the input order must not matter either
	shuffled := []Card{cards[2], cards[0], cards[1]}
	if diff := cmp.Diff(first, AnalyzeComposition(shuffled)); diff != "" {
		t.Fatalf("classifier depends on input order (-want +got):\n%s", diff)
	}
}

func TestCompositionTypeJSONRoundTrip(t *testing.T) {
	for typ, name := range map[CompositionType]string{
		Invalid: "none", Single: "single", Pair: "pair",
		Sequence: "sequence", PairSequence: "pair_sequence",
	} {
		data, err := json.Marshal(typ)
		if err != nil {
			t.Fatalf("marshal %v: %v", typ, err)
		}
		if string(data) != `"`+name+`"` {
			t.Errorf("marshal %v = %s, want %q", typ, data, name)
		}
		var back CompositionType
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != typ {
			t.Errorf("round trip of %v came back as %v", typ, back)
		}
	}

	var bad CompositionType
	if err := json.Unmarshal([]byte(`"flush"`), &bad); err == nil {
		t.Error("unknown type name must not decode")
	}
}

func TestFieldJSONRoundTrip(t *testing.T) {
	field := Field{
		Cards: []Card{{Suit: SuitSpade, Rank: 9}, {Suit: SuitClub, Rank: 9}},
		Type:  Pair,
		Rank:  9,
		Owner: 2,
	}
	data, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal field: %v", err)
	}
	var back Field
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}
	if diff := cmp.Diff(field, back); diff != "" {
		t.Errorf("field round trip mismatch (-want +got):\n%s", diff)
	}
}
