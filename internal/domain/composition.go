package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CompositionType classifies the shape of a played set of cards.
type CompositionType int

const (
	Invalid CompositionType = iota
	Single
	Pair
	Sequence
	PairSequence
)

var compositionNames = map[CompositionType]string{
	Invalid:      "none",
	Single:       "single",
	Pair:         "pair",
	Sequence:     "sequence",
	PairSequence: "pair_sequence",
}

func (t CompositionType) String() string {
	if n, ok := compositionNames[t]; ok {
		return n
	}
	return "none"
}

// MarshalJSON encodes the type by name so state payloads stay readable.
func (t CompositionType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

var compositionByName = func() map[string]CompositionType {
	m := make(map[string]CompositionType, len(compositionNames))
	for t, n := range compositionNames {
		m[n] = t
	}
	return m
}()

// UnmarshalJSON decodes the name form written by MarshalJSON.
func (t *CompositionType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, ok := compositionByName[name]
	if !ok {
		return fmt.Errorf("unknown composition type %q", name)
	}
	*t = v
	return nil
}

// Composition is the classified shape of a candidate play.
//
// Rank is the comparison rank: the shared rank for singles and groups, the
// low end for sequences, and 99 for an all-joker set. A sequence holding
// surplus jokers can slide its low end anywhere in [Rank, FlexHigh]; for
// every other shape FlexHigh equals Rank.
type Composition struct {
	Type     CompositionType
	Rank     int
	Length   int
	FlexHigh int
}

// AllJoker reports whether the composition is made of jokers only. Such a
// set matches any field type of equal length.
func (c Composition) AllJoker() bool {
	return c.Rank == RankJoker
}

// CoversRank reports whether the composition can present the given
// comparison rank, accounting for surplus-joker flexibility.
func (c Composition) CoversRank(rank int) bool {
	return rank >= c.Rank && rank <= c.FlexHigh
}

// AnalyzeComposition classifies a non-empty selection of cards, returning
// a Composition with Type Invalid when the selection is not a legal shape.
//
// The "2" (rank 15) is single-only. Jokers substitute for any card of a
// group or sequence; surplus jokers extend a sequence's low end.
func AnalyzeComposition(cards []Card) Composition {
	n := len(cards)
	if n == 0 {
		return Composition{Type: Invalid}
	}

	var rest []Card
	jokers := 0
	for _, c := range cards {
		if c.IsJoker() {
			jokers++
			continue
		}
		if Order(c.Rank) < 0 {
			return Composition{Type: Invalid}
		}
		if c.Rank == RankTwo && n > 1 {
			return Composition{Type: Invalid}
		}
		rest = append(rest, c)
	}

	// All jokers: a same-rank group at the top of the order. Three or more
	// act as a wild sequence and match whatever the table holds.
	if len(rest) == 0 {
		t := Sequence
		switch n {
		case 1:
			t = Single
		case 2:
			t = Pair
		}
		return Composition{Type: t, Rank: RankJoker, Length: n, FlexHigh: RankJoker}
	}

	sort.Slice(rest, func(i, j int) bool { return Order(rest[i].Rank) < Order(rest[j].Rank) })

	sameRank := true
	for _, c := range rest {
		if c.Rank != rest[0].Rank {
			sameRank = false
			break
		}
	}
	if sameRank {
		t := Pair
		if n == 1 {
			t = Single
		}
		return Composition{Type: t, Rank: rest[0].Rank, Length: n, FlexHigh: rest[0].Rank}
	}

	if comp, ok := analyzeSequence(rest, jokers, n); ok {
		return comp
	}
	if comp, ok := analyzePairSequence(rest, jokers, n); ok {
		return comp
	}
	return Composition{Type: Invalid}
}

// analyzeSequence handles runs of pairwise-distinct ranks with joker fill.
// rest is sorted and holds at least two distinct ranks.
func analyzeSequence(rest []Card, jokers, n int) (Composition, bool) {
	if n < 3 {
		return Composition{}, false
	}
	for i := 1; i < len(rest); i++ {
		if rest[i].Rank == rest[i-1].Rank {
			return Composition{}, false
		}
	}

	minRank := rest[0].Rank
	maxRank := rest[len(rest)-1].Rank
	span := Order(maxRank) - Order(minRank) + 1
	missing := span - len(rest)
	if jokers < missing {
		return Composition{}, false
	}

	surplus := jokers - missing
	low := minRank - surplus
	if low < RankMin {
		low = RankMin
	}
	return Composition{Type: Sequence, Rank: low, Length: n, FlexHigh: minRank}, true
}

// analyzePairSequence handles consecutive-rank pairs, with jokers filling
// any missing half- or whole-pair. Surplus jokers extend the low end a
// whole pair at a time.
func analyzePairSequence(rest []Card, jokers, n int) (Composition, bool) {
	if n < 4 || n%2 != 0 {
		return Composition{}, false
	}

	counts := make(map[int]int)
	var ranks []int
	for _, c := range rest {
		if counts[c.Rank] == 0 {
			ranks = append(ranks, c.Rank)
		}
		counts[c.Rank]++
		if counts[c.Rank] > 2 {
			return Composition{}, false
		}
	}
	sort.Ints(ranks)

	minRank := ranks[0]
	maxRank := ranks[len(ranks)-1]
	span := Order(maxRank) - Order(minRank) + 1
	needed := span*2 - len(rest)
	if jokers < needed {
		return Composition{}, false
	}

	surplus := jokers - needed // even: n and span*2 are both even
	low := minRank - surplus/2
	if low < RankMin {
		low = RankMin
	}
	return Composition{Type: PairSequence, Rank: low, Length: n, FlexHigh: minRank}, true
}
