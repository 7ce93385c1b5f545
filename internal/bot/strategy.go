package bot

import (
	"sort"

	"daifugo/internal/bot/internal"
	"daifugo/internal/domain"
)

// StandardBrain is the default heuristic. Leading an empty field it sheds
// bulk: the longest legal play, lowest summed rank on ties. Following, it
// conserves strength: the legal play with the lowest summed rank. It
// passes only when no legal candidate exists.
type StandardBrain struct{}

func (b *StandardBrain) ChooseMove(hand []domain.Card, field domain.Field) (Move, error) {
	candidates := internal.GenerateCandidates(hand, field)
	if len(candidates) == 0 {
		return Move{Pass: true}, nil
	}

	leading := field.Empty()
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if leading && len(ci.Indices) != len(cj.Indices) {
			return len(ci.Indices) > len(cj.Indices)
		}
		return orderSum(hand, ci) < orderSum(hand, cj)
	})

	return Move{Indices: candidates[0].Indices}, nil
}

func orderSum(hand []domain.Card, c internal.Candidate) int {
	sum := 0
	for _, idx := range c.Indices {
		sum += domain.Order(hand[idx].Rank)
	}
	return sum
}
