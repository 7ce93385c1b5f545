package internal

import (
	"fmt"
	"sort"

	"daifugo/internal/domain"
)

// Candidate is a possible play expressed as positions in the hand.
type Candidate struct {
	Indices []int
}

// GenerateCandidates enumerates plays worth considering for the hand and
// filters them through the play validator. Generated shapes: same-rank
// subsets per rank (the "2" and jokers only ever as singletons), those
// subsets augmented with jokers, and sliding-window sequences and paired
// sequences with joker substitution for gaps. Window length follows the
// field when one exists, otherwise lengths 3..5 (and two- or three-pair
// runs) are tried.
func GenerateCandidates(hand []domain.Card, field domain.Field) []Candidate {
	byRank := make(map[int][]int)
	var ranks []int
	var jokers []int
	for i, c := range hand {
		if c.IsJoker() {
			jokers = append(jokers, i)
			continue
		}
		if len(byRank[c.Rank]) == 0 {
			ranks = append(ranks, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], i)
	}
	sort.Ints(ranks)

	var raw [][]int
	for _, rank := range ranks {
		idxs := byRank[rank]
		if rank == domain.RankTwo {
			for _, i := range idxs {
				raw = append(raw, []int{i})
			}
			continue
		}
		for size := 1; size <= len(idxs); size++ {
			base := idxs[:size]
			raw = append(raw, base)
			for extra := 1; extra <= len(jokers); extra++ {
				aug := make([]int, 0, size+extra)
				aug = append(aug, base...)
				aug = append(aug, jokers[:extra]...)
				raw = append(raw, aug)
			}
		}
	}
	for _, i := range jokers {
		raw = append(raw, []int{i})
	}

	lengths := []int{3, 4, 5}
	pairRuns := []int{2, 3}
	if !field.Empty() {
		lengths = []int{len(field.Cards)}
		pairRuns = nil
		if field.Type == domain.PairSequence {
			pairRuns = []int{len(field.Cards) / 2}
		}
	}
	for _, length := range lengths {
		if length < 3 || length > len(hand) {
			continue
		}
		for low := domain.RankMin; low+length-1 <= domain.RankAce; low++ {
			if idxs, ok := windowIndices(byRank, jokers, low, length); ok {
				raw = append(raw, idxs)
			}
		}
	}
	for _, pairs := range pairRuns {
		if pairs < 2 || pairs*2 > len(hand) {
			continue
		}
		for low := domain.RankMin; low+pairs-1 <= domain.RankAce; low++ {
			if idxs, ok := pairWindowIndices(byRank, jokers, low, pairs); ok {
				raw = append(raw, idxs)
			}
		}
	}

	seen := make(map[string]bool)
	var out []Candidate
	for _, idxs := range raw {
		sorted := append([]int(nil), idxs...)
		sort.Ints(sorted)
		key := fmt.Sprint(sorted)
		if seen[key] {
			continue
		}
		seen[key] = true

		selection := make([]domain.Card, len(sorted))
		for i, idx := range sorted {
			selection[i] = hand[idx]
		}
		if domain.CanPlay(selection, field) {
			out = append(out, Candidate{Indices: sorted})
		}
	}
	return out
}

// windowIndices assembles one card (or joker) per rank of the window
// [low, low+length-1], or reports failure when the jokers run out.
func windowIndices(byRank map[int][]int, jokers []int, low, length int) ([]int, bool) {
	idxs := make([]int, 0, length)
	used := 0
	for rank := low; rank < low+length; rank++ {
		if cards := byRank[rank]; len(cards) > 0 {
			idxs = append(idxs, cards[0])
			continue
		}
		if used >= len(jokers) {
			return nil, false
		}
		idxs = append(idxs, jokers[used])
		used++
	}
	return idxs, true
}

// pairWindowIndices assembles two cards per rank of the window
// [low, low+pairs-1], topping up missing halves with jokers, or reports
// failure when the jokers run out.
func pairWindowIndices(byRank map[int][]int, jokers []int, low, pairs int) ([]int, bool) {
	idxs := make([]int, 0, pairs*2)
	used := 0
	for rank := low; rank < low+pairs; rank++ {
		cards := byRank[rank]
		if len(cards) > 2 {
			cards = cards[:2]
		}
		idxs = append(idxs, cards...)
		for need := 2 - len(cards); need > 0; need-- {
			if used >= len(jokers) {
				return nil, false
			}
			idxs = append(idxs, jokers[used])
			used++
		}
	}
	return idxs, true
}
