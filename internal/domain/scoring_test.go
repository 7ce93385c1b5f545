package domain

import "testing"

func TestSettleZeroSum(t *testing.T) {
	hands := [][]Card{
		nil, // winner
		{{Suit: SuitSpade, Rank: 5}, {Suit: SuitHeart, Rank: 9}},
		{{Suit: SuitClub, Rank: RankAce}, {Suit: SuitJoker, Rank: RankJoker}},
		{{Suit: SuitDiamond, Rank: 4}},
	}
	deltas := Settle(hands, 0, 3, false)

	sum := 0
	for _, d := range deltas {
		sum += d
	}
	if sum != 0 {
		t.Fatalf("settlement must be zero-sum, got %v (sum %d)", deltas, sum)
	}

	if deltas[1] != -2 {
		t.Errorf("seat 1 delta = %d, want -2", deltas[1])
	}
	// joker counts double: 1 + 2
	if deltas[2] != -3 {
		t.Errorf("seat 2 delta = %d, want -3", deltas[2])
	}
	// parent penalty: ceil(1 * 1.5) = 2
	if deltas[3] != -2 {
		t.Errorf("parent delta = %d, want -2", deltas[3])
	}
	if deltas[0] != 7 {
		t.Errorf("winner delta = %d, want 7", deltas[0])
	}
}

func TestSettleParentPenaltyRoundsUp(t *testing.T) {
	tests := []struct {
		loss int
		want int
	}{
		{1, 2}, {2, 3}, {3, 5}, {4, 6}, {5, 8}, {10, 15},
	}
	for _, tt := range tests {
		if got := ParentPenalty(tt.loss); got != tt.want {
			t.Errorf("ParentPenalty(%d) = %d, want %d", tt.loss, got, tt.want)
		}
	}
}

func TestSettleTenhou(t *testing.T) {
	hands := [][]Card{
		nil,
		{{Suit: SuitSpade, Rank: 5}},
		{{Suit: SuitHeart, Rank: 6}, {Suit: SuitClub, Rank: 7}, {Suit: SuitJoker, Rank: RankJoker}},
	}
	deltas := Settle(hands, 0, 1, true)

	// flat 10 each, no parent multiplier on a tenhou
	if deltas[1] != -TenhouPenalty || deltas[2] != -TenhouPenalty {
		t.Fatalf("tenhou losses = %v, want flat %d", deltas, TenhouPenalty)
	}
	if deltas[0] != 2*TenhouPenalty {
		t.Fatalf("winner delta = %d, want %d", deltas[0], 2*TenhouPenalty)
	}
}
