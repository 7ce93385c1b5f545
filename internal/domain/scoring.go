package domain

// TenhouPenalty is the flat loss charged to every non-winner when the
// parent wins with its entire starting hand on the round's first play.
const TenhouPenalty = 10

// HandPenalty is the card-count loss for a leftover hand. Jokers count
// double.
func HandPenalty(hand []Card) int {
	loss := 0
	for _, c := range hand {
		if c.IsJoker() {
			loss += 2
		} else {
			loss++
		}
	}
	return loss
}

// ParentPenalty scales the parent seat's loss by 1.5, rounded up. The
// parent leads the round and pays extra for failing to win it.
func ParentPenalty(loss int) int {
	return (loss*3 + 1) / 2
}

// Settle computes the zero-sum score deltas for a finished round. hands is
// indexed by seat id. Every non-winner loses its hand penalty (or the flat
// Tenhou penalty), the parent at the raised rate, and the winner collects
// the total.
func Settle(hands [][]Card, winnerSeat, parentSeat int, tenhou bool) []int {
	deltas := make([]int, len(hands))
	total := 0
	for seat, hand := range hands {
		if seat == winnerSeat {
			continue
		}
		loss := HandPenalty(hand)
		if tenhou {
			loss = TenhouPenalty
		} else if seat == parentSeat {
			loss = ParentPenalty(loss)
		}
		deltas[seat] = -loss
		total += loss
	}
	deltas[winnerSeat] = total
	return deltas
}
