package bot

import "daifugo/internal/domain"

// Move is the decision of an automated seat, expressed as positions in
// its own hand. Pass means no cards are played.
type Move struct {
	Pass    bool
	Indices []int
}

// Brain picks a move for a hand against the current table field.
type Brain interface {
	ChooseMove(hand []domain.Card, field domain.Field) (Move, error)
}
