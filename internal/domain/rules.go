package domain

// Field is the most recently accepted play on the table. Rank holds the
// comparison rank of the accepted composition; Owner is the seat that
// placed it, or -1 when nobody owns the table.
type Field struct {
	Cards []Card          `json:"cards"`
	Type  CompositionType `json:"type"`
	Rank  int             `json:"rank"`
	Owner int             `json:"owner"`
}

// EmptyField returns an unowned, cardless table.
func EmptyField() Field {
	return Field{Owner: -1}
}

// Empty reports whether no seat currently owns the table.
func (f Field) Empty() bool {
	return len(f.Cards) == 0
}

// CanPlay judges whether the selection may legally be placed on the field.
//
// The "2" singleton trumps any lone card but never a combination. A lone
// joker is never playable. On an empty field any legal shape leads; on an
// occupied field length and type must match (all-joker sets match any
// type) and the comparison rank must be the field rank's successor on the
// total order. An ace field is only ever topped by the "2" singleton.
func CanPlay(selection []Card, field Field) bool {
	if len(selection) == 0 {
		return false
	}
	for _, c := range selection {
		if c.Rank == RankTwo && len(selection) > 1 {
			return false
		}
	}
	if len(selection) == 1 {
		if selection[0].Rank == RankTwo {
			return field.Empty() || len(field.Cards) == 1
		}
		if selection[0].IsJoker() {
			return false
		}
	}

	comp := AnalyzeComposition(selection)
	if comp.Type == Invalid {
		return false
	}
	if field.Empty() {
		return true
	}
	if comp.Length != len(field.Cards) {
		return false
	}
	if !comp.AllJoker() && field.Rank != RankJoker && comp.Type != field.Type {
		return false
	}
	if field.Rank == RankAce {
		// Only the "2" can follow an ace, and it is single-only, so pairs
		// and sequences topping out at the ace end the climb.
		return false
	}
	if comp.AllJoker() {
		return true
	}
	if field.Rank == RankJoker {
		return false
	}
	return comp.CoversRank(field.Rank + 1)
}
