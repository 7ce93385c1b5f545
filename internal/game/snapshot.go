package game

import "daifugo/internal/domain"

// SeatView is the public slice of a seat: everything except the hand
// itself, which only the owning viewer receives.
type SeatView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	HandCount  int    `json:"hand_count"`
	Score      int    `json:"score"`
	RoundDelta int    `json:"round_delta"`
	IsMe       bool   `json:"is_me"`
	IsCPU      bool   `json:"is_cpu"`
	Connected  bool   `json:"connected"`
}

// Snapshot is one viewer's projection of the room, ready for JSON
// transport. Hidden information of other seats never appears in it.
type Snapshot struct {
	RoomID        string        `json:"room_id"`
	Players       []SeatView    `json:"players"`
	MyIdx         int           `json:"my_idx"`
	MyHand        []domain.Card `json:"my_hand"`
	MyScore       int           `json:"my_score"`
	Field         domain.Field  `json:"field"`
	Turn          int           `json:"turn"`
	Parent        int           `json:"parent"`
	RoundOver     bool          `json:"round_over"`
	Logs          []string      `json:"logs"`
	RoundStarted  bool          `json:"round_started"`
	DeckCount     int           `json:"deck_count"`
	EffectPending bool          `json:"effect_pending"`
	EffectCause   int           `json:"effect_cause"`
}

// Snapshot projects the room for the given viewer seat. A negative viewer
// produces a spectator view with no hand.
func (r *Room) Snapshot(viewer int) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		RoomID:        r.ID,
		Players:       make([]SeatView, len(r.seats)),
		MyIdx:         viewer,
		Field:         r.field,
		Turn:          r.turn,
		Parent:        r.parent,
		RoundOver:     r.roundOver,
		Logs:          append([]string(nil), r.logs...),
		RoundStarted:  r.started,
		DeckCount:     len(r.deck),
		EffectPending: r.clearPending,
		EffectCause:   r.clearCause,
	}
	for i, s := range r.seats {
		snap.Players[i] = SeatView{
			ID:         s.ID,
			Name:       s.Name,
			HandCount:  len(s.Hand),
			Score:      s.Score,
			RoundDelta: s.RoundDelta,
			IsMe:       i == viewer,
			IsCPU:      s.IsCPU,
			Connected:  s.Connected,
		}
	}
	if viewer >= 0 && viewer < len(r.seats) {
		snap.MyHand = append([]domain.Card(nil), r.seats[viewer].Hand...)
		snap.MyScore = r.seats[viewer].Score
	} else {
		snap.MyIdx = -1
	}
	return snap
}

// SeatInfo is the roster entry the transports use for routing: which seat
// a connection owns and whether it needs state pushes.
type SeatInfo struct {
	ID        int
	Name      string
	ConnID    string
	IsCPU     bool
	Connected bool
}

// Roster lists the seats for transport-side fanout.
func (r *Room) Roster() []SeatInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]SeatInfo, len(r.seats))
	for i, s := range r.seats {
		out[i] = SeatInfo{ID: s.ID, Name: s.Name, ConnID: s.ConnID, IsCPU: s.IsCPU, Connected: s.Connected}
	}
	return out
}

// SeatByConn resolves a transport identity to its seat id, or -1.
func (r *Room) SeatByConn(connID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.seats {
		if !s.IsCPU && s.Connected && s.ConnID == connID {
			return s.ID
		}
	}
	return -1
}
