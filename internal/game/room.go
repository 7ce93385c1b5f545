package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"daifugo/internal/bot"
	"daifugo/internal/domain"
)

// Options tunes a room. The zero value is usable: NewRoom fills in the
// defaults.
type Options struct {
	MaxSeats   int
	CPUDelay   time.Duration // pause before an automated seat acts
	ClearPause time.Duration // pause between a field clear and the draw
	Rng        *rand.Rand
}

// DefaultOptions mirrors the pacing of the reference client experience.
func DefaultOptions() Options {
	return Options{
		MaxSeats:   DefaultMaxSeats,
		CPUDelay:   time.Second,
		ClearPause: time.Second,
	}
}

// Seat is one roster position. Its id is the seat's fixed place in turn
// order, assigned at join time and kept across reconnects.
type Seat struct {
	ID         int
	Name       string
	ConnID     string
	Hand       []domain.Card
	Score      int
	RoundDelta int
	IsCPU      bool
	Connected  bool

	agent *bot.Agent
}

// Room owns one round state machine and its roster. It is the only
// mutable aggregate: every operation takes the room lock for its full
// duration, and snapshots for broadcast are taken after the mutation
// returns. Rooms live for the process lifetime; eviction is the
// transport's concern.
type Room struct {
	ID string

	mu    sync.Mutex
	opts  Options
	rng   *rand.Rand
	seats []*Seat

	deck      []domain.Card
	field     domain.Field
	turn      int
	parent    int
	passCount int
	firstPlay bool
	roundOver bool
	started   bool
	logs      []string

	// deferred field-clear effect (8-cut, 2-power, all-pass reshuffle)
	clearPending bool
	clearDue     time.Time
	clearCause   int // seat that caused the clear, -1 for none
	afterSeat    int // seat whose emptied hand ends the round post-draw
	afterTenhou  bool

	// deferred automated turn; zero when nothing is scheduled
	cpuDue time.Time
}

// NewRoom builds an empty room. A nil Options rng gets a time-seeded
// source private to the room.
func NewRoom(id string, opts Options) *Room {
	if opts.MaxSeats <= 0 {
		opts.MaxSeats = DefaultMaxSeats
	}
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Room{
		ID:         id,
		opts:       opts,
		rng:        rng,
		field:      domain.EmptyField(),
		clearCause: -1,
		afterSeat:  -1,
	}
}

// Join adds a seat for the named player, or rebinds a disconnected seat
// with the same handle to the new transport identity once a round is
// running. Returns the seat id.
func (r *Room) Join(connID, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		for _, s := range r.seats {
			if !s.IsCPU && !s.Connected && s.Name == name {
				s.ConnID = connID
				s.Connected = true
				r.appendLog(fmt.Sprintf("%s reconnected.", name))
				return s.ID, nil
			}
		}
		return -1, ErrRoomStarted
	}
	if len(r.seats) >= r.opts.MaxSeats {
		return -1, ErrRoomFull
	}

	seat := &Seat{ID: len(r.seats), Name: name, ConnID: connID, Connected: true}
	r.seats = append(r.seats, seat)
	r.appendLog(fmt.Sprintf("%s joined.", name))
	return seat.ID, nil
}

// AddCPU seats an automated player. Only possible before the round starts.
func (r *Room) AddCPU(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return -1, ErrRoomStarted
	}
	if len(r.seats) >= r.opts.MaxSeats {
		return -1, ErrRoomFull
	}

	seat := &Seat{
		ID:        len(r.seats),
		Name:      name,
		IsCPU:     true,
		Connected: true,
		agent:     bot.NewAgent(name),
	}
	r.seats = append(r.seats, seat)
	return seat.ID, nil
}

// StartRound begins a fresh match: scores reset, new deck, new deal.
func (r *Room) StartRound() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrRoomStarted
	}
	if len(r.seats) < MinSeatsToStart {
		return ErrTooFewSeats
	}
	r.started = true
	r.initRound(false, time.Now())
	return nil
}

// NextRound re-deals while keeping cumulative scores. Only legal once the
// current round has settled.
func (r *Room) NextRound() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotStarted
	}
	if !r.roundOver {
		return ErrRoundRunning
	}
	r.initRound(true, time.Now())
	return nil
}

// ResetRound re-deals and zeroes the scores.
func (r *Room) ResetRound() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotStarted
	}
	r.initRound(false, time.Now())
	return nil
}

func (r *Room) initRound(keepScores bool, now time.Time) {
	for _, s := range r.seats {
		if !keepScores {
			s.Score = 0
		}
		s.RoundDelta = 0
		s.Hand = nil
	}

	r.deck = domain.NewDeck()
	domain.Shuffle(r.rng, r.deck)

	n := len(r.seats)
	for dealt := 0; dealt < CardsPerDeal; dealt++ {
		for i := 0; i < n; i++ {
			idx := (r.parent + i) % n
			if card, ok := r.draw(); ok {
				r.seats[idx].Hand = append(r.seats[idx].Hand, card)
			}
		}
	}
	for _, s := range r.seats {
		domain.SortHand(s.Hand)
	}

	r.field = domain.EmptyField()
	r.turn = r.parent
	r.passCount = 0
	r.firstPlay = true
	r.roundOver = false
	r.clearPending = false
	r.clearCause = -1
	r.afterSeat = -1
	r.afterTenhou = false
	r.logs = nil
	r.appendLog(fmt.Sprintf("--- Round start (parent: %s) ---", r.seats[r.parent].Name))
	r.scheduleCPU(now)
}

// SubmitPlay plays the cards at the given hand positions for the seat.
// The composition is validated against the pre-removal field; rejections
// leave state untouched.
func (r *Room) SubmitPlay(seatID int, indices []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.play(seatID, indices, time.Now())
}

func (r *Room) play(seatID int, indices []int, now time.Time) error {
	if err := r.checkTurn(seatID); err != nil {
		return err
	}
	seat := r.seats[seatID]

	selection, err := pickCards(seat.Hand, indices)
	if err != nil {
		return err
	}
	if !domain.CanPlay(selection, r.field) {
		return ErrIllegalPlay
	}
	comp := domain.AnalyzeComposition(selection)

	tenhou := r.firstPlay && seatID == r.parent && len(selection) == CardsPerDeal

	removed := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(removed)))
	for _, idx := range removed {
		seat.Hand = append(seat.Hand[:idx], seat.Hand[idx+1:]...)
	}

	r.appendLog(fmt.Sprintf("%s played %s", seat.Name, domain.FormatCards(selection)))
	r.field = domain.Field{Cards: selection, Type: comp.Type, Rank: comp.Rank, Owner: seatID}
	r.passCount = 0
	r.firstPlay = false

	if cut, power := containsClearRank(selection); cut || power {
		if cut {
			r.appendLog("8-cut!")
		} else {
			r.appendLog("2-power!")
		}
		r.beginClear(seatID, seatID, tenhou, now)
		return nil
	}

	if len(seat.Hand) == 0 {
		r.endRound(seatID, tenhou)
		return nil
	}

	r.turn = (r.turn + 1) % len(r.seats)
	r.scheduleCPU(now)
	return nil
}

// SubmitPass passes the turn for the seat. When every seat but the field
// owner has passed, the field clears and all seats draw.
func (r *Room) SubmitPass(seatID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pass(seatID, time.Now())
}

func (r *Room) pass(seatID int, now time.Time) error {
	if err := r.checkTurn(seatID); err != nil {
		return err
	}

	r.appendLog(fmt.Sprintf("%s passed.", r.seats[seatID].Name))
	r.passCount++
	r.firstPlay = false
	r.turn = (r.turn + 1) % len(r.seats)

	if r.passCount >= len(r.seats)-1 {
		r.appendLog("Field cleared")
		r.passCount = 0
		r.beginClear(r.field.Owner, -1, false, now)
		return nil
	}

	r.scheduleCPU(now)
	return nil
}

func (r *Room) checkTurn(seatID int) error {
	if !r.started {
		return ErrNotStarted
	}
	if r.roundOver {
		return ErrRoundOver
	}
	if r.clearPending {
		return ErrEffectPending
	}
	if seatID < 0 || seatID >= len(r.seats) {
		return ErrUnknownSeat
	}
	if seatID != r.turn {
		return ErrNotYourTurn
	}
	return nil
}

// beginClear freezes the table with the clearing play visible. The draw
// and the actual clear run when the pause elapses (Tick).
func (r *Room) beginClear(cause, afterSeat int, tenhou bool, now time.Time) {
	r.clearPending = true
	r.clearDue = now.Add(r.opts.ClearPause)
	r.clearCause = cause
	r.afterSeat = afterSeat
	r.afterTenhou = tenhou
	r.cpuDue = time.Time{}
}

func (r *Room) resolveClear(now time.Time) {
	r.clearPending = false
	r.clearCause = -1

	if len(r.deck) > 0 {
		r.appendLog("Draw phase (all seats draw 1)")
		n := len(r.seats)
		for i := 0; i < n; i++ {
			idx := (r.parent + i) % n
			card, ok := r.draw()
			if !ok {
				break
			}
			r.seats[idx].Hand = append(r.seats[idx].Hand, card)
			domain.SortHand(r.seats[idx].Hand)
		}
	}
	r.field = domain.EmptyField()

	if r.afterSeat >= 0 && len(r.seats[r.afterSeat].Hand) == 0 {
		r.endRound(r.afterSeat, r.afterTenhou)
	}
	r.afterSeat = -1
	r.afterTenhou = false
	if !r.roundOver {
		r.scheduleCPU(now)
	}
}

func (r *Room) endRound(winner int, tenhou bool) {
	hands := make([][]domain.Card, len(r.seats))
	for i, s := range r.seats {
		hands[i] = s.Hand
	}
	deltas := domain.Settle(hands, winner, r.parent, tenhou)
	for i, s := range r.seats {
		s.RoundDelta = deltas[i]
		s.Score += deltas[i]
	}

	if tenhou {
		r.appendLog("TENHOU!")
	}
	r.appendLog(fmt.Sprintf("Winner: %s (+%d)", r.seats[winner].Name, deltas[winner]))
	r.parent = winner
	r.roundOver = true
	r.cpuDue = time.Time{}
}

// Disconnect handles a dropped transport identity. Mid-round the seat is
// marked disconnected and keeps its hand and id; before the round it is
// removed outright. Reports whether the seat was removed.
func (r *Room) Disconnect(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.seats {
		if s.ConnID != connID || s.IsCPU {
			continue
		}
		if r.started {
			s.Connected = false
			s.ConnID = ""
			r.appendLog(fmt.Sprintf("%s disconnected.", s.Name))
			return false
		}
		r.seats = append(r.seats[:i], r.seats[i+1:]...)
		for j, rest := range r.seats {
			rest.ID = j
		}
		r.appendLog(fmt.Sprintf("%s left.", s.Name))
		return true
	}
	return false
}

// Tick advances time-driven effects: a due field clear resolves, and a due
// automated turn runs. Staleness is handled by re-checking turn ownership
// and round liveness here, at execution time, so a scheduled turn that was
// overtaken is simply ignored. Reports whether state changed.
func (r *Room) Tick(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	if r.clearPending && !now.Before(r.clearDue) {
		r.resolveClear(now)
		changed = true
	}
	if r.cpuTurnDue(now) {
		r.runCPUTurn(now)
		changed = true
	}
	return changed
}

func (r *Room) cpuTurnDue(now time.Time) bool {
	if r.cpuDue.IsZero() || now.Before(r.cpuDue) {
		return false
	}
	if !r.started || r.roundOver || r.clearPending {
		return false
	}
	return r.seats[r.turn].IsCPU
}

func (r *Room) runCPUTurn(now time.Time) {
	r.cpuDue = time.Time{}
	seat := r.seats[r.turn]

	hand := append([]domain.Card(nil), seat.Hand...)
	mv, err := seat.agent.Move(hand, r.field)
	if err != nil || mv.Pass {
		_ = r.pass(seat.ID, now)
		return
	}
	if playErr := r.play(seat.ID, mv.Indices, now); playErr != nil {
		// a move the validator rejects degrades to a pass
		_ = r.pass(seat.ID, now)
	}
}

func (r *Room) scheduleCPU(now time.Time) {
	if r.started && !r.roundOver && !r.clearPending && r.seats[r.turn].IsCPU {
		r.cpuDue = now.Add(r.opts.CPUDelay)
		return
	}
	r.cpuDue = time.Time{}
}

func (r *Room) draw() (domain.Card, bool) {
	if len(r.deck) == 0 {
		return domain.Card{}, false
	}
	card := r.deck[len(r.deck)-1]
	r.deck = r.deck[:len(r.deck)-1]
	return card, true
}

func (r *Room) appendLog(line string) {
	r.logs = append(r.logs, line)
}

// pickCards validates indices (in range, deduplicated, non-empty) and
// returns the selected cards in index order.
func pickCards(hand []domain.Card, indices []int) ([]domain.Card, error) {
	if len(indices) == 0 {
		return nil, ErrBadIndices
	}
	seen := make(map[int]bool, len(indices))
	selection := make([]domain.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(hand) || seen[idx] {
			return nil, ErrBadIndices
		}
		seen[idx] = true
		selection = append(selection, hand[idx])
	}
	return selection, nil
}

func containsClearRank(cards []domain.Card) (cut, power bool) {
	for _, c := range cards {
		switch c.Rank {
		case 8:
			cut = true
		case domain.RankTwo:
			power = true
		}
	}
	return cut, power
}
