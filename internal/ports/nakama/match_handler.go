package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"daifugo/internal/config"
	"daifugo/internal/game"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Room      *game.Room                  `json:"-"` // authoritative round state machine
	Presences map[string]runtime.Presence `json:"-"` // map UserId -> Presence for targeted messaging
	Practice  bool                        `json:"practice"`
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	roomID := "match"
	if id, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok && id != "" {
		roomID = id
	}

	state := &MatchState{
		Room: game.NewRoom(roomID, game.Options{
			MaxSeats:   config.GetMaxSeats(),
			CPUDelay:   config.GetCPUDelay(),
			ClearPause: config.GetClearPause(),
		}),
		Presences: make(map[string]runtime.Presence),
	}
	if practice, ok := params["practice"].(bool); ok {
		state.Practice = practice
	}

	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 5
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	roster := matchState.Room.Roster()
	started := matchState.Room.Snapshot(-1).RoundStarted

	if !started {
		if len(roster) >= config.GetMaxSeats() {
			return state, false, "Match full"
		}
		return state, true, ""
	}

	// Mid-round only a reconnect for a disconnected seat with the same
	// handle is allowed.
	for _, seat := range roster {
		if !seat.IsCPU && !seat.Connected && seat.Name == presence.GetUsername() {
			return state, true, ""
		}
	}
	return state, false, "Round in progress"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		seatID, err := matchState.Room.Join(p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: User %s joined but no seat was available: %v", p.GetUserId(), err)
			continue
		}
		logger.Info("MatchJoin: User %s seated at %d", p.GetUserId(), seatID)
	}

	// A practice match fills the remaining seats with CPU players and
	// starts as soon as the owner arrives.
	if matchState.Practice && !matchState.Room.Snapshot(-1).RoundStarted {
		mh.fillAndStartPractice(matchState, logger)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) fillAndStartPractice(state *MatchState, logger runtime.Logger) {
	for i := len(state.Room.Roster()); i < config.GetMaxSeats(); i++ {
		name := fmt.Sprintf("CPU %d", i)
		if _, err := state.Room.AddCPU(name); err != nil {
			logger.Error("Practice: Failed to seat %s: %v", name, err)
			return
		}
	}
	if err := state.Room.StartRound(); err != nil {
		logger.Error("Practice: Failed to start round: %v", err)
	}
}

// MatchLeave is called when one or more players leave the match. Mid-round
// the seat is only marked disconnected so the player can rejoin.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		removed := matchState.Room.Disconnect(p.GetUserId())
		logger.Debug("MatchLeave: User %s left (seat removed: %t)", p.GetUserId(), removed)
	}

	if !hasConnectedHuman(matchState.Room.Roster()) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastState(matchState, dispatcher, logger)

	return matchState
}

func hasConnectedHuman(roster []game.SeatInfo) bool {
	for _, seat := range roster {
		if !seat.IsCPU && seat.Connected {
			return true
		}
	}
	return false
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	dirty := false
	for _, msg := range messages {
		if mh.handleMessage(matchState, dispatcher, logger, msg) {
			dirty = true
		}
	}

	if matchState.Room.Tick(time.Now()) {
		dirty = true
	}

	if dirty {
		mh.updateLabel(matchState, dispatcher, logger)
		mh.broadcastState(matchState, dispatcher, logger)
	}

	return matchState
}

// handleMessage dispatches one client message. Reports whether room state
// changed and a fresh broadcast is needed.
func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) bool {
	senderID := msg.GetUserId()
	seatID := state.Room.SeatByConn(senderID)
	if seatID < 0 {
		logger.Warn("MatchLoop: Message from %s who holds no seat.", senderID)
		return false
	}

	var err error
	switch msg.GetOpCode() {
	case OpStartRound:
		err = state.Room.StartRound()
	case OpPlayCards:
		var req PlayCardsRequest
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			err = state.Room.SubmitPlay(seatID, req.Indices)
		}
	case OpPassTurn:
		err = state.Room.SubmitPass(seatID)
	case OpNextRound:
		err = state.Room.NextRound()
	case OpResetRound:
		err = state.Room.ResetRound()
	case OpSendStamp:
		mh.relayStamp(state, dispatcher, logger, seatID, msg.GetData())
		return false
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return false
	}

	if err != nil {
		logger.Warn("MatchLoop: Request op %d from %s (seat %d) rejected: %v", msg.GetOpCode(), senderID, seatID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return false
	}
	return true
}

// relayStamp forwards a reaction stamp to the whole table. Stamps never
// touch room state.
func (mh *matchHandler) relayStamp(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seatID int, data []byte) {
	var req StampRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Stamp == "" {
		logger.Warn("relayStamp: Invalid stamp payload from seat %d", seatID)
		return
	}

	name := ""
	for _, seat := range state.Room.Roster() {
		if seat.ID == seatID {
			name = seat.Name
			break
		}
	}

	payload, err := json.Marshal(StampEvent{Seat: seatID, Name: name, Stamp: req.Stamp})
	if err != nil {
		logger.Error("relayStamp: Failed to marshal stamp event: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStampRelay, payload, nil, nil, true)
}

// broadcastState sends each connected seat its own private view of the
// room. Hands never leave the server in another player's payload.
func (mh *matchHandler) broadcastState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for _, seat := range state.Room.Roster() {
		if seat.IsCPU || !seat.Connected {
			continue
		}
		p, ok := state.Presences[seat.ConnID]
		if !ok {
			continue
		}

		payload, err := json.Marshal(state.Room.Snapshot(seat.ID))
		if err != nil {
			logger.Error("broadcastState: Failed to marshal snapshot for seat %d: %v", seat.ID, err)
			continue
		}
		dispatcher.BroadcastMessage(OpState, payload, []runtime.Presence{p}, nil, true)
	}
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpGameError, payload, []runtime.Presence{presence}, nil, true)
}

func marshalLabel(state *MatchState) (string, error) {
	snap := state.Room.Snapshot(-1)
	labelState := "lobby"
	if snap.RoundStarted {
		labelState = "playing"
	}
	open := config.GetMaxSeats() - len(snap.Players)
	if snap.RoundStarted || state.Practice {
		open = 0
	}

	bytes, err := json.Marshal(MatchLabel{Open: open, State: labelState})
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
