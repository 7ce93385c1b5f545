package game

import "errors"

// Input errors leave room state untouched; the transport relays the reason
// to the caller. ErrIllegalPlay is the one rule violation, kept separate so
// transports can phrase it differently.
var (
	ErrRoomFull      = errors.New("room is full")
	ErrRoomStarted   = errors.New("room already started")
	ErrNotStarted    = errors.New("round not started")
	ErrRoundOver     = errors.New("round is over")
	ErrRoundRunning  = errors.New("round still in progress")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrBadIndices    = errors.New("card indices out of range or duplicated")
	ErrEffectPending = errors.New("draw phase in progress")
	ErrTooFewSeats   = errors.New("need at least two seats to start")
	ErrUnknownSeat   = errors.New("seat not found")

	ErrIllegalPlay = errors.New("selection cannot be played on the current field")
)
