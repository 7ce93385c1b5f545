package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcCreatePractice is the Nakama RPC id that creates a private match pre-filled with CPU seats.
	RpcCreatePractice = "create_practice"

	// MatchNameDaifugo is the authoritative match handler name registered with Nakama.
	MatchNameDaifugo = "daifugo_match"

	// MatchLabelKey_OpenSeats is the key for the open seats in the match label.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound int64 = 1
	OpPlayCards  int64 = 2
	OpPassTurn   int64 = 3
	OpNextRound  int64 = 4
	OpResetRound int64 = 5
	OpSendStamp  int64 = 6

	// Server -> Client events
	OpState      int64 = 100 // sent privately, per-seat view
	OpGameError  int64 = 101 // sent privately to the offending sender
	OpStampRelay int64 = 102
)
