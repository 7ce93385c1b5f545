package nakama

// Wire payloads for match opcodes. All payloads are JSON.

// PlayCardsRequest selects cards by position in the sender's own hand.
type PlayCardsRequest struct {
	Indices []int `json:"indices"`
}

// StampRequest carries a reaction stamp to relay to the table.
type StampRequest struct {
	Stamp string `json:"stamp"`
}

// StampEvent is the relayed form of a stamp, tagged with the sender seat.
type StampEvent struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Stamp string `json:"stamp"`
}

// GameErrorEvent reports a rejected request back to its sender.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MatchLabel is the queryable lobby listing entry.
type MatchLabel struct {
	Open  int    `json:"open"`
	State string `json:"state"`
}
