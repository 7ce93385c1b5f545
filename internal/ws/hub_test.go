package ws

import (
	"encoding/json"
	"testing"
	"time"

	"daifugo/internal/game"
)

// newTestClient builds a client without a socket; handle and the send
// helpers only touch the send channel.
func newTestClient(id string) *Client {
	return &Client{id: id, send: make(chan []byte, 16)}
}

func recvMsg(t *testing.T, c *Client) Msg {
	t.Helper()
	select {
	case b := <-c.send:
		var m Msg
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		return m
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Msg{}
	}
}

func testHub() *Hub {
	return NewHub(nil, game.NewRegistry(game.DefaultOptions()), 50*time.Millisecond)
}

func TestJoinGamePushesState(t *testing.T) {
	h := testHub()
	c := newTestClient("c1")
	h.clients[c.id] = c

	h.handle(c, Msg{T: "join_game", M: mustJSON(map[string]string{"room": "r1", "name": "alice"})})

	m := recvMsg(t, c)
	if m.T != "update_state" {
		t.Fatalf("want update_state, got %q", m.T)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(m.M, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.RoomID != "r1" || snap.MyIdx != 0 || len(snap.Players) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestPlayBeforeStartReportsError(t *testing.T) {
	h := testHub()
	c := newTestClient("c1")
	h.clients[c.id] = c
	h.handle(c, Msg{T: "join_game", M: mustJSON(map[string]string{"room": "r1", "name": "alice"})})
	<-c.send // drop the join state push

	h.handle(c, Msg{T: "play_card", M: mustJSON(map[string][]int{"indices": {0}})})

	m := recvMsg(t, c)
	if m.T != "error" {
		t.Fatalf("want error, got %q", m.T)
	}
}

func TestStartPracticeFillsTable(t *testing.T) {
	h := testHub()
	c := newTestClient("c1")
	h.clients[c.id] = c

	h.handle(c, Msg{T: "start_practice", M: mustJSON(map[string]string{"room": "solo", "name": "alice"})})

	m := recvMsg(t, c)
	if m.T != "update_state" {
		t.Fatalf("want update_state, got %q", m.T)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(m.M, &snap); err != nil {
		t.Fatal(err)
	}
	if !snap.RoundStarted || len(snap.Players) != game.DefaultMaxSeats {
		t.Fatalf("practice table not running: %+v", snap)
	}
	if len(snap.MyHand) != 5 {
		t.Fatalf("want a dealt hand, got %d cards", len(snap.MyHand))
	}
}

func TestStampRelaysToRoom(t *testing.T) {
	h := testHub()
	a, b := newTestClient("ca"), newTestClient("cb")
	h.clients[a.id] = a
	h.clients[b.id] = b
	h.handle(a, Msg{T: "join_game", M: mustJSON(map[string]string{"room": "r1", "name": "alice"})})
	h.handle(b, Msg{T: "join_game", M: mustJSON(map[string]string{"room": "r1", "name": "bob"})})
	for len(a.send) > 0 {
		<-a.send
	}
	for len(b.send) > 0 {
		<-b.send
	}

	h.handle(a, Msg{T: "send_stamp", M: mustJSON(map[string]string{"stamp": "wave"})})

	for _, c := range []*Client{a, b} {
		m := recvMsg(t, c)
		if m.T != "stamp" {
			t.Fatalf("want stamp, got %q", m.T)
		}
		var ev struct {
			Seat  int    `json:"seat"`
			Name  string `json:"name"`
			Stamp string `json:"stamp"`
		}
		if err := json.Unmarshal(m.M, &ev); err != nil {
			t.Fatal(err)
		}
		if ev.Seat != 0 || ev.Name != "alice" || ev.Stamp != "wave" {
			t.Fatalf("unexpected stamp event: %+v", ev)
		}
	}
}
