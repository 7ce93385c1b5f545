package ws

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"daifugo/internal/game"
)

// Msg is the wire envelope: a type tag plus a JSON payload.
type Msg struct {
	T string          `json:"t"`
	M json.RawMessage `json:"m,omitempty"`
}

type joinPayload struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

type playPayload struct {
	Indices []int `json:"indices"`
}

type stampPayload struct {
	Stamp string `json:"stamp"`
}

// Client is one websocket connection. Writes go through the send channel
// so the writer goroutine owns the socket.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	roomID string
}

// Hub accepts websocket connections and bridges them to rooms. All game
// decisions live in the room; the hub only routes messages and fans out
// per-seat state.
type Hub struct {
	allowOrigins map[string]bool
	registry     *game.Registry
	tick         time.Duration

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub(allow []string, registry *game.Registry, tick time.Duration) *Hub {
	m := map[string]bool{}
	for _, a := range allow {
		if a != "" {
			m[a] = true
		}
	}
	return &Hub{
		allowOrigins: m,
		registry:     registry,
		tick:         tick,
		clients:      map[string]*Client{},
	}
}

// Run drives time-based room effects (CPU turns, field-clear pauses) and
// pushes fresh state whenever a tick changed something.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.registry.Each(func(room *game.Room) {
				if room.Tick(now) {
					h.broadcastRoom(room)
				}
			})
		}
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && !h.allowOrigins[origin] {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}

	client := &Client{id: randID(), conn: c, send: make(chan []byte, 64)}

	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	log.Printf("client %s connected", client.id)

	// writer
	go func() {
		ping := time.NewTicker(15 * time.Second)
		defer func() { ping.Stop(); _ = c.Close(websocket.StatusNormalClosure, "bye") }()
		for {
			select {
			case msg, ok := <-client.send:
				if !ok {
					return
				}
				_ = c.Write(r.Context(), websocket.MessageText, msg)
			case <-ping.C:
				_ = c.Ping(r.Context())
			}
		}
	}()

	// reader
	for {
		_, data, err := c.Read(r.Context())
		if err != nil {
			break
		}
		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		h.handle(client, m)
	}

	// disconnect
	h.mu.Lock()
	delete(h.clients, client.id)
	close(client.send)
	h.mu.Unlock()

	if client.roomID != "" {
		if room, ok := h.registry.Lookup(client.roomID); ok {
			room.Disconnect(client.id)
			h.broadcastRoom(room)
		}
	}
	log.Printf("client %s disconnected", client.id)
}

func (h *Hub) handle(client *Client, m Msg) {
	switch m.T {

	case "join_game":
		var p joinPayload
		if err := json.Unmarshal(m.M, &p); err != nil || p.Room == "" || p.Name == "" {
			h.sendError(client, "bad join_game payload")
			return
		}
		room := h.registry.Get(p.Room)
		if _, err := room.Join(client.id, p.Name); err != nil {
			h.sendError(client, err.Error())
			return
		}
		client.roomID = p.Room
		log.Printf("room %s join client=%s name=%s", p.Room, client.id, p.Name)
		h.broadcastRoom(room)

	case "start_practice":
		// one human against CPU seats, round starts immediately
		var p joinPayload
		if err := json.Unmarshal(m.M, &p); err != nil || p.Room == "" || p.Name == "" {
			h.sendError(client, "bad start_practice payload")
			return
		}
		room := h.registry.Get(p.Room)
		if _, err := room.Join(client.id, p.Name); err != nil {
			h.sendError(client, err.Error())
			return
		}
		client.roomID = p.Room
		for i := len(room.Roster()); i < game.DefaultMaxSeats; i++ {
			if _, err := room.AddCPU(fmt.Sprintf("CPU %d", i)); err != nil {
				h.sendError(client, err.Error())
				return
			}
		}
		if err := room.StartRound(); err != nil {
			h.sendError(client, err.Error())
			return
		}
		log.Printf("room %s practice start client=%s", p.Room, client.id)
		h.broadcastRoom(room)

	case "start_game":
		h.withRoom(client, func(room *game.Room, seat int) error {
			return room.StartRound()
		})

	case "play_card":
		var p playPayload
		if err := json.Unmarshal(m.M, &p); err != nil {
			h.sendError(client, "bad play_card payload")
			return
		}
		h.withRoom(client, func(room *game.Room, seat int) error {
			return room.SubmitPlay(seat, p.Indices)
		})

	case "pass_turn":
		h.withRoom(client, func(room *game.Room, seat int) error {
			return room.SubmitPass(seat)
		})

	case "next_game":
		h.withRoom(client, func(room *game.Room, seat int) error {
			return room.NextRound()
		})

	case "reset_game":
		h.withRoom(client, func(room *game.Room, seat int) error {
			return room.ResetRound()
		})

	case "send_stamp":
		var p stampPayload
		if err := json.Unmarshal(m.M, &p); err != nil || p.Stamp == "" {
			return
		}
		room, seat := h.resolve(client)
		if room == nil {
			return
		}
		name := ""
		for _, s := range room.Roster() {
			if s.ID == seat {
				name = s.Name
				break
			}
		}
		h.sendToRoom(room, Msg{T: "stamp", M: mustJSON(map[string]interface{}{
			"seat": seat, "name": name, "stamp": p.Stamp,
		})})

	case "ping":
		h.sendTo(client, Msg{T: "pong"})
	}
}

// withRoom resolves the client's room and seat, applies op, and either
// reports the rejection privately or fans out fresh state.
func (h *Hub) withRoom(client *Client, op func(room *game.Room, seat int) error) {
	room, seat := h.resolve(client)
	if room == nil {
		h.sendError(client, "not in a room")
		return
	}
	if err := op(room, seat); err != nil {
		h.sendError(client, err.Error())
		return
	}
	h.broadcastRoom(room)
}

func (h *Hub) resolve(client *Client) (*game.Room, int) {
	if client.roomID == "" {
		return nil, -1
	}
	room, ok := h.registry.Lookup(client.roomID)
	if !ok {
		return nil, -1
	}
	return room, room.SeatByConn(client.id)
}

// ---------- send helpers ----------

func randID() string {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func mustJSON(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func (h *Hub) sendTo(c *Client, msg Msg) {
	b, _ := json.Marshal(msg)
	select {
	case c.send <- b:
	default:
	}
}

func (h *Hub) sendError(c *Client, message string) {
	h.sendTo(c, Msg{T: "error", M: mustJSON(map[string]string{"message": message})})
}

// broadcastRoom sends every connected seat its own private projection.
func (h *Hub) broadcastRoom(room *game.Room) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, seat := range room.Roster() {
		if seat.IsCPU || !seat.Connected {
			continue
		}
		cli, ok := h.clients[seat.ConnID]
		if !ok {
			continue
		}
		payload, err := json.Marshal(room.Snapshot(seat.ID))
		if err != nil {
			log.Printf("room %s snapshot seat %d: %v", room.ID, seat.ID, err)
			continue
		}
		h.sendTo(cli, Msg{T: "update_state", M: payload})
	}
}

func (h *Hub) sendToRoom(room *game.Room, msg Msg) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, seat := range room.Roster() {
		if seat.IsCPU || !seat.Connected {
			continue
		}
		if cli, ok := h.clients[seat.ConnID]; ok {
			h.sendTo(cli, msg)
		}
	}
}
