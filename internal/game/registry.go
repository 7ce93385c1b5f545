package game

import "sync"

// Registry maps room ids to live rooms, creating on first reference.
type Registry struct {
	mu    sync.Mutex
	opts  Options
	rooms map[string]*Room
}

// NewRegistry builds a registry whose rooms all share the given options.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, rooms: make(map[string]*Room)}
}

// Get returns the room with the id, creating it if absent.
func (g *Registry) Get(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms[id]
	if !ok {
		room = NewRoom(id, g.opts)
		g.rooms[id] = room
	}
	return room
}

// Lookup returns the room with the id without creating it.
func (g *Registry) Lookup(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[id]
	return room, ok
}

// Each calls fn for every live room. The registry lock is not held during
// the calls.
func (g *Registry) Each(fn func(*Room)) {
	g.mu.Lock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.mu.Unlock()

	for _, r := range rooms {
		fn(r)
	}
}
