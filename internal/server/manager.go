package server

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Gargablegar/AutoChessBattler/internal/game"
)

// DefaultGameID is used when a join request names no room.
const DefaultGameID = "default"

// Manager owns every active room. Rooms are created on first join and torn
// down when the last client disconnects.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
	opts  game.Options
}

func NewManager(opts game.Options) *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
		opts:  opts,
	}
}

// GetOrCreate returns the room for gameID, creating it if needed.
func (m *Manager) GetOrCreate(gameID string) (*Room, error) {
	if gameID == "" {
		gameID = DefaultGameID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rooms[gameID]; ok {
		return r, nil
	}
	r, err := newRoom(gameID, m.opts, nil)
	if err != nil {
		return nil, err
	}
	m.rooms[gameID] = r
	log.Info().Str("gameID", gameID).Msg("Room created")
	return r, nil
}

// Get returns the room for gameID if it exists, without creating one.
func (m *Manager) Get(gameID string) (*Room, bool) {
	if gameID == "" {
		gameID = DefaultGameID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[gameID]
	return r, ok
}

// Release handles a client disconnect, dropping the room once empty.
func (m *Manager) Release(r *Room, clientID string) {
	if !r.Leave(clientID) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[r.ID()] == r && r.ClientCount() == 0 {
		delete(m.rooms, r.ID())
		log.Info().Str("gameID", r.ID()).Msg("Room torn down")
	}
}

// Rooms returns a stable view of active rooms and their client counts.
func (m *Manager) Rooms() map[string]int {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()

	out := make(map[string]int, len(rooms))
	for _, r := range rooms {
		out[r.ID()] = r.ClientCount()
	}
	return out
}
