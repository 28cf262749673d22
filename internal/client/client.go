// Package client implements the client side of the game protocol: it joins
// a room, keeps an advisory cache of the last broadcast snapshot, and sends
// player actions. The authoritative state always lives on the server; every
// broadcast overwrites the local cache wholesale.
package client

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Gargablegar/AutoChessBattler/internal/game"
	"github.com/Gargablegar/AutoChessBattler/internal/server"
)

// Session is one connection to a game room.
type Session struct {
	conn *websocket.Conn

	mu       sync.Mutex
	clientID string
	color    string
	gameID   string
	state    *game.Snapshot

	// OnUpdate, if set before Run, is called with every received snapshot.
	OnUpdate func(game.Snapshot)
	// OnAssignment, if set before Run, is called once with the seat.
	OnAssignment func(server.PlayerAssignment)
}

// Dial connects to the server and joins the given room. The returned
// session is idle until Run is called.
func Dial(url, gameID string) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	s := &Session{conn: conn, gameID: gameID}
	if err := s.sendEnvelope(server.MsgJoinGame, server.JoinGame{GameID: gameID}); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Run reads frames until the connection closes, updating the cached state
// and firing callbacks. Blocks; run it on its own goroutine if needed.
func (s *Session) Run() error {
	defer s.conn.Close()
	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}
		var env server.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			continue
		}
		switch env.Type {
		case server.MsgPlayerAssignment:
			var assignment server.PlayerAssignment
			if err := json.Unmarshal(env.Data, &assignment); err != nil {
				continue
			}
			s.mu.Lock()
			s.clientID = assignment.ClientID
			s.color = assignment.AssignedColor
			s.mu.Unlock()
			if s.OnAssignment != nil {
				s.OnAssignment(assignment)
			}
		case server.MsgGameStateUpdate:
			var snap game.Snapshot
			if err := json.Unmarshal(env.Data, &snap); err != nil {
				continue
			}
			s.mu.Lock()
			s.state = &snap
			s.mu.Unlock()
			if s.OnUpdate != nil {
				s.OnUpdate(snap)
			}
		}
	}
}

// Color returns the assigned seat, empty until the assignment arrives.
func (s *Session) Color() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// State returns the last received snapshot, or nil before the first
// broadcast.
func (s *Session) State() *game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PlacePiece requests a placement at the given cell.
func (s *Session) PlacePiece(pieceType string, row, col int) error {
	return s.sendAction(server.ActionPlacePiece, server.PlacePieceData{
		PieceType: pieceType,
		Position:  server.Position{row, col},
	})
}

// SetBehavior assigns a stance to the piece at the given cell.
func (s *Session) SetBehavior(row, col int, behavior string) error {
	return s.sendAction(server.ActionSetBehavior, server.SetBehaviorData{
		Position: server.Position{row, col},
		Behavior: behavior,
	})
}

// AdvanceTurn triggers the movement rounds.
func (s *Session) AdvanceTurn() error {
	return s.sendAction(server.ActionAdvanceTurn, struct{}{})
}

// SetAutoTurns changes the number of movement rounds per turn.
func (s *Session) SetAutoTurns(n int) error {
	return s.sendAction(server.ActionSetAutoTurns, server.SetAutoTurnsData{AutoTurns: n})
}

// Close shuts the connection down.
func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) sendAction(actionType string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s data: %w", actionType, err)
	}
	s.mu.Lock()
	color := s.color
	s.mu.Unlock()
	return s.sendEnvelope(server.MsgPlayerAction, server.PlayerAction{
		ActionType:  actionType,
		PlayerColor: game.Color(color),
		Data:        raw,
	})
}

func (s *Session) sendEnvelope(msgType string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	frame, err := json.Marshal(server.Envelope{Type: msgType, Data: raw})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, frame)
}
