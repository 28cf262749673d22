package server

import (
	"encoding/json"
	"fmt"

	"github.com/Gargablegar/AutoChessBattler/internal/game"
)

// Wire protocol: every frame is a tagged envelope {"type": ..., "data": ...}.

const (
	// Client -> server
	MsgJoinGame     = "join_game"
	MsgPlayerAction = "player_action"

	// Server -> client
	MsgPlayerAssignment = "player_assignment"
	MsgGameStateUpdate  = "game_state_update"
)

// Action types carried by player_action messages.
const (
	ActionPlacePiece   = "place_piece"
	ActionSetBehavior  = "set_behavior"
	ActionAdvanceTurn  = "advance_turn"
	ActionSetAutoTurns = "set_auto_turns"
)

// Seats assigned to joining clients. The first two joiners play; everyone
// after spectates.
const (
	SeatWhite     = "white"
	SeatBlack     = "black"
	SeatSpectator = "spectator"
)

type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type JoinGame struct {
	GameID string `json:"game_id"`
}

type PlayerAction struct {
	ActionType  string          `json:"action_type"`
	PlayerColor game.Color      `json:"player_color"`
	Data        json.RawMessage `json:"data"`
}

// Position is a [row, col] pair on the wire.
type Position [2]int

func (p Position) Cell() game.Cell {
	return game.Cell{Row: p[0], Col: p[1]}
}

type PlacePieceData struct {
	PieceType string   `json:"piece_type"`
	Position  Position `json:"position"`
}

type SetBehaviorData struct {
	Position Position `json:"position"`
	Behavior string   `json:"behavior"`
}

type SetAutoTurnsData struct {
	AutoTurns int `json:"auto_turns"`
}

type PlayerAssignment struct {
	ClientID      string `json:"client_id"`
	AssignedColor string `json:"assigned_color"`
	GameID        string `json:"game_id"`
}

func encodeEnvelope(msgType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", msgType, err)
	}
	return json.Marshal(Envelope{Type: msgType, Data: raw})
}
