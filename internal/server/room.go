package server

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Gargablegar/AutoChessBattler/internal/game"
)

// Room holds the single authoritative game state for one game ID. All
// mutating actions from any connected client serialize through the room
// mutex for the full validate-then-commit span, so two placements can never
// race for a cell and a turn advance never interleaves with a placement.
type Room struct {
	id string

	mu      sync.Mutex
	game    *game.Game
	clients map[string]chan []byte // client id -> outbound frames
	seats   map[string]string      // client id -> seat
}

func newRoom(id string, opts game.Options, rng *rand.Rand) (*Room, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g, err := game.NewGame(opts, rng)
	if err != nil {
		return nil, err
	}
	return &Room{
		id:      id,
		game:    g,
		clients: make(map[string]chan []byte),
		seats:   make(map[string]string),
	}, nil
}

// ID returns the room's game ID.
func (r *Room) ID() string {
	return r.id
}

// Join registers a client and assigns a seat: first joiner White, second
// Black, everyone else spectator. The client's assignment frame and a full
// state snapshot are queued on its send channel; the snapshot also goes to
// the rest of the room.
func (r *Room) Join(clientID string, send chan []byte) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := SeatSpectator
	taken := make(map[string]bool, len(r.seats))
	for _, s := range r.seats {
		taken[s] = true
	}
	if !taken[SeatWhite] {
		seat = SeatWhite
	} else if !taken[SeatBlack] {
		seat = SeatBlack
	}

	r.clients[clientID] = send
	r.seats[clientID] = seat

	log.Info().
		Str("gameID", r.id).
		Str("clientID", clientID).
		Str("seat", seat).
		Msg("Client joined room")

	if frame, err := encodeEnvelope(MsgPlayerAssignment, PlayerAssignment{
		ClientID:      clientID,
		AssignedColor: seat,
		GameID:        r.id,
	}); err == nil {
		r.deliver(clientID, send, frame)
	}
	r.broadcastLocked("")
	return seat
}

// Leave removes a client and reports whether the room is now empty.
func (r *Room) Leave(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, clientID)
	delete(r.seats, clientID)

	log.Info().
		Str("gameID", r.id).
		Str("clientID", clientID).
		Msg("Client left room")

	return len(r.clients) == 0
}

// ClientCount returns the number of connected clients.
func (r *Room) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Snapshot returns the current authoritative state.
func (r *Room) Snapshot() game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Snapshot()
}

// FrontlineZones returns current placement zones for zone visualization.
func (r *Room) FrontlineZones() map[game.Color][]game.Cell {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.FrontlineZones()
}

// HandleAction validates and applies one client action, then broadcasts the
// resulting snapshot to every client in the room. A rejected action leaves
// the state untouched and broadcasts the unchanged snapshot with a
// non-empty error message.
func (r *Room) HandleAction(clientID string, action PlayerAction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.applyLocked(clientID, action)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
		log.Info().
			Str("gameID", r.id).
			Str("clientID", clientID).
			Str("action", action.ActionType).
			Str("rejection", errMsg).
			Msg("Action rejected")
	}
	r.broadcastLocked(errMsg)
}

var errSpectator = errors.New("spectators cannot act")
var errWrongSeat = errors.New("action color does not match assigned seat")
var errUnknownAction = errors.New("unknown action type")
var errBadPayload = errors.New("malformed action payload")

func (r *Room) applyLocked(clientID string, action PlayerAction) error {
	seat := r.seats[clientID]
	if seat != SeatWhite && seat != SeatBlack {
		return errSpectator
	}
	if string(action.PlayerColor) != seat {
		return errWrongSeat
	}
	color := action.PlayerColor

	switch action.ActionType {
	case ActionPlacePiece:
		var data PlacePieceData
		if err := json.Unmarshal(action.Data, &data); err != nil {
			return errBadPayload
		}
		pt, err := game.ParsePieceType(data.PieceType)
		if err != nil {
			return err
		}
		if err := r.game.PlacePiece(color, pt, data.Position.Cell()); err != nil {
			return err
		}
		log.Info().
			Str("gameID", r.id).
			Str("color", string(color)).
			Str("piece", data.PieceType).
			Int("row", data.Position[0]).
			Int("col", data.Position[1]).
			Msg("Piece placed")
		return nil

	case ActionSetBehavior:
		var data SetBehaviorData
		if err := json.Unmarshal(action.Data, &data); err != nil {
			return errBadPayload
		}
		behavior, err := game.ParseBehavior(data.Behavior)
		if err != nil {
			return err
		}
		return r.game.SetBehavior(color, data.Position.Cell(), behavior)

	case ActionAdvanceTurn:
		moves, err := r.game.AdvanceTurn()
		if err != nil {
			return err
		}
		for _, mv := range moves {
			evt := log.Info().
				Str("gameID", r.id).
				Str("color", string(mv.Color)).
				Str("piece", string(mv.Piece)).
				Int("fromRow", mv.From.Row).
				Int("fromCol", mv.From.Col).
				Int("toRow", mv.To.Row).
				Int("toCol", mv.To.Col)
			if mv.Captured != "" {
				evt = evt.Str("captured", string(mv.Captured))
			}
			evt.Msg("Piece moved")
		}
		if r.game.GameOver() {
			log.Info().
				Str("gameID", r.id).
				Str("winner", string(r.game.Winner())).
				Msg("Game over")
		}
		return nil

	case ActionSetAutoTurns:
		var data SetAutoTurnsData
		if err := json.Unmarshal(action.Data, &data); err != nil {
			return errBadPayload
		}
		return r.game.SetAutoTurns(data.AutoTurns)
	}
	return errUnknownAction
}

// broadcastLocked fans the current snapshot out to every client. Callers
// hold r.mu.
func (r *Room) broadcastLocked(errMsg string) {
	snap := r.game.Snapshot()
	snap.ErrorMessage = errMsg
	frame, err := encodeEnvelope(MsgGameStateUpdate, snap)
	if err != nil {
		log.Error().Err(err).Str("gameID", r.id).Msg("Failed to marshal game state")
		return
	}
	for clientID, send := range r.clients {
		r.deliver(clientID, send, frame)
	}
}

// deliver queues a frame without blocking; a client that cannot keep up
// drops frames rather than stalling the room.
func (r *Room) deliver(clientID string, send chan []byte, frame []byte) {
	select {
	case send <- frame:
	default:
		log.Warn().
			Str("gameID", r.id).
			Str("clientID", clientID).
			Msg("Client send buffer full, dropping frame")
	}
}
