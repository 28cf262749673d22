package server

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/Gargablegar/AutoChessBattler/internal/game"
)

func testOptions() game.Options {
	opts := game.DefaultOptions()
	opts.StartingPoints = 50
	return opts
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r, err := newRoom("test", testOptions(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	return r
}

// drain empties a client channel and returns the decoded frames.
func drain(t *testing.T, ch chan []byte) []Envelope {
	t.Helper()
	var out []Envelope
	for {
		select {
		case frame := <-ch:
			var env Envelope
			if err := json.Unmarshal(frame, &env); err != nil {
				t.Fatalf("Malformed frame: %v", err)
			}
			out = append(out, env)
		default:
			return out
		}
	}
}

func lastStateUpdate(t *testing.T, frames []Envelope) game.Snapshot {
	t.Helper()
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].Type == MsgGameStateUpdate {
			var snap game.Snapshot
			if err := json.Unmarshal(frames[i].Data, &snap); err != nil {
				t.Fatalf("Malformed snapshot: %v", err)
			}
			return snap
		}
	}
	t.Fatal("No game_state_update frame received")
	return game.Snapshot{}
}

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return raw
}

func TestJoinAssignsSeatsInOrder(t *testing.T) {
	r := newTestRoom(t)

	chans := make([]chan []byte, 3)
	seats := make([]string, 3)
	for i := range chans {
		chans[i] = make(chan []byte, 16)
		seats[i] = r.Join(string(rune('a'+i)), chans[i])
	}

	if seats[0] != SeatWhite || seats[1] != SeatBlack || seats[2] != SeatSpectator {
		t.Errorf("Expected white, black, spectator; got %v", seats)
	}

	frames := drain(t, chans[0])
	if len(frames) == 0 || frames[0].Type != MsgPlayerAssignment {
		t.Fatal("First frame should be the player assignment")
	}
	var assignment PlayerAssignment
	if err := json.Unmarshal(frames[0].Data, &assignment); err != nil {
		t.Fatalf("Malformed assignment: %v", err)
	}
	if assignment.AssignedColor != SeatWhite || assignment.GameID != "test" {
		t.Errorf("Unexpected assignment %+v", assignment)
	}
}

func TestSeatFreedOnLeaveIsReassigned(t *testing.T) {
	r := newTestRoom(t)

	white := make(chan []byte, 16)
	black := make(chan []byte, 16)
	r.Join("w", white)
	r.Join("b", black)

	if empty := r.Leave("w"); empty {
		t.Error("Room with one remaining client reported empty")
	}
	replacement := make(chan []byte, 16)
	if seat := r.Join("w2", replacement); seat != SeatWhite {
		t.Errorf("Expected freed white seat, got %s", seat)
	}
}

func TestPlacePieceActionBroadcastsToAllClients(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	black := make(chan []byte, 16)
	r.Join("w", white)
	r.Join("b", black)
	drain(t, white)
	drain(t, black)

	r.HandleAction("w", PlayerAction{
		ActionType:  ActionPlacePiece,
		PlayerColor: game.White,
		Data:        rawJSON(t, PlacePieceData{PieceType: "Pawn", Position: Position{23, 0}}),
	})

	for name, ch := range map[string]chan []byte{"white": white, "black": black} {
		snap := lastStateUpdate(t, drain(t, ch))
		if snap.ErrorMessage != "" {
			t.Errorf("%s saw rejection: %s", name, snap.ErrorMessage)
		}
		if snap.WhitePoints != 49 {
			t.Errorf("%s saw %v white points, expected 49", name, snap.WhitePoints)
		}
		if snap.BoardState[23][0] == nil || snap.BoardState[23][0].Type != game.Pawn {
			t.Errorf("%s missing placed pawn", name)
		}
	}
}

func TestRejectedActionBroadcastsErrorWithUnchangedState(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	r.Join("w", white)
	drain(t, white)

	// Occupied by white's starting king.
	r.HandleAction("w", PlayerAction{
		ActionType:  ActionPlacePiece,
		PlayerColor: game.White,
		Data:        rawJSON(t, PlacePieceData{PieceType: "Pawn", Position: Position{23, 12}}),
	})

	snap := lastStateUpdate(t, drain(t, white))
	if snap.ErrorMessage == "" {
		t.Fatal("Rejection must carry a non-empty error message")
	}
	if snap.WhitePoints != 50 {
		t.Errorf("Rejected action changed points: %v", snap.WhitePoints)
	}
	if snap.BoardState[23][12].Type != game.King {
		t.Error("Rejected action disturbed the board")
	}
}

func TestSpectatorActionsRejected(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	black := make(chan []byte, 16)
	spec := make(chan []byte, 16)
	r.Join("w", white)
	r.Join("b", black)
	r.Join("s", spec)
	drain(t, spec)

	r.HandleAction("s", PlayerAction{
		ActionType:  ActionAdvanceTurn,
		PlayerColor: game.White,
		Data:        rawJSON(t, struct{}{}),
	})

	snap := lastStateUpdate(t, drain(t, spec))
	if snap.ErrorMessage == "" {
		t.Error("Spectator action should be rejected")
	}
	if snap.TurnCounter != 0 {
		t.Error("Spectator advanced the turn")
	}
}

func TestActionColorMustMatchSeat(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	r.Join("w", white)
	drain(t, white)

	// White claiming to act as black is rejected.
	r.HandleAction("w", PlayerAction{
		ActionType:  ActionPlacePiece,
		PlayerColor: game.Black,
		Data:        rawJSON(t, PlacePieceData{PieceType: "Pawn", Position: Position{0, 0}}),
	})

	snap := lastStateUpdate(t, drain(t, white))
	if snap.ErrorMessage == "" {
		t.Error("Seat mismatch should be rejected")
	}
}

func TestAdvanceTurnActionAccruesPoints(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	r.Join("w", white)
	drain(t, white)

	r.HandleAction("w", PlayerAction{
		ActionType:  ActionAdvanceTurn,
		PlayerColor: game.White,
		Data:        rawJSON(t, struct{}{}),
	})

	snap := lastStateUpdate(t, drain(t, white))
	if snap.TurnCounter != 1 {
		t.Errorf("Expected turn counter 1, got %d", snap.TurnCounter)
	}
	if snap.WhitePoints != 55 || snap.BlackPoints != 55 {
		t.Errorf("Expected 55 points each, got %v / %v", snap.WhitePoints, snap.BlackPoints)
	}
}

func TestSetAutoTurnsAction(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	r.Join("w", white)
	drain(t, white)

	r.HandleAction("w", PlayerAction{
		ActionType:  ActionSetAutoTurns,
		PlayerColor: game.White,
		Data:        rawJSON(t, SetAutoTurnsData{AutoTurns: 4}),
	})

	snap := lastStateUpdate(t, drain(t, white))
	if snap.AutoTurns != 4 {
		t.Errorf("Expected 4 auto turns, got %d", snap.AutoTurns)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	r.Join("w", white)
	drain(t, white)

	r.HandleAction("w", PlayerAction{
		ActionType:  "promote_pawn",
		PlayerColor: game.White,
		Data:        rawJSON(t, struct{}{}),
	})

	snap := lastStateUpdate(t, drain(t, white))
	if snap.ErrorMessage == "" {
		t.Error("Unknown action type should be rejected")
	}
}

func TestGameOverBroadcastCarriesWinner(t *testing.T) {
	r := newTestRoom(t)
	white := make(chan []byte, 16)
	black := make(chan []byte, 16)
	r.Join("w", white)
	r.Join("b", black)
	drain(t, white)
	drain(t, black)

	// A queen at (1,12) has a clear file down to the white king at
	// (23,12) and captures it on its first aggressive move.
	r.HandleAction("b", PlayerAction{
		ActionType:  ActionPlacePiece,
		PlayerColor: game.Black,
		Data:        rawJSON(t, PlacePieceData{PieceType: "Queen", Position: Position{1, 12}}),
	})
	r.HandleAction("b", PlayerAction{
		ActionType:  ActionSetBehavior,
		PlayerColor: game.Black,
		Data:        rawJSON(t, SetBehaviorData{Position: Position{1, 12}, Behavior: "aggressive"}),
	})
	r.HandleAction("b", PlayerAction{
		ActionType:  ActionAdvanceTurn,
		PlayerColor: game.Black,
		Data:        rawJSON(t, struct{}{}),
	})

	for name, ch := range map[string]chan []byte{"white": white, "black": black} {
		snap := lastStateUpdate(t, drain(t, ch))
		if !snap.GameOver {
			t.Errorf("%s did not see game over", name)
		}
		if snap.Winner != game.Black {
			t.Errorf("%s saw winner %q, expected black", name, snap.Winner)
		}
	}
}

func TestManagerCreatesAndTearsDownRooms(t *testing.T) {
	m := NewManager(testOptions())

	r1, err := m.GetOrCreate("alpha")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	r2, err := m.GetOrCreate("alpha")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if r1 != r2 {
		t.Error("Same game ID should return the same room")
	}

	ch := make(chan []byte, 16)
	r1.Join("c1", ch)
	if len(m.Rooms()) != 1 {
		t.Errorf("Expected 1 room, got %d", len(m.Rooms()))
	}

	m.Release(r1, "c1")
	if len(m.Rooms()) != 0 {
		t.Error("Empty room should be torn down")
	}
}

func TestEmptyGameIDDefaults(t *testing.T) {
	m := NewManager(testOptions())
	r, err := m.GetOrCreate("")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if r.ID() != DefaultGameID {
		t.Errorf("Expected %q, got %q", DefaultGameID, r.ID())
	}
}
