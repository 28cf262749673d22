package game

// PieceState is the serializable view of one piece.
type PieceState struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"has_moved"`
	Behavior Behavior  `json:"behavior"`
}

// Snapshot is a full immutable copy of the game state, delivered to clients
// after every committed or rejected action. BoardState is a size x size
// grid with nil for empty cells. ErrorMessage is filled by the session
// layer when an action was rejected; the rest of the snapshot is then
// unchanged from before the action.
type Snapshot struct {
	BoardState    [][]*PieceState `json:"board_state"`
	WhitePoints   float64         `json:"white_points"`
	BlackPoints   float64         `json:"black_points"`
	CurrentPlayer Color           `json:"current_player"`
	TurnCounter   int             `json:"turn_counter"`
	Frontline     int             `json:"frontline"`
	AutoTurns     int             `json:"auto_turns"`
	GameOver      bool            `json:"game_over"`
	Winner        Color           `json:"winner"`
	ErrorMessage  string          `json:"error_message"`
}

// Snapshot captures the current state. The returned value shares nothing
// with the live board.
func (g *Game) Snapshot() Snapshot {
	size := g.board.Size()
	grid := make([][]*PieceState, size)
	for row := 0; row < size; row++ {
		grid[row] = make([]*PieceState, size)
		for col := 0; col < size; col++ {
			if p := g.board.PieceAt(Cell{Row: row, Col: col}); p != nil {
				grid[row][col] = &PieceState{
					Type:     p.Type,
					Color:    p.Color,
					HasMoved: p.HasMoved,
					Behavior: p.Behavior,
				}
			}
		}
	}
	return Snapshot{
		BoardState:    grid,
		WhitePoints:   g.accounts[White].Points,
		BlackPoints:   g.accounts[Black].Points,
		CurrentPlayer: White, // placement is simultaneous; hint only
		TurnCounter:   g.turnCounter,
		Frontline:     g.opts.FrontlineDistance,
		AutoTurns:     g.autoTurns,
		GameOver:      g.gameOver,
		Winner:        g.winner,
	}
}
