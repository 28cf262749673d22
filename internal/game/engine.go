package game

import (
	"fmt"
	"math/rand"
)

// Options configure a single game instance.
type Options struct {
	BoardSize          int
	FrontlineDistance  int
	AutoTurns          int
	StartingPoints     float64
	PointsPerTurn      float64
	PlaceStartingKings bool
}

// DefaultOptions mirror the configuration defaults.
func DefaultOptions() Options {
	return Options{
		BoardSize:          24,
		FrontlineDistance:  2,
		AutoTurns:          1,
		StartingPoints:     10,
		PointsPerTurn:      5,
		PlaceStartingKings: true,
	}
}

// Validate checks option bounds. Any violation is fatal at game creation.
func (o Options) Validate() error {
	if o.BoardSize < 8 || o.BoardSize > 50 {
		return fmt.Errorf("%w: board size %d out of range [8,50]", ErrInvalidConfiguration, o.BoardSize)
	}
	if o.FrontlineDistance < 1 || o.FrontlineDistance > 10 {
		return fmt.Errorf("%w: frontline distance %d out of range [1,10]", ErrInvalidConfiguration, o.FrontlineDistance)
	}
	if o.AutoTurns < 1 {
		return fmt.Errorf("%w: auto turns %d must be at least 1", ErrInvalidConfiguration, o.AutoTurns)
	}
	if o.StartingPoints < 0 {
		return fmt.Errorf("%w: starting points %v must not be negative", ErrInvalidConfiguration, o.StartingPoints)
	}
	if o.PointsPerTurn < 0 {
		return fmt.Errorf("%w: points per turn %v must not be negative", ErrInvalidConfiguration, o.PointsPerTurn)
	}
	return nil
}

// Account tracks one player's point budget. Points never go negative: a
// placement that would overdraw is rejected before any deduction.
type Account struct {
	Color  Color
	Points float64
}

// Move records one applied movement-round move.
type Move struct {
	From     Cell
	To       Cell
	Piece    PieceType
	Color    Color
	Captured PieceType
}

// Game is the turn engine: the authoritative game state plus the turn
// resolution pipeline. Not safe for concurrent use; callers serialize
// access (the session layer holds one lock per room).
type Game struct {
	board       *Board
	opts        Options
	accounts    map[Color]*Account
	autoTurns   int
	turnCounter int
	gameOver    bool
	winner      Color
	rng         *rand.Rand
}

// NewGame creates a game from validated options. The random source drives
// movement-round shuffling and tie-breaking; inject a seeded source for
// deterministic tests.
func NewGame(opts Options, rng *rand.Rand) (*Game, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		board: NewBoard(opts.BoardSize),
		opts:  opts,
		accounts: map[Color]*Account{
			White: {Color: White, Points: opts.StartingPoints},
			Black: {Color: Black, Points: opts.StartingPoints},
		},
		autoTurns: opts.AutoTurns,
		rng:       rng,
	}
	if opts.PlaceStartingKings {
		// Each side starts with one free King at its back rank, middle column.
		mid := opts.BoardSize / 2
		if err := g.board.PlacePiece(NewPiece(King, White), Cell{Row: opts.BoardSize - 1, Col: mid}); err != nil {
			return nil, err
		}
		if err := g.board.PlacePiece(NewPiece(King, Black), Cell{Row: 0, Col: mid}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Board exposes the board for read-only rule queries in tests. Mutations go
// through the action methods.
func (g *Game) Board() *Board {
	return g.board
}

// Points returns the current balance for a color.
func (g *Game) Points(color Color) float64 {
	return g.accounts[color].Points
}

// TurnCounter returns the number of completed turns.
func (g *Game) TurnCounter() int {
	return g.turnCounter
}

// AutoTurns returns the number of movement rounds per turn.
func (g *Game) AutoTurns() int {
	return g.autoTurns
}

// GameOver reports whether the game reached a terminal state.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Winner returns the winning color, or "" for none (game still running, or
// a draw with both sides kingless).
func (g *Game) Winner() Color {
	return g.winner
}

// FrontlineZones returns the current placement zones for both colors.
func (g *Game) FrontlineZones() map[Color][]Cell {
	return FrontlineZones(g.board, g.opts.FrontlineDistance)
}

// PlacePiece validates and applies a placement: the cell must be empty and
// inside the color's frontline zone, and the account must cover the cost.
// The deduction and placement commit together or not at all.
func (g *Game) PlacePiece(color Color, pt PieceType, cell Cell) error {
	if g.gameOver {
		return ErrGameAlreadyOver
	}
	if _, ok := PieceCosts[pt]; !ok {
		return ErrUnknownPieceType
	}
	if !g.board.InBounds(cell) {
		return ErrOutOfBounds
	}
	acct := g.accounts[color]
	if acct == nil {
		return fmt.Errorf("%w: no account for color %q", ErrInvalidConfiguration, color)
	}
	cost := PieceCosts[pt]
	if acct.Points < cost {
		return ErrInsufficientPoints
	}
	if g.board.PieceAt(cell) != nil {
		return ErrOccupiedCell
	}
	if !InFrontline(g.board, g.opts.FrontlineDistance, color, cell) {
		return ErrOutOfFrontlineZone
	}
	if err := g.board.PlacePiece(NewPiece(pt, color), cell); err != nil {
		return err
	}
	acct.Points -= cost
	return nil
}

// SetBehavior assigns a stance to the piece at cell. The piece must belong
// to the requesting color. No cost, no turn restriction.
func (g *Game) SetBehavior(color Color, cell Cell, behavior Behavior) error {
	if g.gameOver {
		return ErrGameAlreadyOver
	}
	p := g.board.PieceAt(cell)
	if p == nil {
		return ErrNoPieceAt
	}
	if p.Color != color {
		return ErrNotYourPiece
	}
	p.Behavior = behavior
	return nil
}

// SetAutoTurns changes how many movement rounds each turn runs, within
// [1,10].
func (g *Game) SetAutoTurns(n int) error {
	if n < 1 || n > 10 {
		return fmt.Errorf("%w: auto turns %d out of range [1,10]", ErrInvalidConfiguration, n)
	}
	g.autoTurns = n
	return nil
}

// AdvanceTurn runs the configured number of movement rounds, then accrues
// points, resets behaviors, and increments the turn counter. Each round
// shuffles the pieces present at round start and moves each survivor once
// via its behavior. Win detection runs after every individual move; a
// decided game halts all remaining rounds immediately and skips accrual.
// Returns the moves applied this turn.
func (g *Game) AdvanceTurn() ([]Move, error) {
	if g.gameOver {
		return nil, ErrGameAlreadyOver
	}
	var moves []Move
	for round := 0; round < g.autoTurns; round++ {
		pieces := g.board.AllPieces()
		g.rng.Shuffle(len(pieces), func(i, j int) {
			pieces[i], pieces[j] = pieces[j], pieces[i]
		})
		for _, pp := range pieces {
			// Skip pieces captured or displaced earlier this round.
			if g.board.PieceAt(pp.Cell) != pp.Piece {
				continue
			}
			dest, ok := ChooseMove(g.board, pp.Cell, g.rng)
			if !ok {
				continue
			}
			captured, err := g.board.MovePiece(pp.Cell, dest)
			if err != nil {
				// The selector only emits legal destinations; reaching this
				// is an engine bug, not a user error.
				return moves, fmt.Errorf("internal: selector produced illegal move %v -> %v: %w", pp.Cell, dest, err)
			}
			mv := Move{From: pp.Cell, To: dest, Piece: pp.Piece.Type, Color: pp.Piece.Color}
			if captured != nil {
				mv.Captured = captured.Type
			}
			moves = append(moves, mv)
			// Only a King capture can decide the game; checking on capture
			// keeps a side that never had a King from ending the game by
			// merely moving.
			if captured != nil && captured.Type == King && g.checkWin() {
				return moves, nil
			}
		}
	}
	g.accounts[White].Points += g.opts.PointsPerTurn
	g.accounts[Black].Points += g.opts.PointsPerTurn
	for _, pp := range g.board.AllPieces() {
		pp.Piece.Behavior = BehaviorDefault
	}
	g.turnCounter++
	return moves, nil
}

// checkWin flags the game over the instant a color has no Kings left. Both
// sides kingless is a draw (winner stays empty); it cannot arise from a
// single move but is handled anyway.
func (g *Game) checkWin() bool {
	whiteKings := len(g.board.KingPositions(White))
	blackKings := len(g.board.KingPositions(Black))
	switch {
	case whiteKings == 0 && blackKings == 0:
		g.gameOver = true
	case whiteKings == 0:
		g.gameOver = true
		g.winner = Black
	case blackKings == 0:
		g.gameOver = true
		g.winner = White
	}
	return g.gameOver
}
