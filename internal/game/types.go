package game

// Color identifies a player side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the opposing color.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// PieceType identifies one of the six piece archetypes.
type PieceType string

const (
	King   PieceType = "King"
	Queen  PieceType = "Queen"
	Rook   PieceType = "Rook"
	Bishop PieceType = "Bishop"
	Knight PieceType = "Knight"
	Pawn   PieceType = "Pawn"
)

// PieceCosts maps each piece type to its placement cost in points.
var PieceCosts = map[PieceType]float64{
	King:   20,
	Queen:  10,
	Rook:   5.25,
	Bishop: 3.5,
	Knight: 3.5,
	Pawn:   1,
}

// ParsePieceType converts a wire-level piece type string.
func ParsePieceType(s string) (PieceType, error) {
	pt := PieceType(s)
	if _, ok := PieceCosts[pt]; !ok {
		return "", ErrUnknownPieceType
	}
	return pt, nil
}

// Behavior is the transient per-turn stance controlling automatic move
// selection during movement rounds. It resets to BehaviorDefault after
// every turn.
type Behavior string

const (
	BehaviorDefault    Behavior = "default"
	BehaviorAggressive Behavior = "aggressive"
	BehaviorDefensive  Behavior = "defensive"
	BehaviorPassive    Behavior = "passive"
)

// ParseBehavior converts a wire-level behavior string.
func ParseBehavior(s string) (Behavior, error) {
	switch b := Behavior(s); b {
	case BehaviorDefault, BehaviorAggressive, BehaviorDefensive, BehaviorPassive:
		return b, nil
	}
	return "", ErrUnknownBehavior
}

// Cell is a board coordinate. Row 0 is the top edge (Black's back rank);
// row size-1 is the bottom edge (White's back rank).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Piece is a single piece on the board. Pieces are owned exclusively by the
// Board; consumers receive snapshots, never shared references.
type Piece struct {
	Type     PieceType
	Color    Color
	HasMoved bool
	Behavior Behavior
}

// NewPiece creates a piece with default behavior.
func NewPiece(pt PieceType, color Color) *Piece {
	return &Piece{Type: pt, Color: color, Behavior: BehaviorDefault}
}

// Cost returns the placement cost of the piece type.
func (p *Piece) Cost() float64 {
	return PieceCosts[p.Type]
}
