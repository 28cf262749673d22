package game

// Board owns the grid of cells and every piece on it. At most one piece
// occupies a cell. All mutations are single atomic steps; validation happens
// before any state changes.
type Board struct {
	size  int
	cells map[Cell]*Piece
}

// PiecePosition pairs a piece with the cell it occupies.
type PiecePosition struct {
	Piece *Piece
	Cell  Cell
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make(map[Cell]*Piece),
	}
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// PieceAt returns the piece at c, or nil if the cell is empty or out of
// bounds.
func (b *Board) PieceAt(c Cell) *Piece {
	if !b.InBounds(c) {
		return nil
	}
	return b.cells[c]
}

// IsEmpty reports whether c holds no piece.
func (b *Board) IsEmpty(c Cell) bool {
	return b.cells[c] == nil
}

// PlacePiece puts p on cell c. Fails without mutating if c is out of bounds
// or occupied.
func (b *Board) PlacePiece(p *Piece, c Cell) error {
	if !b.InBounds(c) {
		return ErrOutOfBounds
	}
	if b.cells[c] != nil {
		return ErrOccupiedCell
	}
	b.cells[c] = p
	return nil
}

// RemovePiece removes and returns the piece at c, or nil if the cell is
// empty.
func (b *Board) RemovePiece(c Cell) *Piece {
	p := b.PieceAt(c)
	if p != nil {
		delete(b.cells, c)
	}
	return p
}

// MovePiece moves the piece at from to to, validating the destination
// against the rule engine. Any enemy piece at to is captured (removed) as
// part of the same atomic step. Returns the captured piece, if any.
func (b *Board) MovePiece(from, to Cell) (*Piece, error) {
	p := b.PieceAt(from)
	if p == nil {
		return nil, ErrNoPieceAt
	}
	legal := false
	for _, dest := range LegalDestinations(b, from) {
		if dest == to {
			legal = true
			break
		}
	}
	if !legal {
		return nil, ErrIllegalDestination
	}
	captured := b.RemovePiece(to)
	delete(b.cells, from)
	p.HasMoved = true
	b.cells[to] = p
	return captured, nil
}

// AllPieces returns every piece with its position in row-major scan order.
func (b *Board) AllPieces() []PiecePosition {
	out := make([]PiecePosition, 0, len(b.cells))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			c := Cell{Row: row, Col: col}
			if p := b.cells[c]; p != nil {
				out = append(out, PiecePosition{Piece: p, Cell: c})
			}
		}
	}
	return out
}

// KingPositions returns the cells of every King of the given color in
// row-major scan order.
func (b *Board) KingPositions(color Color) []Cell {
	var out []Cell
	for _, pp := range b.AllPieces() {
		if pp.Piece.Type == King && pp.Piece.Color == color {
			out = append(out, pp.Cell)
		}
	}
	return out
}
