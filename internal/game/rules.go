package game

// Piece rule engine: pure functions computing legal destinations per piece
// type. The single source of truth for both placement/movement validation
// and the behavior selector.

type direction struct {
	dr, dc int
}

var (
	orthogonalDirections = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirections   = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirections        = []direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	knightOffsets = []direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

// forwardDir returns the row delta for a pawn of the given color. White
// advances toward row 0, Black toward row size-1.
func forwardDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// LegalDestinations returns every cell the piece at from may move to,
// including capturing destinations. Returns nil if from holds no piece.
// The board is never mutated.
func LegalDestinations(b *Board, from Cell) []Cell {
	p := b.PieceAt(from)
	if p == nil {
		return nil
	}
	switch p.Type {
	case King:
		return stepMoves(b, p, from, allDirections)
	case Queen:
		return rayMoves(b, p, from, allDirections)
	case Rook:
		return rayMoves(b, p, from, orthogonalDirections)
	case Bishop:
		return rayMoves(b, p, from, diagonalDirections)
	case Knight:
		return stepMoves(b, p, from, knightOffsets)
	case Pawn:
		return pawnMoves(b, p, from)
	}
	return nil
}

// CanCapture reports whether the piece at from may legally capture an enemy
// piece standing on target.
func CanCapture(b *Board, from, target Cell) bool {
	p := b.PieceAt(from)
	victim := b.PieceAt(target)
	if p == nil || victim == nil || victim.Color == p.Color {
		return false
	}
	for _, dest := range LegalDestinations(b, from) {
		if dest == target {
			return true
		}
	}
	return false
}

// stepMoves covers single-step movers (King) and fixed-offset jumpers
// (Knight). Only own-color occupants block the target cell itself; the
// Knight ignores everything in between.
func stepMoves(b *Board, p *Piece, from Cell, offsets []direction) []Cell {
	var moves []Cell
	for _, d := range offsets {
		c := Cell{Row: from.Row + d.dr, Col: from.Col + d.dc}
		if !b.InBounds(c) {
			continue
		}
		if occ := b.PieceAt(c); occ == nil || occ.Color != p.Color {
			moves = append(moves, c)
		}
	}
	return moves
}

// rayMoves casts a ray per direction, terminating at the first occupied
// cell. An enemy occupant is a capturing destination; an own-color occupant
// is excluded.
func rayMoves(b *Board, p *Piece, from Cell, dirs []direction) []Cell {
	var moves []Cell
	for _, d := range dirs {
		for dist := 1; dist < b.size; dist++ {
			c := Cell{Row: from.Row + d.dr*dist, Col: from.Col + d.dc*dist}
			if !b.InBounds(c) {
				break
			}
			occ := b.PieceAt(c)
			if occ == nil {
				moves = append(moves, c)
				continue
			}
			if occ.Color != p.Color {
				moves = append(moves, c)
			}
			break
		}
	}
	return moves
}

// pawnMoves: forward one if empty, forward two if unmoved and the path is
// clear, diagonal forward only onto an enemy piece. No en passant, no
// promotion.
func pawnMoves(b *Board, p *Piece, from Cell) []Cell {
	var moves []Cell
	fwd := forwardDir(p.Color)

	one := Cell{Row: from.Row + fwd, Col: from.Col}
	if b.InBounds(one) && b.PieceAt(one) == nil {
		moves = append(moves, one)
		if !p.HasMoved {
			two := Cell{Row: from.Row + 2*fwd, Col: from.Col}
			if b.InBounds(two) && b.PieceAt(two) == nil {
				moves = append(moves, two)
			}
		}
	}
	for _, dc := range []int{-1, 1} {
		diag := Cell{Row: from.Row + fwd, Col: from.Col + dc}
		if !b.InBounds(diag) {
			continue
		}
		if occ := b.PieceAt(diag); occ != nil && occ.Color != p.Color {
			moves = append(moves, diag)
		}
	}
	return moves
}
