package game

import "testing"

func TestWhiteFrontlineExtendsToBottomEdge(t *testing.T) {
	b := NewBoard(24)
	mustPlace(t, b, NewPiece(King, White), Cell{Row: 20, Col: 10})

	for row := 18; row < 24; row++ {
		if !InFrontline(b, 2, White, Cell{Row: row, Col: 10}) {
			t.Errorf("Row %d should be inside white zone", row)
		}
	}
	if InFrontline(b, 2, White, Cell{Row: 17, Col: 10}) {
		t.Error("Row 17 should be outside white zone")
	}
	if InFrontline(b, 2, White, Cell{Row: 10, Col: 10}) {
		t.Error("Row 10 should be outside white zone")
	}
}

func TestBlackFrontlineExtendsToTopEdge(t *testing.T) {
	b := NewBoard(24)
	mustPlace(t, b, NewPiece(King, Black), Cell{Row: 3, Col: 10})

	for row := 0; row <= 5; row++ {
		if !InFrontline(b, 2, Black, Cell{Row: row, Col: 0}) {
			t.Errorf("Row %d should be inside black zone", row)
		}
	}
	if InFrontline(b, 2, Black, Cell{Row: 6, Col: 0}) {
		t.Error("Row 6 should be outside black zone")
	}
}

func TestMultipleKingsUnionZones(t *testing.T) {
	b := NewBoard(24)
	mustPlace(t, b, NewPiece(King, White), Cell{Row: 23, Col: 0})
	mustPlace(t, b, NewPiece(King, White), Cell{Row: 12, Col: 20})

	// The advanced king at row 12 opens rows 10+ for placement.
	if !InFrontline(b, 2, White, Cell{Row: 10, Col: 5}) {
		t.Error("Advanced king should open rows from 10 down")
	}
	if InFrontline(b, 2, White, Cell{Row: 9, Col: 5}) {
		t.Error("Row 9 should still be outside the union zone")
	}
}

func TestNoKingsFallsBackToHomeHalf(t *testing.T) {
	b := NewBoard(24)

	if !InFrontline(b, 2, White, Cell{Row: 12, Col: 0}) {
		t.Error("White home half should start at row 12")
	}
	if InFrontline(b, 2, White, Cell{Row: 11, Col: 0}) {
		t.Error("Row 11 is outside white home half")
	}
	if !InFrontline(b, 2, Black, Cell{Row: 11, Col: 0}) {
		t.Error("Black home half should end at row 11")
	}
	if InFrontline(b, 2, Black, Cell{Row: 12, Col: 0}) {
		t.Error("Row 12 is outside black home half")
	}
}

func TestZonesClippedAtEdges(t *testing.T) {
	b := NewBoard(8)
	mustPlace(t, b, NewPiece(King, White), Cell{Row: 1, Col: 4})

	// Frontline distance larger than remaining rows clips at row 0.
	if !InFrontline(b, 5, White, Cell{Row: 0, Col: 0}) {
		t.Error("Zone should clip to row 0, not reject it")
	}
	if InFrontline(b, 5, White, Cell{Row: -1, Col: 0}) {
		t.Error("Out-of-bounds cell can never be in a zone")
	}
}

func TestFrontlineZonesReflectKingCapture(t *testing.T) {
	b := NewBoard(24)
	king := NewPiece(King, White)
	mustPlace(t, b, king, Cell{Row: 20, Col: 10})

	before := FrontlineZones(b, 2)
	if len(before[White]) != 6*24 {
		t.Errorf("Expected 6 full rows in white zone, got %d cells", len(before[White]))
	}

	// Zones derive from live king positions; removing the king immediately
	// shrinks the zone to the home-half fallback.
	b.RemovePiece(Cell{Row: 20, Col: 10})
	after := FrontlineZones(b, 2)
	if len(after[White]) != 12*24 {
		t.Errorf("Expected home-half fallback of 12 rows, got %d cells", len(after[White]))
	}
}
