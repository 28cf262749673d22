package game

// Frontline calculator: derives the cells where each color may place new
// pieces from current King positions. Zones are recomputed on every
// legality check and never cached, so a captured King can never leave a
// stale zone behind.

// rowSpan is an inclusive row interval covering every column.
type rowSpan struct {
	minRow, maxRow int
}

func (s rowSpan) contains(row int) bool {
	return row >= s.minRow && row <= s.maxRow
}

// frontlineSpans returns the row intervals forming a color's placement
// zone. Each King contributes one span: White's stretches from distance
// rows above the King to the bottom edge, Black's from the top edge to
// distance rows below the King. A color with no Kings falls back to its
// home half so the first King can be placed at all.
func frontlineSpans(b *Board, distance int, color Color) []rowSpan {
	kings := b.KingPositions(color)
	if len(kings) == 0 {
		half := b.size / 2
		if color == White {
			return []rowSpan{{minRow: half, maxRow: b.size - 1}}
		}
		return []rowSpan{{minRow: 0, maxRow: half - 1}}
	}
	spans := make([]rowSpan, 0, len(kings))
	for _, k := range kings {
		if color == White {
			spans = append(spans, rowSpan{minRow: max(0, k.Row-distance), maxRow: b.size - 1})
		} else {
			spans = append(spans, rowSpan{minRow: 0, maxRow: min(b.size-1, k.Row+distance)})
		}
	}
	return spans
}

// InFrontline reports whether cell lies inside the color's placement zone.
func InFrontline(b *Board, distance int, color Color, cell Cell) bool {
	if !b.InBounds(cell) {
		return false
	}
	for _, span := range frontlineSpans(b, distance, color) {
		if span.contains(cell.Row) {
			return true
		}
	}
	return false
}

// FrontlineZones computes the full placement zone for both colors, for
// placement-zone visualization. Cells appear in row-major order.
func FrontlineZones(b *Board, distance int) map[Color][]Cell {
	zones := make(map[Color][]Cell, 2)
	for _, color := range []Color{White, Black} {
		spans := frontlineSpans(b, distance, color)
		var cells []Cell
		for row := 0; row < b.size; row++ {
			inZone := false
			for _, span := range spans {
				if span.contains(row) {
					inZone = true
					break
				}
			}
			if !inZone {
				continue
			}
			for col := 0; col < b.size; col++ {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
		zones[color] = cells
	}
	return zones
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
