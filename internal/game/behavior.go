package game

import "math/rand"

// Behavior selector: picks one intended destination per piece per movement
// round. Pure apart from the injected random source, which breaks ties
// uniformly. The selector never mutates the board; the turn engine applies
// the chosen move.

// ChooseMove returns the destination the piece at from wants this round,
// or ok=false if it stays put. Passive and default pieces never move.
func ChooseMove(b *Board, from Cell, rng *rand.Rand) (Cell, bool) {
	p := b.PieceAt(from)
	if p == nil {
		return Cell{}, false
	}
	switch p.Behavior {
	case BehaviorAggressive:
		return chooseAggressive(b, p, from, rng)
	case BehaviorDefensive:
		return chooseDefensive(b, p, from, rng)
	default:
		return Cell{}, false
	}
}

// chooseAggressive captures when it can, otherwise closes in on the nearest
// enemy King. Holds position if no legal destination reduces the distance.
func chooseAggressive(b *Board, p *Piece, from Cell, rng *rand.Rand) (Cell, bool) {
	dests := LegalDestinations(b, from)
	if c, ok := pickCapture(b, p, dests, rng); ok {
		return c, true
	}
	target, ok := nearestKing(b, p.Color.Opponent(), from)
	if !ok {
		return Cell{}, false
	}
	return stepToward(from, target, dests, rng)
}

// chooseDefensive captures when it can; otherwise it screens the nearest
// friendly King, holding position once within 5 cells of it.
func chooseDefensive(b *Board, p *Piece, from Cell, rng *rand.Rand) (Cell, bool) {
	dests := LegalDestinations(b, from)
	if c, ok := pickCapture(b, p, dests, rng); ok {
		return c, true
	}
	target, ok := nearestKing(b, p.Color, from)
	if !ok {
		return Cell{}, false
	}
	if chebyshev(from, target) <= 5 {
		return Cell{}, false
	}
	return stepToward(from, target, dests, rng)
}

// pickCapture chooses uniformly among capturing destinations.
func pickCapture(b *Board, p *Piece, dests []Cell, rng *rand.Rand) (Cell, bool) {
	var captures []Cell
	for _, d := range dests {
		if occ := b.PieceAt(d); occ != nil && occ.Color != p.Color {
			captures = append(captures, d)
		}
	}
	if len(captures) == 0 {
		return Cell{}, false
	}
	return captures[rng.Intn(len(captures))], true
}

// nearestKing finds the closest King of the given color by Chebyshev
// distance, ties broken by board-scan order.
func nearestKing(b *Board, color Color, from Cell) (Cell, bool) {
	kings := b.KingPositions(color)
	if len(kings) == 0 {
		return Cell{}, false
	}
	best := kings[0]
	bestDist := chebyshev(from, best)
	for _, k := range kings[1:] {
		if d := chebyshev(from, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, true
}

// stepToward picks uniformly among the destinations closest to target,
// provided the best option actually reduces the distance.
func stepToward(from, target Cell, dests []Cell, rng *rand.Rand) (Cell, bool) {
	if len(dests) == 0 {
		return Cell{}, false
	}
	current := chebyshev(from, target)
	bestDist := current
	var best []Cell
	for _, d := range dests {
		dist := chebyshev(d, target)
		switch {
		case dist < bestDist:
			bestDist = dist
			best = best[:0]
			best = append(best, d)
		case dist == bestDist && dist < current:
			best = append(best, d)
		}
	}
	if len(best) == 0 {
		return Cell{}, false
	}
	return best[rng.Intn(len(best))], true
}

func chebyshev(a, b Cell) int {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	if dr > dc {
		return dr
	}
	return dc
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
