package client

import (
	"fmt"
	"strings"

	"github.com/Gargablegar/AutoChessBattler/internal/game"
)

// RenderBoard renders a snapshot's board as ASCII: uppercase letters for
// White, lowercase for Black, dots for empty cells.
func RenderBoard(snap game.Snapshot) string {
	var b strings.Builder
	for _, row := range snap.BoardState {
		cells := make([]string, len(row))
		for col, p := range row {
			if p == nil {
				cells[col] = "."
				continue
			}
			symbol := pieceLetter(p.Type)
			if p.Color == game.Black {
				symbol = strings.ToLower(symbol)
			}
			cells[col] = symbol
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderStatus summarizes points, turn, and outcome in one line.
func RenderStatus(snap game.Snapshot) string {
	if snap.GameOver {
		winner := snap.Winner
		if winner == "" {
			winner = "nobody (draw)"
		}
		return fmt.Sprintf("GAME OVER, winner: %s", winner)
	}
	status := fmt.Sprintf("turn %d | white %.2f pts | black %.2f pts | rounds/turn %d",
		snap.TurnCounter, snap.WhitePoints, snap.BlackPoints, snap.AutoTurns)
	if snap.ErrorMessage != "" {
		status += " | rejected: " + snap.ErrorMessage
	}
	return status
}

func pieceLetter(pt game.PieceType) string {
	if pt == game.Knight {
		return "N"
	}
	return string(pt[0])
}
