package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Gargablegar/AutoChessBattler/internal/client"
	"github.com/Gargablegar/AutoChessBattler/internal/game"
	"github.com/Gargablegar/AutoChessBattler/internal/server"
)

func main() {
	var addr, gameID string
	flag.StringVar(&addr, "addr", "ws://localhost:8765/ws", "Server websocket URL")
	flag.StringVar(&gameID, "game", server.DefaultGameID, "Game room to join")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	session, err := client.Dial(addr, gameID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to join game")
	}
	defer session.Close()

	session.OnAssignment = func(a server.PlayerAssignment) {
		fmt.Printf("Joined game %q as %s\n", a.GameID, a.AssignedColor)
	}
	session.OnUpdate = func(snap game.Snapshot) {
		fmt.Print(client.RenderBoard(snap))
		fmt.Println(client.RenderStatus(snap))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := session.Run(); err != nil {
			log.Error().Err(err).Msg("Session ended")
		}
	}()

	printHelp()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-done:
			return
		default:
		}
		if err := handleCommand(session, scanner.Text()); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func handleCommand(session *client.Session, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "place":
		if len(fields) != 4 {
			return fmt.Errorf("usage: place <type> <row> <col>")
		}
		row, col, err := parseCell(fields[2], fields[3])
		if err != nil {
			return err
		}
		return session.PlacePiece(fields[1], row, col)
	case "behave":
		if len(fields) != 4 {
			return fmt.Errorf("usage: behave <row> <col> <behavior>")
		}
		row, col, err := parseCell(fields[1], fields[2])
		if err != nil {
			return err
		}
		return session.SetBehavior(row, col, fields[3])
	case "turn":
		return session.AdvanceTurn()
	case "autoturns":
		if len(fields) != 2 {
			return fmt.Errorf("usage: autoturns <n>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid count %q", fields[1])
		}
		return session.SetAutoTurns(n)
	case "help":
		printHelp()
		return nil
	case "quit", "exit":
		os.Exit(0)
	}
	return fmt.Errorf("unknown command %q (try 'help')", fields[0])
}

func parseCell(rowStr, colStr string) (int, int, error) {
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", rowStr)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid col %q", colStr)
	}
	return row, col, nil
}

func printHelp() {
	fmt.Println(`Commands:
  place <type> <row> <col>      place a piece (King Queen Rook Bishop Knight Pawn)
  behave <row> <col> <stance>   set behavior (aggressive defensive passive default)
  turn                          advance the turn
  autoturns <n>                 set movement rounds per turn (1-10)
  help                          show this help
  quit                          exit`)
}
