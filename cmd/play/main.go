package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chesskit/board"
)

func main() {
	fen := flag.String("fen", "Standard", "Starting FEN or fixture name (Standard, Pin, Mate, Castle)")
	flag.Parse()

	game, err := board.LoadFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading position: %v\n", err)
		os.Exit(2)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println()
		fmt.Println(game.BoardString())
		if done := reportState(game); done {
			return
		}

		fmt.Printf("%s to move> ", game.Turn())
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToUpper(input) {
		case "R":
			fmt.Printf("%s resigns.\n", game.Turn())
			return
		case "D":
			fmt.Println("Draw agreed.")
			return
		case "U":
			if err := game.Undo(); err != nil {
				fmt.Println(err)
			}
			continue
		case "L":
			printLog(game)
			continue
		case "?":
			printAllMoves(game)
			continue
		case "H", "HELP":
			printHelp()
			continue
		case "Q", "QUIT":
			return
		}

		if strings.HasSuffix(input, "?") {
			printMovesFrom(game, strings.TrimSuffix(input, "?"))
			continue
		}

		if err := playMove(game, input); err != nil {
			fmt.Println(err)
		}
	}
}

// playMove tries the input as UCI first, then as SAN.
func playMove(game *board.Game, input string) error {
	if m, err := board.MoveFromUCI(input); err == nil {
		return game.Push(m)
	}
	_, err := game.PushSAN(input)
	return err
}

// reportState prints check and game-over status. Returns true when the
// game has ended.
func reportState(game *board.Game) bool {
	switch {
	case game.IsCheckmate():
		fmt.Printf("Checkmate. %s wins %s.\n", game.Turn().Opponent(), game.Result())
		return true
	case game.IsStalemate():
		fmt.Println("Stalemate. Draw.")
		return true
	case game.IsFiftyMoves():
		fmt.Println("Draw by the fifty-move rule.")
		return true
	case game.IsThreefoldRepetition():
		fmt.Println("Draw by threefold repetition.")
		return true
	case game.InCheck():
		fmt.Printf("%s is in check.\n", game.Turn())
	}
	fmt.Printf("Material: %+d\n", game.MaterialScore())
	return false
}

func printLog(game *board.Game) {
	history := game.MoveHistory()
	if len(history) == 0 {
		fmt.Println("No moves played.")
		return
	}
	for i, m := range history {
		if i%2 == 0 {
			fmt.Printf("%d. %s", i/2+1, m.UCI())
		} else {
			fmt.Printf(" %s\n", m.UCI())
		}
	}
	if len(history)%2 == 1 {
		fmt.Println()
	}
}

func printAllMoves(game *board.Game) {
	allowed := game.AllowedMoves()
	origins := maps.Keys(allowed)
	slices.Sort(origins)
	for _, from := range origins {
		dests := make([]string, len(allowed[from]))
		for i, to := range allowed[from] {
			dests[i] = to.String()
		}
		fmt.Printf("%s: %s\n", from, strings.Join(dests, " "))
	}
}

func printMovesFrom(game *board.Game, name string) {
	sq, err := board.ParseSquare(name)
	if err != nil {
		fmt.Println(err)
		return
	}
	dests, ok := game.AllowedMoves()[sq]
	if !ok {
		fmt.Printf("No moves from %s.\n", sq)
		return
	}
	names := make([]string, len(dests))
	for i, to := range dests {
		names[i] = to.String()
	}
	fmt.Printf("%s: %s\n", sq, strings.Join(names, " "))
}

func printHelp() {
	fmt.Println("Enter a move in SAN (Nf3, exd5, O-O) or UCI (g1f3, e7e8q).")
	fmt.Println("  ?    list all legal moves")
	fmt.Println("  e2?  list legal moves from a square")
	fmt.Println("  U    undo the last move")
	fmt.Println("  L    show the move log")
	fmt.Println("  R    resign")
	fmt.Println("  D    agree to a draw")
	fmt.Println("  Q    quit")
}
