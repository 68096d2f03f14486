package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"chesskit/board"
)

func main() {
	fen := flag.String("fen", "Standard", "FEN string or fixture name (Standard, Pin, Mate, Castle)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	verify := flag.Bool("verify", false, "Cross-check node counts against dragontoothmg")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	game, err := board.LoadFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading position: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		if verifyAgainstReference(game, *depth) {
			fmt.Println("OK: node counts match dragontoothmg")
			return
		}
		os.Exit(1)
	}

	if *divide {
		div := game.PerftDivide(*depth)
		moves := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			moves = append(moves, m)
			sum += n
		}
		sort.Strings(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += game.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

// verifyAgainstReference compares per-root-move node counts with
// dragontoothmg and reports the first divergence.
func verifyAgainstReference(game *board.Game, depth int) bool {
	ref := dragontoothmg.ParseFen(game.FEN())

	ours := game.PerftDivide(depth)
	theirs := make(map[string]uint64)
	for _, m := range ref.GenerateLegalMoves() {
		undo := ref.Apply(m)
		theirs[m.String()] = referencePerft(&ref, depth-1)
		undo()
	}

	moves := make(map[string]bool)
	for m := range ours {
		moves[m] = true
	}
	for m := range theirs {
		moves[m] = true
	}
	sorted := make([]string, 0, len(moves))
	for m := range moves {
		sorted = append(sorted, m)
	}
	sort.Strings(sorted)

	ok := true
	for _, m := range sorted {
		a, inOurs := ours[m]
		b, inTheirs := theirs[m]
		switch {
		case !inOurs:
			fmt.Printf("%s: missing from our move list (reference: %d)\n", m, b)
			ok = false
		case !inTheirs:
			fmt.Printf("%s: not generated by reference (ours: %d)\n", m, a)
			ok = false
		case a != b:
			fmt.Printf("%s: %d != reference %d\n", m, a, b)
			ok = false
		}
	}
	return ok
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		undo()
	}
	return nodes
}
