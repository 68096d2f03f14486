package board_test

import (
	"strings"
	"testing"

	chess "github.com/corentings/chess/v2"

	"chesskit/board"
)

// A full Ruy Lopez game used as a replay fixture.
const referenceGame = `
	e4 e5 Nf3 Nc6 Bb5 a6 Ba4 Nf6 O-O Be7 Re1 b5 Bb3 d6 c3 O-O h3 Nb8 d4 Nbd7 c4
	c6 cxb5 axb5 Nc3 Bb7 Bg5 b4 Nb1 h6 Bh4 c5 dxe5 Nxe4 Bxe7 Qxe7 exd6 Qf6 Nbd2
	Nxd6 Nc4 Nxc4 Bxc4 Nb6 Ne5 Rae8 Bxf7+ Rxf7 Nxf7 Rxe1+ Qxe1 Kxf7 Qe3 Qg5
	Qxg5 hxg5 b3 Ke6 a3 Kd6 axb4 cxb4 Ra5 Nd5 f3 Bc8 Kf2 Bf5 Ra7 g6 Ra6+ Kc5
	Ke1 Nf4 g3 Nxh3 Kd2 Kb5 Rd6 Kc5 Ra6 Nf2 g4 Bd3 Re6`

// Replaying the reference game, the legal move count at every ply must
// agree with the corentings/chess engine's ValidMoves.
func TestReferenceGameMatchesOracle(t *testing.T) {
	ours := mustGame(t, "Standard")
	oracle := chess.NewGame()

	moves := strings.Fields(referenceGame)
	for ply, san := range moves {
		ourCount := len(ours.LegalMoves())
		oracleCount := len(oracle.ValidMoves())
		if ourCount != oracleCount {
			t.Fatalf("ply %d (before %s): %d legal moves, oracle has %d",
				ply, san, ourCount, oracleCount)
		}

		if _, err := ours.PushSAN(san); err != nil {
			t.Fatalf("ply %d: push %q: %v", ply, san, err)
		}
		if err := oracle.PushMove(san, nil); err != nil {
			t.Fatalf("ply %d: oracle push %q: %v", ply, san, err)
		}
	}

	if ours.Ply() != len(moves) {
		t.Fatalf("replayed %d plies, history has %d", len(moves), ours.Ply())
	}

	// Unwind the whole game; the start position must come back exactly.
	for ours.Ply() > 0 {
		if err := ours.Undo(); err != nil {
			t.Fatalf("undo at ply %d: %v", ours.Ply(), err)
		}
	}
	if got := ours.FEN(); got != board.StartingFEN {
		t.Fatalf("full unwind left %q", got)
	}
}
