package board_test

import (
	"errors"
	"testing"

	"chesskit/board"
)

// Pushing any legal move and undoing it must restore the FEN and the
// Zobrist hash exactly.
func TestPushUndoRoundTrip(t *testing.T) {
	fens := []string{
		"Standard",
		"Pin",
		"Castle",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/P6k/8/8/8/8/8/K7 w - - 0 1",
	}
	for _, fen := range fens {
		g := mustGame(t, fen)
		before := g.FEN()
		hash := g.Hash()
		for _, m := range g.LegalMoves() {
			if err := g.Push(m); err != nil {
				t.Fatalf("%s: push %s: %v", fen, m.UCI(), err)
			}
			if err := g.Undo(); err != nil {
				t.Fatalf("%s: undo %s: %v", fen, m.UCI(), err)
			}
			if got := g.FEN(); got != before {
				t.Fatalf("%s: undo of %s left %q", fen, m.UCI(), got)
			}
			if g.Hash() != hash {
				t.Fatalf("%s: undo of %s changed the hash", fen, m.UCI())
			}
		}
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	g := mustGame(t, "Standard")
	err := g.Undo()
	if err == nil {
		t.Fatalf("undo with no history should fail")
	}
	var ime *board.InvalidMoveError
	if !errors.As(err, &ime) {
		t.Fatalf("error should be an InvalidMoveError, got %T", err)
	}
}

func TestPushRejectsIllegalMoves(t *testing.T) {
	g := mustGame(t, "Standard")
	before := g.FEN()

	cases := []board.Move{
		{},                                     // null
		{From: board.E2, To: board.E5},         // too far
		{From: board.E7, To: board.E5},         // not this side's piece
		{From: board.E4, To: board.E5},         // empty origin
		{From: board.D1, To: board.H5},         // blocked queen
		{From: board.F3, To: board.F3, Drop: board.Knight}, // drop
	}
	for _, m := range cases {
		err := g.Push(m)
		if err == nil {
			t.Errorf("push %s should fail", m.UCI())
			continue
		}
		var ime *board.InvalidMoveError
		if !errors.As(err, &ime) {
			t.Errorf("push %s: error should be an InvalidMoveError, got %T", m.UCI(), err)
		}
	}
	if g.FEN() != before {
		t.Fatalf("failed pushes must not change the game")
	}
}

func TestPushRequiresPromotionChoice(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err := g.Push(board.Move{From: board.A7, To: board.A8}); err == nil {
		t.Fatalf("promotion move without a piece choice should fail")
	}
	if err := g.Push(board.Move{From: board.A7, To: board.A8, Promotion: board.Queen}); err != nil {
		t.Fatalf("explicit promotion should succeed: %v", err)
	}
	if g.Position().PieceKindAt(board.A8) != board.Queen {
		t.Fatalf("a8 should hold the new queen")
	}

	// A promotion tag on a normal move is rejected.
	g2 := mustGame(t, "Standard")
	if err := g2.Push(board.Move{From: board.E2, To: board.E4, Promotion: board.Queen}); err == nil {
		t.Fatalf("e2e4 is not a promotion move")
	}
}

func TestCastlingRightsRevocation(t *testing.T) {
	// King move drops both rights for that side.
	g := mustGame(t, "Castle")
	if err := g.Push(board.Move{From: board.E1, To: board.E2}); err != nil {
		t.Fatalf("king move: %v", err)
	}
	r := g.Rights()
	if r.WhiteKing || r.WhiteQueen || !r.BlackKing || !r.BlackQueen {
		t.Fatalf("after Ke2 rights = %+v", r)
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.Rights() != board.AllCastlingRights {
		t.Fatalf("undo should restore rights, got %+v", g.Rights())
	}

	// Rook move drops only its own side's flank.
	if err := g.Push(board.Move{From: board.A1, To: board.A4}); err != nil {
		t.Fatalf("rook move: %v", err)
	}
	r = g.Rights()
	if r.WhiteQueen || !r.WhiteKing {
		t.Fatalf("after Ra4 rights = %+v", r)
	}

	// Capturing a rook on its home square drops the victim's right.
	g2 := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err := g2.Push(board.Move{From: board.A1, To: board.A8}); err != nil {
		t.Fatalf("rook capture: %v", err)
	}
	r = g2.Rights()
	if r.BlackQueen || !r.BlackKing || r.WhiteQueen {
		t.Fatalf("after Rxa8 rights = %+v", r)
	}
}

func TestClocksAndTurnOrder(t *testing.T) {
	g := mustGame(t, "Standard")
	if g.Turn() != board.White || g.FullmoveNumber() != 1 {
		t.Fatalf("fresh game state wrong")
	}

	push := func(uci string) {
		t.Helper()
		m, err := board.MoveFromUCI(uci)
		if err != nil {
			t.Fatalf("parse %s: %v", uci, err)
		}
		if err := g.Push(m); err != nil {
			t.Fatalf("push %s: %v", uci, err)
		}
	}

	push("g1f3")
	if g.Turn() != board.Black || g.FullmoveNumber() != 1 || g.HalfmoveClock() != 1 {
		t.Fatalf("after Nf3: turn=%v full=%d half=%d", g.Turn(), g.FullmoveNumber(), g.HalfmoveClock())
	}
	push("b8c6")
	if g.Turn() != board.White || g.FullmoveNumber() != 2 || g.HalfmoveClock() != 2 {
		t.Fatalf("after Nc6: turn=%v full=%d half=%d", g.Turn(), g.FullmoveNumber(), g.HalfmoveClock())
	}
	push("e2e4")
	if g.HalfmoveClock() != 0 {
		t.Fatalf("pawn move should reset the halfmove clock")
	}
	push("c6d4")
	push("f3d4")
	if g.HalfmoveClock() != 0 {
		t.Fatalf("capture should reset the halfmove clock")
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := mustGame(t, "Standard")
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for round := 0; round < 2; round++ {
		for _, uci := range shuffle {
			m, _ := board.MoveFromUCI(uci)
			if err := g.Push(m); err != nil {
				t.Fatalf("push %s: %v", uci, err)
			}
		}
	}
	if !g.IsThreefoldRepetition() {
		t.Fatalf("start position occurred three times")
	}
	if g.Result() != board.Draw {
		t.Fatalf("result = %v, want draw", g.Result())
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.IsThreefoldRepetition() {
		t.Fatalf("after undo only two occurrences remain")
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := mustGame(t, "8/8/8/4k3/8/4K3/8/R7 w - - 99 70")
	if g.IsFiftyMoves() {
		t.Fatalf("99 half-moves is not yet a draw")
	}
	if err := g.Push(board.Move{From: board.A1, To: board.A2}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if !g.IsFiftyMoves() || g.Result() != board.Draw {
		t.Fatalf("100 half-moves should draw, half=%d", g.HalfmoveClock())
	}
}

func TestCloneIndependence(t *testing.T) {
	g := mustGame(t, "Standard")
	m, _ := board.MoveFromUCI("e2e4")
	if err := g.Push(m); err != nil {
		t.Fatalf("push: %v", err)
	}

	clone := g.Clone()
	m2, _ := board.MoveFromUCI("e7e5")
	if err := clone.Push(m2); err != nil {
		t.Fatalf("clone push: %v", err)
	}

	if g.Ply() != 1 || clone.Ply() != 2 {
		t.Fatalf("histories should diverge: %d vs %d", g.Ply(), clone.Ply())
	}
	if g.FEN() == clone.FEN() {
		t.Fatalf("clone moves must not affect the original")
	}
	if err := clone.Undo(); err != nil {
		t.Fatalf("clone undo: %v", err)
	}
	if clone.FEN() != g.FEN() {
		t.Fatalf("clone should converge back to the original state")
	}
}

func TestFindKingStrict(t *testing.T) {
	g := mustGame(t, "Standard")
	sq, err := g.FindKing(board.White)
	if err != nil || sq != board.E1 {
		t.Fatalf("FindKing = %v, %v", sq, err)
	}

	var boardErr *board.InvalidBoardError

	noKing := mustGame(t, "8/8/8/3r4/8/8/3K4/8 w - - 0 1")
	if _, err := noKing.FindKing(board.Black); !errors.As(err, &boardErr) {
		t.Fatalf("missing king should yield InvalidBoardError, got %v", err)
	}

	twoKings := mustGame(t, "8/8/2k1k3/8/8/8/8/4K3 w - - 0 1")
	if _, err := twoKings.FindKing(board.Black); !errors.As(err, &boardErr) {
		t.Fatalf("two kings should yield InvalidBoardError, got %v", err)
	}
	if _, err := twoKings.FindKing(board.White); err != nil {
		t.Fatalf("white has exactly one king: %v", err)
	}
}

func TestMoveHistory(t *testing.T) {
	g := mustGame(t, "Standard")
	if !g.LastMove().IsNull() {
		t.Fatalf("fresh game has no last move")
	}
	for _, uci := range []string{"e2e4", "e7e5", "g1f3"} {
		m, _ := board.MoveFromUCI(uci)
		if err := g.Push(m); err != nil {
			t.Fatalf("push %s: %v", uci, err)
		}
	}
	history := g.MoveHistory()
	if len(history) != 3 || history[0].UCI() != "e2e4" || history[2].UCI() != "g1f3" {
		t.Fatalf("history = %v", history)
	}
	if g.LastMove().UCI() != "g1f3" {
		t.Fatalf("last move = %s", g.LastMove().UCI())
	}
}
