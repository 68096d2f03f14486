package board_test

import (
	"testing"

	"chesskit/board"
)

func mustGame(t *testing.T, nameOrFEN string) *board.Game {
	t.Helper()
	g, err := board.LoadFEN(nameOrFEN)
	if err != nil {
		t.Fatalf("LoadFEN(%q): %v", nameOrFEN, err)
	}
	return g
}

func TestStandardPositionShape(t *testing.T) {
	g := mustGame(t, "Standard")
	pos := g.Position()

	if got := board.SquareSet(pos.Occupied()).Len(); got != 32 {
		t.Errorf("occupied count = %d, want 32", got)
	}
	if king, ok := pos.King(board.White); !ok || king != board.E1 {
		t.Errorf("white king = %v, want e1", king)
	}
	if king, ok := pos.King(board.Black); !ok || king != board.E8 {
		t.Errorf("black king = %v, want e8", king)
	}
	if pc := pos.PieceAt(board.D1); pc.Kind != board.Queen || pc.Color != board.White {
		t.Errorf("d1 = %v, want white queen", pc)
	}
	if pos.PieceKindAt(board.E5) != board.NoKind {
		t.Errorf("e5 should be empty")
	}
	if c, ok := pos.ColorAt(board.A7); !ok || c != board.Black {
		t.Errorf("a7 owner = %v %v, want black", c, ok)
	}
	if !pos.Validate() {
		t.Errorf("standard position should validate")
	}
	if pos.MaterialScore() != 0 {
		t.Errorf("standard material = %d, want 0", pos.MaterialScore())
	}
}

func TestSetPieceAtReplacesOccupant(t *testing.T) {
	var pos board.Position
	pos.SetPieceAt(board.E4, board.Piece{Kind: board.Rook, Color: board.White})
	pos.SetPieceAt(board.E4, board.Piece{Kind: board.Knight, Color: board.Black})

	if pc := pos.PieceAt(board.E4); pc.Kind != board.Knight || pc.Color != board.Black {
		t.Fatalf("e4 = %v, want black knight", pc)
	}
	if !pos.Validate() {
		t.Fatalf("replacing a piece left inconsistent masks")
	}
	if popped := pos.PopPieceAt(board.E4); popped.Kind != board.Knight {
		t.Fatalf("pop = %v, want knight", popped)
	}
	if pos.Occupied() != 0 {
		t.Fatalf("board should be empty after pop")
	}
	if pos.PopPieceAt(board.E4).Kind != board.NoKind {
		t.Fatalf("pop of empty square should return NoPiece")
	}
}

func TestAttacksMask(t *testing.T) {
	var pos board.Position
	pos.SetPieceAt(board.D4, board.Piece{Kind: board.Rook, Color: board.White})
	pos.SetPieceAt(board.D6, board.Piece{Kind: board.Pawn, Color: board.Black})

	attacks := board.SquareSet(pos.AttacksMask(board.D4))
	if !attacks.Contains(board.D6) {
		t.Errorf("rook should attack the blocker on d6")
	}
	if attacks.Contains(board.D7) {
		t.Errorf("rook should not see past the blocker")
	}
	if pos.AttacksMask(board.H5) != 0 {
		t.Errorf("empty square should attack nothing")
	}
}

func TestAttackersMaskSymmetry(t *testing.T) {
	g := mustGame(t, "8/8/1Kn5/3k4/4Q3/6N1/8/8 w - - 0 1")
	pos := g.Position()

	attackers := board.SquareSet(pos.AttackersMask(board.White, board.D5))
	if !attackers.Contains(board.E4) {
		t.Errorf("queen on e4 attacks d5")
	}
	if attackers.Contains(board.B6) || attackers.Contains(board.G3) {
		t.Errorf("neither the b6 king nor the g3 knight reaches d5: %v", attackers.Squares())
	}
	if kingAtk := board.SquareSet(pos.AttackersMask(board.White, board.C7)); !kingAtk.Contains(board.B6) {
		t.Errorf("king on b6 attacks c7")
	}
	if !pos.IsAttackedBy(board.Black, board.E4) {
		t.Errorf("black king on d5 attacks e4")
	}
	if pos.IsAttackedBy(board.Black, board.G1) {
		t.Errorf("nothing black reaches g1")
	}
}

// The Pin fixture: R2rk2r/3pbp2/8/8/8/8/4Q3/R3K2R w KQkq - 0 1.
func TestPinMask(t *testing.T) {
	g := mustGame(t, "Pin")
	pos := g.Position()

	// d8 rook is pinned to the e8 king along rank 8 by the a8 rook.
	if !pos.IsPinned(board.Black, board.D8) {
		t.Fatalf("d8 rook should be pinned")
	}
	pin := board.SquareSet(pos.PinMask(board.Black, board.D8))
	if !pin.Contains(board.A8) || !pin.Contains(board.E8) {
		t.Errorf("pin ray should run from a8 to the king: %v", pin.Squares())
	}
	if pin.Contains(board.D7) {
		t.Errorf("rank pin should not include file squares")
	}

	// e7 bishop is pinned along the e-file by the e2 queen.
	if !pos.IsPinned(board.Black, board.E7) {
		t.Fatalf("e7 bishop should be pinned")
	}
	filePin := board.SquareSet(pos.PinMask(board.Black, board.E7))
	if !filePin.Contains(board.E2) || !filePin.Contains(board.E8) {
		t.Errorf("file pin ray should run from e2 to e8: %v", filePin.Squares())
	}

	// f7 pawn is not pinned; its mask is the full board.
	if pos.IsPinned(board.Black, board.F7) {
		t.Errorf("f7 pawn should not be pinned")
	}
	if pos.PinMask(board.Black, board.F7) != board.FullBoard {
		t.Errorf("unpinned piece should get the full-board mask")
	}

	// h8 rook is not pinned: the king is not between it and anything.
	if pos.IsPinned(board.Black, board.H8) {
		t.Errorf("h8 rook should not be pinned")
	}
}

func TestPinMaskWithoutKing(t *testing.T) {
	var pos board.Position
	pos.SetPieceAt(board.D4, board.Piece{Kind: board.Rook, Color: board.White})
	if pos.PinMask(board.White, board.D4) != board.FullBoard {
		t.Errorf("kingless side should get the full-board mask")
	}
}

func TestPinnedPieceMovesStayOnRay(t *testing.T) {
	// The Pin fixture with Black to move, so its legal moves are on view.
	g := mustGame(t, "R2rk2r/3pbp2/8/8/8/8/4Q3/R3K2R b KQkq - 0 1")
	pos := g.Position()

	for _, m := range g.LegalMoves() {
		pc := pos.PieceAt(m.From)
		mask := pos.PinMask(pc.Color, m.From)
		if mask == board.FullBoard {
			continue
		}
		if mask&(1<<uint(m.To)) == 0 {
			t.Errorf("pinned %v move %s leaves the pin ray", pc, m.UCI())
		}
	}
}

func TestMaterialScore(t *testing.T) {
	g := mustGame(t, "8/8/1Kn5/3k4/4Q3/6N1/8/8 b - - 0 1")
	// White: queen 9 + knight 3 + king 5; Black: knight 3 + king 5.
	if got := g.MaterialScore(); got != 9 {
		t.Errorf("material = %d, want 9", got)
	}
}

func TestPromotedMaskTracksPromotions(t *testing.T) {
	g := mustGame(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err := g.Push(board.Move{From: board.A7, To: board.A8, Promotion: board.Queen}); err != nil {
		t.Fatalf("promotion: %v", err)
	}
	if g.Position().PromotedMask()&(1<<uint(board.A8)) == 0 {
		t.Fatalf("a8 queen should be marked promoted")
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if g.Position().PromotedMask() != 0 {
		t.Fatalf("promoted mask should be empty after undo")
	}
}
