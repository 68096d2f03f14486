package board_test

import (
	"testing"

	"chesskit/board"
)

func TestSquareSetAlgebra(t *testing.T) {
	a := board.NewSquareSet(board.A1, board.E4, board.H8)
	b := board.NewSquareSet(board.E4, board.C2)

	if got := a.Union(b).Len(); got != 4 {
		t.Errorf("union size = %d, want 4", got)
	}
	if got := a.Intersect(b); got != board.NewSquareSet(board.E4) {
		t.Errorf("intersect = %v, want {e4}", got.Squares())
	}
	if got := a.Diff(b); got != board.NewSquareSet(board.A1, board.H8) {
		t.Errorf("diff = %v, want {a1 h8}", got.Squares())
	}
	if got := a.SymmetricDiff(b); got != board.NewSquareSet(board.A1, board.H8, board.C2) {
		t.Errorf("symmetric diff = %v", got.Squares())
	}
	if !a.Contains(board.E4) || a.Contains(board.C2) {
		t.Errorf("membership wrong")
	}
	if got := a.Add(board.B2).Remove(board.A1); !got.Contains(board.B2) || got.Contains(board.A1) {
		t.Errorf("add/remove wrong: %v", got.Squares())
	}
}

func TestSquareSetPopHighest(t *testing.T) {
	s := board.NewSquareSet(board.A1, board.E4, board.H8)
	want := []board.Square{board.H8, board.E4, board.A1}
	for _, w := range want {
		sq, ok := s.Pop()
		if !ok || sq != w {
			t.Fatalf("pop = %v %v, want %v", sq, ok, w)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Fatalf("pop of empty set should report false")
	}
}

func TestSquareSetIteration(t *testing.T) {
	s := board.NewSquareSet(board.C3, board.A1, board.H8)
	got := s.Squares()
	want := []board.Square{board.A1, board.C3, board.H8}
	if len(got) != len(want) {
		t.Fatalf("squares = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("squares = %v, want %v (low to high)", got, want)
		}
	}
}

func TestSquareSetString(t *testing.T) {
	s := board.NewSquareSet(board.A8, board.H1)
	diagram := s.String()
	if diagram[0] != '1' {
		t.Errorf("a8 should be the first cell of the diagram:\n%s", diagram)
	}
	if diagram[len(diagram)-1] != '1' {
		t.Errorf("h1 should be the last cell of the diagram:\n%s", diagram)
	}
}

func TestSquareParsingAndGeometry(t *testing.T) {
	sq, err := board.ParseSquare("e4")
	if err != nil || sq != board.E4 {
		t.Fatalf("ParseSquare(e4) = %v, %v", sq, err)
	}
	for _, bad := range []string{"", "e", "e9", "i4", "4e", "e44"} {
		if _, err := board.ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}
	if board.E4.String() != "e4" || board.A1.String() != "a1" || board.H8.String() != "h8" {
		t.Errorf("square names wrong")
	}
	if board.E4.File() != 4 || board.E4.Rank() != 3 {
		t.Errorf("e4 file/rank = %d/%d", board.E4.File(), board.E4.Rank())
	}
	if board.A1.Mirror() != board.A8 || board.E4.Mirror() != board.E5 {
		t.Errorf("mirror wrong")
	}
	if board.Distance(board.A1, board.H8) != 7 || board.Distance(board.E4, board.E4) != 0 || board.Distance(board.C2, board.D4) != 2 {
		t.Errorf("distance wrong")
	}
}
