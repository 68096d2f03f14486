package board

// Square represents a board position (0-63), index = rank*8 + file with
// A1 = 0 and H8 = 63.
type Square int

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Color identifies a side. White moves first.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opponent returns the other side.
func (c Color) Opponent() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// File returns the file index (0 = a-file, 7 = h-file).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the rank index (0 = rank 1, 7 = rank 8).
func (sq Square) Rank() int { return int(sq) >> 3 }

// Mirror reflects the square vertically (a1 <-> a8).
func (sq Square) Mirror() Square { return sq ^ 0x38 }

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// SquareAt builds a square from file and rank indices.
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// ParseSquare parses an algebraic square name like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, parseErrf(s, "not a square name")
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Distance returns the Chebyshev distance between two squares, the
// number of king steps from one to the other.
func Distance(a, b Square) int {
	df := a.File() - b.File()
	if df < 0 {
		df = -df
	}
	dr := a.Rank() - b.Rank()
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// File and rank masks, indexed 0-7 from the a-file and rank 1.
var maskFile = [8]uint64{
	0x0101010101010101,
	0x0101010101010101 << 1,
	0x0101010101010101 << 2,
	0x0101010101010101 << 3,
	0x0101010101010101 << 4,
	0x0101010101010101 << 5,
	0x0101010101010101 << 6,
	0x0101010101010101 << 7,
}

var maskRank = [8]uint64{
	0xFF,
	0xFF << 8,
	0xFF << 16,
	0xFF << 24,
	0xFF << 32,
	0xFF << 40,
	0xFF << 48,
	0xFF << 56,
}

const (
	// FullBoard has every square set.
	FullBoard uint64 = 0xFFFFFFFFFFFFFFFF
	// EmptyBoard has no square set.
	EmptyBoard uint64 = 0
)
