package board

import "unicode"

// PieceKind is a colorless piece type. The set is closed; rule logic
// switches over these six values and a new kind is a code change, not a
// registration.
type PieceKind uint8

const (
	NoKind PieceKind = 0
	Pawn   PieceKind = 1
	Knight PieceKind = 2
	Bishop PieceKind = 3
	Rook   PieceKind = 4
	Queen  PieceKind = 5
	King   PieceKind = 6
)

// Material value per kind. Kings carry a nominal value so trades near
// the king still order sensibly; the material score never loses one.
var kindValue = [7]int{0, 1, 3, 3, 5, 9, 5}

var kindSymbol = [7]byte{'?', 'P', 'N', 'B', 'R', 'Q', 'K'}

var kindName = [7]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

// Movement geometry per kind. Sliders keep attacking through a ray
// until blocked; steppers use a single table lookup.
var (
	slidesDiagonal = [7]bool{false, false, false, true, false, true, false}
	slidesStraight = [7]bool{false, false, false, false, true, true, false}
)

// Value returns the material value of the kind.
func (k PieceKind) Value() int { return kindValue[k] }

// Symbol returns the uppercase letter for the kind, e.g. 'N'.
func (k PieceKind) Symbol() byte { return kindSymbol[k] }

func (k PieceKind) String() string { return kindName[k] }

// KindFromSymbol maps a letter (either case) to a piece kind.
func KindFromSymbol(ch rune) PieceKind {
	switch unicode.ToUpper(ch) {
	case 'P':
		return Pawn
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'Q':
		return Queen
	case 'K':
		return King
	default:
		return NoKind
	}
}

// Piece is a kind with an owner. The zero value means "no piece".
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece is the empty-square sentinel.
var NoPiece = Piece{}

// Symbol returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) Symbol() byte {
	ch := kindSymbol[p.Kind]
	if p.Color == Black {
		return ch + ('a' - 'A')
	}
	return ch
}

// Glyph returns the unicode chess figurine for the piece.
func (p Piece) Glyph() rune {
	white := [7]rune{'?', '♙', '♘', '♗', '♖', '♕', '♔'}
	black := [7]rune{'?', '♟', '♞', '♝', '♜', '♛', '♚'}
	if p.Color == Black {
		return black[p.Kind]
	}
	return white[p.Kind]
}

func (p Piece) String() string {
	if p.Kind == NoKind {
		return "none"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// PieceFromSymbol parses a FEN piece letter; case selects the color.
func PieceFromSymbol(ch rune) (Piece, error) {
	kind := KindFromSymbol(ch)
	if kind == NoKind {
		return NoPiece, parseErrf(string(ch), "not a piece symbol")
	}
	color := White
	if unicode.IsLower(ch) {
		color = Black
	}
	return Piece{Kind: kind, Color: color}, nil
}
