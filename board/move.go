package board

import "unicode"

// Move is an immutable from/to pair with an optional promotion kind and
// an optional drop kind. The zero value is the null move.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
	Drop      PieceKind
}

// NullMove is the placeholder move, printed as "0000".
var NullMove = Move{}

// IsNull reports whether the move is the null placeholder.
func (m Move) IsNull() bool { return m == NullMove }

// IsDrop reports whether the move places a held piece instead of moving
// one on the board.
func (m Move) IsDrop() bool { return m.Drop != NoKind }

// UCI renders the move in long algebraic text: "e2e4", "e7e8q" for a
// promotion, "N@f3" for a drop, "0000" for the null move.
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	if m.IsDrop() {
		return string([]byte{m.Drop.Symbol(), '@'}) + m.To.String()
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(unicode.ToLower(rune(m.Promotion.Symbol())))
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// MoveFromUCI parses long algebraic move text. Accepts "0000" for the
// null move and "K@sq" drops; rejects from == to for anything else.
func MoveFromUCI(s string) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) == 4 && s[1] == '@' {
		kind := KindFromSymbol(rune(s[0]))
		if kind == NoKind || !unicode.IsUpper(rune(s[0])) {
			return NullMove, parseErrf(s, "bad drop piece symbol")
		}
		to, err := ParseSquare(s[2:])
		if err != nil {
			return NullMove, parseErrf(s, "bad drop square")
		}
		return Move{From: to, To: to, Drop: kind}, nil
	}
	if len(s) != 4 && len(s) != 5 {
		return NullMove, parseErrf(s, "expected 4 or 5 characters")
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NullMove, parseErrf(s, "bad origin square")
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, parseErrf(s, "bad destination square")
	}
	var promotion PieceKind
	if len(s) == 5 {
		promotion = KindFromSymbol(rune(s[4]))
		if promotion == NoKind || promotion == Pawn || promotion == King || !unicode.IsLower(rune(s[4])) {
			return NullMove, parseErrf(s, "bad promotion symbol")
		}
	}
	if from == to {
		return NullMove, parseErrf(s, "origin and destination are the same")
	}
	return Move{From: from, To: to, Promotion: promotion}, nil
}
