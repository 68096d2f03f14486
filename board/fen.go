package board

import (
	"strconv"
	"strings"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENLibrary maps fixture names to positions. LoadFEN accepts either a
// library name or raw FEN text.
var FENLibrary = map[string]string{
	"Standard": StartingFEN,
	"Horde":    "rnbqkbnr/pppppppp/8/1PP2PP1/PPPPPPPP/PPPPPPPP/PPPPPPPP/PPPPPPPP w KQkq - 0 1",
	"Pin":      "R2rk2r/3pbp2/8/8/8/8/4Q3/R3K2R w KQkq - 0 1",
	"Mate":     "8/8/1Kn5/3k4/4Q3/6N1/8/8 b KQkq - 0 1",
	"Castle":   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
}

// LoadFEN resolves a FENLibrary name, then parses.
func LoadFEN(nameOrFEN string) (*Game, error) {
	if fen, ok := FENLibrary[nameOrFEN]; ok {
		return GameFromFEN(fen)
	}
	return GameFromFEN(nameOrFEN)
}

// GameFromFEN parses a FEN string into a fresh game. The side clauses
// are required through the en-passant field; the clocks default to 0
// and 1 when absent. A parse failure never yields a partial game.
func GameFromFEN(fen string) (*Game, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, parseErrf(fen, "FEN needs at least 4 fields, got %d", len(fields))
	}
	if len(fields) > 6 {
		return nil, parseErrf(fen, "FEN has too many fields")
	}

	g := newEmptyGame()

	// 1. Piece placement.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, parseErrf(fen, "expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		prevDigit := false
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				if prevDigit {
					return nil, parseErrf(fen, "consecutive digits in rank %d", rank+1)
				}
				file += int(ch - '0')
				prevDigit = true
				continue
			}
			prevDigit = false
			pc, err := PieceFromSymbol(ch)
			if err != nil {
				return nil, parseErrf(fen, "unrecognized piece symbol %q", ch)
			}
			if file >= 8 {
				return nil, parseErrf(fen, "rank %d has too many squares", rank+1)
			}
			g.pos.SetPieceAt(SquareAt(file, rank), pc)
			file++
		}
		if file != 8 {
			return nil, parseErrf(fen, "rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move.
	switch fields[1] {
	case "w":
		g.turn = White
	case "b":
		g.turn = Black
	default:
		return nil, parseErrf(fen, "side to move must be 'w' or 'b'")
	}

	// 3. Castling rights.
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				g.rights.WhiteKing = true
			case 'Q':
				g.rights.WhiteQueen = true
			case 'k':
				g.rights.BlackKing = true
			case 'q':
				g.rights.BlackQueen = true
			default:
				return nil, parseErrf(fen, "invalid castling rights character %q", ch)
			}
		}
	}

	// 4. En passant target square.
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, parseErrf(fen, "invalid en passant square %q", fields[3])
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return nil, parseErrf(fen, "en passant square %s is not on rank 3 or 6", sq)
		}
		g.epSquare = sq
	}

	// 5. Halfmove clock.
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, parseErrf(fen, "halfmove clock %q is not a non-negative number", fields[4])
		}
		g.halfmove = halfmove
	}

	// 6. Fullmove number.
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, parseErrf(fen, "fullmove number %q is not a positive number", fields[5])
		}
		g.fullmove = fullmove
	}

	g.hash = g.computeZobrist()
	return g, nil
}

// FEN renders the game's current state as a six-field FEN string.
func (g *Game) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := g.pos.PieceAt(SquareAt(file, rank))
			if pc.Kind == NoKind {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Symbol())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	if g.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	sb.WriteString(g.rights.String())
	sb.WriteByte(' ')

	sb.WriteString(g.epSquare.String())
	sb.WriteByte(' ')

	sb.WriteString(strconv.Itoa(g.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.fullmove))
	return sb.String()
}

// BoardString renders the position as an 8x8 unicode diagram with rank
// 8 on top.
func (g *Game) BoardString() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			pc := g.pos.PieceAt(SquareAt(file, rank))
			if pc.Kind == NoKind {
				sb.WriteRune('·')
			} else {
				sb.WriteRune(pc.Glyph())
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
