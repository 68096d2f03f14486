package board

import (
	"strings"
	"unicode"
)

// ParseSAN resolves standard algebraic notation ("e4", "Nf3", "axd4",
// "Ndxe2", "Rad1", "exd8=Q", "O-O") against the current position. The
// move must be legal; zero or multiple matching pieces yield an
// InvalidMoveError, malformed text a ParseError.
func (g *Game) ParseSAN(san string) (Move, error) {
	text := strings.TrimRight(san, "+#!?")
	if text == "" {
		return NullMove, parseErrf(san, "empty move text")
	}

	if normalized := strings.ToUpper(strings.ReplaceAll(text, "0", "O")); normalized == "O-O" || normalized == "O-O-O" {
		king, ok := g.pos.King(g.turn)
		if !ok {
			return NullMove, &InvalidBoardError{Reason: "no " + g.turn.String() + " king on the board"}
		}
		to := king + 2
		if normalized == "O-O-O" {
			to = king - 2
		}
		m := Move{From: king, To: to}
		if !g.isLegal(m) {
			return NullMove, invalidMovef("%s cannot castle %s", g.turn, san)
		}
		return m, nil
	}

	// Promotion: trailing piece letter, with or without '='.
	promotion := NoKind
	if last := rune(text[len(text)-1]); unicode.IsLetter(last) && len(text) > 2 {
		promotion = KindFromSymbol(last)
		if promotion == NoKind || promotion == Pawn || promotion == King {
			return NullMove, parseErrf(san, "bad promotion piece %q", last)
		}
		text = strings.TrimSuffix(text[:len(text)-1], "=")
	}

	// Leading uppercase letter names the piece kind; pawns go unnamed.
	kind := Pawn
	if first := rune(text[0]); unicode.IsUpper(first) {
		kind = KindFromSymbol(first)
		if kind == NoKind {
			return NullMove, parseErrf(san, "bad piece letter %q", first)
		}
		text = text[1:]
	}
	if promotion != NoKind && kind != Pawn {
		return NullMove, parseErrf(san, "only pawns promote")
	}

	if len(text) < 2 {
		return NullMove, parseErrf(san, "missing destination square")
	}
	to, err := ParseSquare(text[len(text)-2:])
	if err != nil {
		return NullMove, parseErrf(san, "bad destination square %q", text[len(text)-2:])
	}
	hint := strings.TrimSuffix(text[:len(text)-2], "x")

	var fileHint, rankHint = -1, -1
	var squareHint = NoSquare
	switch len(hint) {
	case 0:
	case 1:
		switch {
		case hint[0] >= 'a' && hint[0] <= 'h':
			fileHint = int(hint[0] - 'a')
		case hint[0] >= '1' && hint[0] <= '8':
			rankHint = int(hint[0] - '1')
		default:
			return NullMove, parseErrf(san, "bad disambiguation %q", hint)
		}
	case 2:
		squareHint, err = ParseSquare(hint)
		if err != nil {
			return NullMove, parseErrf(san, "bad disambiguation %q", hint)
		}
	default:
		return NullMove, parseErrf(san, "bad disambiguation %q", hint)
	}

	var candidates []Move
	needsPromotion := false
	for _, m := range g.LegalMoves() {
		if m.To != to || g.pos.PieceKindAt(m.From) != kind {
			continue
		}
		if fileHint >= 0 && m.From.File() != fileHint {
			continue
		}
		if rankHint >= 0 && m.From.Rank() != rankHint {
			continue
		}
		if squareHint != NoSquare && m.From != squareHint {
			continue
		}
		if m.Promotion != promotion {
			needsPromotion = needsPromotion || m.Promotion != NoKind
			continue
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 0:
		if needsPromotion {
			return NullMove, invalidMovef("%s requires a promotion piece", san)
		}
		return NullMove, invalidMovef("%s has no %s that can move to %s", g.turn, kind, to)
	case 1:
		return candidates[0], nil
	default:
		return NullMove, invalidMovef("%d pieces can move to %s", len(candidates), to)
	}
}

// PushSAN parses and plays a SAN move.
func (g *Game) PushSAN(san string) (Move, error) {
	m, err := g.ParseSAN(san)
	if err != nil {
		return NullMove, err
	}
	if err := g.Push(m); err != nil {
		return NullMove, err
	}
	return m, nil
}

// SAN renders a legal move in standard algebraic notation, with
// disambiguation, capture and promotion marks and a trailing + or # for
// check and mate.
func (g *Game) SAN(m Move) (string, error) {
	if !g.isLegal(m) {
		return "", invalidMovef("%s is not legal in this position", m.UCI())
	}

	mover := g.pos.PieceAt(m.From)
	var sb strings.Builder

	isCastle := mover.Kind == King && Distance(m.From, m.To) == 2 && m.From.Rank() == m.To.Rank()
	if isCastle {
		if m.To.File() > m.From.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		capture := g.pos.occupied&bb(m.To) != 0 ||
			(mover.Kind == Pawn && m.To == g.epSquare && m.From.File() != m.To.File())

		if mover.Kind == Pawn {
			if capture {
				sb.WriteByte('a' + byte(m.From.File()))
			}
		} else {
			sb.WriteByte(mover.Kind.Symbol())
			sb.WriteString(g.disambiguation(m, mover.Kind))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != NoKind {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Symbol())
		}
	}

	g.apply(m)
	if g.IsCheckmate() {
		sb.WriteByte('#')
	} else if g.InCheck() {
		sb.WriteByte('+')
	}
	if err := g.Undo(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// disambiguation returns the minimal origin hint needed to make the
// move unique among legal moves of the same kind to the same square.
func (g *Game) disambiguation(m Move, kind PieceKind) string {
	sameFile, sameRank, others := false, false, false
	for _, cand := range g.LegalMoves() {
		if cand.From == m.From || cand.To != m.To || g.pos.PieceKindAt(cand.From) != kind {
			continue
		}
		others = true
		if cand.From.File() == m.From.File() {
			sameFile = true
		}
		if cand.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return string([]byte{'a' + byte(m.From.File())})
	case !sameRank:
		return string([]byte{'1' + byte(m.From.Rank())})
	default:
		return m.From.String()
	}
}

// isLegal reports whether the exact move is in the legal set.
func (g *Game) isLegal(m Move) bool {
	for _, cand := range g.LegalMoves() {
		if cand == m {
			return true
		}
	}
	return false
}
