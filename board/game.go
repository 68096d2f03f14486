package board

// CastlingRights tracks the four castling permissions independently.
type CastlingRights struct {
	WhiteKing  bool
	WhiteQueen bool
	BlackKing  bool
	BlackQueen bool
}

// AllCastlingRights has every permission set.
var AllCastlingRights = CastlingRights{true, true, true, true}

// bits packs the rights into a 0-15 index for the Zobrist table.
func (c CastlingRights) bits() int {
	b := 0
	if c.WhiteKing {
		b |= 1
	}
	if c.WhiteQueen {
		b |= 2
	}
	if c.BlackKing {
		b |= 4
	}
	if c.BlackQueen {
		b |= 8
	}
	return b
}

func (c CastlingRights) String() string {
	if c == (CastlingRights{}) {
		return "-"
	}
	s := make([]byte, 0, 4)
	if c.WhiteKing {
		s = append(s, 'K')
	}
	if c.WhiteQueen {
		s = append(s, 'Q')
	}
	if c.BlackKing {
		s = append(s, 'k')
	}
	if c.BlackQueen {
		s = append(s, 'q')
	}
	return string(s)
}

// placement is one square edit: the piece that was placed on or removed
// from a square, with its promoted flag.
type placement struct {
	sq       Square
	piece    Piece
	promoted bool
}

// record is one reversible history entry. placed and removed describe
// the edits Push performed; the prev fields snapshot the scalar state
// before the move. Undo pops the placements, restores the removals and
// the snapshot.
type record struct {
	move         Move
	placed       []placement
	removed      []placement
	prevRights   CastlingRights
	prevEP       Square
	prevHalfmove int
	prevFullmove int
	prevHash     uint64
}

// Game is a full game state: position, side to move, castling rights,
// en-passant target, clocks, Zobrist hash and the reversible move
// history. A Game is not safe for concurrent mutation; speculative
// lines branch on Clone.
type Game struct {
	pos      Position
	turn     Color
	rights   CastlingRights
	epSquare Square
	halfmove int
	fullmove int
	hash     uint64
	history  []record

	// Caches keyed by the history length and hash at computation time;
	// the hash guards against undo-then-push reaching the same length
	// with a different position.
	movesPly   int
	movesHash  uint64
	movesCache []Move
	checkPly   int
	checkHash  uint64
	checkCache bool
}

// NewGame returns a game at the standard starting position.
func NewGame() *Game {
	g, err := GameFromFEN(StartingFEN)
	if err != nil {
		panic("board: starting position failed to parse: " + err.Error())
	}
	return g
}

func newEmptyGame() *Game {
	return &Game{
		epSquare: NoSquare,
		fullmove: 1,
		movesPly: -1,
		checkPly: -1,
	}
}

// Position returns the piece placement. Treat it as read-only; edits
// bypass the hash and history bookkeeping.
func (g *Game) Position() *Position { return &g.pos }

// Turn returns the side to move.
func (g *Game) Turn() Color { return g.turn }

// Rights returns the current castling rights.
func (g *Game) Rights() CastlingRights { return g.rights }

// EnPassantSquare returns the capture target left by the last double
// pawn push, or NoSquare.
func (g *Game) EnPassantSquare() Square { return g.epSquare }

// HalfmoveClock returns the half-moves since the last capture or pawn
// advance.
func (g *Game) HalfmoveClock() int { return g.halfmove }

// FullmoveNumber returns the full move counter, incremented after
// Black's move.
func (g *Game) FullmoveNumber() int { return g.fullmove }

// Hash returns the Zobrist hash of the current state.
func (g *Game) Hash() uint64 { return g.hash }

// Ply returns the number of half-moves played.
func (g *Game) Ply() int { return len(g.history) }

// MoveHistory returns the moves played so far, oldest first.
func (g *Game) MoveHistory() []Move {
	out := make([]Move, len(g.history))
	for i, rec := range g.history {
		out[i] = rec.move
	}
	return out
}

// LastMove returns the most recent move, or the null move for a fresh
// game.
func (g *Game) LastMove() Move {
	if len(g.history) == 0 {
		return NullMove
	}
	return g.history[len(g.history)-1].move
}

// MaterialScore sums piece values, White positive.
func (g *Game) MaterialScore() int { return g.pos.MaterialScore() }

// FindKing returns the king square for the given color and enforces the
// exactly-one rule: zero or multiple kings yield an InvalidBoardError.
func (g *Game) FindKing(color Color) (Square, error) {
	mask := g.pos.byKind[King] & g.pos.byColor[color]
	switch popcount(mask) {
	case 0:
		return NoSquare, &InvalidBoardError{Reason: "no " + color.String() + " king on the board"}
	case 1:
		return lsb(mask), nil
	default:
		return NoSquare, &InvalidBoardError{Reason: "multiple " + color.String() + " kings on the board"}
	}
}

// Clone returns an independent copy. The histories diverge from the
// clone point; records already written are never mutated, so sharing
// their placement slices is safe.
func (g *Game) Clone() *Game {
	cp := *g
	cp.history = make([]record, len(g.history))
	copy(cp.history, g.history)
	if g.movesCache != nil {
		cp.movesCache = append([]Move(nil), g.movesCache...)
	}
	return &cp
}

// InCheck reports whether the side to move is in check. The result is
// cached until the history changes.
func (g *Game) InCheck() bool {
	if g.checkPly == len(g.history) && g.checkHash == g.hash {
		return g.checkCache
	}
	g.checkCache = g.sideInCheck(g.turn)
	g.checkPly = len(g.history)
	g.checkHash = g.hash
	return g.checkCache
}

func (g *Game) sideInCheck(color Color) bool {
	king, ok := g.pos.King(color)
	if !ok {
		return false
	}
	return g.pos.IsAttackedBy(color.Opponent(), king)
}

// IsCheckmate reports whether the side to move is checkmated.
func (g *Game) IsCheckmate() bool {
	return g.InCheck() && len(g.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal moves but
// is not in check.
func (g *Game) IsStalemate() bool {
	return !g.InCheck() && len(g.LegalMoves()) == 0
}

// IsFiftyMoves reports a draw by the fifty-move rule (the halfmove
// clock counts half-moves, so the threshold is 100).
func (g *Game) IsFiftyMoves() bool { return g.halfmove >= 100 }

// IsThreefoldRepetition reports whether the current position has now
// occurred at least three times. Each record's prevHash is the hash
// before that move, so the hash timeline is those values plus the
// current hash.
func (g *Game) IsThreefoldRepetition() bool {
	seen := 1
	for _, rec := range g.history {
		if rec.prevHash == g.hash {
			seen++
			if seen >= 3 {
				return true
			}
		}
	}
	return false
}

// Outcome summarises a finished game.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// IsGameOver reports whether the game has ended by checkmate,
// stalemate, the fifty-move rule or threefold repetition.
func (g *Game) IsGameOver() bool { return g.Result() != Ongoing }

// Result classifies the current state.
func (g *Game) Result() Outcome {
	if g.IsCheckmate() {
		if g.turn == White {
			return BlackWins
		}
		return WhiteWins
	}
	if g.IsStalemate() || g.IsFiftyMoves() || g.IsThreefoldRepetition() {
		return Draw
	}
	return Ongoing
}

// Push validates the move against the legal set and applies it. On any
// error the game is unchanged.
func (g *Game) Push(m Move) error {
	if m.IsNull() {
		return invalidMovef("null move cannot be played")
	}
	if m.IsDrop() {
		return invalidMovef("drops are not legal under standard rules")
	}
	pc := g.pos.PieceAt(m.From)
	if pc.Kind == NoKind {
		return invalidMovef("no piece on %s", m.From)
	}
	if pc.Color != g.turn {
		return invalidMovef("it is not %s's turn", pc.Color)
	}

	legal := g.LegalMoves()
	found := false
	sameDest := false
	for _, cand := range legal {
		if cand.From != m.From || cand.To != m.To {
			continue
		}
		sameDest = true
		if cand.Promotion == m.Promotion {
			found = true
			break
		}
	}
	if !found {
		if sameDest {
			if m.Promotion == NoKind {
				return invalidMovef("%s requires a promotion piece", m.UCI())
			}
			return invalidMovef("%s is not a promotion move", m.UCI())
		}
		return invalidMovef("%s is not legal in this position", m.UCI())
	}

	g.apply(m)
	return nil
}

// apply performs a move that is already known to be legal (or, from the
// generator's make-unmake probe, pseudo-legal). It records a reversible
// edit log and updates the scalar state.
func (g *Game) apply(m Move) {
	mover := g.pos.PieceAt(m.From)
	rec := record{
		move:         m,
		prevRights:   g.rights,
		prevEP:       g.epSquare,
		prevHalfmove: g.halfmove,
		prevFullmove: g.fullmove,
		prevHash:     g.hash,
	}

	wasPromoted := g.pos.promoted&bb(m.From) != 0
	captured := g.pos.PieceAt(m.To)
	capturedPromoted := g.pos.promoted&bb(m.To) != 0

	isPawn := mover.Kind == Pawn
	epCapture := isPawn && m.To == g.epSquare && captured.Kind == NoKind && m.From.File() != m.To.File()

	// Removals: the mover leaves its origin, the captured piece (or the
	// en-passant victim behind the target) leaves the board.
	rec.removed = append(rec.removed, placement{sq: m.From, piece: mover, promoted: wasPromoted})
	g.pos.PopPieceAt(m.From)
	if captured.Kind != NoKind {
		rec.removed = append(rec.removed, placement{sq: m.To, piece: captured, promoted: capturedPromoted})
		g.pos.PopPieceAt(m.To)
	}
	if epCapture {
		victim := m.To - 8
		if mover.Color == Black {
			victim = m.To + 8
		}
		vp := g.pos.PieceAt(victim)
		rec.removed = append(rec.removed, placement{sq: victim, piece: vp})
		g.pos.PopPieceAt(victim)
		captured = vp
	}

	// Placement: the mover (or its promotion) arrives on the target.
	landing := mover
	landingPromoted := wasPromoted
	if m.Promotion != NoKind {
		landing = Piece{Kind: m.Promotion, Color: mover.Color}
		landingPromoted = true
	}
	rec.placed = append(rec.placed, placement{sq: m.To, piece: landing, promoted: landingPromoted})
	g.pos.setPieceAt(m.To, landing, landingPromoted)

	// Castling relocates the rook as part of the same edit.
	if mover.Kind == King && Distance(m.From, m.To) == 2 && m.From.Rank() == m.To.Rank() {
		rookFrom, rookTo := castleRookSquares(mover.Color, m.To)
		rook := g.pos.PieceAt(rookFrom)
		rec.removed = append(rec.removed, placement{sq: rookFrom, piece: rook})
		rec.placed = append(rec.placed, placement{sq: rookTo, piece: rook})
		g.pos.PopPieceAt(rookFrom)
		g.pos.SetPieceAt(rookTo, rook)
	}

	g.updateRights(mover, m)

	// En-passant target appears only after a double pawn push.
	g.epSquare = NoSquare
	if isPawn && Distance(m.From, m.To) == 2 && m.From.File() == m.To.File() {
		g.epSquare = (m.From + m.To) / 2
	}

	if isPawn || captured.Kind != NoKind {
		g.halfmove = 0
	} else {
		g.halfmove++
	}
	if g.turn == Black {
		g.fullmove++
	}
	g.turn = g.turn.Opponent()
	g.hash = g.computeZobrist()
	g.history = append(g.history, rec)
}

// castleRookSquares gives the rook's from/to squares for a castling
// king landing on kingTo.
func castleRookSquares(color Color, kingTo Square) (from, to Square) {
	switch {
	case color == White && kingTo == G1:
		return H1, F1
	case color == White && kingTo == C1:
		return A1, D1
	case color == Black && kingTo == G8:
		return H8, F8
	default:
		return A8, D8
	}
}

// updateRights revokes castling rights when a king or rook leaves its
// home square, or when a rook is captured on one.
func (g *Game) updateRights(mover Piece, m Move) {
	if mover.Kind == King {
		if mover.Color == White {
			g.rights.WhiteKing = false
			g.rights.WhiteQueen = false
		} else {
			g.rights.BlackKing = false
			g.rights.BlackQueen = false
		}
	}
	for _, sq := range [2]Square{m.From, m.To} {
		switch sq {
		case A1:
			g.rights.WhiteQueen = false
		case H1:
			g.rights.WhiteKing = false
		case A8:
			g.rights.BlackQueen = false
		case H8:
			g.rights.BlackKing = false
		}
	}
}

// Undo reverts the most recent move exactly. It returns an
// InvalidMoveError when the history is empty.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return invalidMovef("there are no moves to undo")
	}
	rec := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	for _, pl := range rec.placed {
		g.pos.PopPieceAt(pl.sq)
	}
	for _, pl := range rec.removed {
		g.pos.setPieceAt(pl.sq, pl.piece, pl.promoted)
	}
	g.rights = rec.prevRights
	g.epSquare = rec.prevEP
	g.halfmove = rec.prevHalfmove
	g.fullmove = rec.prevFullmove
	g.hash = rec.prevHash
	g.turn = g.turn.Opponent()
	return nil
}
