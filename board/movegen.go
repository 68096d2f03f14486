package board

import "sort"

var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// LegalMoves returns every legal move for the side to move. The slice
// is cached until the game state changes; callers must not mutate it.
func (g *Game) LegalMoves() []Move {
	if g.movesPly == len(g.history) && g.movesHash == g.hash && g.movesCache != nil {
		return g.movesCache
	}
	g.movesCache = g.generateLegal(make([]Move, 0, 64))
	g.movesPly = len(g.history)
	g.movesHash = g.hash
	return g.movesCache
}

// generateLegal filters the pseudo-legal set by playing each candidate
// and rejecting those that leave the mover's king attacked. Castling
// transit safety is already enforced during generation, so the probe
// only needs the king-safety test.
func (g *Game) generateLegal(buf []Move) []Move {
	pseudo := g.pseudoMoves(buf[:0])
	legal := pseudo[:0]
	mover := g.turn
	for _, m := range pseudo {
		g.apply(m)
		safe := !g.sideInCheck(mover)
		if err := g.Undo(); err != nil {
			panic("board: undo failed during generation: " + err.Error())
		}
		if safe {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllowedMoves maps each origin square with at least one legal move to
// its destination squares, ascending. Promotion fan-out collapses to a
// single destination entry.
func (g *Game) AllowedMoves() map[Square][]Square {
	out := make(map[Square][]Square)
	for _, m := range g.LegalMoves() {
		dests := out[m.From]
		if n := len(dests); n > 0 && dests[n-1] == m.To {
			continue
		}
		out[m.From] = append(dests, m.To)
	}
	for from := range out {
		sort.Slice(out[from], func(i, j int) bool { return out[from][i] < out[from][j] })
	}
	return out
}

// pseudoMoves appends every pseudo-legal move for the side to move:
// piece movement rules and castling transit are honored, king safety is
// not yet.
func (g *Game) pseudoMoves(moves []Move) []Move {
	us := g.turn
	own := g.pos.byColor[us]
	occupied := g.pos.occupied

	moves = g.pawnMoves(moves)

	for m := g.pos.byKind[Knight] & own; m != 0; {
		from := popLSB(&m)
		moves = appendTargets(moves, from, knightAttacks[from]&^own)
	}
	for m := g.pos.byKind[Bishop] & own; m != 0; {
		from := popLSB(&m)
		moves = appendTargets(moves, from, BishopMoves(from, occupied)&^own)
	}
	for m := g.pos.byKind[Rook] & own; m != 0; {
		from := popLSB(&m)
		moves = appendTargets(moves, from, RookMoves(from, occupied)&^own)
	}
	for m := g.pos.byKind[Queen] & own; m != 0; {
		from := popLSB(&m)
		moves = appendTargets(moves, from, QueenMoves(from, occupied)&^own)
	}
	for m := g.pos.byKind[King] & own; m != 0; {
		from := popLSB(&m)
		moves = appendTargets(moves, from, kingAttacks[from]&^own)
	}

	return g.castleMoves(moves)
}

func appendTargets(moves []Move, from Square, targets uint64) []Move {
	for targets != 0 {
		moves = append(moves, Move{From: from, To: popLSB(&targets)})
	}
	return moves
}

// pawnMoves appends pushes, double pushes, captures and en-passant
// captures, fanning promotions out over queen, rook, bishop and knight.
func (g *Game) pawnMoves(moves []Move) []Move {
	us := g.turn
	pawns := g.pos.byKind[Pawn] & g.pos.byColor[us]
	enemy := g.pos.byColor[us.Opponent()]
	occupied := g.pos.occupied

	forward := Square(8)
	startRank, promoRank := 1, 7
	if us == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	captureTargets := enemy
	if g.epSquare != NoSquare {
		captureTargets |= bb(g.epSquare)
	}

	for m := pawns; m != 0; {
		from := popLSB(&m)

		one := from + forward
		if one.Valid() && occupied&bb(one) == 0 {
			moves = appendPawnMove(moves, from, one, promoRank)
			if from.Rank() == startRank {
				two := one + forward
				if occupied&bb(two) == 0 {
					moves = append(moves, Move{From: from, To: two})
				}
			}
		}
		for caps := pawnAttacks[us][from] & captureTargets; caps != 0; {
			moves = appendPawnMove(moves, from, popLSB(&caps), promoRank)
		}
	}
	return moves
}

func appendPawnMove(moves []Move, from, to Square, promoRank int) []Move {
	if to.Rank() != promoRank {
		return append(moves, Move{From: from, To: to})
	}
	for _, kind := range promotionKinds {
		moves = append(moves, Move{From: from, To: to, Promotion: kind})
	}
	return moves
}

// castleMoves appends castling when the right is held, the rook stands
// on its home square, the squares between king and rook are empty, and
// no square on the king's path (origin included) is attacked.
func (g *Game) castleMoves(moves []Move) []Move {
	us := g.turn
	them := us.Opponent()
	occupied := g.pos.occupied
	ownRooks := g.pos.byKind[Rook] & g.pos.byColor[us]
	ownKings := g.pos.byKind[King] & g.pos.byColor[us]

	type side struct {
		allowed   bool
		kingFrom  Square
		kingTo    Square
		rookHome  Square
		emptyMask uint64
		kingPath  [3]Square
	}
	var sides [2]side
	if us == White {
		sides[0] = side{g.rights.WhiteKing, E1, G1, H1, bb(F1) | bb(G1), [3]Square{E1, F1, G1}}
		sides[1] = side{g.rights.WhiteQueen, E1, C1, A1, bb(B1) | bb(C1) | bb(D1), [3]Square{E1, D1, C1}}
	} else {
		sides[0] = side{g.rights.BlackKing, E8, G8, H8, bb(F8) | bb(G8), [3]Square{E8, F8, G8}}
		sides[1] = side{g.rights.BlackQueen, E8, C8, A8, bb(B8) | bb(C8) | bb(D8), [3]Square{E8, D8, C8}}
	}

	for _, s := range sides {
		if !s.allowed {
			continue
		}
		if ownKings&bb(s.kingFrom) == 0 || ownRooks&bb(s.rookHome) == 0 {
			continue
		}
		if occupied&s.emptyMask != 0 {
			continue
		}
		safe := true
		for _, sq := range s.kingPath {
			if g.pos.IsAttackedBy(them, sq) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Move{From: s.kingFrom, To: s.kingTo})
		}
	}
	return moves
}

// TargetSquares returns the pseudo destination squares of the piece on
// sq. With includeDefended, own-occupied targets stay in the set, which
// is what attack and defense counting wants; pawn pushes are excluded
// in that mode since a pawn never captures forward.
func (g *Game) TargetSquares(sq Square, includeDefended bool) uint64 {
	pc := g.pos.PieceAt(sq)
	if pc.Kind == NoKind {
		return 0
	}
	attacks := g.pos.AttacksMask(sq)
	if includeDefended {
		return attacks
	}
	targets := attacks &^ g.pos.byColor[pc.Color]
	if pc.Kind == Pawn {
		targets &= g.pos.byColor[pc.Color.Opponent()]
		if g.epSquare != NoSquare {
			targets |= attacks & bb(g.epSquare)
		}
		forward := Square(8)
		startRank := 1
		if pc.Color == Black {
			forward = -8
			startRank = 6
		}
		one := sq + forward
		if one.Valid() && g.pos.occupied&bb(one) == 0 {
			targets |= bb(one)
			if sq.Rank() == startRank {
				two := one + forward
				if g.pos.occupied&bb(two) == 0 {
					targets |= bb(two)
				}
			}
		}
	}
	return targets
}

// Perft counts the leaf nodes of the legal move tree to the given
// depth. Depth zero is one node.
func (g *Game) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := g.generateLegal(make([]Move, 0, 64))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		g.apply(m)
		nodes += g.Perft(depth - 1)
		if err := g.Undo(); err != nil {
			panic("board: undo failed during perft: " + err.Error())
		}
	}
	return nodes
}

// PerftDivide returns the node count below each root move, keyed by the
// move's UCI text.
func (g *Game) PerftDivide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range g.generateLegal(make([]Move, 0, 64)) {
		g.apply(m)
		out[m.UCI()] = g.Perft(depth - 1)
		if err := g.Undo(); err != nil {
			panic("board: undo failed during perft: " + err.Error())
		}
	}
	return out
}
