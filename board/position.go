package board

// Position holds piece placement only: one mask per piece kind, one per
// color, the overall occupancy, and the set of promoted pieces. Turn
// order, castling rights and history live on Game.
//
// Invariants: the per-kind masks are pairwise disjoint and their union
// equals occupied; the color masks are disjoint and their union equals
// occupied.
type Position struct {
	byKind   [7]uint64 // indexed by PieceKind, slot 0 unused
	byColor  [2]uint64
	occupied uint64
	promoted uint64
}

// KindMask returns the mask of all pieces of the given kind, both colors.
func (p *Position) KindMask(kind PieceKind) uint64 { return p.byKind[kind] }

// ColorMask returns the occupancy of one side.
func (p *Position) ColorMask(color Color) uint64 { return p.byColor[color] }

// Occupied returns the overall occupancy.
func (p *Position) Occupied() uint64 { return p.occupied }

// PromotedMask returns the squares holding promoted pieces.
func (p *Position) PromotedMask() uint64 { return p.promoted }

// PieceKindAt returns the kind of the piece on sq, or NoKind.
func (p *Position) PieceKindAt(sq Square) PieceKind {
	mask := bb(sq)
	if p.occupied&mask == 0 {
		return NoKind
	}
	for kind := Pawn; kind <= King; kind++ {
		if p.byKind[kind]&mask != 0 {
			return kind
		}
	}
	return NoKind
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	kind := p.PieceKindAt(sq)
	if kind == NoKind {
		return NoPiece
	}
	color := White
	if p.byColor[Black]&bb(sq) != 0 {
		color = Black
	}
	return Piece{Kind: kind, Color: color}
}

// ColorAt returns the owner of the piece on sq. The second result is
// false for an empty square.
func (p *Position) ColorAt(sq Square) (Color, bool) {
	mask := bb(sq)
	switch {
	case p.byColor[White]&mask != 0:
		return White, true
	case p.byColor[Black]&mask != 0:
		return Black, true
	default:
		return White, false
	}
}

// SetPieceAt places a piece on sq, removing any occupant first.
func (p *Position) SetPieceAt(sq Square, pc Piece) {
	p.setPieceAt(sq, pc, false)
}

func (p *Position) setPieceAt(sq Square, pc Piece, promoted bool) {
	p.PopPieceAt(sq)
	if pc.Kind == NoKind {
		return
	}
	mask := bb(sq)
	p.byKind[pc.Kind] |= mask
	p.byColor[pc.Color] |= mask
	p.occupied |= mask
	if promoted {
		p.promoted |= mask
	}
}

// PopPieceAt removes and returns the piece on sq, or NoPiece.
func (p *Position) PopPieceAt(sq Square) Piece {
	pc := p.PieceAt(sq)
	if pc.Kind == NoKind {
		return NoPiece
	}
	mask := ^bb(sq)
	p.byKind[pc.Kind] &= mask
	p.byColor[pc.Color] &= mask
	p.occupied &= mask
	p.promoted &= mask
	return pc
}

// ClearMask removes every piece on the masked squares.
func (p *Position) ClearMask(mask uint64) {
	m := mask
	for m != 0 {
		p.PopPieceAt(popLSB(&m))
	}
}

// Clear removes every piece from the board.
func (p *Position) Clear() { *p = Position{} }

// King returns the king square of the given color, skipping promoted
// kings. With multiple kings the highest square wins; callers that need
// the strict exactly-one rule use Game.FindKing. The second result is
// false when the side has no king.
func (p *Position) King(color Color) (Square, bool) {
	mask := p.byKind[King] & p.byColor[color] &^ p.promoted
	if mask == 0 {
		return NoSquare, false
	}
	return msb(mask), true
}

// AttacksMask returns the squares attacked by the piece on sq under the
// current occupancy, empty for an empty square. Pinned pieces still
// attack.
func (p *Position) AttacksMask(sq Square) uint64 {
	mask := bb(sq)
	switch {
	case p.byKind[Pawn]&mask != 0:
		if p.byColor[Black]&mask != 0 {
			return pawnAttacks[Black][sq]
		}
		return pawnAttacks[White][sq]
	case p.byKind[Knight]&mask != 0:
		return knightAttacks[sq]
	case p.byKind[King]&mask != 0:
		return kingAttacks[sq]
	case p.byKind[Bishop]&mask != 0:
		return BishopMoves(sq, p.occupied)
	case p.byKind[Rook]&mask != 0:
		return RookMoves(sq, p.occupied)
	case p.byKind[Queen]&mask != 0:
		return QueenMoves(sq, p.occupied)
	default:
		return 0
	}
}

// straightSliders returns rooks and queens of both colors.
func (p *Position) straightSliders() uint64 {
	return p.byKind[Rook] | p.byKind[Queen]
}

// diagonalSliders returns bishops and queens of both colors.
func (p *Position) diagonalSliders() uint64 {
	return p.byKind[Bishop] | p.byKind[Queen]
}

// attackersMask finds the pieces of the given color that attack sq
// under the supplied occupancy. Looking up each attack family from the
// target square and intersecting with the matching piece masks gives
// the inbound attackers without scanning the board.
func (p *Position) attackersMask(color Color, sq Square, occupied uint64) uint64 {
	rankPieces := relevantRank[sq] & occupied
	filePieces := relevantFile[sq] & occupied
	diagPieces := relevantDiag[sq] & occupied

	attackers := (kingAttacks[sq] & p.byKind[King]) |
		(knightAttacks[sq] & p.byKind[Knight]) |
		(attackRank[sq][rankPieces] & p.straightSliders()) |
		(attackFile[sq][filePieces] & p.straightSliders()) |
		(attackDiag[sq][diagPieces] & p.diagonalSliders()) |
		(pawnAttacks[color.Opponent()][sq] & p.byKind[Pawn])

	return attackers & p.byColor[color]
}

// AttackersMask returns the pieces of the given color attacking sq.
// Pinned pieces are included.
func (p *Position) AttackersMask(color Color, sq Square) uint64 {
	return p.attackersMask(color, sq, p.occupied)
}

// IsAttackedBy reports whether the given side attacks sq.
func (p *Position) IsAttackedBy(color Color, sq Square) bool {
	return p.AttackersMask(color, sq) != 0
}

// PinMask returns the ray a piece of the given color on sq is pinned to
// against its own king, endpoints included, or FullBoard when the piece
// is not pinned or the side has no king. The ray families are tried in
// file, rank, diagonal order; a square shares at most one family with
// the king, so at most one can match.
func (p *Position) PinMask(color Color, sq Square) uint64 {
	king, ok := p.King(color)
	if !ok {
		return FullBoard
	}

	families := []struct {
		attacks *[64]map[uint64]uint64
		sliders uint64
	}{
		{&attackFile, p.straightSliders()},
		{&attackRank, p.straightSliders()},
		{&attackDiag, p.diagonalSliders()},
	}
	for _, fam := range families {
		rays := fam.attacks[king][0]
		if rays&bb(sq) == 0 {
			continue
		}
		snipers := rays & fam.sliders & p.byColor[color.Opponent()]
		for snipers != 0 {
			sniper := popMSB(&snipers)
			if betweenTable[sniper][king]&(p.occupied|bb(sq)) == bb(sq) {
				return rayTable[king][sniper]
			}
		}
		break
	}
	return FullBoard
}

// IsPinned reports whether the piece on sq is pinned against its own
// king.
func (p *Position) IsPinned(color Color, sq Square) bool {
	return p.PinMask(color, sq) != FullBoard
}

// MaterialScore sums piece values, White positive.
func (p *Position) MaterialScore() int {
	score := 0
	for kind := Pawn; kind <= King; kind++ {
		v := kind.Value()
		score += v * popcount(p.byKind[kind]&p.byColor[White])
		score -= v * popcount(p.byKind[kind]&p.byColor[Black])
	}
	return score
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() Position { return *p }

// Validate checks the placement invariants: per-kind masks disjoint and
// summing to occupied, color masks disjoint and summing to occupied.
func (p *Position) Validate() bool {
	var union uint64
	for kind := Pawn; kind <= King; kind++ {
		if union&p.byKind[kind] != 0 {
			return false
		}
		union |= p.byKind[kind]
	}
	if union != p.occupied {
		return false
	}
	if p.byColor[White]&p.byColor[Black] != 0 {
		return false
	}
	if p.byColor[White]|p.byColor[Black] != p.occupied {
		return false
	}
	return p.promoted&^p.occupied == 0
}
