package board

// Precomputed attack tables. Everything here is built once by init()
// and never mutated afterwards, so the tables are safe to read from any
// goroutine.
var (
	// Step tables: pawnAttacks[color][sq] gives the capture squares of
	// a pawn of that color standing on sq.
	pawnAttacks   [2][64]uint64
	knightAttacks [64]uint64
	kingAttacks   [64]uint64

	// Sliding tables keyed by masked occupancy. relevantX[sq] masks the
	// occupancy bits that matter for the family (board edges excluded);
	// attackX[sq][occ & relevantX[sq]] yields the attack set.
	relevantDiag [64]uint64
	relevantFile [64]uint64
	relevantRank [64]uint64
	attackDiag   [64]map[uint64]uint64
	attackFile   [64]map[uint64]uint64
	attackRank   [64]map[uint64]uint64

	// rayTable[a][b] is the full shared ray through a and b, or 0 when
	// the squares are not aligned. betweenTable[a][b] holds the squares
	// strictly between aligned a and b.
	rayTable     [64][64]uint64
	betweenTable [64][64]uint64
)

var (
	diagDeltas = []int{-9, -7, 7, 9}
	fileDeltas = []int{-8, 8}
	rankDeltas = []int{-1, 1}
)

func init() {
	initStepTables()
	initSliderTables()
	initRayTables()
}

// slidingAttacks walks each delta from the square until it leaves the
// board or hits an occupied square. The occupied square itself is
// included. The distance guard stops deltas that would wrap across a
// board edge.
func slidingAttacks(sq Square, occupied uint64, deltas []int) uint64 {
	var attacks uint64
	for _, delta := range deltas {
		cur := int(sq)
		for {
			next := cur + delta
			if next < 0 || next >= 64 || Distance(Square(next), Square(cur)) > 2 {
				break
			}
			attacks |= bb(Square(next))
			if occupied&bb(Square(next)) != 0 {
				break
			}
			cur = next
		}
	}
	return attacks
}

// stepAttacks is slidingAttacks limited to one step in each delta.
func stepAttacks(sq Square, deltas []int) uint64 {
	return slidingAttacks(sq, FullBoard, deltas)
}

func initStepTables() {
	for sq := A1; sq <= H8; sq++ {
		pawnAttacks[White][sq] = stepAttacks(sq, []int{7, 9})
		pawnAttacks[Black][sq] = stepAttacks(sq, []int{-7, -9})
		knightAttacks[sq] = stepAttacks(sq, []int{17, 15, 10, 6, -17, -15, -10, -6})
		kingAttacks[sq] = stepAttacks(sq, []int{9, 8, 7, 1, -9, -8, -7, -1})
	}
}

// edges returns the board-edge squares that are not on the given
// square's own rank or file. A blocker on such an edge cannot change
// the attack set, so edges are excluded from the relevant masks.
func edges(sq Square) uint64 {
	return ((maskRank[0] | maskRank[7]) &^ maskRank[sq.Rank()]) |
		((maskFile[0] | maskFile[7]) &^ maskFile[sq.File()])
}

// carryRippler calls fn for every subset of mask, including the empty
// set, using subset = (subset - mask) & mask to ripple through them.
func carryRippler(mask uint64, fn func(subset uint64)) {
	subset := uint64(0)
	for {
		fn(subset)
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}
}

// attackTable builds one sliding family: for each square, the relevant
// occupancy mask and a map from every subset of it to the attack set
// under that occupancy.
func attackTable(deltas []int) ([64]uint64, [64]map[uint64]uint64) {
	var masks [64]uint64
	var attacks [64]map[uint64]uint64
	for sq := A1; sq <= H8; sq++ {
		mask := slidingAttacks(sq, EmptyBoard, deltas) &^ edges(sq)
		table := make(map[uint64]uint64, 1<<uint(popcount(mask)))
		carryRippler(mask, func(subset uint64) {
			table[subset] = slidingAttacks(sq, subset, deltas)
		})
		masks[sq] = mask
		attacks[sq] = table
	}
	return masks, attacks
}

func initSliderTables() {
	relevantDiag, attackDiag = attackTable(diagDeltas)
	relevantFile, attackFile = attackTable(fileDeltas)
	relevantRank, attackRank = attackTable(rankDeltas)
}

func initRayTables() {
	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			bbB := bb(b)
			switch {
			case attackDiag[a][0]&bbB != 0:
				rayTable[a][b] = (attackDiag[a][0] & attackDiag[b][0]) | bb(a) | bbB
				betweenTable[a][b] = attackDiag[a][relevantDiag[a]&bbB] & attackDiag[b][relevantDiag[b]&bb(a)]
			case attackRank[a][0]&bbB != 0:
				rayTable[a][b] = attackRank[a][0] | bb(a)
				betweenTable[a][b] = attackRank[a][relevantRank[a]&bbB] & attackRank[b][relevantRank[b]&bb(a)]
			case attackFile[a][0]&bbB != 0:
				rayTable[a][b] = attackFile[a][0] | bb(a)
				betweenTable[a][b] = attackFile[a][relevantFile[a]&bbB] & attackFile[b][relevantFile[b]&bb(a)]
			}
		}
	}
}

// PawnCaptures returns the squares a pawn of the given color attacks
// from sq.
func PawnCaptures(color Color, sq Square) uint64 { return pawnAttacks[color][sq] }

// KnightMoves returns the knight attack set from sq.
func KnightMoves(sq Square) uint64 { return knightAttacks[sq] }

// KingMoves returns the king attack set from sq.
func KingMoves(sq Square) uint64 { return kingAttacks[sq] }

// BishopMoves returns the bishop attack set from sq under the given
// occupancy. Blockers are included in the result.
func BishopMoves(sq Square, occupied uint64) uint64 {
	return attackDiag[sq][relevantDiag[sq]&occupied]
}

// RookMoves returns the rook attack set from sq under the given
// occupancy.
func RookMoves(sq Square, occupied uint64) uint64 {
	return attackRank[sq][relevantRank[sq]&occupied] |
		attackFile[sq][relevantFile[sq]&occupied]
}

// QueenMoves returns the queen attack set from sq under the given
// occupancy.
func QueenMoves(sq Square, occupied uint64) uint64 {
	return BishopMoves(sq, occupied) | RookMoves(sq, occupied)
}

// Ray returns the full shared ray through a and b (both endpoints
// included), or 0 when the squares are not aligned.
func Ray(a, b Square) uint64 { return rayTable[a][b] }

// Between returns the squares strictly between a and b, or 0 when the
// squares are not aligned or adjacent.
func Between(a, b Square) uint64 { return betweenTable[a][b] }
