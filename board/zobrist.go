package board

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [2][7][64]uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are reproducible across runs and in tests.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for c := 0; c < 2; c++ {
		for k := 0; k < 7; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rnd.Uint64()
			}
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// computeZobrist calculates the hash for the game's full state: piece
// placement, side to move, castling rights and en passant file.
func (g *Game) computeZobrist() uint64 {
	var key uint64
	for m := g.pos.occupied; m != 0; {
		sq := popLSB(&m)
		pc := g.pos.PieceAt(sq)
		key ^= zobristPiece[pc.Color][pc.Kind][sq]
	}
	if g.turn == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[g.rights.bits()]
	if g.epSquare != NoSquare {
		key ^= zobristEnPassant[g.epSquare.File()]
	}
	return key
}
