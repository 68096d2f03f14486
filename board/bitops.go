package board

import "math/bits"

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// lsb returns the lowest set square of the mask. The caller must ensure
// the mask is non-empty.
func lsb(mask uint64) Square {
	return Square(bits.TrailingZeros64(mask))
}

// msb returns the highest set square of the mask. The caller must ensure
// the mask is non-empty.
func msb(mask uint64) Square {
	return Square(63 - bits.LeadingZeros64(mask))
}

// popcount returns the number of set bits in the mask.
func popcount(mask uint64) int { return bits.OnesCount64(mask) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	x := *mask & -(*mask)
	idx := bits.TrailingZeros64(x)
	*mask &= *mask - 1
	return Square(idx)
}

// popMSB removes and returns the most significant set bit from the mask.
func popMSB(mask *uint64) Square {
	idx := 63 - bits.LeadingZeros64(*mask)
	*mask &^= 1 << uint(idx)
	return Square(idx)
}

// scanForward returns an iterator over the set squares of mask from low
// to high. The iterator works on a snapshot; mutating the source
// afterwards does not affect it.
func scanForward(mask uint64) func() (Square, bool) {
	m := mask
	return func() (Square, bool) {
		if m == 0 {
			return NoSquare, false
		}
		return popLSB(&m), true
	}
}

// scanReversed returns an iterator over the set squares of mask from
// high to low.
func scanReversed(mask uint64) func() (Square, bool) {
	m := mask
	return func() (Square, bool) {
		if m == 0 {
			return NoSquare, false
		}
		return popMSB(&m), true
	}
}
