package board

import "strings"

// SquareSet is a set of squares over a raw 64-bit mask. The zero value
// is the empty set. Methods return new sets; a SquareSet is a value.
type SquareSet uint64

// NewSquareSet builds a set from individual squares.
func NewSquareSet(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s |= SquareSet(bb(sq))
	}
	return s
}

// Mask returns the raw bitboard.
func (s SquareSet) Mask() uint64 { return uint64(s) }

// Union returns the squares in either set.
func (s SquareSet) Union(other SquareSet) SquareSet { return s | other }

// Intersect returns the squares in both sets.
func (s SquareSet) Intersect(other SquareSet) SquareSet { return s & other }

// Diff returns the squares in s but not in other.
func (s SquareSet) Diff(other SquareSet) SquareSet { return s &^ other }

// SymmetricDiff returns the squares in exactly one of the sets.
func (s SquareSet) SymmetricDiff(other SquareSet) SquareSet { return s ^ other }

// Contains reports whether sq is in the set.
func (s SquareSet) Contains(sq Square) bool { return uint64(s)&bb(sq) != 0 }

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet { return s | SquareSet(bb(sq)) }

// Remove returns the set with sq excluded.
func (s SquareSet) Remove(sq Square) SquareSet { return s &^ SquareSet(bb(sq)) }

// Len returns the number of squares in the set.
func (s SquareSet) Len() int { return popcount(uint64(s)) }

// Empty reports whether the set has no squares.
func (s SquareSet) Empty() bool { return s == 0 }

// Pop removes and returns the highest square of the set. The second
// result is false when the set is empty.
func (s *SquareSet) Pop() (Square, bool) {
	if *s == 0 {
		return NoSquare, false
	}
	m := uint64(*s)
	sq := popMSB(&m)
	*s = SquareSet(m)
	return sq, true
}

// Squares returns the members from lowest to highest.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	m := uint64(s)
	for m != 0 {
		out = append(out, popLSB(&m))
	}
	return out
}

// String renders the set as an 8x8 diagram with rank 8 on top, "1" for
// members and "." for the rest.
func (s SquareSet) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if s.Contains(SquareAt(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		if rank > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
