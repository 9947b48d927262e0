package engine

import (
	"math/bits"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// SquareSet is a set of board squares, one bit per square index.
type SquareSet uint64

// NewSquareSet returns a set holding the given valid squares.
func NewSquareSet(squares ...chess.Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s.Add(sq)
	}
	return s
}

// Add inserts a square. Off-board squares are ignored.
func (s *SquareSet) Add(sq chess.Square) {
	if sq.Valid() {
		*s |= 1 << uint(sq.Index())
	}
}

// Has returns true if the square is in the set.
func (s SquareSet) Has(sq chess.Square) bool {
	return sq.Valid() && s&(1<<uint(sq.Index())) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty returns true if the set has no squares.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// Squares returns the members in index order (rank 0 first, a-file first).
func (s SquareSet) Squares() []chess.Square {
	squares := make([]chess.Square, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		squares = append(squares, chess.SquareFromIndex(bits.TrailingZeros64(rest)))
	}
	return squares
}

// String lists the members in algebraic form, e.g. "e3 e4".
func (s SquareSet) String() string {
	var names []string
	for _, sq := range s.Squares() {
		names = append(names, sq.String())
	}
	return strings.Join(names, " ")
}
