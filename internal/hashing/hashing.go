// Package hashing provides position hashing and repetition counting.
package hashing

import (
	"github.com/cespare/xxhash/v2"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Signature identifies a position: everything that decides which moves
// are legal, and nothing else.
type Signature struct {
	// Hash is the xxhash of the encoded position
	Hash uint64
	// WeakHash is a fast piece-square sum used as a second check
	WeakHash uint64
}

// positionBytes is the encoded size: one byte per square, then side to
// move, castling rights and en-passant target.
const positionBytes = chess.BoardSize*chess.BoardSize + 3

// PositionHash returns a 64-bit hash of the position in state. Two
// states that differ only in Status hash equal.
func PositionHash(state engine.GameState) uint64 {
	var buf [positionBytes]byte
	i := 0
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			buf[i] = pieceCode(state.Board.Get(chess.Sq(file, rank)))
			i++
		}
	}
	buf[i] = byte(state.ToMove)
	buf[i+1] = castlingBits(state.Castling)
	// 0xff marks no en-passant target; square indexes stop at 63
	buf[i+2] = 0xff
	if state.EnPassant {
		buf[i+2] = byte(state.EPSquare.Index())
	}
	return xxhash.Sum64(buf[:])
}

// WeakHash returns a cheap hash of the piece placement alone.
func WeakHash(board chess.Board) uint64 {
	var hash uint64
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			code := uint64(pieceCode(board.Get(chess.Sq(file, rank))))
			if code == 0 {
				continue
			}
			sq := uint64(rank*chess.BoardSize + file + 1)
			hash += code * sq * 0x9e3779b97f4a7c15
		}
	}
	return hash
}

// SignatureOf returns the signature of the position in state.
func SignatureOf(state engine.GameState) Signature {
	return Signature{Hash: PositionHash(state), WeakHash: WeakHash(state.Board)}
}

// pieceCode packs a piece into a byte; 0 is an empty square.
func pieceCode(p chess.Piece) byte {
	if p.IsEmpty() {
		return 0
	}
	return byte(p.Type)<<1 | byte(p.Colour)
}

func castlingBits(r chess.CastlingRights) byte {
	var bits byte
	if r.WhiteKingside {
		bits |= 1
	}
	if r.WhiteQueenside {
		bits |= 2
	}
	if r.BlackKingside {
		bits |= 4
	}
	if r.BlackQueenside {
		bits |= 8
	}
	return bits
}

// RepetitionTable counts how often each position has been seen.
type RepetitionTable struct {
	// counts maps a signature to its number of occurrences
	counts map[Signature]int
	// duplicateCount tracks additions of an already seen position
	duplicateCount int
	// maxCapacity limits distinct positions (0 = unlimited)
	maxCapacity int
}

// NewRepetitionTable creates an empty table.
// maxCapacity of 0 means unlimited capacity.
func NewRepetitionTable(maxCapacity int) *RepetitionTable {
	return &RepetitionTable{
		counts:      make(map[Signature]int),
		maxCapacity: maxCapacity,
	}
}

// Add records one occurrence of the position and returns how many
// times it has now been seen. A new position is not stored once the
// table is full; Add then returns 0.
func (t *RepetitionTable) Add(state engine.GameState) int {
	sig := SignatureOf(state)
	n, ok := t.counts[sig]
	if ok {
		t.duplicateCount++
	} else if t.IsFull() {
		return 0
	}
	t.counts[sig] = n + 1
	return n + 1
}

// Remove drops one occurrence of the position, as when a move is undone.
func (t *RepetitionTable) Remove(state engine.GameState) {
	sig := SignatureOf(state)
	n, ok := t.counts[sig]
	if !ok {
		return
	}
	if n <= 1 {
		delete(t.counts, sig)
		return
	}
	t.counts[sig] = n - 1
	t.duplicateCount--
}

// Count returns how many times the position has been seen.
func (t *RepetitionTable) Count(state engine.GameState) int {
	return t.counts[SignatureOf(state)]
}

// DuplicateCount returns the number of additions that repeated a position.
func (t *RepetitionTable) DuplicateCount() int {
	return t.duplicateCount
}

// UniqueCount returns the number of distinct positions.
func (t *RepetitionTable) UniqueCount() int {
	return len(t.counts)
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (t *RepetitionTable) IsFull() bool {
	if t.maxCapacity <= 0 {
		return false
	}
	return len(t.counts) >= t.maxCapacity
}

// Reset clears the table.
func (t *RepetitionTable) Reset() {
	t.counts = make(map[Signature]int)
	t.duplicateCount = 0
}
