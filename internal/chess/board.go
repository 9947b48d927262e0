package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Board is an 8x8 grid indexed [rank][file]. It is a value type:
// assigning a Board copies every square, so boards are never shared.
type Board struct {
	Squares [BoardSize][BoardSize]Piece
}

// backRank is the piece order from the a-file to the h-file.
var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialBoard returns the standard starting position.
func InitialBoard() Board {
	var b Board
	for file := 0; file < BoardSize; file++ {
		b.Squares[Black.HomeRank()][file] = B(backRank[file])
		b.Squares[Black.PawnRank()][file] = B(Pawn)
		b.Squares[White.PawnRank()][file] = W(Pawn)
		b.Squares[White.HomeRank()][file] = W(backRank[file])
	}
	return b
}

// PieceAt returns the piece on a square, or ErrInvalidSquare if the
// square is off the board.
func (b *Board) PieceAt(sq Square) (Piece, error) {
	if !sq.Valid() {
		return NoPiece, fmt.Errorf("square %v: %w", sq, errors.ErrInvalidSquare)
	}
	return b.Squares[sq.Rank][sq.File], nil
}

// Get returns the piece on a square. Off-board squares read as empty.
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.Squares[sq.Rank][sq.File]
}

// Set places a piece on a square. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if sq.Valid() {
		b.Squares[sq.Rank][sq.File] = p
	}
}

// Move relocates whatever stands on from to to, leaving from empty.
func (b *Board) Move(from, to Square) {
	p := b.Get(from)
	b.Set(from, NoPiece)
	b.Set(to, p)
}

// FindKing returns the square of the given colour's king.
// The second result is false if there is no such king.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	king := Piece{Type: King, Colour: colour}
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if b.Squares[rank][file] == king {
				return Square{File: file, Rank: rank}, true
			}
		}
	}
	return Square{}, false
}

// Occupied returns the squares holding pieces of the given colour in
// scan order: rank 0 to 7, file a to h within each rank.
func (b *Board) Occupied(colour Colour) []Square {
	var squares []Square
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			p := b.Squares[rank][file]
			if !p.IsEmpty() && p.Colour == colour {
				squares = append(squares, Square{File: file, Rank: rank})
			}
		}
	}
	return squares
}

// Rotate returns the board turned through 180 degrees with every
// piece's colour swapped. A position and its rotation are the same
// position seen from the other side.
func (b Board) Rotate() Board {
	var r Board
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			p := b.Squares[rank][file]
			if !p.IsEmpty() {
				p.Colour = p.Colour.Opposite()
			}
			r.Squares[BoardSize-1-rank][BoardSize-1-file] = p
		}
	}
	return r
}

// RotateSquare maps a square to its image under Rotate.
func RotateSquare(sq Square) Square {
	return Square{File: BoardSize - 1 - sq.File, Rank: BoardSize - 1 - sq.Rank}
}
