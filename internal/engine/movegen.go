package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// PseudoMoves returns the geometrically valid destinations for the piece
// on sq, ignoring whether the move exposes the mover's own king. ep is
// the current en-passant target, or nil. Castling is not included.
func PseudoMoves(board chess.Board, sq chess.Square, ep *chess.Square) (SquareSet, error) {
	if !sq.Valid() {
		return 0, fmt.Errorf("square %v: %w", sq, errors.ErrInvalidSquare)
	}
	return generate(&board, sq, ep, false), nil
}

// LegalMoves returns the destinations the piece on sq may legally move
// to: its pseudo moves minus those leaving its own king in check, plus
// castling destinations for a king. The piece need not belong to the
// side to move, so either side's moves can be highlighted.
func LegalMoves(state GameState, sq chess.Square) (SquareSet, error) {
	piece, err := state.Board.PieceAt(sq)
	if err != nil {
		return 0, err
	}
	if piece.IsEmpty() {
		return 0, fmt.Errorf("square %v: %w", sq, errors.ErrNoPieceSelected)
	}
	moves := generate(&state.Board, sq, state.EnPassantTarget(), true)
	if piece.Type == chess.King {
		moves |= castleTargets(state, sq)
	}
	return moves, nil
}

// generate enumerates destinations for the piece on sq. With legalOnly
// false it is the raw geometric generator the check oracle relies on;
// setting it there would recurse through IsInCheck without end.
func generate(board *chess.Board, sq chess.Square, ep *chess.Square, legalOnly bool) SquareSet {
	piece := board.Get(sq)
	var moves SquareSet

	switch piece.Type {
	case chess.Pawn:
		moves = pawnMoves(board, sq, piece.Colour, ep)
	case chess.Knight:
		moves = stepMoves(board, sq, piece.Colour, knightOffsets)
	case chess.King:
		moves = stepMoves(board, sq, piece.Colour, kingOffsets)
	case chess.Bishop:
		moves = slidingMoves(board, sq, piece.Colour, diagonalDirs)
	case chess.Rook:
		moves = slidingMoves(board, sq, piece.Colour, straightDirs)
	case chess.Queen:
		moves = slidingMoves(board, sq, piece.Colour, allSlidingDirs)
	default:
		return 0
	}

	if !legalOnly {
		return moves
	}

	var legal SquareSet
	for _, to := range moves.Squares() {
		if tryMove(*board, sq, to, ep, piece.Colour) {
			legal.Add(to)
		}
	}
	return legal
}

// stepMoves handles knights and kings: fixed offsets, each validated
// against the board edge and same-colour occupancy.
func stepMoves(board *chess.Board, sq chess.Square, colour chess.Colour, offsets [][2]int) SquareSet {
	var moves SquareSet
	for _, off := range offsets {
		to := sq.Offset(off[0], off[1])
		if !to.Valid() {
			continue
		}
		target := board.Get(to)
		if target.IsEmpty() || target.Colour != colour {
			moves.Add(to)
		}
	}
	return moves
}

// slidingMoves walks each ray until the edge or the first occupied
// square, which is included only if it holds an opposing piece.
func slidingMoves(board *chess.Board, sq chess.Square, colour chess.Colour, dirs [][2]int) SquareSet {
	var moves SquareSet
	for _, dir := range dirs {
		for to := sq.Offset(dir[0], dir[1]); to.Valid(); to = to.Offset(dir[0], dir[1]) {
			target := board.Get(to)
			if !target.IsEmpty() {
				if target.Colour != colour {
					moves.Add(to)
				}
				break // Blocked
			}
			moves.Add(to)
		}
	}
	return moves
}

// tryMove plays from-to on a copy of the board and reports whether the
// mover's king is safe afterwards.
func tryMove(board chess.Board, from, to chess.Square, ep *chess.Square, colour chess.Colour) bool {
	if isEnPassantCapture(&board, from, to, ep) {
		board.Set(capturedPawnSquare(from, to), chess.NoPiece)
	}
	board.Move(from, to)
	return !IsInCheck(board, colour)
}
