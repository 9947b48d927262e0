package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(state GameState) bool {
	for _, sq := range state.Board.Occupied(state.ToMove) {
		moves, err := LegalMoves(state, sq)
		if err == nil && !moves.IsEmpty() {
			return true
		}
	}
	return false
}

// AllLegalMoves returns every legal move for the side to move, keyed by
// origin square. Pieces without moves are omitted.
func AllLegalMoves(state GameState) map[chess.Square]SquareSet {
	all := make(map[chess.Square]SquareSet)
	for _, sq := range state.Board.Occupied(state.ToMove) {
		moves, err := LegalMoves(state, sq)
		if err == nil && !moves.IsEmpty() {
			all[sq] = moves
		}
	}
	return all
}

// Classify computes the status of the position for the side to move.
func Classify(state GameState) Status {
	inCheck := IsInCheck(state.Board, state.ToMove)
	hasMoves := HasLegalMoves(state)
	switch {
	case inCheck && !hasMoves:
		return Checkmate
	case !hasMoves:
		return Stalemate
	case inCheck:
		return Check
	default:
		return Active
	}
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(state GameState) bool {
	return IsInCheck(state.Board, state.ToMove) && !HasLegalMoves(state)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(state GameState) bool {
	return !IsInCheck(state.Board, state.ToMove) && !HasLegalMoves(state)
}
