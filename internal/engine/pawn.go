package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnMoves generates pushes and captures for a pawn. Diagonal moves
// need an opposing piece on the target or a matching en-passant target.
func pawnMoves(board *chess.Board, sq chess.Square, colour chess.Colour, ep *chess.Square) SquareSet {
	var moves SquareSet
	dir := colour.Forward()

	one := sq.Offset(0, dir)
	if one.Valid() && board.Get(one).IsEmpty() {
		moves.Add(one)
		// Double push from the starting rank
		two := sq.Offset(0, 2*dir)
		if sq.Rank == colour.PawnRank() && board.Get(two).IsEmpty() {
			moves.Add(two)
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := sq.Offset(df, dir)
		if !to.Valid() {
			continue
		}
		target := board.Get(to)
		if !target.IsEmpty() && target.Colour != colour {
			moves.Add(to)
		} else if ep != nil && to == *ep && epCapturableBy(*ep, colour) {
			moves.Add(to)
		}
	}
	return moves
}

// epCapturableBy reports whether a pawn of the given colour may capture
// onto the target. The target sits on the rank the opponent's pawn
// skipped, so a pawn never captures en passant behind its own side.
func epCapturableBy(ep chess.Square, colour chess.Colour) bool {
	opp := colour.Opposite()
	return ep.Rank == opp.PawnRank()+opp.Forward()
}

// isEnPassantCapture reports whether from-to is a pawn capturing onto
// the en-passant target.
func isEnPassantCapture(board *chess.Board, from, to chess.Square, ep *chess.Square) bool {
	if ep == nil || to != *ep || from.File == to.File {
		return false
	}
	pawn := board.Get(from)
	return pawn.Type == chess.Pawn && board.Get(to).IsEmpty() && epCapturableBy(*ep, pawn.Colour)
}

// capturedPawnSquare is the square behind the en-passant target: the
// destination file on the capturing pawn's starting rank.
func capturedPawnSquare(from, to chess.Square) chess.Square {
	return chess.Square{File: to.File, Rank: from.Rank}
}

// isDoublePush reports whether a pawn move advanced two ranks.
func isDoublePush(piece chess.Piece, from, to chess.Square) bool {
	return piece.Type == chess.Pawn && from.File == to.File && abs(to.Rank-from.Rank) == 2
}

// isPromotion reports whether a pawn move lands on the far rank.
func isPromotion(piece chess.Piece, to chess.Square) bool {
	return piece.Type == chess.Pawn && to.Rank == piece.Colour.PromotionRank()
}
