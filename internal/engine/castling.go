package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// kingHomeFile is the file both kings start on.
const kingHomeFile = 4

// CanCastle reports whether the king on kingSq may castle with the rook
// on rookSq. The rights flag must still be set, the squares between
// them empty, the king not in check, and neither the square the king
// crosses nor the one it lands on attacked.
func CanCastle(state GameState, kingSq, rookSq chess.Square) bool {
	king := state.Board.Get(kingSq)
	rook := state.Board.Get(rookSq)
	if king.Type != chess.King || rook.Type != chess.Rook || king.Colour != rook.Colour {
		return false
	}
	colour := king.Colour
	home := colour.HomeRank()
	if kingSq != chess.Sq(kingHomeFile, home) || rookSq.Rank != home {
		return false
	}
	if rookSq.File != 0 && rookSq.File != chess.BoardSize-1 {
		return false
	}

	kingside := rookSq.File > kingSq.File
	if !state.Castling.Has(colour, kingside) {
		return false
	}

	dir := sign(rookSq.File - kingSq.File)
	for f := kingSq.File + dir; f != rookSq.File; f += dir {
		if !state.Board.Get(chess.Sq(f, home)).IsEmpty() {
			return false
		}
	}

	if IsInCheck(state.Board, colour) {
		return false
	}
	opp := colour.Opposite()
	for step := 1; step <= 2; step++ {
		if SquareAttacked(state.Board, kingSq.Offset(step*dir, 0), opp) {
			return false
		}
	}
	return true
}

// castleTargets returns the castling destinations of the king on kingSq.
func castleTargets(state GameState, kingSq chess.Square) SquareSet {
	var targets SquareSet
	home := kingSq.Rank
	for _, rookFile := range [2]int{0, chess.BoardSize - 1} {
		if CanCastle(state, kingSq, chess.Sq(rookFile, home)) {
			targets.Add(kingSq.Offset(2*sign(rookFile-kingSq.File), 0))
		}
	}
	return targets
}

// isCastle reports whether a king move is a castling move.
func isCastle(piece chess.Piece, from, to chess.Square) bool {
	return piece.Type == chess.King && from.Rank == to.Rank && abs(to.File-from.File) == 2
}

// applyCastle moves king and rook in one step and clears the side's rights.
func applyCastle(board *chess.Board, rights *chess.CastlingRights, from, to chess.Square) {
	colour := board.Get(from).Colour
	dir := sign(to.File - from.File)
	rookFrom := chess.Sq(0, from.Rank)
	if dir > 0 {
		rookFrom = chess.Sq(chess.BoardSize-1, from.Rank)
	}

	board.Move(from, to)
	board.Move(rookFrom, from.Offset(dir, 0))
	rights.RevokeAll(colour)
}

// updateCastlingRights removes rights when a king moves or a rook
// leaves, or is captured on, its corner.
func updateCastlingRights(rights *chess.CastlingRights, piece chess.Piece, from, to chess.Square) {
	if piece.Type == chess.King {
		rights.RevokeAll(piece.Colour)
	}
	for _, sq := range [2]chess.Square{from, to} {
		revokeCorner(rights, sq)
	}
}

// revokeCorner clears the right tied to a rook corner square.
func revokeCorner(rights *chess.CastlingRights, sq chess.Square) {
	for _, colour := range [2]chess.Colour{chess.White, chess.Black} {
		if sq.Rank != colour.HomeRank() {
			continue
		}
		switch sq.File {
		case 0:
			rights.Revoke(colour, false)
		case chess.BoardSize - 1:
			rights.Revoke(colour, true)
		}
	}
}
