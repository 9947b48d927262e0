package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// AttackerOf returns the square of a piece attacking the given colour's
// king. Squares are scanned rank 0 to 7, a-file to h-file, and the
// first opposing piece whose unfiltered moves reach the king is
// reported. The second result is false when the king is not attacked
// or there is no such king.
func AttackerOf(board chess.Board, kingColour chess.Colour) (chess.Square, bool) {
	kingSq, ok := board.FindKing(kingColour)
	if !ok {
		return chess.Square{}, false
	}
	for _, sq := range board.Occupied(kingColour.Opposite()) {
		if generate(&board, sq, nil, false).Has(kingSq) {
			return sq, true
		}
	}
	return chess.Square{}, false
}

// IsInCheck returns true if the given colour's king is attacked.
func IsInCheck(board chess.Board, colour chess.Colour) bool {
	_, attacked := AttackerOf(board, colour)
	return attacked
}

// SquareAttacked returns true if any piece of byColour attacks sq,
// whether or not sq is occupied. Pawns attack diagonally forward even
// onto empty squares, which is what castling transit checks need.
func SquareAttacked(board chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Check pawn attacks
	pawn := chess.Piece{Type: chess.Pawn, Colour: byColour}
	for _, df := range [2]int{-1, 1} {
		if board.Get(sq.Offset(df, -byColour.Forward())) == pawn {
			return true
		}
	}

	// Check knight attacks
	knight := chess.Piece{Type: chess.Knight, Colour: byColour}
	for _, off := range knightOffsets {
		if board.Get(sq.Offset(off[0], off[1])) == knight {
			return true
		}
	}

	// Check king attacks
	king := chess.Piece{Type: chess.King, Colour: byColour}
	for _, off := range kingOffsets {
		if board.Get(sq.Offset(off[0], off[1])) == king {
			return true
		}
	}

	queen := chess.Piece{Type: chess.Queen, Colour: byColour}
	bishop := chess.Piece{Type: chess.Bishop, Colour: byColour}
	if rayHits(&board, sq, diagonalDirs, bishop, queen) {
		return true
	}
	rook := chess.Piece{Type: chess.Rook, Colour: byColour}
	return rayHits(&board, sq, straightDirs, rook, queen)
}

// rayHits walks each ray from sq and reports whether the first piece
// met is one of the given sliders.
func rayHits(board *chess.Board, sq chess.Square, dirs [][2]int, sliders ...chess.Piece) bool {
	for _, dir := range dirs {
		for at := sq.Offset(dir[0], dir[1]); at.Valid(); at = at.Offset(dir[0], dir[1]) {
			piece := board.Get(at)
			if piece.IsEmpty() {
				continue
			}
			for _, s := range sliders {
				if piece == s {
					return true
				}
			}
			break // Blocked
		}
	}
	return false
}

// CheckPath returns the squares an attack travels along from attacker
// to king, ending with the king's square. Knights, pawns and kings
// strike directly, so only the king's square is returned for them.
func CheckPath(board chess.Board, attacker, king chess.Square) []chess.Square {
	piece := board.Get(attacker)
	if piece.IsEmpty() {
		return nil
	}
	switch piece.Type {
	case chess.Knight, chess.Pawn, chess.King:
		return []chess.Square{king}
	}

	df := sign(king.File - attacker.File)
	dr := sign(king.Rank - attacker.Rank)
	var path []chess.Square
	for at := attacker.Offset(df, dr); at != king && at.Valid(); at = at.Offset(df, dr) {
		path = append(path, at)
	}
	return append(path, king)
}

// abs and sign measure file and rank differences between squares.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
