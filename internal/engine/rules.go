package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// minorPieces tallies one side's knights and bishops, and the square
// colour of its bishops.
type minorPieces struct {
	knights      int
	lightBishops int
	darkBishops  int
}

func (m minorPieces) count() int {
	return m.knights + m.lightBishops + m.darkBishops
}

// HasInsufficientMaterial reports whether neither side can ever mate:
// bare kings, a single minor piece against a bare king, or one bishop
// each on squares of the same colour.
func HasInsufficientMaterial(board chess.Board) bool {
	var sides [2]minorPieces

	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.Sq(file, rank)
			piece := board.Get(sq)
			m := &sides[piece.Colour]
			switch {
			case piece.IsEmpty(), piece.Type == chess.King:
			case piece.Type == chess.Knight:
				m.knights++
			case piece.Type == chess.Bishop && isLightSquare(sq):
				m.lightBishops++
			case piece.Type == chess.Bishop:
				m.darkBishops++
			default:
				return false
			}
		}
	}

	white, black := sides[chess.White], sides[chess.Black]
	switch white.count() + black.count() {
	case 0, 1:
		return true
	case 2:
		if white.count() != 1 || white.knights+black.knights > 0 {
			return false
		}
		return white.lightBishops == black.lightBishops
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
// a8 (file 0, rank 0) is light.
func isLightSquare(sq chess.Square) bool {
	return (sq.File+sq.Rank)%2 == 0
}
