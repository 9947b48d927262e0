package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// sq is shorthand for chess.MustParseSquare.
func sq(text string) chess.Square {
	return chess.MustParseSquare(text)
}

// mustFEN builds a state from FEN, failing the test on error.
func mustFEN(t *testing.T, fen string) GameState {
	t.Helper()
	state, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
	}
	return state
}

// mustPlay applies a space separated list of coordinate moves.
func mustPlay(t *testing.T, state GameState, moves string) GameState {
	t.Helper()
	recs, err := ParseMoveList(moves)
	if err != nil {
		t.Fatalf("ParseMoveList(%q) error: %v", moves, err)
	}
	next, err := ApplyMoves(state, recs)
	if err != nil {
		t.Fatalf("ApplyMoves(%q) error: %v", moves, err)
	}
	return next
}

// setOf builds a SquareSet from a space separated list.
func setOf(t *testing.T, list string) SquareSet {
	t.Helper()
	return NewSquareSet(testutil.Squares(t, list)...)
}

// everyLegalMove calls fn for each legal move of the side to move,
// expanding promotions to a queen.
func everyLegalMove(state GameState, fn func(MoveRecord)) {
	for from, moves := range AllLegalMoves(state) {
		piece := state.Board.Get(from)
		for _, to := range moves.Squares() {
			rec := MoveRecord{From: from, To: to}
			if isPromotion(piece, to) {
				rec.Promotion = chess.Queen
			}
			fn(rec)
		}
	}
}

// samplePositions covers openings, castling, en passant and promotion.
var samplePositions = []string{
	InitialFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"4k3/1P6/8/8/8/8/6p1/4K3 b - - 0 1",
}
