package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Squares parses a space separated list of algebraic squares such as
// "e3 e4". It fails the test on malformed input.
func Squares(t testing.TB, list string) []chess.Square {
	t.Helper()
	var squares []chess.Square
	for _, f := range strings.Fields(list) {
		sq, err := chess.ParseSquare(f)
		if err != nil {
			t.Fatalf("bad square %q in test table: %v", f, err)
		}
		squares = append(squares, sq)
	}
	return squares
}
