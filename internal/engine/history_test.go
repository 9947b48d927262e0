package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lgbarn/chess-rules-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestHistory_UndoRoundTrip(t *testing.T) {
	for _, fen := range samplePositions {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			state := mustFEN(t, fen)

			count := 0
			everyLegalMove(state, func(rec MoveRecord) {
				var h History
				h.Push(RecordBeforeMove(state))
				next, err := ApplyMove(state, rec)
				if err != nil {
					t.Fatalf("ApplyMove(%v) error: %v", rec, err)
				}

				restored, err := h.Undo(next)
				testutil.AssertNoError(t, err, "Undo after %v", rec)
				if diff := cmp.Diff(state, restored); diff != "" {
					t.Errorf("undo of %v mismatch (-want +got):\n%s", rec, diff)
				}
				count++
			})
			if count == 0 {
				t.Fatalf("no legal moves in %q", fen)
			}
		})
	}
}

func TestHistory_UndoSequence(t *testing.T) {
	var h History
	states := []GameState{NewGame()}
	recs, err := ParseMoveList("e2e4 d7d5 e4d5 g8f6 f1b5 c7c6 d5c6 d8d2 b1d2 b8d7 c6b7 e7e5 b7a8q")
	testutil.AssertNoError(t, err)

	for _, rec := range recs {
		cur := states[len(states)-1]
		h.Push(RecordBeforeMove(cur))
		next, err := ApplyMove(cur, rec)
		testutil.AssertNoError(t, err, "ApplyMove(%v)", rec)
		states = append(states, next)
	}
	testutil.AssertEqual(t, h.Len(), len(recs))

	cur := states[len(states)-1]
	for i := len(states) - 2; i >= 0; i-- {
		cur, err = h.Undo(cur)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, cur, states[i])
	}

	_, err = h.Undo(cur)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEmptyHistory)
}

func TestHistory_UndoRestoresEnPassant(t *testing.T) {
	state := mustPlay(t, NewGame(), "e2e4 a7a6 e4e5 d7d5")
	testutil.AssertTrue(t, state.EnPassant)

	var h History
	h.Push(RecordBeforeMove(state))
	next := mustPlay(t, state, "g1f3")
	testutil.AssertFalse(t, next.EnPassant)

	restored, err := h.Undo(next)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, restored.EnPassant)
	testutil.AssertEqual(t, restored.EPSquare, sq("d6"))
	testutil.AssertTrue(t, mustLegal(t, restored, "e5").Has(sq("d6")), "e5xd6 available again")
}

func TestHistory_EmptyUndo(t *testing.T) {
	var h History
	state := NewGame()

	got, err := h.Undo(state)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEmptyHistory)
	testutil.AssertEqual(t, got, state)
	testutil.AssertEqual(t, h.Len(), 0)
}

func TestHistory_SnapshotsDoNotAlias(t *testing.T) {
	state := NewGame()
	entry := RecordBeforeMove(state)

	state.Board.Set(sq("e2"), chess.NoPiece)
	testutil.AssertEqual(t, entry.Board.Get(sq("e2")), chess.W(chess.Pawn))

	var h History
	h.Push(entry)
	entries := h.Entries()
	entries[0].ToMove = chess.Black
	testutil.AssertEqual(t, h.Entries()[0].ToMove, chess.White)
}

func TestHistory_UndoKeepsPoppedEntry(t *testing.T) {
	var h History
	first := RecordBeforeMove(NewGame())
	second := RecordBeforeMove(mustPlay(t, NewGame(), "e2e4"))
	h.Push(first)
	h.Push(second)

	backing := h.entries
	_, err := h.Undo(NewGame())
	testutil.AssertNoError(t, err)

	// Pushing after an undo must not overwrite the popped snapshot
	h.Push(RecordBeforeMove(mustPlay(t, NewGame(), "d2d4")))
	testutil.AssertEqual(t, backing[1], second)
	testutil.AssertEqual(t, h.Len(), 2)

	h.Clear()
	testutil.AssertEqual(t, h.Len(), 0)
}
