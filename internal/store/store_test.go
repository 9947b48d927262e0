package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/session"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	testutil.AssertNoError(t, err)
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func playedSession(t *testing.T, id, moves string) *session.Session {
	t.Helper()
	recs, err := engine.ParseMoveList(moves)
	testutil.AssertNoError(t, err)
	s, err := session.Replay(id, engine.NewGame(), recs)
	testutil.AssertNoError(t, err)
	return s
}

func TestStore_SaveLoadRestore(t *testing.T) {
	st := openTestStore(t)
	sess := playedSession(t, "g1", "e2e4 e7e5 g1f3 b8c6 f1b5 a7a6 e1g1")

	testutil.AssertNoError(t, st.SaveSession(sess))

	rec, err := st.Load("g1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.ID, "g1")
	testutil.AssertEqual(t, rec.StartFEN, engine.InitialFEN)
	testutil.AssertEqual(t, rec.Moves, sess.Log())
	testutil.AssertEqual(t, rec.Status, "active")
	testutil.AssertEqual(t, rec.UpdatedAt, time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC))

	// A second, independently held state replays to the same position
	state, err := Restore(rec)
	testutil.AssertNoError(t, err)
	if diff := cmp.Diff(sess.Snapshot(), state); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}

	live, err := RestoreSession(rec)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, live.Snapshot(), sess.Snapshot())
	testutil.AssertEqual(t, live.Ply(), 7)
	_, err = live.Undo()
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, live.Snapshot().Castling.WhiteKingside, "undo of castling restores rights")
}

func TestStore_PromotionRoundTrip(t *testing.T) {
	st := openTestStore(t)
	sess := session.NewFromState("promo", engine.MustGameFromFEN("4k3/1P6/8/8/8/8/6p1/4K3 w - - 0 1"))
	_, err := sess.Move(chess.MustParseSquare("b7"), chess.MustParseSquare("b8"))
	testutil.AssertNoError(t, err)
	_, err = sess.Promote(chess.Knight)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, st.SaveSession(sess))
	rec, err := st.Load("promo")
	testutil.AssertNoError(t, err)

	state, err := Restore(rec)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, state.Board.Get(chess.MustParseSquare("b8")), chess.W(chess.Knight))
}

func TestStore_LoadMissing(t *testing.T) {
	st := openTestStore(t)
	_, err := st.Load("nope")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)

	err = st.Delete("nope")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
}

func TestStore_ListAndDelete(t *testing.T) {
	st := openTestStore(t)
	for _, id := range []string{"b", "a", "c"} {
		testutil.AssertNoError(t, st.SaveSession(session.New(id)))
	}

	ids, err := st.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{"a", "b", "c"})

	testutil.AssertNoError(t, st.Delete("b"))
	ids, err = st.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{"a", "c"})

	_, err = st.Load("b")
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameNotFound)
}

func TestStore_SaveOverwrites(t *testing.T) {
	st := openTestStore(t)
	testutil.AssertNoError(t, st.SaveSession(playedSession(t, "g", "e2e4")))
	testutil.AssertNoError(t, st.SaveSession(playedSession(t, "g", "d2d4 d7d5")))

	rec, err := st.Load("g")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(rec.Moves), 2)

	ids, err := st.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{"g"})
}

func TestStore_SaveRejectsEmptyID(t *testing.T) {
	st := openTestStore(t)
	if err := st.Save(GameRecord{StartFEN: engine.InitialFEN}); err == nil {
		t.Error("Save with empty id succeeded; want error")
	}
}

func TestRestore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rec     GameRecord
		wantErr error
	}{
		{
			name:    "bad start FEN",
			rec:     GameRecord{ID: "x", StartFEN: "not a fen"},
			wantErr: chesserrors.ErrInvalidFEN,
		},
		{
			name: "illegal move in log",
			rec: GameRecord{ID: "x", StartFEN: engine.InitialFEN, Moves: []engine.MoveRecord{
				{From: chess.MustParseSquare("e2"), To: chess.MustParseSquare("e5")},
			}},
			wantErr: chesserrors.ErrIllegalMove,
		},
		{
			name:    "final FEN disagrees",
			rec:     GameRecord{ID: "x", StartFEN: engine.InitialFEN, FinalFEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
			wantErr: chesserrors.ErrInvalidFEN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Restore(tt.rec)
			testutil.AssertErrorIs(t, err, tt.wantErr)
		})
		t.Run(tt.name+" as session", func(t *testing.T) {
			sess, err := RestoreSession(tt.rec)
			testutil.AssertErrorIs(t, err, tt.wantErr)
			if sess != nil {
				t.Errorf("RestoreSession returned a session alongside %v", err)
			}
		})
	}
}

func TestGameRecord_JSON(t *testing.T) {
	sess := playedSession(t, "j", "e2e4")
	data, err := json.Marshal(NewRecord(sess))
	testutil.AssertNoError(t, err)

	text := string(data)
	for _, want := range []string{`"id":"j"`, `"from":"e2"`, `"to":"e4"`, `"status":"active"`} {
		if !strings.Contains(text, want) {
			t.Errorf("record JSON %s missing %s", text, want)
		}
	}
	if strings.Contains(text, "promotion") {
		t.Errorf("record JSON %s has a promotion field for a plain move", text)
	}
}

func TestStore_OpenDir(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, st.SaveSession(session.New("disk")))
	testutil.AssertNoError(t, st.Close())

	st, err = Open(dir)
	testutil.AssertNoError(t, err)
	defer st.Close()
	_, err = st.Load("disk")
	testutil.AssertNoError(t, err)
}
