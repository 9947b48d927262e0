package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/engine"
)

func playedView(t *testing.T, id, moves string) GameView {
	t.Helper()
	recs, err := engine.ParseMoveList(moves)
	if err != nil {
		t.Fatalf("ParseMoveList(%q): %v", moves, err)
	}
	state, err := engine.ApplyMoves(engine.NewGame(), recs)
	if err != nil {
		t.Fatalf("ApplyMoves(%q): %v", moves, err)
	}
	return GameView{ID: id, State: state, Moves: recs}
}

// TestDiagramWriter_WriteState verifies the text writer outputs board and moves
func TestDiagramWriter_WriteState(t *testing.T) {
	var buf bytes.Buffer
	writer := NewDiagramWriter(&buf, false, 80)

	if err := writer.WriteState(playedView(t, "demo", "e2e4 e7e5 g1f3")); err != nil {
		t.Fatalf("WriteState failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"[demo]",
		"5 | .  .  .  .  p  .  .  . |",
		"3 | .  .  .  .  .  N  .  . |",
		"Black to move, active",
		"1. e2e4 e7e5 2. g1f3",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("diagram output missing %q:\n%s", want, output)
		}
	}
}

// TestJSONWriter_Batch verifies JSON writer batches states into an array
func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	writer := NewJSONWriter(&buf)

	for _, view := range []GameView{
		playedView(t, "a", "e2e4"),
		playedView(t, "b", "f2f3 e7e5 g2g4 d8h4"),
	} {
		if err := writer.WriteState(view); err != nil {
			t.Fatalf("WriteState failed: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Error("batch writer wrote before Close")
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out.Games) != 2 {
		t.Fatalf("got %d games; want 2", len(out.Games))
	}
	if out.Games[0].EnPassant != "e3" {
		t.Errorf("games[0].enPassant = %q; want e3", out.Games[0].EnPassant)
	}
	mate := out.Games[1]
	if mate.Status != "checkmate" || mate.Attacker != "h4" {
		t.Errorf("games[1] status %q attacker %q; want checkmate from h4", mate.Status, mate.Attacker)
	}
	if len(mate.LegalMoves) != 0 {
		t.Errorf("checkmated side has legal moves: %v", mate.LegalMoves)
	}

	// A second Close writes nothing more
	before := buf.Len()
	if err := writer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if buf.Len() != before {
		t.Error("second Close wrote output")
	}
}

// TestJSONWriter_Single verifies single mode writes immediately
func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	writer := NewJSONWriterSingle(&buf)

	if err := writer.WriteState(playedView(t, "", "")); err != nil {
		t.Fatalf("WriteState failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("single writer did not write immediately")
	}

	var js JSONState
	if err := json.Unmarshal(buf.Bytes(), &js); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if js.FEN != engine.InitialFEN {
		t.Errorf("fen = %q; want %q", js.FEN, engine.InitialFEN)
	}
	if js.ToMove != "white" || js.Castling != "KQkq" || js.PlyCount != 0 {
		t.Errorf("unexpected start state: %+v", js)
	}
	if len(js.LegalMoves) != 10 {
		t.Errorf("legalMoves has %d pieces; want 10", len(js.LegalMoves))
	}
	if got := js.LegalMoves["g1"]; len(got) != 2 || got[0] != "f3" || got[1] != "h3" {
		t.Errorf("legalMoves[g1] = %v; want [f3 h3]", got)
	}
}
