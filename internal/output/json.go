package output

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// JSONState represents a game state in JSON format.
type JSONState struct {
	ID                   string              `json:"id,omitempty"`
	FEN                  string              `json:"fen"`
	ToMove               string              `json:"toMove"`
	Status               string              `json:"status"`
	Castling             string              `json:"castling"`
	EnPassant            string              `json:"enPassant,omitempty"`
	Attacker             string              `json:"attacker,omitempty"`
	CheckPath            []string            `json:"checkPath,omitempty"`
	LegalMoves           map[string][]string `json:"legalMoves"`
	Moves                []string            `json:"moves,omitempty"`
	PlyCount             int                 `json:"plyCount"`
	Repetitions          int                 `json:"repetitions,omitempty"`
	InsufficientMaterial bool                `json:"insufficientMaterial,omitempty"`
}

// JSONOutput holds multiple states for array output.
type JSONOutput struct {
	Games []*JSONState `json:"games"`
}

// StateToJSON converts a game view to JSON format.
func StateToJSON(view GameView) *JSONState {
	state := view.State
	js := &JSONState{
		ID:                   view.ID,
		FEN:                  state.FEN(),
		ToMove:               strings.ToLower(state.ToMove.String()),
		Status:               state.Status.String(),
		Castling:             state.Castling.String(),
		LegalMoves:           legalMovesJSON(state),
		PlyCount:             len(view.Moves),
		Repetitions:          view.Repetitions,
		InsufficientMaterial: engine.HasInsufficientMaterial(state.Board),
	}
	if state.EnPassant {
		js.EnPassant = state.EPSquare.String()
	}

	if attacker, ok := engine.AttackerOf(state.Board, state.ToMove); ok {
		js.Attacker = attacker.String()
		king, _ := state.Board.FindKing(state.ToMove)
		js.CheckPath = squareStrings(engine.CheckPath(state.Board, attacker, king))
	}

	for _, m := range view.Moves {
		js.Moves = append(js.Moves, m.String())
	}
	return js
}

// WriteStateJSON writes a single state as indented JSON.
func WriteStateJSON(w io.Writer, view GameView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(StateToJSON(view))
}

// legalMovesJSON maps each movable piece's square to its destinations.
func legalMovesJSON(state engine.GameState) map[string][]string {
	all := engine.AllLegalMoves(state)
	out := make(map[string][]string, len(all))
	for from, moves := range all {
		dests := squareStrings(moves.Squares())
		sort.Strings(dests)
		out[from.String()] = dests
	}
	return out
}

func squareStrings(squares []chess.Square) []string {
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = sq.String()
	}
	return out
}
