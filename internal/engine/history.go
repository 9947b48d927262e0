package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// HistoryEntry is a snapshot of a position taken before a move is
// committed. Board is an array, so the snapshot never aliases live state.
type HistoryEntry struct {
	Board     chess.Board
	ToMove    chess.Colour
	Castling  chess.CastlingRights
	EnPassant bool
	EPSquare  chess.Square
}

// RecordBeforeMove captures the state a move is about to be played from.
func RecordBeforeMove(state GameState) HistoryEntry {
	return HistoryEntry{
		Board:     state.Board,
		ToMove:    state.ToMove,
		Castling:  state.Castling,
		EnPassant: state.EnPassant,
		EPSquare:  state.EPSquare,
	}
}

// Restore rebuilds the game state the entry was taken from.
func (e HistoryEntry) Restore() GameState {
	state := GameState{
		Board:     e.Board,
		ToMove:    e.ToMove,
		Castling:  e.Castling,
		EnPassant: e.EnPassant,
		EPSquare:  e.EPSquare,
	}
	state.Status = Classify(state)
	return state
}

// History is the ordered list of snapshots for one game. Entries are
// only appended or popped from the end.
type History struct {
	entries []HistoryEntry
}

// Push appends a snapshot.
func (h *History) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the snapshots, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Undo pops the most recent snapshot and returns the state it restores.
// With no snapshots it returns current unchanged and ErrEmptyHistory.
func (h *History) Undo(current GameState) (GameState, error) {
	if len(h.entries) == 0 {
		return current, errors.ErrEmptyHistory
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1:len(h.entries)-1]
	return last.Restore(), nil
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.entries = nil
}
