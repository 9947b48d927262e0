// Package engine implements the chess rules: move generation, check
// detection, castling, en passant, promotion and move history.
//
// Every operation is a pure function of a GameState value. The engine
// keeps no mutable state of its own, so a caller serialising mutations
// per game can share read-only snapshots freely.
package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Status classifies a position for the side to move.
type Status int

const (
	Active Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the game cannot continue.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(text string) (Status, error) {
	for s := Active; s <= Stalemate; s++ {
		if s.String() == text {
			return s, nil
		}
	}
	return Active, fmt.Errorf("unknown status %q", text)
}

// GameState is everything needed to continue a game. All fields are
// plain values; copying a GameState copies the board.
type GameState struct {
	Board    chess.Board
	ToMove   chess.Colour
	Castling chess.CastlingRights

	// EnPassant is true when EPSquare holds the square skipped by a
	// two-square pawn advance on the previous move.
	EnPassant bool
	EPSquare  chess.Square

	Status Status
}

// NewGame returns the standard starting position with White to move.
func NewGame() GameState {
	return GameState{
		Board:    chess.InitialBoard(),
		ToMove:   chess.White,
		Castling: chess.AllCastlingRights,
		Status:   Active,
	}
}

// EnPassantTarget returns the en-passant target, or nil if there is none.
func (s GameState) EnPassantTarget() *chess.Square {
	if !s.EnPassant {
		return nil
	}
	sq := s.EPSquare
	return &sq
}

// MoveRecord is a committed move as exchanged between peers: origin,
// destination and an optional promotion choice.
type MoveRecord struct {
	From      chess.Square    `json:"from"`
	To        chess.Square    `json:"to"`
	Promotion chess.PieceType `json:"promotion,omitempty"`
}

// String returns the coordinate form of the move, e.g. "e2e4" or "e7e8q".
func (m MoveRecord) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoType {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// ParseMoveRecord parses the coordinate form produced by MoveRecord.String.
func ParseMoveRecord(text string) (MoveRecord, error) {
	if len(text) != 4 && len(text) != 5 {
		return MoveRecord{}, fmt.Errorf("move %q: %w", text, errors.ErrIllegalMove)
	}
	from, err := chess.ParseSquare(text[0:2])
	if err != nil {
		return MoveRecord{}, err
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return MoveRecord{}, err
	}
	rec := MoveRecord{From: from, To: to}
	if len(text) == 5 {
		rec.Promotion = ConvertFENCharToPiece(text[4])
		if !rec.Promotion.IsPromotionChoice() {
			return MoveRecord{}, fmt.Errorf("move %q: %w", text, errors.ErrInvalidPromotionChoice)
		}
	}
	return rec, nil
}

// ParseMoveList parses a whitespace separated list of coordinate moves.
func ParseMoveList(text string) ([]MoveRecord, error) {
	fields := strings.Fields(text)
	moves := make([]MoveRecord, 0, len(fields))
	for _, f := range fields {
		rec, err := ParseMoveRecord(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, rec)
	}
	return moves, nil
}
