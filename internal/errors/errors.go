// Package errors provides sentinel errors and error types for the rules engine.
// It defines the failure classes callers react to and a structured error type
// that preserves move context while allowing inspection with errors.Is() and
// errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the engine's failure classes.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidSquare indicates a coordinate outside the 8x8 board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrIllegalMove indicates a destination outside the legal-move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPieceSelected indicates an empty origin square or a piece that
	// does not belong to the side to move.
	ErrNoPieceSelected = errors.New("no piece selected")

	// ErrInvalidPromotionChoice indicates a promotion to a king or to nothing.
	ErrInvalidPromotionChoice = errors.New("invalid promotion choice")

	// ErrEmptyHistory indicates an undo with no recorded move.
	ErrEmptyHistory = errors.New("empty history")

	// ErrPromotionPending indicates a move was attempted while a promotion
	// choice is still outstanding.
	ErrPromotionPending = errors.New("promotion pending")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrGameNotFound indicates a stored game id does not exist.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps errors with move context: the game, the ply and the
// squares involved. It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err       error  // The underlying error
	GameID    string // Game identifier (if known)
	Ply       int    // 1-based ply number (0 if not applicable)
	From      string // Origin square, e.g. "e2"
	To        string // Destination square, e.g. "e4"
	Promotion string // Promotion choice (if any)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, fmt.Sprintf("game %s", e.GameID))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.From != "" || e.To != "" {
		move := e.From + e.To
		if e.Promotion != "" {
			move += "=" + e.Promotion
		}
		parts = append(parts, fmt.Sprintf("move %q", move))
	}

	context := strings.Join(parts, ", ")
	switch {
	case context == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", context, e.Err)
	case context == "":
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
