package engine

import (
	stderrors "errors"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ResultKind tags a MoveResult.
type ResultKind int

const (
	// Completed means MoveResult.State holds the position after the move.
	Completed ResultKind = iota
	// AwaitingPromotion means the move stops on the far rank and waits
	// for ResolvePromotion.
	AwaitingPromotion
)

// PendingMove is a pawn move to the far rank that has been validated but
// not applied. It carries the position it was proposed in.
type PendingMove struct {
	Before GameState
	From   chess.Square
	To     chess.Square
}

// MoveResult is the outcome of ProposeMove.
type MoveResult struct {
	Kind    ResultKind
	State   GameState   // set when Kind == Completed
	Pending PendingMove // set when Kind == AwaitingPromotion
}

// ProposeMove validates and applies the move from-to for the side to
// move. A pawn reaching the far rank is not applied: the result is
// AwaitingPromotion and the caller completes it with ResolvePromotion.
func ProposeMove(state GameState, from, to chess.Square) (MoveResult, error) {
	piece, err := checkMove(state, from, to)
	if err != nil {
		return MoveResult{}, err
	}

	if isPromotion(piece, to) {
		return MoveResult{
			Kind:    AwaitingPromotion,
			Pending: PendingMove{Before: state, From: from, To: to},
		}, nil
	}
	return MoveResult{Kind: Completed, State: commit(state, from, to, chess.NoType)}, nil
}

// ResolvePromotion completes a pending promotion with the chosen piece.
// Only queen, rook, bishop and knight are accepted. The pending move is
// checked again, so one built by hand or reloaded must still be a legal
// pawn move to the far rank in its Before position.
func ResolvePromotion(pending PendingMove, choice chess.PieceType) (GameState, error) {
	if pending.From.Valid() && pending.Before.Board.Get(pending.From).Type != chess.Pawn {
		return pending.Before, moveError(errors.ErrNoPieceSelected, pending.From, pending.To, choice)
	}
	piece, err := checkMove(pending.Before, pending.From, pending.To)
	if err != nil {
		return pending.Before, err
	}
	if !isPromotion(piece, pending.To) {
		return pending.Before, moveError(errors.ErrIllegalMove, pending.From, pending.To, choice)
	}
	if !choice.IsPromotionChoice() {
		return pending.Before, moveError(errors.ErrInvalidPromotionChoice, pending.From, pending.To, choice)
	}
	return commit(pending.Before, pending.From, pending.To, choice), nil
}

// checkMove returns the piece on from when from-to is a legal move for
// the side to move.
func checkMove(state GameState, from, to chess.Square) (chess.Piece, error) {
	if !from.Valid() || !to.Valid() {
		return chess.NoPiece, moveError(errors.ErrInvalidSquare, from, to, chess.NoType)
	}
	piece := state.Board.Get(from)
	if piece.IsEmpty() || piece.Colour != state.ToMove {
		return chess.NoPiece, moveError(errors.ErrNoPieceSelected, from, to, chess.NoType)
	}

	legal, err := LegalMoves(state, from)
	if err != nil {
		return chess.NoPiece, moveError(err, from, to, chess.NoType)
	}
	if !legal.Has(to) {
		return chess.NoPiece, moveError(errors.ErrIllegalMove, from, to, chess.NoType)
	}
	return piece, nil
}

// ApplyMove replays a committed move in one step. A promotion choice is
// required exactly when the move promotes. Replaying the same records on
// two independently held states yields identical states.
func ApplyMove(state GameState, rec MoveRecord) (GameState, error) {
	res, err := ProposeMove(state, rec.From, rec.To)
	if err != nil {
		return state, err
	}
	if res.Kind == AwaitingPromotion {
		return ResolvePromotion(res.Pending, rec.Promotion)
	}
	if rec.Promotion != chess.NoType {
		return state, moveError(errors.ErrInvalidPromotionChoice, rec.From, rec.To, rec.Promotion)
	}
	return res.State, nil
}

// ApplyMoves replays a move log from state, stopping at the first failure.
// The returned state is the last one successfully reached.
func ApplyMoves(state GameState, moves []MoveRecord) (GameState, error) {
	for i, rec := range moves {
		next, err := ApplyMove(state, rec)
		if err != nil {
			var moveErr *errors.MoveError
			if stderrors.As(err, &moveErr) {
				moveErr.Ply = i + 1
			}
			return state, err
		}
		state = next
	}
	return state, nil
}

// commit performs an already validated move and classifies the result.
func commit(state GameState, from, to chess.Square, promotion chess.PieceType) GameState {
	next := state
	board := &next.Board
	piece := board.Get(from)

	switch {
	case isCastle(piece, from, to):
		applyCastle(board, &next.Castling, from, to)
	case isEnPassantCapture(board, from, to, state.EnPassantTarget()):
		board.Set(capturedPawnSquare(from, to), chess.NoPiece)
		board.Move(from, to)
	default:
		board.Move(from, to)
	}

	if promotion != chess.NoType {
		board.Set(to, chess.Piece{Type: promotion, Colour: piece.Colour})
	}

	updateCastlingRights(&next.Castling, piece, from, to)

	// The target lives for exactly one reply
	next.EnPassant = false
	next.EPSquare = chess.Square{}
	if isDoublePush(piece, from, to) {
		next.EnPassant = true
		next.EPSquare = from.Offset(0, piece.Colour.Forward())
	}

	next.ToMove = state.ToMove.Opposite()
	next.Status = Classify(next)
	return next
}

// moveError wraps err with the move's squares.
func moveError(err error, from, to chess.Square, promotion chess.PieceType) error {
	e := &errors.MoveError{Err: err, From: from.String(), To: to.String()}
	if promotion != chess.NoType {
		e.Promotion = string(promotion.Letter())
	}
	return e
}
