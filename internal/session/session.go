// Package session serialises the mutations of one game.
//
// A Session owns a GameState, its History and the committed move log
// behind a sync.RWMutex. Readers get immutable snapshots; writers are
// applied one at a time, so each game is a single writer no matter how
// many goroutines deliver its moves.
package session

import (
	"fmt"
	"sync"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// Session is one game in progress.
type Session struct {
	mu sync.RWMutex

	id          string
	start       engine.GameState
	state       engine.GameState
	history     engine.History
	log         []engine.MoveRecord
	pending     *engine.PendingMove
	repetitions *hashing.RepetitionTable
}

// New creates a session for a game starting from the standard position.
func New(id string) *Session {
	return NewFromState(id, engine.NewGame())
}

// NewFromState creates a session for a game starting from state.
func NewFromState(id string, state engine.GameState) *Session {
	s := &Session{
		id:          id,
		start:       state,
		state:       state,
		repetitions: hashing.NewRepetitionTable(0),
	}
	s.repetitions.Add(state)
	return s
}

// Replay creates a session from start and plays moves through it, so
// the result has a full history to undo.
func Replay(id string, start engine.GameState, moves []engine.MoveRecord) (*Session, error) {
	s := NewFromState(id, start)
	for _, rec := range moves {
		if _, err := s.Apply(rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the game identifier.
func (s *Session) ID() string {
	return s.id
}

// Start returns the position the game began from.
func (s *Session) Start() engine.GameState {
	return s.start
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() engine.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LegalMoves returns the legal destinations of the piece on sq.
func (s *Session) LegalMoves(sq chess.Square) (engine.SquareSet, error) {
	snap := s.Snapshot()
	return engine.LegalMoves(snap, sq)
}

// Pending returns the promotion awaiting a choice, if any.
func (s *Session) Pending() (engine.PendingMove, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pending == nil {
		return engine.PendingMove{}, false
	}
	return *s.pending, true
}

// Move proposes from-to for the side to move. A promoting move is held
// until Promote is called; no other move is accepted meanwhile.
func (s *Session) Move(from, to chess.Square) (engine.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return engine.MoveResult{}, s.wrap(errors.ErrPromotionPending, from, to)
	}
	res, err := engine.ProposeMove(s.state, from, to)
	if err != nil {
		return engine.MoveResult{}, s.annotate(err)
	}
	switch res.Kind {
	case engine.AwaitingPromotion:
		pending := res.Pending
		s.pending = &pending
	case engine.Completed:
		s.commit(engine.MoveRecord{From: from, To: to}, res.State)
	}
	return res, nil
}

// Promote completes the pending promotion. An invalid choice leaves the
// promotion pending.
func (s *Session) Promote(choice chess.PieceType) (engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return s.state, fmt.Errorf("no promotion pending: %w", errors.ErrIllegalMove)
	}
	next, err := engine.ResolvePromotion(*s.pending, choice)
	if err != nil {
		return s.state, s.annotate(err)
	}
	rec := engine.MoveRecord{From: s.pending.From, To: s.pending.To, Promotion: choice}
	s.pending = nil
	s.commit(rec, next)
	return next, nil
}

// CancelPromotion drops a pending promotion, leaving the position as it
// was before the pawn was moved.
func (s *Session) CancelPromotion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Apply replays a committed move in one step.
func (s *Session) Apply(rec engine.MoveRecord) (engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return s.state, s.wrap(errors.ErrPromotionPending, rec.From, rec.To)
	}
	next, err := engine.ApplyMove(s.state, rec)
	if err != nil {
		return s.state, s.annotate(err)
	}
	s.commit(rec, next)
	return next, nil
}

// Undo takes back the last committed move.
func (s *Session) Undo() (engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return s.state, fmt.Errorf("undo: %w", errors.ErrPromotionPending)
	}
	prev, err := s.history.Undo(s.state)
	if err != nil {
		return s.state, err
	}
	s.repetitions.Remove(s.state)
	s.state = prev
	s.log = s.log[:len(s.log)-1]
	return prev, nil
}

// Log returns the committed moves, oldest first.
func (s *Session) Log() []engine.MoveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]engine.MoveRecord, len(s.log))
	copy(out, s.log)
	return out
}

// Ply returns the number of committed moves.
func (s *Session) Ply() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// Repetitions returns how many times the current position has occurred.
func (s *Session) Repetitions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repetitions.Count(s.state)
}

// commit records next as the new current state. Caller holds the lock.
func (s *Session) commit(rec engine.MoveRecord, next engine.GameState) {
	s.history.Push(engine.RecordBeforeMove(s.state))
	s.log = append(s.log, rec)
	s.state = next
	s.repetitions.Add(next)
}

// wrap builds a MoveError for a move the session refused itself.
func (s *Session) wrap(err error, from, to chess.Square) error {
	return &errors.MoveError{
		Err:    err,
		GameID: s.id,
		Ply:    len(s.log) + 1,
		From:   from.String(),
		To:     to.String(),
	}
}

// annotate fills the game context into an engine MoveError.
func (s *Session) annotate(err error) error {
	if moveErr, ok := err.(*errors.MoveError); ok {
		moveErr.GameID = s.id
		moveErr.Ply = len(s.log) + 1
	}
	return err
}
