// Package store persists games in a Badger key-value database.
//
// A game is stored as its starting FEN plus the committed move log. The
// final FEN and status are kept alongside for listing, but the position
// is always rebuilt by replaying the log.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/session"
)

// keyPrefix namespaces game records within the database.
const keyPrefix = "game/"

// GameRecord is the persisted form of one game.
type GameRecord struct {
	ID        string              `json:"id"`
	StartFEN  string              `json:"start_fen"`
	Moves     []engine.MoveRecord `json:"moves"`
	FinalFEN  string              `json:"final_fen"`
	Status    string              `json:"status"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewRecord captures a session as a record.
func NewRecord(s *session.Session) GameRecord {
	final := s.Snapshot()
	return GameRecord{
		ID:       s.ID(),
		StartFEN: s.Start().FEN(),
		Moves:    s.Log(),
		FinalFEN: final.FEN(),
		Status:   final.Status.String(),
	}
}

// Restore rebuilds the final position of a record by replaying its
// moves from the starting FEN.
func Restore(rec GameRecord) (engine.GameState, error) {
	start, err := engine.NewGameFromFEN(rec.StartFEN)
	if err != nil {
		return engine.GameState{}, fmt.Errorf("game %s: %w", rec.ID, err)
	}
	state, err := engine.ApplyMoves(start, rec.Moves)
	if err != nil {
		return engine.GameState{}, annotate(err, rec.ID)
	}
	if err := checkFinal(rec, state); err != nil {
		return engine.GameState{}, err
	}
	return state, nil
}

// RestoreSession rebuilds a record as a live session with full history.
func RestoreSession(rec GameRecord) (*session.Session, error) {
	start, err := engine.NewGameFromFEN(rec.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", rec.ID, err)
	}
	sess, err := session.Replay(rec.ID, start, rec.Moves)
	if err != nil {
		return nil, err
	}
	if err := checkFinal(rec, sess.Snapshot()); err != nil {
		return nil, err
	}
	return sess, nil
}

// checkFinal compares the replayed position with the FinalFEN stored in
// rec. Records without a FinalFEN are not checked.
func checkFinal(rec GameRecord, state engine.GameState) error {
	if rec.FinalFEN == "" || state.FEN() == rec.FinalFEN {
		return nil
	}
	return fmt.Errorf("game %s: replay ends at %q, record says %q: %w",
		rec.ID, state.FEN(), rec.FinalFEN, errors.ErrInvalidFEN)
}

// Store wraps BadgerDB for game persistence.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens or creates a database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the Store.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes rec under its ID, replacing any earlier version.
func (s *Store) Save(rec GameRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("save: empty game id")
	}
	rec.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// SaveSession saves the current state of a session.
func (s *Store) SaveSession(sess *session.Session) error {
	return s.Save(NewRecord(sess))
}

// Load reads the record stored under id.
func (s *Store) Load(id string) (GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("game %s: %w", id, errors.ErrGameNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return errors.Wrapf(json.Unmarshal(val, &rec), "decode game %s", id)
		})
	})

	return rec, err
}

// Delete removes the record stored under id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("game %s: %w", id, errors.ErrGameNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// List returns the stored game ids in key order.
func (s *Store) List() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(key[len(keyPrefix):]))
		}
		return nil
	})

	return ids, err
}

func gameKey(id string) []byte {
	return []byte(keyPrefix + id)
}

// annotate adds the game id to an engine MoveError.
func annotate(err error, id string) error {
	if moveErr, ok := err.(*errors.MoveError); ok {
		moveErr.GameID = id
	}
	return err
}
