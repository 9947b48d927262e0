// game.go - Single-game and batch replay commands
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/session"
	"github.com/lgbarn/chess-rules-go/internal/store"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// defaultGameID names a game that is neither loaded nor saved.
const defaultGameID = "game"

// gameOptions holds the single-game command inputs.
type gameOptions struct {
	FEN   string
	Moves string
	Undo  int
	Legal string
}

// batchSummary counts the outcome of a batch replay.
type batchSummary struct {
	Games      int
	Failed     int
	Duplicates int
}

// openStore opens the configured game database, or returns nil when
// storage is off.
func openStore(cfg *config.Config) (*store.Store, error) {
	switch {
	case cfg.Storage.InMemory:
		cfg.Logf(config.Verbose, "Opening in-memory game store\n")
		return store.OpenInMemory()
	case cfg.Storage.DataDir != "":
		cfg.Logf(config.Verbose, "Opening game store %s\n", cfg.Storage.DataDir)
		return store.Open(cfg.Storage.DataDir)
	default:
		return nil, nil
	}
}

// newStateWriter picks the writer for the configured output format.
// Batch JSON output is collected into one document.
func newStateWriter(cfg *config.Config, batch bool) output.StateWriter {
	if cfg.Output.JSONFormat {
		if batch {
			return output.NewJSONWriter(cfg.OutputFile)
		}
		return output.NewJSONWriterSingle(cfg.OutputFile)
	}
	return output.NewDiagramWriter(cfg.OutputFile, cfg.Output.Colour, cfg.Output.MaxLineLength)
}

// gameID returns the id the single game is saved under.
func gameID(cfg *config.Config) string {
	switch {
	case cfg.Storage.SaveID != "":
		return cfg.Storage.SaveID
	case cfg.Storage.LoadID != "":
		return cfg.Storage.LoadID
	default:
		return defaultGameID
	}
}

// startSession builds the session the moves are played into: a stored
// game, a FEN position, or the standard start.
func startSession(cfg *config.Config, db *store.Store, fen string) (*session.Session, error) {
	id := gameID(cfg)

	if cfg.Storage.LoadID != "" {
		rec, err := db.Load(cfg.Storage.LoadID)
		if err != nil {
			return nil, err
		}
		cfg.Logf(config.Verbose, "Loaded game %s (%d moves)\n", rec.ID, len(rec.Moves))
		rec.ID = id
		return store.RestoreSession(rec)
	}

	start := engine.NewGame()
	if fen != "" {
		var err error
		start, err = engine.NewGameFromFEN(fen)
		if err != nil {
			return nil, err
		}
	}
	return session.NewFromState(id, start), nil
}

// runGame plays one game as described by opts and writes the final
// position.
func runGame(cfg *config.Config, db *store.Store, opts gameOptions) error {
	if opts.FEN != "" && cfg.Storage.LoadID != "" {
		return fmt.Errorf("-fen and -load cannot be combined: %w", errors.ErrInvalidConfig)
	}
	if opts.Undo < 0 {
		return fmt.Errorf("undo count %d is negative: %w", opts.Undo, errors.ErrInvalidConfig)
	}

	moves, err := engine.ParseMoveList(opts.Moves)
	if err != nil {
		return err
	}

	sess, err := startSession(cfg, db, opts.FEN)
	if err != nil {
		return err
	}

	for _, rec := range moves {
		state, err := sess.Apply(rec)
		if err != nil {
			return err
		}
		cfg.Logf(config.Verbose, "%d. %s: %s\n", sess.Ply(), rec, state.Status)
	}

	for i := 0; i < opts.Undo; i++ {
		if _, err := sess.Undo(); err != nil {
			return err
		}
	}
	if opts.Undo > 0 {
		cfg.Logf(config.Verbose, "Undid %d move(s)\n", opts.Undo)
	}

	if opts.Legal != "" {
		if err := writeLegalMoves(cfg, sess, opts.Legal); err != nil {
			return err
		}
	}

	if cfg.Storage.SaveID != "" {
		if err := db.SaveSession(sess); err != nil {
			return err
		}
		cfg.Logf(config.Normal, "Saved game %s after %d move(s).\n", sess.ID(), sess.Ply())
	}

	w := newStateWriter(cfg, false)
	view := output.GameView{
		ID:          sess.ID(),
		State:       sess.Snapshot(),
		Moves:       sess.Log(),
		Repetitions: sess.Repetitions(),
	}
	if err := w.WriteState(view); err != nil {
		return err
	}
	return w.Close()
}

// writeLegalMoves prints the destinations of the piece on text.
func writeLegalMoves(cfg *config.Config, sess *session.Session, text string) error {
	from, err := chess.ParseSquare(text)
	if err != nil {
		return err
	}
	set, err := sess.LegalMoves(from)
	if err != nil {
		return err
	}

	names := make([]string, 0, set.Len())
	for _, sq := range set.Squares() {
		names = append(names, sq.String())
	}
	_, err = fmt.Fprintf(cfg.OutputFile, "%s: %s\n", from, strings.Join(names, " "))
	return err
}

// runBatch replays every move log in the batch file on the worker pool.
// Games that fail are reported to the log and skipped. When db is
// non-nil every replayed game is saved under its id.
func runBatch(ctx context.Context, cfg *config.Config, db *store.Store) (batchSummary, error) {
	var summary batchSummary

	file, err := os.Open(cfg.Replay.BatchFile) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return summary, err
	}
	defer file.Close() //nolint:errcheck // read-only

	items, err := worker.ParseBatch(file)
	if err != nil {
		return summary, fmt.Errorf("%s: %w", cfg.Replay.BatchFile, err)
	}
	cfg.Logf(config.Verbose, "Replaying %d game(s) on %d worker(s)\n", len(items), cfg.Replay.Workers)

	results, runErr := worker.Run(ctx, items, worker.ReplayFunc(),
		worker.WithWorkers(cfg.Replay.Workers),
		worker.WithBufferSize(cfg.Replay.BufferSize))
	if cfg.Replay.DetectDuplicates {
		worker.MarkDuplicates(results, hashing.NewRepetitionTable(0))
	}

	w := newStateWriter(cfg, true)
	for _, result := range results {
		summary.Games++
		if result.Error != nil {
			summary.Failed++
			cfg.Logf(config.Quiet, "%v\n", result.Error)
			continue
		}
		if result.Duplicate {
			summary.Duplicates++
			cfg.Logf(config.Verbose, "%s: duplicate final position\n", result.ID)
		}

		view := output.GameView{ID: result.ID, State: result.State, Moves: result.Moves[:result.Applied]}
		if err := w.WriteState(view); err != nil {
			return summary, err
		}

		if db != nil {
			if err := db.Save(batchRecord(items[result.Index], result)); err != nil {
				return summary, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return summary, err
	}

	if cfg.Replay.DetectDuplicates {
		cfg.Logf(config.Normal, "%d game(s) replayed, %d duplicate(s), %d failed.\n",
			summary.Games-summary.Failed, summary.Duplicates, summary.Failed)
	} else {
		cfg.Logf(config.Normal, "%d game(s) replayed, %d failed.\n", summary.Games-summary.Failed, summary.Failed)
	}
	return summary, runErr
}

// batchRecord builds the stored form of a replayed batch game.
func batchRecord(item worker.WorkItem, result worker.ProcessResult) store.GameRecord {
	start := item.StartFEN
	if start == "" {
		start = engine.InitialFEN
	}
	return store.GameRecord{
		ID:       result.ID,
		StartFEN: start,
		Moves:    result.Moves[:result.Applied],
		FinalFEN: result.State.FEN(),
		Status:   result.State.Status.String(),
	}
}

// listStoredGames writes one line per saved game: id, status and
// final position.
func listStoredGames(cfg *config.Config, db *store.Store) error {
	if db == nil {
		return fmt.Errorf("-list needs -db or -mem: %w", errors.ErrInvalidConfig)
	}
	ids, err := db.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		rec, err := db.Load(id)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cfg.OutputFile, "%s\t%s\t%d\t%s\n", rec.ID, rec.Status, len(rec.Moves), rec.FinalFEN); err != nil {
			return err
		}
	}
	cfg.Logf(config.Normal, "%d stored game(s).\n", len(ids))
	return nil
}
