package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// ReplayFunc returns a ProcessFunc that replays an item's moves from
// its start position.
func ReplayFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{ID: item.ID, Index: item.Index, Moves: item.Moves}

		start := engine.NewGame()
		if item.StartFEN != "" {
			var err error
			start, err = engine.NewGameFromFEN(item.StartFEN)
			if err != nil {
				result.Error = fmt.Errorf("game %s: %w", item.ID, err)
				return result
			}
		}

		state := start
		for i, rec := range item.Moves {
			next, err := engine.ApplyMove(state, rec)
			if err != nil {
				if moveErr, ok := err.(*errors.MoveError); ok {
					moveErr.GameID = item.ID
					moveErr.Ply = i + 1
				}
				result.Error = err
				break
			}
			state = next
			result.Applied++
		}
		result.State = state
		return result
	}
}

// MarkDuplicates records the final position of every successful result
// in dups, walking results in slice order, and flags each one whose
// position an earlier result already reached. It returns the number
// flagged. Call it on the ordered output of Run so the earliest item is
// always the original.
func MarkDuplicates(results []ProcessResult, dups *hashing.RepetitionTable) int {
	marked := 0
	for i := range results {
		if results[i].Error != nil {
			continue
		}
		results[i].Duplicate = dups.Add(results[i].State) > 1
		if results[i].Duplicate {
			marked++
		}
	}
	return marked
}

// Run replays items on a pool configured by opts and returns the
// results in item order. Cancelling ctx stops the pool; items not yet
// replayed are then missing from the results and ctx's error is
// returned alongside them.
func Run(ctx context.Context, items []WorkItem, fn ProcessFunc, opts ...PoolOption) ([]ProcessResult, error) {
	pool := NewPool(fn, opts...)
	pool.Start()

	var g errgroup.Group
	g.Go(func() error {
		defer pool.Close()
		for _, item := range items {
			if err := pool.SubmitContext(ctx, item); err != nil {
				pool.Stop()
				return err
			}
		}
		return nil
	})

	results := make([]ProcessResult, 0, len(items))
	for result := range pool.Results() {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results, g.Wait()
}

// ParseBatch reads one move log per line. A line is either
//
//	moves
//	id | moves
//	id | fen | moves
//
// with moves in coordinate form ("e2e4 e7e5 e7e8q"). Blank lines and
// lines starting with '#' are skipped. Lines without an id are named by
// their line number.
func ParseBatch(r io.Reader) ([]WorkItem, error) {
	var items []WorkItem
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		item := WorkItem{ID: fmt.Sprintf("line%d", lineNo), Index: len(items)}
		var movesText string
		switch len(parts) {
		case 1:
			movesText = parts[0]
		case 2:
			item.ID, movesText = parts[0], parts[1]
		case 3:
			item.ID, item.StartFEN, movesText = parts[0], parts[1], parts[2]
		default:
			return nil, fmt.Errorf("line %d: expected at most 3 fields, got %d", lineNo, len(parts))
		}

		moves, err := engine.ParseMoveList(movesText)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		item.Moves = moves
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
