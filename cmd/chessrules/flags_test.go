package main

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

// saveRestoreBool sets a bool flag and returns a func restoring it.
// Usage: defer saveRestoreBool(jsonOutput, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyOutputFlags(t *testing.T) {
	t.Run("json and colour", func(t *testing.T) {
		defer saveRestoreBool(jsonOutput, true)()
		defer saveRestoreBool(colourOut, true)()
		cfg := config.NewConfig()
		applyOutputFlags(cfg)
		if !cfg.Output.JSONFormat {
			t.Error("JSONFormat = false; want true")
		}
		if !cfg.Output.Colour {
			t.Error("Colour = false; want true")
		}
	})

	t.Run("line length", func(t *testing.T) {
		defer saveRestoreInt(lineLength, 40)()
		cfg := config.NewConfig()
		applyOutputFlags(cfg)
		if cfg.Output.MaxLineLength != 40 {
			t.Errorf("MaxLineLength = %d; want 40", cfg.Output.MaxLineLength)
		}
	})

	t.Run("non-positive line length keeps default", func(t *testing.T) {
		defer saveRestoreInt(lineLength, 0)()
		cfg := config.NewConfig()
		applyOutputFlags(cfg)
		if cfg.Output.MaxLineLength != 80 {
			t.Errorf("MaxLineLength = %d; want 80", cfg.Output.MaxLineLength)
		}
	})
}

func TestApplyStorageFlags(t *testing.T) {
	defer saveRestoreString(dataDir, "/tmp/games")()
	defer saveRestoreBool(memoryDB, false)()
	defer saveRestoreString(saveID, "after")()
	defer saveRestoreString(loadID, "before")()

	cfg := config.NewConfig()
	applyStorageFlags(cfg)

	if cfg.Storage.DataDir != "/tmp/games" {
		t.Errorf("DataDir = %q; want /tmp/games", cfg.Storage.DataDir)
	}
	if cfg.Storage.SaveID != "after" || cfg.Storage.LoadID != "before" {
		t.Errorf("SaveID, LoadID = %q, %q; want after, before", cfg.Storage.SaveID, cfg.Storage.LoadID)
	}
	if !cfg.Storage.Enabled() {
		t.Error("Storage.Enabled() = false; want true")
	}
}

func TestApplyReplayFlags(t *testing.T) {
	defer saveRestoreString(batchFile, "games.txt")()
	defer saveRestoreInt(workers, 4)()
	defer saveRestoreInt(bufferSize, 32)()
	defer saveRestoreBool(noDups, true)()

	cfg := config.NewConfig()
	applyReplayFlags(cfg)

	if cfg.Replay.BatchFile != "games.txt" {
		t.Errorf("BatchFile = %q; want games.txt", cfg.Replay.BatchFile)
	}
	if cfg.Replay.Workers != 4 || cfg.Replay.BufferSize != 32 {
		t.Errorf("Workers, BufferSize = %d, %d; want 4, 32", cfg.Replay.Workers, cfg.Replay.BufferSize)
	}
	if cfg.Replay.DetectDuplicates {
		t.Error("DetectDuplicates = true; want false with -nodups")
	}
}

func TestApplyFlags_Verbosity(t *testing.T) {
	t.Run("level from -v", func(t *testing.T) {
		defer saveRestoreInt(verbosity, config.Verbose)()
		defer saveRestoreBool(quiet, false)()
		cfg := config.NewConfig()
		applyFlags(cfg)
		if cfg.Verbosity != config.Verbose {
			t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, config.Verbose)
		}
	})

	t.Run("-s overrides -v", func(t *testing.T) {
		defer saveRestoreInt(verbosity, config.Verbose)()
		defer saveRestoreBool(quiet, true)()
		cfg := config.NewConfig()
		applyFlags(cfg)
		if cfg.Verbosity != config.Quiet {
			t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, config.Quiet)
		}
	})
}

func TestGameOptionsFromFlags(t *testing.T) {
	defer saveRestoreString(startFEN, "8/8/8/8/8/8/8/K6k w - - 0 1")()
	defer saveRestoreString(movesText, "a1a2")()
	defer saveRestoreInt(undoCount, 1)()
	defer saveRestoreString(legalFrom, "a2")()

	got := gameOptionsFromFlags()
	want := gameOptions{FEN: "8/8/8/8/8/8/8/K6k w - - 0 1", Moves: "a1a2", Undo: 1, Legal: "a2"}
	if got != want {
		t.Errorf("gameOptionsFromFlags() = %+v; want %+v", got, want)
	}
}
