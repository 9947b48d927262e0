// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Position options
	startFEN  = flag.String("fen", "", "Starting position in FEN (default: standard start)")
	movesText = flag.String("moves", "", "Moves to play in coordinate form, e.g. \"e2e4 e7e5 e7e8q\"")
	undoCount = flag.Int("undo", 0, "Undo the last N moves after playing")
	legalFrom = flag.String("legal", "", "List the legal destinations of the piece on this square")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	colourOut  = flag.Bool("color", false, "Colour the board diagram")
	lineLength = flag.Int("w", 80, "Maximum line length of the move log")

	// Storage options
	dataDir   = flag.String("db", "", "Game database directory")
	memoryDB  = flag.Bool("mem", false, "Use an in-memory game database")
	saveID    = flag.String("save", "", "Save the resulting game under this id")
	loadID    = flag.String("load", "", "Start from the game saved under this id")
	listGames = flag.Bool("list", false, "List the ids of saved games")

	// Batch replay
	batchFile  = flag.String("batch", "", "Replay one move log per line from this file")
	workers    = flag.Int("workers", 1, "Number of replay workers")
	bufferSize = flag.Int("buffer", 10, "Replay channel buffer size")
	noDups     = flag.Bool("nodups", false, "Don't flag games ending in an already seen position")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to this file")
	verbosity = flag.Int("v", config.Normal, "Verbosity: 0=errors only, 1=summary, 2=commentary")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Options file
	configFile = flag.String("config", "", "Read default flag values from this YAML file")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies the parsed flags into cfg.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyStorageFlags(cfg)
	applyReplayFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = config.Quiet
	}
}

// applyOutputFlags configures output format settings.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.Colour = *colourOut
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = *lineLength
	}
}

// applyStorageFlags configures the game store.
func applyStorageFlags(cfg *config.Config) {
	cfg.Storage.DataDir = *dataDir
	cfg.Storage.InMemory = *memoryDB
	cfg.Storage.SaveID = *saveID
	cfg.Storage.LoadID = *loadID
}

// applyReplayFlags configures batch replay.
func applyReplayFlags(cfg *config.Config) {
	cfg.Replay.BatchFile = *batchFile
	cfg.Replay.Workers = *workers
	cfg.Replay.BufferSize = *bufferSize
	cfg.Replay.DetectDuplicates = !*noDups
}

// gameOptionsFromFlags collects the single-game flags.
func gameOptionsFromFlags() gameOptions {
	return gameOptions{
		FEN:   *startFEN,
		Moves: *movesText,
		Undo:  *undoCount,
		Legal: *legalFrom,
	}
}
