// chessrules plays, replays and stores chess games under the standard rules.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/store"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	if *configFile != "" {
		if err := loadOptionsFile(flag.CommandLine, *configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading options file: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	db, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game store: %v\n", err)
		os.Exit(1)
	}

	err = dispatch(cfg, db)
	if db != nil {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dispatch runs the command selected by the flags.
func dispatch(cfg *config.Config, db *store.Store) error {
	switch {
	case *listGames:
		return listStoredGames(cfg, db)
	case cfg.Replay.BatchFile != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		summary, err := runBatch(ctx, cfg, db)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d game(s) failed to replay", summary.Failed, summary.Games)
		}
		return nil
	default:
		return runGame(cfg, db, gameOptionsFromFlags())
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays chess moves under the standard rules and reports the resulting position.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are given in coordinate form: from square, to square and an\n")
	fmt.Fprintf(os.Stderr, "optional promotion letter (q, r, b, n), e.g. \"e2e4 e7e5 g1f3\".\n")
	fmt.Fprintf(os.Stderr, "\nBatch files (-batch) hold one game per line:\n")
	fmt.Fprintf(os.Stderr, "  moves\n")
	fmt.Fprintf(os.Stderr, "  id | moves\n")
	fmt.Fprintf(os.Stderr, "  id | fen | moves\n")
}
