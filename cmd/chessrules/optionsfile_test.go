package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// newTestFlagSet mirrors a few of the command's flags.
func newTestFlagSet() (*flag.FlagSet, *int, *bool, *string) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	w := fs.Int("workers", 1, "")
	j := fs.Bool("J", false, "")
	db := fs.String("db", "", "")
	fs.String("config", "", "")
	return fs, w, j, db
}

func TestApplyOptions(t *testing.T) {
	t.Run("sets unset flags", func(t *testing.T) {
		fs, w, j, db := newTestFlagSet()
		testutil.AssertNoError(t, fs.Parse(nil))

		data := "# defaults\nworkers: 4\nJ: true\ndb: /tmp/games\n"
		testutil.AssertNoError(t, applyOptions(fs, []byte(data)))

		testutil.AssertEqual(t, *w, 4)
		testutil.AssertEqual(t, *j, true)
		testutil.AssertEqual(t, *db, "/tmp/games")
	})

	t.Run("command line wins", func(t *testing.T) {
		fs, w, _, db := newTestFlagSet()
		testutil.AssertNoError(t, fs.Parse([]string{"-workers", "2"}))

		testutil.AssertNoError(t, applyOptions(fs, []byte("workers: 8\ndb: games\n")))

		testutil.AssertEqual(t, *w, 2)
		testutil.AssertEqual(t, *db, "games")
	})

	t.Run("empty file", func(t *testing.T) {
		fs, w, _, _ := newTestFlagSet()
		testutil.AssertNoError(t, applyOptions(fs, nil))
		testutil.AssertEqual(t, *w, 1)
	})
}

func TestApplyOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown flag", "threads: 4\n"},
		{"nested config", "config: other.yaml\n"},
		{"missing value", "workers:\n"},
		{"wrong type", "workers: many\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _, _, _ := newTestFlagSet()
			err := applyOptions(fs, []byte(tt.data))
			testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidConfig)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		fs, _, _, _ := newTestFlagSet()
		if err := applyOptions(fs, []byte("workers: [4\n")); err == nil {
			t.Error("applyOptions() expected error for malformed YAML, got nil")
		}
	})
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chessrules.yaml")
	if err := os.WriteFile(path, []byte("J: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs, _, j, _ := newTestFlagSet()
	testutil.AssertNoError(t, loadOptionsFile(fs, path))
	testutil.AssertTrue(t, *j, "J not set from file")

	if err := loadOptionsFile(fs, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("loadOptionsFile() expected error for a missing file, got nil")
	}
}
