// optionsfile.go - Default flag values read from a YAML file
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// loadOptionsFile reads a YAML mapping of flag names to values, e.g.
//
//	workers: 4
//	J: true
//	db: /var/lib/chessrules
//
// and sets every flag of fs not already given on the command line.
func loadOptionsFile(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return err
	}
	if err := applyOptions(fs, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// applyOptions sets the unset flags of fs from YAML data.
func applyOptions(fs *flag.FlagSet, data []byte) error {
	var options map[string]interface{}
	if err := yaml.Unmarshal(data, &options); err != nil {
		return err
	}

	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if fs.Lookup(name) == nil || name == "config" {
			return fmt.Errorf("option %q: unknown flag: %w", name, errors.ErrInvalidConfig)
		}
		if given[name] {
			continue
		}
		value := options[name]
		if value == nil {
			return fmt.Errorf("option %q has no value: %w", name, errors.ErrInvalidConfig)
		}
		if err := fs.Set(name, fmt.Sprint(value)); err != nil {
			return fmt.Errorf("option %q: %v: %w", name, err, errors.ErrInvalidConfig)
		}
	}
	return nil
}
