package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ReplayConfig holds settings for batch replay.
type ReplayConfig struct {
	// BatchFile holds one move log per line; empty disables batch mode
	BatchFile string

	// Workers is the number of replay goroutines
	Workers int

	// BufferSize is the work and result channel capacity
	BufferSize int

	// DetectDuplicates flags games ending in an already seen position
	DetectDuplicates bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		Workers:          1,
		BufferSize:       10,
		DetectDuplicates: true,
	}
}

// Validate checks worker and buffer counts.
func (c *ReplayConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("buffer size must be at least 1, got %d: %w", c.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
