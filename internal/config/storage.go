package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// StorageConfig holds settings for the game store.
type StorageConfig struct {
	// DataDir is the Badger database directory; empty disables the store
	DataDir string

	// InMemory keeps the store in memory, ignoring DataDir
	InMemory bool

	// SaveID stores the final game under this id
	SaveID string

	// LoadID starts from the game stored under this id
	LoadID string
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{}
}

// Enabled reports whether a store should be opened.
func (c *StorageConfig) Enabled() bool {
	return c.InMemory || c.DataDir != ""
}

// Validate checks that save and load have somewhere to go.
func (c *StorageConfig) Validate() error {
	if (c.SaveID != "" || c.LoadID != "") && !c.Enabled() {
		return fmt.Errorf("save or load needs a data directory: %w", errors.ErrInvalidConfig)
	}
	return nil
}
