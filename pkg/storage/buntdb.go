// Package storage persists per-instrument TradeState across process
// restarts using BuntDB, and offers an optional GORM-backed decision
// journal. Neither is part of the strategy core: the core takes a
// TradeState in and returns one out, and never touches a disk itself.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/buntdb"

	"github.com/raykavin/strategycore/pkg/core"
)

// StateStore persists one core.TradeState per instrument pair, keyed
// by pair name, in an embedded KV store.
type StateStore struct {
	db *buntdb.DB
}

// FromMemory opens a StateStore backed by an in-memory BuntDB, for
// tests and backtests that never need to survive a restart.
func FromMemory() (*StateStore, error) {
	return NewStateStore(":memory:")
}

// FromFile opens a StateStore backed by a BuntDB file on disk.
func FromFile(path string) (*StateStore, error) {
	return NewStateStore(path)
}

// NewStateStore opens (creating if absent) a BuntDB-backed StateStore
// at sourceFile.
func NewStateStore(sourceFile string) (*StateStore, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}
	return &StateStore{db: db}, nil
}

// Save persists the TradeState for pair, overwriting any prior value.
func (s *StateStore) Save(pair string, state core.TradeState) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		content, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to marshal trade state: %w", err)
		}
		_, _, err = tx.Set(pair, string(content), nil)
		if err != nil {
			return fmt.Errorf("failed to store trade state: %w", err)
		}
		return nil
	})
}

// Load returns the persisted TradeState for pair, or core.FlatState()
// if none has ever been saved.
func (s *StateStore) Load(pair string) (core.TradeState, error) {
	var state core.TradeState

	err := s.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(pair)
		if err != nil {
			if err == buntdb.ErrNotFound {
				state = core.FlatState()
				return nil
			}
			return fmt.Errorf("failed to read trade state: %w", err)
		}
		return json.Unmarshal([]byte(value), &state)
	})

	return state, err
}

// All returns every persisted (pair, TradeState) currently tracked.
func (s *StateStore) All() (map[string]core.TradeState, error) {
	out := make(map[string]core.TradeState)

	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(key, value string) bool {
			var state core.TradeState
			if err := json.Unmarshal([]byte(value), &state); err != nil {
				return true
			}
			out[key] = state
			return true
		})
	})

	return out, err
}

// Close closes the underlying database handle.
func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
