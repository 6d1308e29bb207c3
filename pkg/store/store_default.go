//go:build !wasm && cgo

package store

import "fmt"

// New creates a store for native builds.
// ":memory:" selects MemoryStore; file paths open SQLite.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
