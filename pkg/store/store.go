// Package store persists analysed documents and their annotations.
package store

import (
	"github.com/bkga-dev/bkga/pkg/types"
)

// Document is an analysed document snapshot.
type Document struct {
	ID   types.DocumentID `json:"id"`
	Path string           `json:"path"`
	Size int64            `json:"size"`
}

// Store provides persistence for annotation results.
type Store interface {
	// AddDocument stores a document record. Re-adding a known ID is a no-op.
	AddDocument(doc Document) error

	// AddAnnotation stores an annotation (deduplicated by structural ID).
	AddAnnotation(a *types.Annotation) error

	// GetAnnotations retrieves annotations for a document in insertion order.
	GetAnnotations(id types.DocumentID) ([]*types.Annotation, error)

	// GetAllAnnotations retrieves every annotation (for JSON and SARIF export).
	GetAllAnnotations() ([]*types.Annotation, error)

	// GetDocuments retrieves all documents ordered by path.
	GetDocuments() ([]Document, error)

	// DocumentExists checks if a document snapshot has already been analysed.
	DocumentExists(id types.DocumentID) (bool, error)

	// Close releases the backend.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store.
	Path string
}

// MemoryPath selects the in-memory backend.
const MemoryPath = ":memory:"
