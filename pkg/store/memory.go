package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/bkga-dev/bkga/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
// No CGO dependency required.
type MemoryStore struct {
	mu          sync.RWMutex
	documents   map[string]Document // keyed by DocumentID.Hex()
	annotations []*types.Annotation // insertion order
	seen        map[string]bool     // structural IDs already stored
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		documents:   make(map[string]Document),
		annotations: make([]*types.Annotation, 0),
		seen:        make(map[string]bool),
	}
}

// AddDocument stores a document record.
func (m *MemoryStore) AddDocument(doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := doc.ID.Hex()
	if _, exists := m.documents[key]; exists {
		return nil
	}
	m.documents[key] = doc
	return nil
}

// AddAnnotation stores an annotation (deduplicated).
func (m *MemoryStore) AddAnnotation(a *types.Annotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seen[a.StructuralID] {
		return nil
	}
	m.seen[a.StructuralID] = true
	m.annotations = append(m.annotations, a)
	return nil
}

// GetAnnotations retrieves annotations for a document.
func (m *MemoryStore) GetAnnotations(id types.DocumentID) ([]*types.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Annotation, 0)
	for _, a := range m.annotations {
		if a.DocumentID == id {
			result = append(result, a)
		}
	}
	return result, nil
}

// GetAllAnnotations retrieves all annotations.
func (m *MemoryStore) GetAllAnnotations() ([]*types.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to avoid external modifications
	result := make([]*types.Annotation, len(m.annotations))
	copy(result, m.annotations)
	return result, nil
}

// GetDocuments retrieves all documents ordered by path.
func (m *MemoryStore) GetDocuments() ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Document, 0, len(m.documents))
	for _, doc := range m.documents {
		result = append(result, doc)
	}
	slices.SortFunc(result, func(a, b Document) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.ID.Hex(), b.ID.Hex())
	})
	return result, nil
}

// DocumentExists checks if a document has already been analysed.
func (m *MemoryStore) DocumentExists(id types.DocumentID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.documents[id.Hex()]
	return exists, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
