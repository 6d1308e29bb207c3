package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bkga-dev/bkga/pkg/types"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
// Use ":memory:" for an in-memory database (useful for testing).
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddDocument stores a document record.
func (s *SQLiteStore) AddDocument(doc Document) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO documents (id, path, size) VALUES (?, ?, ?)", doc.ID, doc.Path, doc.Size)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// AddAnnotation stores an annotation (deduplicated).
func (s *SQLiteStore) AddAnnotation(a *types.Annotation) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO annotations (
			document_id, structural_id, offset_start, offset_end, message, suggestion,
			severity, category, snippet, start_line, start_column, end_line, end_column
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.DocumentID,
		a.StructuralID,
		a.Issue.Span.Start,
		a.Issue.Span.End,
		a.Issue.Message,
		a.Issue.Suggestion,
		string(a.Issue.Severity),
		a.Issue.Category,
		a.Snippet,
		a.Location.Source.Start.Line,
		a.Location.Source.Start.Column,
		a.Location.Source.End.Line,
		a.Location.Source.End.Column,
	)
	if err != nil {
		return fmt.Errorf("inserting annotation: %w", err)
	}
	return nil
}

const selectAnnotations = `
	SELECT document_id, structural_id, offset_start, offset_end, message, suggestion,
		severity, category, snippet, start_line, start_column, end_line, end_column
	FROM annotations
`

// GetAnnotations retrieves annotations for a document.
func (s *SQLiteStore) GetAnnotations(id types.DocumentID) ([]*types.Annotation, error) {
	return s.queryAnnotations(selectAnnotations+" WHERE document_id = ? ORDER BY id", id)
}

// GetAllAnnotations retrieves all annotations.
func (s *SQLiteStore) GetAllAnnotations() ([]*types.Annotation, error) {
	return s.queryAnnotations(selectAnnotations + " ORDER BY id")
}

func (s *SQLiteStore) queryAnnotations(query string, args ...any) ([]*types.Annotation, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	annotations := make([]*types.Annotation, 0)
	for rows.Next() {
		var a types.Annotation
		var suggestion sql.NullString
		var severity string
		var snippet sql.NullString

		err := rows.Scan(
			&a.DocumentID,
			&a.StructuralID,
			&a.Issue.Span.Start,
			&a.Issue.Span.End,
			&a.Issue.Message,
			&suggestion,
			&severity,
			&a.Issue.Category,
			&snippet,
			&a.Location.Source.Start.Line,
			&a.Location.Source.Start.Column,
			&a.Location.Source.End.Line,
			&a.Location.Source.End.Column,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}

		if suggestion.Valid {
			a.Issue.Suggestion = types.Suggest(suggestion.String)
		}
		a.Issue.Severity = types.Severity(severity)
		a.Snippet = snippet.String
		a.Location.Offset = a.Issue.Span

		annotations = append(annotations, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	return annotations, nil
}

// GetDocuments retrieves all documents ordered by path.
func (s *SQLiteStore) GetDocuments() ([]Document, error) {
	rows, err := s.db.Query("SELECT id, path, size FROM documents ORDER BY path, id")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Size); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DocumentExists checks if a document has already been analysed.
func (s *SQLiteStore) DocumentExists(id types.DocumentID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM documents WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking document existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
