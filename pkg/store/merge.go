package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// MergeConfig configures the merge operation.
type MergeConfig struct {
	// SourcePaths are the database files to merge from.
	SourcePaths []string
	// DestPath is the destination database file.
	DestPath string
}

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	DocumentsMerged   int
	AnnotationsMerged int
	SourcesProcessed  int
}

// Merge combines multiple bkga databases into one.
// Deduplication is handled via INSERT OR IGNORE on document and structural IDs.
func Merge(cfg MergeConfig) (*MergeStats, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, fmt.Errorf("no source databases specified")
	}
	if cfg.DestPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	destDB, err := sql.Open("sqlite3", cfg.DestPath)
	if err != nil {
		return nil, fmt.Errorf("opening destination database: %w", err)
	}
	defer destDB.Close()

	if err := CreateSchema(destDB); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	stats := &MergeStats{}

	for _, sourcePath := range cfg.SourcePaths {
		sourceStats, err := mergeFrom(destDB, sourcePath)
		if err != nil {
			return stats, fmt.Errorf("merging from %s: %w", sourcePath, err)
		}
		stats.DocumentsMerged += sourceStats.DocumentsMerged
		stats.AnnotationsMerged += sourceStats.AnnotationsMerged
		stats.SourcesProcessed++
	}

	return stats, nil
}

// mergeFrom copies data from a source database to the destination.
func mergeFrom(destDB *sql.DB, sourcePath string) (*MergeStats, error) {
	sourceDB, err := sql.Open("sqlite3", sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer sourceDB.Close()

	stats := &MergeStats{}

	tx, err := destDB.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	docCount, err := mergeDocuments(tx, sourceDB)
	if err != nil {
		return nil, fmt.Errorf("merging documents: %w", err)
	}
	stats.DocumentsMerged = docCount

	annotationCount, err := mergeAnnotations(tx, sourceDB)
	if err != nil {
		return nil, fmt.Errorf("merging annotations: %w", err)
	}
	stats.AnnotationsMerged = annotationCount

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return stats, nil
}

func mergeDocuments(tx *sql.Tx, sourceDB *sql.DB) (int, error) {
	rows, err := sourceDB.Query("SELECT id, path, size FROM documents")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO documents (id, path, size) VALUES (?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for rows.Next() {
		var id, path string
		var size int64
		if err := rows.Scan(&id, &path, &size); err != nil {
			return count, err
		}
		result, err := stmt.Exec(id, path, size)
		if err != nil {
			return count, err
		}
		affected, _ := result.RowsAffected()
		if affected > 0 {
			count++
		}
	}
	return count, rows.Err()
}

func mergeAnnotations(tx *sql.Tx, sourceDB *sql.DB) (int, error) {
	rows, err := sourceDB.Query(`
		SELECT document_id, structural_id, offset_start, offset_end, message, suggestion,
		       severity, category, snippet, start_line, start_column, end_line, end_column
		FROM annotations
		ORDER BY id
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO annotations
		(document_id, structural_id, offset_start, offset_end, message, suggestion,
		 severity, category, snippet, start_line, start_column, end_line, end_column)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for rows.Next() {
		var documentID, structuralID, message, severity, category string
		var offsetStart, offsetEnd int64
		var suggestion, snippet *string
		var startLine, startColumn, endLine, endColumn *int64

		if err := rows.Scan(&documentID, &structuralID, &offsetStart, &offsetEnd, &message, &suggestion,
			&severity, &category, &snippet, &startLine, &startColumn, &endLine, &endColumn); err != nil {
			return count, err
		}
		result, err := stmt.Exec(documentID, structuralID, offsetStart, offsetEnd, message, suggestion,
			severity, category, snippet, startLine, startColumn, endLine, endColumn)
		if err != nil {
			return count, err
		}
		affected, _ := result.RowsAffected()
		if affected > 0 {
			count++
		}
	}
	return count, rows.Err()
}
