// Package enum discovers documents to annotate on the local filesystem.
package enum

import (
	"context"

	"github.com/bkga-dev/bkga/pkg/types"
)

// Callback receives a document's path, content and content ID.
// It may be invoked from several goroutines at once.
type Callback func(path string, content []byte, id types.DocumentID) error

// Enumerator discovers documents from a source.
type Enumerator interface {
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration. A file is yielded as is.
	Root string

	// Include lists glob patterns matched against file base names.
	// Empty includes every text file.
	Include []string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Workers bounds parallel file reads (0 = number of CPUs).
	Workers int
}
