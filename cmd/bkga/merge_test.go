//go:build cgo

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkga-dev/bkga/pkg/store"
	"github.com/bkga-dev/bkga/pkg/types"
)

// newMergeCmd creates a fresh merge command for testing
func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <source1.db> <source2.db> [source3.db...]",
		Short: "Merge multiple bkga databases",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runMerge,
	}
	cmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output database path")
	return cmd
}

// writeSource creates a database holding one document and one annotation.
func writeSource(t *testing.T, path, content string) types.DocumentID {
	t.Helper()
	s, err := store.NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	id := types.ComputeDocumentID([]byte(content))
	require.NoError(t, s.AddDocument(store.Document{ID: id, Path: "doc.md", Size: int64(len(content))}))

	issue := types.Issue{
		Span:       types.Span{Start: 0, End: 2},
		Message:    "SPELLING: 맞춤법 오류",
		Suggestion: types.Suggest("돼요"),
		Severity:   types.SeverityWarning,
		Category:   types.CategorySpelling,
	}
	require.NoError(t, s.AddAnnotation(types.NewAnnotation(id, types.NewText(content), issue)))
	return id
}

func TestMergeCmd_RequiresMinimumArgs(t *testing.T) {
	// Test with no args - the Args validator should reject
	cmd := newMergeCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg")

	// Test with one arg
	cmd = newMergeCmd()
	cmd.SetArgs([]string{"source1.db"})
	err = cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg")
}

func TestMergeCmd_MergesTwoDatabases(t *testing.T) {
	tmpDir := t.TempDir()

	source1Path := filepath.Join(tmpDir, "source1.db")
	id1 := writeSource(t, source1Path, "되요 첫째")
	source2Path := filepath.Join(tmpDir, "source2.db")
	id2 := writeSource(t, source2Path, "되요 둘째")

	destPath := filepath.Join(tmpDir, "merged.db")
	var buf bytes.Buffer
	cmd := newMergeCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{source1Path, source2Path, "--output", destPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Merge complete")
	assert.Contains(t, output, "Sources processed: 2")
	assert.Contains(t, output, "Documents merged: 2")
	assert.Contains(t, output, "Annotations merged: 2")

	dest, err := store.NewSQLite(destPath)
	require.NoError(t, err)
	defer dest.Close()

	exists1, err := dest.DocumentExists(id1)
	require.NoError(t, err)
	assert.True(t, exists1)
	exists2, err := dest.DocumentExists(id2)
	require.NoError(t, err)
	assert.True(t, exists2)
}

func TestMergeCmd_ReportsDeduplication(t *testing.T) {
	tmpDir := t.TempDir()

	source1Path := filepath.Join(tmpDir, "source1.db")
	writeSource(t, source1Path, "되요 같은 문서")
	source2Path := filepath.Join(tmpDir, "source2.db")
	writeSource(t, source2Path, "되요 같은 문서")

	destPath := filepath.Join(tmpDir, "merged.db")
	var buf bytes.Buffer
	cmd := newMergeCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{source1Path, source2Path, "--output", destPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Documents merged: 1")
	assert.Contains(t, output, "Annotations merged: 1")
}

func TestMergeCmd_FailsWithInvalidSource(t *testing.T) {
	tmpDir := t.TempDir()

	destPath := filepath.Join(tmpDir, "merged.db")
	cmd := newMergeCmd()
	cmd.SetArgs([]string{"/nonexistent/source1.db", "/nonexistent/source2.db", "--output", destPath})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "merge failed")
}
