//go:build !wasm && cgo

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_Interface(t *testing.T) {
	var _ Store = (*SQLiteStore)(nil)
}

func TestSQLite_Contract(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "bkga.db"))
	require.NoError(t, err)
	defer s.Close()
	storeContract(t, s)
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bkga.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	doc, text := testDocument("a.md", "되요  끝")
	require.NoError(t, s.AddDocument(doc))
	for _, a := range testAnnotations(doc, text) {
		require.NoError(t, s.AddAnnotation(a))
	}
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetAnnotations(doc.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, testAnnotations(doc, text)[0].StructuralID, got[0].StructuralID)
	assert.Equal(t, got[0].Issue.Span, got[0].Location.Offset)
}

func TestNew_Paths(t *testing.T) {
	s, err := New(Config{Path: MemoryPath})
	require.NoError(t, err)
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	s, err = New(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	_, ok = s.(*SQLiteStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	_, err = New(Config{Path: ""})
	assert.ErrorContains(t, err, "path is required")
}
