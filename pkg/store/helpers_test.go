package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkga-dev/bkga/pkg/types"
)

func testDocument(path, content string) (Document, *types.Text) {
	return Document{
		ID:   types.ComputeDocumentID([]byte(content)),
		Path: path,
		Size: int64(len(content)),
	}, types.NewText(content)
}

func testAnnotations(doc Document, text *types.Text) []*types.Annotation {
	return []*types.Annotation{
		types.NewAnnotation(doc.ID, text, types.Issue{
			Span:       types.Span{Start: 0, End: 2},
			Message:    "SPELLING: 되요",
			Suggestion: types.Suggest("돼요"),
			Severity:   types.SeverityWarning,
			Category:   types.CategorySpelling,
		}),
		types.NewAnnotation(doc.ID, text, types.Issue{
			Span:     types.Span{Start: 2, End: 4},
			Message:  "extra whitespace.",
			Severity: types.SeverityInfo,
			Category: types.CategorySpacing,
		}),
	}
}

// storeContract exercises behaviour every backend shares.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	doc, text := testDocument("docs/a.md", "되요  끝")
	other, otherText := testDocument("b.txt", "다른 문서")

	exists, err := s.DocumentExists(doc.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.AddDocument(doc))
	require.NoError(t, s.AddDocument(doc))
	require.NoError(t, s.AddDocument(other))

	for _, a := range testAnnotations(doc, text) {
		require.NoError(t, s.AddAnnotation(a))
		require.NoError(t, s.AddAnnotation(a))
	}
	require.NoError(t, s.AddAnnotation(types.NewAnnotation(other.ID, otherText, types.Issue{
		Span: types.Span{Start: 0, End: 2}, Message: "m", Severity: types.SeverityError, Category: types.CategoryUnknown,
	})))

	exists, err = s.DocumentExists(doc.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	docs, err := s.GetDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b.txt", docs[0].Path)
	assert.Equal(t, "docs/a.md", docs[1].Path)
	assert.Equal(t, doc, docs[1])

	got, err := s.GetAnnotations(doc.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "되요", got[0].Snippet)
	assert.Equal(t, "돼요", got[0].Issue.SuggestionText())
	assert.Equal(t, types.SeverityWarning, got[0].Issue.Severity)
	assert.False(t, got[1].Issue.HasSuggestion())
	assert.Equal(t, 3, got[1].Location.Source.Start.Column)

	all, err := s.GetAllAnnotations()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.GetAnnotations(types.ComputeDocumentID([]byte("unknown")))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
