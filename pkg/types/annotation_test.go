package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnotation(t *testing.T) {
	text := NewText("첫 줄\n되요 문장")
	id := ComputeDocumentID([]byte(text.String()))
	issue := Issue{
		Span:       Span{Start: 4, End: 6},
		Message:    "SPELLING: 되요",
		Suggestion: Suggest("돼요"),
		Severity:   SeverityWarning,
		Category:   CategorySpelling,
	}

	a := NewAnnotation(id, text, issue)
	require.NotNil(t, a)
	assert.Equal(t, id, a.DocumentID)
	assert.Equal(t, "되요", a.Snippet)
	assert.Equal(t, SourcePoint{Line: 2, Column: 1}, a.Location.Source.Start)
	assert.Equal(t, SourcePoint{Line: 2, Column: 3}, a.Location.Source.End)
	assert.Len(t, a.StructuralID, 40)
	assert.Equal(t, a.StructuralID, a.ComputeStructuralID())
}

func TestAnnotation_StructuralIDDistinguishesIssues(t *testing.T) {
	text := NewText("a  b")
	id := ComputeDocumentID([]byte(text.String()))
	base := Issue{Span: Span{Start: 1, End: 3}, Message: "m", Category: CategorySpacing}

	withSpace := base
	withSpace.Suggestion = Suggest(" ")
	withEmpty := base
	withEmpty.Suggestion = Suggest("")
	shifted := base
	shifted.Span = Span{Start: 2, End: 3}

	ids := map[string]bool{}
	for _, issue := range []Issue{base, withSpace, withEmpty, shifted} {
		ids[NewAnnotation(id, text, issue).StructuralID] = true
	}
	assert.Len(t, ids, 4)

	// same input, same ID
	assert.Equal(t, NewAnnotation(id, text, base).StructuralID, NewAnnotation(id, text, base).StructuralID)
}
