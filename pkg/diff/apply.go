package diff

import (
	"errors"

	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	// ErrNoSuggestion is returned when an issue carries no replacement.
	ErrNoSuggestion = errors.New("issue has no suggestion")
	// ErrInvalidSpan is returned when an issue does not fit the text.
	ErrInvalidSpan = errors.New("issue span is outside the text")
)

// Apply writes the issue's suggestion over its span and returns the new
// text. An empty suggestion deletes the span.
func Apply(text string, issue types.Issue) (string, error) {
	if !issue.HasSuggestion() {
		return "", ErrNoSuggestion
	}
	doc := types.NewText(text)
	if !issue.Span.ValidIn(doc.Len()) {
		return "", ErrInvalidSpan
	}
	return doc.Replace(issue.Span, issue.SuggestionText()), nil
}
