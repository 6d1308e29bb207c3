package types

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// Annotation is an issue resolved against the document it was reported on.
type Annotation struct {
	DocumentID   DocumentID `json:"document_id"`
	StructuralID string     `json:"structural_id"` // SHA-1(document_id + '\0' + start + '\0' + end + '\0' + category + '\0' + message + '\0' + suggestion)
	Issue        Issue      `json:"issue"`
	Location     Location   `json:"location"`
	Snippet      string     `json:"snippet"`
}

// NewAnnotation resolves issue against text.
func NewAnnotation(id DocumentID, text *Text, issue Issue) *Annotation {
	a := &Annotation{
		DocumentID: id,
		Issue:      issue,
		Location:   text.Location(issue.Span),
		Snippet:    text.Slice(issue.Span),
	}
	a.StructuralID = a.ComputeStructuralID()
	return a
}

// ComputeStructuralID computes a content-based ID so that re-running an
// analysis over an unchanged document stores each issue once.
func (a *Annotation) ComputeStructuralID() string {
	h := sha1.New()

	h.Write(a.DocumentID[:])
	h.Write([]byte{0})

	h.Write([]byte(strconv.Itoa(a.Issue.Span.Start)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(a.Issue.Span.End)))
	h.Write([]byte{0})

	h.Write([]byte(a.Issue.Category))
	h.Write([]byte{0})
	h.Write([]byte(a.Issue.Message))
	h.Write([]byte{0})

	// a missing suggestion and an empty one hash differently
	if a.Issue.Suggestion != nil {
		h.Write([]byte{1})
		h.Write([]byte(*a.Issue.Suggestion))
	}

	return hex.EncodeToString(h.Sum(nil))
}
