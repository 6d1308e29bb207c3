// Package heuristic is the offline analyzer used when no external corrector
// result is available. It only knows about whitespace.
package heuristic

import (
	"github.com/bkga-dev/bkga/pkg/types"
)

const (
	// MessageExtraSpace is reported for runs of two or more spaces.
	MessageExtraSpace = "extra whitespace."
	// MessageTrailingSpace is reported for spaces before a line break.
	MessageTrailingSpace = "trailing whitespace at line end."
)

// Analyze runs both whitespace rules over text. Double-space issues come
// first in document order, followed by trailing-space issues. A line made
// only of spaces is reported by both rules.
func Analyze(text string) []types.Issue {
	return AnalyzeText(types.NewText(text))
}

// AnalyzeText is Analyze over an already-encoded document.
func AnalyzeText(text *types.Text) []types.Issue {
	units := text.Units()
	issues := make([]types.Issue, 0)
	issues = append(issues, doubleSpaces(units)...)
	issues = append(issues, trailingSpaces(units)...)
	return issues
}

func doubleSpaces(units []uint16) []types.Issue {
	var issues []types.Issue
	for i := 0; i < len(units); {
		if units[i] != ' ' {
			i++
			continue
		}
		start := i
		for i < len(units) && units[i] == ' ' {
			i++
		}
		if i-start >= 2 {
			issues = append(issues, types.Issue{
				Span:       types.Span{Start: start, End: i},
				Message:    MessageExtraSpace,
				Suggestion: types.Suggest(" "),
				Severity:   types.SeverityWarning,
				Category:   types.CategorySpacing,
			})
		}
	}
	return issues
}

// trailingSpaces walks lines split on "\n" or "\r\n". The '\r' of a CRLF
// delimiter is not part of the line content.
func trailingSpaces(units []uint16) []types.Issue {
	var issues []types.Issue
	lineStart := 0
	for lineStart <= len(units) {
		lineEnd := lineStart
		for lineEnd < len(units) && units[lineEnd] != '\n' {
			lineEnd++
		}
		contentEnd := lineEnd
		if contentEnd > lineStart && units[contentEnd-1] == '\r' && lineEnd < len(units) {
			contentEnd--
		}

		first := contentEnd
		for first > lineStart && units[first-1] == ' ' {
			first--
		}
		if first < contentEnd {
			issues = append(issues, types.Issue{
				Span:       types.Span{Start: first, End: contentEnd},
				Message:    MessageTrailingSpace,
				Suggestion: types.Suggest(""),
				Severity:   types.SeverityInfo,
				Category:   types.CategorySpacing,
			})
		}

		if lineEnd >= len(units) {
			break
		}
		lineStart = lineEnd + 1
	}
	return issues
}
