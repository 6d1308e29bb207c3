// Package filter removes issues that are known false positives for Korean
// prose embedded in Markdown: issues anchored in code, English runs, links,
// enumerations, and spacing complaints about shortcuts or acronyms.
package filter

import (
	"strings"

	"github.com/bkga-dev/bkga/pkg/exclusion"
	"github.com/bkga-dev/bkga/pkg/types"
)

// Options carries the two settings the filter depends on.
type Options struct {
	// IgnoreEnglish drops issues whose snippet is likely English.
	IgnoreEnglish bool
	// MarkdownContext enables exclusion-zone checks.
	MarkdownContext bool
}

// Reason explains why an issue was dropped. ReasonKept means it survives.
type Reason string

const (
	ReasonKept         Reason = ""
	ReasonMalformed    Reason = "malformed-span"
	ReasonExcluded     Reason = "exclusion-zone"
	ReasonBlank        Reason = "blank-snippet"
	ReasonEnglish      Reason = "likely-english"
	ReasonLink         Reason = "url-or-link"
	ReasonKoreanList   Reason = "parenthetical-list"
	ReasonSpacingNoise Reason = "spacing-false-positive"
)

// Filter returns the issues that survive every check, in their original
// relative order. Issues are never modified.
func Filter(issues []types.Issue, text *types.Text, zones exclusion.Set, opts Options) []types.Issue {
	kept := make([]types.Issue, 0, len(issues))
	for _, issue := range issues {
		if Explain(issue, text, zones, opts) == ReasonKept {
			kept = append(kept, issue)
		}
	}
	return kept
}

// Explain runs the checks for a single issue and reports the first one that
// drops it.
func Explain(issue types.Issue, text *types.Text, zones exclusion.Set, opts Options) Reason {
	if !issue.Span.ValidIn(text.Len()) {
		return ReasonMalformed
	}

	if opts.MarkdownContext && zones.Overlaps(issue.Span) {
		return ReasonExcluded
	}

	snippet := strings.TrimSpace(text.Slice(issue.Span))
	if snippet == "" {
		return ReasonBlank
	}

	if opts.IgnoreEnglish && exclusion.LikelyEnglish(snippet) {
		return ReasonEnglish
	}

	if exclusion.ContainsURLOrEmail(snippet) || exclusion.ContainsMarkdownLink(snippet) {
		return ReasonLink
	}

	if exclusion.IsParentheticalKoreanList(snippet) {
		return ReasonKoreanList
	}

	if issue.Category == types.CategorySpacing {
		if exclusion.ContainsShortcut(snippet) ||
			exclusion.ContainsHangulCommaRun(snippet) ||
			exclusion.ContainsAcronym(snippet) {
			return ReasonSpacingNoise
		}
	}

	return ReasonKept
}

// Valid returns the issues whose spans lie inside text, in order. It is
// the only check applied outside a Markdown context.
func Valid(issues []types.Issue, text *types.Text) []types.Issue {
	kept := make([]types.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Span.ValidIn(text.Len()) {
			kept = append(kept, issue)
		}
	}
	return kept
}
