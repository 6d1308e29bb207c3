package types

import (
	"regexp"
	"strings"
)

// Severity ranks an issue for display.
type Severity string

// Severity levels.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity maps a corrector severity label onto a Severity.
// Unknown or missing labels are treated as warnings.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError
	case "info", "information":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// Well-known issue categories. Categories are otherwise opaque labels.
const (
	CategoryUnknown     = "UNKNOWN"
	CategorySpacing     = "SPACING"
	CategorySpelling    = "SPELLING"
	CategoryTypo        = "TYPO"
	CategoryStandard    = "STANDARD"
	CategoryStatistical = "STATISTICAL"
)

// Issue is one reported problem in a document snapshot.
type Issue struct {
	Span       Span     `json:"span"`
	Message    string   `json:"message"`
	Suggestion *string  `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"`
}

// Suggest returns a pointer to s, for building Issue.Suggestion inline.
func Suggest(s string) *string {
	return &s
}

// HasSuggestion reports whether the issue carries a replacement.
func (i Issue) HasSuggestion() bool {
	return i.Suggestion != nil
}

// SuggestionText returns the replacement, or "" when there is none.
func (i Issue) SuggestionText() string {
	if i.Suggestion == nil {
		return ""
	}
	return *i.Suggestion
}

var categoryPrefixRe = regexp.MustCompile(`^([A-Z_]+):`)

// ExtractCategory reads a "CATEGORY: text" prefix from a corrector message.
func ExtractCategory(message string) string {
	m := categoryPrefixRe.FindStringSubmatch(message)
	if m == nil {
		return CategoryUnknown
	}
	return m[1]
}
