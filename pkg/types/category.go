package types

import "strings"

// CategoryKind groups corrector categories for display.
type CategoryKind string

const (
	KindSpelling    CategoryKind = "spelling"
	KindSpacing     CategoryKind = "spacing"
	KindStandard    CategoryKind = "standard"
	KindStatistical CategoryKind = "statistical"
	KindDefault     CategoryKind = "default"
)

// CategoryDisplay is the human-facing label for a category.
type CategoryDisplay struct {
	Kind CategoryKind `json:"kind"`
	Name string       `json:"name"`
}

// ClassifyCategory maps a corrector category (Korean or English label) onto
// a display kind. Matching is by substring so "SPACING_ERROR" and
// "띄어쓰기 오류" both resolve to spacing.
func ClassifyCategory(category string) CategoryKind {
	normalized := strings.ToUpper(category)
	switch {
	case strings.Contains(normalized, "맞춤법"),
		strings.Contains(normalized, CategorySpelling),
		strings.Contains(normalized, CategoryTypo):
		return KindSpelling
	case strings.Contains(normalized, "띄어쓰기"),
		strings.Contains(normalized, CategorySpacing):
		return KindSpacing
	case strings.Contains(normalized, "표준어"),
		strings.Contains(normalized, CategoryStandard):
		return KindStandard
	case strings.Contains(normalized, "통계"),
		strings.Contains(normalized, CategoryStatistical):
		return KindStatistical
	}
	return KindDefault
}

var categoryNames = map[CategoryKind]string{
	KindSpelling:    "맞춤법 오류",
	KindSpacing:     "띄어쓰기 오류",
	KindStandard:    "표준어 의심",
	KindStatistical: "통계적 교정",
	KindDefault:     "문법/맞춤법 오류",
}

// CategoryInfo returns the display label for a category.
func CategoryInfo(category string) CategoryDisplay {
	kind := ClassifyCategory(category)
	return CategoryDisplay{Kind: kind, Name: categoryNames[kind]}
}
