package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkga-dev/bkga/pkg/types"
)

func TestMarkup(t *testing.T) {
	r := Markup("나는 갔다", "나는 가다")

	assert.Equal(t, `<code>나는 <span style="background-color:#ffeceb;">갔</span>다</code>`, r.OriginalHTML)
	assert.Equal(t, `<code>나는 <span style="background-color:#e6ffed;">가</span>다</code>`, r.SuggestionHTML)
	assert.Equal(t, "- 나는 갔다\n+ 나는 가다", r.Block)
}

func TestMarkup_NoChange(t *testing.T) {
	for _, suggestion := range []string{"", "<b>&"} {
		r := Markup("<b>&", suggestion)
		assert.Equal(t, "<code>&lt;b&gt;&amp;</code>", r.OriginalHTML)
		assert.Equal(t, r.OriginalHTML, r.SuggestionHTML)
		assert.Empty(t, r.Block)
	}
}

func TestMarkup_EmptyOriginal(t *testing.T) {
	r := Markup("", "")
	assert.Equal(t, "<code>&nbsp;</code>", r.OriginalHTML)
}

func TestMarkup_PureDeletionSide(t *testing.T) {
	r := Markup("할  수", "할 수")

	assert.Equal(t, `<code>할 <span style="background-color:#ffeceb;"> </span>수</code>`, r.OriginalHTML)
	assert.Equal(t, "<code>할 수</code>", r.SuggestionHTML)
}

func TestUnified(t *testing.T) {
	assert.Equal(t, "- 되요\n+ 돼요", Unified("되요", "돼요"))
	assert.Empty(t, Unified("같다", "같다"))
	assert.Empty(t, Unified("같다", ""))
}

func TestHover(t *testing.T) {
	issue := types.Issue{
		Span:       types.Span{Start: 0, End: 2},
		Message:    "SPELLING: 맞춤법 오류입니다",
		Suggestion: types.Suggest("돼요"),
		Category:   types.CategorySpelling,
	}

	got := Hover(issue, "되요")

	assert.Contains(t, got, "#🇰🇷 맞춤법 오류")
	assert.Contains(t, got, "**원문**: <code>")
	assert.Contains(t, got, "```diff\n- 되요\n+ 돼요\n```")
	assert.Contains(t, got, "**도움말**: SPELLING: 맞춤법 오류입니다\n\n---\n\n")
	assert.True(t, strings.HasSuffix(got, QuickFixHint))
}

func TestHover_WithoutReplacement(t *testing.T) {
	tests := []struct {
		name       string
		suggestion *string
		original   string
	}{
		{"deletion", types.Suggest(""), "  "},
		{"same as original", types.Suggest("문장"), "문장"},
		{"no suggestion", nil, "문장"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := types.Issue{Message: "SPACING: 공백", Suggestion: tt.suggestion, Category: types.CategorySpacing}

			got := Hover(issue, tt.original)

			assert.NotContains(t, got, "**대치어**")
			assert.NotContains(t, got, QuickFixHint)
			assert.True(t, strings.HasSuffix(got, "**도움말**: SPACING: 공백\n\n"))
		})
	}
}

func TestHover_NoSuggestion(t *testing.T) {
	issue := types.Issue{Message: "문장 오류", Category: types.CategoryUnknown}

	got := Hover(issue, "문장")

	assert.Equal(t, "#🇰🇷 문법/맞춤법 오류\n\n**도움말**: 문장 오류\n\n", got)
}
