package diff

import (
	"fmt"
	"strings"

	"github.com/bkga-dev/bkga/pkg/types"
)

const (
	removedStyle = "background-color:#ffeceb;"
	addedStyle   = "background-color:#e6ffed;"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Rendered is the hover form of a diff.
type Rendered struct {
	OriginalHTML   string `json:"original_html"`
	SuggestionHTML string `json:"suggestion_html"`
	Block          string `json:"block,omitempty"`
}

// Markup renders both sides as <code> HTML with the changed region
// highlighted. When there is no suggestion, or it equals the original, both
// sides are the escaped original and Block is empty.
func Markup(original, suggestion string) Rendered {
	if suggestion == "" || suggestion == original {
		escaped := wrapCode(escapeHTML(original))
		return Rendered{OriginalHTML: escaped, SuggestionHTML: escaped}
	}

	d := Compute(original, suggestion)
	return Rendered{
		OriginalHTML:   wrapCode(highlight(d.Original, removedStyle)),
		SuggestionHTML: wrapCode(highlight(d.Suggested, addedStyle)),
		Block:          Unified(original, suggestion),
	}
}

// Unified returns a two-line "- original / + suggestion" block, or "" when
// there is nothing to change.
func Unified(original, suggestion string) string {
	if suggestion == "" || suggestion == original {
		return ""
	}
	return fmt.Sprintf("- %s\n+ %s", original, suggestion)
}

// QuickFixHint closes a hover card that offers a replacement.
const QuickFixHint = "💡 _빠른 수정을 적용하려면 전구 아이콘을 클릭하거나 `Cmd+.` 를 누르세요_"

// Hover composes the Markdown shown when hovering an issue: category title,
// both sides of the diff, the change block and the message. Issues without
// a non-empty replacement that differs from original get the message only.
func Hover(issue types.Issue, original string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#🇰🇷 %s\n\n", types.CategoryInfo(issue.Category).Name)

	suggestion := issue.SuggestionText()
	if suggestion == "" || suggestion == original {
		fmt.Fprintf(&b, "**도움말**: %s\n\n", issue.Message)
		return b.String()
	}

	r := Markup(original, suggestion)
	fmt.Fprintf(&b, "**원문**: %s\n\n", r.OriginalHTML)
	fmt.Fprintf(&b, "**대치어**: %s\n\n", r.SuggestionHTML)
	if r.Block != "" {
		fmt.Fprintf(&b, "**변경 내용**:\n```diff\n%s\n```\n\n", r.Block)
	}
	fmt.Fprintf(&b, "**도움말**: %s\n\n", issue.Message)
	b.WriteString("---\n\n")
	b.WriteString(QuickFixHint)
	return b.String()
}

func highlight(s types.Segments, style string) string {
	var b strings.Builder
	b.WriteString(escapeHTML(s.Prefix))
	if s.Changed != "" {
		fmt.Fprintf(&b, `<span style="%s">%s</span>`, style, escapeHTML(s.Changed))
	}
	b.WriteString(escapeHTML(s.Suffix))
	return b.String()
}

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func wrapCode(content string) string {
	if content == "" {
		content = "&nbsp;"
	}
	return "<code>" + content + "</code>"
}
