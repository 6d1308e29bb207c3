package exclusion

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cloudflare/ahocorasick"
)

var (
	// Markdown punctuation, digits and whitespace removed before deciding
	// whether a snippet is English.
	englishNoiseRe = regexp.MustCompile("[`*_#>~.,!?'\"()\\[\\]{}:;+\\-=\\\\/0-9\\s]")
	latinLetterRe  = regexp.MustCompile(`[A-Za-z]`)

	urlRe      = regexp.MustCompile(`(?i)https?://\S+`)
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	mdLinkRe   = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	shortcutRe = regexp.MustCompile(`(?i)\b(?:cmd|ctrl|shift|alt|option|enter|esc|tab|space|backspace|delete|del)\b`)

	hangulCommaRe = regexp.MustCompile(`\p{Hangul},\p{Hangul}`)
	acronymRe     = regexp.MustCompile(`\b[A-Z0-9]{3,}\b`)
	parenGroupRe  = regexp.MustCompile(`\(([^()]*)\)`)
)

var shortcutKeywords = []string{
	"cmd", "ctrl", "shift", "alt", "option", "enter",
	"esc", "tab", "space", "backspace", "delete", "del",
}

var shortcutMatcher = ahocorasick.NewStringMatcher(shortcutKeywords)

// LikelyEnglish reports whether a snippet, once Markdown punctuation, digits
// and whitespace are removed, contains Latin letters and no Hangul.
func LikelyEnglish(snippet string) bool {
	cleaned := englishNoiseRe.ReplaceAllString(snippet, "")
	if cleaned == "" {
		return false
	}
	if ContainsHangul(cleaned) {
		return false
	}
	return latinLetterRe.MatchString(cleaned)
}

// ContainsHangul reports whether s has at least one Hangul rune.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// ContainsURLOrEmail reports whether s contains an http(s) URL or an email
// address.
func ContainsURLOrEmail(s string) bool {
	return urlRe.MatchString(s) || emailRe.MatchString(s)
}

// ContainsMarkdownLink reports whether s contains [label](target).
func ContainsMarkdownLink(s string) bool {
	return mdLinkRe.MatchString(s)
}

// ContainsShortcut reports whether s looks like a keyboard shortcut: a
// modifier or key name as a whole word plus one of '+', '(' or '['.
func ContainsShortcut(s string) bool {
	if !strings.ContainsAny(s, "+([") {
		return false
	}
	// keyword prefilter before the word-boundary regex
	if len(shortcutMatcher.Match([]byte(asciiLower(s)))) == 0 {
		return false
	}
	return shortcutRe.MatchString(s)
}

// ContainsHangulCommaRun reports whether s has a comma directly between two
// Hangul syllables, as in "가,나".
func ContainsHangulCommaRun(s string) bool {
	return hangulCommaRe.MatchString(s)
}

// ContainsAcronym reports whether s has a standalone run of three or more
// uppercase ASCII letters or digits.
func ContainsAcronym(s string) bool {
	return acronymRe.MatchString(s)
}

// IsParentheticalKoreanList reports whether s contains a parenthesised
// group of at least two comma-separated items, each made only of Hangul,
// digits, middle dots, hyphens and whitespace.
func IsParentheticalKoreanList(s string) bool {
	for _, m := range parenGroupRe.FindAllStringSubmatch(s, -1) {
		if isKoreanList(m[1]) {
			return true
		}
	}
	return false
}

func isKoreanList(inner string) bool {
	parts := strings.Split(inner, ",")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return false
		}
		for _, r := range part {
			if !isListRune(r) {
				return false
			}
		}
	}
	return true
}

func isListRune(r rune) bool {
	switch {
	case unicode.Is(unicode.Hangul, r):
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '·', r == 'ㆍ', r == '-':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return false
}

// asciiLower lowercases ASCII letters only, keeping byte length stable.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
