package exclusion

import (
	"github.com/bkga-dev/bkga/pkg/types"
)

const backtick = '`'

// Detect scans Markdown text for fenced code blocks and inline code spans and
// returns the merged exclusion set.
func Detect(text string) Set {
	return DetectText(types.NewText(text))
}

// DetectText is Detect over an already-encoded document.
func DetectText(text *types.Text) Set {
	units := text.Units()
	spans := fencedCodeBlocks(units)
	spans = append(spans, inlineCodeSpans(units)...)
	return Normalize(spans)
}

// fencedCodeBlocks finds blocks opened by a line starting with three or more
// backticks. A block closes at the next line made only of a backtick fence at
// least as long as the opener (trailing spaces, tabs and '\r' allowed).
// An unterminated fence runs to the end of the text.
func fencedCodeBlocks(units []uint16) []types.Span {
	var spans []types.Span
	n := len(units)

	lineStart := 0
	for lineStart < n {
		lineEnd := endOfLine(units, lineStart)
		fence := backtickRun(units, lineStart)
		if fence < 3 {
			lineStart = nextLine(lineEnd, n)
			continue
		}

		blockEnd := n
		next := n
		for cur := nextLine(lineEnd, n); cur < n; {
			curEnd := endOfLine(units, cur)
			if isClosingFence(units[cur:curEnd], fence) {
				blockEnd = curEnd
				next = nextLine(curEnd, n)
				break
			}
			cur = nextLine(curEnd, n)
		}

		spans = append(spans, types.Span{Start: lineStart, End: blockEnd})
		lineStart = next
	}
	return spans
}

// inlineCodeSpans pairs a run of N backticks with the next run of exactly N
// backticks. When an opener has no closer the scan stops, so one stray
// backtick never swallows the rest of the document.
func inlineCodeSpans(units []uint16) []types.Span {
	var spans []types.Span
	n := len(units)

	i := 0
	for i < n {
		if units[i] != backtick {
			i++
			continue
		}
		open := i
		runLen := backtickRun(units, i)
		i += runLen

		closer := -1
		for j := i; j < n; {
			if units[j] != backtick {
				j++
				continue
			}
			l := backtickRun(units, j)
			if l == runLen {
				closer = j
				break
			}
			j += l
		}
		if closer < 0 {
			break
		}

		spans = append(spans, types.Span{Start: open, End: closer + runLen})
		i = closer + runLen
	}
	return spans
}

func backtickRun(units []uint16, from int) int {
	i := from
	for i < len(units) && units[i] == backtick {
		i++
	}
	return i - from
}

// endOfLine returns the index of the '\n' ending the line, or len(units).
func endOfLine(units []uint16, from int) int {
	for i := from; i < len(units); i++ {
		if units[i] == '\n' {
			return i
		}
	}
	return len(units)
}

func nextLine(lineEnd, n int) int {
	if lineEnd >= n {
		return n
	}
	return lineEnd + 1
}

func isClosingFence(line []uint16, minLen int) bool {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t' || line[end-1] == '\r') {
		end--
	}
	if end < minLen {
		return false
	}
	for _, u := range line[:end] {
		if u != backtick {
			return false
		}
	}
	return true
}
