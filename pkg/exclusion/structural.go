package exclusion

import (
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/bkga-dev/bkga/pkg/types"
)

// StructuralOptions configures the goldmark parser used by DetectStructural.
var StructuralOptions = []goldmark.Option{
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
}

// DetectStructural parses markdown as CommonMark+GFM and returns zones for the
// constructs the line scanner does not recognise: indented code blocks,
// HTML blocks and raw inline HTML. Fenced blocks and code spans found by the
// parser are included as well.
func DetectStructural(markdown string) Set {
	source := []byte(markdown)
	md := goldmark.New(StructuralOptions...)
	root := md.Parser().Parse(text.NewReader(source))

	offsets := utf16Offsets(source)
	var spans []types.Span
	addSegment := func(seg text.Segment) {
		if seg.Start >= seg.Stop || seg.Stop > len(source) {
			return
		}
		spans = append(spans, types.Span{Start: offsets[seg.Start], End: offsets[seg.Stop]})
	}
	addLines := func(lines *text.Segments) {
		if lines == nil {
			return
		}
		for i := 0; i < lines.Len(); i++ {
			addSegment(lines.At(i))
		}
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			addLines(node.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			addLines(node.Lines())
			if node.HasClosure() {
				addSegment(node.ClosureLine)
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			addLines(node.Segments)
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					addSegment(t.Segment)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return Normalize(spans)
}

// utf16Offsets maps every byte offset of a UTF-8 source (plus its end) to
// the UTF-16 code-unit offset of the same position. Bytes inside a multi-byte
// rune map to the offset of that rune.
func utf16Offsets(source []byte) []int {
	offsets := make([]int, len(source)+1)
	units := 0
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRune(source[i:])
		for j := 0; j < size; j++ {
			offsets[i+j] = units
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		i += size
	}
	offsets[len(source)] = units
	return offsets
}
