package exclusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkga-dev/bkga/pkg/types"
)

func TestDetectStructural_IndentedCode(t *testing.T) {
	zones := DetectStructural("    indented code\n\n본문")

	assert.True(t, zones.Overlaps(types.Span{Start: 6, End: 10}))
	assert.False(t, zones.Overlaps(types.Span{Start: 19, End: 21}))
}

func TestDetectStructural_HTMLBlock(t *testing.T) {
	zones := DetectStructural("<div>\n내용\n</div>\n\n본문")

	assert.True(t, zones.Overlaps(types.Span{Start: 6, End: 8}))
	assert.False(t, zones.Overlaps(types.Span{Start: 17, End: 19}))
}

func TestDetectStructural_RawHTML(t *testing.T) {
	zones := DetectStructural("문장 <b>강조</b> 끝")

	assert.True(t, zones.Overlaps(types.Span{Start: 4, End: 5}))
	assert.False(t, zones.Overlaps(types.Span{Start: 0, End: 2}))
}

func TestUTF16Offsets(t *testing.T) {
	got := utf16Offsets([]byte("a가📌"))
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2, 2, 2, 4}, got)
}
