package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDiffWith(t *testing.T, format string, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	diffFormat = format
	diffColor = "never"

	require.NoError(t, runDiff(cmd, args))
	return buf.String()
}

func TestRunDiff_Human(t *testing.T) {
	output := runDiffWith(t, "human", "할수있다", "할 수 있다")
	assert.Equal(t, "- 할수있다\n+ 할 수 있다\n", output)
}

func TestRunDiff_Unchanged(t *testing.T) {
	output := runDiffWith(t, "human", "같다", "같다")
	assert.Equal(t, "No change.\n", output)
}

func TestRunDiff_JSON(t *testing.T) {
	output := runDiffWith(t, "json", "되요", "돼요")

	var got diffOutput
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "되", got.Diff.Original.Changed)
	assert.Equal(t, "돼", got.Diff.Suggested.Changed)
	assert.Equal(t, "요", got.Diff.Original.Suffix)
	assert.Equal(t, "- 되요\n+ 돼요", got.Unified)
	assert.Contains(t, got.Rendered.SuggestionHTML, "#e6ffed")
}

func TestRunDiff_HTML(t *testing.T) {
	output := runDiffWith(t, "html", "a<b", "a<c")
	assert.Contains(t, output, "&lt;")
	assert.Contains(t, output, "<code>")
}

func TestRunDiff_UnknownFormat(t *testing.T) {
	diffFormat = "xml"
	err := runDiff(&cobra.Command{}, []string{"a", "b"})
	assert.ErrorContains(t, err, "unknown output format")
}
