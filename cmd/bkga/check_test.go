package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkga-dev/bkga/pkg/store"
	"github.com/bkga-dev/bkga/pkg/types"
)

// resetCheckFlags restores check defaults with a config path that does not
// exist, so every run starts from the built-in configuration.
func resetCheckFlags(t *testing.T, dir string) {
	t.Helper()
	configPath = filepath.Join(dir, "missing.yaml")
	checkFlags = annotatorFlags{}
	checkOutputPath = store.MemoryPath
	checkOutputFormat = "json"
	checkMarkdown = "auto"
	checkColor = "never"
	checkMaxFileSize = 10 * 1024 * 1024
	checkIncludeHidden = false
	checkIncremental = false
	checkFail = false
	verbose = false
	quiet = true
}

func runCheckJSON(t *testing.T, targets ...string) []documentReport {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, runCheck(cmd, targets))
	assert.Contains(t, errOut.String(), "Check complete")

	var reports []documentReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	return reports
}

func TestRunCheck_LocalAnalyzer(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "doc.txt"), []byte("할 수  있다\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "image.png"), []byte("not included"), 0644))
	resetCheckFlags(t, tmpDir)

	reports := runCheckJSON(t, tmpDir)

	require.Len(t, reports, 1)
	assert.Equal(t, "doc.txt", filepath.Base(reports[0].Path))
	require.Len(t, reports[0].Annotations, 1)

	a := reports[0].Annotations[0]
	assert.Equal(t, types.CategorySpacing, a.Issue.Category)
	assert.Equal(t, types.Span{Start: 3, End: 5}, a.Issue.Span)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 4}, a.Location.Source.Start)
	assert.Equal(t, types.ComputeDocumentID([]byte("할 수  있다\n")), a.DocumentID)
}

func TestRunCheck_MultipleTargets(t *testing.T) {
	tmpDir := t.TempDir()
	dirA := filepath.Join(tmpDir, "a")
	dirB := filepath.Join(tmpDir, "b")
	require.NoError(t, os.MkdirAll(dirA, 0755))
	require.NoError(t, os.MkdirAll(dirB, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dirA, "one.txt"), []byte("하나  둘\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "two.txt"), []byte("셋  넷\n"), 0644))
	resetCheckFlags(t, tmpDir)

	// one.md is reachable twice and is checked once
	reports := runCheckJSON(t, dirA, dirB, filepath.Join(dirA, "one.txt"))

	require.Len(t, reports, 2)
	assert.Equal(t, "one.txt", filepath.Base(reports[0].Path))
	assert.Equal(t, "two.txt", filepath.Base(reports[1].Path))
	assert.Len(t, reports[0].Annotations, 1)
	assert.Len(t, reports[1].Annotations, 1)
}

func TestRunCheck_MarkdownMode(t *testing.T) {
	tests := []struct {
		mode string
		want int
	}{
		{"auto", 0},
		{"always", 0},
		{"never", 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			tmpDir := t.TempDir()
			target := filepath.Join(tmpDir, "doc.md")
			require.NoError(t, os.WriteFile(target, []byte("`a  b` 문장"), 0644))
			resetCheckFlags(t, tmpDir)
			checkMarkdown = tt.mode

			reports := runCheckJSON(t, target)

			require.Len(t, reports, 1)
			assert.Len(t, reports[0].Annotations, tt.want)
		})
	}
}

func TestRunCheck_InvalidMarkdownMode(t *testing.T) {
	tmpDir := t.TempDir()
	resetCheckFlags(t, tmpDir)
	checkMarkdown = "sometimes"

	err := runCheck(&cobra.Command{}, []string{tmpDir})
	assert.ErrorContains(t, err, "unknown markdown mode")
}

func TestRunCheck_InvalidTarget(t *testing.T) {
	resetCheckFlags(t, t.TempDir())

	err := runCheck(&cobra.Command{}, []string{"/nonexistent/path"})
	assert.Error(t, err, "should error on nonexistent target")
}

func TestRunCheck_HumanOutput(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "doc.txt"), []byte("할 수  있다"), 0644))
	resetCheckFlags(t, tmpDir)
	checkOutputFormat = "human"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, runCheck(cmd, []string{tmpDir}))

	output := out.String()
	assert.Contains(t, output, "Check complete: 1 documents, 1 issues")
	assert.Contains(t, output, "Local analyzer used for 1 documents")
	assert.Contains(t, output, "doc.txt")
	assert.Contains(t, output, "1:4")
	assert.Contains(t, output, "띄어쓰기 오류")
	assert.Contains(t, output, "extra whitespace.")
	assert.Contains(t, output, "Total: 1 issues in 1 documents")
}

func TestRunCheck_ExternalCorrector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issues":[{"start":0,"end":2,"message":"SPELLING: 맞춤법 오류","suggestion":"돼요","severity":"error"}]}`))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "doc.txt")
	require.NoError(t, os.WriteFile(target, []byte("되요 문장입니다."), 0644))
	resetCheckFlags(t, tmpDir)

	cfgFile := filepath.Join(tmpDir, "bkga.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("endpoint: "+server.URL+"\nretries: 0\n"), 0644))
	configPath = cfgFile
	checkOutputFormat = "sarif"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, runCheck(cmd, []string{target}))

	output := out.String()
	assert.Contains(t, output, `"ruleId": "SPELLING"`)
	assert.Contains(t, output, `"level": "error"`)
	assert.Contains(t, output, `"text": "돼요"`)
}

func TestRunCheck_Fail(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "doc.txt"), []byte("할 수  있다"), 0644))
	resetCheckFlags(t, tmpDir)
	checkFail = true

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := runCheck(cmd, []string{tmpDir})
	assert.ErrorIs(t, err, ErrIssuesFound)
}

func TestRunCheck_DisabledByConfig(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "doc.txt"), []byte("할 수  있다"), 0644))
	resetCheckFlags(t, tmpDir)

	cfgFile := filepath.Join(tmpDir, "bkga.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("enabled: false\n"), 0644))
	configPath = cfgFile

	reports := runCheckJSON(t, tmpDir)

	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Annotations)
}

func TestMarkdownMode(t *testing.T) {
	tests := []struct {
		mode string
		path string
		want bool
	}{
		{"auto", "README.md", true},
		{"auto", "notes.txt", false},
		{"always", "notes.txt", true},
		{"never", "README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode+"/"+tt.path, func(t *testing.T) {
			fn, err := markdownMode(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn(tt.path))
		})
	}
}
