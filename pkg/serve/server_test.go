package serve

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkga-dev/bkga/pkg/dictionary"
	"github.com/bkga-dev/bkga/pkg/pipeline"
	"github.com/bkga-dev/bkga/pkg/types"
)

// fakeAnnotator runs the real pipeline over an optional fixed source.
type fakeAnnotator struct {
	pipeline *pipeline.Pipeline
	words    map[string][]dictionary.Key
}

func newFakeAnnotator(issues ...types.Issue) *fakeAnnotator {
	var opts []pipeline.Option
	if issues != nil {
		opts = append(opts, pipeline.WithSource(pipeline.SourceFunc(func(context.Context, string) ([]types.Issue, error) {
			return issues, nil
		})))
	}
	return &fakeAnnotator{
		pipeline: pipeline.New(opts...),
		words:    map[string][]dictionary.Key{"깃허브": {dictionary.ProperNoun}},
	}
}

func (f *fakeAnnotator) Annotate(ctx context.Context, text string, c pipeline.Context) pipeline.Report {
	return f.pipeline.Analyze(ctx, text, c)
}

func (f *fakeAnnotator) Lookup(word string) []dictionary.Key {
	return f.words[word]
}

// runServer feeds input to a server and returns every response line.
func runServer(t *testing.T, annotator Annotator, input string) []Response {
	t.Helper()
	out := &bytes.Buffer{}
	srv := NewServer(annotator, strings.NewReader(input), out)
	require.NoError(t, srv.Run(context.Background()))

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServer_SendsReadyOnStart(t *testing.T) {
	out := &bytes.Buffer{}
	srv := NewServer(newFakeAnnotator(), strings.NewReader(""), out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately to exit after ready

	_ = srv.Run(ctx)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ready", resp.Type)

	var ready ReadyData
	require.NoError(t, json.Unmarshal(resp.Data, &ready))
	assert.Equal(t, Version, ready.Version)
}

func TestServer_AnalyzeLocalFallback(t *testing.T) {
	request := `{"type":"analyze","payload":{"text":"a  b","version":7}}` + "\n"
	responses := runServer(t, newFakeAnnotator(), request)
	require.Len(t, responses, 2) // ready + analyze

	resp := responses[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "analyze", resp.Type)

	var data AnalyzeData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(7), data.Version)
	assert.Equal(t, pipeline.ModeLocal, data.Mode)
	assert.Equal(t, pipeline.StatusFallback, data.Status)
	assert.Equal(t, pipeline.ErrNoSource.Error(), data.SourceError)
	assert.Equal(t, types.ComputeDocumentID([]byte("a  b")), data.DocumentID)
	require.Len(t, data.Issues, 1)
	assert.Equal(t, types.Span{Start: 1, End: 3}, data.Issues[0].Span)
}

func TestServer_AnalyzeMarkdownFromPath(t *testing.T) {
	// inline code covers [3,9)
	text := "되요 `code` 문장"
	annotator := newFakeAnnotator(
		types.Issue{Span: types.Span{Start: 0, End: 2}, Message: "SPELLING: x", Suggestion: types.Suggest("돼요"), Category: types.CategorySpelling},
		types.Issue{Span: types.Span{Start: 4, End: 8}, Message: "SPELLING: y", Category: types.CategorySpelling},
	)

	payload := func(extra string) string {
		p, err := json.Marshal(map[string]any{"text": text})
		require.NoError(t, err)
		return `{"type":"analyze","payload":` + strings.TrimSuffix(string(p), "}") + extra + "}}\n"
	}

	tests := []struct {
		name  string
		extra string
		want  int
	}{
		{"markdown path", `,"path":"README.md"`, 1},
		{"plain path", `,"path":"notes.txt","ignore_english":false`, 2},
		{"explicit markdown overrides path", `,"path":"notes.txt","markdown":true`, 1},
		{"disabled", `,"disabled":true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := runServer(t, annotator, payload(tt.extra))
			require.Len(t, responses, 2)

			var data AnalyzeData
			require.NoError(t, json.Unmarshal(responses[1].Data, &data))
			assert.Len(t, data.Issues, tt.want)
			assert.NotNil(t, data.Issues)
		})
	}
}

func TestServer_WithDefaults(t *testing.T) {
	request := `{"type":"analyze","payload":{"text":"a  b"}}` + "\n"

	tests := []struct {
		name    string
		enabled bool
		want    int
	}{
		{"enabled", true, 1},
		{"disabled by config", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			srv := NewServer(newFakeAnnotator(), strings.NewReader(request), out, WithDefaults(true, tt.enabled))
			require.NoError(t, srv.Run(context.Background()))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 2)

			var resp Response
			require.NoError(t, json.Unmarshal([]byte(lines[1]), &resp))
			var data AnalyzeData
			require.NoError(t, json.Unmarshal(resp.Data, &data))
			assert.Len(t, data.Issues, tt.want)
		})
	}
}

func TestServer_Diff(t *testing.T) {
	request := `{"type":"diff","payload":{"original":"할수있다","suggestion":"할 수 있다"}}` + "\n"
	responses := runServer(t, newFakeAnnotator(), request)
	require.Len(t, responses, 2)

	var data DiffData
	require.NoError(t, json.Unmarshal(responses[1].Data, &data))
	assert.Equal(t, "할", data.Diff.Original.Prefix)
	assert.Equal(t, "있다", data.Diff.Original.Suffix)
	assert.Contains(t, data.Rendered.SuggestionHTML, "#e6ffed")
	assert.Equal(t, "- 할수있다\n+ 할 수 있다", data.Rendered.Block)
}

func TestServer_Hover(t *testing.T) {
	issue := types.Issue{
		Span:       types.Span{Start: 0, End: 2},
		Message:    "SPELLING: 되요 → 돼요",
		Suggestion: types.Suggest("돼요"),
		Category:   types.CategorySpelling,
	}
	payload, err := json.Marshal(HoverPayload{Text: "되요 문장", Issue: issue})
	require.NoError(t, err)

	responses := runServer(t, newFakeAnnotator(), `{"type":"hover","payload":`+string(payload)+"}\n")
	require.Len(t, responses, 2)

	var data HoverData
	require.NoError(t, json.Unmarshal(responses[1].Data, &data))
	assert.Contains(t, data.Markdown, "맞춤법 오류")
	assert.Contains(t, data.Markdown, "- 되요\n+ 돼요")
}

func TestServer_Apply(t *testing.T) {
	fix := types.Issue{Span: types.Span{Start: 0, End: 2}, Suggestion: types.Suggest("돼요"), Category: types.CategorySpelling}
	noFix := types.Issue{Span: types.Span{Start: 0, End: 2}, Category: types.CategorySpelling}

	request := func(issue types.Issue) string {
		payload, err := json.Marshal(ApplyPayload{Text: "되요 문장", Issue: issue})
		require.NoError(t, err)
		return `{"type":"apply","payload":` + string(payload) + "}\n"
	}

	responses := runServer(t, newFakeAnnotator(), request(fix)+request(noFix))
	require.Len(t, responses, 3)

	require.True(t, responses[1].Success, responses[1].Error)
	assert.Equal(t, "apply", responses[1].Type)
	var data ApplyData
	require.NoError(t, json.Unmarshal(responses[1].Data, &data))
	assert.Equal(t, "돼요 문장", data.Text)
	assert.Equal(t, types.ComputeDocumentID([]byte("돼요 문장")), data.DocumentID)

	assert.False(t, responses[2].Success)
	assert.Equal(t, "apply", responses[2].Type)
	assert.Contains(t, responses[2].Error, "no suggestion")
}

func TestServer_ApplyStaleDocument(t *testing.T) {
	fix := types.Issue{Span: types.Span{Start: 0, End: 2}, Suggestion: types.Suggest("돼요"), Category: types.CategorySpelling}
	analyzed := types.DocumentIDOf("되요 문장")

	request := func(text string) string {
		payload, err := json.Marshal(ApplyPayload{Text: text, Issue: fix, DocumentID: &analyzed})
		require.NoError(t, err)
		return `{"type":"apply","payload":` + string(payload) + "}\n"
	}

	responses := runServer(t, newFakeAnnotator(), request("되요 문장")+request("그게 되요 문장"))
	require.Len(t, responses, 3)

	require.True(t, responses[1].Success, responses[1].Error)
	var data ApplyData
	require.NoError(t, json.Unmarshal(responses[1].Data, &data))
	assert.Equal(t, "돼요 문장", data.Text)

	assert.False(t, responses[2].Success)
	assert.Equal(t, "apply", responses[2].Type)
	assert.Contains(t, responses[2].Error, "stale issue")
}

func TestServer_Lookup(t *testing.T) {
	request := `{"type":"lookup","payload":{"word":"깃허브"}}` + "\n" +
		`{"type":"lookup","payload":{"word":"없는말"}}` + "\n"
	responses := runServer(t, newFakeAnnotator(), request)
	require.Len(t, responses, 3)

	var found LookupData
	require.NoError(t, json.Unmarshal(responses[1].Data, &found))
	assert.Equal(t, []dictionary.Key{dictionary.ProperNoun}, found.Keys)
	assert.Equal(t, []string{"고유명사 사전"}, found.Titles)

	var missing LookupData
	require.NoError(t, json.Unmarshal(responses[2].Data, &missing))
	assert.Empty(t, missing.Keys)
	assert.NotNil(t, missing.Keys)
}

func TestServer_BadPayload(t *testing.T) {
	request := `{"type":"analyze","payload":{"text":42}}` + "\n"
	responses := runServer(t, newFakeAnnotator(), request)
	require.Len(t, responses, 2)
	assert.False(t, responses[1].Success)
	assert.Equal(t, "analyze", responses[1].Type)
}

func TestServer_GracefulShutdownOnContext(t *testing.T) {
	// Slow reader that blocks
	pr, pw := io.Pipe()
	out := &bytes.Buffer{}

	srv := NewServer(newFakeAnnotator(), pr, out)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Wait for ready signal
	time.Sleep(100 * time.Millisecond)

	cancel()
	pw.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_CloseCommand(t *testing.T) {
	request := `{"type":"close","payload":{}}` + "\n" +
		`{"type":"analyze","payload":{"text":"a  b"}}` + "\n"
	responses := runServer(t, newFakeAnnotator(), request)
	require.Len(t, responses, 1) // Only ready signal
}

func TestServer_UnknownCommand(t *testing.T) {
	responses := runServer(t, newFakeAnnotator(), `{"type":"invalid","payload":{}}`+"\n")
	require.Len(t, responses, 2)
	assert.False(t, responses[1].Success)
	assert.Contains(t, responses[1].Error, "unknown request type")
}

func TestServer_MalformedJSON(t *testing.T) {
	responses := runServer(t, newFakeAnnotator(), `{invalid json}`+"\n")
	require.GreaterOrEqual(t, len(responses), 2)
	assert.False(t, responses[1].Success)
	assert.Equal(t, "decode", responses[1].Type)
}
