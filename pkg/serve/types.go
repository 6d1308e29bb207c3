package serve

import (
	"encoding/json"

	"github.com/bkga-dev/bkga/pkg/diff"
	"github.com/bkga-dev/bkga/pkg/dictionary"
	"github.com/bkga-dev/bkga/pkg/pipeline"
	"github.com/bkga-dev/bkga/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "analyze" | "diff" | "hover" | "apply" | "lookup" | "close"
	Payload json.RawMessage `json:"payload"`
}

// AnalyzePayload is the payload for "analyze" requests
type AnalyzePayload struct {
	Text string `json:"text"`
	// Path names the document; with Markdown unset its extension decides
	// whether exclusion zones apply.
	Path          string `json:"path,omitempty"`
	Markdown      *bool  `json:"markdown,omitempty"`
	IgnoreEnglish *bool  `json:"ignore_english,omitempty"` // default true
	Disabled      bool   `json:"disabled,omitempty"`
	// Version is echoed back so hosts can discard results for stale snapshots.
	Version int64 `json:"version"`
}

// AnalyzeData is the data field for "analyze" responses
type AnalyzeData struct {
	Version     int64            `json:"version"`
	Path        string           `json:"path,omitempty"`
	DocumentID  types.DocumentID `json:"document_id"`
	Mode        pipeline.Mode    `json:"mode"`
	Status      pipeline.Status  `json:"status"`
	Issues      []types.Issue    `json:"issues"`
	SourceError string           `json:"source_error,omitempty"`
}

// DiffPayload is the payload for "diff" requests
type DiffPayload struct {
	Original   string `json:"original"`
	Suggestion string `json:"suggestion"`
}

// DiffData is the data field for "diff" responses
type DiffData struct {
	Diff     types.DiffResult `json:"diff"`
	Rendered diff.Rendered    `json:"rendered"`
}

// HoverPayload is the payload for "hover" requests
type HoverPayload struct {
	Text  string      `json:"text"`
	Issue types.Issue `json:"issue"`
}

// HoverData is the data field for "hover" responses
type HoverData struct {
	Markdown string `json:"markdown"`
}

// ApplyPayload is the payload for "apply" requests
type ApplyPayload struct {
	Text  string      `json:"text"`
	Issue types.Issue `json:"issue"`
	// DocumentID, when set, is the analyzed snapshot the issue came from;
	// the apply is refused if Text no longer matches it.
	DocumentID *types.DocumentID `json:"document_id,omitempty"`
}

// ApplyData is the data field for "apply" responses
type ApplyData struct {
	Text       string           `json:"text"`
	DocumentID types.DocumentID `json:"document_id"`
}

// LookupPayload is the payload for "lookup" requests
type LookupPayload struct {
	Word string `json:"word"`
}

// LookupData is the data field for "lookup" responses
type LookupData struct {
	Word   string           `json:"word"`
	Keys   []dictionary.Key `json:"keys"`
	Titles []string         `json:"titles"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "analyze" | "diff" | "hover" | "apply" | "lookup" | "unknown"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
