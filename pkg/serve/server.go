// Package serve speaks a newline-delimited JSON protocol over a reader and
// writer pair so editor hosts can annotate documents out of process.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/bkga-dev/bkga/pkg/config"
	"github.com/bkga-dev/bkga/pkg/diff"
	"github.com/bkga-dev/bkga/pkg/dictionary"
	"github.com/bkga-dev/bkga/pkg/pipeline"
	"github.com/bkga-dev/bkga/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// Annotator is what the server needs from an annotation engine.
type Annotator interface {
	Annotate(ctx context.Context, text string, c pipeline.Context) pipeline.Report
	Lookup(word string) []dictionary.Key
}

// Server manages the annotation loop
type Server struct {
	annotator Annotator
	encoder   *json.Encoder
	decoder   *json.Decoder
	logger    *slog.Logger

	ignoreEnglish bool
	disabled      bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the values used when an analyze request omits
// ignore_english, and disables every run when enabled is false.
func WithDefaults(ignoreEnglish, enabled bool) Option {
	return func(s *Server) {
		s.ignoreEnglish = ignoreEnglish
		s.disabled = !enabled
	}
}

// NewServer creates a new streaming server
func NewServer(annotator Annotator, in io.Reader, out io.Writer, opts ...Option) *Server {
	s := &Server{
		annotator: annotator,
		encoder:   json.NewEncoder(out),
		decoder:   json.NewDecoder(bufio.NewReader(in)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),

		ignoreEnglish: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until input closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(ctx, req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.logger.Warn("failed to decode request", "error", err)
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(ctx, req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(ctx context.Context, req Request) bool {
	s.logger.Debug("request received", "type", req.Type)
	switch req.Type {
	case "analyze":
		s.handleAnalyze(ctx, req.Payload)
	case "diff":
		s.handleDiff(req.Payload)
	case "hover":
		s.handleHover(req.Payload)
	case "apply":
		s.handleApply(req.Payload)
	case "lookup":
		s.handleLookup(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{Version: Version})
}

func (s *Server) handleAnalyze(ctx context.Context, payload json.RawMessage) {
	var p AnalyzePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("analyze", err.Error())
		return
	}

	c := pipeline.Context{
		Markdown:      config.IsMarkdownPath(p.Path),
		IgnoreEnglish: s.ignoreEnglish,
		Disabled:      p.Disabled || s.disabled,
	}
	if p.Markdown != nil {
		c.Markdown = *p.Markdown
	}
	if p.IgnoreEnglish != nil {
		c.IgnoreEnglish = *p.IgnoreEnglish
	}

	report := s.annotator.Annotate(ctx, p.Text, c)

	data := AnalyzeData{
		Version:    p.Version,
		Path:       p.Path,
		DocumentID: types.ComputeDocumentID([]byte(p.Text)),
		Mode:       report.Mode,
		Status:     report.Status,
		Issues:     report.Issues,
	}
	if report.SourceErr != nil {
		data.SourceError = report.SourceErr.Error()
	}
	s.send("analyze", data)
}

func (s *Server) handleDiff(payload json.RawMessage) {
	var p DiffPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("diff", err.Error())
		return
	}

	s.send("diff", DiffData{
		Diff:     diff.Compute(p.Original, p.Suggestion),
		Rendered: diff.Markup(p.Original, p.Suggestion),
	})
}

func (s *Server) handleHover(payload json.RawMessage) {
	var p HoverPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("hover", err.Error())
		return
	}

	original := types.NewText(p.Text).Slice(p.Issue.Span)
	s.send("hover", HoverData{Markdown: diff.Hover(p.Issue, original)})
}

func (s *Server) handleApply(payload json.RawMessage) {
	var p ApplyPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("apply", err.Error())
		return
	}

	if p.DocumentID != nil && !p.DocumentID.Matches(p.Text) {
		s.sendError("apply", "stale issue: document changed since "+p.DocumentID.Hex())
		return
	}

	text, err := diff.Apply(p.Text, p.Issue)
	if err != nil {
		s.sendError("apply", err.Error())
		return
	}
	s.send("apply", ApplyData{Text: text, DocumentID: types.DocumentIDOf(text)})
}

func (s *Server) handleLookup(payload json.RawMessage) {
	var p LookupPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("lookup", err.Error())
		return
	}

	keys := s.annotator.Lookup(p.Word)
	data := LookupData{
		Word:   p.Word,
		Keys:   make([]dictionary.Key, 0, len(keys)),
		Titles: make([]string, 0, len(keys)),
	}
	for _, k := range keys {
		data.Keys = append(data.Keys, k)
		data.Titles = append(data.Titles, dictionary.Labels[k].Title)
	}
	s.send("lookup", data)
}

func (s *Server) send(respType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(respType, err.Error())
		return
	}
	if err := s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	}); err != nil {
		s.logger.Error("failed to write response", "type", respType, "error", err)
	}
}

func (s *Server) sendError(reqType, msg string) {
	if err := s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	}); err != nil {
		s.logger.Error("failed to write response", "type", reqType, "error", err)
	}
}
