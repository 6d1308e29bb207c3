// Package pipeline ties the annotation stages together: obtain raw issues
// from a Source (falling back to the local analyzer), compute exclusion
// zones once for Markdown, then filter.
package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/bkga-dev/bkga/pkg/exclusion"
	"github.com/bkga-dev/bkga/pkg/filter"
	"github.com/bkga-dev/bkga/pkg/heuristic"
	"github.com/bkga-dev/bkga/pkg/types"
)

// ErrNoSource is recorded on a Report when no external source is configured.
var ErrNoSource = errors.New("no external issue source configured")

// Context holds the per-document settings for one run.
type Context struct {
	// Markdown enables exclusion zones.
	Markdown bool
	// IgnoreEnglish drops likely-English snippets.
	IgnoreEnglish bool
	// Disabled short-circuits the run with no issues and an idle status.
	Disabled bool
}

// Report is the full outcome of one run.
type Report struct {
	Issues    []types.Issue
	Mode      Mode
	Status    Status
	SourceErr error
	// Raw is the number of issues before filtering.
	Raw   int
	Zones exclusion.Set
}

// Pipeline runs annotation. It holds no per-run state and is safe for
// concurrent use as long as its Source is.
type Pipeline struct {
	source      Source
	logger      *slog.Logger
	status      StatusFunc
	structural  bool
	suppressors []Suppressor
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSource sets the external issue source. Without one every run uses the
// local analyzer.
func WithSource(s Source) Option {
	return func(p *Pipeline) {
		p.source = s
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStatusFunc registers a status callback.
func WithStatusFunc(fn StatusFunc) Option {
	return func(p *Pipeline) {
		p.status = fn
	}
}

// WithStructural adds goldmark-derived zones (indented code, HTML) to the
// Markdown exclusion set.
func WithStructural(enabled bool) Option {
	return func(p *Pipeline) {
		p.structural = enabled
	}
}

// WithSuppressors appends extra suppression stages run after the filter.
func WithSuppressors(s ...Suppressor) Option {
	return func(p *Pipeline) {
		for _, sup := range s {
			if sup != nil {
				p.suppressors = append(p.suppressors, sup)
			}
		}
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run annotates text and returns the surviving issues. It never fails: a
// source error is reported through the status callback and the local
// analyzer is used instead.
func (p *Pipeline) Run(ctx context.Context, text string, c Context) []types.Issue {
	return p.Analyze(ctx, text, c).Issues
}

// Analyze is Run with the full report.
func (p *Pipeline) Analyze(ctx context.Context, text string, c Context) Report {
	if c.Disabled {
		p.notify(StatusIdle, 0)
		return Report{Issues: []types.Issue{}, Mode: ModeDisabled, Status: StatusIdle}
	}

	p.notify(StatusAnalyzing, 0)
	doc := types.NewText(text)

	raw, mode, srcErr := p.collect(ctx, text, doc)
	report := Report{Mode: mode, SourceErr: srcErr, Raw: len(raw)}

	// outside Markdown only malformed spans are dropped
	var issues []types.Issue
	if !c.Markdown {
		issues = filter.Valid(raw, doc)
	} else {
		report.Zones = exclusion.DetectText(doc)
		if p.structural {
			report.Zones = report.Zones.Merge(exclusion.DetectStructural(text))
		}
		issues = filter.Filter(raw, doc, report.Zones, filter.Options{
			IgnoreEnglish:   c.IgnoreEnglish,
			MarkdownContext: true,
		})
	}
	report.Issues = p.suppress(issues, doc)

	p.logger.Debug("annotation finished",
		"mode", mode,
		"raw", report.Raw,
		"kept", len(report.Issues),
		"zones", len(report.Zones),
	)

	report.Status = StatusSuccess
	if mode == ModeLocal {
		report.Status = StatusFallback
	}
	p.notify(report.Status, len(report.Issues))
	return report
}

func (p *Pipeline) collect(ctx context.Context, text string, doc *types.Text) ([]types.Issue, Mode, error) {
	if p.source == nil {
		p.logger.Debug("no external source, using local heuristics")
		return heuristic.AnalyzeText(doc), ModeLocal, ErrNoSource
	}

	issues, err := p.source.Analyze(ctx, text)
	if err != nil {
		p.logger.Warn("external source failed, falling back to local heuristics", "error", err)
		p.notify(StatusError, 0)
		return heuristic.AnalyzeText(doc), ModeLocal, err
	}
	return issues, ModeExternal, nil
}

func (p *Pipeline) suppress(issues []types.Issue, doc *types.Text) []types.Issue {
	if len(p.suppressors) == 0 {
		return issues
	}
	kept := make([]types.Issue, 0, len(issues))
	for _, issue := range issues {
		snippet := strings.TrimSpace(doc.Slice(issue.Span))
		if !p.suppressed(issue, snippet) {
			kept = append(kept, issue)
		}
	}
	return kept
}

func (p *Pipeline) suppressed(issue types.Issue, snippet string) bool {
	for _, s := range p.suppressors {
		if s.Suppresses(issue, snippet) {
			p.logger.Debug("issue suppressed", "start", issue.Span.Start, "end", issue.Span.End)
			return true
		}
	}
	return false
}

func (p *Pipeline) notify(status Status, issues int) {
	if p.status != nil {
		p.status(status, issues)
	}
}
