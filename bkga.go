// Package bkga annotates Korean prose with grammar and spelling issues.
//
// An Annotator obtains raw issues from an external corrector (or, when none
// is configured or it fails, from a local whitespace analyzer), drops the
// ones that fall inside code, links and other regions that are not prose,
// and returns the survivors as UTF-16 offset spans ready for an editor.
//
// # Basic Usage
//
//	client, err := corrector.New("https://corrector.example/analyze",
//	    corrector.WithAPIKey(os.Getenv("BKGA_API_KEY")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	annotator, err := bkga.NewAnnotator(bkga.WithSource(client))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	issues := annotator.Run(ctx, text, bkga.Context{Markdown: true, IgnoreEnglish: true})
//	for _, issue := range issues {
//	    fmt.Printf("%d-%d %s\n", issue.Span.Start, issue.Span.End, issue.Message)
//	}
//
// # Suppression Rules and Dictionaries
//
// Snippets such as file paths or hashtags can be suppressed with rules, and
// words from a custom dictionary are accepted as written:
//
//	rules, _ := bkga.LoadBuiltinRules()
//	dict, _ := dictionary.Load("words.yaml")
//	annotator, err := bkga.NewAnnotator(
//	    bkga.WithSource(client),
//	    bkga.WithRules(rules),
//	    bkga.WithDictionary(dict),
//	)
package bkga

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bkga-dev/bkga/pkg/dictionary"
	"github.com/bkga-dev/bkga/pkg/diff"
	"github.com/bkga-dev/bkga/pkg/pipeline"
	"github.com/bkga-dev/bkga/pkg/rule"
	"github.com/bkga-dev/bkga/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// Issue is one reported problem in a document snapshot.
	Issue = types.Issue

	// Span is a half-open range of UTF-16 code-unit offsets.
	Span = types.Span

	// DiffResult decomposes an original snippet and its suggestion.
	DiffResult = types.DiffResult

	// Rule suppresses issues whose snippet matches a pattern.
	Rule = types.Rule

	// Context holds per-document settings.
	Context = pipeline.Context

	// Report is the full outcome of one annotation run.
	Report = pipeline.Report

	// Status is the out-of-band analysis state.
	Status = pipeline.Status
)

// Annotator runs the annotation pipeline with optional suppression stages.
// It is safe for concurrent use when its source is.
type Annotator struct {
	pipeline *pipeline.Pipeline
	engine   *rule.Engine
	config   *annotatorConfig
}

type annotatorConfig struct {
	source     pipeline.Source
	logger     *slog.Logger
	rules      []*types.Rule
	dictionary *dictionary.Dictionary
	structural bool
	status     pipeline.StatusFunc
}

// Option configures an Annotator.
type Option func(*annotatorConfig)

// WithSource sets the external issue source, typically a *corrector.Client.
// Without one every run uses the local analyzer.
func WithSource(s pipeline.Source) Option {
	return func(c *annotatorConfig) {
		c.source = s
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *annotatorConfig) {
		c.logger = l
	}
}

// WithRules enables snippet suppression rules. No rules are applied by
// default.
func WithRules(rules []*Rule) Option {
	return func(c *annotatorConfig) {
		c.rules = rules
	}
}

// WithDictionary accepts words from a custom dictionary as written.
func WithDictionary(d *dictionary.Dictionary) Option {
	return func(c *annotatorConfig) {
		c.dictionary = d
	}
}

// WithStructural adds indented code blocks and HTML, found by a Markdown
// parser, to the exclusion zones of Markdown documents.
func WithStructural(enabled bool) Option {
	return func(c *annotatorConfig) {
		c.structural = enabled
	}
}

// WithStatusFunc registers a callback for status transitions.
func WithStatusFunc(fn pipeline.StatusFunc) Option {
	return func(c *annotatorConfig) {
		c.status = fn
	}
}

// NewAnnotator creates an Annotator. It fails only when a suppression rule
// does not compile.
func NewAnnotator(opts ...Option) (*Annotator, error) {
	config := &annotatorConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.logger == nil {
		config.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &Annotator{config: config}

	var suppressors []pipeline.Suppressor
	if len(config.rules) > 0 {
		engine, err := rule.NewEngine(config.rules, config.logger)
		if err != nil {
			return nil, fmt.Errorf("creating rule engine: %w", err)
		}
		a.engine = engine
		suppressors = append(suppressors, engine)
	}
	if config.dictionary != nil {
		suppressors = append(suppressors, config.dictionary)
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(config.logger),
		pipeline.WithStatusFunc(config.status),
		pipeline.WithStructural(config.structural),
		pipeline.WithSuppressors(suppressors...),
	}
	if config.source != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithSource(config.source))
	}
	a.pipeline = pipeline.New(pipelineOpts...)

	return a, nil
}

// Annotate runs the pipeline over text and returns the full report.
func (a *Annotator) Annotate(ctx context.Context, text string, c Context) Report {
	return a.pipeline.Analyze(ctx, text, c)
}

// Run annotates text and returns only the surviving issues.
func (a *Annotator) Run(ctx context.Context, text string, c Context) []Issue {
	return a.pipeline.Run(ctx, text, c)
}

// Diffs decomposes each issue's snippet against its suggestion, in issue
// order. Issues without a suggestion yield an unchanged result.
func (a *Annotator) Diffs(text string, issues []Issue) []DiffResult {
	doc := types.NewText(text)
	results := make([]DiffResult, len(issues))
	for i, issue := range issues {
		original := doc.Slice(issue.Span)
		suggestion := original
		if issue.HasSuggestion() {
			suggestion = issue.SuggestionText()
		}
		results[i] = diff.Compute(original, suggestion)
	}
	return results
}

// Hover renders the Markdown hover card for an issue in text.
func (a *Annotator) Hover(text string, issue Issue) string {
	return diff.Hover(issue, types.NewText(text).Slice(issue.Span))
}

// Apply returns text with the issue's suggestion written over its span.
func Apply(text string, issue Issue) (string, error) {
	return diff.Apply(text, issue)
}

// Lookup returns the dictionary sets holding word. It is empty without a
// dictionary.
func (a *Annotator) Lookup(word string) []dictionary.Key {
	if a.config.dictionary == nil {
		return nil
	}
	return a.config.dictionary.Lookup(word)
}

// Dictionary returns the configured dictionary, or nil.
func (a *Annotator) Dictionary() *dictionary.Dictionary {
	return a.config.dictionary
}

// RuleCount returns the number of suppression rules loaded.
func (a *Annotator) RuleCount() int {
	return len(a.config.rules)
}

// Rules returns a copy of the loaded suppression rules.
func (a *Annotator) Rules() []*Rule {
	rules := make([]*Rule, len(a.config.rules))
	copy(rules, a.config.rules)
	return rules
}

// LoadBuiltinRules returns all builtin suppression rules.
func LoadBuiltinRules() ([]*Rule, error) {
	return rule.NewLoader().LoadBuiltinRules()
}

// LoadRules resolves a rules setting: "builtin", "none", "ruleset:<id>",
// or a YAML file or directory path.
//
// Example:
//
//	rules, err := bkga.LoadRules("ruleset:technical")
//	if err != nil {
//	    return err
//	}
//	annotator, err := bkga.NewAnnotator(bkga.WithRules(rules))
func LoadRules(spec string) ([]*Rule, error) {
	return rule.NewLoader().Resolve(spec)
}
