package rule

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dlclark/regexp2"

	"github.com/bkga-dev/bkga/pkg/prefilter"
	"github.com/bkga-dev/bkga/pkg/types"
)

// Engine evaluates suppression rules against issue snippets.
// It is safe for concurrent use.
type Engine struct {
	rules     []*types.Rule
	compiled  map[*types.Rule]*regexp2.Regexp
	prefilter *prefilter.Prefilter
	logger    *slog.Logger
}

// NewEngine compiles rules. A pattern that fails to compile is an error.
func NewEngine(rules []*types.Rule, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		rules:     rules,
		compiled:  make(map[*types.Rule]*regexp2.Regexp, len(rules)),
		prefilter: prefilter.New(rules),
		logger:    logger,
	}
	for _, r := range rules {
		re, err := Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		e.compiled[r] = re
	}
	return e, nil
}

// Rules returns the rules loaded in the engine.
func (e *Engine) Rules() []*types.Rule {
	return e.rules
}

// Match returns the first rule, in load order, that applies to category and
// matches snippet. A pattern that times out counts as no match.
func (e *Engine) Match(category, snippet string) *types.Rule {
	if snippet == "" {
		return nil
	}
	for _, r := range e.prefilter.Filter(snippet) {
		if !r.AppliesTo(category) {
			continue
		}
		ok, err := e.compiled[r].MatchString(snippet)
		if err != nil {
			e.logger.Warn("suppression rule failed", "rule", r.ID, "error", err)
			continue
		}
		if ok {
			return r
		}
	}
	return nil
}

// Suppresses makes an Engine usable as a pipeline suppression stage.
func (e *Engine) Suppresses(issue types.Issue, snippet string) bool {
	if r := e.Match(issue.Category, snippet); r != nil {
		e.logger.Debug("issue suppressed by rule", "rule", r.ID, "snippet", snippet)
		return true
	}
	return false
}
