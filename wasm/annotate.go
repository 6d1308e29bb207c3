//go:build wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/bkga-dev/bkga"
	"github.com/bkga-dev/bkga/pkg/diff"
	"github.com/bkga-dev/bkga/pkg/pipeline"
	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	rulesCache   = make(map[string][]*types.Rule)
	rulesCacheMu sync.Mutex
)

// resolveRules loads a rules setting once per process.
func resolveRules(spec string) ([]*types.Rule, error) {
	rulesCacheMu.Lock()
	defer rulesCacheMu.Unlock()

	if rules, ok := rulesCache[spec]; ok {
		return rules, nil
	}
	rules, err := bkga.LoadRules(spec)
	if err != nil {
		return nil, err
	}
	rulesCache[spec] = rules
	return rules, nil
}

// annotate filters raw corrector issues for text. An empty issuesJSON runs
// the local analyzer instead.
func annotate(text, issuesJSON string, markdown, ignoreEnglish bool, rulesSpec string) (string, error) {
	opts := []bkga.Option{}

	if issuesJSON != "" && issuesJSON != "null" {
		var raw []types.Issue
		if err := json.Unmarshal([]byte(issuesJSON), &raw); err != nil {
			return "", fmt.Errorf("failed to parse issues JSON: %w", err)
		}
		opts = append(opts, bkga.WithSource(pipeline.SourceFunc(func(context.Context, string) ([]types.Issue, error) {
			return raw, nil
		})))
	}

	rules, err := resolveRules(rulesSpec)
	if err != nil {
		return "", fmt.Errorf("failed to load rules: %w", err)
	}
	opts = append(opts, bkga.WithRules(rules))

	annotator, err := bkga.NewAnnotator(opts...)
	if err != nil {
		return "", err
	}

	report := annotator.Annotate(context.Background(), text, bkga.Context{
		Markdown:      markdown,
		IgnoreEnglish: ignoreEnglish,
	})

	out, err := json.Marshal(map[string]any{
		"issues": report.Issues,
		"mode":   report.Mode,
		"status": report.Status,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(out), nil
}

// jsAnnotate filters issues reported for a document.
// JS: BkgaAnnotate(text, issuesJSON, markdown, ignoreEnglish[, rules]) -> JSON or {error}
func jsAnnotate(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return map[string]interface{}{"error": "text, issuesJSON, markdown and ignoreEnglish arguments required"}
	}

	rulesSpec := "none"
	if len(args) > 4 && args[4].Type() == js.TypeString {
		rulesSpec = args[4].String()
	}

	out, err := annotate(args[0].String(), args[1].String(), args[2].Bool(), args[3].Bool(), rulesSpec)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	return out
}

// jsDiff decomposes a snippet against its suggestion.
// JS: BkgaDiff(original, suggestion) -> JSON {diff, rendered}
func jsDiff(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "original and suggestion arguments required"}
	}

	original, suggestion := args[0].String(), args[1].String()
	out, err := json.Marshal(map[string]any{
		"diff":     diff.Compute(original, suggestion),
		"rendered": diff.Markup(original, suggestion),
	})
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal diff: " + err.Error()}
	}
	return string(out)
}

// jsHover renders the hover card for one issue.
// JS: BkgaHover(text, issueJSON) -> Markdown string or {error}
func jsHover(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "text and issueJSON arguments required"}
	}

	var issue types.Issue
	if err := json.Unmarshal([]byte(args[1].String()), &issue); err != nil {
		return map[string]interface{}{"error": "failed to parse issue JSON: " + err.Error()}
	}
	return diff.Hover(issue, types.NewText(args[0].String()).Slice(issue.Span))
}

// jsGetBuiltinRules returns the built-in suppression rules as JSON.
// JS: BkgaGetBuiltinRules() -> JSON rules array
func jsGetBuiltinRules(this js.Value, args []js.Value) interface{} {
	rules, err := resolveRules("builtin")
	if err != nil {
		return map[string]interface{}{"error": "failed to load builtin rules: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(rules)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal rules: " + err.Error()}
	}

	return string(jsonBytes)
}
