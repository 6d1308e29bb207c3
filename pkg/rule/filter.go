package rule

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bkga-dev/bkga/pkg/types"
)

// FilterConfig specifies which rules to keep.
type FilterConfig struct {
	Include    []string // regex patterns on rule IDs; only matching rules are kept
	Exclude    []string // regex patterns on rule IDs; matching rules are dropped
	Categories []string // keep only rules that apply to one of these issue categories
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include, exclude and category selection, in that order.
// Empty include means "include all".
// Returns error if any pattern is invalid regex.
func Filter(rules []*types.Rule, config FilterConfig) ([]*types.Rule, error) {
	if len(rules) == 0 {
		return rules, nil
	}

	includeRegexes, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	excludeRegexes, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	result := make([]*types.Rule, 0, len(rules))
	for _, rule := range rules {
		if len(includeRegexes) > 0 && !matchesAny(rule.ID, includeRegexes) {
			continue
		}
		if matchesAny(rule.ID, excludeRegexes) {
			continue
		}
		if len(config.Categories) > 0 && !appliesToAny(rule, config.Categories) {
			continue
		}
		result = append(result, rule)
	}
	return result, nil
}

// SelectRuleset returns the rules a ruleset references, in ruleset order.
func SelectRuleset(rules []*types.Rule, rs *types.Ruleset) ([]*types.Rule, error) {
	byID := make(map[string]*types.Rule, len(rules))
	for _, r := range rules {
		byID[r.ID] = r
	}

	selected := make([]*types.Rule, 0, len(rs.RuleIDs))
	for _, id := range rs.RuleIDs {
		r, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("ruleset %s references unknown rule ID: %s", rs.ID, id)
		}
		selected = append(selected, r)
	}
	return selected, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func matchesAny(ruleID string, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(ruleID) {
			return true
		}
	}
	return false
}

func appliesToAny(rule *types.Rule, categories []string) bool {
	if len(rule.Categories) == 0 {
		return true
	}
	return slices.ContainsFunc(categories, rule.AppliesTo)
}
