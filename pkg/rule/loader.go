package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bkga-dev/bkga/pkg/types"
)

// Loader handles loading suppression rules from YAML.
type Loader struct {
	rulesFS    fs.FS // built-in rules
	rulesetsFS fs.FS // built-in rulesets
}

// NewLoader creates a loader backed by the embedded built-in rules.
func NewLoader() *Loader {
	return &Loader{
		rulesFS:    builtinRulesFS,
		rulesetsFS: builtinRulesetsFS,
	}
}

// NewLoaderWithFS creates a loader over a custom filesystem holding rules/
// and rulesets/ directories.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		rulesFS:    fsys,
		rulesetsFS: fsys,
	}
}

// LoadRules parses every rule in a YAML document.
func (l *Loader) LoadRules(data []byte) ([]*types.Rule, error) {
	var yamlFile yamlRulesFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(yamlFile.Rules) == 0 {
		return nil, fmt.Errorf("no rules found in YAML")
	}

	rules := make([]*types.Rule, 0, len(yamlFile.Rules))
	for _, yr := range yamlFile.Rules {
		rules = append(rules, convertYAMLRule(yr))
	}
	return rules, nil
}

// LoadRule loads a single rule from YAML bytes.
// Returns error if YAML is invalid or multiple rules are present.
func (l *Loader) LoadRule(data []byte) (*types.Rule, error) {
	rules, err := l.LoadRules(data)
	if err != nil {
		return nil, err
	}
	if len(rules) > 1 {
		return nil, fmt.Errorf("expected single rule, found %d", len(rules))
	}
	return rules[0], nil
}

// LoadPath loads rules from a YAML file or from every .yml/.yaml file in a
// directory (recursively).
func (l *Loader) LoadPath(path string) ([]*types.Rule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return l.loadFile(path)
	}

	var rules []*types.Rule
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		loaded, err := l.loadFile(p)
		if err != nil {
			return err
		}
		rules = append(rules, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (l *Loader) loadFile(path string) ([]*types.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	rules, err := l.LoadRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// LoadRuleset loads a ruleset from YAML bytes.
// Returns error if YAML is invalid or multiple rulesets are present.
func (l *Loader) LoadRuleset(data []byte) (*types.Ruleset, error) {
	var yamlFile yamlRulesetsFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Rulesets) == 0 {
		return nil, fmt.Errorf("no rulesets found in YAML")
	}
	if len(yamlFile.Rulesets) > 1 {
		return nil, fmt.Errorf("expected single ruleset, found %d", len(yamlFile.Rulesets))
	}

	return convertYAMLRuleset(yamlFile.Rulesets[0]), nil
}

// LoadBuiltinRules loads all built-in rules.
func (l *Loader) LoadBuiltinRules() ([]*types.Rule, error) {
	var rules []*types.Rule
	err := walkYAML(l.rulesFS, "rules", func(path string, data []byte) error {
		var yamlFile yamlRulesFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, yr := range yamlFile.Rules {
			rules = append(rules, convertYAMLRule(yr))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadBuiltinRulesets loads all built-in rulesets.
func (l *Loader) LoadBuiltinRulesets() ([]*types.Ruleset, error) {
	var rulesets []*types.Ruleset
	err := walkYAML(l.rulesetsFS, "rulesets", func(path string, data []byte) error {
		var yamlFile yamlRulesetsFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, yrs := range yamlFile.Rulesets {
			rulesets = append(rulesets, convertYAMLRuleset(yrs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rulesets, nil
}

// Resolve turns a rules setting into rules: "builtin" (or empty) for the
// built-in set, "none" for no rules, "ruleset:<id>" for a built-in ruleset,
// anything else is a file or directory path.
func (l *Loader) Resolve(spec string) ([]*types.Rule, error) {
	switch {
	case spec == "" || spec == "builtin":
		return l.LoadBuiltinRules()
	case spec == "none":
		return nil, nil
	case strings.HasPrefix(spec, "ruleset:"):
		return l.LoadBuiltinRuleset(strings.TrimPrefix(spec, "ruleset:"))
	default:
		return l.LoadPath(spec)
	}
}

// LoadBuiltinRuleset returns the built-in rules selected by a ruleset ID.
func (l *Loader) LoadBuiltinRuleset(id string) ([]*types.Rule, error) {
	rulesets, err := l.LoadBuiltinRulesets()
	if err != nil {
		return nil, err
	}
	rules, err := l.LoadBuiltinRules()
	if err != nil {
		return nil, err
	}
	for _, rs := range rulesets {
		if rs.ID == id {
			return SelectRuleset(rules, rs)
		}
	}
	return nil, fmt.Errorf("unknown ruleset %q", id)
}

func walkYAML(fsys fs.FS, root string, fn func(path string, data []byte) error) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return fn(path, data)
	})
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yml" || ext == ".yaml"
}

// convertYAMLRule converts yamlRule to types.Rule and computes StructuralID.
func convertYAMLRule(yr yamlRule) *types.Rule {
	r := &types.Rule{
		ID:               yr.ID,
		Name:             yr.Name,
		Pattern:          yr.Pattern,
		Description:      yr.Description,
		Examples:         yr.Examples,
		NegativeExamples: yr.NegativeExamples,
		References:       yr.References,
		Categories:       yr.Categories,
		Keywords:         yr.Keywords,
	}
	r.StructuralID = r.ComputeStructuralID()
	return r
}

// convertYAMLRuleset converts yamlRuleset to types.Ruleset.
func convertYAMLRuleset(yrs yamlRuleset) *types.Ruleset {
	return &types.Ruleset{
		ID:          yrs.ID,
		Name:        yrs.Name,
		Description: yrs.Description,
		RuleIDs:     yrs.RuleIDs,
	}
}
