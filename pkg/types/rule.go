package types

import (
	"crypto/sha1"
	"encoding/hex"
	"slices"
)

// Rule suppresses issues whose snippet matches Pattern.
type Rule struct {
	ID               string   `json:"id"`                          // e.g., "bkga.path.1"
	Name             string   `json:"name"`                        // human-readable name
	Pattern          string   `json:"pattern"`                     // regex pattern, matched against the trimmed snippet
	StructuralID     string   `json:"structural_id,omitempty"`     // SHA-1 of pattern (computed)
	Description      string   `json:"description,omitempty"`       // optional
	Examples         []string `json:"examples,omitempty"`          // snippets the rule must suppress
	NegativeExamples []string `json:"negative_examples,omitempty"` // snippets the rule must leave alone
	References       []string `json:"references,omitempty"`        // documentation URLs
	Categories       []string `json:"categories,omitempty"`        // issue categories the rule applies to; empty means all
	Keywords         []string `json:"keywords,omitempty"`          // keywords for Aho-Corasick prefiltering
}

// ComputeStructuralID computes SHA-1 of the pattern.
func (r *Rule) ComputeStructuralID() string {
	h := sha1.Sum([]byte(r.Pattern))
	return hex.EncodeToString(h[:])
}

// AppliesTo reports whether the rule is scoped to an issue category.
func (r *Rule) AppliesTo(category string) bool {
	return len(r.Categories) == 0 || slices.Contains(r.Categories, category)
}

// Ruleset groups rules together.
type Ruleset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	RuleIDs     []string `json:"rule_ids"`
}
