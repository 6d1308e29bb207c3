// Package prefilter narrows the suppression rules worth evaluating for a
// snippet using an Aho-Corasick keyword scan.
package prefilter

import (
	"slices"

	"github.com/cloudflare/ahocorasick"

	"github.com/bkga-dev/bkga/pkg/types"
)

// Prefilter uses Aho-Corasick for efficient keyword matching.
type Prefilter struct {
	matcher        *ahocorasick.Matcher
	keywords       []string         // keyword at each index
	keywordRules   map[string][]int // keyword -> indexes of rules needing it
	noKeywordRules []int            // rules without keywords (always checked)
	rules          []*types.Rule
}

// New creates a prefilter from rules. Filter results keep this order.
func New(rules []*types.Rule) *Prefilter {
	pf := &Prefilter{
		keywordRules: make(map[string][]int),
		rules:        rules,
	}

	keywordSet := make(map[string]bool)
	for i, rule := range rules {
		if len(rule.Keywords) == 0 {
			pf.noKeywordRules = append(pf.noKeywordRules, i)
			continue
		}
		for _, keyword := range rule.Keywords {
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordRules[keyword] = append(pf.keywordRules[keyword], i)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Filter returns rules that might match snippet: rules whose keyword occurs
// in it plus every rule without keywords, in their original order.
func (pf *Prefilter) Filter(snippet string) []*types.Rule {
	candidates := slices.Clone(pf.noKeywordRules)

	if pf.matcher != nil {
		seen := make(map[int]bool, len(candidates))
		for _, i := range candidates {
			seen[i] = true
		}
		for _, hit := range pf.matcher.Match([]byte(snippet)) {
			for _, i := range pf.keywordRules[pf.keywords[hit]] {
				if !seen[i] {
					seen[i] = true
					candidates = append(candidates, i)
				}
			}
		}
	}

	slices.Sort(candidates)
	result := make([]*types.Rule, 0, len(candidates))
	for _, i := range candidates {
		result = append(result, pf.rules[i])
	}
	return result
}

// Keywords returns the distinct keywords known to the prefilter.
func (pf *Prefilter) Keywords() []string {
	return slices.Clone(pf.keywords)
}
