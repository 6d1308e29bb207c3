package rule

import "embed"

// builtinRulesFS embeds the built-in suppression rules.
//
//go:embed rules/*.yml
var builtinRulesFS embed.FS

// builtinRulesetsFS embeds the built-in rulesets.
//
//go:embed rulesets/*.yml
var builtinRulesetsFS embed.FS
