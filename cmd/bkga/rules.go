package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bkga-dev/bkga/pkg/rule"
	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	rulesPath    string
	rulesInclude string
	rulesExclude string
	outputFormat string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage suppression rules",
	Long:  "Commands for listing and validating snippet suppression rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available rules",
	Long:  "Display all available suppression rules with their IDs, names and categories",
	RunE:  runRulesList,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a rules file or directory",
	Long:  "Check that every rule compiles, matches its examples and rejects its negative examples",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesValidate,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesListCmd.Flags().StringVar(&rulesPath, "rules", "builtin", "Rules: builtin, ruleset:<id>, or a file or directory path")
	rulesListCmd.Flags().StringVar(&rulesInclude, "rules-include", "", "Include rules matching regex pattern (comma-separated)")
	rulesListCmd.Flags().StringVar(&rulesExclude, "rules-exclude", "", "Exclude rules matching regex pattern (comma-separated)")
	rulesListCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table, json")
}

func runRulesList(cmd *cobra.Command, args []string) error {
	rules, err := loadRules(rulesPath, rulesInclude, rulesExclude)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	// Output based on format
	switch outputFormat {
	case "json":
		return outputRulesJSON(cmd, rules)
	case "table":
		return outputRulesTable(cmd, rules)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	rules, err := rule.NewLoader().LoadPath(args[0])
	if err != nil {
		return fmt.Errorf("loading rules from %s: %w", args[0], err)
	}
	if err := rule.ValidateRules(rules); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d rules valid\n", len(rules))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func loadRules(spec, include, exclude string) ([]*types.Rule, error) {
	rules, err := rule.NewLoader().Resolve(spec)
	if err != nil {
		return nil, err
	}

	// Apply filtering if patterns specified
	if include != "" || exclude != "" {
		config := rule.FilterConfig{
			Include: rule.ParsePatterns(include),
			Exclude: rule.ParsePatterns(exclude),
		}
		rules, err = rule.Filter(rules, config)
		if err != nil {
			return nil, fmt.Errorf("filtering rules: %w", err)
		}
	}

	return rules, nil
}

func outputRulesJSON(cmd *cobra.Command, rules []*types.Rule) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(rules)
}

func outputRulesTable(cmd *cobra.Command, rules []*types.Rule) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tCategories\n")
	fmt.Fprintf(w, "--\t----\t----------\n")

	for _, r := range rules {
		categories := "all"
		if len(r.Categories) > 0 {
			categories = strings.Join(r.Categories, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Name, categories)
	}

	return nil
}
