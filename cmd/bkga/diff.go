package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bkga-dev/bkga/pkg/diff"
	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	diffFormat string
	diffColor  string
)

var diffCmd = &cobra.Command{
	Use:   "diff <original> <suggestion>",
	Short: "Show how a suggestion changes a snippet",
	Long: `Split an original snippet and its suggestion into the shared prefix,
the changed middle and the shared suffix.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffFormat, "format", "human", "Output format: human, json, html")
	diffCmd.Flags().StringVar(&diffColor, "color", "auto", "Color output: auto, always, never")
}

// diffOutput is the json form of the diff command.
type diffOutput struct {
	Diff     types.DiffResult `json:"diff"`
	Unified  string           `json:"unified,omitempty"`
	Rendered diff.Rendered    `json:"rendered"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	original, suggestion := args[0], args[1]
	out := cmd.OutOrStdout()

	switch diffFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(diffOutput{
			Diff:     diff.Compute(original, suggestion),
			Unified:  diff.Unified(original, suggestion),
			Rendered: diff.Markup(original, suggestion),
		})
	case "html":
		r := diff.Markup(original, suggestion)
		fmt.Fprintln(out, r.OriginalHTML)
		fmt.Fprintln(out, r.SuggestionHTML)
		return nil
	case "human":
		if err := configureColor(diffColor); err != nil {
			return err
		}
		s := newStyles(!color.NoColor)
		d := diff.Compute(original, suggestion)
		if d.Unchanged() {
			fmt.Fprintln(out, "No change.")
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("-"), d.Original.Prefix+s.removed.Sprint(d.Original.Changed)+d.Original.Suffix)
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("+"), d.Suggested.Prefix+s.added.Sprint(d.Suggested.Changed)+d.Suggested.Suffix)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", diffFormat)
	}
}
