package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bkga-dev/bkga/pkg/diff"
	"github.com/bkga-dev/bkga/pkg/sarif"
	"github.com/bkga-dev/bkga/pkg/store"
	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
)

// contextRunes bounds the unchanged text shown on each side of a change.
const contextRunes = 20

// styles holds color formatters for report output
type styles struct {
	path     *color.Color
	location *color.Color
	category *color.Color
	heading  *color.Color
	removed  *color.Color
	added    *color.Color
}

// newStyles creates color formatters for report output
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		path:     color.New(color.Bold, color.FgHiWhite),
		location: color.New(color.FgHiBlue),
		category: color.New(color.Bold, color.FgHiYellow),
		heading:  color.New(color.Bold),
		removed:  color.New(color.FgRed, color.CrossedOut),
		added:    color.New(color.FgGreen, color.Bold),
	}

	if !enabled {
		s.path.DisableColor()
		s.location.DisableColor()
		s.category.DisableColor()
		s.heading.DisableColor()
		s.removed.DisableColor()
		s.added.DisableColor()
	}

	return s
}

// documentReport is one document with its annotations in offset order.
type documentReport struct {
	Path        string              `json:"path"`
	DocumentID  types.DocumentID    `json:"document_id"`
	Annotations []*types.Annotation `json:"annotations"`
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the results of a previous check",
	Long:  "Read annotations from a datastore and print them",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatastore, "datastore", "bkga.db", "Path to datastore file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json, sarif")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportDatastore == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}
	if _, err := os.Stat(reportDatastore); err != nil {
		return fmt.Errorf("datastore not found: %s", reportDatastore)
	}

	s, err := store.New(store.Config{Path: reportDatastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	return writeResults(cmd, s, reportFormat, reportColor)
}

// =============================================================================
// HELPERS
// =============================================================================

// writeResults prints every stored document and annotation in format.
func writeResults(cmd *cobra.Command, s store.Store, format, colorMode string) error {
	docs, err := s.GetDocuments()
	if err != nil {
		return fmt.Errorf("retrieving documents: %w", err)
	}
	annotations, err := s.GetAllAnnotations()
	if err != nil {
		return fmt.Errorf("retrieving annotations: %w", err)
	}
	reports := groupByDocument(docs, annotations)

	switch format {
	case "json":
		return outputReportJSON(cmd.OutOrStdout(), reports)
	case "sarif":
		return outputReportSARIF(cmd.OutOrStdout(), reports)
	case "human":
		if err := configureColor(colorMode); err != nil {
			return err
		}
		return outputReportHuman(cmd.OutOrStdout(), newStyles(!color.NoColor), reports)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// groupByDocument attaches annotations to their documents, keeping the
// store's document order and sorting annotations by offset.
func groupByDocument(docs []store.Document, annotations []*types.Annotation) []documentReport {
	byDoc := make(map[types.DocumentID][]*types.Annotation)
	for _, a := range annotations {
		byDoc[a.DocumentID] = append(byDoc[a.DocumentID], a)
	}

	reports := make([]documentReport, 0, len(docs))
	for _, d := range docs {
		list := byDoc[d.ID]
		slices.SortStableFunc(list, func(a, b *types.Annotation) int {
			return cmp.Or(
				cmp.Compare(a.Issue.Span.Start, b.Issue.Span.Start),
				cmp.Compare(a.Issue.Span.End, b.Issue.Span.End),
			)
		})
		if list == nil {
			list = []*types.Annotation{}
		}
		reports = append(reports, documentReport{Path: d.Path, DocumentID: d.ID, Annotations: list})
	}
	return reports
}

// configureColor applies --color. auto enables color only for a terminal
// stdout without NO_COLOR.
func configureColor(mode string) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "", "auto":
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != ""
	default:
		return fmt.Errorf("unknown color mode: %s", mode)
	}
	return nil
}

func outputReportJSON(w io.Writer, reports []documentReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

func outputReportSARIF(w io.Writer, reports []documentReport) error {
	report := sarif.NewReport()
	for _, r := range reports {
		for _, a := range r.Annotations {
			report.AddResult(a, r.Path)
		}
	}

	jsonBytes, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	if _, err := w.Write(jsonBytes); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

func outputReportHuman(w io.Writer, s *styles, reports []documentReport) error {
	total := 0
	for _, r := range reports {
		total += len(r.Annotations)
	}
	if total == 0 {
		fmt.Fprintf(w, "\nNo issues.\n")
		return nil
	}

	for _, r := range reports {
		if len(r.Annotations) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", s.path.Sprint(r.Path))

		for _, a := range r.Annotations {
			start := a.Location.Source.Start
			fmt.Fprintf(w, "  %s  %s  %s\n",
				s.location.Sprintf("%d:%d", start.Line, start.Column),
				s.category.Sprint(types.CategoryInfo(a.Issue.Category).Name),
				a.Issue.Message)

			if !a.Issue.HasSuggestion() || a.Issue.SuggestionText() == a.Snippet {
				continue
			}
			d := diff.Compute(a.Snippet, a.Issue.SuggestionText())
			fmt.Fprintf(w, "      %s %s\n", s.heading.Sprint("-"), formatSide(d.Original, s.removed))
			fmt.Fprintf(w, "      %s %s\n", s.heading.Sprint("+"), formatSide(d.Suggested, s.added))
		}
	}

	fmt.Fprintf(w, "\n%s %d issues in %d documents\n", s.heading.Sprint("Total:"), total, countWithIssues(reports))
	return nil
}

// formatSide renders one side of a diff with its changed segment styled and
// the unchanged context shortened.
func formatSide(seg types.Segments, style *color.Color) string {
	return trimLeft(seg.Prefix, contextRunes) + style.Sprint(seg.Changed) + trimRight(seg.Suffix, contextRunes)
}

// trimLeft keeps the last n runes of s, marking the cut with "...".
func trimLeft(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n:])
}

// trimRight keeps the first n runes of s, marking the cut with "...".
func trimRight(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func countWithIssues(reports []documentReport) int {
	n := 0
	for _, r := range reports {
		if len(r.Annotations) > 0 {
			n++
		}
	}
	return n
}
