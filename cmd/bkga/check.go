package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bkga-dev/bkga/pkg/config"
	"github.com/bkga-dev/bkga/pkg/enum"
	"github.com/bkga-dev/bkga/pkg/pipeline"
	"github.com/bkga-dev/bkga/pkg/store"
	"github.com/bkga-dev/bkga/pkg/types"
)

var (
	checkFlags         annotatorFlags
	checkOutputPath    string
	checkOutputFormat  string
	checkMarkdown      string
	checkColor         string
	checkMaxFileSize   int64
	checkIncludeHidden bool
	checkIncremental   bool
	checkFail          bool
)

// ErrIssuesFound is returned by check --fail when any issue was reported.
var ErrIssuesFound = errors.New("issues found")

var checkCmd = &cobra.Command{
	Use:   "check <target>...",
	Short: "Check documents for Korean grammar issues",
	Long: `Check a file or directory for Korean spelling and spacing issues.

Directories are walked honouring .gitignore and the include globs from the
configuration. Several targets may be given; a document reachable from more
than one of them is checked once. Results are stored in a database that
report can re-read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkFlags.register(checkCmd)
	checkCmd.Flags().StringVar(&checkOutputPath, "output", "bkga.db", "Output database path")
	checkCmd.Flags().StringVar(&checkOutputFormat, "format", "human", "Output format: json, sarif, human")
	checkCmd.Flags().StringVar(&checkMarkdown, "markdown", "auto", "Markdown exclusions: auto, always, never")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
	checkCmd.Flags().Int64Var(&checkMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to check (bytes)")
	checkCmd.Flags().BoolVar(&checkIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	checkCmd.Flags().BoolVar(&checkIncremental, "incremental", false, "Skip documents already in the database")
	checkCmd.Flags().BoolVar(&checkFail, "fail", false, "Exit with an error when any issue is found")
}

func runCheck(cmd *cobra.Command, args []string) error {
	for _, target := range args {
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("target does not exist: %s", target)
		}
	}

	markdownFor, err := markdownMode(checkMarkdown)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	checkFlags.apply(cmd, cfg)

	logger := newLogger(cmd.ErrOrStderr())

	annotator, err := newAnnotator(cfg, logger)
	if err != nil {
		return err
	}

	s, err := store.New(store.Config{
		Path: checkOutputPath,
	})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	enumerators := make([]enum.Enumerator, 0, len(args))
	for _, target := range args {
		enumerators = append(enumerators, enum.NewFilesystemEnumerator(enum.Config{
			Root:          target,
			Include:       cfg.Include,
			IncludeHidden: checkIncludeHidden,
			MaxFileSize:   checkMaxFileSize,
		}))
	}
	enumerator := enum.NewCombinedEnumerator(enumerators...)

	ctx := context.Background()

	var mu sync.Mutex
	documentCount := 0
	issueCount := 0
	skippedCount := 0
	fallbackCount := 0

	err = enumerator.Enumerate(ctx, func(path string, content []byte, id types.DocumentID) error {
		if checkIncremental {
			exists, err := s.DocumentExists(id)
			if err != nil {
				return fmt.Errorf("checking document: %w", err)
			}
			if exists {
				mu.Lock()
				skippedCount++
				mu.Unlock()
				return nil
			}
		}

		text := string(content)
		report := annotator.Annotate(ctx, text, pipeline.Context{
			Markdown:      markdownFor(path),
			IgnoreEnglish: cfg.IgnoreEnglish,
			Disabled:      !cfg.Enabled,
		})
		if report.SourceErr != nil && !errors.Is(report.SourceErr, pipeline.ErrNoSource) {
			logger.Warn("corrector failed, used local analyzer", "path", path, "error", report.SourceErr)
		}
		logger.Debug("checked document", "path", path, "raw", report.Raw, "issues", len(report.Issues), "mode", report.Mode)

		doc := types.NewText(text)

		mu.Lock()
		defer mu.Unlock()

		documentCount++
		if report.Status == pipeline.StatusFallback {
			fallbackCount++
		}

		if err := s.AddDocument(store.Document{ID: id, Path: path, Size: int64(len(content))}); err != nil {
			return fmt.Errorf("storing document: %w", err)
		}
		for _, issue := range report.Issues {
			issueCount++
			if err := s.AddAnnotation(types.NewAnnotation(id, doc, issue)); err != nil {
				return fmt.Errorf("storing annotation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("checking: %w", err)
	}

	// Summary goes to stderr for json/sarif to keep stdout machine-readable
	summary := cmd.OutOrStdout()
	if checkOutputFormat == "json" || checkOutputFormat == "sarif" {
		summary = cmd.ErrOrStderr()
	}
	if checkIncremental {
		fmt.Fprintf(summary, "Check complete: %d documents, %d issues (%d documents skipped)\n", documentCount, issueCount, skippedCount)
	} else {
		fmt.Fprintf(summary, "Check complete: %d documents, %d issues\n", documentCount, issueCount)
	}
	if fallbackCount > 0 {
		fmt.Fprintf(summary, "Local analyzer used for %d documents\n", fallbackCount)
	}
	fmt.Fprintf(summary, "Results stored in: %s\n", checkOutputPath)

	if err := writeResults(cmd, s, checkOutputFormat, checkColor); err != nil {
		return err
	}

	if checkFail && issueCount > 0 {
		return fmt.Errorf("%w: %d", ErrIssuesFound, issueCount)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// markdownMode maps the --markdown flag to a per-path decision.
func markdownMode(mode string) (func(path string) bool, error) {
	switch mode {
	case "", "auto":
		return config.IsMarkdownPath, nil
	case "always":
		return func(string) bool { return true }, nil
	case "never":
		return func(string) bool { return false }, nil
	default:
		return nil, fmt.Errorf("unknown markdown mode: %s", mode)
	}
}
