package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bkga-dev/bkga"
	"github.com/bkga-dev/bkga/pkg/config"
	"github.com/bkga-dev/bkga/pkg/corrector"
	"github.com/bkga-dev/bkga/pkg/dictionary"
)

// annotatorFlags are the config overrides shared by check and serve.
type annotatorFlags struct {
	endpoint      string
	apiKey        string
	rules         string
	dictionary    string
	ignoreEnglish bool
	structural    bool
	local         bool
}

func (f *annotatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "Corrector endpoint URL (overrides config)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Corrector API key (overrides config and environment)")
	cmd.Flags().StringVar(&f.rules, "rules", "", "Suppression rules: builtin, none, ruleset:<id>, or a path")
	cmd.Flags().StringVar(&f.dictionary, "dictionary", "", "Custom dictionary file")
	cmd.Flags().BoolVar(&f.ignoreEnglish, "ignore-english", true, "Drop issues on mostly-English snippets")
	cmd.Flags().BoolVar(&f.structural, "structural", false, "Also exclude indented code and raw HTML")
	cmd.Flags().BoolVar(&f.local, "local", false, "Skip the corrector and use the local analyzer only")
}

// apply copies explicitly set flags over cfg.
func (f *annotatorFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = f.endpoint
	}
	if flags.Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if flags.Changed("rules") {
		cfg.Rules = f.rules
	}
	if flags.Changed("dictionary") {
		cfg.Dictionary = f.dictionary
	}
	if flags.Changed("ignore-english") {
		cfg.IgnoreEnglish = f.ignoreEnglish
	}
	if flags.Changed("structural") {
		cfg.Structural = f.structural
	}
	if f.local {
		cfg.Endpoint = ""
	}
}

// newCorrector builds the corrector client from cfg.
func newCorrector(cfg *config.Config, logger *slog.Logger) (*corrector.Client, error) {
	return corrector.New(cfg.Endpoint,
		corrector.WithAPIKey(cfg.ResolveAPIKey()),
		corrector.WithTimeout(cfg.Timeout),
		corrector.WithRetries(cfg.Retries),
		corrector.WithCache(corrector.NewCache()),
		corrector.WithDictionaryEndpoint(cfg.DictionaryEndpoint),
		corrector.WithLogger(logger),
	)
}

// newAnnotator wires the corrector, suppression rules and dictionary named by
// cfg into an Annotator. Without an endpoint every run is local.
func newAnnotator(cfg *config.Config, logger *slog.Logger) (*bkga.Annotator, error) {
	opts := []bkga.Option{
		bkga.WithLogger(logger),
		bkga.WithStructural(cfg.Structural),
	}

	if cfg.Endpoint != "" {
		client, err := newCorrector(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("creating corrector: %w", err)
		}
		opts = append(opts, bkga.WithSource(client))
	} else {
		logger.Debug("no corrector endpoint configured, using local analyzer")
	}

	rules, err := bkga.LoadRules(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	if len(rules) > 0 {
		opts = append(opts, bkga.WithRules(rules))
	}

	if cfg.Dictionary != "" {
		dict, err := dictionary.Load(cfg.Dictionary)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bkga.WithDictionary(dict))
	}

	annotator, err := bkga.NewAnnotator(opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("annotator ready", "rules", annotator.RuleCount(), "external", cfg.Endpoint != "")
	return annotator, nil
}
