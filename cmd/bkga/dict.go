package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bkga-dev/bkga/pkg/config"
	"github.com/bkga-dev/bkga/pkg/dictionary"
)

// defaultDictionaryFile is used when neither --file nor the config names one.
const defaultDictionaryFile = "bkga-dictionary.yaml"

var (
	dictFile     string
	dictDomain   string
	dictEndpoint string
	dictAPIKey   string
	dictFormat   string
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the custom dictionary",
	Long: `Commands for editing the custom dictionary and pushing it to the corrector.

Sets: np_set (proper nouns), cp_set (compound nouns), cp_caret_set
(compound nouns split with ^), vv_set (verbs), va_set (adjectives).`,
}

var dictAddCmd = &cobra.Command{
	Use:   "add <set> <word>...",
	Short: "Add words to a set",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDictAdd,
}

var dictRemoveCmd = &cobra.Command{
	Use:   "remove <set> <word>...",
	Short: "Remove words from a set",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDictRemove,
}

var dictLookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Show which sets contain a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictLookup,
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every set and its words",
	RunE:  runDictList,
}

var dictSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the dictionary to the corrector",
	RunE:  runDictSync,
}

func init() {
	dictCmd.PersistentFlags().StringVar(&dictFile, "file", "", "Dictionary file (default: config dictionary, then "+defaultDictionaryFile+")")
	dictListCmd.Flags().StringVar(&dictFormat, "format", "table", "Output format: table, json")
	dictSyncCmd.Flags().StringVar(&dictDomain, "domain", "", "Domain name (overrides the file and config)")
	dictSyncCmd.Flags().StringVar(&dictEndpoint, "endpoint", "", "Dictionary endpoint URL (overrides config)")
	dictSyncCmd.Flags().StringVar(&dictAPIKey, "api-key", "", "Corrector API key (overrides config and environment)")

	dictCmd.AddCommand(dictAddCmd, dictRemoveCmd, dictLookupCmd, dictListCmd, dictSyncCmd)
	rootCmd.AddCommand(dictCmd)
}

// openDictionary resolves the dictionary path and loads it.
func openDictionary() (string, *dictionary.Dictionary, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", nil, nil, err
	}

	path := dictFile
	if path == "" {
		path = cfg.Dictionary
	}
	if path == "" {
		path = defaultDictionaryFile
	}

	dict, err := dictionary.Load(path)
	if err != nil {
		return "", nil, nil, err
	}
	return path, dict, cfg, nil
}

func runDictAdd(cmd *cobra.Command, args []string) error {
	return editDictionary(cmd, args, "Added", (*dictionary.Dictionary).Add)
}

func runDictRemove(cmd *cobra.Command, args []string) error {
	return editDictionary(cmd, args, "Removed", (*dictionary.Dictionary).Remove)
}

func editDictionary(cmd *cobra.Command, args []string, verb string, edit func(*dictionary.Dictionary, string, dictionary.Key) error) error {
	key, err := dictionary.ParseKey(args[0])
	if err != nil {
		return err
	}

	path, dict, _, err := openDictionary()
	if err != nil {
		return err
	}

	for _, word := range args[1:] {
		if err := edit(dict, word, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %q (%s)\n", verb, word, dictionary.Labels[key].Title)
	}

	return dict.Save(path)
}

func runDictLookup(cmd *cobra.Command, args []string) error {
	_, dict, _, err := openDictionary()
	if err != nil {
		return err
	}

	keys := dict.Lookup(args[0])
	if len(keys) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%q is not in the dictionary\n", args[0])
		return nil
	}
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, dictionary.Labels[k].Title)
	}
	return nil
}

func runDictList(cmd *cobra.Command, args []string) error {
	_, dict, _, err := openDictionary()
	if err != nil {
		return err
	}
	snap := dict.Snapshot()

	switch dictFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(snap)
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintf(w, "Set\tTitle\tWords\n")
		fmt.Fprintf(w, "---\t-----\t-----\n")
		for _, k := range dictionary.Keys {
			fmt.Fprintf(w, "%s\t%s\t%d\n", k, dictionary.Labels[k].Title, len(snap[k]))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", dictFormat)
	}
}

func runDictSync(cmd *cobra.Command, args []string) error {
	_, dict, cfg, err := openDictionary()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("endpoint") {
		cfg.DictionaryEndpoint = dictEndpoint
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = dictAPIKey
	}
	switch {
	case dictDomain != "":
		dict.SetDomain(dictDomain)
	case dict.Domain() == "" && cfg.DomainName != "":
		dict.SetDomain(cfg.DomainName)
	}

	payload, err := dict.Payload()
	if err != nil {
		return err
	}

	// the analyze endpoint is unused here but the client requires one
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = cfg.DictionaryEndpoint
	}
	cfg.Endpoint = endpoint

	client, err := newCorrector(cfg, newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("creating corrector: %w", err)
	}
	if err := client.UpdateCustomDictionary(context.Background(), payload); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced %d words for domain %q\n", dict.Len(), payload.DomainName)
	return nil
}
