package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/llm"
	"github.com/hypelessli/hypeless/internal/suggest"
)

var (
	suggestTerms []string
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Ask the configured model for plainer rewrites",
	Long: `Sends the text (a file, or stdin) to the configured model provider together
with the hype terms found in it, and prints the suggested rewrites. The
provider, model and style come from the settings store, falling back to the
llm section of the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := loadMatcher(cfg)
		if err != nil {
			return err
		}
		store, closer, err := openSettings(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		text, err := readInput(name)
		if err != nil {
			return err
		}

		suggestions, err := suggest.NewService(store, m).Generate(cmd.Context(), text, suggestTerms)
		if errors.Is(err, llm.ErrNotConfigured) {
			return fmt.Errorf("%w\nRun `hypeless init` or export the provider's API key", err)
		}
		if err != nil {
			return err
		}

		if suggestJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		}
		if len(suggestions) == 0 {
			fmt.Println("No suggestions.")
			return nil
		}
		for i, s := range suggestions {
			fmt.Printf("%d. %s\n   -> %s\n", i+1, s.Original, s.Improved)
			if s.Reason != "" {
				fmt.Printf("   %s: %s\n", s.Type, s.Reason)
			}
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringSliceVar(&suggestTerms, "terms", nil, "flagged terms to mention (default: the terms found in the text)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}
