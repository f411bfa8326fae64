package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hypeless",
	Short: "Flag hype terms in papers, pages and editor buffers",
	Long: `HypeLess finds promotional wording ("novel", "groundbreaking", ...) in
scientific writing, explains why each term is flagged and highlights it in
HTML pages or LaTeX sources. It can also ask a language model for plainer
rewrites and serve the browser-side coordinator and question relay.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".hypeless.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// serverLogging sends package logs to stderr regardless of --verbose.
// Long-running services always log.
func serverLogging() {
	log.SetOutput(os.Stderr)
}
