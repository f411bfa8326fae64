package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var relayPort int

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Start only the question relay",
	Long:  `Serves POST /ask-groq, forwarding questions with the recent history to Groq. Requires GROQ_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverLogging()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Relay.Port = relayPort
		}

		srv := newRelayServer(cfg)
		fmt.Fprintf(os.Stderr, "hypeless relay %s on http://localhost:%d/ask-groq (model %s)\n", Version, cfg.Relay.Port, cfg.Relay.Model)
		return runServers(srv)
	},
}

func init() {
	relayCmd.Flags().IntVar(&relayPort, "port", 3001, "port to listen on (default from config)")
	rootCmd.AddCommand(relayCmd)
}
