package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/hypelessli/hypeless/internal/mcp"
	"github.com/hypelessli/hypeless/internal/suggest"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing hype detection tools for AI agents.`,
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

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "hypeless MCP server started on stdio (terms=%d)\n", m.Registry().Len())

		srv := mcpserver.NewServer(m, suggest.NewService(store, m))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
