package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize hypeless configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure hypeless for your project and generates a .hypeless.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
