package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the flagged terms and exception phrases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TERM\tEXPLANATION")
		for _, t := range reg.Terms() {
			fmt.Fprintf(w, "%s\t%s\n", t.Text, t.Explanation)
		}
		w.Flush()

		if ex := reg.Exceptions(); len(ex) > 0 {
			fmt.Println("\nExceptions:")
			for _, e := range ex {
				fmt.Printf("  %s\n", e)
			}
		}
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <term>",
	Short: "Explain why a term is flagged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}
		expl, ok := reg.Explain(args[0])
		if !ok {
			return fmt.Errorf("%q is not a flagged term", args[0])
		}
		fmt.Println(expl)
		return nil
	},
}

func init() {
	termsCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(termsCmd)
}
