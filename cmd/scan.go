package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/syntax"
	"github.com/hypelessli/hypeless/internal/walker"
)

var (
	scanStructured bool
	scanJSON       bool
)

// lineHit is a hit with its one-based line. Offset counts runes within the
// line.
type lineHit struct {
	Line int `json:"line"`
	matcher.Hit
}

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Print the hype terms found in a file or stdin",
	Long: `Matches the text line by line and prints every flagged occurrence. LaTeX
files (.tex) are scanned in structured mode, which skips commands, braces and
math; --structured forces it for other input.`,
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

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		text, err := readInput(name)
		if err != nil {
			return err
		}
		structured := scanStructured || walker.DetectKind(name).Structured()

		hits := scanLines(m, text, structured)
		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		}

		if len(hits) == 0 {
			fmt.Println("No hype terms found.")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%d:%d  %s", h.Line, h.Offset+1, h.Text)
			if h.Explanation != "" {
				fmt.Printf("  (%s)", h.Explanation)
			}
			fmt.Println()
		}
		fmt.Fprintf(os.Stderr, "%d term occurrence(s)\n", len(hits))
		return nil
	},
}

// scanLines matches each line, dropping hits inside markup zones in
// structured mode.
func scanLines(m *matcher.Matcher, text string, structured bool) []lineHit {
	hits := []lineHit{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		found := m.Find(line)
		if len(found) == 0 {
			continue
		}
		var zones []syntax.Zone
		if structured {
			zones = syntax.Zones(line)
		}
		for _, h := range found {
			if structured && syntax.Excluded(zones, h.Offset, h.End()) {
				continue
			}
			hits = append(hits, lineHit{Line: i + 1, Hit: h})
		}
	}
	return hits
}

func init() {
	scanCmd.Flags().BoolVar(&scanStructured, "structured", false, "skip LaTeX markup regardless of the file extension")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print hits as JSON")
	rootCmd.AddCommand(scanCmd)
}
