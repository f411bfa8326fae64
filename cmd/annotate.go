package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/progress"
	"github.com/hypelessli/hypeless/internal/session"
	"github.com/hypelessli/hypeless/internal/surface/dom"
	"github.com/hypelessli/hypeless/internal/walker"
)

var (
	annotateOut  string
	annotateOpen bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [dir]",
	Short: "Highlight hype terms in HTML documents",
	Long: `Scans the HTML documents under dir (default: the current directory) and
writes annotated copies with highlighted terms and the HypeLess side panel
into the output directory. While HypeLess is turned off (see "hypeless
state") the copies carry the panel but no highlights.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		out := cfg.Annotate.OutputDir
		if annotateOut != "" {
			out = annotateOut
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
		if enabled, _ := store.Enabled(cmd.Context()); !enabled {
			fmt.Fprintln(os.Stderr, "HypeLess is turned off; writing documents without highlights.")
		}

		files, err := walker.Walk(walker.Config{
			RootDir: root,
			Include: cfg.Annotate.Include,
			Exclude: cfg.Annotate.Exclude,
		})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No documents matched the include patterns.")
			return nil
		}

		reporter := progress.NewReporter("Annotating")
		reporter.Start(len(files))

		var annotated, flagged int
		for i, f := range files {
			reporter.Update(i+1, f.RelPath)
			if f.Kind != walker.KindHTML {
				if verbose {
					fmt.Fprintf(os.Stderr, "skipping %s: not an HTML document\n", f.RelPath)
				}
				continue
			}
			n, err := annotateFile(cmd.Context(), m, store, f, filepath.Join(out, filepath.FromSlash(f.RelPath)))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", f.RelPath, err)
				continue
			}
			annotated++
			flagged += n
		}
		reporter.Finish()

		fmt.Fprintf(os.Stderr, "Annotated %d document(s), %d term occurrence(s) flagged. Output: %s\n", annotated, flagged, out)
		return nil
	},
}

// annotateFile highlights one document unless store says disabled, appends
// the panel and writes the result to dst. It returns the number of
// highlighted occurrences.
func annotateFile(ctx context.Context, m *matcher.Matcher, store session.EnabledSource, f walker.FileInfo, dst string) (int, error) {
	src, err := os.Open(f.Path)
	if err != nil {
		return 0, err
	}
	doc, err := dom.Parse(src, m)
	src.Close()
	if err != nil {
		return 0, err
	}

	c := session.New(store)
	defer c.Close()
	if err := c.Start(ctx, doc); err != nil {
		return 0, err
	}
	if annotateOpen {
		c.ToggleSidebar()
	}

	var panel bytes.Buffer
	if err := c.RenderPanel(&panel); err != nil {
		return 0, err
	}
	if err := doc.AppendUI(panel.String()); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	if err := doc.Render(out); err != nil {
		out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return c.Index().Total(), nil
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateOut, "out", "o", "", "output directory (default from config)")
	annotateCmd.Flags().BoolVar(&annotateOpen, "open-panel", false, "write the panel expanded instead of collapsed")
	rootCmd.AddCommand(annotateCmd)
}
