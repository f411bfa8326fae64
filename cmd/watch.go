package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/buffer"
	"github.com/hypelessli/hypeless/internal/coordinator"
	"github.com/hypelessli/hypeless/internal/protocol"
	"github.com/hypelessli/hypeless/internal/session"
	"github.com/hypelessli/hypeless/internal/surface/editor"
)

var (
	watchHost        string
	watchCoordinator string
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Highlight hype terms in a LaTeX source and follow its edits",
	Long: `Opens a LaTeX (or other structured-text) file as an editor buffer, skips
commands, braces and math, and lists every flagged term. The file is scanned
again after each save once edits settle.

With --coordinator the watcher joins a running 'hypeless serve' as a page, so
toggles and rescans from the popup reach it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := loadMatcher(cfg)
		if err != nil {
			return err
		}
		f, err := buffer.Open(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var store session.EnabledSource
		var client *coordinator.Client
		if watchCoordinator != "" {
			client, err = coordinator.Dial(ctx, watchCoordinator)
			if err != nil {
				return err
			}
			defer client.Close()
			store = client
		} else {
			s, closer, err := openSettings(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()
			store = s
		}

		c := session.New(store)
		defer c.Close()
		c.OnScan(func(r session.Result) { printScan(f.Path(), r) })

		if client != nil {
			go func() {
				if err := client.Run(ctx, c.HandleMessage); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: coordinator connection: %v\n", err)
				}
			}()
			if err := client.Send(protocol.Message{Type: protocol.Activate}); err != nil {
				return fmt.Errorf("activating page: %w", err)
			}
		}

		det := editor.Detector{
			Attempts:   cfg.Editor.DetectAttempts,
			Interval:   time.Duration(cfg.Editor.DetectIntervalMS) * time.Millisecond,
			MinContent: cfg.Editor.MinContent,
		}
		page := buffer.NewPage(f, watchHost)
		if verbose && !editor.StructuredMode(page, cfg.Editor.Hosts) {
			fmt.Fprintf(os.Stderr, "%s is not a structured-editor host, scanning anyway\n", watchHost)
		}
		debounce := time.Duration(cfg.Editor.DebounceMS) * time.Millisecond
		if err := c.StartEditor(ctx, page, det, m, debounce); err != nil {
			return fmt.Errorf("starting editor session: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", f.Path())
		return f.Watch(ctx)
	},
}

// printScan lists the matches of one scan.
func printScan(path string, r session.Result) {
	fmt.Printf("%s: %d term occurrence(s)\n", path, r.Index.Total())
	for _, m := range r.Matches {
		fmt.Printf("  %d:%d  %s", m.Location.Line+1, m.Location.StartColumn+1, m.Text)
		if m.Explanation != "" {
			fmt.Printf("  (%s)", m.Explanation)
		}
		fmt.Println()
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchHost, "host", "localhost", "host name the buffer is presented under")
	watchCmd.Flags().StringVar(&watchCoordinator, "coordinator", "", "coordinator page socket URL, e.g. ws://localhost:3002/ws/page")
	rootCmd.AddCommand(watchCmd)
}
