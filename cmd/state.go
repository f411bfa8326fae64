package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/protocol"
)

var stateServer string

var stateCmd = &cobra.Command{
	Use:   "state [on|off|toggle]",
	Short: "Show or change whether highlighting is enabled",
	Long: `Without an argument, prints the enabled flag. With --server the request goes
to a running coordinator, so connected pages are told about the change;
otherwise the settings database is updated directly.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		action := ""
		if len(args) == 1 {
			action = strings.ToLower(args[0])
		}
		switch action {
		case "", "on", "off", "toggle":
		default:
			return fmt.Errorf("unknown state %q (want on, off or toggle)", args[0])
		}

		var enabled bool
		var err error
		if stateServer != "" {
			enabled, err = remoteState(cmd.Context(), stateServer, action)
		} else {
			enabled, err = localState(cmd.Context(), action)
		}
		if err != nil {
			return err
		}

		if enabled {
			fmt.Println("HypeLess is enabled")
		} else {
			fmt.Println("HypeLess is disabled")
		}
		return nil
	},
}

// localState reads or writes the flag in the settings database.
func localState(ctx context.Context, action string) (bool, error) {
	cfg, err := loadConfig()
	if err != nil {
		return false, err
	}
	store, closer, err := openSettings(cfg)
	if err != nil {
		return false, err
	}
	defer closer.Close()

	enabled, _ := store.Enabled(ctx)
	next := enabled
	switch action {
	case "on":
		next = true
	case "off":
		next = false
	case "toggle":
		next = !enabled
	}
	if action != "" {
		store.SetEnabled(ctx, next)
	}
	return next, nil
}

// remoteState talks to a coordinator over POST /api/message. on and off
// toggle only when the current state differs.
func remoteState(ctx context.Context, base string, action string) (bool, error) {
	resp, err := postMessage(ctx, base, protocol.Message{Type: protocol.GetState})
	if err != nil {
		return false, err
	}
	want := resp.Enabled
	switch action {
	case "on":
		want = true
	case "off":
		want = false
	case "toggle":
		want = !resp.Enabled
	}
	if want == resp.Enabled {
		return resp.Enabled, nil
	}

	resp, err = postMessage(ctx, base, protocol.Message{Type: protocol.ToggleExtension})
	if err != nil {
		return false, err
	}
	if resp.Error != "" {
		return resp.Enabled, fmt.Errorf("coordinator could not save the state: %s", resp.Error)
	}
	return resp.Enabled, nil
}

func postMessage(ctx context.Context, base string, msg protocol.Message) (*protocol.Response, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/api/message", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contacting coordinator: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coordinator returned %s", httpResp.Status)
	}

	var resp protocol.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding coordinator response: %w", err)
	}
	return &resp, nil
}

func init() {
	stateCmd.Flags().StringVar(&stateServer, "server", "", "coordinator base URL, e.g. http://localhost:3002")
	rootCmd.AddCommand(stateCmd)
}
