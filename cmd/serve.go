package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypelessli/hypeless/internal/config"
	"github.com/hypelessli/hypeless/internal/coordinator"
	"github.com/hypelessli/hypeless/internal/relay"
	"github.com/hypelessli/hypeless/internal/server"
	"github.com/hypelessli/hypeless/internal/settings"
	"github.com/hypelessli/hypeless/internal/suggest"
)

var (
	servePort      int
	serveRelayPort int
	serveNoRelay   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the coordinator and the question relay",
	Long: `Starts the background coordinator (enabled state, toggles, page messaging
over WebSocket, model settings and rewrite suggestions) and, on its own
port, the question relay.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverLogging()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Coordinator.Port = servePort
		}
		if cmd.Flags().Changed("relay-port") {
			cfg.Relay.Port = serveRelayPort
		}
		if !serveNoRelay && cfg.Coordinator.Port == cfg.Relay.Port {
			return fmt.Errorf("coordinator and relay ports must differ (both %d)", cfg.Coordinator.Port)
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

		srv := server.New(server.Config{
			Name:     "coordinator",
			Port:     cfg.Coordinator.Port,
			AllowAll: cfg.Coordinator.AllowAllOrigins,
		})
		registerCoordinatorRoutes(srv, store, suggest.NewService(store, m))

		servers := []*server.Server{srv}
		if !serveNoRelay {
			servers = append(servers, newRelayServer(cfg))
		}

		fmt.Fprintf(os.Stderr, "hypeless %s\n", Version)
		fmt.Fprintf(os.Stderr, "  Coordinator: http://localhost:%d (page socket /ws/page)\n", cfg.Coordinator.Port)
		if !serveNoRelay {
			fmt.Fprintf(os.Stderr, "  Relay: http://localhost:%d/ask-groq\n", cfg.Relay.Port)
		}
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DatabasePath())
		return runServers(servers...)
	},
}

// registerCoordinatorRoutes wires the coordinator-side features.
func registerCoordinatorRoutes(srv *server.Server, store settings.Settings, suggester *suggest.Service) {
	r := srv.Router()

	coord := coordinator.New(store)
	coord.RegisterRoutes(r)

	settings.RegisterRoutes(r, store)
	suggest.RegisterRoutes(r, suggester)
}

// newRelayServer builds the relay service on its own port.
func newRelayServer(cfg *config.Config) *server.Server {
	provider := groqProvider(cfg)
	if provider == nil {
		fmt.Fprintf(os.Stderr, "Warning: %s is not set; the relay will answer with an error\n", config.APIKeyEnvVar("groq"))
	}
	svc := relay.NewService(provider, cfg.Relay.Model, relay.NewHistory(cfg.Relay.HistoryLimit))

	srv := server.New(server.Config{
		Name:     "relay",
		Port:     cfg.Relay.Port,
		AllowAll: cfg.Relay.AllowAllOrigins,
	})
	relay.RegisterRoutes(srv.Router(), svc)
	return srv
}

// runServers starts every server and shuts all of them down on SIGINT,
// SIGTERM or the first server error.
func runServers(servers ...*server.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, len(servers))
	for _, s := range servers {
		go func() { errs <- s.Start() }()
	}

	var first error
	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "\nShutting down...")
	case first = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, s := range servers {
		s.Shutdown(shutdownCtx)
	}
	return first
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3002, "coordinator port (default from config)")
	serveCmd.Flags().IntVar(&serveRelayPort, "relay-port", 3001, "relay port (default from config)")
	serveCmd.Flags().BoolVar(&serveNoRelay, "no-relay", false, "do not start the relay")
	rootCmd.AddCommand(serveCmd)
}
