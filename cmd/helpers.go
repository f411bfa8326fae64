package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hypelessli/hypeless/internal/config"
	"github.com/hypelessli/hypeless/internal/db"
	"github.com/hypelessli/hypeless/internal/llm"
	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/settings"
	"github.com/hypelessli/hypeless/internal/terms"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `hypeless init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadRegistry returns the configured terms file, or the built-in terms.
func loadRegistry(cfg *config.Config) (*terms.Registry, error) {
	if cfg.TermsFile == "" {
		return terms.Default(), nil
	}
	reg, err := terms.Load(cfg.TermsFile)
	if err != nil {
		return nil, fmt.Errorf("loading terms: %w", err)
	}
	return reg, nil
}

// loadMatcher compiles the configured terms.
func loadMatcher(cfg *config.Config) (*matcher.Matcher, error) {
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}
	m, err := matcher.New(reg, matcher.WithWindow(cfg.ExceptionWindow))
	if err != nil {
		return nil, fmt.Errorf("compiling terms: %w", err)
	}
	return m, nil
}

// openSettings opens the settings database. The returned store never
// fails; storage errors are logged and served from memory.
func openSettings(cfg *config.Config) (*settings.Resilient, io.Closer, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	store := settings.NewStore(database)
	store.SetModelDefaults(cfg.ModelConfig())
	return settings.NewResilient(store), database, nil
}

// groqProvider returns the relay provider, or nil when GROQ_API_KEY is
// unset.
func groqProvider(cfg *config.Config) llm.Provider {
	key := os.Getenv(config.APIKeyEnvVar("groq"))
	if key == "" {
		return nil
	}
	return llm.NewRateLimitedProvider(
		llm.NewGroqProvider(key, cfg.Relay.Model, cfg.Relay.BaseURL),
		cfg.Relay.RequestsPerMinute,
	)
}

// readInput returns the named file, or stdin for "" and "-".
func readInput(name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
