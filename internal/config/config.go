package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: HYPELESS_RELAY__PORT sets relay.port.
const EnvPrefix = "HYPELESS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (HYPELESS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized suggestion providers.
var validProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
	"gemini":    true,
}

// validStyles is the set of recognized suggestion styles.
var validStyles = map[string]bool{
	"conservative": true,
	"moderate":     true,
	"creative":     true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.ExceptionWindow < 0 {
		return fmt.Errorf("exception_window must be non-negative")
	}

	if c.Editor.DebounceMS < 0 {
		return fmt.Errorf("editor.debounce_ms must be non-negative")
	}
	if c.Editor.DetectAttempts < 1 {
		return fmt.Errorf("editor.detect_attempts must be at least 1")
	}
	if c.Editor.DetectIntervalMS < 0 {
		return fmt.Errorf("editor.detect_interval_ms must be non-negative")
	}

	if err := validPort("relay.port", c.Relay.Port); err != nil {
		return err
	}
	if err := validPort("coordinator.port", c.Coordinator.Port); err != nil {
		return err
	}
	if c.Relay.Port == c.Coordinator.Port {
		return fmt.Errorf("relay.port and coordinator.port must differ")
	}
	if c.Relay.Model == "" {
		return fmt.Errorf("relay.model is required")
	}
	if c.Relay.HistoryLimit < 1 {
		return fmt.Errorf("relay.history_limit must be at least 1")
	}
	if c.Relay.RequestsPerMinute < 0 {
		return fmt.Errorf("relay.requests_per_minute must be non-negative")
	}

	if !validProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid llm.provider %q: must be one of openai, anthropic, gemini", c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if c.LLM.SuggestionStyle != "" && !validStyles[c.LLM.SuggestionStyle] {
		return fmt.Errorf("invalid llm.suggestion_style %q: must be one of conservative, moderate, creative", c.LLM.SuggestionStyle)
	}

	return nil
}

func validPort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535", name)
	}
	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "groq":
		return "GROQ_API_KEY"
	default:
		return ""
	}
}
