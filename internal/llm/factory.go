package llm

import (
	"fmt"
	"os"
)

// keyEnv maps provider names to the environment variable holding their key.
var keyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
	"groq":      "GROQ_API_KEY",
}

// NewProvider creates a provider from cfg. A missing key falls back to the
// provider's environment variable; if that is empty too ErrNotConfigured is
// returned. Supported providers: "openai", "anthropic", "gemini", "groq".
func NewProvider(cfg ModelConfig) (Provider, error) {
	env, ok := keyEnv[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	if !cfg.Configured() {
		cfg.APIKey = os.Getenv(env)
	}
	if !cfg.Configured() {
		return nil, fmt.Errorf("%s (%s is not set): %w", cfg.Provider, env, ErrNotConfigured)
	}

	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "groq":
		return NewGroqProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	}
}
