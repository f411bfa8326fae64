package config

import (
	"path/filepath"

	"github.com/hypelessli/hypeless/internal/llm"
	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/relay"
	"github.com/hypelessli/hypeless/internal/surface/editor"
)

// DefaultExcludes are glob patterns the annotate command skips by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	".hypeless/**",
	"annotated/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	det := editor.DefaultDetector()
	model := llm.DefaultModelConfig()
	return &Config{
		DataDir:         ".hypeless",
		ExceptionWindow: matcher.ContextWindow,
		Annotate: AnnotateConfig{
			Include:   []string{"**/*.html", "**/*.htm"},
			Exclude:   append([]string(nil), DefaultExcludes...),
			OutputDir: "annotated",
		},
		Editor: EditorConfig{
			DebounceMS:       int(editor.DefaultDebounce.Milliseconds()),
			DetectAttempts:   det.Attempts,
			DetectIntervalMS: int(det.Interval.Milliseconds()),
			MinContent:       det.MinContent,
			Hosts:            append([]string(nil), editor.DefaultHosts...),
		},
		Relay: RelayConfig{
			Port:              3001,
			Model:             relay.DefaultModel,
			HistoryLimit:      relay.DefaultHistoryLimit,
			RequestsPerMinute: 30,
			AllowAllOrigins:   true,
		},
		Coordinator: CoordinatorConfig{
			Port: 3002,
		},
		LLM: LLMConfig{
			Provider:        model.Provider,
			Model:           model.Model,
			MaxTokens:       model.MaxTokens,
			Temperature:     model.Temperature,
			SuggestionStyle: model.SuggestionStyle,
		},
	}
}

// DatabasePath returns the settings database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "hypeless.db")
}

// ModelConfig returns the LLM section as a model configuration without a
// key.
func (c *Config) ModelConfig() llm.ModelConfig {
	return llm.ModelConfig{
		Provider:        c.LLM.Provider,
		Model:           c.LLM.Model,
		MaxTokens:       c.LLM.MaxTokens,
		Temperature:     c.LLM.Temperature,
		SuggestionStyle: c.LLM.SuggestionStyle,
		BaseURL:         c.LLM.BaseURL,
	}
}
