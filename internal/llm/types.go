package llm

import "strings"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// ModelConfig is the persisted suggestion-model configuration.
type ModelConfig struct {
	Provider        string  `json:"provider"`
	APIKey          string  `json:"apiKey"`
	Model           string  `json:"model"`
	MaxTokens       int     `json:"maxTokens"`
	Temperature     float64 `json:"temperature"`
	SuggestionStyle string  `json:"suggestionStyle"`
	BaseURL         string  `json:"baseURL,omitempty"`
}

// DefaultModelConfig returns the configuration used until one is saved.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Provider:        "openai",
		Model:           "gpt-4",
		MaxTokens:       500,
		Temperature:     0.3,
		SuggestionStyle: "moderate",
	}
}

// Configured reports whether an API key is present.
func (c ModelConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// MaskedKey returns the key with everything but the last four characters
// hidden.
func (c ModelConfig) MaskedKey() string {
	if c.APIKey == "" {
		return ""
	}
	tail := c.APIKey
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return "••••••••" + tail
}

// ProviderInfo describes a selectable suggestion provider.
type ProviderInfo struct {
	ID     string
	Name   string
	Models []string
}

// AvailableProviders lists the suggestion providers and their models.
func AvailableProviders() []ProviderInfo {
	return []ProviderInfo{
		{ID: "openai", Name: "OpenAI GPT", Models: []string{"gpt-4", "gpt-3.5-turbo"}},
		{ID: "anthropic", Name: "Anthropic Claude", Models: []string{"claude-3-sonnet-20240229", "claude-3-haiku-20240307"}},
		{ID: "gemini", Name: "Google Gemini", Models: []string{"gemini-pro"}},
	}
}

// StyleTemperature maps a suggestion style to a sampling temperature.
func StyleTemperature(style string) float64 {
	switch style {
	case "conservative":
		return 0.1
	case "moderate":
		return 0.3
	default:
		return 0.5
	}
}
