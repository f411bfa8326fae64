package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// MockProvider is a test provider that records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CompletionRequest
	Response *CompletionResponse
	Err      error
	ProvName string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		ProvName: name,
		Response: &CompletionResponse{Content: "mock response", Model: "mock-model", FinishReason: "stop"},
	}
}

func (m *MockProvider) Name() string {
	return m.ProvName
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func TestFactoryReturnsNotConfigured(t *testing.T) {
	for _, p := range []string{"openai", "anthropic", "gemini", "groq"} {
		t.Setenv(keyEnv[p], "")
		_, err := NewProvider(ModelConfig{Provider: p, APIKey: "  "})
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: err = %v, want ErrNotConfigured", p, err)
		}
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	_, err := NewProvider(ModelConfig{Provider: "unknown", APIKey: "k"})
	if err == nil || errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v", err)
	}
}

func TestFactoryCreatesProviders(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "from-env")
	tests := []struct {
		cfg  ModelConfig
		name string
	}{
		{ModelConfig{Provider: "openai", APIKey: "k", Model: "gpt-4"}, "openai"},
		{ModelConfig{Provider: "anthropic", APIKey: "k"}, "anthropic"},
		{ModelConfig{Provider: "gemini", APIKey: "k"}, "gemini"},
		{ModelConfig{Provider: "groq"}, "groq"},
	}
	for _, tt := range tests {
		p, err := NewProvider(tt.cfg)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if p.Name() != tt.name {
			t.Errorf("Name = %q, want %q", p.Name(), tt.name)
		}
	}
}

func TestModelConfigHelpers(t *testing.T) {
	def := DefaultModelConfig()
	if def.Provider != "openai" || def.Model != "gpt-4" || def.MaxTokens != 500 || def.Temperature != 0.3 || def.SuggestionStyle != "moderate" {
		t.Errorf("defaults = %+v", def)
	}
	if def.Configured() {
		t.Error("defaults should not be configured")
	}
	c := ModelConfig{APIKey: "sk-abcdef1234"}
	if got := c.MaskedKey(); got != "••••••••1234" {
		t.Errorf("MaskedKey = %q", got)
	}
	if len(AvailableProviders()) != 3 {
		t.Errorf("providers = %v", AvailableProviders())
	}
}

func TestOpenAICompatibleProvider(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer gsk" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"model":"llama","choices":[{"message":{"role":"assistant","content":"plain words"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2}}`)
	}))
	defer srv.Close()

	p := NewGroqProvider("gsk", "llama-3.3-70b-versatile", srv.URL)
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "why is novel hype?"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "plain words" || resp.InputTokens != 3 || resp.OutputTokens != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if got.Model != "llama-3.3-70b-versatile" || len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Errorf("request = %+v", got)
	}
}

func TestOpenAIProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("k", "gpt-4", srv.URL).Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "bad key" || apiErr.Provider != "openai" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestAnthropicProvider(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "ak" || r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("headers = %v", r.Header)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"model":"claude","stop_reason":"end_turn","content":[{"type":"text","text":"a"},{"type":"text","text":"b"}],"usage":{"input_tokens":5,"output_tokens":6}}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("ak", "", srv.URL)
	resp, err := p.Complete(context.Background(), CompletionRequest{
		MaxTokens: 500,
		Messages:  []Message{{Role: RoleSystem, Content: "s1"}, {Role: RoleSystem, Content: "s2"}, {Role: RoleUser, Content: "u"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "ab" || resp.OutputTokens != 6 {
		t.Errorf("resp = %+v", resp)
	}
	if got.System != "s1\n\ns2" || len(got.Messages) != 1 || got.MaxTokens != 500 || got.Model != "claude-3-sonnet-20240229" {
		t.Errorf("request = %+v", got)
	}
}

func TestAnthropicProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer srv.Close()

	_, err := NewAnthropicProvider("ak", "m", srv.URL).Complete(context.Background(), CompletionRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests || apiErr.Message != "slow down" {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "anthropic API error") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestGeminiProvider(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gemini-pro:generateContent" || r.URL.Query().Get("key") != "gk" {
			t.Errorf("url = %s", r.URL)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":4,"candidatesTokenCount":1}}`)
	}))
	defer srv.Close()

	resp, err := NewGeminiProvider("gk", "", srv.URL).Complete(context.Background(), CompletionRequest{
		MaxTokens:   100,
		Temperature: 0.3,
		Messages:    []Message{{Role: RoleUser, Content: "q"}, {Role: RoleAssistant, Content: "a"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "ok" || resp.InputTokens != 4 || resp.FinishReason != "STOP" {
		t.Errorf("resp = %+v", resp)
	}
	if len(got.Contents) != 2 || got.Contents[1].Role != "model" || got.GenerationConfig.MaxOutputTokens != 100 {
		t.Errorf("request = %+v", got)
	}
}

func TestGeminiProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	_, err := NewGeminiProvider("gk", "", srv.URL).Complete(context.Background(), CompletionRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Bad Request" {
		t.Fatalf("err = %v", err)
	}
}

func TestRateLimiterPassesThrough(t *testing.T) {
	mock := NewMockProvider("test")
	rl := NewRateLimitedProvider(mock, 60)

	resp, err := rl.Complete(context.Background(), CompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "mock response" || rl.Name() != "test" {
		t.Errorf("resp = %+v, name = %q", resp, rl.Name())
	}
	if NewRateLimitedProvider(mock, 0) != Provider(mock) {
		t.Error("rpm 0 should not wrap")
	}
}

func TestRateLimiterLimitsRequests(t *testing.T) {
	mock := NewMockProvider("test")
	rl := NewRateLimitedProvider(mock, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	for i := 0; i < 2; i++ {
		if _, err := rl.Complete(ctx, CompletionRequest{}); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
	}

	// The bucket is empty and refills one token every 30s.
	if _, err := rl.Complete(ctx, CompletionRequest{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d", mock.CallCount())
	}
}
