// Package suggest asks a model provider for objective rewrites of hype
// phrases.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hypelessli/hypeless/internal/llm"
	"github.com/hypelessli/hypeless/internal/matcher"
)

// Suggestion is one proposed rewrite.
type Suggestion struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
	Type     string `json:"type"`
}

// ConfigSource supplies the model configuration.
type ConfigSource interface {
	ModelConfig(ctx context.Context) (llm.ModelConfig, error)
}

// Service builds prompts, calls the configured provider and parses the
// answer.
type Service struct {
	config  ConfigSource
	matcher *matcher.Matcher
}

// NewService returns a Service. m is used to flag terms when the caller
// passes none; it may be nil.
func NewService(config ConfigSource, m *matcher.Matcher) *Service {
	return &Service{config: config, matcher: m}
}

// Generate returns suggestions for content. A provider without an API key
// fails with llm.ErrNotConfigured before any request is made.
func (s *Service) Generate(ctx context.Context, content string, flagged []string) ([]Suggestion, error) {
	cfg, err := s.config.ModelConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading model config: %w", err)
	}
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	if flagged == nil && s.matcher != nil {
		flagged = FlaggedTerms(s.matcher.Find(content))
	}

	resp, err := provider.Complete(ctx, llm.CompletionRequest{
		Model:       cfg.Model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: BuildPrompt(content, flagged)}},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting suggestions: %w", err)
	}
	return Parse(resp.Content), nil
}

// FlaggedTerms returns the distinct matched texts in first-seen order.
func FlaggedTerms(hits []matcher.Hit) []string {
	seen := make(map[string]bool)
	var out []string
	for _, h := range hits {
		key := strings.ToLower(h.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h.Text)
	}
	return out
}

// BuildPrompt returns the editing prompt for content.
func BuildPrompt(content string, flagged []string) string {
	var termsContext string
	if len(flagged) > 0 {
		termsContext = "The following hype/subjective terms were detected: " + strings.Join(flagged, ", ") + "."
	}

	return `You are an expert scientific writing editor. Please analyze this LaTeX/academic text and suggest improvements to make it more objective, precise, and professional.

Focus on:
1. Replacing subjective/hype language with objective descriptions
2. Adding specific quantitative details where vague terms are used
3. Improving clarity and precision
4. Maintaining the academic tone

` + termsContext + `

Text to improve:
"""
` + content + `
"""

Please provide 3-5 specific suggestions in JSON format:
{
  "suggestions": [
    {
      "original": "original problematic phrase",
      "improved": "suggested improvement",
      "reason": "explanation of why this is better",
      "type": "hype_reduction|precision|clarity|objectivity"
    }
  ]
}`
}

// Parse reads the suggestions out of a model answer. The widest {...}
// span is tried as JSON first; otherwise the answer is read as
// original:/improved:/reason: lines.
func Parse(answer string) []Suggestion {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start >= 0 && end > start {
		var doc struct {
			Suggestions []Suggestion `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(answer[start:end+1]), &doc); err == nil {
			if doc.Suggestions == nil {
				return []Suggestion{}
			}
			return doc.Suggestions
		}
	}
	return parseText(answer)
}

var (
	originalLabel = regexp.MustCompile(`(?i).*original:\s*`)
	improvedLabel = regexp.MustCompile(`(?i).*improved:\s*`)
	reasonLabel   = regexp.MustCompile(`(?i).*reason:\s*`)
	quotes        = strings.NewReplacer(`"`, "", "“", "", "”", "")
)

func parseText(text string) []Suggestion {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	field := func(i int, label *regexp.Regexp) string {
		if i >= len(lines) {
			return ""
		}
		return strings.TrimSpace(quotes.Replace(label.ReplaceAllString(lines[i], "")))
	}

	out := []Suggestion{}
	for i, line := range lines {
		if !strings.Contains(line, "original:") && !strings.Contains(line, "Original:") {
			continue
		}
		original := field(i, originalLabel)
		improved := field(i+1, improvedLabel)
		if original == "" || improved == "" {
			continue
		}
		out = append(out, Suggestion{
			Original: original,
			Improved: improved,
			Reason:   field(i+2, reasonLabel),
			Type:     "general",
		})
	}
	return out
}
