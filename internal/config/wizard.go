package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/hypelessli/hypeless/internal/llm"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to hypeless! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Suggestion provider.
	providers := llm.AvailableProviders()
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name
	}
	providerPrompt := promptui.Select{
		Label: "Select the suggestion provider",
		Items: names,
	}
	idx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := providers[idx]
	cfg.LLM.Provider = provider.ID

	// 2. Model.
	modelPrompt := promptui.Select{
		Label: "Select the model",
		Items: provider.Models,
	}
	_, cfg.LLM.Model, err = modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}

	// 3. Suggestion style.
	stylePrompt := promptui.Select{
		Label: "Suggestion style",
		Items: []string{
			"conservative (temperature 0.1)",
			"moderate     (temperature 0.3)",
			"creative     (temperature 0.5)",
		},
		CursorPos: 1,
	}
	styleIdx, _, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("style selection: %w", err)
	}
	cfg.LLM.SuggestionStyle = []string{"conservative", "moderate", "creative"}[styleIdx]
	cfg.LLM.Temperature = llm.StyleTemperature(cfg.LLM.SuggestionStyle)

	// 4. Custom term list.
	termsPrompt := promptui.Prompt{
		Label:   "Term list YAML file (leave blank for the built-in list)",
		Default: "",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			if _, err := os.Stat(s); err != nil {
				return fmt.Errorf("cannot read %s", s)
			}
			return nil
		},
	}
	cfg.TermsFile, err = termsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("terms file: %w", err)
	}

	// 5. Documents to annotate.
	includePrompt := promptui.Prompt{
		Label:   "HTML documents to annotate (comma-separated globs)",
		Default: strings.Join(cfg.Annotate.Include, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if include := splitAndTrim(includeStr); len(include) > 0 {
		cfg.Annotate.Include = include
	}

	// 6. Relay port.
	portPrompt := promptui.Prompt{
		Label:   "Relay port",
		Default: strconv.Itoa(cfg.Relay.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("not a number")
			}
			return validPort("relay port", n)
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("relay port: %w", err)
	}
	cfg.Relay.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, envVar := range []string{APIKeyEnvVar(cfg.LLM.Provider), APIKeyEnvVar("groq")} {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: set %s in your environment (or save a key with the settings API).\n", envVar)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
