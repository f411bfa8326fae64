package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hypelessli/hypeless/internal/llm"
)

// modelView is the model config as shown to clients, key masked.
type modelView struct {
	Provider           string             `json:"provider"`
	APIKey             string             `json:"apiKey"`
	Model              string             `json:"model"`
	MaxTokens          int                `json:"maxTokens"`
	Temperature        float64            `json:"temperature"`
	SuggestionStyle    string             `json:"suggestionStyle"`
	Configured         bool               `json:"configured"`
	AvailableProviders []llm.ProviderInfo `json:"availableProviders"`
	AvailableModels    []string           `json:"availableModels"`
}

func newModelView(cfg llm.ModelConfig) modelView {
	v := modelView{
		Provider:           cfg.Provider,
		APIKey:             cfg.MaskedKey(),
		Model:              cfg.Model,
		MaxTokens:          cfg.MaxTokens,
		Temperature:        cfg.Temperature,
		SuggestionStyle:    cfg.SuggestionStyle,
		Configured:         cfg.Configured(),
		AvailableProviders: llm.AvailableProviders(),
		AvailableModels:    []string{},
	}
	for _, p := range v.AvailableProviders {
		if p.ID == cfg.Provider {
			v.AvailableModels = p.Models
		}
	}
	return v
}

// RegisterRoutes mounts the model settings endpoints under /api/settings.
func RegisterRoutes(r chi.Router, s Settings) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/model", handleGetModel(s))
		r.Put("/model", handlePutModel(s))
	})
}

func handleGetModel(s Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := s.ModelConfig(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, newModelView(cfg))
	}
}

// handlePutModel merges the posted fields over the stored config. A masked
// or empty key keeps the stored key; the temperature follows the style.
func handlePutModel(s Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := s.ModelConfig(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		key := cfg.APIKey
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		if cfg.APIKey == "" || strings.HasPrefix(cfg.APIKey, "••••") {
			cfg.APIKey = key
		}
		if cfg.SuggestionStyle != "" {
			cfg.Temperature = llm.StyleTemperature(cfg.SuggestionStyle)
		}
		if err := s.SaveModelConfig(r.Context(), cfg); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, newModelView(cfg))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
