package suggest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hypelessli/hypeless/internal/llm"
)

// RegisterRoutes mounts POST /api/suggest on the given router.
func RegisterRoutes(r chi.Router, s *Service) {
	r.Post("/api/suggest", handleSuggest(s))
}

type suggestRequest struct {
	Content string   `json:"content"`
	Terms   []string `json:"terms"`
}

func handleSuggest(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req suggestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
			return
		}

		suggestions, err := s.Generate(r.Context(), req.Content, req.Terms)
		if errors.Is(err, llm.ErrNotConfigured) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err != nil {
			log.Printf("suggest: %v", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "suggestion request failed", "details": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
