package relay

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the relay endpoints on the given router.
func RegisterRoutes(r chi.Router, s *Service) {
	r.Post("/ask-groq", handleAsk(s))
	r.Get("/ask-groq/history", handleHistory(s))
}

func handleAsk(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
			return
		}
		log.Printf("relay: received question (%d chars)", len(req.Question))

		answer, err := s.Ask(r.Context(), req.Question)
		if err != nil {
			log.Printf("relay: model error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Groq API error",
				"details": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
	}
}

func handleHistory(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"history": s.History().All()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
