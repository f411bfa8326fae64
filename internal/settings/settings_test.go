package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hypelessli/hypeless/internal/db"
	"github.com/hypelessli/hypeless/internal/llm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestEnabledDefaultsToTrue(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	enabled, err := s.Enabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("Enabled = %v, %v", enabled, err)
	}
	if err := s.SetEnabled(ctx, false); err != nil {
		t.Fatal(err)
	}
	if enabled, _ := s.Enabled(ctx); enabled {
		t.Error("flag not persisted")
	}
	if err := s.SetEnabled(ctx, true); err != nil {
		t.Fatal(err)
	}
	if enabled, _ := s.Enabled(ctx); !enabled {
		t.Error("flag not overwritten")
	}
}

func TestModelConfigMergesOverDefaults(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	cfg, err := s.ModelConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != llm.DefaultModelConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	// A partial document keeps the defaults for absent fields.
	if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, ModelKey, `{"provider":"anthropic","apiKey":"k"}`); err != nil {
		t.Fatal(err)
	}
	cfg, err = s.ModelConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "anthropic" || cfg.APIKey != "k" || cfg.MaxTokens != 500 || cfg.SuggestionStyle != "moderate" {
		t.Errorf("merged = %+v", cfg)
	}

	cfg.Model = "claude-3-haiku-20240307"
	if err := s.SaveModelConfig(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	got, _ := s.ModelConfig(ctx)
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestModelDefaults(t *testing.T) {
	s := setupStore(t)
	def := llm.DefaultModelConfig()
	def.Provider = "gemini"
	s.SetModelDefaults(def)
	cfg, _ := s.ModelConfig(context.Background())
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
}

func TestCorruptValuesReturnErrors(t *testing.T) {
	s := setupStore(t)
	s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, 'nope'), (?, '{')`, EnabledKey, ModelKey)

	if enabled, err := s.Enabled(context.Background()); err == nil || !enabled {
		t.Errorf("Enabled = %v, %v", enabled, err)
	}
	if cfg, err := s.ModelConfig(context.Background()); err == nil || cfg != llm.DefaultModelConfig() {
		t.Errorf("ModelConfig = %+v, %v", cfg, err)
	}
}

// failing is a Settings whose every call errors.
type failing struct{}

var errDisk = errors.New("disk gone")

func (failing) Enabled(context.Context) (bool, error) { return false, errDisk }
func (failing) SetEnabled(context.Context, bool) error { return errDisk }
func (failing) ModelConfig(context.Context) (llm.ModelConfig, error) { return llm.ModelConfig{}, errDisk }
func (failing) SaveModelConfig(context.Context, llm.ModelConfig) error { return errDisk }

func TestResilientFallsBackToMemory(t *testing.T) {
	r := NewResilient(failing{})
	ctx := context.Background()

	enabled, err := r.Enabled(ctx)
	if err != nil || !enabled {
		t.Fatalf("Enabled = %v, %v, want true default", enabled, err)
	}
	if err := r.SetEnabled(ctx, false); err != nil {
		t.Fatal(err)
	}
	if enabled, _ := r.Enabled(ctx); enabled {
		t.Error("in-memory value lost")
	}

	cfg, err := r.ModelConfig(ctx)
	if err != nil || cfg != llm.DefaultModelConfig() {
		t.Fatalf("ModelConfig = %+v, %v", cfg, err)
	}
	cfg.APIKey = "k"
	r.SaveModelConfig(ctx, cfg)
	if got, _ := r.ModelConfig(ctx); got.APIKey != "k" {
		t.Errorf("in-memory config lost: %+v", got)
	}
}

func TestResilientPassesThrough(t *testing.T) {
	s := setupStore(t)
	r := NewResilient(s)
	r.SetEnabled(context.Background(), false)
	if enabled, _ := s.Enabled(context.Background()); enabled {
		t.Error("write did not reach the store")
	}
}

func TestModelRoutes(t *testing.T) {
	s := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, s)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/model", strings.NewReader(`{"provider":"gemini","apiKey":"secret-9876","model":"gemini-pro"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", w.Code, w.Body.String())
	}

	// Posting the masked key back must not overwrite the real one.
	req = httptest.NewRequest(http.MethodPut, "/api/settings/model", strings.NewReader(`{"apiKey":"••••••••9876","maxTokens":200,"suggestionStyle":"conservative"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings/model", nil))
	var view modelView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.APIKey != "••••••••9876" || !view.Configured || view.MaxTokens != 200 || view.Provider != "gemini" {
		t.Errorf("view = %+v", view)
	}
	if len(view.AvailableModels) != 1 || view.AvailableModels[0] != "gemini-pro" {
		t.Errorf("models = %v", view.AvailableModels)
	}
	stored, _ := s.ModelConfig(context.Background())
	if stored.APIKey != "secret-9876" || stored.Temperature != 0.1 {
		t.Errorf("stored = %+v", stored)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/settings/model", strings.NewReader(`{`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", w.Code)
	}
}
