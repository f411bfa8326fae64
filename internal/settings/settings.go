// Package settings persists the enabled flag and the suggestion-model
// configuration.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hypelessli/hypeless/internal/db"
	"github.com/hypelessli/hypeless/internal/llm"
)

// Storage keys.
const (
	EnabledKey = "hypeLessEnabled"
	ModelKey   = "llmConfig"
)

// Settings is the read/write surface shared by Store and Resilient.
type Settings interface {
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
	ModelConfig(ctx context.Context) (llm.ModelConfig, error)
	SaveModelConfig(ctx context.Context, cfg llm.ModelConfig) error
}

// Store keeps settings in the settings table.
type Store struct {
	db       *db.DB
	defaults llm.ModelConfig
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, defaults: llm.DefaultModelConfig()}
}

// SetModelDefaults replaces the values a stored model config is merged
// over.
func (s *Store) SetModelDefaults(cfg llm.ModelConfig) {
	s.defaults = cfg
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// Enabled returns the stored flag. An absent flag means enabled.
func (s *Store) Enabled(ctx context.Context) (bool, error) {
	v, ok, err := s.get(ctx, EnabledKey)
	if err != nil || !ok {
		return true, err
	}
	var enabled bool
	if err := json.Unmarshal([]byte(v), &enabled); err != nil {
		return true, fmt.Errorf("decoding %s: %w", EnabledKey, err)
	}
	return enabled, nil
}

// SetEnabled stores the flag.
func (s *Store) SetEnabled(ctx context.Context, enabled bool) error {
	v, _ := json.Marshal(enabled)
	return s.put(ctx, EnabledKey, string(v))
}

// ModelConfig returns the stored configuration merged over the defaults.
func (s *Store) ModelConfig(ctx context.Context) (llm.ModelConfig, error) {
	cfg := s.defaults
	v, ok, err := s.get(ctx, ModelKey)
	if err != nil || !ok {
		return cfg, err
	}
	if err := json.Unmarshal([]byte(v), &cfg); err != nil {
		return s.defaults, fmt.Errorf("decoding %s: %w", ModelKey, err)
	}
	return cfg, nil
}

// SaveModelConfig stores cfg.
func (s *Store) SaveModelConfig(ctx context.Context, cfg llm.ModelConfig) error {
	v, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ModelKey, err)
	}
	return s.put(ctx, ModelKey, string(v))
}

// Resilient wraps a Settings and never fails: storage errors are logged
// and the last known value (or the default) is used instead.
type Resilient struct {
	inner Settings

	mu      sync.Mutex
	enabled *bool
	model   *llm.ModelConfig
}

// NewResilient wraps inner. A nil inner keeps everything in memory.
func NewResilient(inner Settings) *Resilient {
	return &Resilient{inner: inner}
}

func (r *Resilient) Enabled(ctx context.Context) (bool, error) {
	if r.inner != nil {
		v, err := r.inner.Enabled(ctx)
		if err == nil {
			r.mu.Lock()
			r.enabled = &v
			r.mu.Unlock()
			return v, nil
		}
		log.Printf("settings: reading enabled flag: %v", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled == nil {
		return true, nil
	}
	return *r.enabled, nil
}

func (r *Resilient) SetEnabled(ctx context.Context, enabled bool) error {
	r.mu.Lock()
	r.enabled = &enabled
	r.mu.Unlock()
	if r.inner != nil {
		if err := r.inner.SetEnabled(ctx, enabled); err != nil {
			log.Printf("settings: saving enabled flag, keeping it in memory: %v", err)
		}
	}
	return nil
}

func (r *Resilient) ModelConfig(ctx context.Context) (llm.ModelConfig, error) {
	if r.inner != nil {
		cfg, err := r.inner.ModelConfig(ctx)
		if err == nil {
			r.mu.Lock()
			r.model = &cfg
			r.mu.Unlock()
			return cfg, nil
		}
		log.Printf("settings: reading model config: %v", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.model == nil {
		return llm.DefaultModelConfig(), nil
	}
	return *r.model, nil
}

func (r *Resilient) SaveModelConfig(ctx context.Context, cfg llm.ModelConfig) error {
	r.mu.Lock()
	r.model = &cfg
	r.mu.Unlock()
	if r.inner != nil {
		if err := r.inner.SaveModelConfig(ctx, cfg); err != nil {
			log.Printf("settings: saving model config, keeping it in memory: %v", err)
		}
	}
	return nil
}
