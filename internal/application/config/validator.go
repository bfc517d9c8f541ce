package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/gitme-go/internal/domain"
)

// Validate ensures config structure is consistent. It expects defaults to be hydrated.
func Validate(cfg domain.Config) error {
	if _, err := domain.ParseProviderKind(cfg.Preferences.Provider); err != nil {
		return fmt.Errorf("preferences.provider: %w", err)
	}
	if cfg.Preferences.MaxTokens < 0 {
		return fmt.Errorf("preferences.max_tokens must be >= 0, got %d", cfg.Preferences.MaxTokens)
	}
	if t := cfg.Preferences.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("preferences.temperature must be between 0 and 2, got %g", *t)
	}
	if err := validateProviders(cfg.Providers); err != nil {
		return err
	}
	if cfg.Prompt.MaxDiffChars < 0 {
		return fmt.Errorf("prompt.max_diff_chars must be >= 0, got %d", cfg.Prompt.MaxDiffChars)
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if cfg.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("http.timeout_seconds must be >= 0, got %d", cfg.HTTP.TimeoutSeconds)
	}
	return nil
}

func validateProviders(providers []domain.ProviderConfig) error {
	seen := make(map[domain.ProviderKind]bool, len(providers))
	for i, p := range providers {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("providers[%d].name must be set", i)
		}
		kind, err := domain.ParseProviderKind(p.Name)
		if err != nil {
			return fmt.Errorf("providers[%d]: %w", i, err)
		}
		if seen[kind] {
			return fmt.Errorf("provider %s configured more than once", kind)
		}
		seen[kind] = true
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch strings.ToLower(history.Backend) {
	case "", domain.HistoryBackendJSON, domain.HistoryBackendSQLite:
	default:
		return fmt.Errorf("history.backend must be %s|%s, got %s", domain.HistoryBackendJSON, domain.HistoryBackendSQLite, history.Backend)
	}
	if history.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must be >= 0, got %d", history.MaxEntries)
	}
	return nil
}
