package domain

import (
	"path/filepath"
	"strings"
)

// FindProvider returns the provider override block for kind, if configured.
func (c *Config) FindProvider(kind ProviderKind) (ProviderConfig, bool) {
	for _, p := range c.Providers {
		if strings.EqualFold(p.Name, string(kind)) {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

// DefaultProvider returns the configured default provider, falling back to Anthropic.
func (c *Config) DefaultProvider() ProviderKind {
	kind, err := ParseProviderKind(c.Preferences.Provider)
	if err != nil {
		return ProviderAnthropic
	}
	return kind
}

// ProviderSettings merges built-in defaults, config overrides, and explicit
// choices into the settings used to construct a provider.
//
// The model is picked in this order: explicit override, preferences.model
// (only when kind is the configured default provider), the provider block's
// default_model, then the built-in default.
func (c *Config) ProviderSettings(kind ProviderKind, modelOverride, apiKey string) ProviderSettings {
	temperature := c.Temperature()
	settings := ProviderSettings{
		Kind:        kind,
		Model:       kind.DefaultModel(),
		Endpoint:    kind.DefaultEndpoint(),
		AuthEnvVar:  kind.AuthEnvVar(),
		APIKey:      apiKey,
		MaxTokens:   c.MaxTokens(),
		Temperature: &temperature,
	}

	if override, ok := c.FindProvider(kind); ok {
		if override.Endpoint != "" {
			settings.Endpoint = override.Endpoint
		}
		if override.AuthEnvVar != "" {
			settings.AuthEnvVar = override.AuthEnvVar
		}
		if override.DefaultModel != "" {
			settings.Model = override.DefaultModel
		}
	}

	switch {
	case modelOverride != "":
		settings.Model = modelOverride
	case c.Preferences.Model != "" && kind == c.DefaultProvider():
		settings.Model = c.Preferences.Model
	}
	return settings
}

// MaxTokens returns the configured output bound.
func (c *Config) MaxTokens() int {
	if c.Preferences.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.Preferences.MaxTokens
}

// Temperature returns the configured sampling temperature. An explicit 0 is kept.
func (c *Config) Temperature() float64 {
	if c.Preferences.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Preferences.Temperature
}

// StagedOnly reports the default scope; staged changes unless set to false.
func (c *Config) StagedOnly() bool {
	if c.Preferences.StagedOnly == nil {
		return true
	}
	return *c.Preferences.StagedOnly
}

// MaxDiffChars returns the per-file diff budget for prompts.
func (c *Config) MaxDiffChars() int {
	if c.Prompt.MaxDiffChars <= 0 {
		return DefaultMaxDiffChars
	}
	return c.Prompt.MaxDiffChars
}

// HistoryBackend returns the normalized history backend name.
func (c *Config) HistoryBackend() string {
	if strings.EqualFold(c.History.Backend, HistoryBackendSQLite) {
		return HistoryBackendSQLite
	}
	return HistoryBackendJSON
}

// HistoryMaxEntries returns the persisted log cap.
func (c *Config) HistoryMaxEntries() int {
	if c.History.MaxEntries <= 0 {
		return DefaultHistoryMaxEntries
	}
	return c.History.MaxEntries
}

// HistoryPath resolves the history file under home when no directory is configured.
func (c *Config) HistoryPath(home string) string {
	dir := c.History.Dir
	if dir == "" {
		dir = filepath.Join(home, ".gitme")
	}
	name := c.History.FileName
	if name == "" {
		name = DefaultHistoryFile
		if c.HistoryBackend() == HistoryBackendSQLite {
			name = DefaultHistoryDBFile
		}
	}
	return filepath.Join(dir, name)
}
