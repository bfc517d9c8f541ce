package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/gitme-go/internal/domain"
)

func TestLoadCreatesDefaultYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitme", "config.yaml")

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Preferences.Provider)
	assert.Equal(t, 300, cfg.MaxTokens())
	assert.Equal(t, 1000, cfg.MaxDiffChars())
	assert.Equal(t, domain.HistoryBackendJSON, cfg.HistoryBackend())
	assert.Equal(t, 100, cfg.HistoryMaxEntries())
	assert.Len(t, cfg.Providers, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadCreatesDefaultTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	first, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	second, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	openai, ok := second.FindProvider(domain.ProviderOpenAI)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", openai.DefaultModel)
}

func TestLoadReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
[preferences]
provider = "openai"
model = "gpt-4"

[history]
backend = "sqlite"
dir = "/tmp/gitme-history"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Preferences.Provider)
	assert.Equal(t, domain.HistoryBackendSQLite, cfg.HistoryBackend())
	assert.Equal(t, filepath.Join("/tmp/gitme-history", domain.DefaultHistoryDBFile), cfg.HistoryPath("/home/x"))
	assert.Equal(t, 300, cfg.Preferences.MaxTokens)
}

func TestLoadHonoursEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  provider: openai\n  staged_only: true\n"), 0o600))
	t.Setenv(EnvConfigPath, path)

	loader := NewFileLoader("")
	assert.Equal(t, path, loader.Path())

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Preferences.Provider)
	assert.True(t, cfg.StagedOnly())
	assert.InDelta(t, 0.3, cfg.Temperature(), 1e-9)
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  provider: openai\n  temperature: 0\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.StagedOnly(), "omitted staged_only keeps the staged default")
	require.NotNil(t, cfg.Preferences.Temperature)
	assert.Zero(t, cfg.Temperature(), "explicit temperature 0 is honoured")
	assert.Zero(t, cfg.ProviderSettings(domain.ProviderOpenAI, "", "").SamplingTemperature())
}

func TestLoadHonoursExplicitStagedOnlyFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[preferences]\nstaged_only = false\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.False(t, cfg.StagedOnly())
	assert.InDelta(t, 0.3, cfg.Temperature(), 1e-9)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences: [unterminated"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}
