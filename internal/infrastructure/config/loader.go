package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/gitme-go/assets"
	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/pkg/filesystem"
	"github.com/doeshing/gitme-go/internal/ports"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "GITME_CONFIG"

// FileLoader loads configuration from ~/.gitme/config.yaml (overridable via GITME_CONFIG).
// Paths ending in .toml are decoded as TOML.
type FileLoader struct {
	overridePath string
	getenv       func(string) string
}

// NewFileLoader builds a new loader. An empty path falls back to the environment and then the default.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, getenv: os.Getenv}
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := l.getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".gitme", "config.yaml")
}

// Load implements ports.ConfigProvider. A missing file is created with defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		data, err = defaultFile(path)
		if err != nil {
			return domain.Config{}, err
		}
		if err := filesystem.WriteFileAtomic(path, data, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
	}

	var cfg domain.Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaultFile(path string) ([]byte, error) {
	if !isTOML(path) {
		return assets.DefaultConfigYAML, nil
	}
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode default config: %w", err)
	}
	return buf.Bytes(), nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.Provider == "" {
		cfg.Preferences.Provider = string(domain.ProviderAnthropic)
	}
	if cfg.Preferences.MaxTokens <= 0 {
		cfg.Preferences.MaxTokens = domain.DefaultMaxTokens
	}
	if cfg.Prompt.MaxDiffChars <= 0 {
		cfg.Prompt.MaxDiffChars = domain.DefaultMaxDiffChars
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendJSON
	}
	if cfg.History.MaxEntries <= 0 {
		cfg.History.MaxEntries = domain.DefaultHistoryMaxEntries
	}
	cfg.History.Dir = filesystem.ExpandPath(cfg.History.Dir)
	if cfg.HTTP.TimeoutSeconds <= 0 {
		cfg.HTTP.TimeoutSeconds = int(domain.DefaultHTTPClientTimeout.Seconds())
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
