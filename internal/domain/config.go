package domain

// Config mirrors ~/.gitme/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version" toml:"config_format_version"`
	Preferences         Preferences      `yaml:"preferences" toml:"preferences"`
	Providers           []ProviderConfig `yaml:"providers" toml:"providers"`
	Prompt              PromptSettings   `yaml:"prompt" toml:"prompt"`
	History             HistorySettings  `yaml:"history" toml:"history"`
	HTTP                HTTPSettings     `yaml:"http" toml:"http"`
}

// Preferences captures user level defaults for generation.
// StagedOnly and Temperature are pointers so an omitted key keeps its default
// while an explicit false or 0 is honoured.
type Preferences struct {
	Provider    string   `yaml:"provider" toml:"provider"`
	Model       string   `yaml:"model,omitempty" toml:"model,omitempty"`
	StagedOnly  *bool    `yaml:"staged_only,omitempty" toml:"staged_only,omitempty"`
	MaxTokens   int      `yaml:"max_tokens" toml:"max_tokens"`
	Temperature *float64 `yaml:"temperature,omitempty" toml:"temperature,omitempty"`
}

// ProviderConfig overrides endpoint, credential variable, or default model for one provider.
type ProviderConfig struct {
	Name         string `yaml:"name" toml:"name"`
	Endpoint     string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	AuthEnvVar   string `yaml:"auth_env_var,omitempty" toml:"auth_env_var,omitempty"`
	DefaultModel string `yaml:"default_model,omitempty" toml:"default_model,omitempty"`
}

// PromptSettings bounds prompt size.
type PromptSettings struct {
	MaxDiffChars int `yaml:"max_diff_chars" toml:"max_diff_chars"`
}

// HistorySettings selects and locates the history store.
type HistorySettings struct {
	Backend    string `yaml:"backend" toml:"backend"`
	Dir        string `yaml:"dir,omitempty" toml:"dir,omitempty"`
	FileName   string `yaml:"file_name,omitempty" toml:"file_name,omitempty"`
	MaxEntries int    `yaml:"max_entries" toml:"max_entries"`
}

// HTTPSettings configures the shared provider client.
type HTTPSettings struct {
	TimeoutSeconds int `yaml:"timeout_seconds" toml:"timeout_seconds"`
}
