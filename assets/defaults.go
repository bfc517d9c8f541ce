// Package assets ships the files gitme writes on first run.
package assets

import (
	_ "embed"
)

// DefaultConfigYAML is written to ~/.gitme/config.yaml when no config exists.
// The loader re-encodes it as TOML for a .toml path.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
