package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrGitNotInstalled is returned when the git executable cannot be invoked.
	ErrGitNotInstalled = errors.New("git is not installed or not on PATH")
	// ErrNotGitRepository is returned when the working directory is outside a repository.
	ErrNotGitRepository = errors.New("not in a git repository")
	// ErrConflictingScope is returned when both staged-only and all-changes scopes are requested.
	ErrConflictingScope = errors.New("cannot use both --staged and --all options together")
	// ErrUnknownProvider is returned for provider names outside the supported set.
	ErrUnknownProvider = errors.New("unknown provider")
)

// MissingCredentialError reports that no API key was supplied for a provider.
type MissingCredentialError struct {
	Provider ProviderKind
	EnvVar   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s API key is required: set %s or pass --api-key", e.Provider, e.EnvVar)
}
