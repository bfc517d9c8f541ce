// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (change collection, message generation, history) depends
// only on these abstractions. Adapters in the infrastructure layer provide the
// git subprocess, HTTP provider, and storage implementations, which keeps the
// core testable without spawning processes or touching the network.
package ports

import (
	"context"

	"github.com/doeshing/gitme-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.gitme/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// GitRunner runs one git invocation and returns its trimmed stdout.
// A non-zero exit is reported as an error carrying stderr.
type GitRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ChangeCollector derives the set of changed files from the working tree.
// Collection never fails outright: subprocess failures degrade to empty results.
type ChangeCollector interface {
	IsToolAvailable(ctx context.Context) bool
	IsInsideRepository(ctx context.Context) bool
	FileChanges(ctx context.Context, stagedOnly bool) domain.FileChangeSet
	UntrackedFiles(ctx context.Context) []string
}

// Committer drives the write side of git: staging, committing and pushing.
type Committer interface {
	Stage(ctx context.Context, paths []string) error
	Commit(ctx context.Context, message string, all bool) error
	Push(ctx context.Context, branch string) error
	CurrentBranch(ctx context.Context) (string, error)
}

// RepoLocator resolves the absolute root of the repository containing dir.
type RepoLocator interface {
	Root(dir string) (string, error)
}

// ProviderFactory builds a provider client for the requested variant.
// It fails with *domain.MissingCredentialError when no API key can be found.
type ProviderFactory interface {
	ForProvider(domain.ProviderSettings) (Provider, error)
}

// Provider sends one prompt to a generative text service and returns the reply text.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// MessageGenerator turns file changes into commit message text.
// Generate always returns some text; failures become a fallback message.
type MessageGenerator interface {
	Generate(ctx context.Context, changes domain.FileChangeSet) string
}

// GeneratorBuilder binds a provider to the prompt policy from configuration.
type GeneratorBuilder func(provider Provider, cfg domain.Config) MessageGenerator

// HistoryRepository persists generated messages.
// An empty repoPath means "all repositories".
type HistoryRepository interface {
	Save(ctx context.Context, entry domain.HistoryEntry) error
	Messages(ctx context.Context, repoPath string, limit int) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context, repoPath string) error
	Path() string
}

// ConfirmationPrompter asks the user a yes/no question.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
