package generate

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/pkg/logger"
	"github.com/doeshing/gitme-go/internal/ports"
)

type stubConfig struct{ cfg domain.Config }

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, nil }

type stubCollector struct {
	tool, repo bool
	staged     domain.FileChangeSet
	all        domain.FileChangeSet
	untracked  []string
	scopes     []bool
}

func (s *stubCollector) IsToolAvailable(context.Context) bool    { return s.tool }
func (s *stubCollector) IsInsideRepository(context.Context) bool { return s.repo }
func (s *stubCollector) UntrackedFiles(context.Context) []string { return s.untracked }
func (s *stubCollector) FileChanges(_ context.Context, stagedOnly bool) domain.FileChangeSet {
	s.scopes = append(s.scopes, stagedOnly)
	if stagedOnly {
		return s.staged
	}
	return s.all
}

type stubCommitter struct {
	staged    []string
	commits   []string
	commitAll bool
	pushed    []string
	failPush  bool
}

func (s *stubCommitter) Stage(_ context.Context, paths []string) error {
	s.staged = append(s.staged, paths...)
	return nil
}
func (s *stubCommitter) Commit(_ context.Context, message string, all bool) error {
	s.commits = append(s.commits, message)
	s.commitAll = all
	return nil
}
func (s *stubCommitter) Push(_ context.Context, branch string) error {
	if s.failPush {
		return errors.New("rejected")
	}
	s.pushed = append(s.pushed, branch)
	return nil
}
func (s *stubCommitter) CurrentBranch(context.Context) (string, error) { return "main", nil }

type stubLocator struct{ root string }

func (s stubLocator) Root(string) (string, error) {
	if s.root == "" {
		return "", domain.ErrNotGitRepository
	}
	return s.root, nil
}

type stubProvider struct {
	kind  domain.ProviderKind
	model string
}

func (p stubProvider) Name() string  { return string(p.kind) }
func (p stubProvider) Model() string { return p.model }
func (p stubProvider) Complete(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

type stubFactory struct {
	settings []domain.ProviderSettings
	err      error
}

func (f *stubFactory) ForProvider(settings domain.ProviderSettings) (ports.Provider, error) {
	f.settings = append(f.settings, settings)
	if f.err != nil {
		return nil, f.err
	}
	return stubProvider{kind: settings.Kind, model: settings.Model}, nil
}

type stubGenerator struct{ message string }

func (g stubGenerator) Generate(context.Context, domain.FileChangeSet) string { return g.message }

type memoryHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *memoryHistory) Save(_ context.Context, e domain.HistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}
func (m *memoryHistory) Messages(context.Context, string, int) ([]domain.HistoryEntry, error) {
	return m.entries, nil
}
func (m *memoryHistory) Clear(context.Context, string) error { return nil }
func (m *memoryHistory) Path() string                        { return "memory" }

type stubPrompter struct {
	answer    bool
	questions []string
}

func (p *stubPrompter) Confirm(q string) (bool, error) {
	p.questions = append(p.questions, q)
	return p.answer, nil
}
func (p *stubPrompter) Enabled() bool { return true }

type fixture struct {
	svc       *Service
	collector *stubCollector
	committer *stubCommitter
	factory   *stubFactory
	history   *memoryHistory
	prompter  *stubPrompter
}

func newFixture(message string) *fixture {
	f := &fixture{
		collector: &stubCollector{
			tool:   true,
			repo:   true,
			staged: domain.FileChangeSet{"a.go": "+a"},
			all:    domain.FileChangeSet{"a.go": "+a", "b.go": "+b"},
		},
		committer: &stubCommitter{},
		factory:   &stubFactory{},
		history:   &memoryHistory{},
		prompter:  &stubPrompter{},
	}
	cfg := domain.Config{Preferences: domain.Preferences{Provider: "anthropic"}}
	f.svc = &Service{
		ConfigProvider:  stubConfig{cfg: cfg},
		Collector:       f.collector,
		Committer:       f.committer,
		Locator:         stubLocator{root: "/work/repo"},
		ProviderFactory: f.factory,
		BuildGenerator: func(ports.Provider, domain.Config) ports.MessageGenerator {
			return stubGenerator{message: message}
		},
		History:  f.history,
		Prompter: f.prompter,
		Logger:   logger.New(&bytes.Buffer{}, false),
		Now:      func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	return f
}

func TestRunGeneratesAndSaves(t *testing.T) {
	f := newFixture("Add a")

	res, err := f.svc.Run(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, "Add a", res.Message)
	assert.True(t, res.StagedOnly)
	assert.Equal(t, "/work/repo", res.RepoPath)
	assert.Equal(t, "anthropic", res.Provider)
	assert.Equal(t, domain.DefaultAnthropicModel, res.Model)
	assert.True(t, res.Saved)

	require.Len(t, f.history.entries, 1)
	saved := f.history.entries[0]
	assert.Equal(t, "/work/repo", saved.RepoPath)
	assert.Equal(t, "anthropic", saved.ProviderName())
	assert.Equal(t, domain.DefaultAnthropicModel, saved.ModelName())
	assert.Equal(t, domain.FileChangeSet{"a.go": "+a"}, saved.FileChanges)
	assert.Equal(t, "2025-01-02T03:04:05Z", saved.Timestamp)
}

func TestRunScope(t *testing.T) {
	f := newFixture("msg")

	res, err := f.svc.Run(context.Background(), Request{All: true})
	require.NoError(t, err)
	assert.False(t, res.StagedOnly)
	assert.Len(t, res.Changes, 2)

	_, err = f.svc.Run(context.Background(), Request{Staged: true, All: true})
	assert.ErrorIs(t, err, domain.ErrConflictingScope)
	assert.Equal(t, []bool{false}, f.collector.scopes, "conflict is detected before collection")
}

func TestRunEnvironmentErrors(t *testing.T) {
	f := newFixture("msg")
	f.collector.tool = false
	_, err := f.svc.Run(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrGitNotInstalled)

	f.collector.tool = true
	f.collector.repo = false
	_, err = f.svc.Run(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
	assert.Empty(t, f.collector.scopes)
}

func TestRunNoChangesSkipsGeneration(t *testing.T) {
	f := newFixture("msg")
	f.collector.staged = domain.FileChangeSet{}

	res, err := f.svc.Run(context.Background(), Request{})
	require.NoError(t, err)
	assert.True(t, res.NoChanges)
	assert.Equal(t, "No changes to commit", res.Message)
	assert.False(t, res.Saved)
	assert.Empty(t, f.history.entries)
}

func TestRunChangesOnly(t *testing.T) {
	f := newFixture("msg")
	f.collector.untracked = []string{"secret.env"}
	f.prompter.answer = true

	res, err := f.svc.Run(context.Background(), Request{ChangesOnly: true, IncludeUntracked: true})
	require.NoError(t, err)
	assert.Equal(t, domain.FileChangeSet{"a.go": "+a"}, res.Changes)
	assert.Equal(t, []string{"secret.env"}, res.Untracked)
	assert.False(t, res.UntrackedStaged)
	assert.Empty(t, f.committer.staged, "listing changes never touches the index")
	assert.Empty(t, f.prompter.questions)
	assert.Empty(t, f.factory.settings)
	assert.Empty(t, f.history.entries)
}

func TestRunProviderSelection(t *testing.T) {
	f := newFixture("msg")

	res, err := f.svc.Run(context.Background(), Request{Provider: "openai", Model: "gpt-4", APIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, "openai", res.Provider)
	require.Len(t, f.factory.settings, 1)
	assert.Equal(t, domain.ProviderOpenAI, f.factory.settings[0].Kind)
	assert.Equal(t, "gpt-4", f.factory.settings[0].Model)
	assert.Equal(t, "sk", f.factory.settings[0].APIKey)

	_, err = f.svc.Run(context.Background(), Request{Provider: "bard"})
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestRunMissingCredentialSurfaces(t *testing.T) {
	f := newFixture("msg")
	f.factory.err = &domain.MissingCredentialError{Provider: domain.ProviderAnthropic, EnvVar: "ANTHROPIC_API_KEY"}

	_, err := f.svc.Run(context.Background(), Request{})
	var missing *domain.MissingCredentialError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ANTHROPIC_API_KEY", missing.EnvVar)
	assert.Empty(t, f.history.entries)
}

func TestRunMissingCredentialLeavesIndexUntouched(t *testing.T) {
	f := newFixture("msg")
	f.collector.untracked = []string{"secret.env"}
	f.factory.err = &domain.MissingCredentialError{Provider: domain.ProviderAnthropic, EnvVar: "ANTHROPIC_API_KEY"}

	_, err := f.svc.Run(context.Background(), Request{IncludeUntracked: true})
	require.Error(t, err)
	assert.Empty(t, f.committer.staged)
	assert.Empty(t, f.collector.scopes, "no collection after a configuration error")

	f.prompter.answer = true
	_, err = f.svc.Run(context.Background(), Request{})
	require.Error(t, err)
	assert.Empty(t, f.prompter.questions)
	assert.Empty(t, f.committer.staged)
}

func TestRunFallbackIsNotSaved(t *testing.T) {
	f := newFixture(domain.MessageGenerationFailed)

	res, err := f.svc.Run(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Update files", res.Message)
	assert.False(t, res.Saved)
	assert.Empty(t, f.history.entries)
}

func TestRunHistoryWriteFailureSurfaces(t *testing.T) {
	f := newFixture("Add a")
	f.history.err = errors.New("disk full")

	res, err := f.svc.Run(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "Add a", res.Message, "message is still returned")
}

func TestRunRepoPathFallsBackToWorkDir(t *testing.T) {
	f := newFixture("msg")
	f.svc.Locator = stubLocator{}

	res, err := f.svc.Run(context.Background(), Request{WorkDir: "/somewhere"})
	require.NoError(t, err)
	assert.Equal(t, "/somewhere", res.RepoPath)
}

func TestRunUntracked(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newFixture("msg")
		f.collector.untracked = []string{"new.go"}

		res, err := f.svc.Run(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, []string{"new.go"}, res.Untracked)
		assert.False(t, res.UntrackedStaged)
		require.Len(t, f.prompter.questions, 1)
		assert.Contains(t, f.prompter.questions[0], "new.go")
		assert.Empty(t, f.committer.staged)
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture("msg")
		f.collector.untracked = []string{"new.go", "other.go"}
		f.prompter.answer = true

		res, err := f.svc.Run(context.Background(), Request{})
		require.NoError(t, err)
		assert.True(t, res.UntrackedStaged)
		assert.Equal(t, []string{"new.go", "other.go"}, f.committer.staged)
	})

	t.Run("flag skips prompt", func(t *testing.T) {
		f := newFixture("msg")
		f.collector.untracked = []string{"new.go"}

		res, err := f.svc.Run(context.Background(), Request{IncludeUntracked: true})
		require.NoError(t, err)
		assert.True(t, res.UntrackedStaged)
		assert.Empty(t, f.prompter.questions)
	})
}

func TestCommitAndPush(t *testing.T) {
	f := newFixture("msg")

	require.NoError(t, f.svc.Commit(context.Background(), "Add a", true, ""))
	assert.Equal(t, []string{"Add a"}, f.committer.commits)
	assert.True(t, f.committer.commitAll)
	assert.Empty(t, f.committer.pushed)

	require.NoError(t, f.svc.Commit(context.Background(), "Add b", false, "feature/x"))
	assert.Equal(t, []string{"feature/x"}, f.committer.pushed)

	f.committer.failPush = true
	assert.Error(t, f.svc.Commit(context.Background(), "Add c", false, "feature/x"))
}
