// Package generate runs the commit message pipeline: environment checks,
// change collection, generation, and persistence, plus the optional
// commit and push that follow.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	appconfig "github.com/doeshing/gitme-go/internal/application/config"
	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// Request carries the caller's options for one generation.
type Request struct {
	// Staged and All are the explicit scope flags; setting both is an error.
	// With neither set the scope comes from preferences.staged_only.
	Staged bool
	All    bool

	Provider string
	Model    string
	APIKey   string

	// IncludeUntracked stages untracked files without asking.
	IncludeUntracked bool
	// ChangesOnly stops after collection. No provider is built and nothing is staged.
	ChangesOnly bool
	// WorkDir is the directory used to locate the repository. Empty means the process cwd.
	WorkDir string
}

// Result describes what one generation produced.
type Result struct {
	Message    string
	Changes    domain.FileChangeSet
	StagedOnly bool
	RepoPath   string
	Provider   string
	Model      string

	Untracked       []string
	UntrackedStaged bool

	// NoChanges is set when the collection was empty.
	NoChanges bool
	// Saved reports whether a history entry was written.
	Saved bool
}

// Service orchestrates the generation lifecycle end-to-end.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	Collector       ports.ChangeCollector
	Committer       ports.Committer
	Locator         ports.RepoLocator
	ProviderFactory ports.ProviderFactory
	BuildGenerator  ports.GeneratorBuilder
	History         ports.HistoryRepository
	Prompter        ports.ConfirmationPrompter
	Logger          ports.Logger
	Now             func() time.Time
}

// Run processes a single generation request.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if s.ConfigProvider == nil || s.Collector == nil || s.ProviderFactory == nil ||
		s.BuildGenerator == nil || s.Logger == nil {
		return Result{}, errors.New("generate.Service dependencies not satisfied")
	}
	if req.Staged && req.All {
		return Result{}, domain.ErrConflictingScope
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}

	if !s.Collector.IsToolAvailable(ctx) {
		return Result{}, domain.ErrGitNotInstalled
	}
	if !s.Collector.IsInsideRepository(ctx) {
		return Result{}, domain.ErrNotGitRepository
	}

	res := Result{StagedOnly: req.Staged || (!req.All && cfg.StagedOnly())}

	// The provider is resolved before anything touches the index so a
	// configuration error leaves the working tree as it was.
	var provider ports.Provider
	if !req.ChangesOnly {
		kind := cfg.DefaultProvider()
		if req.Provider != "" {
			if kind, err = domain.ParseProviderKind(req.Provider); err != nil {
				return res, err
			}
		}
		provider, err = s.ProviderFactory.ForProvider(cfg.ProviderSettings(kind, req.Model, req.APIKey))
		if err != nil {
			return res, err
		}
		res.Provider = provider.Name()
		res.Model = provider.Model()
	}

	res.Untracked = s.Collector.UntrackedFiles(ctx)
	if len(res.Untracked) > 0 && !req.ChangesOnly {
		staged, err := s.stageUntracked(ctx, req, res.Untracked)
		if err != nil {
			return res, err
		}
		res.UntrackedStaged = staged
	}

	res.Changes = s.Collector.FileChanges(ctx, res.StagedOnly)
	if len(res.Changes) == 0 {
		res.NoChanges = true
		res.Message = domain.MessageNoChanges
		return res, nil
	}
	if req.ChangesOnly {
		return res, nil
	}

	s.Logger.Info("generating commit message", map[string]interface{}{
		"provider": res.Provider,
		"model":    res.Model,
		"files":    len(res.Changes),
		"staged":   res.StagedOnly,
	})
	res.Message = s.BuildGenerator(provider, cfg).Generate(ctx, res.Changes)

	res.RepoPath = s.repoPath(req.WorkDir)
	if s.History == nil || res.Message == domain.MessageGenerationFailed {
		return res, nil
	}
	entry := domain.NewHistoryEntry(s.now(), res.RepoPath, res.Message, res.Changes, res.Provider, res.Model)
	if err := s.History.Save(ctx, entry); err != nil {
		return res, fmt.Errorf("save history: %w", err)
	}
	res.Saved = true
	return res, nil
}

// Commit records message as a commit and, when branch is set, pushes it upstream.
// all commits every tracked modification, matching a non-staged scope.
func (s *Service) Commit(ctx context.Context, message string, all bool, branch string) error {
	if s.Committer == nil {
		return errors.New("generate.Service has no committer")
	}
	if err := s.Committer.Commit(ctx, message, all); err != nil {
		return err
	}
	if branch == "" {
		return nil
	}
	return s.Committer.Push(ctx, branch)
}

// CurrentBranch reports the checked-out branch, used as a push default.
func (s *Service) CurrentBranch(ctx context.Context) (string, error) {
	if s.Committer == nil {
		return "", errors.New("generate.Service has no committer")
	}
	return s.Committer.CurrentBranch(ctx)
}

// RepoPath resolves the repository root for dir, as recorded in history.
func (s *Service) RepoPath(dir string) string {
	return s.repoPath(dir)
}

func (s *Service) stageUntracked(ctx context.Context, req Request, paths []string) (bool, error) {
	stage := req.IncludeUntracked
	if !stage && s.Prompter != nil && s.Prompter.Enabled() {
		question := fmt.Sprintf("Found %d untracked file(s):\n  %s\nStage them?", len(paths), strings.Join(paths, "\n  "))
		ok, err := s.Prompter.Confirm(question)
		if err != nil {
			return false, err
		}
		stage = ok
	}
	if !stage {
		return false, nil
	}
	if s.Committer == nil {
		return false, errors.New("generate.Service has no committer")
	}
	if err := s.Committer.Stage(ctx, paths); err != nil {
		return false, fmt.Errorf("stage untracked files: %w", err)
	}
	return true, nil
}

func (s *Service) repoPath(dir string) string {
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}
	if s.Locator == nil {
		return dir
	}
	root, err := s.Locator.Root(dir)
	if err != nil {
		s.Logger.Debug("repository root lookup failed", map[string]interface{}{"dir": dir, "error": err.Error()})
		return dir
	}
	return root
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
