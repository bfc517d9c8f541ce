package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// Locator finds repository roots by walking up from a directory with go-git,
// without spawning a subprocess.
type Locator struct{}

// NewLocator returns a go-git backed RepoLocator.
func NewLocator() *Locator {
	return &Locator{}
}

// Root returns the absolute worktree root of the repository containing dir.
func (l *Locator) Root(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotGitRepository, abs)
		}
		return "", fmt.Errorf("open repository at %s: %w", abs, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNotGitRepository, err)
	}
	return filepath.Abs(wt.Filesystem.Root())
}

var _ ports.RepoLocator = (*Locator)(nil)
