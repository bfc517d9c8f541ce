package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/gitme-go/internal/ports"
)

// Committer performs the write-side git operations. Unlike the collector,
// its failures are returned to the caller.
type Committer struct {
	runner ports.GitRunner
	remote string
}

// NewCommitter builds a committer pushing to remote (default "origin").
func NewCommitter(runner ports.GitRunner, remote string) *Committer {
	if remote == "" {
		remote = "origin"
	}
	return &Committer{runner: runner, remote: remote}
}

// Stage adds paths to the index.
func (c *Committer) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := c.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("stage files: %w", err)
	}
	return nil
}

// Commit records a commit with message; all also commits tracked unstaged changes.
func (c *Committer) Commit(ctx context.Context, message string, all bool) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("commit message is empty")
	}
	args := []string{"commit"}
	if all {
		args = append(args, "-a")
	}
	args = append(args, "-m", message)
	if _, err := c.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("create commit: %w", err)
	}
	return nil
}

// Push pushes branch to the remote and sets it as upstream.
func (c *Committer) Push(ctx context.Context, branch string) error {
	if branch == "" {
		return errors.New("branch name is required")
	}
	if _, err := c.runner.Run(ctx, "push", "-u", c.remote, branch); err != nil {
		return fmt.Errorf("push %s to %s: %w", branch, c.remote, err)
	}
	return nil
}

// CurrentBranch returns the checked-out branch name ("HEAD" when detached).
func (c *Committer) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve current branch: %w", err)
	}
	return out, nil
}

var _ ports.Committer = (*Committer)(nil)
