package git

import (
	"context"
	"strings"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// Collector builds FileChangeSets from git output. Every query is read-only and
// sequential; a failing query is logged and treated as empty output.
type Collector struct {
	runner ports.GitRunner
	logger ports.Logger
}

// NewCollector wires a collector to a runner and an error channel.
func NewCollector(runner ports.GitRunner, logger ports.Logger) *Collector {
	return &Collector{runner: runner, logger: logger}
}

// IsToolAvailable reports whether git can be invoked at all.
func (c *Collector) IsToolAvailable(ctx context.Context) bool {
	_, err := c.runner.Run(ctx, "--version")
	return err == nil
}

// IsInsideRepository reports whether the working directory belongs to a repository.
func (c *Collector) IsInsideRepository(ctx context.Context) bool {
	if !c.IsToolAvailable(ctx) {
		return false
	}
	_, err := c.runner.Run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// FileChanges maps each changed path to its diff, scoped to the index when
// stagedOnly is set and to the whole tree against HEAD otherwise.
//
// Status lines must have exactly two tab-separated fields; anything else is
// skipped. Paths whose diff comes back empty are dropped.
func (c *Collector) FileChanges(ctx context.Context, stagedOnly bool) domain.FileChangeSet {
	changes := domain.FileChangeSet{}

	statusArgs := append([]string{"diff", "--name-status", "--no-renames"}, scopeArgs(stagedOnly)...)
	status := c.query(ctx, statusArgs...)
	if status == "" {
		return changes
	}

	for _, line := range strings.Split(status, "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			continue
		}
		path := fields[1]

		diffArgs := append([]string{"diff"}, scopeArgs(stagedOnly)...)
		diffArgs = append(diffArgs, "--", path)
		if diff := c.query(ctx, diffArgs...); diff != "" {
			changes[path] = diff
		}
	}
	return changes
}

// UntrackedFiles lists untracked paths, excluding ignored ones.
func (c *Collector) UntrackedFiles(ctx context.Context) []string {
	out := c.query(ctx, "ls-files", "--others", "--exclude-standard")
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}

func (c *Collector) query(ctx context.Context, args ...string) string {
	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("git command failed", err, map[string]interface{}{"args": strings.Join(args, " ")})
		}
		return ""
	}
	return out
}

func scopeArgs(stagedOnly bool) []string {
	if stagedOnly {
		return []string{"--staged"}
	}
	return []string{"HEAD"}
}

var _ ports.ChangeCollector = (*Collector)(nil)
