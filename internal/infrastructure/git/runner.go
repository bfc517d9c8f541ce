// Package git adapts the git command-line tool to the ports used by the
// generation pipeline: a subprocess runner, the change collector, the
// committer, and repository root discovery.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doeshing/gitme-go/internal/ports"
)

// CommandError reports a git invocation that could not run or exited non-zero.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", cmd, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", cmd, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs git as a subprocess.
type ExecRunner struct {
	binary string
	dir    string
}

// NewExecRunner builds a runner for binary (default "git") in dir (default: process cwd).
func NewExecRunner(binary, dir string) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	return &ExecRunner{binary: binary, dir: dir}
}

// Run implements ports.GitRunner. Stdout is returned trimmed of surrounding whitespace.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	c := exec.CommandContext(ctx, r.binary, args...)
	if r.dir != "" {
		c.Dir = r.dir
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	if err == nil {
		return strings.TrimSpace(stdout.String()), nil
	}

	cmdErr := &CommandError{
		Args:     append([]string(nil), args...),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: -1,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return "", cmdErr
}

var _ ports.GitRunner = (*ExecRunner)(nil)
