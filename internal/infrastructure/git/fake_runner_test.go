package git

import (
	"context"
	"errors"
	"strings"
)

// fakeRunner answers git invocations from a table keyed by the joined args.
type fakeRunner struct {
	outputs map[string]string
	fail    map[string]bool
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, fail: map[string]bool{}}
}

func (f *fakeRunner) on(cmd, out string) *fakeRunner {
	f.outputs[cmd] = out
	return f
}

func (f *fakeRunner) failing(cmd string) *fakeRunner {
	f.fail[cmd] = true
	return f
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if f.fail[key] {
		return "", &CommandError{Args: args, Stderr: "fatal: simulated", ExitCode: 128, Err: errors.New("exit status 128")}
	}
	return f.outputs[key], nil
}
