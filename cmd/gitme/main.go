package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/doeshing/gitme-go/internal/infrastructure/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose(args, os.Getenv)}

	root, closer, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "error: close:", err)
		}
	}()

	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// isVerbose checks GITME_DEBUG and --debug before cobra parses flags,
// since the logger is built with the container.
func isVerbose(args []string, getenv func(string) string) bool {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--debug" {
			return true
		}
		if value, ok := strings.CutPrefix(arg, "--debug="); ok {
			enabled, err := strconv.ParseBool(value)
			return err == nil && enabled
		}
	}
	enabled, err := strconv.ParseBool(getenv("GITME_DEBUG"))
	return err == nil && enabled
}
