package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/gitme-go/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. The returned closer releases the
// container's resources and must be closed once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, io.Closer, error) {
	container, err := app.BuildContainer(ctx, app.Options{Verbose: opts.Verbose, ConfigPath: opts.ConfigPath})
	if err != nil {
		return nil, nil, err
	}
	prompter := NewPrompter(nil, nil)
	container.GenerateService.Prompter = prompter

	generateCmd := newGenerateCommand(container, prompter)

	root := &cobra.Command{
		Use:   "gitme",
		Short: "gitme - commit messages from your diff",
		Long:  "gitme collects your git changes and asks a language model to write the commit message.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Parsed in main before the container is built.
	root.PersistentFlags().Bool("debug", false, "Enable verbose logging")
	// Bare "gitme" behaves like "gitme generate"; both share the flag values.
	root.Flags().AddFlagSet(generateCmd.Flags())

	root.AddCommand(generateCmd)
	root.AddCommand(newShowCommand(container, prompter))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	return root, container, nil
}
