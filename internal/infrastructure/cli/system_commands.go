package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/gitme-go/internal/app"
	"github.com/doeshing/gitme-go/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show gitme version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			displayVersionInformation(cmd.OutOrStdout())
			return nil
		},
	}
}

func displayVersionInformation(out io.Writer) {
	fmt.Fprintf(out, "gitme version %s\n", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return fmt.Errorf("doctor service unavailable")
			}
			report, err := container.DoctorService.Run(cmd.Context())
			NewRenderer(cmd.OutOrStdout()).DoctorReport(report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			return nil
		},
	}
}
