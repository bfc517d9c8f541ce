package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/gitme-go/internal/app"
	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

const msgNoHistory = "No commit messages recorded yet."

func newShowCommand(container *app.Container, prompter ports.ConfirmationPrompter) *cobra.Command {
	var (
		limit        int
		all          bool
		clearHistory bool
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show previously generated commit messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := NewRenderer(cmd.OutOrStdout())
			store := container.HistoryStore

			repoPath := ""
			if !all {
				repoPath = container.GenerateService.RepoPath("")
			}

			if clearHistory {
				question := fmt.Sprintf("Clear history for %s?", repoPath)
				if repoPath == "" {
					question = "Clear history for all repositories?"
				}
				if !yes {
					ok, err := prompter.Confirm(question)
					if err != nil {
						return err
					}
					if !ok {
						out.Info("Clear cancelled.")
						return nil
					}
				}
				if err := store.Clear(ctx, repoPath); err != nil {
					return err
				}
				out.Success("History cleared.")
				return nil
			}

			entries, err := store.Messages(ctx, repoPath, limit)
			if err != nil {
				return err
			}
			out.History(entries, all)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultHistoryLimit, "Number of messages to show")
	cmd.Flags().BoolVar(&all, "all", false, "Include every repository, not just the current one")
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "Clear the history (current repository, or everything with --all)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Clear without asking for confirmation")
	return cmd
}
