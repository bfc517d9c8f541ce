package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/gitme-go/internal/app"
	"github.com/doeshing/gitme-go/internal/application/generate"
	"github.com/doeshing/gitme-go/internal/ports"
)

const msgCommitQuestion = "Do you want to create a commit with this message?"

type generateFlags struct {
	staged           bool
	all              bool
	jsonOutput       bool
	apiKey           string
	provider         string
	model            string
	commit           bool
	branch           string
	yes              bool
	includeUntracked bool
}

func newGenerateCommand(container *app.Container, prompter ports.ConfirmationPrompter) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message from the current changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, container, prompter, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.staged, "staged", "s", false, "Analyze only staged changes")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Analyze all changes including unstaged")
	cmd.Flags().BoolVarP(&flags.jsonOutput, "json", "j", false, "Print the collected file changes as JSON instead of generating")
	cmd.Flags().StringVarP(&flags.apiKey, "api-key", "k", "", "Provider API key (default from the provider's environment variable)")
	cmd.Flags().StringVarP(&flags.provider, "provider", "p", "", "Provider to use: anthropic or openai (default from config)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Override the model name")
	cmd.Flags().BoolVarP(&flags.commit, "commit", "c", false, "Create a commit with the generated message")
	cmd.Flags().StringVarP(&flags.branch, "branch", "b", "", "Push the new commit to this upstream branch")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Commit without asking for confirmation")
	cmd.Flags().BoolVarP(&flags.includeUntracked, "include-untracked", "u", false, "Stage untracked files without asking")

	return cmd
}

func runGenerate(cmd *cobra.Command, container *app.Container, prompter ports.ConfirmationPrompter, flags generateFlags) error {
	ctx := cmd.Context()
	out := NewRenderer(cmd.OutOrStdout())

	if flags.branch != "" && !flags.commit {
		return fmt.Errorf("--branch requires --commit")
	}

	res, err := container.GenerateService.Run(ctx, generate.Request{
		Staged:           flags.staged,
		All:              flags.all,
		Provider:         flags.provider,
		Model:            flags.model,
		APIKey:           flags.apiKey,
		IncludeUntracked: flags.includeUntracked,
		ChangesOnly:      flags.jsonOutput,
	})
	if res.UntrackedStaged {
		out.Success("Staged %d untracked file(s).", len(res.Untracked))
	}
	if err != nil {
		if res.Message != "" && !res.NoChanges {
			out.Message(res.Message, res.Changes, res.Provider, res.Model)
		}
		return err
	}

	if flags.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res.Changes)
	}

	if res.NoChanges {
		out.Warning("%s", res.Message)
		if res.StagedOnly {
			out.Info("Use --all to include unstaged changes.")
		}
		return nil
	}

	out.Message(res.Message, res.Changes, res.Provider, res.Model)

	if !flags.commit {
		return nil
	}
	if !flags.yes {
		ok, err := prompter.Confirm(msgCommitQuestion)
		if err != nil {
			return err
		}
		if !ok {
			out.Info("Commit cancelled.")
			return nil
		}
	}

	if err := container.GenerateService.Commit(ctx, res.Message, !res.StagedOnly, flags.branch); err != nil {
		return err
	}
	out.Success("Commit created.")
	if flags.branch != "" {
		out.Success("Pushed to origin/%s.", flags.branch)
	}
	return nil
}
