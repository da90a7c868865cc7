package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli"
	"github.com/bnema/veil/internal/cli/model"
	"github.com/bnema/veil/internal/logging"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit rules interactively with a live intensity preview",
	Long: `Open an interactive editor over the stored rules.

Adjusting a selector's intensity rewrites the output file immediately so the
effect can be judged in the browser; enter stores the value. Moving to
another row or quitting restores the stored rules. Edits made by other veil
processes show up while the editor is open.`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; keep logs to warnings and above.
	logger := logging.FromContext(a.Ctx()).Level(logging.ParseLevel("warn"))
	ctx, cancel := context.WithCancel(logging.WithContext(a.Ctx(), logger))
	defer cancel()

	out, err := cli.NewOutputSink(a.Config)
	if err != nil {
		return err
	}
	if err := a.Live(ctx, out); err != nil {
		return err
	}

	driverDone := make(chan error, 1)
	go func() {
		driverDone <- a.Apply.Run(ctx, a.Changes)
	}()

	m := model.NewEditorModel(ctx, a.Theme, model.EditorDeps{
		Rules:   a.Rules,
		Preview: a.Preview,
		Apply:   a.Apply,
		Changes: a.Changes,
	})
	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()

	// Drop any uncommitted preview.
	_, applyErr := a.Apply.Apply(ctx)

	cancel()
	if driverErr := <-driverDone; driverErr != nil {
		return errors.Join(runErr, driverErr)
	}
	if runErr != nil {
		return fmt.Errorf("editor: %w", runErr)
	}
	return applyErr
}
