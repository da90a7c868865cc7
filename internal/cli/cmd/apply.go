package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli"
	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/logging"
)

var noApply bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&noApply, "no-apply", false,
		"do not rewrite the output file after changing rules")
}

// reapply rewrites the configured output after an edit so that a loader
// watching the file sees the change without a running `veil watch`.
// A failure is reported but does not fail the edit, which is already stored.
func reapply(cmd *cobra.Command, a *cli.App) {
	if noApply {
		return
	}

	out, err := a.Apply.Apply(a.Ctx())
	if err != nil {
		renderer := styles.NewRulesRenderer(a.Theme)
		fmt.Fprint(cmd.ErrOrStderr(), renderer.RenderWarning(err.Error()))
		return
	}
	logging.FromContext(a.Ctx()).Debug().
		Str("path", a.Config.Output.Path).
		Int("bytes", len(out.CSS)).
		Msg("output rewritten")
}
