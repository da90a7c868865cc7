package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/cli/styles"
)

var (
	previewCommit bool
	previewPrint  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <css-selector> <0-100>",
	Short: "Try an intensity on one selector without saving it",
	Long: `Compile the stored rules with one selector's intensity overridden and
write the result to the configured output. The stored value is unchanged
unless --commit is given. Run any rule command (or 'veil compile --out')
to restore the committed output.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&previewCommit, "commit", false, "store the intensity after previewing")
	previewCmd.Flags().BoolVarP(&previewPrint, "print", "p", false, "also print the previewed stylesheet")
}

func runPreview(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)
	ctx := a.Ctx()

	intensity, err := parseIntensity(args[1])
	if err != nil {
		return err
	}
	index, err := a.Preview.IndexOf(ctx, args[0])
	if err != nil {
		return err
	}
	input := usecase.PreviewInput{Index: index, Intensity: intensity}

	css, err := a.Preview.Preview(ctx, input)
	if err != nil {
		return err
	}
	if previewPrint {
		fmt.Fprintln(cmd.OutOrStdout(), css)
	}

	if !previewCommit {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
			fmt.Sprintf("previewing %s at %dpx in %s", args[0], intensity, a.Config.Output.Path)))
		return nil
	}

	if err := a.Preview.Commit(ctx, input); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
		fmt.Sprintf("selector %s set to %dpx", args[0], intensity)))
	return nil
}
