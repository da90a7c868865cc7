package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/domain/stylesheet"
	"github.com/bnema/veil/internal/infrastructure/cssinspect"
	"github.com/bnema/veil/internal/infrastructure/sink"
)

var (
	compileStats  bool
	compileOut    string
	compileFormat string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Print the stylesheet compiled from the stored rules",
	Long: `Compile the stored rules and print the result to stdout.

With --out the result is written atomically to a file instead, rendered in
--format (defaults to output.format from the config). With --stats a
summary of rulesets and declarations is printed to stderr, including any
declaration a browser would not apply with forced priority.`,
	Example: `  veil compile
  veil compile --stats > /dev/null
  veil compile --out ~/.config/veil/veil.user.js --format userscript`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&compileStats, "stats", false, "print a stylesheet summary to stderr")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "write to this file instead of stdout")
	compileCmd.Flags().StringVarP(&compileFormat, "format", "f", "", "output rendering: css or userscript")
	_ = compileCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	formats := sink.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func runCompile(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)
	ctx := a.Ctx()

	format := sink.Format(a.Config.Output.Format)
	if compileFormat != "" {
		if format, err = sink.ParseFormat(compileFormat); err != nil {
			return err
		}
	}

	var css string
	if compileOut != "" {
		out, sinkErr := sink.NewFileSink(compileOut, format, a.Config.Output.StyleID)
		if sinkErr != nil {
			return sinkErr
		}
		a.Apply.SetSink(out)
		result, applyErr := a.Apply.Apply(ctx)
		if applyErr != nil {
			return applyErr
		}
		css = result.CSS
		fmt.Fprint(cmd.ErrOrStderr(), renderer.RenderPath(styles.IconFile, "Wrote", out.Path()))
	} else {
		rs, listErr := a.Rules.List(ctx)
		if listErr != nil {
			return listErr
		}
		css = stylesheet.CompileRuleSet(rs)

		textRenderer, rErr := sink.NewRenderer(format, a.Config.Output.StyleID)
		if rErr != nil {
			return rErr
		}
		data, rErr := textRenderer.Render(css)
		if rErr != nil {
			return rErr
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	if compileStats {
		fmt.Fprint(cmd.ErrOrStderr(), renderer.RenderStats(cssinspect.Inspect(css), len(css)))
	}
	return nil
}
