package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/domain/entity"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show, export and import the full rule set",
	Args:  cobra.NoArgs,
	RunE:  runRulesShow,
}

var rulesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the rules as a JSON document (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesExport,
}

var rulesImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the stored rules with a JSON document",
	Long: `Replace every stored rule and mode with the content of a JSON document,
as written by 'veil rules export'. Keys missing from the document are reset
to their defaults. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesImport,
}

var rulesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the rules document",
	Args:  cobra.NoArgs,
	RunE:  runRulesSchema,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rulesCmd.AddCommand(rulesImportCmd)
	rulesCmd.AddCommand(rulesSchemaCmd)
}

func runRulesShow(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	rs, err := a.Rules.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderRuleSet(rs))
	return nil
}

func runRulesExport(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	data, err := a.Transfer.Export(a.Ctx())
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	renderer := styles.NewRulesRenderer(a.Theme)
	fmt.Fprint(cmd.ErrOrStderr(), renderer.RenderPath(styles.IconFile, "Exported to", args[0]))
	return nil
}

func runRulesImport(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	var data []byte
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	out, err := a.Transfer.Import(a.Ctx(), data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
		fmt.Sprintf("imported %d selectors and %d exclusions", out.Selectors, out.Exclusions)))
	if out.Skipped > 0 {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderWarning(
			fmt.Sprintf("skipped %d entries with an empty selector", out.Skipped)))
	}
	if out.Clamped > 0 {
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderWarning(
			fmt.Sprintf("raised %d negative intensities to %dpx", out.Clamped, entity.MinIntensity)))
	}
	reapply(cmd, a)
	return nil
}

func runRulesSchema(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	data, err := a.Transfer.Schema()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
