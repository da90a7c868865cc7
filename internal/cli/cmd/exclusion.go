package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli/styles"
)

var exclusionCmd = &cobra.Command{
	Use:     "exclusion",
	Aliases: []string{"excl", "x"},
	Short:   "Manage exclusions kept visible inside obscured regions",
}

var exclusionAddCmd = &cobra.Command{
	Use:     "add <css-selector>",
	Short:   "Add an active exclusion",
	Example: `  veil exclusion add '.author-name'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runExclusionAdd,
}

var exclusionRemoveCmd = &cobra.Command{
	Use:     "rm <css-selector>",
	Aliases: []string{"remove"},
	Short:   "Remove every exclusion with this text",
	Args:    cobra.ExactArgs(1),
	RunE:    runExclusionRemove,
}

var exclusionToggleCmd = &cobra.Command{
	Use:   "toggle <css-selector>",
	Short: "Enable or disable an exclusion",
	Args:  cobra.ExactArgs(1),
	RunE:  runExclusionToggle,
}

var exclusionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exclusions",
	Args:    cobra.NoArgs,
	RunE:    runExclusionList,
}

func init() {
	rootCmd.AddCommand(exclusionCmd)
	exclusionCmd.AddCommand(exclusionAddCmd)
	exclusionCmd.AddCommand(exclusionRemoveCmd)
	exclusionCmd.AddCommand(exclusionToggleCmd)
	exclusionCmd.AddCommand(exclusionListCmd)
}

func runExclusionAdd(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	rule, err := a.Rules.AddExclusion(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess("exclusion "+rule.Name+" added"))
	reapply(cmd, a)
	return nil
}

func runExclusionRemove(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	if err := a.Rules.RemoveExclusion(a.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess("exclusion "+args[0]+" removed"))
	reapply(cmd, a)
	return nil
}

func runExclusionToggle(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	active, err := a.Rules.ToggleExclusion(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
		fmt.Sprintf("exclusion %s %s", args[0], stateWord(active))))
	reapply(cmd, a)
	return nil
}

func runExclusionList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	rs, err := a.Rules.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderExclusions(rs.Exclusions))
	return nil
}
