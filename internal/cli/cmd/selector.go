package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli/styles"
)

var selectorCmd = &cobra.Command{
	Use:     "selector",
	Aliases: []string{"sel", "s"},
	Short:   "Manage selectors of regions to obscure",
}

var selectorAddCmd = &cobra.Command{
	Use:   "add <css-selector>",
	Short: "Add an active selector with the default intensity",
	Example: `  veil selector add '.post'
  veil selector add '#sidebar > .ad'`,
	Args: cobra.ExactArgs(1),
	RunE: runSelectorAdd,
}

var selectorRemoveCmd = &cobra.Command{
	Use:     "rm <css-selector>",
	Aliases: []string{"remove"},
	Short:   "Remove every selector with this text",
	Args:    cobra.ExactArgs(1),
	RunE:    runSelectorRemove,
}

var selectorToggleCmd = &cobra.Command{
	Use:   "toggle <css-selector>",
	Short: "Enable or disable a selector",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelectorToggle,
}

var selectorIntensityCmd = &cobra.Command{
	Use:   "intensity <css-selector> <0-100>",
	Short: "Set the blur radius of a selector in pixels",
	Args:  cobra.ExactArgs(2),
	RunE:  runSelectorIntensity,
}

var selectorListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List selectors",
	Args:    cobra.NoArgs,
	RunE:    runSelectorList,
}

func init() {
	rootCmd.AddCommand(selectorCmd)
	selectorCmd.AddCommand(selectorAddCmd)
	selectorCmd.AddCommand(selectorRemoveCmd)
	selectorCmd.AddCommand(selectorToggleCmd)
	selectorCmd.AddCommand(selectorIntensityCmd)
	selectorCmd.AddCommand(selectorListCmd)
}

func runSelectorAdd(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	rule, err := a.Rules.AddSelector(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
		fmt.Sprintf("selector %s added (%dpx)", rule.Name, rule.EffectiveIntensity())))
	reapply(cmd, a)
	return nil
}

func runSelectorRemove(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	if err := a.Rules.RemoveSelector(a.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess("selector "+args[0]+" removed"))
	reapply(cmd, a)
	return nil
}

func runSelectorToggle(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	active, err := a.Rules.ToggleSelector(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
		fmt.Sprintf("selector %s %s", args[0], stateWord(active))))
	reapply(cmd, a)
	return nil
}

func runSelectorIntensity(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	intensity, err := parseIntensity(args[1])
	if err != nil {
		return err
	}
	if err := a.Rules.SetIntensity(a.Ctx(), args[0], intensity); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess(
		fmt.Sprintf("selector %s set to %dpx", args[0], intensity)))
	reapply(cmd, a)
	return nil
}

func runSelectorList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	rs, err := a.Rules.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSelectors(rs.Selectors))
	return nil
}

func parseIntensity(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("intensity must be a whole number of pixels, got %q", value)
	}
	return n, nil
}

func stateWord(active bool) string {
	if active {
		return "enabled"
	}
	return "disabled"
}
