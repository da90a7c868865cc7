package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/domain/entity"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or change blur and video modes",
	Args:  cobra.NoArgs,
	RunE:  runModeShow,
}

var modeBlurCmd = &cobra.Command{
	Use:       "blur <" + joinModes(entity.BlurModes()) + ">",
	Short:     "Blur regions (gpu) or cover them with an opaque fill (placeholder)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: modeStrings(entity.BlurModes()),
	RunE:      runModeBlur,
}

var modeVideoCmd = &cobra.Command{
	Use:       "video <" + joinModes(entity.VideoModes()) + ">",
	Short:     "Choose how videos inside obscured regions are handled",
	Args:      cobra.ExactArgs(1),
	ValidArgs: modeStrings(entity.VideoModes()),
	RunE:      runModeVideo,
}

func init() {
	rootCmd.AddCommand(modeCmd)
	modeCmd.AddCommand(modeBlurCmd)
	modeCmd.AddCommand(modeVideoCmd)
}

func runModeShow(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	rs, err := a.Rules.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "blur: %s\nvideo: %s\n", rs.BlurMode, rs.VideoMode)
	return nil
}

func runModeBlur(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	mode, err := a.Rules.SetBlurMode(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess("blur mode set to "+string(mode)))
	reapply(cmd, a)
	return nil
}

func runModeVideo(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	mode, err := a.Rules.SetVideoMode(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSuccess("video mode set to "+string(mode)))
	reapply(cmd, a)
	return nil
}

func modeStrings[M ~string](modes []M) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}

func joinModes[M ~string](modes []M) string {
	return strings.Join(modeStrings(modes), "|")
}
