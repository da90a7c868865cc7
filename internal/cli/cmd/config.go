package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/infrastructure/config"
)

var configWriteSchema bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration paths and schema",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config, database and output paths",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Args:  cobra.NoArgs,
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&configWriteSchema, "write", "w", false,
		"write "+config.SchemaFileName+" next to the config file instead of printing")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)

	var configFile string
	if a.ConfigMgr != nil {
		configFile = a.ConfigMgr.GetConfigFile()
	} else if configFile, err = config.GetConfigFile(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderer.RenderPath(styles.IconConfig, "Config  ", configFile))
	fmt.Fprint(out, renderer.RenderPath(styles.IconDatabase, "Database", a.Config.Database.Path))
	fmt.Fprint(out, renderer.RenderPath(styles.IconFile, "Output  ", a.Config.Output.Path))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if !configWriteSchema {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	configFile, err := config.GetConfigFile()
	if err != nil {
		return err
	}
	path, err := config.GenerateSchemaFile(filepath.Dir(configFile))
	if err != nil {
		return err
	}
	renderer := styles.NewRulesRenderer(a.Theme)
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPath(styles.IconConfig, "Schema written to", path))
	return nil
}
