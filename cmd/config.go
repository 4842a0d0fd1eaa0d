package cmd

import (
	"fmt"
	"os"

	"github.com/rafabd1/LiteFinder/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the LiteFinder configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with the default settings",
		Long: `Write a YAML configuration file holding the built-in defaults.

Without a path the file is created at $XDG_CONFIG_HOME/` + config.DefaultConfigPath + `,
where litefinder looks for it when --config is not given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfigInit,
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")

	cmd.AddCommand(initCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = config.DefaultSavePath()
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}

	if err := config.SaveConfig(path, config.Default()); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
	return nil
}
