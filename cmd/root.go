package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rafabd1/LiteFinder/config"
	"github.com/rafabd1/LiteFinder/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the litefinder command tree. Each call gets its own
// viper instance so flags, env and config never leak between invocations.
func NewRootCmd() *cobra.Command {
	vip := viper.New()
	vip.SetEnvPrefix("LITEFINDER")
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "litefinder -u URL",
		Short: "LiteFinder - find secrets in a remote JavaScript file",
		Long: `LiteFinder fetches one script, scans it for API keys, tokens, credentials
and encoded blobs, decodes base64 and JWT matches, and merges the new findings
into per-host JSON and HTML reports under the output directory.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, vip)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/"+config.DefaultConfigPath+")")
	cmd.PersistentFlags().StringP("output-dir", "o", "output", "root directory for per-host reports")
	vip.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	vip.BindPFlag("output_dir", cmd.PersistentFlags().Lookup("output-dir"))

	initScanFlags(cmd, vip)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newReportCmd(vip))

	return cmd
}

/*
   Loads the config file (explicit or found through XDG) and lets env and
   flags override it. Precedence: flag > env > config file > built-in default.
*/
func resolveSettings(vip *viper.Viper) (config.Configuration, error) {
	path := config.FindConfigFile(vip.GetString("config"))
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return cfg, utils.NewError(utils.ConfigError, "failed to load config", err)
	}

	vip.SetDefault("timeout", cfg.Timeout)
	vip.SetDefault("retries", cfg.MaxRetries)
	vip.SetDefault("retry_delay", cfg.RetryDelay)
	vip.SetDefault("insecure", cfg.Insecure)
	vip.SetDefault("user_agent", cfg.UserAgent)
	vip.SetDefault("headers", cfg.Headers)
	vip.SetDefault("output_dir", cfg.OutputDir)
	vip.SetDefault("include_categories", cfg.IncludeCategories)
	vip.SetDefault("exclude_categories", cfg.ExcludeCategories)
	vip.SetDefault("verbose", cfg.Verbose)
	vip.SetDefault("silent", cfg.Silent)

	cfg.Timeout = vip.GetInt("timeout")
	cfg.MaxRetries = vip.GetInt("retries")
	cfg.RetryDelay = vip.GetInt("retry_delay")
	cfg.Insecure = vip.GetBool("insecure")
	cfg.UserAgent = vip.GetString("user_agent")
	cfg.Headers = vip.GetStringSlice("headers")
	cfg.OutputDir = vip.GetString("output_dir")
	cfg.IncludeCategories = vip.GetStringSlice("include_categories")
	cfg.ExcludeCategories = vip.GetStringSlice("exclude_categories")
	cfg.Verbose = vip.GetBool("verbose")
	cfg.Silent = vip.GetBool("silent")

	if err := cfg.Validate(); err != nil {
		return cfg, utils.NewError(utils.ConfigError, "invalid configuration", err)
	}
	return cfg, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("[!]"), err)
		os.Exit(1)
	}
}
