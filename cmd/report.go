package cmd

import (
	"fmt"

	"github.com/rafabd1/LiteFinder/output"
	"github.com/rafabd1/LiteFinder/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newReportCmd(vip *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "report [host]",
		Short: "Show the findings accumulated for a host",
		Long: `Without arguments, list every host that has a report under the output
directory. With a host (or a URL on that host), print its stored findings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSettings(vip)
			if err != nil {
				return err
			}

			store := output.NewStore(cfg.OutputDir, nil)
			console := output.NewConsole(false)
			console.SetOutput(cmd.OutOrStdout())

			if len(args) == 0 {
				hosts, err := store.Hosts()
				if err != nil {
					return err
				}
				if len(hosts) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No reports under %s\n", cfg.OutputDir)
					return nil
				}
				for _, host := range hosts {
					records, err := output.LoadRecords(store.JSONPath(host))
					if err != nil {
						fmt.Fprintf(cmd.OutOrStdout(), "%s (unreadable: %v)\n", host, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: %d record(s)\n",
						host, utils.RegistrableDomain(host), len(records))
				}
				return nil
			}

			host, err := utils.TargetHost(utils.SanitizeURL(args[0]))
			if err != nil {
				return err
			}
			records, err := output.LoadRecords(store.JSONPath(host))
			if err != nil {
				return err
			}
			console.PrintHistory(host, records)
			return nil
		},
	}
}
