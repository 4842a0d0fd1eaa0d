package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rafabd1/LiteFinder/core"
	"github.com/rafabd1/LiteFinder/core/detector"
	"github.com/rafabd1/LiteFinder/core/patterns"
	"github.com/rafabd1/LiteFinder/networking"
	"github.com/rafabd1/LiteFinder/output"
	"github.com/rafabd1/LiteFinder/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runScan fetches the target URL, scans it and updates the host reports.
func runScan(cmd *cobra.Command, vip *viper.Viper) error {
	if vip.GetBool("list_patterns") {
		printPatternList(cmd.OutOrStdout())
		return nil
	}

	cfg, err := resolveSettings(vip)
	if err != nil {
		return err
	}

	rawURL := strings.TrimSpace(vip.GetString("url"))
	if rawURL == "" {
		return fmt.Errorf("no target URL provided, use -u/--url")
	}
	target := utils.SanitizeURL(rawURL)
	if !utils.IsValidURL(target) {
		return fmt.Errorf("invalid URL: %s", rawURL)
	}

	logger := output.NewLogger(cfg.Verbose, cfg.Silent)
	logger.SetOutput(cmd.ErrOrStderr())

	if !cfg.Silent {
		printBanner(cmd.ErrOrStderr())
	}

	pm, err := patterns.NewPatternManager()
	if err != nil {
		return utils.NewError(utils.ConfigError, "failed to load patterns", err)
	}
	if err := pm.Filter(cfg.IncludeCategories, cfg.ExcludeCategories); err != nil {
		return utils.NewError(utils.ConfigError, "invalid category filter", err)
	}

	client := networking.NewClient(cfg.Timeout, cfg.MaxRetries, time.Duration(cfg.RetryDelay)*time.Second)
	client.SetLogger(logger)
	client.SetUserAgent(cfg.UserAgent)
	if cfg.Insecure {
		client.SetInsecureSkipVerify(true)
		logger.Info("SSL/TLS certificate verification disabled")
	}
	for _, h := range cfg.Headers {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			logger.Warning("Invalid header format (should be 'Name: Value'): %s", h)
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		client.SetRequestHeader(name, value)
		logger.Debug("Set custom header: %s", name)
	}

	logger.Info("HTTP config: %d sec timeout | %d attempts | %d sec between attempts",
		cfg.Timeout, cfg.MaxRetries, cfg.RetryDelay)
	logger.Info("Scanning %s with %d patterns", target, pm.GetPatternCount())

	store := output.NewStore(cfg.OutputDir, logger)
	det := detector.NewDetector(pm, logger)
	processor := core.NewProcessor(client, det, store, logger)

	result, err := processor.Run(cmd.Context(), target)
	if err != nil && !utils.IsErrorType(err, utils.StoreWriteError) {
		return err
	}

	stats := det.GetStats()
	logger.Debug("Scan stats: %d raw match(es), %d discarded, %d finding(s)",
		stats.RawMatches, stats.Discarded, stats.FindingsEmitted)

	console := output.NewConsole(cfg.Silent)
	console.SetOutput(cmd.OutOrStdout())
	console.PrintRecord(result.Record)
	console.PrintPersist(result.Persist)

	if err != nil {
		return err
	}

	if len(result.Persist.NewFindings) > 0 {
		logger.Success("%d new finding(s) stored for %s", len(result.Persist.NewFindings), result.Host)
	}
	return nil
}

func printBanner(w io.Writer) {
	banner := `
    __    _ __       _______           __
   / /   (_) /____  / ____(_)___  ____/ /__  _____
  / /   / / __/ _ \/ /_  / / __ \/ __  / _ \/ ___/
 / /___/ / /_/  __/ __/ / / / / / /_/ /  __/ /
/_____/_/\__/\___/_/   /_/_/ /_/\__,_/\___/_/     v%s

`
	fmt.Fprintf(w, banner, Version)
}

// printPatternList prints the catalog grouped by category, in detection order
func printPatternList(w io.Writer) {
	fmt.Fprintln(w, "Available Pattern Categories and Patterns:")
	fmt.Fprintln(w, "===========================================")

	rules := patterns.Rules()
	for _, category := range patterns.Categories() {
		fmt.Fprintf(w, "\n[%s]\n", strings.ToUpper(category))
		for _, rule := range rules {
			if rule.Category != category {
				continue
			}
			fmt.Fprintf(w, "  - %-30s : %s\n", rule.Name, rule.Description)
		}
	}
	fmt.Fprintln(w, "===========================================")
	fmt.Fprintln(w, "\nNote: Use category names with --include-categories or --exclude-categories flags.")
}

func initScanFlags(cmd *cobra.Command, vip *viper.Viper) {
	// --- Input ---
	cmd.Flags().StringP("url", "u", "", "URL of the JavaScript file to scan")
	vip.BindPFlag("url", cmd.Flags().Lookup("url"))

	// --- Networking ---
	cmd.Flags().IntP("timeout", "t", 10, "HTTP request timeout in seconds, per attempt")
	cmd.Flags().IntP("retries", "r", 3, "Maximum number of fetch attempts")
	cmd.Flags().Int("retry-delay", 2, "Seconds to wait between fetch attempts")
	cmd.Flags().StringSliceP("header", "H", []string{}, "Custom headers to include in requests (e.g., 'Cookie: session=...')")
	cmd.Flags().Bool("insecure", false, "Disable TLS certificate verification")
	cmd.Flags().String("user-agent", "", "User-Agent header sent with the request")
	vip.BindPFlag("timeout", cmd.Flags().Lookup("timeout"))
	vip.BindPFlag("retries", cmd.Flags().Lookup("retries"))
	vip.BindPFlag("retry_delay", cmd.Flags().Lookup("retry-delay"))
	vip.BindPFlag("headers", cmd.Flags().Lookup("header"))
	vip.BindPFlag("insecure", cmd.Flags().Lookup("insecure"))
	vip.BindPFlag("user_agent", cmd.Flags().Lookup("user-agent"))

	// --- Pattern Control ---
	cmd.Flags().StringSlice("include-categories", []string{}, "Comma-separated list of pattern categories to include (e.g., aws,auth)")
	cmd.Flags().StringSlice("exclude-categories", []string{}, "Comma-separated list of pattern categories to exclude (e.g., url,code)")
	cmd.Flags().Bool("list-patterns", false, "List available pattern categories and exit")
	vip.BindPFlag("include_categories", cmd.Flags().Lookup("include-categories"))
	vip.BindPFlag("exclude_categories", cmd.Flags().Lookup("exclude-categories"))
	vip.BindPFlag("list_patterns", cmd.Flags().Lookup("list-patterns"))

	// --- General Behavior ---
	cmd.Flags().BoolP("silent", "s", false, "Suppress all output except errors; reports are still written")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging output")
	vip.BindPFlag("silent", cmd.Flags().Lookup("silent"))
	vip.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
}
