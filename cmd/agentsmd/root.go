package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aumos-oss/agentsmd/pkg/cli"
	"aumos-oss/agentsmd/pkg/config"
	"aumos-oss/agentsmd/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Set by the root PersistentPreRunE for every subcommand.
	appConfig *config.Config
	logger    = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "agentsmd",
	Short: "agentsmd - parse, validate and fetch AGENTS.md policies",
	Long: `agentsmd reads AGENTS.md files, the markdown documents in which a site
declares how autonomous agents may interact with it.

It provides:
  - Tolerant parsing with warnings and key suggestions
  - Semantic validation of trust levels, rate limits and data handling
  - HTTPS fetching from /AGENTS.md and /.well-known/agents.md
  - Scheduled monitoring of published policies with change history`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Silent() {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "agentsmd.yaml", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the optional config file and builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOptional(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	if verbose {
		logCfg.Level = "debug"
	}
	logCfg.Writer = cmd.ErrOrStderr()

	l, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = cfg
	logger = l
	return nil
}
