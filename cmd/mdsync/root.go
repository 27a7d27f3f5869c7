package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notesponge-hq/mdsync/pkg/cli"
	"notesponge-hq/mdsync/pkg/config"
	"notesponge-hq/mdsync/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mdsync",
	Short: "mdsync - export NoteSponge notes as Markdown",
	Long: `mdsync exports the notes stored in a NoteSponge database to a directory
of Markdown files, one per non-archived page, alongside the images attached
to those pages.

The export directory comes from the sync_path setting in the NoteSponge
settings file unless --dir or export.dir overrides it.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "mdsync.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// loadConfig loads the configuration file with environment overrides,
// installs it as the process configuration, and sets up logging. A missing
// file yields the defaults.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	if _, err := logging.Setup(logCfg); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	config.SetConfig(cfg)
	return nil
}
