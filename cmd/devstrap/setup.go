package main

import (
	"github.com/spf13/cobra"

	"github.com/devstrap/devstrap/internal/adapters/clock"
	"github.com/devstrap/devstrap/internal/adapters/command"
	"github.com/devstrap/devstrap/internal/adapters/logging"
	"github.com/devstrap/devstrap/internal/domain/setup"
	"github.com/devstrap/devstrap/internal/ports"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Detect the platform and install core tools and editors",
	Long: `Setup runs the provisioning pipeline: preflight checks, OS detection,
package manager verification, tool and editor installation, and Node
toolchain configuration.

Examples:
  devstrap setup                  # Provision this machine
  devstrap setup --dry-run        # Show what would be installed
  devstrap setup --skip-editor zed --block cursor`,
	RunE: runSetup,
}

var (
	setupDryRun      bool
	setupMaxRetries  int
	setupSkipTools   []string
	setupSkipEditors []string
	setupAllow       []string
	setupBlock       []string
)

func init() {
	setupCmd.Flags().BoolVar(&setupDryRun, "dry-run", false, "Simulate without running installers")
	setupCmd.Flags().IntVar(&setupMaxRetries, "max-retries", 2, "Retries per install command")
	setupCmd.Flags().StringSliceVar(&setupSkipTools, "skip-tool", nil, "Tool identifiers to skip")
	setupCmd.Flags().StringSliceVar(&setupSkipEditors, "skip-editor", nil, "Editor identifiers to skip")
	setupCmd.Flags().StringSliceVar(&setupAllow, "allow", nil, "Only install these identifiers")
	setupCmd.Flags().StringSliceVar(&setupBlock, "block", nil, "Never install these identifiers")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSetupConfig(cmd)
	if err != nil {
		return err
	}

	level := ports.LevelInfo
	if cfg.Verbose {
		level = ports.LevelDebug
	}
	logger := logging.NewZerologLogger(logging.WithLevel(level))

	pipeline := setup.NewPipeline(cfg, command.NewShellRunner(), logger, clock.NewReal())
	sc := setup.CreateContext()

	outcome, runErr := pipeline.Run(cmd.Context(), sc)
	printSummary(cmd.OutOrStdout(), outcome)

	if outcome.Status == setup.RunAborted {
		return runErr
	}
	return nil
}

// loadSetupConfig merges the config file with flag overrides. Flags win.
func loadSetupConfig(cmd *cobra.Command) (setup.Config, error) {
	cfg := setup.DefaultConfig()
	if cfgFile != "" {
		loaded, err := setup.LoadConfig(cfgFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = setupDryRun
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = setupMaxRetries
	}
	if cmd.Flags().Changed("skip-tool") {
		cfg.SkipTools = setupSkipTools
	}
	if cmd.Flags().Changed("skip-editor") {
		cfg.SkipEditors = setupSkipEditors
	}
	if cmd.Flags().Changed("allow") {
		cfg.Allow = setupAllow
	}
	if cmd.Flags().Changed("block") {
		cfg.Block = setupBlock
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
