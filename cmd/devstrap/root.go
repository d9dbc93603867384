package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devstrap/devstrap/internal/domain/setup"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "devstrap",
	Short: "Provision a developer workstation",
	Long: `Devstrap detects the host platform, selects a package manager, installs
a fixed set of core tools and editors, and reports structured outcomes.

Every step is idempotent: tools already present are recorded and skipped.`,
	SilenceErrors: true, // We format errors ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var se *setup.SetupError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, se.Format())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (devstrap.yaml or devstrap.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
