package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devstrap/devstrap/internal/adapters/logging"
	"github.com/devstrap/devstrap/internal/domain/preflight"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run the preflight checks without installing anything",
	Long: `Doctor runs the same environment checks that setup performs upfront:
privileges, free disk space, and network reachability.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	checker := preflight.NewChecker(logging.NewNopLogger())
	result := checker.Run(cmd.Context())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Elevated privileges: %v\n", result.HasSudo)
	if result.DiskSpaceMB == preflight.DiskUnknown {
		fmt.Fprintln(out, "Free disk space:     unknown")
	} else {
		fmt.Fprintf(out, "Free disk space:     %d MB\n", result.DiskSpaceMB)
	}
	fmt.Fprintf(out, "Network reachable:   %v\n", result.NetworkReachable)

	if len(result.Warnings) == 0 {
		fmt.Fprintln(out, "\nNo warnings. Ready to run 'devstrap setup'.")
		return nil
	}

	fmt.Fprintf(out, "\n%d warning(s):\n", len(result.Warnings))
	for _, w := range result.Warnings {
		fmt.Fprintln(out, "  -", w)
	}
	return nil
}
