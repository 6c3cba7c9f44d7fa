// Package cli wires the cobra command tree for the registry gate.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// version can be overridden at build time via:
// go build -ldflags "-X github.com/Vinuhub-vinuchain/vinuchain-lists/internal/cli.version=1.2.3"
var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "registry-validator",
	Short: "Validation gate for the token and contract registry",
	Long: "registry-validator checks every token entry and contract project in the\n" +
		"registry: address checksums, path and JSON safety, URL and email policy,\n" +
		"logo signatures, ABI and Solidity structure, and cross-references.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ValidationFailedError marks a run that completed but recorded hard errors.
type ValidationFailedError struct{}

func (ValidationFailedError) Error() string { return "validation failed" }

// ExitCode maps an Execute error onto the process outcome: 1 for a failed
// validation, 2 for fatal conditions.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var vf ValidationFailedError
	if errors.As(err, &vf) {
		return 1
	}
	return 2
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
