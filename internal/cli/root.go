// Package cli implements the cobra commands for deployctl, the helper
// that builds the service image and manages its container. Each
// subcommand lives in its own file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Defaults shared by the subcommands. The service port is fixed by the
// image; the host port can be overridden per command.
const (
	defaultImageTag      = "emicalc:latest"
	defaultContainerName = "emicalc"
	defaultPort          = "7860"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deployctl",
		Short: "Build and run the EMI calculator service container",
		Long: `deployctl builds the service image and manages its container
through the Docker Engine API. The container publishes the calculator
on port ` + defaultPort + ` and is configured entirely via environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewUpCommand())
	rootCmd.AddCommand(NewDownCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewWaitCommand())

	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
