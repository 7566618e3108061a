package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emicalc/internal/deploy"
)

// NewWaitCommand creates the "wait" command, which blocks until the
// service container stops and exits with the container's exit code.
func NewWaitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait for the service container to stop and mirror its exit code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWait(cmd.Context(), cmd, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", defaultContainerName, "Container name")

	return cmd
}

func runWait(ctx context.Context, cmd *cobra.Command, name string) error {
	cli, err := deploy.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	existing, err := cli.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("no container named %q found", name)
	}

	code, err := cli.Wait(ctx, existing.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Container %s exited with code %d\n", name, code)
	if code != 0 {
		os.Exit(int(code))
	}
	return nil
}
