package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"emicalc/internal/deploy"
)

// NewDownCommand creates the "down" command, which stops and removes the
// service container.
func NewDownCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the service container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDown(cmd.Context(), cmd, name, force)
		},
	}

	cmd.Flags().StringVar(&name, "name", defaultContainerName, "Container name")
	cmd.Flags().BoolVar(&force, "force", false, "Kill the container instead of waiting for graceful shutdown")

	return cmd
}

func runDown(ctx context.Context, cmd *cobra.Command, name string, force bool) error {
	cli, err := deploy.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	if err := cli.Ping(ctx); err != nil {
		return err
	}

	existing, err := cli.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("no container named %q found", name)
	}

	if existing.State == "running" && !force {
		if err := cli.Stop(ctx, existing.ID); err != nil {
			return err
		}
	}
	if err := cli.Remove(ctx, existing.ID, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", name, shortID(existing.ID))
	return nil
}
