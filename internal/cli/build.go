package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"emicalc/internal/deploy"
)

// NewBuildCommand creates the "build" command, which packages the current
// directory as build context and builds the service image.
func NewBuildCommand() *cobra.Command {
	var (
		tag        string
		contextDir string
		dockerfile string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the service container image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd, contextDir, dockerfile, tag)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", defaultImageTag, "Image tag")
	cmd.Flags().StringVar(&contextDir, "context", ".", "Build context directory")
	cmd.Flags().StringVarP(&dockerfile, "file", "f", "Dockerfile", "Dockerfile path within the context")

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, contextDir, dockerfile, tag string) error {
	cli, err := deploy.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	if err := cli.Ping(ctx); err != nil {
		return err
	}

	if err := cli.BuildImage(ctx, contextDir, dockerfile, tag, cmd.OutOrStdout()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %s\n", tag)
	return nil
}
