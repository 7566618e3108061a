package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"emicalc/internal/deploy"
)

// passthroughEnv lists the variables forwarded from the caller's
// environment into the container when set.
var passthroughEnv = []string{
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
	"OTEL_SDK_DISABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_PROTOCOL",
	"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER", "OTEL_TRACES_SAMPLER_ARG",
}

// NewUpCommand creates the "up" command, which starts the service
// container and waits for it to accept connections.
func NewUpCommand() *cobra.Command {
	var (
		tag      string
		name     string
		hostPort string
		env      []string
		noWait   bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Start the service container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context(), cmd, tag, name, hostPort, env, noWait)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", defaultImageTag, "Image tag to run")
	cmd.Flags().StringVar(&name, "name", defaultContainerName, "Container name")
	cmd.Flags().StringVarP(&hostPort, "port", "p", defaultPort, "Host port to publish")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "Extra environment variables (KEY=VALUE)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Do not wait for the service port to accept connections")

	return cmd
}

func runUp(ctx context.Context, cmd *cobra.Command, tag, name, hostPort string, extraEnv []string, noWait bool) error {
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
	if existing != nil {
		return fmt.Errorf("container %q already exists (state: %s); run \"deployctl down\" first", name, existing.State)
	}

	id, err := cli.Run(ctx, deploy.RunOptions{
		Name:          name,
		Image:         tag,
		HostPort:      hostPort,
		ContainerPort: defaultPort,
		Env:           collectEnv(extraEnv),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Started %s (%s)\n", name, shortID(id))

	if noWait {
		return nil
	}

	addr := net.JoinHostPort("127.0.0.1", hostPort)
	if err := deploy.WaitForListener(ctx, addr, 30*time.Second); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Service ready on http://%s\n", addr)
	return nil
}

// collectEnv merges forwarded host variables with explicit -e overrides.
// Explicit entries win because they are appended last.
func collectEnv(extra []string) []string {
	var env []string
	for _, key := range passthroughEnv {
		if v, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+v)
		}
	}
	for _, kv := range extra {
		if strings.Contains(kv, "=") {
			env = append(env, kv)
		}
	}
	return env
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
