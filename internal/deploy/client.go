// Package deploy wraps the Docker Engine SDK for building the service
// image and managing its container. Containers started by this package
// carry the "emicalc.managed" label so they can be found again without
// any external state.
package deploy

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/client"
)

// pingTimeout bounds how long we wait for the daemon to answer a Ping.
const pingTimeout = 5 * time.Second

// Label values applied to every container started by this package.
const (
	LabelManaged = "emicalc.managed"
	ManagedValue = "deployctl"
)

// Client wraps the Docker SDK client. Wrapping rather than embedding keeps
// the exposed surface small.
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client. DOCKER_HOST takes precedence when set;
// otherwise the standard unix socket is probed.
func NewClient() (*Client, error) {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return newClientWithHost(host)
	}

	const socket = "/var/run/docker.sock"
	if _, err := os.Stat(socket); err != nil {
		return nil, fmt.Errorf("docker socket not found at %s (is the daemon running?): %w", socket, err)
	}
	return newClientWithHost("unix://" + socket)
}

func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create docker client for host %q: %w", host, err)
	}
	return &Client{inner: c}, nil
}

// Ping verifies the daemon is reachable and responsive.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return fmt.Errorf("docker daemon is not responding: %w", err)
	}
	return nil
}

// Close releases the underlying client. Safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
