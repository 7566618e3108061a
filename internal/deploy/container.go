package deploy

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/go-connections/nat"
)

// RunOptions configures a service container.
type RunOptions struct {
	Name  string
	Image string
	// HostPort is published on all host interfaces and mapped to
	// ContainerPort inside the container.
	HostPort      string
	ContainerPort string
	// Env entries are passed through in KEY=VALUE form.
	Env []string
}

// ContainerState describes a managed container as reported by the daemon.
type ContainerState struct {
	ID     string
	Name   string
	Image  string
	Status string
	State  string
}

// containerSpec translates RunOptions into the create request. No restart
// policy is set: when the entry process exits, the container terminates
// and its exit code stays observable via Wait. Restarting is an external
// supervisor's concern.
func containerSpec(opts RunOptions) (*container.Config, *container.HostConfig, error) {
	port, err := nat.NewPort("tcp", opts.ContainerPort)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid container port %q: %w", opts.ContainerPort, err)
	}

	cfg := &container.Config{
		Image:        opts.Image,
		Env:          opts.Env,
		ExposedPorts: nat.PortSet{port: struct{}{}},
		Labels: map[string]string{
			LabelManaged: ManagedValue,
		},
	}
	hostCfg := &container.HostConfig{
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: opts.HostPort}},
		},
	}
	return cfg, hostCfg, nil
}

// Run creates and starts a container publishing the configured port.
// The returned string is the container ID.
func (c *Client) Run(ctx context.Context, opts RunOptions) (string, error) {
	cfg, hostCfg, err := containerSpec(opts)
	if err != nil {
		return "", err
	}

	created, err := c.inner.ContainerCreate(ctx, cfg, hostCfg, nil, nil, opts.Name)
	if err != nil {
		return "", fmt.Errorf("create container %q: %w", opts.Name, err)
	}

	if err := c.inner.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start container %q: %w", opts.Name, err)
	}

	return created.ID, nil
}

// Stop gracefully stops a container; the daemon escalates to SIGKILL
// after its default timeout.
func (c *Client) Stop(ctx context.Context, id string) error {
	if err := c.inner.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		return fmt.Errorf("stop container %q: %w", id, err)
	}
	return nil
}

// Remove deletes a container. With force the container is killed first.
func (c *Client) Remove(ctx context.Context, id string, force bool) error {
	if err := c.inner.ContainerRemove(ctx, id, container.RemoveOptions{Force: force}); err != nil {
		return fmt.Errorf("remove container %q: %w", id, err)
	}
	return nil
}

// Wait blocks until the container stops and returns its exit code.
func (c *Client) Wait(ctx context.Context, id string) (int64, error) {
	statusCh, errCh := c.inner.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return -1, fmt.Errorf("wait for container %q: %w", id, err)
	case status := <-statusCh:
		if status.Error != nil {
			return status.StatusCode, fmt.Errorf("container %q: %s", id, status.Error.Message)
		}
		return status.StatusCode, nil
	}
}

// ListManaged returns all containers carrying the managed label,
// including stopped ones.
func (c *Client) ListManaged(ctx context.Context) ([]ContainerState, error) {
	containers, err := c.inner.ContainerList(ctx, container.ListOptions{
		All: true,
		Filters: filters.NewArgs(
			filters.Arg("label", LabelManaged+"="+ManagedValue),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	result := make([]ContainerState, 0, len(containers))
	for _, ct := range containers {
		name := ""
		if len(ct.Names) > 0 {
			// The API reports names with a leading slash.
			name = strings.TrimPrefix(ct.Names[0], "/")
		}
		result = append(result, ContainerState{
			ID:     ct.ID,
			Name:   name,
			Image:  ct.Image,
			Status: ct.Status,
			State:  ct.State,
		})
	}
	return result, nil
}

// FindByName returns the managed container with the given name, or nil
// when none exists.
func (c *Client) FindByName(ctx context.Context, name string) (*ContainerState, error) {
	states, err := c.ListManaged(ctx)
	if err != nil {
		return nil, err
	}
	for i := range states {
		if states[i].Name == name {
			return &states[i], nil
		}
	}
	return nil, nil
}

// WaitForListener polls addr until a TCP connection succeeds or the
// deadline passes. It verifies that the published service port accepts
// connections after container start.
func WaitForListener(ctx context.Context, addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("service did not accept connections on %s within %s: %w", addr, timeout, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}
