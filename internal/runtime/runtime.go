package runtime

import (
	"context"
	"fmt"
	"log/slog"
	goruntime "runtime"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/platforms"
	"github.com/distribution/reference"
)

const (

	// Snapshotter used for container filesystems. fuse-overlayfs provides
	// overlay semantics without requiring root privileges (no mount(2)),
	// allowing imgpatch to run as a regular user.
	snapshotter = "fuse-overlayfs"

	// OCI runtime shim for running containers.
	ociRuntime = "io.containerd.runc.v2"
)

// Manages the containerd client and provides image and instance operations.
type Runtime struct {
	client *containerd.Client // Containerd client for managing containers and images.
}

// Creates a runtime connected to the containerd socket at the given address.
//
// The namespace scopes all containerd operations. The runtime must be closed
// when no longer needed.
func New(address, namespace string) (*Runtime, error) {
	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return &Runtime{client: client}, nil
}

// Closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// Pulls a base image and starts a writable instance of it.
//
// The ref is normalized docker-style (e.g. "foo:latest" becomes
// "docker.io/library/foo:latest"), the image is pulled and unpacked into
// the snapshotter for the host platform, and a container is created with a
// fresh snapshot. A long-running task (sleep infinity) is started so that
// subsequent exec calls have a running process to attach to. Any stale
// container with the same ID is removed first.
func (rt *Runtime) StartInstance(ctx context.Context, ref, id string) (*Container, error) {
	image, err := rt.pull(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	c := &Container{
		client:   rt.client,
		id:       id,
		platform: defaultPlatform(),
	}

	// Remove any stale container from a previous run with the same ID.
	c.remove(ctx)

	ctr, err := c.create(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	if err := c.startTask(ctx, ctr); err != nil {
		ctr.Delete(ctx, containerd.WithSnapshotCleanup)
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	slog.Debug("instance started", "id", id, "image", image.Name())

	return c, nil
}

// Pulls an image for the host platform and unpacks it into the snapshotter.
func (rt *Runtime) pull(ctx context.Context, ref string) (containerd.Image, error) {
	normalized, err := normalizeRef(ref)
	if err != nil {
		return nil, err
	}

	p, err := platforms.Parse(defaultPlatform())
	if err != nil {
		return nil, err
	}

	slog.Info("pulling base image", "ref", normalized)

	return rt.client.Pull(ctx, normalized,
		containerd.WithPlatformMatcher(platforms.Only(p)),
		containerd.WithPullUnpack,
		containerd.WithPullSnapshotter(snapshotter),
	)
}

// Normalizes an image ref to its fully-qualified docker form.
//
// Bare names get the docker.io/library prefix and a missing tag defaults
// to latest, matching what users expect from the docker CLI.
func normalizeRef(ref string) (string, error) {
	named, err := reference.ParseDockerRef(ref)
	if err != nil {
		return "", fmt.Errorf("invalid image ref %q: %w", ref, err)
	}
	return named.String(), nil
}

// Returns the default OCI platform for the host architecture.
func defaultPlatform() string {
	return "linux/" + goruntime.GOARCH
}
