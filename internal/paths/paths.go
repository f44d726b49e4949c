package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default system-wide containerd socket.
const systemSocket = "/run/containerd/containerd.sock"

// Default path to the containerd socket.
//
// When running as a regular user, a rootless containerd socket under the
// XDG runtime directory is preferred if one exists:
//
//	Linux: $XDG_RUNTIME_DIR/containerd/containerd.sock
//
// Otherwise the system socket /run/containerd/containerd.sock is used.
func ContainerdSocket() string {
	if os.Geteuid() != 0 && xdg.RuntimeDir != "" {
		p := filepath.Join(xdg.RuntimeDir, "containerd", "containerd.sock")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return systemSocket
}
