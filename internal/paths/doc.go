// Provides platform-appropriate default paths.
//
// Paths follow XDG conventions where they apply, so a rootless containerd
// daemon under $XDG_RUNTIME_DIR is found without configuration.
package paths
