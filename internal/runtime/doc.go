// Package runtime manages writable container instances backed by containerd.
//
// A [Runtime] connects to a containerd daemon and materializes base images
// into instances. Image refs are normalized docker-style, pulled, unpacked
// for the host platform, and used to create containers with overlayfs
// snapshots backed by a long-running task.
//
// Each [Container] wraps a running containerd task. Commands can be
// executed inside the instance, files copied in as tar streams, unified
// diffs applied in place, and the final filesystem state committed to the
// local image store under one or more tags. When the instance is no longer
// needed it must be destroyed to release its snapshot and task resources.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "imgpatch")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.StartInstance(ctx, "alpine:3.20", "imgpatch-myapp")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	if err := ctr.ApplyPatch(ctx, diff, "/var/lib/my-app"); err != nil {
//	    return err
//	}
//
//	result, err := ctr.Commit(ctx, runtime.CommitOptions{
//	    Repository: "myapp",
//	    Tags:       []string{"patched"},
//	})
package runtime
