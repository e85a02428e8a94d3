// Package runtime manages build containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and provides base image
// acquisition and container creation. Base images are either pulled from
// a registry or imported from a local OCI archive, unpacked for the
// target platform, and used to create containers with overlayfs
// snapshots.
//
// Each [Container] wraps a running containerd task. Commands can be
// executed inside the container, files can be copied in and out as tar
// streams, and the final filesystem state can be committed and exported
// as a new OCI archive with startup metadata applied. When the container
// is no longer needed it should be destroyed to release its snapshot and
// task resources.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "kilnd")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	tag, err := rt.EnsureImage(ctx, "docker.io/library/python:3.10-slim", "linux/amd64")
//	if err != nil {
//	    return err
//	}
//
//	ctr, err := rt.StartContainer(ctx, tag, "build-1", "linux/amd64")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "pip install -r requirements.txt", nil, "/app")
//	if err != nil {
//	    return err
//	}
//
//	err = ctr.Export(ctx, "dist/image.tar", runtime.ImageConfig{
//	    Entrypoint: []string{"python", "src/agent/core_agent.py"},
//	    WorkingDir: "/app",
//	})
package runtime
