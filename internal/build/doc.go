// Package build orchestrates plan execution against container runtimes.
//
// A build is a linear pipeline of strictly ordered phases: acquire the
// base image, create the working directory, install the declared
// dependencies, copy the application source, optionally embed the
// environment file, and export the result as an OCI image carrying the
// plan's entrypoint. Each phase's output filesystem state is the next
// phase's input; no phase is skipped or reordered, and any failure aborts
// the build before an artifact exists.
//
// The dependency phase is content-cached: the post-install filesystem is
// exported once per (base, workdir, install command, manifest) tuple, so
// source-only changes rebuild without reinstalling packages.
//
// Container operations are delegated to the runtime package.
// Multi-platform builds repeat the pipeline per platform, writing each
// result to a platform-specific output directory.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Plan:   plan,
//	    Root:   ".",
//	    Output: "dist",
//	})
//	if err != nil {
//	    return err
//	}
package build
