package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kilnhq/kilnd/internal/manifest"
	"github.com/kilnhq/kilnd/internal/paths"
	"github.com/kilnhq/kilnd/internal/runtime"
)

// Filename of the OCI archive produced by a build.
const ExportFilename = "image.tar"

// Controls plan execution.
type Options struct {
	Plan      *manifest.Plan // Plan to execute.
	Root      string         // Project root, for resolving the plan's relative paths.
	Output    string         // Directory for the exported image.
	Resource  string         // Resource name, used as a prefix for container IDs.
	Platforms []string       // Target platforms (e.g., ["linux/amd64"]). Overrides the plan; defaults to host.
	CacheDir  string         // Dependency-layer cache directory. Empty uses the XDG default.
	NoCache   bool           // Bypass the dependency-layer cache entirely.
}

// Returned after successful plan execution.
type Result struct {
	Output string // Directory containing the exported image.
}

// Executes a build plan against the container runtime.
//
// The plan's inputs are verified before any container work starts; a
// missing manifest, source directory, or environment file aborts the build
// immediately with no artifact produced. Each target platform then runs
// the full pipeline: base image, working directory, dependency install
// (cached), source copy, optional env-file embed, and final export.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms = opts.Plan.Platforms
	}
	if len(platforms) == 0 {
		platforms = []string{runtime.DefaultPlatform()}
	}

	resource := opts.Resource
	if resource == "" {
		resource = "kiln"
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = paths.LayerCache()
	}

	if err := opts.Plan.Validate(); err != nil {
		return nil, err
	}

	in, err := preflight(opts.Plan, opts.Root)
	if err != nil {
		return nil, err
	}

	slog.Info("executing plan",
		"base", opts.Plan.Base,
		"output", opts.Output,
		"dependencies", len(in.requirements),
		"platforms", platforms,
	)

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	p := &pipeline{
		rt:       rt,
		plan:     opts.Plan,
		in:       in,
		resource: resource,
		output:   opts.Output,
		cache:    &layerCache{dir: cacheDir},
		noCache:  opts.NoCache,
	}

	return p.build(ctx, platforms)
}
