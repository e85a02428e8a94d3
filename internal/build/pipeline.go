package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/kilnhq/kilnd/internal/manifest"
	"github.com/kilnhq/kilnd/internal/paths"
	"github.com/kilnhq/kilnd/internal/runtime"
)

// Shell used for the dependency install command.
const defaultShell = "/bin/sh"

// Holds shared state for building a plan across all target platforms.
type pipeline struct {
	rt         *runtime.Runtime     // Container runtime for image and container operations.
	plan       *manifest.Plan       // Plan being executed.
	in         *inputs              // Preflighted filesystem inputs.
	resource   string               // Resource name, used as a prefix for container IDs.
	output     string               // Output directory for the final build artifact.
	cache      *layerCache          // Dependency-layer cache.
	noCache    bool                 // Bypass the cache for this build.
	containers []*runtime.Container // Build containers across all platforms, destroyed after the build completes.
}

// Builds the plan end-to-end against the container runtime.
//
// Each target platform is built independently through the full phase
// sequence. All build containers are destroyed when the build completes,
// successfully or not.
func (p *pipeline) build(ctx context.Context, targetPlatforms []string) (*Result, error) {
	defer p.destroyContainers(ctx)

	for _, platform := range targetPlatforms {
		if err := p.buildPlatform(ctx, platform, p.platformOutput(platform, targetPlatforms)); err != nil {
			return nil, fmt.Errorf("%w: platform %s: %w", ErrBuild, platform, err)
		}
	}

	return &Result{Output: p.output}, nil
}

// Runs the phase sequence for a single platform.
//
// Phases advance strictly in order: base, workdir, deps, source, env,
// finalized. Any error freezes the pipeline in its current phase and the
// platform produces no artifact.
func (p *pipeline) buildPlatform(ctx context.Context, platform, output string) error {
	slog.Info("building platform", "platform", platform)

	if err := os.MkdirAll(output, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	tracker := &phaseTracker{}

	key := cacheKey(p.plan.Base, p.plan.Workdir, p.plan.InstallCommand(), platform, p.in.manifestData)
	cachedPath, cached := "", false
	if !p.noCache {
		cachedPath, cached = p.cache.lookup(key)
	}

	// Phase base: acquire the base image (or the cached dependency layer,
	// which already sits on top of it) and start the build container.
	base := p.plan.Base
	if cached {
		base = cachedPath
	}

	tag, err := p.rt.EnsureImage(ctx, base, platform)
	if err != nil {
		return err
	}

	ctr, err := p.rt.StartContainer(ctx, tag, p.containerID(platform), platform)
	if err != nil {
		return err
	}
	p.containers = append(p.containers, ctr)

	if err := tracker.advance(PhaseBase); err != nil {
		return err
	}

	// Phase workdir: all later relative paths resolve against it.
	if err := ctr.MkdirAll(ctx, p.plan.Workdir); err != nil {
		return err
	}
	if err := tracker.advance(PhaseWorkdir); err != nil {
		return err
	}

	// Phase deps.
	if cached {
		slog.Info("dependency layer restored from cache", "key", key.Encoded()[:12])
	} else if err := p.installDependencies(ctx, ctr, key); err != nil {
		return err
	}
	if err := tracker.advance(PhaseDeps); err != nil {
		return err
	}

	// Phase source: additive overlay of the application tree.
	if err := copyDirTo(ctx, ctr, p.in.sourceDir, p.plan.Workdir, filepath.Base(p.in.sourceDir)); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	if err := tracker.advance(PhaseSource); err != nil {
		return err
	}

	// Phase env: embedding is an explicit plan choice with lasting
	// consequences, so it never happens silently.
	if p.plan.Env.Embed {
		slog.Warn("embedding environment file into image layer; its contents remain readable in the image history",
			"file", p.plan.Env.File,
			"variables", len(p.in.envKeys),
		)
		if err := copyFileTo(ctx, ctr, p.in.envPath, p.plan.Workdir, filepath.Base(p.in.envPath)); err != nil {
			return fmt.Errorf("%w: %w", ErrCopy, err)
		}
	}
	if err := tracker.advance(PhaseEnv); err != nil {
		return err
	}

	// Phase finalized: commit the snapshot and export with startup
	// metadata.
	if err := ctr.Stop(ctx); err != nil {
		return err
	}

	exportPath := filepath.Join(output, ExportFilename)
	err = ctr.Export(ctx, exportPath, runtime.ImageConfig{
		Entrypoint: p.plan.Entrypoint,
		WorkingDir: p.plan.Workdir,
	})
	if err != nil {
		return err
	}

	return tracker.advance(PhaseFinalized)
}

// Copies the requirements manifest into the container and runs the install
// command. On success the post-install filesystem is exported to the
// layer cache so later builds with the same inputs skip this work.
func (p *pipeline) installDependencies(ctx context.Context, ctr *runtime.Container, key digest.Digest) error {
	name := filepath.Base(p.in.manifestPath)

	if err := copyFileTo(ctx, ctr, p.in.manifestPath, p.plan.Workdir, name); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}

	cmd := p.plan.InstallCommand()
	slog.Info("installing dependencies", "count", len(p.in.requirements), "command", cmd)

	result, err := ctr.Exec(ctx, defaultShell, cmd, nil, p.plan.Workdir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInstall, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: exit code %d: %s", ErrInstall, result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	if p.noCache {
		return nil
	}

	p.storeCacheEntry(ctx, ctr, key)
	return nil
}

// Exports the container's current state into the layer cache.
//
// A cache store failure is logged and swallowed: the build already has the
// installed dependencies, it just won't be able to skip the work next
// time.
func (p *pipeline) storeCacheEntry(ctx context.Context, ctr *runtime.Container, key digest.Digest) {
	path, err := p.cache.prepare(key)
	if err != nil {
		slog.Warn("cannot prepare layer cache", "error", err)
		return
	}

	if err := ctr.Export(ctx, path, runtime.ImageConfig{}); err != nil {
		slog.Warn("failed to store dependency layer in cache", "error", err)
		return
	}

	slog.Debug("dependency layer cached", "path", path)
}

// Destroys all build containers.
func (p *pipeline) destroyContainers(ctx context.Context) {
	for _, ctr := range p.containers {
		ctr.Destroy(ctx)
	}
}

// Returns a unique container ID for a platform, scoped to this resource.
func (p *pipeline) containerID(platform string) string {
	return fmt.Sprintf("%s-%s-build", p.resource, platformSlug(platform))
}

// Returns the output directory for a specific platform.
//
// When building for a single platform, the output directory is left as-is
// to preserve the {output}/image.tar convention. For multi-platform
// builds, each platform gets a subdirectory (e.g., {output}/linux-amd64).
func (p *pipeline) platformOutput(platform string, all []string) string {
	if len(all) == 1 {
		return p.output
	}
	return filepath.Join(p.output, platformSlug(platform))
}

// Converts a platform string to a filesystem-safe slug.
//
// Replaces slashes with dashes (e.g., "linux/amd64" becomes
// "linux-amd64").
func platformSlug(platform string) string {
	return strings.ReplaceAll(platform, "/", "-")
}
