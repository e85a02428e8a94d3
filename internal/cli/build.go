package cli

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/kilnhq/kilnd/internal/build"
	"github.com/kilnhq/kilnd/internal/manifest"
	"github.com/kilnhq/kilnd/internal/runtime"
	"github.com/kilnhq/kilnd/internal/server"
)

// Represents the 'kilnd build' command.
type BuildCmd struct {
	Plan     string   `help:"Path to the plan file." default:"kiln.yaml" placeholder:"FILE"`
	Root     string   `help:"Project root the plan's paths resolve against. Defaults to the plan's directory." placeholder:"DIR"`
	Output   string   `short:"o" help:"Directory for the exported image." default:"dist" placeholder:"DIR"`
	Platform []string `help:"Target platform (repeatable, e.g. linux/amd64)." placeholder:"OS/ARCH"`
	NoCache  bool     `help:"Bypass the dependency-layer cache."`
}

// Executes the build command.
//
// Runs the build in-process against containerd, without going through the
// daemon.
func (c *BuildCmd) Run(ctx context.Context) error {
	plan, err := manifest.LoadPlan(c.Plan)
	if err != nil {
		return err
	}

	root := c.Root
	if root == "" {
		root = filepath.Dir(c.Plan)
	}

	rt, err := runtime.New(server.DefaultContainerdAddress, server.DefaultContainerdNamespace)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := build.Run(ctx, rt, build.Options{
		Plan:      plan,
		Root:      root,
		Output:    c.Output,
		Platforms: c.Platform,
		NoCache:   c.NoCache,
	})
	if err != nil {
		return err
	}

	slog.Info("build complete", "output", result.Output)
	return nil
}
