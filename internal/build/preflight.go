package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kilnhq/kilnd/internal/manifest"
)

// The plan's inputs resolved against the project root and verified to
// exist.
//
// Preflight runs before any container work so that a missing or malformed
// input aborts the build without touching the runtime, leaving no partial
// artifact of any kind.
type inputs struct {
	manifestPath string                 // Absolute path to the requirements manifest.
	manifestData []byte                 // Raw manifest bytes, hashed into the cache key.
	requirements []manifest.Requirement // Parsed declarations, for reporting.
	sourceDir    string                 // Absolute path to the source directory.
	envPath      string                 // Absolute path to the env file. Empty unless embedding.
	envKeys      []string               // Variable names declared in the env file.
}

// Resolves and verifies the plan's filesystem inputs.
func preflight(plan *manifest.Plan, root string) (*inputs, error) {
	in := &inputs{
		manifestPath: resolve(root, plan.Dependencies.Manifest),
		sourceDir:    resolve(root, plan.Source),
	}

	data, err := os.ReadFile(in.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: dependency manifest: %w", ErrPreflight, err)
	}
	in.manifestData = data

	in.requirements, err = manifest.ParseRequirements(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPreflight, err)
	}

	info, err := os.Stat(in.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: source directory: %w", ErrPreflight, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: source path %s is not a directory", ErrPreflight, in.sourceDir)
	}

	if plan.Env.Embed {
		in.envPath = resolve(root, plan.Env.File)
		in.envKeys, err = manifest.EnvFileKeys(in.envPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPreflight, err)
		}
	}

	return in, nil
}

// Joins a plan-relative path with the project root. Absolute paths pass
// through untouched.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
