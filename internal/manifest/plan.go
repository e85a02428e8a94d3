package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default plan filename looked up in the project root.
const DefaultPlanFile = "kiln.yaml"

// Declares how dependencies are materialized into the image.
type Dependencies struct {
	Manifest string `yaml:"manifest"`          // Path to the requirements manifest, relative to the plan.
	Install  string `yaml:"install,omitempty"` // Install command run inside the build container.
}

// Declares the environment file and whether it is embedded into the image.
//
// Embedding copies the file into an image layer, where it remains visible
// in the layer history to anyone with image access. It is off by default
// and must be requested explicitly.
type Env struct {
	File  string `yaml:"file,omitempty"`  // Path to the environment file, relative to the plan.
	Embed bool   `yaml:"embed,omitempty"` // Whether to copy the file into the image.
}

// A declarative description of one image build.
//
// The plan is the builder's only input besides the filesystem it points
// at: a base runtime, a working directory, a dependency manifest, a source
// tree, an optional environment file, and the startup command recorded on
// the final image.
type Plan struct {
	Base         string       `yaml:"base"`                // Base image: registry reference or OCI archive path.
	Workdir      string       `yaml:"workdir"`             // Working directory inside the image.
	Dependencies Dependencies `yaml:"dependencies"`        // Dependency manifest and install command.
	Source       string       `yaml:"source"`              // Application source directory, relative to the plan.
	Env          Env          `yaml:"env,omitempty"`       // Environment file handling.
	Entrypoint   []string     `yaml:"entrypoint"`          // Exec-form startup command for the image.
	Platforms    []string     `yaml:"platforms,omitempty"` // Target OCI platforms. Defaults to the host.
}

// Reads and validates a plan file.
//
// Unknown fields are rejected so that typos in a plan fail loudly instead
// of silently dropping a build step.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlan, err)
	}

	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPlan, path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Checks that every required field is present and consistent.
func (p *Plan) Validate() error {
	switch {
	case p.Base == "":
		return fmt.Errorf("%w: base image is required", ErrPlan)
	case p.Workdir == "":
		return fmt.Errorf("%w: workdir is required", ErrPlan)
	case !filepath.IsAbs(p.Workdir):
		return fmt.Errorf("%w: workdir %q must be absolute", ErrPlan, p.Workdir)
	case p.Dependencies.Manifest == "":
		return fmt.Errorf("%w: dependencies.manifest is required", ErrPlan)
	case p.Source == "":
		return fmt.Errorf("%w: source directory is required", ErrPlan)
	case len(p.Entrypoint) == 0:
		return fmt.Errorf("%w: entrypoint is required", ErrPlan)
	case p.Env.Embed && p.Env.File == "":
		return fmt.Errorf("%w: env.embed requires env.file", ErrPlan)
	}
	return nil
}

// Returns the install command, falling back to pip against the manifest
// basename when the plan does not override it.
func (p *Plan) InstallCommand() string {
	if p.Dependencies.Install != "" {
		return p.Dependencies.Install
	}
	return "pip install --no-cache-dir -r " + filepath.Base(p.Dependencies.Manifest)
}
