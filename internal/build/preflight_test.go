package build

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilnhq/kilnd/internal/manifest"
)

// Lays out a minimal valid project in a temp dir: a one-package manifest,
// a one-file source tree, and a one-key env file.
func projectFixture(t *testing.T) (string, *manifest.Plan) {
	t.Helper()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "requirements.txt"), []byte("langchain==0.0.27\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "src", "agent"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "agent", "core_agent.py"), []byte("print('hi')\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("OPENAI_API_KEY=sk-test\n"), 0600); err != nil {
		t.Fatal(err)
	}

	plan := &manifest.Plan{
		Base:    "docker.io/library/python:3.10-slim",
		Workdir: "/app",
		Dependencies: manifest.Dependencies{
			Manifest: "requirements.txt",
		},
		Source:     "src",
		Env:        manifest.Env{File: ".env", Embed: true},
		Entrypoint: []string{"python", "src/agent/core_agent.py"},
	}
	return root, plan
}

func TestPreflight(t *testing.T) {
	root, plan := projectFixture(t)

	in, err := preflight(plan, root)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}

	if len(in.requirements) != 1 || in.requirements[0].Name != "langchain" {
		t.Fatalf("requirements = %v", in.requirements)
	}
	if in.sourceDir != filepath.Join(root, "src") {
		t.Fatalf("sourceDir = %q", in.sourceDir)
	}
	if len(in.envKeys) != 1 || in.envKeys[0] != "OPENAI_API_KEY" {
		t.Fatalf("envKeys = %v", in.envKeys)
	}
}

func TestPreflightMissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(root string, plan *manifest.Plan)
	}{
		{
			name: "missing manifest",
			mutate: func(root string, plan *manifest.Plan) {
				os.Remove(filepath.Join(root, "requirements.txt"))
			},
		},
		{
			name: "missing source dir",
			mutate: func(root string, plan *manifest.Plan) {
				os.RemoveAll(filepath.Join(root, "src"))
			},
		},
		{
			name: "source is a file",
			mutate: func(root string, plan *manifest.Plan) {
				os.RemoveAll(filepath.Join(root, "src"))
				os.WriteFile(filepath.Join(root, "src"), []byte("not a dir"), 0644)
			},
		},
		{
			name: "missing env file with embed",
			mutate: func(root string, plan *manifest.Plan) {
				os.Remove(filepath.Join(root, ".env"))
			},
		},
		{
			name: "malformed manifest",
			mutate: func(root string, plan *manifest.Plan) {
				os.WriteFile(filepath.Join(root, "requirements.txt"), []byte("lang chain==1\n"), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, plan := projectFixture(t)
			tt.mutate(root, plan)

			if _, err := preflight(plan, root); !errors.Is(err, ErrPreflight) {
				t.Fatalf("err = %v, want ErrPreflight", err)
			}
		})
	}
}

func TestPreflightEnvSkippedWithoutEmbed(t *testing.T) {
	root, plan := projectFixture(t)
	plan.Env.Embed = false
	os.Remove(filepath.Join(root, ".env"))

	in, err := preflight(plan, root)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	if in.envPath != "" || len(in.envKeys) != 0 {
		t.Fatalf("env inputs resolved without embed: %+v", in)
	}
}

func TestResolve(t *testing.T) {
	if got := resolve("/project", "src"); got != filepath.Join("/project", "src") {
		t.Fatalf("resolve relative = %q", got)
	}
	if got := resolve("/project", "/abs/src"); got != "/abs/src" {
		t.Fatalf("resolve absolute = %q", got)
	}
}
