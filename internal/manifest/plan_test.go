package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validPlan() *Plan {
	return &Plan{
		Base:    "docker.io/library/python:3.10-slim",
		Workdir: "/app",
		Dependencies: Dependencies{
			Manifest: "requirements.txt",
		},
		Source:     "src",
		Entrypoint: []string{"python", "src/agent/core_agent.py"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Plan)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(p *Plan) {},
		},
		{
			name:    "missing base",
			mutate:  func(p *Plan) { p.Base = "" },
			wantErr: true,
		},
		{
			name:    "missing workdir",
			mutate:  func(p *Plan) { p.Workdir = "" },
			wantErr: true,
		},
		{
			name:    "relative workdir",
			mutate:  func(p *Plan) { p.Workdir = "app" },
			wantErr: true,
		},
		{
			name:    "missing manifest",
			mutate:  func(p *Plan) { p.Dependencies.Manifest = "" },
			wantErr: true,
		},
		{
			name:    "missing source",
			mutate:  func(p *Plan) { p.Source = "" },
			wantErr: true,
		},
		{
			name:    "missing entrypoint",
			mutate:  func(p *Plan) { p.Entrypoint = nil },
			wantErr: true,
		},
		{
			name:    "embed without file",
			mutate:  func(p *Plan) { p.Env.Embed = true },
			wantErr: true,
		},
		{
			name: "embed with file",
			mutate: func(p *Plan) {
				p.Env.File = ".env"
				p.Env.Embed = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(p)

			err := p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrPlan) {
					t.Fatalf("err = %v, want ErrPlan", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kiln.yaml")

	content := `base: docker.io/library/python:3.10-slim
workdir: /app
dependencies:
  manifest: requirements.txt
source: src
env:
  file: .env
  embed: true
entrypoint: ["python", "src/agent/core_agent.py"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}

	if p.Base != "docker.io/library/python:3.10-slim" {
		t.Errorf("base = %q", p.Base)
	}
	if p.Workdir != "/app" {
		t.Errorf("workdir = %q", p.Workdir)
	}
	if !p.Env.Embed || p.Env.File != ".env" {
		t.Errorf("env = %+v, want embed of .env", p.Env)
	}
	if len(p.Entrypoint) != 2 || p.Entrypoint[0] != "python" {
		t.Errorf("entrypoint = %v", p.Entrypoint)
	}
}

func TestLoadPlanUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kiln.yaml")

	content := `base: python:3.10
workdir: /app
dependencies:
  manifest: requirements.txt
source: src
entrypoint: ["python", "main.py"]
entrypint_typo: oops
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPlan(path); !errors.Is(err, ErrPlan) {
		t.Fatalf("err = %v, want ErrPlan for unknown field", err)
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	if _, err := LoadPlan(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, ErrPlan) {
		t.Fatalf("err = %v, want ErrPlan", err)
	}
}

func TestInstallCommand(t *testing.T) {
	p := validPlan()
	want := "pip install --no-cache-dir -r requirements.txt"
	if got := p.InstallCommand(); got != want {
		t.Fatalf("InstallCommand = %q, want %q", got, want)
	}

	p.Dependencies.Manifest = "deps/requirements.txt"
	if got := p.InstallCommand(); got != want {
		t.Fatalf("InstallCommand = %q, want basename only", got)
	}

	p.Dependencies.Install = "uv pip sync requirements.txt"
	if got := p.InstallCommand(); got != "uv pip sync requirements.txt" {
		t.Fatalf("InstallCommand = %q, want override", got)
	}
}
