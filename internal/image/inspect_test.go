package image

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/tarball"
)

// Builds an archive on disk containing one layer with the given files and
// the given config, mirroring what a real build exports.
func archiveFixture(t *testing.T, cfg v1.Config, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for entry, content := range files {
		hdr := &tar.Header{Name: entry, Mode: 0644, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	tw.Close()

	layerData := buf.Bytes()
	layer, err := tarball.LayerFromOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(layerData)), nil
	})
	if err != nil {
		t.Fatalf("layer: %v", err)
	}

	img, err := mutate.Append(empty.Image, mutate.Addendum{Layer: layer})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	cfgFile, err := img.ConfigFile()
	if err != nil {
		t.Fatal(err)
	}
	cfgFile = cfgFile.DeepCopy()
	cfgFile.Config = cfg
	img, err = mutate.ConfigFile(img, cfgFile)
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	path := filepath.Join(t.TempDir(), "image.tar")
	tag, err := name.NewTag("kiln.local/fixture:latest")
	if err != nil {
		t.Fatal(err)
	}
	if err := tarball.WriteToFile(path, tag, img); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}

func TestInspect(t *testing.T) {
	path := archiveFixture(t, v1.Config{
		Entrypoint: []string{"python", "src/agent/core_agent.py"},
		WorkingDir: "/app",
		Env:        []string{"PYTHONUNBUFFERED=1"},
	}, map[string]string{
		"app/src/agent/core_agent.py": "print('hi')\n",
	})

	s, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	if len(s.Entrypoint) != 2 || s.Entrypoint[0] != "python" || s.Entrypoint[1] != "src/agent/core_agent.py" {
		t.Fatalf("entrypoint = %v", s.Entrypoint)
	}
	if s.WorkingDir != "/app" {
		t.Fatalf("workdir = %q", s.WorkingDir)
	}
	if len(s.Layers) != 1 {
		t.Fatalf("layers = %v, want one", s.Layers)
	}
	if len(s.Env) != 1 || s.Env[0] != "PYTHONUNBUFFERED=1" {
		t.Fatalf("env = %v", s.Env)
	}
}

func TestContains(t *testing.T) {
	path := archiveFixture(t, v1.Config{
		Entrypoint: []string{"python", "src/agent/core_agent.py"},
	}, map[string]string{
		"app/src/agent/core_agent.py": "print('hi')\n",
		"app/.env":                    "OPENAI_API_KEY=x\n",
	})

	found, err := Contains(path,
		"/app/src/agent/core_agent.py",
		"app/.env",
		"/app/missing.txt",
	)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}

	if !found["/app/src/agent/core_agent.py"] {
		t.Error("source file not found")
	}
	if !found["app/.env"] {
		t.Error("env file not found")
	}
	if found["/app/missing.txt"] {
		t.Error("missing file reported as present")
	}
}

func TestInspectMissingArchive(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "absent.tar")); !errors.Is(err, ErrInspect) {
		t.Fatalf("err = %v, want ErrInspect", err)
	}
}
