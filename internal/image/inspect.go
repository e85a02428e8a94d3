package image

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"strings"

	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/tarball"
)

var ErrInspect = errors.New("inspect failed")

// The observable contract of a built archive: its startup metadata and
// layer stack.
type Summary struct {
	Entrypoint []string // Exec-form startup command.
	Cmd        []string // Residual command arguments, normally empty.
	WorkingDir string   // Process working directory.
	Env        []string // Environment recorded in the image config.
	Layers     []string // Layer digests, base first.
}

// Reads an exported archive and returns its summary.
func Inspect(path string) (*Summary, error) {
	img, err := load(path)
	if err != nil {
		return nil, err
	}

	cfg, err := img.ConfigFile()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInspect, err)
	}

	layers, err := img.Layers()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInspect, err)
	}

	s := &Summary{
		Entrypoint: cfg.Config.Entrypoint,
		Cmd:        cfg.Config.Cmd,
		WorkingDir: cfg.Config.WorkingDir,
		Env:        cfg.Config.Env,
	}

	for _, layer := range layers {
		d, err := layer.Digest()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInspect, err)
		}
		s.Layers = append(s.Layers, d.String())
	}

	return s, nil
}

// Reports which of the given paths exist in the archive's flattened
// filesystem.
//
// Paths are matched against the merged view of all layers, so a file
// added by any layer (and not whited out later) counts as present. Input
// paths may be absolute or relative; both match the same entries.
func Contains(path string, files ...string) (map[string]bool, error) {
	img, err := load(path)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(files))
	want := make(map[string]string, len(files))
	for _, f := range files {
		found[f] = false
		want[normalize(f)] = f
	}

	rc := mutate.Extract(img)
	defer rc.Close()

	tr := tar.NewReader(rc)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInspect, err)
		}
		if orig, ok := want[normalize(hdr.Name)]; ok {
			found[orig] = true
		}
	}

	return found, nil
}

// Opens an archive as a single image.
func load(path string) (v1.Image, error) {
	img, err := tarball.ImageFromPath(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInspect, path, err)
	}
	return img, nil
}

// Strips the path decorations tar writers disagree on.
func normalize(p string) string {
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, "/")
}
