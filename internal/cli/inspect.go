package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/kilnhq/kilnd/internal/image"
)

// Represents the 'kilnd inspect' command.
type InspectCmd struct {
	Archive  string   `arg:"" help:"Path to an exported image archive." placeholder:"FILE"`
	Contains []string `help:"Check that the image filesystem contains a path (repeatable)." placeholder:"PATH"`
}

// Executes the inspect command.
//
// Prints the archive's startup metadata and layer stack, and optionally
// verifies the presence of specific files. A requested file that is absent
// makes the command fail.
func (c *InspectCmd) Run(ctx context.Context) error {
	s, err := image.Inspect(c.Archive)
	if err != nil {
		return err
	}

	fmt.Printf("entrypoint: %s\n", strings.Join(s.Entrypoint, " "))
	if len(s.Cmd) > 0 {
		fmt.Printf("cmd:        %s\n", strings.Join(s.Cmd, " "))
	}
	fmt.Printf("workdir:    %s\n", s.WorkingDir)
	fmt.Printf("layers:     %d\n", len(s.Layers))
	for _, layer := range s.Layers {
		fmt.Printf("  %s\n", layer)
	}

	if len(c.Contains) == 0 {
		return nil
	}

	found, err := image.Contains(c.Archive, c.Contains...)
	if err != nil {
		return err
	}

	var missing []string
	for _, path := range c.Contains {
		if found[path] {
			fmt.Printf("contains:   %s\n", path)
		} else {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing from image: %s", strings.Join(missing, ", "))
	}

	return nil
}
