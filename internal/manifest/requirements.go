package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// Constraint operators recognized in requirement lines, longest first so
// that ">=" is not split as ">" followed by "=1.2.3".
var constraintOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// One declared dependency: a package name and an optional version
// constraint (operator plus version, e.g. "==0.0.27").
type Requirement struct {
	Name       string
	Constraint string
}

// Formats the requirement as it appears in the manifest.
func (r Requirement) String() string {
	return r.Name + r.Constraint
}

// Parses a requirements manifest into its ordered list of declarations.
//
// Blank lines and "#" comments are skipped. Inline comments after a
// declaration are stripped. A line whose package name is empty or contains
// whitespace is malformed and fails the parse; resolution of names and
// versions is the installer's job, not the parser's.
func ParseRequirements(data []byte) ([]Requirement, error) {
	var reqs []Requirement

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		req, err := parseRequirementLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrManifest, n, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	return reqs, nil
}

// Splits a single declaration into name and constraint.
func parseRequirementLine(line string) (Requirement, error) {
	name := line
	constraint := ""

	for _, op := range constraintOps {
		if i := strings.Index(line, op); i >= 0 {
			name = strings.TrimSpace(line[:i])
			constraint = op + strings.TrimSpace(line[i+len(op):])
			break
		}
	}

	if name == "" {
		return Requirement{}, fmt.Errorf("missing package name in %q", line)
	}
	if strings.ContainsAny(name, " \t") {
		return Requirement{}, fmt.Errorf("malformed declaration %q", line)
	}

	return Requirement{Name: name, Constraint: constraint}, nil
}
