package build

import "fmt"

// A stage of the build pipeline.
//
// Phases are strictly ordered. The pipeline only ever moves to the
// immediately following phase; an error freezes it where it stands, so a
// failed build can never reach [PhaseFinalized].
type Phase int

const (
	PhasePending   Phase = iota // No work done yet.
	PhaseBase                   // Base image acquired, build container running.
	PhaseWorkdir                // Working directory created.
	PhaseDeps                   // Dependencies installed (or restored from cache).
	PhaseSource                 // Application source copied in.
	PhaseEnv                    // Environment file handled (embedded or skipped).
	PhaseFinalized              // Image committed and exported.
)

var phaseNames = map[Phase]string{
	PhasePending:   "pending",
	PhaseBase:      "base",
	PhaseWorkdir:   "workdir",
	PhaseDeps:      "deps",
	PhaseSource:    "source",
	PhaseEnv:       "env",
	PhaseFinalized: "finalized",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Tracks pipeline progress through the ordered phases.
type phaseTracker struct {
	current Phase
}

// Moves the tracker to the next phase.
//
// Only the immediately following phase is a legal target; anything else is
// a programming error surfaced as [ErrPhase] rather than silently
// reordering the pipeline.
func (t *phaseTracker) advance(next Phase) error {
	if next != t.current+1 {
		return fmt.Errorf("%w: cannot advance from %s to %s", ErrPhase, t.current, next)
	}
	t.current = next
	return nil
}
