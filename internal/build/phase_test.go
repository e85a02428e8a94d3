package build

import (
	"errors"
	"testing"
)

func TestPhaseOrder(t *testing.T) {
	tracker := &phaseTracker{}

	order := []Phase{PhaseBase, PhaseWorkdir, PhaseDeps, PhaseSource, PhaseEnv, PhaseFinalized}
	for _, next := range order {
		if err := tracker.advance(next); err != nil {
			t.Fatalf("advance(%s): %v", next, err)
		}
		if tracker.current != next {
			t.Fatalf("current = %s, want %s", tracker.current, next)
		}
	}
}

func TestPhaseSkipRejected(t *testing.T) {
	tests := []struct {
		name string
		from Phase
		to   Phase
	}{
		{name: "skip ahead", from: PhaseBase, to: PhaseDeps},
		{name: "jump to finalized", from: PhasePending, to: PhaseFinalized},
		{name: "go backwards", from: PhaseSource, to: PhaseWorkdir},
		{name: "stay put", from: PhaseDeps, to: PhaseDeps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &phaseTracker{current: tt.from}
			if err := tracker.advance(tt.to); !errors.Is(err, ErrPhase) {
				t.Fatalf("advance(%s -> %s) = %v, want ErrPhase", tt.from, tt.to, err)
			}
			if tracker.current != tt.from {
				t.Fatalf("failed advance moved the tracker to %s", tracker.current)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseDeps.String() != "deps" {
		t.Fatalf("PhaseDeps = %q", PhaseDeps.String())
	}
	if Phase(42).String() != "phase(42)" {
		t.Fatalf("unknown phase = %q", Phase(42).String())
	}
}
