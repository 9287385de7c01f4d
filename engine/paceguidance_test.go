package engine

import (
	"testing"

	"github.com/stridelab/stride/workout"
)

func TestPaceGuidanceRules(t *testing.T) {
	fullTable := workout.PaceTable{
		Easy:      workout.PaceEntry{Min: "9:00", Max: "9:30"},
		Threshold: workout.PaceEntry{Pace: "7:45"},
		Interval:  workout.PaceEntry{Pace: "6:50"},
		Marathon:  workout.PaceEntry{Pace: "8:30"},
		RacePace:  workout.PaceEntry{Pace: "8:10"},
	}

	tests := []struct {
		name     string
		ref      Ref
		paces    workout.PaceTable
		want     string
	}{
		{
			"goal pace rule",
			Ref{Name: "Race Simulation Run", Category: "longRun"},
			fullTable,
			"8:10/mile (goal pace)",
		},
		{
			"goal pace falls back to marathon",
			Ref{Name: "Marathon Pace Long Run", Category: "longRun"},
			workout.PaceTable{Marathon: workout.PaceEntry{Pace: "8:30"}},
			"8:30/mile (goal pace)",
		},
		{
			"fast finish rule",
			Ref{Name: "Fast Finish Long Run", Category: "longRun"},
			fullTable,
			"9:00-9:30/mile → 6:50/mile (fast finish)",
		},
		{
			"fast finish without interval pace uses starting pace",
			Ref{Name: "Fast Finish Long Run", Category: "longRun"},
			workout.PaceTable{Easy: workout.PaceEntry{Min: "9:00", Max: "9:30"}},
			"9:00-9:30/mile (starting pace)",
		},
		{
			"progression rule",
			Ref{Name: "Dropdown Long Run", Category: "longRun"},
			fullTable,
			"9:00-9:30/mile (starting pace)",
		},
		{
			"interval category",
			Ref{Name: "Unknown Repeats", Category: "intervals"},
			fullTable,
			"6:50/mile",
		},
		{
			"tempo category",
			Ref{Name: "Unknown Cruiser", Category: "tempo"},
			fullTable,
			"7:45/mile",
		},
		{
			"tempo by name only",
			Ref{Name: "Unknown Tempo Day", Category: "strength"},
			fullTable,
			"7:45/mile",
		},
		{
			"easy range",
			Ref{Name: "Unknown Shakeout", Category: "easy"},
			fullTable,
			"9:00-9:30/mile",
		},
		{
			"terminal default",
			Ref{Name: "Unknown Session", Category: "strength"},
			workout.PaceTable{},
			"Maintain steady effort throughout",
		},
		{
			"pace table units not doubled",
			Ref{Name: "Unknown Cruiser", Category: "tempo"},
			workout.PaceTable{Threshold: workout.PaceEntry{Pace: "7:45/mile"}},
			"7:45/mile",
		},
	}

	e := newTestEngine(t)
	for _, tt := range tests {
		r, err := e.Resolve(tt.ref, workout.Context{Paces: tt.paces})
		if err != nil {
			t.Fatalf("%s: Resolve failed: %v", tt.name, err)
		}
		if r.PaceGuidance != tt.want {
			t.Errorf("%s: PaceGuidance = %q, want %q", tt.name, r.PaceGuidance, tt.want)
		}
	}
}

// The sandwich rule needs a goal pace; without one, classification falls
// through to the tempo-category rule rather than failing.
func TestSandwichWithoutGoalPaceFallsToThreshold(t *testing.T) {
	e := newTestEngine(t)
	ctx := workout.Context{Paces: workout.PaceTable{
		Threshold: workout.PaceEntry{Pace: "8:10"},
	}}
	r, err := e.Resolve(Ref{Name: "Sandwich Tempo", Category: "tempo"}, ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.PaceGuidance != "8:10/mile" {
		t.Errorf("PaceGuidance = %q, want 8:10/mile", r.PaceGuidance)
	}
}

func TestSandwichWithGoalPace(t *testing.T) {
	e := newTestEngine(t)
	ctx := workout.Context{Paces: workout.PaceTable{
		Threshold: workout.PaceEntry{Pace: "8:10"},
		RacePace:  workout.PaceEntry{Pace: "7:55"},
	}}
	r, err := e.Resolve(Ref{Name: "Sandwich Tempo", Category: "tempo"}, ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.PaceGuidance != "7:55/mile (goal pace)" {
		t.Errorf("PaceGuidance = %q, want 7:55/mile (goal pace)", r.PaceGuidance)
	}
}
