package engine

import (
	"strings"
	"testing"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/workout"
)

// seqRand hands out a fixed sequence so catalog draws are deterministic.
type seqRand struct {
	seq []int
	i   int
}

func (s *seqRand) Intn(n int) int {
	if len(s.seq) == 0 {
		return 0
	}
	v := s.seq[s.i%len(s.seq)] % n
	s.i++
	return v
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	reg, err := catalog.DefaultRegistry(&seqRand{})
	if err != nil {
		t.Fatalf("DefaultRegistry() failed: %v", err)
	}
	return New(reg)
}

func TestResolveRequiresCategory(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Resolve(Ref{Name: "Classic Tempo"}, workout.Context{}); err == nil {
		t.Error("Resolve without category should fail")
	}
	if _, err := e.Resolve(Ref{Name: "Classic Tempo", Category: "  "}, workout.Context{}); err == nil {
		t.Error("Resolve with blank category should fail")
	}
}

func TestResolveTempoDefaultsWithoutPaceTable(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Resolve(Ref{Name: "Unknown Tempo Workout", Category: "tempo"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.HeartRate != "86-90% Max HR" {
		t.Errorf("HeartRate = %q, want 86-90%% Max HR", r.HeartRate)
	}
	if !strings.Contains(r.Intensity, "sustainable") {
		t.Errorf("Intensity = %q, should contain 'sustainable'", r.Intensity)
	}
}

func TestResolveTotality(t *testing.T) {
	e := newTestEngine(t)
	refs := []Ref{
		{Name: "Classic Tempo", Category: "tempo"},
		{Name: "Completely Unknown Session", Category: "interval"},
		{Name: "8-Mile Progressive Run", Category: "longRun"},
		{Name: "", Category: "hills"},
		{Name: "🏃 5-Mile Easy Run (9:30/mi)", Category: "easy"},
		{Name: "Steady State Ride", Category: "bike"},
		{Name: "Nap Hard", Category: "rest"},
	}
	contexts := []workout.Context{
		{},
		{Paces: workout.PaceTable{
			Easy:      workout.PaceEntry{Min: "9:00", Max: "9:30"},
			Threshold: workout.PaceEntry{Pace: "7:45"},
			Interval:  workout.PaceEntry{Pace: "6:50"},
		}},
		{Equipment: "bike"},
	}

	for _, ref := range refs {
		for _, ctx := range contexts {
			r, err := e.Resolve(ref, ctx)
			if err != nil {
				t.Fatalf("Resolve(%q/%q) failed: %v", ref.Name, ref.Category, err)
			}
			if r.Structure == "" || r.Intensity == "" || r.HeartRate == "" ||
				r.PaceGuidance == "" || r.Duration == "" || len(r.SafetyNotes) == 0 ||
				r.Benefits == "" || r.Name == "" || r.Focus == "" {
				t.Errorf("Resolve(%q/%q) left an empty user-facing field: %+v", ref.Name, ref.Category, r)
			}
		}
	}
}

func TestResolveMergesTemplate(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Resolve(Ref{Name: "Classic Tempo", Category: "tempo"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(r.Structure, "Warmup:") || !strings.Contains(r.Structure, "threshold pace") {
		t.Errorf("Structure should come from template segments: %q", r.Structure)
	}
	if r.HeartRate != "86-90% Max HR" {
		t.Errorf("HeartRate = %q", r.HeartRate)
	}
	if len(r.SafetyNotes) != 2 {
		t.Errorf("SafetyNotes should come from template, got %v", r.SafetyNotes)
	}
	if !strings.Contains(r.Structure, "Cooldown") {
		t.Errorf("Structure missing cooldown segment: %q", r.Structure)
	}
	// Segmented structure with no stated total: shown duration covers
	// the main set only.
	if !strings.HasSuffix(r.Duration, "(main set)") {
		t.Errorf("Duration = %q, want a (main set) marker", r.Duration)
	}
}

func TestResolveProgressionForLevel(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.Resolve(Ref{Name: "Classic Tempo", Category: "tempo"},
		workout.Context{Level: "advanced"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(r.Progression, "40 minutes") {
		t.Errorf("Progression = %q, want the advanced entry", r.Progression)
	}

	r, err = e.Resolve(Ref{Name: "Classic Tempo", Category: "tempo"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(r.Progression, "20 to 30") {
		t.Errorf("Progression = %q, want the intermediate fallback", r.Progression)
	}
}

func TestResolveEquipmentNotes(t *testing.T) {
	e := newTestEngine(t)
	ctx := workout.Context{Equipment: "bike"}
	r, err := e.Resolve(Ref{Name: "Sweet Spot Intervals", Category: "bike"}, ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(r.Intensity, "FTP") {
		t.Errorf("Intensity = %q, want the bike-specific effort note", r.Intensity)
	}
	if !r.EquipmentBased || r.Equipment != "bike" {
		t.Errorf("expected an equipment-based session, got %+v", r)
	}
	if r.PaceGuidance != "Focus on smooth, controlled motion at a steady effort" {
		t.Errorf("PaceGuidance = %q, want the smooth-motion fallback", r.PaceGuidance)
	}
}

func TestResolveEnumIntensityExcluded(t *testing.T) {
	e := newTestEngine(t)
	// Ladder Intervals carries the internal code INTERVAL_HARD; guidance
	// effort text must win over it.
	r, err := e.Resolve(Ref{Name: "Ladder Intervals", Category: "interval"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if strings.Contains(r.Intensity, "INTERVAL_HARD") {
		t.Errorf("internal enum code leaked into intensity: %q", r.Intensity)
	}
	if !strings.Contains(r.Intensity, "ladder") {
		t.Errorf("Intensity = %q, want the guidance effort text", r.Intensity)
	}
}

func TestIsEnumCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"INTERVAL_HARD", true},
		{"SHORT_SPEED", true},
		{"Hard effort", false},
		{"86-90% Max HR", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isEnumCode(tt.in); got != tt.want {
			t.Errorf("isEnumCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveBenefitsClassifier(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		name     string
		category string
		fragment string
	}{
		{"Unknown Fartlek Special", "interval", "pace-changing"},
		{"Unknown Hill Day", "hill", "leg strength"},
		{"Unknown Easy Day", "easy", "recovery"},
		{"Unknown Session", "strength", "overall fitness"},
	}
	for _, tt := range tests {
		r, err := e.Resolve(Ref{Name: tt.name, Category: tt.category}, workout.Context{})
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tt.name, err)
		}
		if !strings.Contains(strings.ToLower(r.Benefits), tt.fragment) {
			t.Errorf("Benefits for %q = %q, want fragment %q", tt.name, r.Benefits, tt.fragment)
		}
	}
}
