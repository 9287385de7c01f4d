package catalog

import (
	"strings"
	"testing"

	"github.com/stridelab/stride/workout"
)

// fixedRand always returns the same value so selection is deterministic.
type fixedRand struct{ n int }

func (f fixedRand) Intn(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func TestDefaultRegistryLoads(t *testing.T) {
	reg, err := DefaultRegistry(fixedRand{})
	if err != nil {
		t.Fatalf("DefaultRegistry() failed: %v", err)
	}

	for _, family := range []string{"tempo", "interval", "hill", "longRun", "bike", "rest", "brick"} {
		if _, ok := reg.Get(family); !ok {
			t.Errorf("registry missing family %q", family)
		}
	}
	if reg.Brick() == nil {
		t.Error("registry should have a brick generator")
	}
}

func TestLibraryPrescribe(t *testing.T) {
	reg, err := DefaultRegistry(fixedRand{})
	if err != nil {
		t.Fatalf("DefaultRegistry() failed: %v", err)
	}
	tempo, _ := reg.Get("tempo")

	tests := []struct {
		name     string
		wantName string
	}{
		{"Classic Tempo", "Classic Tempo"},
		{"classic tempo", "Classic Tempo"},
		{"🔥 Classic Tempo (8:10/mi)", "Classic Tempo"},
		{"6-Mile Classic Tempo", "Classic Tempo"},
		{"Nonexistent Workout", ""},
	}
	for _, tt := range tests {
		got := tempo.Prescribe(tt.name, workout.Context{})
		if tt.wantName == "" {
			if got != nil {
				t.Errorf("Prescribe(%q) = %q, want nil", tt.name, got.Name)
			}
			continue
		}
		if got == nil {
			t.Errorf("Prescribe(%q) returned nil", tt.name)
			continue
		}
		if got.Name != tt.wantName {
			t.Errorf("Prescribe(%q) = %q, want %q", tt.name, got.Name, tt.wantName)
		}
	}
}

func TestLibraryRandomDeterministic(t *testing.T) {
	reg, err := DefaultRegistry(fixedRand{})
	if err != nil {
		t.Fatalf("DefaultRegistry() failed: %v", err)
	}
	interval, _ := reg.Get("interval")

	first := interval.Random("")
	second := interval.Random("")
	if first == nil || second == nil {
		t.Fatal("Random should find templates")
	}
	if first.Name != second.Name {
		t.Errorf("fixed rand should repeat selection: %q vs %q", first.Name, second.Name)
	}

	short := interval.Random(SubShortSpeed)
	if short == nil {
		t.Fatal("Random(SHORT_SPEED) returned nil")
	}
	if short.Subcategory != SubShortSpeed {
		t.Errorf("Random(SHORT_SPEED) returned subcategory %q", short.Subcategory)
	}

	if got := interval.Random("no-such-subcategory"); got != nil {
		t.Errorf("unknown subcategory should return nil, got %q", got.Name)
	}
}

func TestBrickGeneratorSubstitutesEquipment(t *testing.T) {
	reg, err := DefaultRegistry(fixedRand{})
	if err != nil {
		t.Fatalf("DefaultRegistry() failed: %v", err)
	}

	tmpl := reg.Brick().Generate(BrickRequest{
		Intensity:  BrickTempo,
		Equipment:  "elliptical",
		Difficulty: "intermediate",
	})
	if tmpl == nil {
		t.Fatal("Generate returned nil")
	}
	if strings.Contains(tmpl.Name+tmpl.Description+tmpl.Structure.SegmentText(), "{equipment}") {
		t.Error("equipment placeholder not substituted")
	}
	if !strings.Contains(tmpl.Description, "elliptical") {
		t.Errorf("description should mention elliptical: %q", tmpl.Description)
	}
	if tmpl.Subcategory != BrickTempo {
		t.Errorf("Generate picked subcategory %q, want %q", tmpl.Subcategory, BrickTempo)
	}
}

func TestBrickGeneratorLeavesLibraryUntouched(t *testing.T) {
	reg, err := DefaultRegistry(fixedRand{})
	if err != nil {
		t.Fatalf("DefaultRegistry() failed: %v", err)
	}

	_ = reg.Brick().Generate(BrickRequest{Intensity: BrickRecovery, Equipment: "rower"})
	again := reg.Brick().Generate(BrickRequest{Intensity: BrickRecovery, Equipment: "bike"})
	if again == nil {
		t.Fatal("Generate returned nil")
	}
	if strings.Contains(again.Description, "rower") {
		t.Error("prior substitution leaked into the library")
	}
}
