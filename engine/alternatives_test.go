package engine

import (
	"strings"
	"testing"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/workout"
)

func testProfile(equipment string) Profile {
	return Profile{Context: workout.Context{
		Equipment: equipment,
		Paces: workout.PaceTable{
			Easy:      workout.PaceEntry{Min: "9:00", Max: "9:30"},
			Threshold: workout.PaceEntry{Pace: "7:45"},
			Interval:  workout.PaceEntry{Pace: "6:50"},
		},
	}}
}

func categoryIDs(cats []workout.AlternativeCategory) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

func TestAlternativesOrderAndCaps(t *testing.T) {
	e := newTestEngine(t)
	cur, err := e.Resolve(Ref{Name: "Classic Tempo", Category: "tempo"}, testProfile("bike").Context)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	cats := e.Alternatives(cur, testProfile("bike"), true)
	want := []string{"same-intensity", "easier", "harder", "equipment-swap", "contextual", "weather", "brick"}
	got := categoryIDs(cats)
	if len(got) != len(want) {
		t.Fatalf("category ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category ids = %v, want %v", got, want)
		}
	}

	for _, c := range cats {
		limit := capDefault
		if c.ID == "harder" || c.ID == "weather" {
			limit = capHarder
		}
		if len(c.Options) == 0 || len(c.Options) > limit {
			t.Errorf("category %s has %d options, want 1-%d", c.ID, len(c.Options), limit)
		}
	}
}

func TestAlternativesWithoutEquipment(t *testing.T) {
	e := newTestEngine(t)
	cur, err := e.Resolve(Ref{Name: "Classic Tempo", Category: "tempo"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	cats := e.Alternatives(cur, Profile{}, false)
	for _, c := range cats {
		switch c.ID {
		case "equipment-swap", "switch-to-running", "brick", "weather":
			t.Errorf("category %s should not appear without equipment or weather flag", c.ID)
		}
	}
}

func TestSameIntensityExcludesCurrentWorkout(t *testing.T) {
	e := newTestEngine(t)
	cur, err := e.Resolve(Ref{Name: "Classic Tempo", Category: "tempo"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	cats := e.Alternatives(cur, Profile{}, false)
	for _, c := range cats {
		if c.ID != "same-intensity" {
			continue
		}
		for _, opt := range c.Options {
			if strings.EqualFold(opt.Name, cur.Name) {
				t.Errorf("same-intensity offered the current workout %q", opt.Name)
			}
			if opt.Source != workout.SourceLibrary {
				t.Errorf("same-intensity option %q has source %q", opt.Name, opt.Source)
			}
		}
	}
}

func TestHarderBranchesByCategory(t *testing.T) {
	e := newTestEngine(t)

	// Easy day: both the short-speed and short-power catalog variants
	// qualify, then fixed options fill to the cap.
	cur, err := e.Resolve(Ref{Name: "Unknown Shakeout", Category: "easy"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	harder := e.harder(cur, Profile{})
	if len(harder.Options) != capHarder {
		t.Fatalf("harder options = %d, want %d", len(harder.Options), capHarder)
	}
	if harder.Options[0].Library != workout.CategoryInterval {
		t.Errorf("first harder option library = %q, want interval", harder.Options[0].Library)
	}
	if harder.Options[1].Library != workout.CategoryHill {
		t.Errorf("second harder option library = %q, want hill", harder.Options[1].Library)
	}

	// Hill day: no short-power variant against itself.
	cur, err = e.Resolve(Ref{Name: "Hill Repeats", Category: "hill"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	harder = e.harder(cur, Profile{})
	for _, opt := range harder.Options {
		if opt.Library == workout.CategoryHill {
			t.Errorf("hill day should not offer a hill variant as harder: %q", opt.Name)
		}
	}
}

func TestSwitchToRunningEquivalence(t *testing.T) {
	e := newTestEngine(t)
	cur, err := e.Resolve(Ref{Name: "15-Mile Steady Ride", Category: "bike"}, testProfile("bike").Context)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !cur.EquipmentBased || cur.Distance != 15 {
		t.Fatalf("setup: got %+v", cur)
	}

	cats := e.Alternatives(cur, testProfile("bike"), false)
	var swap *workout.AlternativeCategory
	for i := range cats {
		if cats[i].ID == "switch-to-running" {
			swap = &cats[i]
		}
		if cats[i].ID == "equipment-swap" {
			t.Error("equipment-based workout should offer switch-to-running, not equipment-swap")
		}
	}
	if swap == nil {
		t.Fatal("switch-to-running category missing")
	}
	if swap.Options[0].Name != "5-Mile Easy Run" {
		t.Errorf("options[0].Name = %q, want 5-Mile Easy Run", swap.Options[0].Name)
	}
	if len(swap.Options) != 4 {
		t.Errorf("switch-to-running options = %d, want 4", len(swap.Options))
	}
}

func TestSwitchToRunningDefaultDistance(t *testing.T) {
	e := newTestEngine(t)
	cur := &workout.Resolved{
		Name:           "Mystery Ride",
		Category:       workout.CategoryBike,
		EquipmentBased: true,
		Equipment:      "bike",
	}
	swap := e.switchToRunning(cur, testProfile("bike"))
	// Unextractable equipment distance defaults to 12, so 4 run miles.
	if swap.Options[0].Name != "4-Mile Easy Run" {
		t.Errorf("options[0].Name = %q, want 4-Mile Easy Run", swap.Options[0].Name)
	}
}

func TestBrickTiers(t *testing.T) {
	tests := []struct {
		distance float64
		minutes  int
		want     []string
	}{
		{4, 25, []string{catalog.BrickRecovery}},
		{7, 0, []string{catalog.BrickRecovery, catalog.BrickAerobic}},
		{12, 0, []string{catalog.BrickRecovery, catalog.BrickAerobic, catalog.BrickTempo, catalog.BrickSpeed}},
		{0, 25, []string{catalog.BrickRecovery}},
		{0, 45, []string{catalog.BrickRecovery, catalog.BrickAerobic}},
		{0, 90, []string{catalog.BrickRecovery, catalog.BrickAerobic, catalog.BrickTempo, catalog.BrickSpeed}},
	}
	for _, tt := range tests {
		got := brickTiers(tt.distance, tt.minutes)
		if len(got) != len(tt.want) {
			t.Errorf("brickTiers(%v, %d) = %v, want %v", tt.distance, tt.minutes, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("brickTiers(%v, %d) = %v, want %v", tt.distance, tt.minutes, got, tt.want)
				break
			}
		}
	}
}

func TestBrickOptionsCarryEquipment(t *testing.T) {
	e := newTestEngine(t)
	cur := &workout.Resolved{Name: "4-Mile Easy Run", Category: workout.CategoryEasy, Distance: 4, Duration: "25 minutes"}
	brick := e.brickAlternatives(cur, testProfile("elliptical"))
	if len(brick.Options) != 1 {
		t.Fatalf("brick options = %d, want 1 (recovery tier only)", len(brick.Options))
	}
	opt := brick.Options[0]
	if opt.Equipment != "elliptical" {
		t.Errorf("option equipment = %q, want elliptical", opt.Equipment)
	}
	if strings.Contains(opt.Name+opt.Description, "{equipment}") {
		t.Error("equipment placeholder leaked into a brick option")
	}
	if !strings.Contains(opt.Description, "elliptical") {
		t.Errorf("description should name the equipment: %q", opt.Description)
	}
}

func TestContextualAdaptations(t *testing.T) {
	e := newTestEngine(t)
	cur, err := e.Resolve(Ref{Name: "800m Repeats", Category: "interval"}, workout.Context{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	ctx := contextualAdaptations(cur)
	if len(ctx.Options) != 4 {
		t.Fatalf("interval contextual options = %d, want 4", len(ctx.Options))
	}
	reasons := map[string]bool{}
	for _, opt := range ctx.Options {
		if opt.Reason == "" {
			t.Errorf("option %q has no reason tag", opt.Name)
		}
		reasons[opt.Reason] = true
	}
	for _, want := range []string{reasonWeather, reasonNoEquipment, reasonTimeConstraint, reasonFatigue} {
		if !reasons[want] {
			t.Errorf("interval contextual set missing reason %q", want)
		}
	}

	// Unclassifiable workout gets the two-item universal fallback.
	fallback := contextualAdaptations(&workout.Resolved{Name: "Mystery", Category: "strength"})
	if len(fallback.Options) != 2 {
		t.Fatalf("fallback options = %d, want 2", len(fallback.Options))
	}
	if fallback.Options[0].Name != "Rest Day" {
		t.Errorf("fallback first option = %q, want Rest Day", fallback.Options[0].Name)
	}
}

func TestRestDayAlternatives(t *testing.T) {
	e := newTestEngine(t)
	cur := &workout.Resolved{Name: "Rest Day", Category: workout.CategoryRest}

	cats := e.Alternatives(cur, Profile{}, false)
	want := []string{"light-easy", "active-recovery", "cross-training", "short-sweet"}
	got := categoryIDs(cats)
	if len(got) != len(want) {
		t.Fatalf("rest categories = %v, want %v", got, want)
	}

	withEquip := e.Alternatives(cur, testProfile("rower"), false)
	ids := categoryIDs(withEquip)
	if len(ids) != 5 || ids[2] != "equipment-easy" {
		t.Fatalf("rest categories with equipment = %v, want equipment-easy third", ids)
	}
	for _, opt := range withEquip[2].Options {
		if !strings.Contains(strings.ToLower(opt.Name+opt.Description), "rower") {
			t.Errorf("equipment option %q should name the rower", opt.Name)
		}
	}

	for _, c := range withEquip {
		if len(c.Options) < 1 || len(c.Options) > 5 {
			t.Errorf("rest category %s has %d options, want 1-5", c.ID, len(c.Options))
		}
		for _, opt := range c.Options {
			if opt.Duration == "" {
				t.Errorf("rest option %q has no duration", opt.Name)
			}
		}
	}
}
