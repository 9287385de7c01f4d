package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stridelab/stride/workout"
)

func TestRunCLIHelp(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"help"}, &out); err != nil {
		t.Fatalf("runCLI(help) failed: %v", err)
	}
	if !strings.Contains(out.String(), "Usage: stride") {
		t.Errorf("help output missing usage line: %s", out.String())
	}
}

func TestRunCLIVersion(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"version"}, &out); err != nil {
		t.Fatalf("runCLI(version) failed: %v", err)
	}
	if !strings.Contains(out.String(), "stride v") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRunCLIUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"bogus"}, &out); err == nil {
		t.Error("runCLI(bogus) should fail")
	}
}

func TestRunCLIResolve(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"resolve", "Classic Tempo", "tempo"}, &out); err != nil {
		t.Fatalf("runCLI(resolve) failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Classic Tempo", "Focus:", "Duration:", "Structure:"} {
		if !strings.Contains(got, want) {
			t.Errorf("resolve output missing %q:\n%s", want, got)
		}
	}
}

func TestRunCLIResolveRequiresName(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"resolve"}, &out); err == nil {
		t.Error("resolve without a name should fail")
	}
}

func TestRunCLIAlternatives(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"alternatives", "Classic Tempo", "tempo"}, &out); err != nil {
		t.Fatalf("runCLI(alternatives) failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Alternatives") {
		t.Errorf("alternatives output missing section header:\n%s", got)
	}
	if !strings.Contains(got, "Same Intensity") {
		t.Errorf("alternatives output missing same-intensity group:\n%s", got)
	}
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Mile Repeats Interval Session", workout.CategoryInterval},
		{"Classic Tempo", workout.CategoryTempo},
		{"Sunday Long Run", workout.CategoryLongRun},
		{"Hill Repeats", workout.CategoryHill},
		{"Recovery Jog", workout.CategoryEasy},
		{"Mystery Session", workout.CategoryEasy},
	}

	for _, tt := range tests {
		if got := guessCategory(tt.name); got != tt.expected {
			t.Errorf("guessCategory(%q) = %s, want %s", tt.name, got, tt.expected)
		}
	}
}

func TestFormatWorkout(t *testing.T) {
	r := &workout.Resolved{
		Name:         "Sample Session",
		Focus:        "Lactate Threshold",
		Duration:     "45 minutes",
		Intensity:    "Comfortably hard",
		HeartRate:    "86-90% Max HR",
		PaceGuidance: "7:45/mile",
		Structure:    "20 minutes at tempo",
		Benefits:     "Raises the lactate threshold",
		SafetyNotes:  []string{"Warm up thoroughly"},
	}
	got := formatWorkout(r)
	for _, want := range []string{"Sample Session", "7:45/mile", "Warm up thoroughly", "Raises the lactate threshold"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatWorkout output missing %q:\n%s", want, got)
		}
	}
}
