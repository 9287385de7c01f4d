package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/engine"
	"github.com/stridelab/stride/internal/config"
	"github.com/stridelab/stride/workout"
)

func main() {
	if err := runCLI(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runCLI(args []string, w io.Writer) error {
	if len(args) == 0 {
		printUsage(w)
		return nil
	}

	switch args[0] {
	case "help", "--help", "-h":
		printUsage(w)
		return nil
	case "version", "--version", "-v":
		fmt.Fprintln(w, "stride v0.1.0")
		return nil
	case "resolve":
		return runResolve(args[1:], w, false)
	case "alternatives":
		return runResolve(args[1:], w, true)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stride <command> [arguments]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  resolve <name> [category]       Resolve a workout into a full prescription")
	fmt.Fprintln(w, "  alternatives <name> [category]  List substitute workouts")
	fmt.Fprintln(w, "  version                         Print the version")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ATHLETE_EASY_PACE       Easy pace or range (e.g. 9:00-9:30/mile)")
	fmt.Fprintln(w, "  ATHLETE_THRESHOLD_PACE  Threshold pace (e.g. 7:45/mile)")
	fmt.Fprintln(w, "  ATHLETE_INTERVAL_PACE   Interval pace (e.g. 6:50/mile)")
	fmt.Fprintln(w, "  ATHLETE_MARATHON_PACE   Marathon goal pace")
	fmt.Fprintln(w, "  ATHLETE_EQUIPMENT       Cross-training equipment (e.g. bike)")
	fmt.Fprintln(w, "  ATHLETE_LEVEL           beginner | intermediate | advanced")
}

func runResolve(args []string, w io.Writer, withAlternatives bool) error {
	if len(args) == 0 {
		return fmt.Errorf("workout name required")
	}
	name := args[0]
	category := ""
	if len(args) > 1 {
		category = args[1]
	}
	if category == "" {
		category = guessCategory(name)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reg, err := catalog.DefaultRegistry(catalog.DefaultRand())
	if err != nil {
		return err
	}
	eng := engine.New(reg)
	ctx := cfg.Context()

	resolved, err := eng.Resolve(engine.Ref{Name: name, Category: category}, ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatWorkout(resolved))

	if withAlternatives {
		cats := eng.Alternatives(resolved, engine.Profile{Context: ctx}, false)
		fmt.Fprint(w, formatAlternatives(cats))
	}
	return nil
}

// guessCategory classifies a bare workout name so the CLI works without an
// explicit category argument.
func guessCategory(name string) string {
	if label, ok := engine.ClassifyWorkout(name, ""); ok {
		switch label {
		case engine.LabelInterval:
			return workout.CategoryInterval
		case engine.LabelTempo:
			return workout.CategoryTempo
		case engine.LabelLong:
			return workout.CategoryLongRun
		case engine.LabelHill:
			return workout.CategoryHill
		case engine.LabelEasy:
			return workout.CategoryEasy
		}
	}
	return workout.CategoryEasy
}

func formatWorkout(r *workout.Resolved) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Name)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(r.Name)))
	fmt.Fprintf(&b, "Focus:      %s\n", r.Focus)
	fmt.Fprintf(&b, "Duration:   %s\n", r.Duration)
	fmt.Fprintf(&b, "Intensity:  %s\n", r.Intensity)
	fmt.Fprintf(&b, "Heart Rate: %s\n", r.HeartRate)
	fmt.Fprintf(&b, "Pace:       %s\n\n", r.PaceGuidance)
	fmt.Fprintf(&b, "Structure: %s\n", r.Structure)
	if r.Benefits != "" {
		fmt.Fprintf(&b, "\nBenefits: %s\n", r.Benefits)
	}
	if len(r.SafetyNotes) > 0 {
		b.WriteString("\nSafety:\n")
		for _, note := range r.SafetyNotes {
			fmt.Fprintf(&b, "  - %s\n", note)
		}
	}
	return b.String()
}

func formatAlternatives(cats []workout.AlternativeCategory) string {
	var b strings.Builder
	b.WriteString("\nAlternatives\n------------\n")
	for _, c := range cats {
		fmt.Fprintf(&b, "\n%s (%s)\n", c.Title, c.Subtitle)
		for _, opt := range c.Options {
			fmt.Fprintf(&b, "  * %s [%s]", opt.Name, opt.Duration)
			if opt.Description != "" {
				fmt.Fprintf(&b, " - %s", opt.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
