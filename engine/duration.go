package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/stridelab/stride/workout"
)

var (
	milesPattern        = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[- ]?miles?\b`)
	totalMinutesPattern = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s+minutes\s+total`)
	minutesPattern      = regexp.MustCompile(`(\d+)(?:\s*-\s*(\d+))?\s*min`)
)

// resolveDuration derives the duration string: an explicit duration on a
// structured category wins, then distance × easy pace, then the template's
// literal duration, then the category default. A "N-M minutes total" pattern
// in the resolved structure overrides everything; a structure with warmup
// and cooldown but no total gets a "(main set)" marker since the shown
// duration excludes the bracketing segments.
func resolveDuration(ref Ref, tmpl *workout.Template, cat, structure string, miles float64, ctx workout.Context) string {
	duration := ""

	explicit := firstNonEmpty(ref.Duration, tmpl.Duration)
	if explicit != "" && workout.StructuredCategories[cat] {
		duration = explicit
	}
	if duration == "" && miles > 0 {
		duration = durationFromDistance(miles, ctx.Paces.Easy)
	}
	if duration == "" {
		duration = explicit
	}
	if duration == "" {
		duration = defaultDuration
	}

	lower := strings.ToLower(structure)
	if m := totalMinutesPattern.FindStringSubmatch(lower); m != nil {
		return m[1] + "-" + m[2] + " minutes"
	}
	if strings.Contains(lower, "warmup") && strings.Contains(lower, "cooldown") {
		return duration + " (main set)"
	}
	return duration
}

// durationFromDistance computes "min-max minutes" from miles at the easy
// pace bounds. Returns "" when the pace range cannot be parsed.
func durationFromDistance(miles float64, easy workout.PaceEntry) string {
	minPace, maxPace, ok := easy.Range()
	if !ok {
		return ""
	}
	minMinutes, err := workout.ParsePaceMinutes(minPace)
	if err != nil {
		return ""
	}
	maxMinutes, err := workout.ParsePaceMinutes(maxPace)
	if err != nil {
		return ""
	}
	lo := int(math.Round(miles * minMinutes))
	hi := int(math.Round(miles * maxMinutes))
	return fmt.Sprintf("%d-%d minutes", lo, hi)
}

// extractMiles pulls the first distance encoded in any of the given texts.
// Unextractable distances are simply absent, never an error.
func extractMiles(texts ...string) float64 {
	for _, text := range texts {
		if m := milesPattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v
			}
		}
	}
	return 0
}

// extractMinutes parses the upper bound of a duration string like
// "45-60 minutes" or "25 min". Returns 0 when nothing parses.
func extractMinutes(duration string) int {
	m := minutesPattern.FindStringSubmatch(strings.ToLower(duration))
	if m == nil {
		return 0
	}
	bound := m[1]
	if m[2] != "" {
		bound = m[2]
	}
	v, err := strconv.Atoi(bound)
	if err != nil {
		return 0
	}
	return v
}
