package workout

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PaceEntry is one slot in an athlete's pace table. Callers supply it as a
// bare string ("9:15"), a single pace object ({pace: "8:10"}, where the pace
// may itself be a dash range), or a min/max object ({min: "9:00", max:
// "9:30"}). All three decode into the same value.
type PaceEntry struct {
	Min  string `json:"min,omitempty" yaml:"min,omitempty"`
	Max  string `json:"max,omitempty" yaml:"max,omitempty"`
	Pace string `json:"pace,omitempty" yaml:"pace,omitempty"`
	Raw  string `json:"-" yaml:"-"`
}

// IsZero reports whether the entry carries no pace at all.
func (p PaceEntry) IsZero() bool {
	return p.Min == "" && p.Max == "" && p.Pace == "" && p.Raw == ""
}

// Value returns a single pace string with any trailing unit stripped,
// preferring the maximum bound when the entry is a range.
func (p PaceEntry) Value() string {
	if min, max, ok := p.Range(); ok {
		if max != "" {
			return max
		}
		return min
	}
	return ""
}

// Range returns the entry's bounds with units stripped. Single-valued
// entries return the same pace for both bounds. ok is false when the entry
// is empty.
func (p PaceEntry) Range() (min, max string, ok bool) {
	switch {
	case p.Min != "" || p.Max != "":
		min, max = StripPaceUnit(p.Min), StripPaceUnit(p.Max)
		if min == "" {
			min = max
		}
		if max == "" {
			max = min
		}
		return min, max, true
	case p.Pace != "":
		return splitPaceRange(p.Pace)
	case p.Raw != "":
		return splitPaceRange(p.Raw)
	}
	return "", "", false
}

func splitPaceRange(s string) (min, max string, ok bool) {
	s = StripPaceUnit(s)
	if s == "" {
		return "", "", false
	}
	if i := strings.Index(s, "-"); i > 0 && i < len(s)-1 {
		return strings.TrimSpace(s[:i]), StripPaceUnit(strings.TrimSpace(s[i+1:])), true
	}
	return s, s, true
}

// UnmarshalYAML accepts a scalar pace or a {pace}/{min,max} mapping.
func (p *PaceEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Raw = value.Value
		return nil
	}
	type plain PaceEntry
	return value.Decode((*plain)(p))
}

// UnmarshalJSON accepts a string pace or a {pace}/{min,max} object.
func (p *PaceEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.Raw)
	}
	type plain PaceEntry
	return json.Unmarshal(data, (*plain)(p))
}

// PaceTable is the athlete's pace table keyed by semantic zone.
type PaceTable struct {
	Easy         PaceEntry `json:"easy" yaml:"easy"`
	Threshold    PaceEntry `json:"threshold" yaml:"threshold"`
	Interval     PaceEntry `json:"interval" yaml:"interval"`
	Marathon     PaceEntry `json:"marathon" yaml:"marathon"`
	RacePace     PaceEntry `json:"racePace" yaml:"racePace"`
	RaceDistance string    `json:"raceDistance,omitempty" yaml:"raceDistance,omitempty"`
}

// IsZero reports whether no zone is populated.
func (t PaceTable) IsZero() bool {
	return t.Easy.IsZero() && t.Threshold.IsZero() && t.Interval.IsZero() &&
		t.Marathon.IsZero() && t.RacePace.IsZero()
}

// GoalPace returns the athlete's goal pace, preferring an explicit race pace
// over marathon pace.
func (t PaceTable) GoalPace() string {
	if !t.RacePace.IsZero() {
		return t.RacePace.Value()
	}
	return t.Marathon.Value()
}

// StripPaceUnit removes a trailing per-mile unit from a pace string so the
// engine can re-append it without doubling.
func StripPaceUnit(s string) string {
	s = strings.TrimSpace(s)
	for _, suffix := range []string{"/mile", "/mi"} {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(s, suffix))
		}
	}
	return s
}

// ParsePaceMinutes parses an "mm:ss" pace into fractional minutes.
func ParsePaceMinutes(pace string) (float64, error) {
	pace = StripPaceUnit(pace)
	i := strings.Index(pace, ":")
	if i < 0 {
		return 0, fmt.Errorf("pace %q is not mm:ss", pace)
	}
	mins, err := strconv.Atoi(strings.TrimSpace(pace[:i]))
	if err != nil {
		return 0, fmt.Errorf("pace %q: %w", pace, err)
	}
	secs, err := strconv.Atoi(strings.TrimSpace(pace[i+1:]))
	if err != nil || secs < 0 || secs > 59 {
		return 0, fmt.Errorf("pace %q has bad seconds", pace)
	}
	if mins < 0 {
		return 0, fmt.Errorf("pace %q has bad minutes", pace)
	}
	return float64(mins) + float64(secs)/60.0, nil
}

// Canonical category keys used throughout the engine.
const (
	CategoryTempo    = "tempo"
	CategoryInterval = "interval"
	CategoryHill     = "hill"
	CategoryLongRun  = "longRun"
	CategoryEasy     = "easy"
	CategoryRecovery = "recovery"
	CategoryRest     = "rest"
	CategoryBike     = "bike"
	CategoryBrick    = "brick"
)

// CanonicalCategory maps the category spellings that appear in plans and
// templates onto the engine's canonical keys. Unknown spellings pass through
// lower-cased so category defaults can still key off them.
func CanonicalCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	switch c {
	case "tempo", "threshold":
		return CategoryTempo
	case "interval", "intervals", "speed", "track":
		return CategoryInterval
	case "hill", "hills", "incline":
		return CategoryHill
	case "longrun", "long run", "long", "endurance":
		return CategoryLongRun
	case "easy":
		return CategoryEasy
	case "recovery":
		return CategoryRecovery
	case "rest", "rest day", "off":
		return CategoryRest
	case "bike", "cycling", "cross", "crosstraining", "cross-training", "equipment":
		return CategoryBike
	case "brick":
		return CategoryBrick
	}
	return c
}

// StructuredCategories are the categories whose explicit durations are
// trusted as-is by the duration calculator.
var StructuredCategories = map[string]bool{
	CategoryTempo:    true,
	CategoryInterval: true,
	CategoryHill:     true,
	CategoryLongRun:  true,
	CategoryBike:     true,
}
