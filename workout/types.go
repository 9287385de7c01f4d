// Package workout defines the data model shared by the catalog and the
// prescription engine: catalog templates, athlete personalization context,
// resolved workouts, and alternative option sets.
package workout

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is an immutable catalog record describing one named workout
// before personalization. Fields are optional; the engine's fallback chains
// fill whatever a template leaves blank.
type Template struct {
	Name        string             `yaml:"name"`
	Category    string             `yaml:"category"`
	Subcategory string             `yaml:"subcategory"`
	Structure   Structure          `yaml:"structure"`
	Intensity   string             `yaml:"intensity"`
	Guidance    *IntensityGuidance `yaml:"guidance"`
	HeartRate   string             `yaml:"heartRate"`

	// PaceGuidance is the template's own pace text, used only when no
	// name or category rule projects a pace from the athlete's table.
	PaceGuidance string `yaml:"paceGuidance"`

	Repetitions string `yaml:"repetitions"`
	Recovery    string `yaml:"recovery"`
	Duration    string `yaml:"duration"`
	Description string `yaml:"description"`

	SafetyNotes []string                 `yaml:"safetyNotes"`
	Benefits    string                   `yaml:"benefits"`
	Variations  []string                 `yaml:"variations"`
	Examples    []string                 `yaml:"examples"`
	Progression Progression              `yaml:"progression"`
	Equipment   map[string]EquipmentNote `yaml:"equipment"`
}

// IntensityGuidance is a template's structured effort record.
type IntensityGuidance struct {
	Effort      string `yaml:"effort"`
	HeartRate   string `yaml:"heartRate"`
	Description string `yaml:"description"`
}

// EquipmentNote carries equipment-specific effort and pace wording, keyed in
// Template.Equipment by equipment name (bike, elliptical, rower).
type EquipmentNote struct {
	Effort    string `yaml:"effort"`
	HeartRate string `yaml:"heartRate"`
	Pace      string `yaml:"pace"`
}

// Structure is a template's session layout. Catalog data writes it as free
// text, as an ordered step list, or as named segments; exactly one variant
// is populated per template.
type Structure struct {
	Raw      string
	Steps    []string
	Warmup   string
	Main     string
	Recovery string
	Cooldown string
}

// IsZero reports whether no variant is populated.
func (s Structure) IsZero() bool {
	return s.Raw == "" && len(s.Steps) == 0 && s.Warmup == "" && s.Main == "" &&
		s.Recovery == "" && s.Cooldown == ""
}

// HasSegments reports whether the named-segment variant is populated.
func (s Structure) HasSegments() bool {
	return s.Warmup != "" || s.Main != "" || s.Recovery != "" || s.Cooldown != ""
}

// SegmentText flattens the named segments into display text, in session
// order. Empty segments are skipped.
func (s Structure) SegmentText() string {
	parts := make([]string, 0, 4)
	if s.Warmup != "" {
		parts = append(parts, "Warmup: "+s.Warmup)
	}
	if s.Main != "" {
		parts = append(parts, "Main: "+s.Main)
	}
	if s.Recovery != "" {
		parts = append(parts, "Recovery: "+s.Recovery)
	}
	if s.Cooldown != "" {
		parts = append(parts, "Cooldown: "+s.Cooldown)
	}
	return strings.Join(parts, ". ")
}

// UnmarshalYAML accepts the three catalog shapes: a scalar (raw text), a
// sequence (step list), or a mapping (named segments).
func (s *Structure) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s.Raw = value.Value
		return nil
	case yaml.SequenceNode:
		return value.Decode(&s.Steps)
	case yaml.MappingNode:
		var seg struct {
			Warmup   string `yaml:"warmup"`
			Main     string `yaml:"main"`
			Recovery string `yaml:"recovery"`
			Cooldown string `yaml:"cooldown"`
		}
		if err := value.Decode(&seg); err != nil {
			return err
		}
		s.Warmup, s.Main, s.Recovery, s.Cooldown = seg.Warmup, seg.Main, seg.Recovery, seg.Cooldown
		return nil
	}
	return nil
}

// Progression is a template's week-over-week build, either a flat step list
// or keyed by experience level.
type Progression struct {
	Steps  []string
	Levels map[string]string
}

// IsZero reports whether the template carries no progression.
func (p Progression) IsZero() bool {
	return len(p.Steps) == 0 && len(p.Levels) == 0
}

// ForLevel resolves the progression text for an experience level, preferring
// the exact level, then "intermediate", then the flat steps.
func (p Progression) ForLevel(level string) string {
	if len(p.Levels) > 0 {
		if v, ok := p.Levels[strings.ToLower(level)]; ok {
			return v
		}
		if v, ok := p.Levels["intermediate"]; ok {
			return v
		}
		for _, v := range p.Levels {
			return v
		}
	}
	return strings.Join(p.Steps, " ")
}

// UnmarshalYAML accepts a sequence of steps or a level-keyed mapping.
func (p *Progression) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value != "" {
			p.Steps = []string{value.Value}
		}
		return nil
	case yaml.SequenceNode:
		return value.Decode(&p.Steps)
	case yaml.MappingNode:
		return value.Decode(&p.Levels)
	}
	return nil
}

// TrackConfig is the athlete's track-interval setup.
type TrackConfig struct {
	LapMeters int `json:"lapMeters" yaml:"lapMeters"`
	Repeats   int `json:"repeats" yaml:"repeats"`
}

// Context is the athlete's personalization context. It is passed by value
// and never mutated by the engine.
type Context struct {
	Paces          PaceTable   `json:"paces" yaml:"paces"`
	Equipment      string      `json:"equipment" yaml:"equipment"`
	TrackIntervals TrackConfig `json:"trackIntervals" yaml:"trackIntervals"`
	Week           int         `json:"week" yaml:"week"`
	TotalWeeks     int         `json:"totalWeeks" yaml:"totalWeeks"`
	TargetDistance float64     `json:"targetDistance" yaml:"targetDistance"`
	RunEQWeight    float64     `json:"runEQWeight" yaml:"runEQWeight"`
	Level          string      `json:"level" yaml:"level"`
}

// HasEquipment reports whether the athlete has an equipment preference
// configured.
func (c Context) HasEquipment() bool { return c.Equipment != "" }

// Resolved is the fully merged, personalized, display-ready workout record.
// Every user-facing field is non-empty after resolution.
type Resolved struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Focus        string   `json:"focus"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Structure    string   `json:"structure"`
	Intensity    string   `json:"intensity"`
	HeartRate    string   `json:"heartRate"`
	PaceGuidance string   `json:"paceGuidance"`
	SafetyNotes  []string `json:"safetyNotes"`
	Benefits     string   `json:"benefits"`
	Progression  string   `json:"progression,omitempty"`
	Variations   []string `json:"variations,omitempty"`
	Examples     []string `json:"examples,omitempty"`

	// EquipmentBased marks cross-training sessions; Equipment names the
	// athlete's configured machine when set.
	EquipmentBased bool   `json:"equipmentBased,omitempty"`
	Equipment      string `json:"equipment,omitempty"`

	// Distance is the session's RunEQ miles when extractable, 0 otherwise.
	Distance float64 `json:"distance,omitempty"`

	// Scheduling metadata owned by the caller, preserved across replacement.
	Day  string `json:"day,omitempty"`
	Week int    `json:"week,omitempty"`
}

// AlternativeCategory is one ranked group of substitute workouts.
type AlternativeCategory struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Icon     string   `json:"icon"`
	Options  []Option `json:"options"`
}

// Provenance values for Option.Source.
const (
	SourceLibrary  = "library"
	SourceCategory = "category"
)

// Option is a single substitute workout inside an AlternativeCategory.
type Option struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Intensity   string `json:"intensity"`
	Equipment   string `json:"equipment,omitempty"`
	Location    string `json:"location,omitempty"`
	Reason      string `json:"reason,omitempty"`

	// Source is the provenance tag (SourceLibrary or SourceCategory) and
	// Library the library or category key behind it; together they drive
	// the training-focus recomputation when the option is chosen.
	Source  string `json:"source"`
	Library string `json:"library,omitempty"`
}
