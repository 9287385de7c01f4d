package engine

import (
	"regexp"
	"strings"

	"github.com/stridelab/stride/workout"
)

// Terminal defaults for the field fallback chains. Every chain ends here, so
// a resolved workout never shows an empty field.
const (
	defaultStructure    = "Complete the workout as prescribed"
	defaultPaceGuidance = "Maintain steady effort throughout"
	defaultDuration     = "30-45 minutes"
)

var defaultSafetyNotes = []string{
	"Listen to your body and ease off if the effort spikes",
	"Stay hydrated before and during the session",
	"Stop if you feel pain or unusual fatigue",
}

// Category-keyed generic intensity and heart-rate descriptors, used when
// neither the template nor the athlete context supplies anything better.
var categoryIntensity = map[string]string{
	workout.CategoryInterval: "High-intensity effort at race pace or faster",
	workout.CategoryTempo:    "Medium-hard effort, sustainable for 20-60 minutes",
	workout.CategoryHill:     "Hard effort on the climb, easy on the recovery",
	workout.CategoryLongRun:  "Easy, conversational effort throughout",
}

var categoryHeartRate = map[string]string{
	workout.CategoryInterval: "90-100% Max HR",
	workout.CategoryTempo:    "86-90% Max HR",
	workout.CategoryHill:     "85-95% Max HR",
	workout.CategoryLongRun:  "70-80% Max HR",
}

const (
	genericIntensity = "Moderate, controlled effort"
	genericHeartRate = "70-85% Max HR"
)

var categoryFocus = map[string]string{
	workout.CategoryTempo:    "Lactate Threshold",
	workout.CategoryInterval: "Speed & Power",
	workout.CategoryHill:     "Strength & Power",
	workout.CategoryLongRun:  "Endurance",
	workout.CategoryEasy:     "Easy",
	workout.CategoryRecovery: "Recovery",
	workout.CategoryBike:     "Cross-Training",
	workout.CategoryBrick:    "Run + Equipment",
	workout.CategoryRest:     "Rest & Recovery",
}

const genericFocus = "Training Focus"

// Resolve merges a catalog template (when one matches the reference) with
// the plan-supplied reference and the athlete's context into a fully
// specified workout. A missing template is not an error; every field falls
// through its chain to a terminal default. Only a missing category fails.
func (e *Engine) Resolve(ref Ref, ctx workout.Context) (*workout.Resolved, error) {
	if strings.TrimSpace(ref.Category) == "" {
		return nil, ErrMissingCategory
	}
	cat := workout.CanonicalCategory(ref.Category)

	var tmpl *workout.Template
	if e.catalogs != nil {
		tmpl = e.catalogs.Prescribe(ref.Name, cat, ctx)
	}
	if tmpl == nil {
		tmpl = &workout.Template{}
	}

	r := &workout.Resolved{
		Name:     displayName(ref, tmpl),
		Category: cat,
		Day:      ref.Day,
		Week:     ref.Week,
	}
	r.Focus = resolveFocus(ref, cat)
	r.Description = firstNonEmpty(ref.Description, tmpl.Description, r.Name)
	r.Structure = resolveStructure(ref, tmpl, r.Name, cat)
	r.Intensity = resolveIntensity(tmpl, cat, ctx)
	r.HeartRate = resolveHeartRate(tmpl, cat, ctx)
	r.PaceGuidance = resolvePaceGuidance(r.Name, cat, tmpl, ctx)
	r.SafetyNotes = resolveSafetyNotes(tmpl)
	r.Benefits = resolveBenefits(tmpl, r.Name, cat)
	r.Distance = extractMiles(ref.Name, ref.Description, tmpl.Description)
	r.Duration = resolveDuration(ref, tmpl, cat, r.Structure, r.Distance, ctx)

	if !tmpl.Progression.IsZero() {
		r.Progression = tmpl.Progression.ForLevel(ctx.Level)
	}
	r.Variations = tmpl.Variations
	r.Examples = tmpl.Examples

	if cat == workout.CategoryBike || cat == workout.CategoryBrick {
		r.EquipmentBased = true
		r.Equipment = ctx.Equipment
	}
	return r, nil
}

func displayName(ref Ref, tmpl *workout.Template) string {
	if strings.TrimSpace(ref.Name) != "" {
		return ref.Name
	}
	if tmpl.Name != "" {
		return tmpl.Name
	}
	return "Scheduled Workout"
}

func resolveFocus(ref Ref, cat string) string {
	if ref.Focus != "" {
		return ref.Focus
	}
	if f, ok := categoryFocus[cat]; ok {
		return f
	}
	return genericFocus
}

// resolveStructure walks the structure chain: plan-supplied text, explicit
// segments, the template's raw text or step list, a repetitions+recovery
// composite, a name-keyword heuristic, the literal description, then the
// terminal default.
func resolveStructure(ref Ref, tmpl *workout.Template, name, cat string) string {
	if ref.Structure != "" {
		return ref.Structure
	}
	if tmpl.Structure.HasSegments() {
		return tmpl.Structure.SegmentText()
	}
	if tmpl.Structure.Raw != "" {
		return tmpl.Structure.Raw
	}
	if len(tmpl.Structure.Steps) > 0 {
		return strings.Join(tmpl.Structure.Steps, ". ")
	}
	if tmpl.Repetitions != "" {
		if tmpl.Recovery != "" {
			return tmpl.Repetitions + " with " + tmpl.Recovery + " between efforts"
		}
		return tmpl.Repetitions
	}
	if s := structureHeuristic(name, cat); s != "" {
		return s
	}
	if d := firstNonEmpty(ref.Description, tmpl.Description); d != "" {
		return d
	}
	return defaultStructure
}

// structureHeuristics is ordered; the first keyword hit wins.
var structureHeuristics = []struct {
	keyword string
	text    string
}{
	{"fartlek", "Easy running with bursts of faster running mixed in on feel"},
	{"progressive", "Start relaxed and drop the pace gradually, finishing at your quickest"},
	{"tempo", "Settle into a sustained, comfortably hard effort for the main block"},
	{"interval", "Alternate hard efforts with easy recovery jogs"},
	{"easy", "Relaxed, conversational running for the whole session"},
	{"long", "Steady easy-pace running for the full distance"},
}

func structureHeuristic(name, cat string) string {
	lower := strings.ToLower(name + " " + cat)
	for _, h := range structureHeuristics {
		if strings.Contains(lower, h.keyword) {
			return h.text
		}
	}
	return ""
}

func resolveIntensity(tmpl *workout.Template, cat string, ctx workout.Context) string {
	if note, ok := equipmentNote(tmpl, ctx); ok && note.Effort != "" {
		return note.Effort
	}
	if tmpl.Guidance != nil {
		if tmpl.Guidance.Effort != "" {
			return tmpl.Guidance.Effort
		}
		if tmpl.Guidance.Description != "" {
			return tmpl.Guidance.Description
		}
	}
	if tmpl.Intensity != "" && !isEnumCode(tmpl.Intensity) {
		return tmpl.Intensity
	}
	if v, ok := categoryIntensity[cat]; ok {
		return v
	}
	return genericIntensity
}

func resolveHeartRate(tmpl *workout.Template, cat string, ctx workout.Context) string {
	if note, ok := equipmentNote(tmpl, ctx); ok && note.HeartRate != "" {
		return note.HeartRate
	}
	if tmpl.Guidance != nil && tmpl.Guidance.HeartRate != "" {
		return tmpl.Guidance.HeartRate
	}
	if tmpl.HeartRate != "" {
		return tmpl.HeartRate
	}
	if v, ok := categoryHeartRate[cat]; ok {
		return v
	}
	return genericHeartRate
}

func resolveSafetyNotes(tmpl *workout.Template) []string {
	if len(tmpl.SafetyNotes) > 0 {
		return tmpl.SafetyNotes
	}
	return defaultSafetyNotes
}

// benefitRules is ordered; used only when the template has no benefits text.
var benefitRules = []struct {
	keywords []string
	text     string
}{
	{[]string{"fartlek"}, "Builds speed and pace-changing ability in a low-pressure format."},
	{[]string{"progressive"}, "Develops pace judgement and the strength to finish fast."},
	{[]string{"tempo"}, "Raises your lactate threshold so harder paces feel sustainable."},
	{[]string{"interval", "speed"}, "Improves VO2max, speed, and running economy."},
	{[]string{"hill"}, "Builds leg strength and power with less impact than flat speed work."},
	{[]string{"long"}, "Extends aerobic endurance and mental durability."},
	{[]string{"easy", "recovery"}, "Promotes recovery while maintaining aerobic fitness."},
}

const genericBenefits = "Supports your overall fitness and training consistency."

func resolveBenefits(tmpl *workout.Template, name, cat string) string {
	if tmpl.Benefits != "" {
		return tmpl.Benefits
	}
	lower := strings.ToLower(name + " " + cat)
	for _, rule := range benefitRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.text
			}
		}
	}
	return genericBenefits
}

func equipmentNote(tmpl *workout.Template, ctx workout.Context) (workout.EquipmentNote, bool) {
	if !ctx.HasEquipment() || len(tmpl.Equipment) == 0 {
		return workout.EquipmentNote{}, false
	}
	note, ok := tmpl.Equipment[strings.ToLower(ctx.Equipment)]
	return note, ok
}

// isEnumCode reports whether an intensity value is an internal catalog code
// (ALL_CAPS token) rather than display text.
var enumCode = regexp.MustCompile(`^[A-Z0-9_]+$`)

func isEnumCode(s string) bool {
	return enumCode.MatchString(strings.TrimSpace(s)) && strings.ContainsAny(s, "_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
