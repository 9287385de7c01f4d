package engine

import (
	"strings"

	"github.com/stridelab/stride/workout"
)

// focusByLibrary maps an option's library tag to the training focus shown
// once the option replaces the scheduled session.
var focusByLibrary = map[string]string{
	workout.CategoryTempo:    "Lactate Threshold",
	workout.CategoryInterval: "Speed & Power",
	workout.CategoryHill:     "Strength & Power",
	workout.CategoryLongRun:  "Endurance",
}

// ApplyReplacement merges a chosen alternative into the current workout,
// recomputing the training focus from the option's provenance and keeping
// the original's scheduling metadata. The engine returns a fresh record;
// the caller owns saving it.
func (e *Engine) ApplyReplacement(cur *workout.Resolved, opt workout.Option) *workout.Resolved {
	next := *cur
	next.Name = opt.Name
	next.Focus = focusForOption(opt)

	if opt.Description != "" {
		next.Description = opt.Description
		next.Structure = opt.Description
	}
	if opt.Duration != "" {
		next.Duration = opt.Duration
	}
	if opt.Intensity != "" {
		next.Intensity = opt.Intensity
	}
	if opt.Equipment != "" {
		next.Equipment = opt.Equipment
		next.EquipmentBased = true
	} else if opt.Library != workout.CategoryBike && opt.Library != "brick" {
		next.Equipment = ""
		next.EquipmentBased = false
	}
	if cat := workout.CanonicalCategory(opt.Library); familyForCategory(cat) != "" ||
		cat == workout.CategoryEasy || cat == workout.CategoryRest {
		next.Category = cat
	}

	// Template-specific extras no longer describe the replacement.
	next.Progression = ""
	next.Variations = nil
	next.Examples = nil
	next.Distance = extractMiles(opt.Name, opt.Description)

	// Day and Week come from cur and stay untouched.
	return &next
}

// focusForOption recomputes the training focus from a chosen option's
// resolved fields: library tag first, a keyword sub-classification for
// equipment sessions, then the intensity string, then the generic label.
func focusForOption(opt workout.Option) string {
	lib := workout.CanonicalCategory(opt.Library)
	if f, ok := focusByLibrary[lib]; ok {
		return f
	}
	if lib == workout.CategoryBike {
		return bikeFocus(opt)
	}
	lower := strings.ToLower(opt.Intensity)
	switch {
	case strings.Contains(lower, "recovery"):
		return "Recovery"
	case strings.Contains(lower, "easy"):
		return "Easy"
	}
	return genericFocus
}

// bikeFocus sub-classifies an equipment session by its effort and name
// keywords.
func bikeFocus(opt workout.Option) string {
	lower := strings.ToLower(opt.Name + " " + opt.Intensity)
	switch {
	case strings.Contains(lower, "sprint") || strings.Contains(lower, "interval") ||
		strings.Contains(lower, "maximal"):
		return "Speed & Power"
	case strings.Contains(lower, "gear") || strings.Contains(lower, "climb") ||
		strings.Contains(lower, "power"):
		return "Strength & Power"
	case strings.Contains(lower, "sweet spot") || strings.Contains(lower, "threshold") ||
		strings.Contains(lower, "tempo"):
		return "Lactate Threshold"
	case strings.Contains(lower, "recovery") || strings.Contains(lower, "very easy") ||
		strings.Contains(lower, "light"):
		return "Recovery"
	}
	return "Cross-Training Endurance"
}
