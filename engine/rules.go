// Package engine implements workout resolution and alternative generation:
// field fallback chains, pace projection from the athlete's pace table,
// duration derivation, and the categorized substitute rule system.
package engine

import (
	"strings"

	"github.com/stridelab/stride/workout"
)

// Label is a semantic classification of a workout name. Pace projection and
// the contextual classifier both consume the same ordered table so keyword
// precedence is defined in exactly one place.
type Label string

const (
	LabelGoalPace    Label = "goalPace"
	LabelFastFinish  Label = "fastFinish"
	LabelProgression Label = "progression"
	LabelInterval    Label = "interval"
	LabelTempo       Label = "tempo"
	LabelLong        Label = "long"
	LabelHill        Label = "hill"
	LabelEasy        Label = "easy"
)

type nameRule struct {
	label    Label
	keywords []string
}

// nameRules is ordered by priority; the first matching rule wins. The order
// is load-bearing: "fast finish" must classify as a fast-finish run before
// the progression group can claim it.
var nameRules = []nameRule{
	{LabelGoalPace, []string{"sandwich", "simulation", "dress rehearsal", "marathon pace long", "goal pace"}},
	{LabelFastFinish, []string{"fast finish", "super fast"}},
	{LabelProgression, []string{"dropdown", "10-second", "thirds", "dusa", "progressive"}},
	{LabelInterval, []string{"interval", "speed", "track"}},
	{LabelTempo, []string{"tempo", "threshold"}},
	{LabelLong, []string{"long", "endurance"}},
	{LabelHill, []string{"hill", "incline"}},
	{LabelEasy, []string{"easy", "recovery"}},
}

// ClassifyName returns the first label whose keyword group matches the
// lower-cased name.
func ClassifyName(name string) (Label, bool) {
	lower := strings.ToLower(name)
	for _, rule := range nameRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label, true
			}
		}
	}
	return "", false
}

// ClassifyWorkout classifies a resolved workout by name, falling back to its
// category. Used by the contextual-adaptation generator, which only cares
// about the five training-type labels.
func ClassifyWorkout(name, category string) (Label, bool) {
	lower := strings.ToLower(name)
	for _, rule := range nameRules {
		if !isTrainingType(rule.label) {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label, true
			}
		}
	}
	switch workout.CanonicalCategory(category) {
	case workout.CategoryInterval:
		return LabelInterval, true
	case workout.CategoryTempo:
		return LabelTempo, true
	case workout.CategoryLongRun:
		return LabelLong, true
	case workout.CategoryHill:
		return LabelHill, true
	case workout.CategoryEasy, workout.CategoryRecovery:
		return LabelEasy, true
	}
	return "", false
}

func isTrainingType(label Label) bool {
	switch label {
	case LabelInterval, LabelTempo, LabelLong, LabelHill, LabelEasy:
		return true
	}
	return false
}
