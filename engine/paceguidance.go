package engine

import (
	"fmt"
	"strings"

	"github.com/stridelab/stride/workout"
)

const smoothMotionGuidance = "Focus on smooth, controlled motion at a steady effort"

// resolvePaceGuidance projects a pace string from the athlete's pace table.
// Classification runs on the workout name first, independent of category;
// rules that need a pace the table does not hold fall through to the next
// rule rather than failing, so a "Sandwich Tempo" without a goal pace still
// picks up the plain threshold pace.
func resolvePaceGuidance(name, cat string, tmpl *workout.Template, ctx workout.Context) string {
	if note, ok := equipmentNote(tmpl, ctx); ok {
		if note.Pace != "" {
			return note.Pace
		}
		return smoothMotionGuidance
	}

	label, matched := ClassifyName(name)
	paces := ctx.Paces

	if matched && label == LabelGoalPace {
		if goal := paces.GoalPace(); goal != "" {
			return goal + "/mile (goal pace)"
		}
	}
	if matched && label == LabelFastFinish {
		min, max, ok := paces.Easy.Range()
		if ok && !paces.Interval.IsZero() {
			return fmt.Sprintf("%s-%s/mile → %s/mile (fast finish)", min, max, paces.Interval.Value())
		}
	}
	if matched && (label == LabelFastFinish || label == LabelProgression) {
		if min, max, ok := paces.Easy.Range(); ok {
			return fmt.Sprintf("%s-%s/mile (starting pace)", min, max)
		}
	}

	if cat == workout.CategoryInterval && !paces.Interval.IsZero() {
		return paces.Interval.Value() + "/mile"
	}
	if (cat == workout.CategoryTempo || strings.Contains(strings.ToLower(name), "tempo")) && !paces.Threshold.IsZero() {
		return paces.Threshold.Value() + "/mile"
	}
	if cat == workout.CategoryLongRun || cat == workout.CategoryEasy || cat == workout.CategoryRecovery {
		if min, max, ok := paces.Easy.Range(); ok {
			return fmt.Sprintf("%s-%s/mile", min, max)
		}
	}

	if tmpl.PaceGuidance != "" {
		return tmpl.PaceGuidance
	}
	return defaultPaceGuidance
}
