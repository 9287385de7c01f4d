package catalog

import (
	"fmt"
	"strings"

	"github.com/stridelab/stride/workout"
)

// Subcategory keys the engine selects by. Library data uses the same keys.
const (
	SubShortSpeed = "SHORT_SPEED" // short interval variants for harder swaps
	SubShortPower = "SHORT_POWER" // short hill-power variants

	// Equipment library buckets.
	SubEquipTempo     = "tempo"
	SubEquipInterval  = "interval"
	SubEquipPower     = "power"
	SubEquipEndurance = "endurance"

	// Brick intensity tiers.
	BrickRecovery = "recovery"
	BrickAerobic  = "aerobic"
	BrickTempo    = "tempo"
	BrickSpeed    = "speed"
)

// brickLibrary serves combined run+equipment sessions. Templates carry an
// "{equipment}" placeholder that Generate substitutes with the athlete's
// configured machine.
type brickLibrary struct {
	*Library
}

func loadBrickLibrary(rnd Rand) (*brickLibrary, error) {
	data, err := libraryFS.ReadFile("data/brick.yaml")
	if err != nil {
		return nil, fmt.Errorf("read brick library: %w", err)
	}
	lib, err := LoadLibrary(data, rnd)
	if err != nil {
		return nil, fmt.Errorf("load brick library: %w", err)
	}
	return &brickLibrary{Library: lib}, nil
}

// Prescribe implements Provider. Named lookups substitute the athlete's
// equipment so placeholders never reach a prescription.
func (b *brickLibrary) Prescribe(name string, ctx workout.Context) *workout.Template {
	t := b.Library.Prescribe(name, ctx)
	if t == nil {
		return nil
	}
	equipment := ctx.Equipment
	if equipment == "" {
		equipment = "bike"
	}
	substituteEquipment(t, equipment)
	return t
}

// Generate implements BrickGenerator. The intensity tier selects the
// subcategory; difficulty keys the progression level.
func (b *brickLibrary) Generate(req BrickRequest) *workout.Template {
	t := b.Random(req.Intensity)
	if t == nil {
		return nil
	}
	equipment := req.Equipment
	if equipment == "" {
		equipment = "bike"
	}
	substituteEquipment(t, equipment)
	if req.Difficulty != "" && !t.Progression.IsZero() {
		if v := t.Progression.ForLevel(req.Difficulty); v != "" {
			t.Progression = workout.Progression{Steps: []string{v}}
		}
	}
	return t
}

func substituteEquipment(t *workout.Template, equipment string) {
	// The template shares slice storage with the library; copy before
	// rewriting so the library stays immutable.
	t.Structure.Steps = append([]string(nil), t.Structure.Steps...)
	t.SafetyNotes = append([]string(nil), t.SafetyNotes...)

	sub := func(s string) string { return strings.ReplaceAll(s, "{equipment}", equipment) }
	t.Name = sub(t.Name)
	t.Description = sub(t.Description)
	t.Intensity = sub(t.Intensity)
	t.Benefits = sub(t.Benefits)
	t.Structure.Raw = sub(t.Structure.Raw)
	t.Structure.Warmup = sub(t.Structure.Warmup)
	t.Structure.Main = sub(t.Structure.Main)
	t.Structure.Recovery = sub(t.Structure.Recovery)
	t.Structure.Cooldown = sub(t.Structure.Cooldown)
	for i := range t.Structure.Steps {
		t.Structure.Steps[i] = sub(t.Structure.Steps[i])
	}
	for i := range t.SafetyNotes {
		t.SafetyNotes[i] = sub(t.SafetyNotes[i])
	}
}
