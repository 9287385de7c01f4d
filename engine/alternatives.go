package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/workout"
)

// Profile is the athlete context the alternative generator works from: the
// personalization context plus the climate flag.
type Profile struct {
	workout.Context
	HotClimate bool `json:"hotClimate,omitempty"`
}

// Option list caps per category.
const (
	capDefault = 6
	capHarder  = 4
)

// bikeToRunRatio converts equipment RunEQ distance to an equivalent running
// distance. A ride is worth a third of its distance in running miles.
const bikeToRunRatio = 3

const defaultBikeDistance = 12

// Alternatives produces the ordered category list of substitute workouts
// for the current session. Rest days get their own fixed five-category set;
// everything else walks the general branches in a fixed order, each included
// only when it yields options.
func (e *Engine) Alternatives(cur *workout.Resolved, profile Profile, weatherExtreme bool) []workout.AlternativeCategory {
	if workout.CanonicalCategory(cur.Category) == workout.CategoryRest {
		return e.restDayAlternatives(profile)
	}

	var cats []workout.AlternativeCategory
	add := func(c workout.AlternativeCategory) {
		if len(c.Options) > 0 {
			cats = append(cats, c)
		}
	}

	add(e.sameIntensity(cur, profile))
	add(easierCategory())
	add(e.harder(cur, profile))
	if profile.HasEquipment() {
		if cur.EquipmentBased {
			add(e.switchToRunning(cur, profile))
		} else {
			add(e.equipmentSwap(cur, profile))
		}
	}
	add(contextualAdaptations(cur))
	if weatherExtreme {
		add(weatherCategory())
	}
	if profile.HasEquipment() {
		add(e.brickAlternatives(cur, profile))
	}
	return cats
}

// familyForCategory maps a workout category onto its catalog family, or ""
// when no library serves it directly.
func familyForCategory(cat string) string {
	switch cat {
	case workout.CategoryTempo, workout.CategoryInterval, workout.CategoryHill,
		workout.CategoryLongRun, workout.CategoryBike:
		return cat
	}
	return ""
}

type subcategoryLister interface {
	Subcategories() []string
}

// sameIntensity draws subcategory variants of the current category from the
// catalog, resolved with the athlete's pace context. The current workout
// itself is excluded.
func (e *Engine) sameIntensity(cur *workout.Resolved, profile Profile) workout.AlternativeCategory {
	cat := workout.AlternativeCategory{
		ID:       "same-intensity",
		Title:    "Same Intensity",
		Subtitle: "Different workout, same training stimulus",
		Icon:     "arrows.left.right",
	}
	family := familyForCategory(workout.CanonicalCategory(cur.Category))
	if family == "" {
		return cat
	}
	provider, ok := e.catalogs.Get(family)
	if !ok {
		return cat
	}
	lister, ok := provider.(subcategoryLister)
	if !ok {
		return cat
	}

	subs := lister.Subcategories()
	sort.Strings(subs)
	if len(subs) > 3 {
		subs = subs[:3]
	}

	seen := map[string]bool{strings.ToLower(cur.Name): true}
	for _, sub := range subs {
		for i := 0; i < 2 && len(cat.Options) < capDefault; i++ {
			tmpl := provider.Random(sub)
			if tmpl == nil || seen[strings.ToLower(tmpl.Name)] {
				continue
			}
			seen[strings.ToLower(tmpl.Name)] = true
			opt, ok := e.resolveOption(tmpl.Name, family, profile.Context)
			if ok {
				cat.Options = append(cat.Options, opt)
			}
		}
	}
	return cat
}

// resolveOption resolves a catalog template through the full fallback chain
// and flattens it into an option.
func (e *Engine) resolveOption(name, family string, ctx workout.Context) (workout.Option, bool) {
	r, err := e.Resolve(Ref{Name: name, Category: family}, ctx)
	if err != nil {
		return workout.Option{}, false
	}
	return workout.Option{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Intensity:   r.Intensity,
		Equipment:   r.Equipment,
		Source:      workout.SourceLibrary,
		Library:     family,
	}, true
}

// easierCategory is fixed generic low-intensity options; nothing here is
// catalog-driven.
func easierCategory() workout.AlternativeCategory {
	return workout.AlternativeCategory{
		ID:       "easier",
		Title:    "Take It Easier",
		Subtitle: "Lower-intensity options for a tough day",
		Icon:     "tortoise",
		Options: []workout.Option{
			{
				Name:        "Recovery Run",
				Description: "20-30 minutes at a very easy, fully conversational pace",
				Duration:    "20-30 minutes",
				Intensity:   "Recovery effort",
				Source:      workout.SourceCategory,
				Library:     "easy",
			},
			{
				Name:        "Walk-Run Intervals",
				Description: "20 minutes alternating 3 minutes of jogging with 2 minutes of walking",
				Duration:    "20 minutes",
				Intensity:   "Easy effort",
				Source:      workout.SourceCategory,
				Library:     "easy",
			},
			{
				Name:        "Mobility Flow",
				Description: "15-20 minutes of dynamic stretching and mobility work, no running",
				Duration:    "15-20 minutes",
				Intensity:   "Recovery effort",
				Source:      workout.SourceCategory,
				Library:     "easy",
			},
		},
	}
}

// harder adds catalog-resolved short speed and hill-power variants where the
// current category allows, then fixed generic harder options.
func (e *Engine) harder(cur *workout.Resolved, profile Profile) workout.AlternativeCategory {
	cat := workout.AlternativeCategory{
		ID:       "harder",
		Title:    "Push Harder",
		Subtitle: "Feeling strong? Upgrade the session",
		Icon:     "flame",
	}
	current := workout.CanonicalCategory(cur.Category)

	if current == workout.CategoryEasy || current == workout.CategoryTempo {
		if provider, ok := e.catalogs.Get(workout.CategoryInterval); ok {
			if tmpl := provider.Random(catalog.SubShortSpeed); tmpl != nil {
				if opt, ok := e.resolveOption(tmpl.Name, workout.CategoryInterval, profile.Context); ok {
					cat.Options = append(cat.Options, opt)
				}
			}
		}
	}
	if current != workout.CategoryHill {
		if provider, ok := e.catalogs.Get(workout.CategoryHill); ok {
			if tmpl := provider.Random(catalog.SubShortPower); tmpl != nil {
				if opt, ok := e.resolveOption(tmpl.Name, workout.CategoryHill, profile.Context); ok {
					cat.Options = append(cat.Options, opt)
				}
			}
		}
	}

	cat.Options = append(cat.Options,
		workout.Option{
			Name:        "Fartlek Run",
			Description: "30-40 minutes of easy running with 6-8 one-minute hard surges",
			Duration:    "30-40 minutes",
			Intensity:   "Hard surges over an easy base",
			Source:      workout.SourceCategory,
			Library:     "interval",
		},
		workout.Option{
			Name:        "Progressive Run",
			Description: "35-45 minutes starting easy and finishing the last 10 minutes at tempo effort",
			Duration:    "35-45 minutes",
			Intensity:   "Builds to comfortably hard",
			Source:      workout.SourceCategory,
			Library:     "tempo",
		},
	)
	if len(cat.Options) > capHarder {
		cat.Options = cat.Options[:capHarder]
	}
	return cat
}

// equipmentBuckets maps the current running category to the equipment
// library buckets to draw from.
func equipmentBuckets(cat string) []string {
	switch cat {
	case workout.CategoryTempo, workout.CategoryInterval:
		return []string{catalog.SubEquipTempo, catalog.SubEquipInterval}
	case workout.CategoryHill:
		return []string{catalog.SubEquipPower}
	case workout.CategoryLongRun:
		return []string{catalog.SubEquipEndurance}
	}
	return []string{catalog.SubEquipEndurance, catalog.SubEquipTempo}
}

// equipmentSwap selects equipment-library sessions matching the current
// workout's training intent.
func (e *Engine) equipmentSwap(cur *workout.Resolved, profile Profile) workout.AlternativeCategory {
	cat := workout.AlternativeCategory{
		ID:       "equipment-swap",
		Title:    fmt.Sprintf("Switch to %s", capitalize(profile.Equipment)),
		Subtitle: "Same stimulus with less impact",
		Icon:     "bicycle",
	}
	provider, ok := e.catalogs.Get(workout.CategoryBike)
	if !ok {
		return cat
	}

	seen := map[string]bool{}
	for _, bucket := range equipmentBuckets(workout.CanonicalCategory(cur.Category)) {
		for i := 0; i < 3 && len(cat.Options) < capDefault; i++ {
			tmpl := provider.Random(bucket)
			if tmpl == nil || seen[strings.ToLower(tmpl.Name)] {
				continue
			}
			seen[strings.ToLower(tmpl.Name)] = true
			opt, ok := e.resolveOption(tmpl.Name, workout.CategoryBike, profile.Context)
			if !ok {
				continue
			}
			opt.Equipment = profile.Equipment
			cat.Options = append(cat.Options, opt)
		}
	}
	return cat
}

// switchToRunning converts an equipment session back into running options,
// scaling distance at the fixed equipment-to-run ratio.
func (e *Engine) switchToRunning(cur *workout.Resolved, profile Profile) workout.AlternativeCategory {
	bikeDistance := cur.Distance
	if bikeDistance == 0 {
		bikeDistance = extractMiles(cur.Name, cur.Description)
	}
	if bikeDistance == 0 {
		bikeDistance = defaultBikeDistance
	}
	miles := int(math.Round(bikeDistance / bikeToRunRatio))
	if miles < 1 {
		miles = 1
	}

	easyDuration := durationFromDistance(float64(miles), profile.Paces.Easy)
	if easyDuration == "" {
		easyDuration = fmt.Sprintf("%d-%d minutes", miles*9, miles*10)
	}
	tempoMiles := int(math.Round(float64(miles) * 0.75))
	if tempoMiles < 2 {
		tempoMiles = 2
	}

	return workout.AlternativeCategory{
		ID:       "switch-to-running",
		Title:    "Switch to Running",
		Subtitle: fmt.Sprintf("Equivalent run for today's %s session", equipmentWord(cur)),
		Icon:     "figure.run",
		Options: []workout.Option{
			{
				Name:        fmt.Sprintf("%d-Mile Easy Run", miles),
				Description: fmt.Sprintf("Easy conversational run covering the aerobic work of the %s session", equipmentWord(cur)),
				Duration:    easyDuration,
				Intensity:   "Easy effort",
				Source:      workout.SourceCategory,
				Library:     "easy",
			},
			{
				Name:        fmt.Sprintf("%d-Mile Tempo Run", tempoMiles),
				Description: fmt.Sprintf("%d miles with the middle %d at threshold effort", tempoMiles, tempoMiles-1),
				Duration:    fmt.Sprintf("%d-%d minutes", tempoMiles*8, tempoMiles*10),
				Intensity:   "Comfortably hard through the middle",
				Source:      workout.SourceCategory,
				Library:     "tempo",
			},
			{
				Name:        fmt.Sprintf("%d-Mile Fartlek", miles),
				Description: fmt.Sprintf("%d miles easy with a one-minute surge every five minutes", miles),
				Duration:    easyDuration,
				Intensity:   "Hard surges over an easy base",
				Source:      workout.SourceCategory,
				Library:     "interval",
			},
			{
				Name:        fmt.Sprintf("%d-Mile Progressive Run", miles),
				Description: fmt.Sprintf("%d miles starting easy and finishing at marathon effort", miles),
				Duration:    easyDuration,
				Intensity:   "Builds from easy to strong",
				Source:      workout.SourceCategory,
				Library:     "tempo",
			},
		},
	}
}

func equipmentWord(cur *workout.Resolved) string {
	if cur.Equipment != "" {
		return cur.Equipment
	}
	return "equipment"
}

// Reason tags on contextual options.
const (
	reasonNoEquipment    = "no-equipment"
	reasonWeather        = "weather"
	reasonTimeConstraint = "time-constraint"
	reasonFatigue        = "fatigue"
)

// contextualSets maps a training-type label to its fixed situational
// substitutes: a treadmill version, an alternate-terrain version, a
// shortened version, and a split-session version.
var contextualSets = map[Label][]workout.Option{
	LabelInterval: {
		{Name: "Treadmill Intervals", Description: "Run the repeats on a treadmill at equivalent effort, 0.5-1% incline", Duration: "40-50 minutes", Intensity: "Hard repeats", Location: "treadmill", Reason: reasonWeather, Source: workout.SourceCategory, Library: "interval"},
		{Name: "Road Surges", Description: "Same repeat durations on any flat road stretch, by effort instead of track splits", Duration: "40-50 minutes", Intensity: "Hard repeats", Location: "road", Reason: reasonNoEquipment, Source: workout.SourceCategory, Library: "interval"},
		{Name: "Shortened Speed Session", Description: "Cut the repeat count in half and keep the quality of each one", Duration: "25-30 minutes", Intensity: "Hard repeats", Reason: reasonTimeConstraint, Source: workout.SourceCategory, Library: "interval"},
		{Name: "Split Intervals", Description: "Half the repeats in the morning, half in the evening", Duration: "2 x 20-25 minutes", Intensity: "Hard repeats", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "interval"},
	},
	LabelTempo: {
		{Name: "Treadmill Tempo", Description: "The tempo block on a treadmill at a fixed threshold pace", Duration: "40-50 minutes", Intensity: "Comfortably hard", Location: "treadmill", Reason: reasonWeather, Source: workout.SourceCategory, Library: "tempo"},
		{Name: "Tempo by Feel", Description: "Run the block on effort alone over any honest route, no splits", Duration: "40-50 minutes", Intensity: "Comfortably hard", Location: "road", Reason: reasonNoEquipment, Source: workout.SourceCategory, Library: "tempo"},
		{Name: "Shortened Tempo", Description: "Trim the tempo block to 15 minutes at full quality", Duration: "30-35 minutes", Intensity: "Comfortably hard", Reason: reasonTimeConstraint, Source: workout.SourceCategory, Library: "tempo"},
		{Name: "Split Tempo", Description: "Two shorter tempo blocks, morning and evening", Duration: "2 x 20 minutes", Intensity: "Comfortably hard", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "tempo"},
	},
	LabelLong: {
		{Name: "Treadmill Long Run", Description: "The long run indoors with entertainment queued up and fluids at hand", Duration: "90+ minutes", Intensity: "Easy, conversational", Location: "treadmill", Reason: reasonWeather, Source: workout.SourceCategory, Library: "longRun"},
		{Name: "Loop Course Long Run", Description: "Short loops near home so you can bail or refuel at any point", Duration: "90+ minutes", Intensity: "Easy, conversational", Location: "road", Reason: reasonNoEquipment, Source: workout.SourceCategory, Library: "longRun"},
		{Name: "Shortened Long Run", Description: "Two-thirds of the scheduled distance at the same easy effort", Duration: "60-80 minutes", Intensity: "Easy, conversational", Reason: reasonTimeConstraint, Source: workout.SourceCategory, Library: "longRun"},
		{Name: "Split Long Run", Description: "The distance split across morning and evening runs", Duration: "2 x 45-60 minutes", Intensity: "Easy, conversational", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "longRun"},
	},
	LabelHill: {
		{Name: "Treadmill Incline Repeats", Description: "Hill repeats at 5-8% incline when no honest hill is nearby", Duration: "40-45 minutes", Intensity: "Hard on the climb", Location: "treadmill", Reason: reasonNoEquipment, Source: workout.SourceCategory, Library: "hill"},
		{Name: "Stair Repeats", Description: "Stadium or building stairs as the climb, walk down to recover", Duration: "30-40 minutes", Intensity: "Hard on the climb", Location: "stairs", Reason: reasonWeather, Source: workout.SourceCategory, Library: "hill"},
		{Name: "Shortened Hill Session", Description: "Half the repeats at full quality", Duration: "25-30 minutes", Intensity: "Hard on the climb", Reason: reasonTimeConstraint, Source: workout.SourceCategory, Library: "hill"},
		{Name: "Leg Strength Circuit", Description: "Lunges, step-ups, and calf raises standing in for the climbing strength work", Duration: "25-30 minutes", Intensity: "Muscular effort", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "hill"},
	},
	LabelEasy: {
		{Name: "Treadmill Easy Run", Description: "The easy run indoors at a relaxed, conversational pace", Duration: "30-40 minutes", Intensity: "Easy", Location: "treadmill", Reason: reasonWeather, Source: workout.SourceCategory, Library: "easy"},
		{Name: "Soft-Surface Easy Run", Description: "The same run on grass or trail to spare the legs", Duration: "30-40 minutes", Intensity: "Easy", Location: "trail", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "easy"},
		{Name: "Shortened Easy Run", Description: "20 minutes easy; consistency beats volume on a busy day", Duration: "20 minutes", Intensity: "Easy", Reason: reasonTimeConstraint, Source: workout.SourceCategory, Library: "easy"},
	},
}

var universalFallback = []workout.Option{
	{Name: "Rest Day", Description: "Take the day off and come back fresh tomorrow", Duration: "0 minutes", Intensity: "Rest", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "rest"},
	{Name: "Light Cross-Training", Description: "20-30 minutes of any easy non-impact activity", Duration: "20-30 minutes", Intensity: "Easy", Reason: reasonFatigue, Source: workout.SourceCategory, Library: "bike"},
}

// contextualAdaptations classifies the current workout and emits its fixed
// situational substitutes, or the two-item universal fallback when the
// workout fits no training-type group.
func contextualAdaptations(cur *workout.Resolved) workout.AlternativeCategory {
	cat := workout.AlternativeCategory{
		ID:       "contextual",
		Title:    "Adapt Today's Session",
		Subtitle: "Same intent, different circumstances",
		Icon:     "slider.horizontal.3",
	}
	label, ok := ClassifyWorkout(cur.Name, cur.Category)
	if !ok {
		cat.Options = append([]workout.Option(nil), universalFallback...)
		return cat
	}
	cat.Options = append([]workout.Option(nil), contextualSets[label]...)
	return cat
}

// weatherCategory is the fixed option set emitted when the caller flags
// extreme weather.
func weatherCategory() workout.AlternativeCategory {
	return workout.AlternativeCategory{
		ID:       "weather",
		Title:    "Beat the Weather",
		Subtitle: "Options for an extreme-weather day",
		Icon:     "cloud.bolt.rain",
		Options: []workout.Option{
			{Name: "Treadmill Session", Description: "Move the whole session indoors at equivalent effort", Duration: "As scheduled", Intensity: "As scheduled", Location: "treadmill", Reason: reasonWeather, Source: workout.SourceCategory},
			{Name: "Covered Route", Description: "A parking-garage or covered-path loop out of the conditions", Duration: "As scheduled", Intensity: "As scheduled", Location: "covered", Reason: reasonWeather, Source: workout.SourceCategory},
			{Name: "Early-Morning Start", Description: "Run at first light before the heat or storm arrives", Duration: "As scheduled", Intensity: "As scheduled", Reason: reasonWeather, Source: workout.SourceCategory},
			{Name: "Split Session", Description: "Two shorter runs in the day's two best weather windows", Duration: "2 x half the scheduled time", Intensity: "As scheduled", Reason: reasonWeather, Source: workout.SourceCategory},
		},
	}
}

// brickTiers selects the brick intensity tiers appropriate for the current
// session's RunEQ distance or duration. Either bound landing in a tier's
// range selects that tier.
func brickTiers(distance float64, minutes int) []string {
	switch {
	case (distance > 0 && distance < 5) || (minutes > 0 && minutes < 30):
		return []string{catalog.BrickRecovery}
	case (distance > 0 && distance < 10) || (minutes > 0 && minutes < 60):
		return []string{catalog.BrickRecovery, catalog.BrickAerobic}
	}
	return []string{catalog.BrickRecovery, catalog.BrickAerobic, catalog.BrickTempo, catalog.BrickSpeed}
}

// brickDescriptions enhances each generated brick with wording specific to
// the current category and tier.
var brickDescriptions = map[string]map[string]string{
	workout.CategoryTempo: {
		catalog.BrickTempo:   "Keeps today's threshold stimulus while halving the impact.",
		catalog.BrickAerobic: "A gentler aerobic take on today's tempo day.",
	},
	workout.CategoryInterval: {
		catalog.BrickSpeed:   "Keeps the hard-repeat stimulus with most of the work off your legs.",
		catalog.BrickAerobic: "Trades today's repeats for steady aerobic work plus a transition run.",
	},
	workout.CategoryLongRun: {
		catalog.BrickAerobic: "Banks aerobic volume toward today's long run with less pounding.",
	},
	workout.CategoryHill: {
		catalog.BrickTempo: "Sustained resistance work standing in for today's climbing.",
	},
}

const genericBrickDescription = "A combined session in place of today's workout."

func (e *Engine) brickAlternatives(cur *workout.Resolved, profile Profile) workout.AlternativeCategory {
	cat := workout.AlternativeCategory{
		ID:       "brick",
		Title:    "Brick Workout",
		Subtitle: fmt.Sprintf("Run + %s combinations", profile.Equipment),
		Icon:     "square.stack",
	}
	gen := e.catalogs.Brick()
	if gen == nil {
		return cat
	}
	current := workout.CanonicalCategory(cur.Category)

	for _, tier := range brickTiers(cur.Distance, extractMinutes(cur.Duration)) {
		tmpl := gen.Generate(catalog.BrickRequest{
			Intensity:  tier,
			Equipment:  profile.Equipment,
			Difficulty: "intermediate",
		})
		if tmpl == nil {
			continue
		}
		enhanced := genericBrickDescription
		if byTier, ok := brickDescriptions[current]; ok {
			if d, ok := byTier[tier]; ok {
				enhanced = d
			}
		}
		duration := tmpl.Duration
		if duration == "" {
			duration = defaultDuration
		}
		cat.Options = append(cat.Options, workout.Option{
			Name:        tmpl.Name,
			Description: strings.TrimSpace(tmpl.Description + " " + enhanced),
			Duration:    duration,
			Intensity:   tmpl.Intensity,
			Equipment:   profile.Equipment,
			Source:      workout.SourceLibrary,
			Library:     "brick",
		})
	}
	return cat
}
