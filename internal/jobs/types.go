package jobs

// TaskPrecomputeAlternatives rebuilds the cached alternative list for one
// scheduled workout.
const TaskPrecomputeAlternatives = "plan:precompute_alternatives"

type PrecomputeAlternativesPayload struct {
	AthleteID      string `json:"athlete_id"`
	WorkoutName    string `json:"workout_name"`
	Category       string `json:"category"`
	Day            string `json:"day,omitempty"`
	Week           int    `json:"week,omitempty"`
	WeatherExtreme bool   `json:"weather_extreme,omitempty"`
}
