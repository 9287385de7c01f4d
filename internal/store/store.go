// Package store persists athlete profiles, applied replacements, and
// precomputed alternative lists in Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stridelab/stride/workout"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Store wraps a pgx pool with typed queries.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Athlete is one athlete profile row. The pace columns hold the same
// strings the engine's pace table accepts.
type Athlete struct {
	ID             uuid.UUID
	Name           string
	EasyPace       string
	ThresholdPace  string
	IntervalPace   string
	MarathonPace   string
	RacePace       string
	RaceDistance   string
	HRMax          int
	Equipment      string
	Level          string
	LastPrecompute time.Time
}

// Context builds the engine resolution context from the stored profile.
func (a Athlete) Context() workout.Context {
	entry := func(s string) workout.PaceEntry {
		if s == "" {
			return workout.PaceEntry{}
		}
		return workout.PaceEntry{Raw: s}
	}
	return workout.Context{
		Paces: workout.PaceTable{
			Easy:         entry(a.EasyPace),
			Threshold:    entry(a.ThresholdPace),
			Interval:     entry(a.IntervalPace),
			Marathon:     entry(a.MarathonPace),
			RacePace:     entry(a.RacePace),
			RaceDistance: a.RaceDistance,
		},
		Equipment: a.Equipment,
		Level:     a.Level,
	}
}

func (s *Store) GetAthlete(ctx context.Context, id uuid.UUID) (Athlete, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, easy_pace, threshold_pace, interval_pace, marathon_pace,
		       race_pace, race_distance, hr_max, equipment, level, last_precompute
		FROM athletes WHERE id = $1`, id)

	var a Athlete
	var easy, threshold, interval, marathon, race, raceDist, equipment, level pgtype.Text
	var hrMax pgtype.Int4
	var last pgtype.Timestamptz
	err := row.Scan(&a.ID, &a.Name, &easy, &threshold, &interval, &marathon,
		&race, &raceDist, &hrMax, &equipment, &level, &last)
	if errors.Is(err, pgx.ErrNoRows) {
		return Athlete{}, ErrNotFound
	}
	if err != nil {
		return Athlete{}, fmt.Errorf("get athlete: %w", err)
	}
	a.EasyPace = easy.String
	a.ThresholdPace = threshold.String
	a.IntervalPace = interval.String
	a.MarathonPace = marathon.String
	a.RacePace = race.String
	a.RaceDistance = raceDist.String
	a.HRMax = int(hrMax.Int32)
	a.Equipment = equipment.String
	a.Level = level.String
	a.LastPrecompute = last.Time
	return a, nil
}

func (s *Store) UpsertAthlete(ctx context.Context, a Athlete) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO athletes (id, name, easy_pace, threshold_pace, interval_pace,
		                      marathon_pace, race_pace, race_distance, hr_max, equipment, level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
		    name = EXCLUDED.name,
		    easy_pace = EXCLUDED.easy_pace,
		    threshold_pace = EXCLUDED.threshold_pace,
		    interval_pace = EXCLUDED.interval_pace,
		    marathon_pace = EXCLUDED.marathon_pace,
		    race_pace = EXCLUDED.race_pace,
		    race_distance = EXCLUDED.race_distance,
		    hr_max = EXCLUDED.hr_max,
		    equipment = EXCLUDED.equipment,
		    level = EXCLUDED.level`,
		a.ID, a.Name, text(a.EasyPace), text(a.ThresholdPace), text(a.IntervalPace),
		text(a.MarathonPace), text(a.RacePace), text(a.RaceDistance),
		pgtype.Int4{Int32: int32(a.HRMax), Valid: a.HRMax > 0},
		text(a.Equipment), text(a.Level))
	if err != nil {
		return fmt.Errorf("upsert athlete: %w", err)
	}
	return nil
}

// SaveReplacement records a replacement the athlete applied to a scheduled
// session, keyed by plan position so the latest one wins.
func (s *Store) SaveReplacement(ctx context.Context, athleteID uuid.UUID, r *workout.Resolved) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal replacement: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO replacements (athlete_id, week, day, workout, applied_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (athlete_id, week, day) DO UPDATE SET
		    workout = EXCLUDED.workout,
		    applied_at = EXCLUDED.applied_at`,
		athleteID, r.Week, r.Day, body)
	if err != nil {
		return fmt.Errorf("save replacement: %w", err)
	}
	return nil
}

// GetReplacement returns the replacement applied at a plan position, or
// ErrNotFound when the scheduled session stands.
func (s *Store) GetReplacement(ctx context.Context, athleteID uuid.UUID, week int, day string) (*workout.Resolved, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `
		SELECT workout FROM replacements
		WHERE athlete_id = $1 AND week = $2 AND day = $3`,
		athleteID, week, day).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get replacement: %w", err)
	}
	var r workout.Resolved
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("unmarshal replacement: %w", err)
	}
	return &r, nil
}

// SaveAlternatives caches a precomputed alternative list for one workout.
func (s *Store) SaveAlternatives(ctx context.Context, athleteID uuid.UUID, workoutName string, cats []workout.AlternativeCategory) error {
	body, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("marshal alternatives: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO alternative_cache (athlete_id, workout_name, alternatives, computed_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (athlete_id, workout_name) DO UPDATE SET
		    alternatives = EXCLUDED.alternatives,
		    computed_at = EXCLUDED.computed_at`,
		athleteID, workoutName, body)
	if err != nil {
		return fmt.Errorf("save alternatives: %w", err)
	}
	return nil
}

// GetAlternatives returns a cached alternative list no older than maxAge.
func (s *Store) GetAlternatives(ctx context.Context, athleteID uuid.UUID, workoutName string, maxAge time.Duration) ([]workout.AlternativeCategory, error) {
	var body []byte
	var computed pgtype.Timestamptz
	err := s.pool.QueryRow(ctx, `
		SELECT alternatives, computed_at FROM alternative_cache
		WHERE athlete_id = $1 AND workout_name = $2`,
		athleteID, workoutName).Scan(&body, &computed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alternatives: %w", err)
	}
	if maxAge > 0 && time.Since(computed.Time) > maxAge {
		return nil, ErrNotFound
	}
	var cats []workout.AlternativeCategory
	if err := json.Unmarshal(body, &cats); err != nil {
		return nil, fmt.Errorf("unmarshal alternatives: %w", err)
	}
	return cats, nil
}

// MarkPrecomputed stamps the athlete's last precompute time.
func (s *Store) MarkPrecomputed(ctx context.Context, athleteID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE athletes SET last_precompute = now() WHERE id = $1`, athleteID)
	if err != nil {
		return fmt.Errorf("mark precomputed: %w", err)
	}
	return nil
}

func text(v string) pgtype.Text {
	return pgtype.Text{String: v, Valid: v != ""}
}
