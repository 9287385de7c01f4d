package engine

import (
	"fmt"
	"strings"

	"github.com/stridelab/stride/workout"
)

// restDayAlternatives is the fixed five-category set offered when the
// scheduled session is a rest day. The equipment category appears only for
// athletes with a machine configured, with its wording substituted in.
func (e *Engine) restDayAlternatives(profile Profile) []workout.AlternativeCategory {
	cats := []workout.AlternativeCategory{
		{
			ID:       "light-easy",
			Title:    "Light & Easy",
			Subtitle: "Gentle movement that keeps the day restful",
			Icon:     "leaf",
			Options: []workout.Option{
				{Name: "Gentle Walk", Description: "A relaxed walk, ideally outside", Duration: "15-20 minutes", Intensity: "Very light", Source: workout.SourceCategory, Library: "rest"},
				{Name: "Easy Stroll + Stretch", Description: "Short walk followed by light full-body stretching", Duration: "20-25 minutes", Intensity: "Very light", Source: workout.SourceCategory, Library: "rest"},
				{Name: "Casual Bike Cruise", Description: "Flat, unhurried riding with no effort goal", Duration: "20-30 minutes", Intensity: "Very light", Source: workout.SourceCategory, Library: "rest"},
			},
		},
		{
			ID:       "active-recovery",
			Title:    "Active Recovery",
			Subtitle: "Help the legs absorb the week",
			Icon:     "heart",
			Options: []workout.Option{
				{Name: "Mobility Flow", Description: "Hips, ankles, and calves through full range of motion", Duration: "15 minutes", Intensity: "Recovery", Source: workout.SourceCategory, Library: "rest"},
				{Name: "Foam Rolling", Description: "Slow passes over quads, calves, and glutes", Duration: "10-15 minutes", Intensity: "Recovery", Source: workout.SourceCategory, Library: "rest"},
				{Name: "Restorative Yoga", Description: "Slow held poses with long exhales", Duration: "20-30 minutes", Intensity: "Recovery", Source: workout.SourceCategory, Library: "rest"},
			},
		},
	}

	if profile.HasEquipment() {
		name := capitalize(profile.Equipment)
		cats = append(cats, workout.AlternativeCategory{
			ID:       "equipment-easy",
			Title:    fmt.Sprintf("Easy %s", name),
			Subtitle: "Spin the legs without training stress",
			Icon:     "bicycle",
			Options: []workout.Option{
				{Name: fmt.Sprintf("Easy %s Spin", name), Description: fmt.Sprintf("Very light %s with minimal resistance", profile.Equipment), Duration: "15-20 minutes", Intensity: "Very easy", Equipment: profile.Equipment, Source: workout.SourceCategory, Library: "bike"},
				{Name: fmt.Sprintf("%s Flush", name), Description: fmt.Sprintf("High-cadence, zero-pressure %s to flush the legs", profile.Equipment), Duration: "10-15 minutes", Intensity: "Very easy", Equipment: profile.Equipment, Source: workout.SourceCategory, Library: "bike"},
			},
		})
	}

	cats = append(cats,
		workout.AlternativeCategory{
			ID:       "cross-training",
			Title:    "Cross-Training",
			Subtitle: "Move differently today",
			Icon:     "figure.pool.swim",
			Options: []workout.Option{
				{Name: "Easy Swim", Description: "Relaxed laps at whatever stroke feels smooth", Duration: "20-30 minutes", Intensity: "Easy", Source: workout.SourceCategory, Library: "bike"},
				{Name: "Core Routine", Description: "Planks, bridges, and dead bugs at an unhurried pace", Duration: "15 minutes", Intensity: "Light", Source: workout.SourceCategory, Library: "bike"},
				{Name: "Brisk Walk", Description: "A purposeful walk with good posture", Duration: "30 minutes", Intensity: "Light", Source: workout.SourceCategory, Library: "rest"},
			},
		},
		workout.AlternativeCategory{
			ID:       "short-sweet",
			Title:    "Short & Sweet",
			Subtitle: "Five to ten minutes still counts",
			Icon:     "clock",
			Options: []workout.Option{
				{Name: "5-Minute Mobility", Description: "One quick pass through hips and ankles", Duration: "5 minutes", Intensity: "Very light", Source: workout.SourceCategory, Library: "rest"},
				{Name: "10-Minute Walk", Description: "Around the block and back", Duration: "10 minutes", Intensity: "Very light", Source: workout.SourceCategory, Library: "rest"},
				{Name: "Breathing + Stretch", Description: "Five minutes of slow breathing, five of stretching", Duration: "10 minutes", Intensity: "Very light", Source: workout.SourceCategory, Library: "rest"},
			},
		},
	)
	return cats
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
