package entity

import (
	"errors"
	"strings"
	"time"
)

type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodNeutral  Mood = "Neutral"
	MoodStressed Mood = "Stressed"
	MoodTired    Mood = "Tired"
)

var ErrUnknownMood = errors.New("unknown mood")

func ParseMood(s string) (Mood, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "happy":
		return MoodHappy, nil
	case "neutral", "":
		return MoodNeutral, nil
	case "stressed":
		return MoodStressed, nil
	case "tired":
		return MoodTired, nil
	default:
		return "", ErrUnknownMood
	}
}

// DailyLog is one day of tracked metrics for a patient.
type DailyLog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Date           time.Time `json:"date"`
	Steps          int       `json:"steps"`
	WaterIntakeML  int       `json:"water_intake_ml"`
	SleepHours     float64   `json:"sleep_hours"`
	Mood           Mood      `json:"mood"`
	CaloriesBurned int       `json:"calories_burned"`
	HeartRateAvg   int       `json:"heart_rate_avg"`
	CreatedAt      time.Time `json:"created_at"`
}

// WeeklySummary aggregates daily logs for the insight prompt.
type WeeklySummary struct {
	Days              int     `json:"days"`
	AvgSteps          int     `json:"avg_steps"`
	AvgSleepHours     float64 `json:"avg_sleep_hours"`
	AvgWaterML        int     `json:"avg_water_ml"`
	LowWaterTiredDays int     `json:"low_water_tired_days"`
}
