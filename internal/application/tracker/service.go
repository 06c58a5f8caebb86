// Package tracker records daily health metrics and aggregates them.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	repo "github.com/oksasatya/smart-health-api/internal/domain/repository"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 90

	// LowWaterML is the intake below which a day counts as low on water.
	LowWaterML = 1500
)

var ErrInvalidLog = errors.New("invalid daily log")

type RecordInput struct {
	Date           time.Time
	Steps          int
	WaterIntakeML  int
	SleepHours     float64
	Mood           string
	CaloriesBurned int
	HeartRateAvg   int
}

type Service struct {
	Logs   repo.DailyLogRepository
	Logger *logrus.Logger
	now    func() time.Time
}

func NewService(logs repo.DailyLogRepository, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Service{Logs: logs, Logger: logger, now: time.Now}
}

// Record stores one day of metrics. A second record for the same day
// replaces the first.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (*entity.DailyLog, error) {
	mood, err := entity.ParseMood(in.Mood)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}
	today := day(s.now())
	date := today
	if !in.Date.IsZero() {
		date = day(in.Date)
	}
	if date.After(today) {
		return nil, fmt.Errorf("%w: date is in the future", ErrInvalidLog)
	}
	if err := checkRanges(in); err != nil {
		return nil, err
	}

	l := &entity.DailyLog{
		ID:             uuid.NewString(),
		UserID:         userID,
		Date:           date,
		Steps:          in.Steps,
		WaterIntakeML:  in.WaterIntakeML,
		SleepHours:     in.SleepHours,
		Mood:           mood,
		CaloriesBurned: in.CaloriesBurned,
		HeartRateAvg:   in.HeartRateAvg,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.Logs.Create(ctx, l); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("store daily log failed")
		return nil, err
	}
	return l, nil
}

func checkRanges(in RecordInput) error {
	switch {
	case in.Steps < 0 || in.Steps > 100000:
		return fmt.Errorf("%w: steps out of range", ErrInvalidLog)
	case in.WaterIntakeML < 0 || in.WaterIntakeML > 10000:
		return fmt.Errorf("%w: water intake out of range", ErrInvalidLog)
	case in.SleepHours < 0 || in.SleepHours > 24 || math.IsNaN(in.SleepHours):
		return fmt.Errorf("%w: sleep hours out of range", ErrInvalidLog)
	case in.CaloriesBurned < 0 || in.CaloriesBurned > 20000:
		return fmt.Errorf("%w: calories out of range", ErrInvalidLog)
	case in.HeartRateAvg != 0 && (in.HeartRateAvg < 30 || in.HeartRateAvg > 220):
		return fmt.Errorf("%w: heart rate out of range", ErrInvalidLog)
	}
	return nil
}

// Recent returns the last days of logs including today, oldest first.
func (s *Service) Recent(ctx context.Context, userID string, days int) ([]*entity.DailyLog, error) {
	days = clampWindow(days)
	since := day(s.now()).AddDate(0, 0, -(days - 1))
	return s.Logs.ListSince(ctx, userID, since)
}

func (s *Service) Summary(ctx context.Context, userID string, days int) (entity.WeeklySummary, error) {
	logs, err := s.Recent(ctx, userID, days)
	if err != nil {
		return entity.WeeklySummary{}, err
	}
	return Summarize(logs), nil
}

// Summarize averages logs; an empty slice gives a zero summary.
func Summarize(logs []*entity.DailyLog) entity.WeeklySummary {
	if len(logs) == 0 {
		return entity.WeeklySummary{}
	}
	var steps, water int
	var sleep float64
	var lowTired int
	for _, l := range logs {
		steps += l.Steps
		water += l.WaterIntakeML
		sleep += l.SleepHours
		if l.Mood == entity.MoodTired && l.WaterIntakeML < LowWaterML {
			lowTired++
		}
	}
	n := len(logs)
	return entity.WeeklySummary{
		Days:              n,
		AvgSteps:          steps / n,
		AvgSleepHours:     math.Round(sleep/float64(n)*10) / 10,
		AvgWaterML:        water / n,
		LowWaterTiredDays: lowTired,
	}
}

func clampWindow(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
