package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestService() *Service {
	s := NewService(memory.NewDailyLogRepository(), nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestRecordDefaultsToToday(t *testing.T) {
	s := newTestService()
	l, err := s.Record(context.Background(), "u1", RecordInput{Steps: 8000, WaterIntakeML: 2000, SleepHours: 7})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), l.Date)
	assert.Equal(t, entity.MoodNeutral, l.Mood)
	assert.NotEmpty(t, l.ID)
}

func TestRecordRejectsBadInput(t *testing.T) {
	s := newTestService()
	cases := map[string]RecordInput{
		"negative steps": {Steps: -1},
		"too much water": {WaterIntakeML: 20000},
		"sleep over day": {SleepHours: 25},
		"heart rate":     {HeartRateAvg: 10},
		"negative cals":  {CaloriesBurned: -5},
		"unknown mood":   {Mood: "Ecstatic"},
		"future date":    {Date: fixedNow.AddDate(0, 0, 1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Record(context.Background(), "u1", in)
			assert.ErrorIs(t, err, ErrInvalidLog)
		})
	}
}

func TestRecordSameDayReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	_, err := s.Record(ctx, "u1", RecordInput{Steps: 1000})
	require.NoError(t, err)
	_, err = s.Record(ctx, "u1", RecordInput{Steps: 5000})
	require.NoError(t, err)

	logs, err := s.Recent(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 5000, logs[0].Steps)
}

func TestRecentWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	for i := 0; i < 10; i++ {
		_, err := s.Record(ctx, "u1", RecordInput{Date: fixedNow.AddDate(0, 0, -i), Steps: i})
		require.NoError(t, err)
	}
	_, err := s.Record(ctx, "u2", RecordInput{Steps: 99})
	require.NoError(t, err)

	logs, err := s.Recent(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, logs, DefaultWindowDays)
	assert.Equal(t, 6, logs[0].Steps)
	assert.Equal(t, 0, logs[len(logs)-1].Steps)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	inputs := []RecordInput{
		{Date: fixedNow, Steps: 6000, WaterIntakeML: 1000, SleepHours: 6, Mood: "Tired"},
		{Date: fixedNow.AddDate(0, 0, -1), Steps: 8000, WaterIntakeML: 2500, SleepHours: 8, Mood: "Tired"},
		{Date: fixedNow.AddDate(0, 0, -2), Steps: 10000, WaterIntakeML: 2500, SleepHours: 7.5, Mood: "Happy"},
	}
	for _, in := range inputs {
		_, err := s.Record(ctx, "u1", in)
		require.NoError(t, err)
	}

	sum, err := s.Summary(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Days)
	assert.Equal(t, 8000, sum.AvgSteps)
	assert.Equal(t, 2000, sum.AvgWaterML)
	assert.InDelta(t, 7.2, sum.AvgSleepHours, 0.001)
	assert.Equal(t, 1, sum.LowWaterTiredDays)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, entity.WeeklySummary{}, Summarize(nil))
}
