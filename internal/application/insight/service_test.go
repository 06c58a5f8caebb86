package insight

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

type fakeCompleter struct {
	text   string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

type fakeUploader struct {
	path, contentType, body string
	err                     error
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, _ := io.ReadAll(r)
	f.path, f.contentType, f.body = objectPath, contentType, string(b)
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.example/" + objectPath, nil
}

func TestRequestInsight(t *testing.T) {
	ctx := context.Background()

	c := &fakeCompleter{text: "Drink water. Sleep early."}
	s := NewService(c, nil, nil)
	assert.Equal(t, "Drink water. Sleep early.", s.RequestInsight(ctx, entity.WeeklySummary{}))
	assert.Equal(t, "Analyze this weekly health summary: Avg Steps 7000, Avg Sleep 7.5hrs, Water 2000ml. The user feels tired on days with low water. Provide 2 concise sentences of advice.", c.prompt)

	s = NewService(&fakeCompleter{err: errors.New("down")}, nil, nil)
	assert.Equal(t, InsightFallback, s.RequestInsight(ctx, DemoSummary))

	s = NewService(&fakeCompleter{text: "  "}, nil, nil)
	assert.Equal(t, InsightEmptyFallback, s.RequestInsight(ctx, DemoSummary))

	s = NewService(nil, nil, nil)
	assert.Equal(t, InsightFallback, s.RequestInsight(ctx, DemoSummary))
}

func TestInsightPromptOmitsTirednessWhenAbsent(t *testing.T) {
	p := InsightPrompt(entity.WeeklySummary{Days: 3, AvgSteps: 9000, AvgSleepHours: 8, AvgWaterML: 2500})
	assert.NotContains(t, p, "tired")
	assert.Contains(t, p, "Avg Steps 9000")
}

func TestRequestReport(t *testing.T) {
	ctx := context.Background()
	logs := []entity.DailyLog{{UserID: "u1", Steps: 4000, Mood: entity.MoodTired}}

	c := &fakeCompleter{text: "Low activity."}
	assert.Equal(t, "Low activity.", NewService(c, nil, nil).RequestReport(ctx, logs))
	assert.True(t, strings.HasPrefix(c.prompt, "Analyze this health data and provide a brief summary of risks and 3 recommendations: ["))
	assert.Contains(t, c.prompt, `"steps":4000`)

	assert.Equal(t, ReportEmptyFallback, NewService(&fakeCompleter{}, nil, nil).RequestReport(ctx, logs))
	assert.Equal(t, ReportErrorFallback, NewService(&fakeCompleter{err: errors.New("x")}, nil, nil).RequestReport(ctx, logs))
}

func TestExportReport(t *testing.T) {
	up := &fakeUploader{}
	s := NewService(nil, up, nil)

	url, err := s.ExportReport(context.Background(), "u1", "All good.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.path, "reports/u1/"))
	assert.True(t, strings.HasSuffix(up.path, ".txt"))
	assert.Equal(t, "All good.", up.body)
	assert.Equal(t, "https://storage.example/"+up.path, url)

	_, err = s.ExportReport(context.Background(), "u1", " ")
	assert.ErrorIs(t, err, ErrEmptyReport)

	_, err = NewService(nil, nil, nil).ExportReport(context.Background(), "u1", "x")
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
