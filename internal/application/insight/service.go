// Package insight produces one-shot advice and reports from tracked data.
// It shares nothing with the assistant conversations.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

const (
	InsightFallback      = "Based on your data: Try to increase water intake on weekends and aim for consistent sleep schedules."
	InsightEmptyFallback = "Drink more water!"
	ReportEmptyFallback  = "Unable to generate report."
	ReportErrorFallback  = "Error generating report. Please try again later."
)

var (
	ErrEmptyReport       = errors.New("report text is empty")
	ErrExportUnavailable = errors.New("report export is not configured")
)

// DemoSummary stands in when a patient has not logged anything yet.
var DemoSummary = entity.WeeklySummary{
	Days:              7,
	AvgSteps:          7000,
	AvgSleepHours:     7.5,
	AvgWaterML:        2000,
	LowWaterTiredDays: 1,
}

// Completer runs a single prompt with no conversation state.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Uploader stores an object and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type Service struct {
	Completer Completer
	Uploader  Uploader
	Logger    *logrus.Logger
}

func NewService(completer Completer, uploader Uploader, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Service{Completer: completer, Uploader: uploader, Logger: logger}
}

// InsightPrompt renders the weekly summary into the advice prompt.
func InsightPrompt(s entity.WeeklySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this weekly health summary: Avg Steps %d, Avg Sleep %.1fhrs, Water %dml.", s.AvgSteps, s.AvgSleepHours, s.AvgWaterML)
	if s.LowWaterTiredDays > 0 {
		b.WriteString(" The user feels tired on days with low water.")
	}
	b.WriteString(" Provide 2 concise sentences of advice.")
	return b.String()
}

func ReportPrompt(logs []entity.DailyLog) (string, error) {
	data, err := json.Marshal(logs)
	if err != nil {
		return "", err
	}
	return "Analyze this health data and provide a brief summary of risks and 3 recommendations: " + string(data), nil
}

// RequestInsight never fails. A failed call yields InsightFallback and an
// empty answer InsightEmptyFallback.
func (s *Service) RequestInsight(ctx context.Context, summary entity.WeeklySummary) string {
	if summary.Days == 0 {
		summary = DemoSummary
	}
	if s.Completer == nil {
		return InsightFallback
	}
	text, err := s.Completer.Complete(ctx, InsightPrompt(summary))
	if err != nil {
		s.Logger.WithError(err).Warn("insight generation failed")
		return InsightFallback
	}
	if strings.TrimSpace(text) == "" {
		return InsightEmptyFallback
	}
	return text
}

// RequestReport distinguishes an empty answer from a failed call.
func (s *Service) RequestReport(ctx context.Context, logs []entity.DailyLog) string {
	if s.Completer == nil {
		return ReportErrorFallback
	}
	prompt, err := ReportPrompt(logs)
	if err != nil {
		s.Logger.WithError(err).Warn("encode report data failed")
		return ReportErrorFallback
	}
	text, err := s.Completer.Complete(ctx, prompt)
	if err != nil {
		s.Logger.WithError(err).Warn("report generation failed")
		return ReportErrorFallback
	}
	if strings.TrimSpace(text) == "" {
		return ReportEmptyFallback
	}
	return text
}

// ExportReport uploads text under reports/<owner>/ and returns its URL.
func (s *Service) ExportReport(ctx context.Context, ownerID, text string) (string, error) {
	if s.Uploader == nil {
		return "", ErrExportUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReport
	}
	path := fmt.Sprintf("reports/%s/%s.txt", ownerID, uuid.NewString())
	url, err := s.Uploader.Upload(ctx, path, "text/plain; charset=utf-8", strings.NewReader(text))
	if err != nil {
		s.Logger.WithError(err).WithField("owner", ownerID).Error("export report failed")
		return "", fmt.Errorf("upload report: %w", err)
	}
	return url, nil
}
