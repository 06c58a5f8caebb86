package mailer

import (
	"context"
	"errors"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or Subject/Text must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

var ErrNoRecipient = errors.New("email job has no recipient")

// JobPublisher puts a JSON job on the queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeQueue enqueues a welcome email for each new signup.
type WelcomeQueue struct {
	Publisher    JobPublisher
	AppName      string
	DashboardURL string
	SupportURL   string
}

func NewWelcomeQueue(p JobPublisher, appName, dashboardURL, supportURL string) *WelcomeQueue {
	return &WelcomeQueue{Publisher: p, AppName: appName, DashboardURL: dashboardURL, SupportURL: supportURL}
}

func (q *WelcomeQueue) NotifyWelcome(ctx context.Context, ident *entity.Identity) error {
	if ident.Email == "" {
		return ErrNoRecipient
	}
	data := templates.WelcomeData{
		Name:         ident.Name,
		Email:        ident.Email,
		Role:         string(ident.Role),
		AppName:      q.AppName,
		DashboardURL: q.DashboardURL,
		SupportURL:   q.SupportURL,
	}
	return q.Publisher.PublishJSON(ctx, EmailJob{
		To:       ident.Email,
		Template: templates.Welcome,
		Data:     data.Map(),
	})
}
