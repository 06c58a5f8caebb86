package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oksasatya/smart-health-api/pkg/mailer/templates"
)

// ErrPermanent marks a job that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email job failure")

// Deliver decodes one queued job, renders its template and sends it.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrPermanent, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: %w", ErrPermanent, ErrNoRecipient)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %w", ErrPermanent, job.Template, err)
		}
	}
	if subject == "" {
		return fmt.Errorf("%w: empty subject", ErrPermanent)
	}
	return s.Send(ctx, job.To, subject, text, html)
}
