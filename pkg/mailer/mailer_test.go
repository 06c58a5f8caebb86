package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

type capturePublisher struct {
	bodies [][]byte
}

func (c *capturePublisher) PublishJSON(_ context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	c.bodies = append(c.bodies, b)
	return nil
}

type captureSender struct {
	to, subject, text, html string
	err                     error
}

func (c *captureSender) Send(_ context.Context, to, subject, text, html string) error {
	c.to, c.subject, c.text, c.html = to, subject, text, html
	return c.err
}

func TestWelcomeJobRendersAndSends(t *testing.T) {
	pub := &capturePublisher{}
	q := NewWelcomeQueue(pub, "Smart Health", "https://health.example/#/", "")

	err := q.NotifyWelcome(context.Background(), &entity.Identity{ID: "u7", Name: "Priya", Email: "priya@x.com", Role: entity.RoleDoctor})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)

	s := &captureSender{}
	require.NoError(t, Deliver(context.Background(), s, pub.bodies[0]))
	assert.Equal(t, "priya@x.com", s.to)
	assert.Equal(t, "Welcome to Smart Health, Priya", s.subject)
	assert.Contains(t, s.text, "You signed up as doctor.")
	assert.Contains(t, s.text, "https://health.example/#/")
	assert.NotContains(t, s.text, "Need help?")
	assert.Contains(t, s.html, "<strong>priya@x.com</strong>")
}

func TestNotifyWelcomeNeedsEmail(t *testing.T) {
	q := NewWelcomeQueue(&capturePublisher{}, "", "", "")
	assert.ErrorIs(t, q.NotifyWelcome(context.Background(), &entity.Identity{Name: "x"}), ErrNoRecipient)
}

func TestDeliverPermanentFailures(t *testing.T) {
	s := &captureSender{}
	cases := map[string]string{
		"bad json":         "{",
		"no recipient":     `{"subject":"hi"}`,
		"unknown template": `{"to":"a@b.c","template":"nope"}`,
		"no subject":       `{"to":"a@b.c","text":"body"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, Deliver(context.Background(), s, []byte(body)), ErrPermanent)
		})
	}
}

func TestDeliverPlainJobAndSendError(t *testing.T) {
	boom := errors.New("mailgun 503")
	s := &captureSender{err: boom}
	err := Deliver(context.Background(), s, []byte(`{"to":"a@b.c","subject":"Hi","text":"hello"}`))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrPermanent)
	assert.Equal(t, "Hi", s.subject)
}
