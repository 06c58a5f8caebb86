// Package assistant runs conversations between a user and the health
// assistant model.
package assistant

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrSendInFlight = errors.New("a message is already being sent")
	ErrNoChatHandle = errors.New("chat session unavailable")
	ErrEmptyReply   = errors.New("model returned empty text")
)

var stats = expvar.NewMap("assistant")

// Generator opens chat sessions on the generation service.
type Generator interface {
	NewSession(ctx context.Context, systemInstruction string) (ChatHandle, error)
}

// ChatHandle keeps the service-side context of one conversation.
type ChatHandle interface {
	SendTurn(ctx context.Context, prompt string) (string, error)
}

type OutcomeKind string

const (
	OutcomeReplied  OutcomeKind = "replied"
	OutcomeFallback OutcomeKind = "fallback"
)

// Outcome describes one completed send. Cause is set only for fallbacks
// and holds the upstream error.
type Outcome struct {
	Kind  OutcomeKind
	User  entity.Message
	Reply entity.Message
	Cause error
}

// Conversation is one assistant chat. At most one Send is in flight;
// concurrent callers are turned away with ErrSendInFlight rather than queued.
type Conversation struct {
	id        string
	handle    ChatHandle
	handleErr error
	logger    *logrus.Entry
	now       func() time.Time

	mu       sync.Mutex
	messages []entity.Message
	lang     entity.Language
	sending  bool
	seq      int
}

// New opens a chat handle and seeds the greeting. A handle that fails to
// open is logged; the conversation still works and answers with the
// fallback text.
func New(ctx context.Context, gen Generator, logger *logrus.Logger) *Conversation {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	c := &Conversation{
		id:   uuid.NewString(),
		lang: entity.LanguageEnglish,
		now:  time.Now,
	}
	c.logger = logger.WithField("conversation_id", c.id)
	if gen == nil {
		c.handleErr = ErrNoChatHandle
	} else if h, err := gen.NewSession(ctx, SystemInstruction); err != nil {
		c.handleErr = fmt.Errorf("%w: %w", ErrNoChatHandle, err)
		c.logger.WithError(err).Warn("open chat session failed")
	} else {
		c.handle = h
	}
	c.appendLocked(entity.MessageRoleAssistant, Greeting)
	return c
}

func (c *Conversation) ID() string { return c.id }

// Send appends text as a user message, asks the model and appends the
// reply verbatim. Upstream failures, and a reply with no text, become
// FallbackReply with Outcome.Cause set, never an error; an empty assistant
// bubble is never appended. The only errors are the two guards, which
// leave the conversation untouched.
func (c *Conversation) Send(ctx context.Context, text string) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		stats.Add("rejected", 1)
		return Outcome{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		stats.Add("rejected", 1)
		return Outcome{}, ErrSendInFlight
	}
	c.sending = true
	userMsg := c.appendLocked(entity.MessageRoleUser, text)
	prompt := BuildPrompt(text, c.lang)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	stats.Add("turns", 1)
	reply, err := c.dispatch(ctx, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		stats.Add("fallbacks", 1)
		c.logger.WithError(err).Warn("assistant reply failed, using fallback")
		return Outcome{
			Kind:  OutcomeFallback,
			User:  userMsg,
			Reply: c.appendLocked(entity.MessageRoleAssistant, FallbackReply),
			Cause: err,
		}, nil
	}
	return Outcome{
		Kind:  OutcomeReplied,
		User:  userMsg,
		Reply: c.appendLocked(entity.MessageRoleAssistant, reply),
	}, nil
}

func (c *Conversation) dispatch(ctx context.Context, prompt string) (string, error) {
	if c.handle == nil {
		return "", c.handleErr
	}
	text, err := c.handle.SendTurn(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// SetLanguage affects later sends only.
func (c *Conversation) SetLanguage(lang entity.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = lang
}

func (c *Conversation) Language() entity.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

func (c *Conversation) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Messages returns a snapshot of the history in insertion order.
func (c *Conversation) Messages() []entity.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) appendLocked(role entity.MessageRole, text string) entity.Message {
	c.seq++
	m := entity.Message{
		ID:        fmt.Sprintf("%s-%d", c.id, c.seq),
		Role:      role,
		Text:      text,
		Timestamp: c.now().UTC(),
	}
	c.messages = append(c.messages, m)
	return m
}
