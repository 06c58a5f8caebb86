// Package gemini adapts the Gemini API to the assistant and insight ports.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/oksasatya/smart-health-api/internal/application/assistant"
)

const DefaultModel = "gemini-3-flash-preview"

var ErrMissingAPIKey = errors.New("gemini api key is required")

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

func (c *Client) Model() string { return c.model }

// NewSession opens a multi-turn chat; the service keeps the history.
func (c *Client) NewSession(ctx context.Context, systemInstruction string) (assistant.ChatHandle, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	chat, err := c.client.Chats.Create(ctx, c.model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return &chatHandle{chat: chat}, nil
}

// Complete runs a single stateless generation.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return res.Text(), nil
}

type chatHandle struct {
	chat *genai.Chat
}

func (h *chatHandle) SendTurn(ctx context.Context, prompt string) (string, error) {
	res, err := h.chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("send chat message: %w", err)
	}
	return res.Text(), nil
}
