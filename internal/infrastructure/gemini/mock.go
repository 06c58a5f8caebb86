package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/smart-health-api/internal/application/assistant"
)

// Mock answers locally. It is used when no API key is configured so the
// API stays usable in development.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) NewSession(context.Context, string) (assistant.ChatHandle, error) {
	return &mockHandle{}, nil
}

func (m *Mock) Complete(_ context.Context, prompt string) (string, error) {
	if strings.HasPrefix(prompt, "Analyze this health data") {
		return "No major risks stand out. 1. Keep walking daily. 2. Drink water regularly. 3. Keep a steady sleep schedule.", nil
	}
	return "Your activity looks steady. Keep your water intake consistent, especially on low-energy days.", nil
}

type mockHandle struct {
	turns int
}

func (h *mockHandle) SendTurn(_ context.Context, prompt string) (string, error) {
	h.turns++
	return fmt.Sprintf("(offline assistant, turn %d) You said %q. Please consult a healthcare professional for anything specific.", h.turns, prompt), nil
}
