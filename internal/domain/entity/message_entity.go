package entity

import (
	"errors"
	"strings"
	"time"
)

// MessageRole identifies who authored a conversation message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Language is the reply language requested from the assistant.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
)

var ErrUnknownLanguage = errors.New("unknown language")

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageTamil:
		return LanguageTamil, nil
	default:
		return "", ErrUnknownLanguage
	}
}

// Message is one entry of a conversation history. Messages are never
// edited once appended.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}
