package assistant

import (
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

// SystemInstruction configures every chat handle.
const SystemInstruction = `You are a Smart Health Assistant.
Your goal is to provide general wellness advice, explain medical terms simply, and offer lifestyle tips.

CRITICAL RULES:
1. If the user asks for a diagnosis or specific medication, strictly state: "I am an AI assistant, not a doctor. Please consult a healthcare professional for diagnosis and treatment."
2. Be empathetic, professional, and encouraging.
3. You support two languages: English and Tamil. If the user asks in Tamil or requests Tamil, reply in Tamil.
4. Keep answers concise (under 150 words) unless asked for a detailed report.
`

const (
	Greeting      = "Hello! I am your AI Health Assistant. How can I help you today? (Try asking in Tamil!)"
	FallbackReply = "I'm having trouble connecting right now. Please try again."

	tamilSuffix = " (Please reply in Tamil)"
)

// BuildPrompt turns user text into the outbound prompt. Only the prompt
// carries the language request; history keeps the literal text.
func BuildPrompt(text string, lang entity.Language) string {
	switch lang {
	case entity.LanguageTamil:
		return text + tamilSuffix
	case entity.LanguageEnglish:
		return text
	default:
		return text
	}
}
