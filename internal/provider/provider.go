package provider

import (
	"fmt"
	"strings"
)

// Provider identifies a speech-to-text / completion service.
type Provider string

const (
	OpenAI Provider = "openai"
	Groq   Provider = "groq"
)

// Parse normalizes a provider tag from config or a request body.
func Parse(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return OpenAI, nil
	case "groq":
		return Groq, nil
	default:
		return "", fmt.Errorf("unsupported provider: %q. Supported: openai, groq", s)
	}
}

// APIBase returns the provider's OpenAI-compatible API base URL.
func (p Provider) APIBase() string {
	switch p {
	case Groq:
		return "https://api.groq.com/openai/v1"
	default:
		return "https://api.openai.com/v1"
	}
}

// TranscriptionModel returns the fixed speech-to-text model for the provider.
func (p Provider) TranscriptionModel() string {
	switch p {
	case Groq:
		return "whisper-large-v3-turbo"
	default:
		return "whisper-1"
	}
}

// ChatModel returns the fixed completion model used for transcript polishing.
func (p Provider) ChatModel() string {
	switch p {
	case Groq:
		return "llama-3.3-70b-versatile"
	default:
		return "gpt-4o-mini"
	}
}

func (p Provider) String() string {
	return string(p)
}
