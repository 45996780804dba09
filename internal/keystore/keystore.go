package keystore

import (
	"os"
	"strings"

	"voicetype/internal/provider"
)

// Store supplies provider credentials. Implementations are read-only to the
// rest of the application; keys must never be logged.
type Store interface {
	// APIKey returns the configured key for a provider, and whether one exists.
	APIKey(p provider.Provider) (string, bool)
}

// EnvStore reads credentials from environment variables
// (OPENAI_API_KEY, GROQ_API_KEY).
type EnvStore struct{}

func (EnvStore) APIKey(p provider.Provider) (string, bool) {
	var key string
	switch p {
	case provider.Groq:
		key = os.Getenv("GROQ_API_KEY")
	default:
		key = os.Getenv("OPENAI_API_KEY")
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}

// StaticStore holds fixed credentials, mainly for tests.
type StaticStore map[provider.Provider]string

func (s StaticStore) APIKey(p provider.Provider) (string, bool) {
	key, ok := s[p]
	return key, ok && key != ""
}
