package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Port         string
	RelayURL     string
	DeployDomain string
	Provider     string
	HistoryPath  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		RelayURL:     strings.TrimSpace(os.Getenv("VOICETYPE_RELAY_URL")),
		DeployDomain: strings.TrimSpace(os.Getenv("VOICETYPE_DEPLOY_DOMAIN")),
		Provider:     getEnv("VOICETYPE_PROVIDER", "openai"),
		HistoryPath:  getEnv("VOICETYPE_HISTORY_FILE", defaultHistoryPath()),
	}
	return cfg, nil
}

// RelayBaseURL derives the relay origin. Production relays are reachable on
// the deployment domain without an explicit port, so none is added here.
func (c *Config) RelayBaseURL() string {
	if c.RelayURL != "" {
		return strings.TrimRight(c.RelayURL, "/")
	}
	if c.DeployDomain != "" {
		return "https://" + strings.TrimRight(c.DeployDomain, "/")
	}
	return ""
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.json"
	}
	return filepath.Join(home, ".voicetype", "history.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
