package polish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voicetype/internal/provider"
	"voicetype/internal/transcribe"
)

// RelayPolisher forwards the polish request through the application's
// backend for environments that cannot call the provider directly.
type RelayPolisher struct {
	BaseURL    string
	HTTPClient *http.Client

	// Timeout overrides transcribe.PolishTimeout when positive, for tests.
	Timeout time.Duration
}

// relayPolishRequest is the relay wire format for POST /api/polish.
type relayPolishRequest struct {
	APIKey   string `json:"apiKey"`
	Provider string `json:"provider"`
	Text     string `json:"text"`
}

func (r *RelayPolisher) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return transcribe.PolishTimeout
}

func (r *RelayPolisher) Polish(ctx context.Context, apiKey string, p provider.Provider, text string) (string, error) {
	payload, err := json.Marshal(relayPolishRequest{
		APIKey:   apiKey,
		Provider: p.String(),
		Text:     text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal polish request: %w", err)
	}

	url := strings.TrimRight(r.BaseURL, "/") + "/api/polish"
	status, body, err := transcribe.DoRequest(ctx, r.HTTPClient, "Polish", r.timeout(),
		func(ctx context.Context) (*http.Request, error) {
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
			if err != nil {
				return nil, fmt.Errorf("failed to create request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")
			return httpReq, nil
		})
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("polish relay returned status %d: %s", status, body)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse polish response: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return "", fmt.Errorf("polish relay returned empty text")
	}
	return parsed.Text, nil
}
