package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"voicetype/internal/provider"
)

// Request carries everything one transcription call needs. It is built per
// invocation and discarded after completion.
type Request struct {
	AudioPath string
	Provider  provider.Provider
	APIKey    string
}

// Transport decides how a transcription request reaches the provider:
// directly, or through the application's own backend relay for environments
// that cannot make cross-origin calls to third-party APIs. A Transport is
// selected once per call by the caller, never cached.
type Transport interface {
	Name() string

	// NewRequest packages raw audio into this transport's wire format.
	NewRequest(ctx context.Context, req Request, audio []byte) (*http.Request, error)

	// ParseTranscript extracts the transcript text from a 2xx response body.
	ParseTranscript(body []byte) (string, error)
}

// DirectTransport calls the provider's own API with the caller's credential.
type DirectTransport struct {
	// BaseURL overrides the provider API base, for tests. Empty means the
	// provider's production base.
	BaseURL string
}

func (t *DirectTransport) Name() string { return "direct" }

func (t *DirectTransport) endpoint(p provider.Provider) string {
	base := t.BaseURL
	if base == "" {
		base = p.APIBase()
	}
	return strings.TrimRight(base, "/") + "/audio/transcriptions"
}

func (t *DirectTransport) NewRequest(ctx context.Context, req Request, audio []byte) (*http.Request, error) {
	ext := ContainerExt(req.AudioPath)
	body, contentType, err := BuildMultipart(audio, ext, MIMEType(ext), req.Provider.TranscriptionModel())
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(req.Provider), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	return httpReq, nil
}

// ParseTranscript handles the plain-text body that response_format=text yields.
func (t *DirectTransport) ParseTranscript(body []byte) (string, error) {
	return strings.TrimSpace(string(body)), nil
}

// RelayTransport sends the audio to the application's backend, which
// performs the multipart conversion and forwards to the provider. The
// credential travels in the request body; the relay never stores it.
type RelayTransport struct {
	// BaseURL is the relay origin, derived from the deployment domain.
	// It must not carry a development port.
	BaseURL string
}

func (t *RelayTransport) Name() string { return "relay" }

func (t *RelayTransport) NewRequest(ctx context.Context, req Request, audio []byte) (*http.Request, error) {
	envelope := BuildEnvelope(audio, req.APIKey, req.Provider, MIMEType(ContainerExt(req.AudioPath)))
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relay envelope: %w", err)
	}

	url := strings.TrimRight(t.BaseURL, "/") + "/api/transcribe"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// ParseTranscript decodes the relay's {text} success envelope.
func (t *RelayTransport) ParseTranscript(body []byte) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse relay response: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
