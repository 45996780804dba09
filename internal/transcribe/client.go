package transcribe

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"
)

// Operation budgets. Each bounds one logical operation, not a retry loop:
// a single attempt either completes, fails, or times out, and the caller
// decides whether to re-invoke.
const (
	TranscribeTimeout = 60 * time.Second
	PolishTimeout     = 30 * time.Second
)

// Client performs one transcription call over the injected transport.
type Client struct {
	Transport  Transport
	HTTPClient *http.Client

	// Timeout overrides TranscribeTimeout when positive, for tests.
	Timeout time.Duration
}

// NewClient returns a transcription client over the given transport.
func NewClient(transport Transport) *Client {
	return &Client{
		Transport:  transport,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return TranscribeTimeout
}

// Transcribe reads the audio resource, ships it over the transport, and
// returns the transcript text. A 200 reply with an empty or whitespace-only
// transcript is a failure, never an empty success.
func (c *Client) Transcribe(ctx context.Context, req Request) (string, error) {
	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return "", &PayloadError{Reason: "failed to read audio file", Err: err}
	}
	if err := CheckAudio(audio); err != nil {
		return "", err
	}

	log.Printf("[Transcribe] provider=%s transport=%s size=%d bytes",
		req.Provider, c.Transport.Name(), len(audio))

	start := time.Now()
	status, body, err := DoRequest(ctx, c.HTTPClient, "Transcription", c.timeout(),
		func(ctx context.Context) (*http.Request, error) {
			return c.Transport.NewRequest(ctx, req, audio)
		})
	if err != nil {
		return "", err
	}

	if status < 200 || status >= 300 {
		message := Classify(status, body)
		log.Printf("[Transcribe] upstream error: status=%d", status)
		return "", &UpstreamError{Status: status, Message: message}
	}

	transcript, err := c.Transport.ParseTranscript(body)
	if err != nil {
		return "", &UpstreamError{Status: status, Message: "Transcription returned an unreadable response. Please try again."}
	}
	if transcript == "" {
		log.Printf("[Transcribe] empty transcript returned")
		return "", &UpstreamError{Status: status, Message: "No speech detected. Please try again."}
	}

	log.Printf("[Transcribe] success: length=%d, duration=%v", len(transcript), time.Since(start))
	return transcript, nil
}
