package polish

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"voicetype/internal/provider"
	"voicetype/internal/transcribe"
)

// systemPrompt is the fixed editing instruction sent with every polish call.
const systemPrompt = `You are a transcription editor. Fix punctuation, capitalization, and obvious speech-to-text errors in the user's text. Preserve the speaker's wording and meaning; do not add or remove content. Return only the corrected text with no commentary.`

const (
	temperature = 0.1
	maxTokens   = 2048
)

// Polisher refines a raw transcript through a completion model.
type Polisher interface {
	Polish(ctx context.Context, apiKey string, p provider.Provider, text string) (string, error)
}

// BestEffort runs the polisher and substitutes the raw text on any failure.
// Polishing is an enhancement: its unavailability must never block the user
// from getting a usable transcript, so no error class propagates from here.
func BestEffort(ctx context.Context, polisher Polisher, apiKey string, p provider.Provider, text string) (string, bool) {
	refined, err := polisher.Polish(ctx, apiKey, p, text)
	if err != nil {
		log.Printf("[Polish] warning: polishing failed, using raw transcript: %v", err)
		return text, false
	}
	refined = strings.TrimSpace(refined)
	if refined == "" {
		log.Printf("[Polish] warning: empty polished text, using raw transcript")
		return text, false
	}
	return refined, true
}

// DirectPolisher calls the provider's completion endpoint with the caller's
// credential.
type DirectPolisher struct {
	// BaseURL overrides the provider API base, for tests.
	BaseURL string

	// Timeout overrides transcribe.PolishTimeout when positive, for tests.
	Timeout time.Duration
}

func (d *DirectPolisher) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return transcribe.PolishTimeout
}

func (d *DirectPolisher) Polish(ctx context.Context, apiKey string, p provider.Provider, text string) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = d.BaseURL
	if cfg.BaseURL == "" {
		cfg.BaseURL = p.APIBase()
	}
	client := openai.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(ctx, d.timeout())
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.ChatModel(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	// A payload without the expected content field yields an empty string;
	// callers fall back to the original text.
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
