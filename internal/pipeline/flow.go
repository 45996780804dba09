package pipeline

import (
	"context"
	"log"
	"time"

	"voicetype/internal/keystore"
	"voicetype/internal/polish"
	"voicetype/internal/provider"
	"voicetype/internal/transcribe"
)

// Flow sequences one voice-typing operation: acquire credential, transcribe,
// then polish. Transcription errors fail the operation; polishing is
// best-effort and never does.
type Flow struct {
	Keys        keystore.Store
	Transcriber *transcribe.Client
	Polisher    polish.Polisher
}

// Result is the outcome of a completed flow. Clipboard and history side
// effects belong to the caller.
type Result struct {
	Text     string
	Polished bool
	Provider provider.Provider
	Elapsed  time.Duration
}

// Run executes the flow for one recorded clip. Each invocation builds its own
// payload and timers; concurrent runs are independent.
func (f *Flow) Run(ctx context.Context, audioPath string, p provider.Provider) (*Result, error) {
	start := time.Now()

	apiKey, ok := f.Keys.APIKey(p)
	if !ok {
		log.Printf("[Flow] no credential configured for %s", p)
		return nil, &transcribe.NoCredentialError{Provider: p}
	}

	log.Printf("[Flow] transcribing %s via %s", audioPath, p)
	transcript, err := f.Transcriber.Transcribe(ctx, transcribe.Request{
		AudioPath: audioPath,
		Provider:  p,
		APIKey:    apiKey,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Flow] polishing transcript (%d chars)", len(transcript))
	text, polished := polish.BestEffort(ctx, f.Polisher, apiKey, p, transcript)

	log.Printf("[Flow] complete: polished=%t, length=%d, elapsed=%v", polished, len(text), time.Since(start))
	return &Result{
		Text:     text,
		Polished: polished,
		Provider: p,
		Elapsed:  time.Since(start),
	}, nil
}
