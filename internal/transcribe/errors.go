package transcribe

import (
	"fmt"
	"time"

	"voicetype/internal/provider"
)

// NoCredentialError means no API key is configured for the active provider.
// It is raised before any payload is built or network call attempted.
type NoCredentialError struct {
	Provider provider.Provider
}

func (e *NoCredentialError) Error() string {
	return fmt.Sprintf("no API key configured for %s. Please add your key in Settings.", e.Provider)
}

// PayloadError means the audio resource could not be turned into a valid
// request body: unreadable, or implausibly small.
type PayloadError struct {
	Reason string
	Err    error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid audio payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid audio payload: %s", e.Reason)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// TimeoutError means an operation exceeded its wall-clock budget. The
// in-flight request has been aborted by the time the error is returned.
type TimeoutError struct {
	Op     string
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s. Please check your internet connection and try again.", e.Op, e.Budget)
}

// UpstreamError is a non-2xx reply from the provider or the relay. Message
// holds the classified, user-facing text.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// TransportError is a network-level failure (DNS, connection reset) distinct
// from a classified HTTP error.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: network error. Please check your internet connection.", e.Op)
}

func (e *TransportError) Unwrap() error { return e.Err }
