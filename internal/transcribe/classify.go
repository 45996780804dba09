package transcribe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// upstreamErrorBody is the JSON error envelope both providers and the relay
// use on failure.
type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// errorText extracts the most useful error text from a failed response body:
// the parsed JSON error.message when present, otherwise the raw text.
func errorText(body []byte) string {
	var parsed upstreamErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// Classify maps a failed HTTP response to one fixed, human-readable message.
func Classify(status int, body []byte) string {
	text := errorText(body)

	switch status {
	case http.StatusUnauthorized:
		return "Invalid API key. Please check your key in Settings."
	case http.StatusTooManyRequests:
		return "Rate limit exceeded. Please wait a moment and try again."
	case http.StatusRequestEntityTooLarge:
		return "Recording is too long. Try a shorter recording."
	case http.StatusBadRequest:
		if strings.Contains(strings.ToLower(text), "audio") {
			return "Audio format not supported. Please try recording again."
		}
		return fmt.Sprintf("Request failed (400): %s", text)
	default:
		return fmt.Sprintf("Transcription failed (%d): %s", status, text)
	}
}
