package transcribe

import (
	"strings"
	"testing"
)

func TestClassifyFixedMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"401 ignores body", 401, `{"error":{"message":"bad key"}}`, "Invalid API key. Please check your key in Settings."},
		{"401 raw body", 401, "unauthorized", "Invalid API key. Please check your key in Settings."},
		{"429", 429, "slow down", "Rate limit exceeded. Please wait a moment and try again."},
		{"413", 413, "too large", "Recording is too long. Try a shorter recording."},
		{"400 audio substring", 400, `{"error":{"message":"Unsupported Audio codec"}}`, "Audio format not supported. Please try recording again."},
		{"400 generic", 400, "missing model", "Request failed (400): missing model"},
		{"500 generic", 500, "internal", "Transcription failed (500): internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.status, []byte(tc.body)); got != tc.want {
				t.Errorf("Classify(%d, %q) = %q, want %q", tc.status, tc.body, got, tc.want)
			}
		})
	}
}

func TestClassifyPrefersJSONErrorMessage(t *testing.T) {
	body := `{"error":{"message":"quota exhausted"},"other":"noise"}`
	got := Classify(500, []byte(body))
	if !strings.Contains(got, "quota exhausted") {
		t.Errorf("expected parsed error.message in %q", got)
	}
	if strings.Contains(got, "noise") {
		t.Errorf("expected raw body to be replaced by error.message, got %q", got)
	}
}

func TestClassifyFallsBackToRawOnParseFailure(t *testing.T) {
	got := Classify(502, []byte("<html>bad gateway</html>"))
	if !strings.Contains(got, "<html>bad gateway</html>") {
		t.Errorf("expected raw body fallback, got %q", got)
	}
}
