package polish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voicetype/internal/provider"
)

// fakeCompletions serves an OpenAI-compatible chat completions endpoint.
func fakeCompletions(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"upstream unhappy"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestDirectPolisherReturnsRefinedText(t *testing.T) {
	srv := fakeCompletions(t, "Polished text.", http.StatusOK)
	defer srv.Close()

	p := &DirectPolisher{BaseURL: srv.URL}
	got, err := p.Polish(context.Background(), "sk-test", provider.OpenAI, "polished text")
	if err != nil {
		t.Fatalf("Polish failed: %v", err)
	}
	if got != "Polished text." {
		t.Errorf("polished = %q", got)
	}
}

func TestDirectPolisherSendsFixedParameters(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := &DirectPolisher{BaseURL: srv.URL}
	if _, err := p.Polish(context.Background(), "gsk-test", provider.Groq, "raw"); err != nil {
		t.Fatalf("Polish failed: %v", err)
	}

	if captured["model"] != "llama-3.3-70b-versatile" {
		t.Errorf("model = %v", captured["model"])
	}
	if captured["temperature"] != 0.1 {
		t.Errorf("temperature = %v", captured["temperature"])
	}
	if captured["max_tokens"] != float64(2048) {
		t.Errorf("max_tokens = %v", captured["max_tokens"])
	}
	messages, ok := captured["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", captured["messages"])
	}
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	if system["role"] != "system" || user["role"] != "user" || user["content"] != "raw" {
		t.Errorf("unexpected messages: %v", messages)
	}
}

func TestBestEffortReturnsInputOnUpstreamFailure(t *testing.T) {
	srv := fakeCompletions(t, "", http.StatusInternalServerError)
	defer srv.Close()

	p := &DirectPolisher{BaseURL: srv.URL}
	got, polished := BestEffort(context.Background(), p, "sk-test", provider.OpenAI, "the raw transcript")
	if got != "the raw transcript" || polished {
		t.Errorf("BestEffort = %q, polished=%t; want identity fallback", got, polished)
	}
}

func TestBestEffortReturnsInputWhenUnreachable(t *testing.T) {
	p := &RelayPolisher{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}
	got, polished := BestEffort(context.Background(), p, "sk-test", provider.OpenAI, "keep me")
	if got != "keep me" || polished {
		t.Errorf("BestEffort = %q, polished=%t; want identity fallback", got, polished)
	}
}

func TestBestEffortReturnsInputOnEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := &DirectPolisher{BaseURL: srv.URL}
	got, polished := BestEffort(context.Background(), p, "sk-test", provider.OpenAI, "original")
	if got != "original" || polished {
		t.Errorf("BestEffort = %q, polished=%t; want identity fallback", got, polished)
	}
}

func TestRelayPolisher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/polish" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req relayPolishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode: %v", err)
		}
		if req.APIKey != "sk-test" || req.Provider != "openai" || req.Text != "fix me" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"Fixed."}`))
	}))
	defer srv.Close()

	p := &RelayPolisher{BaseURL: srv.URL}
	got, err := p.Polish(context.Background(), "sk-test", provider.OpenAI, "fix me")
	if err != nil {
		t.Fatalf("Polish failed: %v", err)
	}
	if got != "Fixed." {
		t.Errorf("polished = %q", got)
	}
}

func TestRelayPolisherErrorsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := &RelayPolisher{BaseURL: srv.URL}
	if _, err := p.Polish(context.Background(), "sk-test", provider.OpenAI, "text"); err == nil {
		t.Error("expected error for 500 response")
	}
}
