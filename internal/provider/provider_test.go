package provider

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"openai", OpenAI, false},
		{"OpenAI", OpenAI, false},
		{" groq ", Groq, false},
		{"deepgram", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("Parse(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestFixedModelTables(t *testing.T) {
	if OpenAI.TranscriptionModel() != "whisper-1" || Groq.TranscriptionModel() != "whisper-large-v3-turbo" {
		t.Error("unexpected transcription models")
	}
	if OpenAI.ChatModel() != "gpt-4o-mini" || Groq.ChatModel() != "llama-3.3-70b-versatile" {
		t.Error("unexpected chat models")
	}
	if OpenAI.APIBase() != "https://api.openai.com/v1" || Groq.APIBase() != "https://api.groq.com/openai/v1" {
		t.Error("unexpected API bases")
	}
}
