package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"voicetype/internal/config"
	"voicetype/internal/history"
	"voicetype/internal/keystore"
	"voicetype/internal/pipeline"
	"voicetype/internal/polish"
	"voicetype/internal/provider"
	"voicetype/internal/transcribe"
)

func main() {
	file := flag.String("file", "", "path to the recorded audio clip")
	providerFlag := flag.String("provider", "", "transcription provider (openai, groq)")
	relay := flag.String("relay", "", "relay base URL; when set, requests go through the backend relay")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *file == "" {
		log.Fatal("usage: voicetype -file recording.m4a [-provider openai|groq] [-relay https://example.com]")
	}

	providerName := *providerFlag
	if providerName == "" {
		providerName = cfg.Provider
	}
	p, err := provider.Parse(providerName)
	if err != nil {
		log.Fatalf("Invalid provider: %v", err)
	}

	relayBase := *relay
	if relayBase == "" {
		relayBase = cfg.RelayBaseURL()
	}

	flow := buildFlow(relayBase)

	result, err := flow.Run(context.Background(), *file, p)
	if err != nil {
		log.Fatalf("Transcription failed: %v", err)
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Printf("Warning: history unavailable: %v", err)
	} else if _, err := store.Append(result.Provider.String(), result.Text, result.Polished); err != nil {
		log.Printf("Warning: failed to save history: %v", err)
	}

	fmt.Fprintln(os.Stdout, result.Text)
}

// buildFlow wires the flow for the current environment: relay transport when
// a relay base is configured, direct provider calls otherwise.
func buildFlow(relayBase string) *pipeline.Flow {
	if relayBase != "" {
		return &pipeline.Flow{
			Keys:        keystore.EnvStore{},
			Transcriber: transcribe.NewClient(&transcribe.RelayTransport{BaseURL: relayBase}),
			Polisher:    &polish.RelayPolisher{BaseURL: relayBase},
		}
	}
	return &pipeline.Flow{
		Keys:        keystore.EnvStore{},
		Transcriber: transcribe.NewClient(&transcribe.DirectTransport{}),
		Polisher:    &polish.DirectPolisher{},
	}
}
