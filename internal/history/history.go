package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one completed transcription kept in local history.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Provider  string    `json:"provider"`
	Text      string    `json:"text"`
	Polished  bool      `json:"polished"`
}

// Store keeps transcription history in a local JSON file with an in-memory
// index. Safe for concurrent use.
type Store struct {
	path    string
	mu      sync.Mutex
	entries []Entry
}

// Open loads existing history from path, creating parent directories as
// needed. A missing file is an empty history.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	return s, nil
}

// Append records a completed transcription and persists the file.
func (s *Store) Append(providerName, text string, polished bool) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Provider:  providerName,
		Text:      text,
		Polished:  polished,
	}
	s.entries = append(s.entries, entry)

	if err := s.persist(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns entries newest-first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

func (s *Store) persist() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
