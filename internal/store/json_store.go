package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"docwhisperer/internal/model"
)

// fileFormat is the single persisted JSON document. "summaries" keeps
// the original on-disk key for analyses.
type fileFormat struct {
	Documents   map[string]model.Document `json:"documents"`
	Summaries   map[string]model.Analysis `json:"summaries"`
	LastUpdated string                    `json:"last_updated"`
}

// JSONStore serializes the document and analysis maps to a single JSON
// file, fully overwriting prior content on every save. It offers no
// partial-write protection beyond what the file system gives one write;
// concurrent savers race last-writer-wins. The mutex only keeps two
// saves from the same process from interleaving.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Save overwrites the store file with both maps and a save timestamp.
func (s *JSONStore) Save(documents map[string]model.Document, analyses map[string]model.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := fileFormat{
		Documents:   documents,
		Summaries:   analyses,
		LastUpdated: time.Now().Format(time.RFC3339),
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store failed: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory failed: %w", err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write store file failed: %w", err)
	}
	return nil
}

// Load reads the store file back. A missing or corrupt file is treated
// as an empty store with a logged warning, never a failure: the owning
// service must always construct.
func (s *JSONStore) Load() (map[string]model.Document, map[string]model.Analysis) {
	documents := make(map[string]model.Document)
	analyses := make(map[string]model.Analysis)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: read store file %s failed: %v, starting empty", s.path, err)
		}
		return documents, analyses
	}

	var data fileFormat
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("warning: parse store file %s failed: %v, starting empty", s.path, err)
		return documents, analyses
	}
	if data.Documents != nil {
		documents = data.Documents
	}
	if data.Summaries != nil {
		analyses = data.Summaries
	}
	return documents, analyses
}

// Path returns the backing file path.
func (s *JSONStore) Path() string { return s.path }
