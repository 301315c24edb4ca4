package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"docwhisperer/internal/model"
)

// Store is a minimal REST client to a Chroma server. The server
// generates embeddings for inserted documents and query texts itself;
// this adapter only moves texts and metadata across the wire.
type Store struct {
	baseURL    string
	collection string
	client     *http.Client

	// mu serializes collection creation across concurrent callers;
	// collectionID is only written under it.
	mu           sync.Mutex
	collectionID string
}

type Config struct {
	BaseURL    string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "documents"
	}
	return &Store{
		baseURL:    cfg.BaseURL,
		collection: collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// ensureCollection creates the collection if missing and caches its id.
// A failed creation is retried on the next call rather than latched.
func (s *Store) ensureCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collectionID != "" {
		return nil
	}
	body := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, s.baseURL+"/api/v1/collections", body, &resp); err != nil {
		return fmt.Errorf("create collection failed: %w", err)
	}
	if resp.ID == "" {
		return fmt.Errorf("create collection %q returned no id", s.collection)
	}
	s.collectionID = resp.ID
	return nil
}

func (s *Store) Insert(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := s.ensureCollection(ctx); err != nil {
		return err
	}
	ids := make([]string, len(chunks))
	documents := make([]string, len(chunks))
	metadatas := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID()
		documents[i] = c.Text
		metadatas[i] = map[string]any{
			"source":      c.Source,
			"chunk_index": c.Index,
			"word_start":  c.WordStart,
			"word_end":    c.WordEnd,
		}
	}
	body := map[string]any{
		"ids":       ids,
		"documents": documents,
		"metadatas": metadatas,
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/upsert", s.baseURL, s.collectionID)
	if err := s.postJSON(ctx, url, body, nil); err != nil {
		return fmt.Errorf("insert chunks failed: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, text string, topK int) ([]model.Chunk, error) {
	if topK <= 0 {
		topK = 5
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	body := map[string]any{
		"query_texts": []string{text},
		"n_results":   topK,
		"include":     []string{"documents", "metadatas"},
	}
	var resp struct {
		Documents [][]string         `json:"documents"`
		Metadatas [][]map[string]any `json:"metadatas"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/query", s.baseURL, s.collectionID)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, fmt.Errorf("query chunks failed: %w", err)
	}
	if len(resp.Documents) == 0 {
		return nil, nil
	}
	chunks := make([]model.Chunk, 0, len(resp.Documents[0]))
	for i, text := range resp.Documents[0] {
		chunk := model.Chunk{Text: text}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			meta := resp.Metadatas[0][i]
			if v, ok := meta["source"].(string); ok {
				chunk.Source = v
			}
			if v, ok := meta["chunk_index"].(float64); ok {
				chunk.Index = int(v)
			}
			if v, ok := meta["word_start"].(float64); ok {
				chunk.WordStart = int(v)
			}
			if v, ok := meta["word_end"].(float64); ok {
				chunk.WordEnd = int(v)
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func (s *Store) Sources(ctx context.Context) ([]string, error) {
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	body := map[string]any{"include": []string{"metadatas"}}
	var resp struct {
		Metadatas []map[string]any `json:"metadatas"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/get", s.baseURL, s.collectionID)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, fmt.Errorf("list sources failed: %w", err)
	}
	seen := make(map[string]struct{})
	for _, meta := range resp.Metadatas {
		if v, ok := meta["source"].(string); ok {
			seen[v] = struct{}{}
		}
	}
	sources := make([]string, 0, len(seen))
	for src := range seen {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.ensureCollection(ctx); err != nil {
		return 0, err
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/count", s.baseURL, s.collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("count chunks failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("chroma GET %s status %d: %s", url, resp.StatusCode, string(raw))
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, fmt.Errorf("parse count failed: %w", err)
	}
	return count, nil
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("chroma POST %s status %d: %s", url, resp.StatusCode, string(raw))
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
