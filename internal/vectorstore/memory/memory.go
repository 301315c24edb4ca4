package memory

import (
	"context"
	"sort"
	"sync"

	"docwhisperer/internal/model"
)

// Store is the no-ranking fallback used when no vector store is
// configured. Query returns every stored chunk in insertion order
// regardless of the query text, so retrieval degrades to "all chunks
// from all documents" rather than true similarity search.
type Store struct {
	mu     sync.RWMutex
	order  []string
	chunks map[string]model.Chunk
}

func NewStore() *Store {
	return &Store{chunks: make(map[string]model.Chunk)}
}

func (s *Store) Insert(_ context.Context, chunks []model.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		id := c.ID()
		if _, exists := s.chunks[id]; !exists {
			s.order = append(s.order, id)
		}
		s.chunks[id] = c
	}
	return nil
}

func (s *Store) Query(_ context.Context, _ string, topK int) ([]model.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.chunks) == 0 {
		return nil, nil
	}
	out := make([]model.Chunk, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.chunks[id])
	}
	// No ranking: topK does not apply, the caller gets everything and
	// the context assembler's character budget bounds the prompt.
	_ = topK
	return out, nil
}

func (s *Store) Sources(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, c := range s.chunks {
		seen[c.Source] = struct{}{}
	}
	sources := make([]string, 0, len(seen))
	for src := range seen {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}
