package chroma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docwhisperer/internal/model"
)

// fakeChroma serves the subset of the Chroma REST API the store uses.
// httptest handles requests on separate goroutines, so recorded state
// is mutex-guarded.
type fakeChroma struct {
	mux *http.ServeMux

	mu          sync.Mutex
	creates     int
	upserts     []map[string]any
	queryBodies []map[string]any
	count       int
}

func newFakeChroma(t *testing.T) (*fakeChroma, *httptest.Server) {
	t.Helper()
	f := &fakeChroma{mux: http.NewServeMux()}

	f.mux.HandleFunc("/api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["get_or_create"])
		f.mu.Lock()
		f.creates++
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"id": "col-123"})
	})
	f.mux.HandleFunc("/api/v1/collections/col-123/upsert", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.upserts = append(f.upserts, body)
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	f.mux.HandleFunc("/api/v1/collections/col-123/query", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.queryBodies = append(f.queryBodies, body)
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"documents": [][]string{{"matched chunk text"}},
			"metadatas": [][]map[string]any{{{
				"source":      "doc.txt",
				"chunk_index": 2,
				"word_start":  30,
				"word_end":    50,
			}}},
		})
	})
	f.mux.HandleFunc("/api/v1/collections/col-123/get", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"metadatas": []map[string]any{
				{"source": "b.txt"},
				{"source": "a.txt"},
				{"source": "a.txt"},
			},
		})
	})
	f.mux.HandleFunc("/api/v1/collections/col-123/count", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		count := f.count
		f.mu.Unlock()
		fmt.Fprintf(w, "%d", count)
	})

	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)
	return f, server
}

func TestStore_Insert(t *testing.T) {
	fake, server := newFakeChroma(t)
	s := NewStore(Config{BaseURL: server.URL, Collection: "documents"})

	err := s.Insert(context.Background(), []model.Chunk{
		{Text: "first", Source: "doc.txt", Index: 0, WordStart: 0, WordEnd: 20},
		{Text: "second", Source: "doc.txt", Index: 1, WordStart: 15, WordEnd: 35},
	})
	require.NoError(t, err)

	require.Len(t, fake.upserts, 1)
	body := fake.upserts[0]
	assert.Equal(t, []any{"doc.txt_0", "doc.txt_1"}, body["ids"])
	assert.Equal(t, []any{"first", "second"}, body["documents"])
}

func TestStore_InsertEmptySkipsNetwork(t *testing.T) {
	s := NewStore(Config{BaseURL: "http://127.0.0.1:1"})
	assert.NoError(t, s.Insert(context.Background(), nil))
}

func TestStore_Query(t *testing.T) {
	fake, server := newFakeChroma(t)
	s := NewStore(Config{BaseURL: server.URL})

	chunks, err := s.Query(context.Background(), "what about compression?", 3)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "matched chunk text", chunks[0].Text)
	assert.Equal(t, "doc.txt", chunks[0].Source)
	assert.Equal(t, 2, chunks[0].Index)
	assert.Equal(t, 30, chunks[0].WordStart)
	assert.Equal(t, 50, chunks[0].WordEnd)

	require.Len(t, fake.queryBodies, 1)
	assert.Equal(t, []any{"what about compression?"}, fake.queryBodies[0]["query_texts"])
	assert.Equal(t, float64(3), fake.queryBodies[0]["n_results"])
}

func TestStore_QueryDefaultsTopK(t *testing.T) {
	fake, server := newFakeChroma(t)
	s := NewStore(Config{BaseURL: server.URL})

	_, err := s.Query(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Equal(t, float64(5), fake.queryBodies[0]["n_results"])
}

func TestStore_Sources(t *testing.T) {
	_, server := newFakeChroma(t)
	s := NewStore(Config{BaseURL: server.URL})

	sources, err := s.Sources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, sources)
}

func TestStore_Count(t *testing.T) {
	fake, server := newFakeChroma(t)
	fake.count = 42
	s := NewStore(Config{BaseURL: server.URL})

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestStore_ConcurrentCallsCreateCollectionOnce(t *testing.T) {
	fake, server := newFakeChroma(t)
	s := NewStore(Config{BaseURL: server.URL})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Count(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 1, fake.creates)
}

func TestStore_ServerDown(t *testing.T) {
	s := NewStore(Config{BaseURL: "http://127.0.0.1:1"})

	err := s.Insert(context.Background(), []model.Chunk{{Text: "x", Source: "a.txt"}})
	assert.Error(t, err)

	_, err = s.Query(context.Background(), "q", 5)
	assert.Error(t, err)
}
