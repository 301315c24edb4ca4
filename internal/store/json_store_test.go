package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docwhisperer/internal/model"
)

func TestJSONStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewJSONStore(path)

	ingested := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	documents := map[string]model.Document{
		"docs/paper.pdf": {
			Path:       "docs/paper.pdf",
			Content:    "full extracted text",
			IngestedAt: ingested,
			FileSize:   19,
		},
	}
	analyses := map[string]model.Analysis{
		"docs/paper.pdf": {
			Summary:     "A short summary.",
			KeyConcepts: []string{"alpha", "beta"},
			Quiz: []model.QuizItem{
				{Question: "What?", Answer: "That.", SourceLocation: "page 2"},
			},
			Provider:  model.ProviderAnthropic,
			Timestamp: ingested,
		},
	}

	require.NoError(t, s.Save(documents, analyses))

	gotDocs, gotAnalyses := NewJSONStore(path).Load()
	assert.Equal(t, documents, gotDocs)
	assert.Equal(t, analyses, gotAnalyses)
}

func TestJSONStore_LoadMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))

	documents, analyses := s.Load()
	assert.Empty(t, documents)
	assert.Empty(t, analyses)
	assert.NotNil(t, documents)
	assert.NotNil(t, analyses)
}

func TestJSONStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	documents, analyses := NewJSONStore(path).Load()
	assert.Empty(t, documents)
	assert.Empty(t, analyses)
}

func TestJSONStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")
	s := NewJSONStore(path)

	require.NoError(t, s.Save(map[string]model.Document{}, map[string]model.Analysis{}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewJSONStore(path)

	first := map[string]model.Document{"a.txt": {Path: "a.txt", Content: "a", FileSize: 1}}
	require.NoError(t, s.Save(first, map[string]model.Analysis{}))

	second := map[string]model.Document{"b.txt": {Path: "b.txt", Content: "b", FileSize: 1}}
	require.NoError(t, s.Save(second, map[string]model.Analysis{}))

	documents, _ := s.Load()
	assert.Len(t, documents, 1)
	assert.Contains(t, documents, "b.txt")
	assert.NotContains(t, documents, "a.txt")
}

func TestJSONStore_UsesSummariesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewJSONStore(path)

	analyses := map[string]model.Analysis{"a.txt": {Summary: "s", Provider: model.ProviderOpenAI}}
	require.NoError(t, s.Save(map[string]model.Document{}, analyses))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"summaries"`)
	assert.Contains(t, string(raw), `"last_updated"`)
}
