package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docwhisperer/internal/model"
)

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "summaries"), filepath.Join(dir, "comparisons"))

	analysis := model.Analysis{
		Summary:     "A careful summary.",
		KeyConcepts: []string{"entropy", "compression"},
		Quiz: []model.QuizItem{
			{Question: "Why?", Answer: "Because.", SourceLocation: "section 3"},
		},
		Provider:  model.ProviderAnthropic,
		Timestamp: time.Now(),
	}

	path, err := w.WriteSummary("docs/paper.pdf", analysis)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summaries", "paper_anthropic.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "# Analysis of paper")
	assert.Contains(t, content, "**Provider:** ANTHROPIC")
	assert.Contains(t, content, "## Key Concepts")
	assert.Contains(t, content, "- entropy")
	assert.Contains(t, content, "## Summary")
	assert.Contains(t, content, "A careful summary.")
	assert.Contains(t, content, "## Quiz Questions")
	assert.Contains(t, content, "**Q:** Why?")
	assert.Contains(t, content, "**Source:** section 3")
}

func TestWriteSummary_SkipsEmptySections(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "summaries"), filepath.Join(dir, "comparisons"))

	path, err := w.WriteSummary("note.txt", model.Analysis{
		Summary:  "Just a summary.",
		Provider: model.ProviderFallback,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.NotContains(t, content, "## Key Concepts")
	assert.NotContains(t, content, "## Quiz Questions")
}

func TestWriteComparison(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "summaries"), filepath.Join(dir, "comparisons"))

	results := map[model.Provider]model.Analysis{
		model.ProviderAnthropic: {Summary: "Claude's take.", KeyConcepts: []string{"one"}},
		model.ProviderOpenAI:    {Summary: "GPT's take."},
	}

	path, err := w.WriteComparison("docs/paper.pdf", model.TemplateResearch, results)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "paper_comparison_research_")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "# Model Comparison: paper")
	assert.Contains(t, content, "**Template:** Research")
	assert.Contains(t, content, "## ANTHROPIC Analysis")
	assert.Contains(t, content, "Claude's take.")
	assert.Contains(t, content, "## OPENAI Analysis")
	assert.Contains(t, content, "GPT's take.")

	// anthropic section comes first regardless of map order
	assert.Less(t,
		strings.Index(content, "## ANTHROPIC Analysis"),
		strings.Index(content, "## OPENAI Analysis"))
}

func TestWriteComparison_EmptySummaryPlaceholder(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "summaries"), filepath.Join(dir, "comparisons"))

	path, err := w.WriteComparison("a.txt", model.TemplateBusiness, map[model.Provider]model.Analysis{
		model.ProviderOpenAI: {},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No summary available")
}
