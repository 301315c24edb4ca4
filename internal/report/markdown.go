package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docwhisperer/internal/model"
)

// Writer renders analyses as human-readable Markdown files. Output is
// write-only: nothing in the pipeline reads these files back.
type Writer struct {
	summariesDir   string
	comparisonsDir string
}

func NewWriter(summariesDir, comparisonsDir string) *Writer {
	if summariesDir == "" {
		summariesDir = "summaries"
	}
	if comparisonsDir == "" {
		comparisonsDir = "comparisons"
	}
	return &Writer{summariesDir: summariesDir, comparisonsDir: comparisonsDir}
}

// WriteSummary writes one Markdown file per (document, provider) pair
// and returns the file path.
func (w *Writer) WriteSummary(docPath string, analysis model.Analysis) (string, error) {
	if err := os.MkdirAll(w.summariesDir, 0o755); err != nil {
		return "", fmt.Errorf("create summaries directory failed: %w", err)
	}

	stem := fileStem(docPath)
	outPath := filepath.Join(w.summariesDir, fmt.Sprintf("%s_%s.md", stem, analysis.Provider))

	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis of %s\n\n", stem)
	fmt.Fprintf(&b, "**Source:** `%s`\n", docPath)
	fmt.Fprintf(&b, "**Provider:** %s\n", strings.ToUpper(analysis.Provider.String()))
	fmt.Fprintf(&b, "**Processed:** %s\n\n", analysis.Timestamp.Format("2006-01-02 15:04:05"))

	if len(analysis.KeyConcepts) > 0 {
		b.WriteString("## Key Concepts\n\n")
		for _, concept := range analysis.KeyConcepts {
			fmt.Fprintf(&b, "- %s\n", concept)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	b.WriteString(analysis.Summary)
	b.WriteString("\n\n")

	if len(analysis.Quiz) > 0 {
		b.WriteString("## Quiz Questions\n\n")
		for i, qa := range analysis.Quiz {
			fmt.Fprintf(&b, "### Question %d\n", i+1)
			fmt.Fprintf(&b, "**Q:** %s\n\n", qa.Question)
			fmt.Fprintf(&b, "**A:** %s\n\n", qa.Answer)
			if qa.SourceLocation != "" {
				fmt.Fprintf(&b, "**Source:** %s\n\n", qa.SourceLocation)
			}
		}
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write summary file failed: %w", err)
	}
	return outPath, nil
}

// WriteComparison writes a side-by-side Markdown report of per-provider
// analyses for one document and returns the file path.
func (w *Writer) WriteComparison(docPath string, template model.Template, results map[model.Provider]model.Analysis) (string, error) {
	if err := os.MkdirAll(w.comparisonsDir, 0o755); err != nil {
		return "", fmt.Errorf("create comparisons directory failed: %w", err)
	}

	stem := fileStem(docPath)
	timestamp := time.Now().Format("20060102_150405")
	outPath := filepath.Join(w.comparisonsDir, fmt.Sprintf("%s_comparison_%s_%s.md", stem, template, timestamp))

	var b strings.Builder
	fmt.Fprintf(&b, "# Model Comparison: %s\n\n", stem)
	fmt.Fprintf(&b, "**Source:** `%s`\n", docPath)
	fmt.Fprintf(&b, "**Template:** %s\n", titleCase(template.String()))
	fmt.Fprintf(&b, "**Compared:** %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, provider := range []model.Provider{model.ProviderAnthropic, model.ProviderOpenAI, model.ProviderFallback} {
		analysis, ok := results[provider]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "## %s Analysis\n\n", strings.ToUpper(provider.String()))
		b.WriteString("### Summary\n\n")
		if analysis.Summary != "" {
			b.WriteString(analysis.Summary)
		} else {
			b.WriteString("No summary available")
		}
		b.WriteString("\n\n")
		if len(analysis.KeyConcepts) > 0 {
			b.WriteString("### Key Concepts\n\n")
			for _, concept := range analysis.KeyConcepts {
				fmt.Fprintf(&b, "- %s\n", concept)
			}
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write comparison file failed: %w", err)
	}
	return outPath, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
