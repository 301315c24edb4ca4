package pdfextract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPages extracts plain text from the PDF at path, one section per
// page, each prefixed with a "--- Page N ---" marker. Pages that yield
// no extractable text (scanned images, fonts without a text map) are
// skipped without failing the whole document. Returns empty string and
// nil error if no page has extractable text.
func ExtractPages(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()

	var parts []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", pageNum, text))
	}
	return strings.Join(parts, "\n\n"), nil
}
