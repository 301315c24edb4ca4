package prompt

import "strings"

const (
	// ChunkSeparator joins retrieved chunk texts inside the context window.
	ChunkSeparator = "\n\n---\n\n"

	// TruncationMarker is appended whenever assembled or document text is
	// cut to fit a character budget.
	TruncationMarker = "\n\n[Content truncated...]"
)

// AssembleContext joins retrieved chunk texts into a single bounded
// context window. The budget applies to the assembled string, not to
// individual chunks; when it is exceeded the result is cut at a rune
// boundary and the truncation marker appended. maxChars <= 0 disables
// the budget.
func AssembleContext(texts []string, maxChars int) string {
	joined := strings.Join(texts, ChunkSeparator)
	return Truncate(joined, maxChars)
}

// Truncate cuts s to at most maxChars runes, appending the truncation
// marker when anything was removed. Cutting happens on the rune
// sequence so a multi-byte character is never split.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + TruncationMarker
}
