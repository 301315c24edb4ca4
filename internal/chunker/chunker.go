package chunker

import (
	"errors"
	"fmt"
	"strings"

	"docwhisperer/internal/model"
)

// ErrInvalidChunking reports a chunk size/overlap combination that
// cannot advance through the text.
var ErrInvalidChunking = errors.New("invalid chunking configuration")

// Chunker splits document text into overlapping word windows.
type Chunker struct {
	size    int
	overlap int
}

// New validates the window configuration. Overlap must be strictly
// smaller than size or the window cannot advance.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidChunking, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap %d must not be negative", ErrInvalidChunking, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than size %d", ErrInvalidChunking, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split produces the ordered chunk sequence covering text. Consecutive
// chunks share exactly the configured overlap; the final chunk may be
// shorter than the window. Blank text yields no chunks.
func (c *Chunker) Split(text, source string) []model.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []model.Chunk
	for start := 0; start < len(words); start += step {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, model.Chunk{
			Text:      strings.Join(words[start:end], " "),
			Source:    source,
			Index:     len(chunks),
			WordStart: start,
			WordEnd:   end,
		})
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Size returns the configured window width in words.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap width in words.
func (c *Chunker) Overlap() int { return c.overlap }
