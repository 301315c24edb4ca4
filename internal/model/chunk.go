package model

import "fmt"

// Chunk is an overlapping word-window slice of a document, the unit of
// vector store indexing. Word offsets refer to positions in the parent
// document's whitespace-split word sequence.
type Chunk struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Index     int    `json:"index"`
	WordStart int    `json:"word_start"`
	WordEnd   int    `json:"word_end"`
}

// ID returns the vector store key for the chunk. Re-inserting a chunk
// with the same id replaces the prior entry.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s_%d", c.Source, c.Index)
}
