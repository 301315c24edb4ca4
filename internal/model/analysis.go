package model

import "time"

// QuizItem is a single self-study question generated from a document.
type QuizItem struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	SourceLocation string `json:"source_location,omitempty"`
}

// Analysis is the structured result of running a document through a
// model provider. The generator guarantees a well-formed Analysis even
// when the provider call fails or its reply cannot be parsed.
type Analysis struct {
	Summary     string     `json:"summary"`
	Quiz        []QuizItem `json:"quiz"`
	KeyConcepts []string   `json:"key_concepts"`
	Provider    Provider   `json:"provider"`
	Timestamp   time.Time  `json:"timestamp"`
}
