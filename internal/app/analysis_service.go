package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"docwhisperer/internal/ai"
	"docwhisperer/internal/model"
	"docwhisperer/internal/prompt"
)

// fallbackSummaryChars bounds the degraded summary taken from an
// unparseable model reply.
const fallbackSummaryChars = 500

const analysisStructure = `Create a JSON response with this structure:
{
  "summary": "150-word summary",
  "quiz": [
    {"question": "Question 1", "answer": "Answer 1", "source_location": "Reference"},
    {"question": "Question 2", "answer": "Answer 2", "source_location": "Reference"},
    {"question": "Question 3", "answer": "Answer 3", "source_location": "Reference"}
  ],
  "key_concepts": ["concept1", "concept2", "concept3"]
}`

// AnalysisService turns document text into a structured Analysis via a
// hosted model. Generate is total: provider failures and unparseable
// replies become fallback analyses, never errors, so downstream
// persistence and rendering can assume a well-formed record.
type AnalysisService struct {
	clients          map[model.Provider]ai.Client
	maxDocumentChars int
	maxTokens        int
}

func NewAnalysisService(clients map[model.Provider]ai.Client, maxDocumentChars, maxTokens int) *AnalysisService {
	if maxDocumentChars <= 0 {
		maxDocumentChars = 70000
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &AnalysisService{
		clients:          clients,
		maxDocumentChars: maxDocumentChars,
		maxTokens:        maxTokens,
	}
}

// Generate builds the analysis prompt from the template, invokes the
// provider, and parses the reply.
func (s *AnalysisService) Generate(ctx context.Context, text, source string, provider model.Provider, template model.Template) model.Analysis {
	spec, err := prompt.Resolve(template)
	if err != nil {
		return s.fallbackAnalysis(source, err)
	}

	client, ok := s.clients[provider]
	if !ok {
		return s.fallbackAnalysis(source, fmt.Errorf("provider %s not available", provider))
	}

	text = prompt.Truncate(text, s.maxDocumentChars)

	systemPrompt := fmt.Sprintf("%s\n\n%s\n\nFocus the summary on %s. Write quiz questions in an %s style.",
		spec.System, analysisStructure, spec.SummaryFocus, spec.QuestionStyle)

	reply, err := client.Complete(ctx, ai.CompletionRequest{
		System:    systemPrompt,
		User:      "Document to analyze:\n\n" + text,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return s.fallbackAnalysis(source, err)
	}

	return parseReply(reply, provider)
}

// Providers returns the configured provider identities in stable order.
func (s *AnalysisService) Providers() []model.Provider {
	var out []model.Provider
	for _, p := range []model.Provider{model.ProviderAnthropic, model.ProviderOpenAI} {
		if _, ok := s.clients[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// parseReply extracts a JSON object from the model's free-form reply by
// locating the first '{' and the last '}'. The heuristic mis-parses
// replies with multiple independent JSON fragments or braces inside
// string literals; that is accepted, with the plain-text fallback
// catching whatever fails to unmarshal.
func parseReply(reply string, provider model.Provider) model.Analysis {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start != -1 && end > start {
		var parsed struct {
			Summary     string           `json:"summary"`
			Quiz        []model.QuizItem `json:"quiz"`
			KeyConcepts []string         `json:"key_concepts"`
		}
		if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err == nil && parsed.Summary != "" {
			quiz := parsed.Quiz
			if quiz == nil {
				quiz = []model.QuizItem{}
			}
			concepts := parsed.KeyConcepts
			if concepts == nil {
				concepts = []string{}
			}
			return model.Analysis{
				Summary:     parsed.Summary,
				Quiz:        quiz,
				KeyConcepts: concepts,
				Provider:    provider,
				Timestamp:   time.Now(),
			}
		}
	}

	// Plain-text degraded path: first 500 characters of the raw reply.
	summary := reply
	if runes := []rune(reply); len(runes) > fallbackSummaryChars {
		summary = string(runes[:fallbackSummaryChars]) + "..."
	}
	return model.Analysis{
		Summary:     summary,
		Quiz:        []model.QuizItem{},
		KeyConcepts: []string{},
		Provider:    provider,
		Timestamp:   time.Now(),
	}
}

func (s *AnalysisService) fallbackAnalysis(source string, cause error) model.Analysis {
	return model.Analysis{
		Summary:     fmt.Sprintf("Error generating analysis for %s: %v", source, cause),
		Quiz:        []model.QuizItem{},
		KeyConcepts: []string{},
		Provider:    model.ProviderFallback,
		Timestamp:   time.Now(),
	}
}
