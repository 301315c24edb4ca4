package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"docwhisperer/internal/ai"
	"docwhisperer/internal/cache"
	"docwhisperer/internal/chunker"
	"docwhisperer/internal/extract"
	"docwhisperer/internal/model"
	"docwhisperer/internal/prompt"
	"docwhisperer/internal/report"
	"docwhisperer/internal/store"
	"docwhisperer/internal/vectorstore"
)

// NoRelevantDocuments is returned verbatim when a query finds nothing
// to retrieve; the model is not invoked in that case.
const NoRelevantDocuments = "No relevant documents found in the database."

const askSystemPrompt = `You are a helpful research assistant. Use the provided document excerpts to answer the user's question.

Important guidelines:
- Base your answer on the provided context
- If you can identify specific sources or page numbers, mention them
- If the context doesn't contain enough information, say so
- Be concise but thorough`

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoText           = errors.New("no text extracted")
	ErrDocumentNotFound = errors.New("document not found, ingest it first")
)

// WhisperServiceConfig carries the tunables the orchestrator needs.
type WhisperServiceConfig struct {
	TopK            int
	MaxContextChars int
	MaxAnswerTokens int
}

// WhisperService orchestrates the ingest and query pipelines: extract,
// chunk, index, analyze, persist. One instance serves the CLI and every
// HTTP request; mu guards the in-memory maps against concurrent
// handlers. The JSON file itself still races last-writer-wins across
// processes.
type WhisperService struct {
	extractor   *extract.Extractor
	chunker     *chunker.Chunker
	vectors     vectorstore.Storage
	analysis    *AnalysisService
	clients     map[model.Provider]ai.Client
	persistence *store.JSONStore
	reports     *report.Writer
	answerCache *cache.AnswerCache
	cfg         WhisperServiceConfig

	mu        sync.RWMutex
	documents map[string]model.Document
	analyses  map[string]model.Analysis
}

func NewWhisperService(
	extractor *extract.Extractor,
	chk *chunker.Chunker,
	vectors vectorstore.Storage,
	analysis *AnalysisService,
	clients map[model.Provider]ai.Client,
	persistence *store.JSONStore,
	reports *report.Writer,
	answerCache *cache.AnswerCache,
	cfg WhisperServiceConfig,
) *WhisperService {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	documents, analyses := persistence.Load()
	if len(documents) > 0 {
		log.Printf("loaded %d documents from storage", len(documents))
	}
	return &WhisperService{
		extractor:   extractor,
		chunker:     chk,
		vectors:     vectors,
		analysis:    analysis,
		clients:     clients,
		persistence: persistence,
		reports:     reports,
		answerCache: answerCache,
		cfg:         cfg,
		documents:   documents,
		analyses:    analyses,
	}
}

// IngestResult reports a single successful document ingestion.
type IngestResult struct {
	Path        string         `json:"path"`
	Chars       int            `json:"chars"`
	ChunkCount  int            `json:"chunk_count"`
	Indexed     bool           `json:"indexed"`
	SummaryPath string         `json:"summary_path,omitempty"`
	Analysis    model.Analysis `json:"analysis"`
}

// IngestFile processes one document end to end. Extraction failures
// abort this document only; vector store failures degrade to
// summary-only mode; provider failures surface as fallback analyses.
func (s *WhisperService) IngestFile(ctx context.Context, path string, provider model.Provider, template model.Template) (*IngestResult, error) {
	text, err := s.extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoText, path)
	}

	chunks := s.chunker.Split(text, path)
	indexed := false
	if len(chunks) > 0 {
		if err := s.vectors.Insert(ctx, chunks); err != nil {
			log.Printf("warning: storing chunks for %s failed: %v, continuing in summary-only mode", path, err)
		} else {
			indexed = true
		}
	}

	analysis := s.analysis.Generate(ctx, text, path, provider, template)

	s.mu.Lock()
	s.documents[path] = model.Document{
		Path:       path,
		Content:    text,
		IngestedAt: time.Now(),
		FileSize:   len(text),
	}
	s.analyses[path] = analysis
	s.mu.Unlock()

	summaryPath, err := s.reports.WriteSummary(path, analysis)
	if err != nil {
		log.Printf("warning: writing summary for %s failed: %v", path, err)
	}

	s.persist()

	return &IngestResult{
		Path:        path,
		Chars:       len(text),
		ChunkCount:  len(chunks),
		Indexed:     indexed,
		SummaryPath: summaryPath,
		Analysis:    analysis,
	}, nil
}

// BatchResult tallies a directory ingestion.
type BatchResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Failures  []string `json:"failures,omitempty"`
}

// IngestDir processes every supported file under dir, continuing past
// individual failures and reporting a per-item tally.
func (s *WhisperService) IngestDir(ctx context.Context, dir string, recursive bool, provider model.Provider, template model.Template) (*BatchResult, error) {
	paths, err := collectFiles(dir, recursive)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported files found in %s", dir)
	}

	result := &BatchResult{Total: len(paths)}
	for _, path := range paths {
		if _, err := s.IngestFile(ctx, path, provider, template); err != nil {
			log.Printf("ingest %s failed: %v", path, err)
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// AskResult carries the answer and the chunks it was grounded on.
type AskResult struct {
	Answer string        `json:"answer"`
	Chunks []model.Chunk `json:"chunks,omitempty"`
	Cached bool          `json:"cached,omitempty"`
}

// Ask retrieves the top-k chunks for the question, assembles a bounded
// context window, and forwards both to the provider. Transport errors
// come back as a plain-text answer rather than a raised error, so an
// interactive session never terminates on a bad call.
func (s *WhisperService) Ask(ctx context.Context, question string, provider model.Provider) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", ErrInvalidInput)
	}

	if answer, ok, err := s.answerCache.GetAnswer(ctx, provider, question); err != nil {
		log.Printf("warning: answer cache lookup failed: %v", err)
	} else if ok {
		return &AskResult{Answer: answer, Cached: true}, nil
	}

	chunks, err := s.vectors.Query(ctx, question, s.cfg.TopK)
	if err != nil {
		return &AskResult{Answer: fmt.Sprintf("Error querying documents: %v", err)}, nil
	}
	if len(chunks) == 0 {
		return &AskResult{Answer: NoRelevantDocuments}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	contextWindow := prompt.AssembleContext(texts, s.cfg.MaxContextChars)

	client, ok := s.clients[provider]
	if !ok {
		return &AskResult{Answer: fmt.Sprintf("Provider %s not available.", provider)}, nil
	}

	answer, err := client.Complete(ctx, ai.CompletionRequest{
		System:    askSystemPrompt,
		User:      fmt.Sprintf("Context from documents:\n\n%s\n\nQuestion: %s", contextWindow, question),
		MaxTokens: s.cfg.MaxAnswerTokens,
	})
	if err != nil {
		return &AskResult{Answer: fmt.Sprintf("Error querying documents: %v", err), Chunks: chunks}, nil
	}
	answer = strings.TrimSpace(answer)

	if err := s.answerCache.SetAnswer(ctx, provider, question, answer); err != nil {
		log.Printf("warning: answer cache store failed: %v", err)
	}

	return &AskResult{Answer: answer, Chunks: chunks}, nil
}

// Compare runs the analysis for every configured provider against an
// already-ingested document and writes a side-by-side report.
func (s *WhisperService) Compare(ctx context.Context, path string, template model.Template) (map[model.Provider]model.Analysis, string, error) {
	s.mu.RLock()
	doc, ok := s.documents[path]
	s.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}

	providers := s.analysis.Providers()
	if len(providers) == 0 {
		return nil, "", errors.New("no providers configured")
	}

	results := make(map[model.Provider]model.Analysis, len(providers))
	for _, provider := range providers {
		results[provider] = s.analysis.Generate(ctx, doc.Content, path, provider, template)
	}

	// Keep the latest analysis per path; last provider wins, matching
	// the single-analysis-per-document persistence model.
	s.mu.Lock()
	for _, provider := range providers {
		s.analyses[path] = results[provider]
	}
	s.mu.Unlock()
	s.persist()

	reportPath := ""
	if len(results) > 1 {
		var err error
		reportPath, err = s.reports.WriteComparison(path, template, results)
		if err != nil {
			log.Printf("warning: writing comparison for %s failed: %v", path, err)
		}
	}
	return results, reportPath, nil
}

// DocumentInfo is the list view of an ingested document.
type DocumentInfo struct {
	Path       string    `json:"path"`
	FileSize   int       `json:"file_size"`
	IngestedAt time.Time `json:"ingested_at"`
}

// ListDocuments returns the ingested documents sorted by path.
func (s *WhisperService) ListDocuments() []DocumentInfo {
	s.mu.RLock()
	out := make([]DocumentInfo, 0, len(s.documents))
	for _, doc := range s.documents {
		out = append(out, DocumentInfo{Path: doc.Path, FileSize: doc.FileSize, IngestedAt: doc.IngestedAt})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Stats summarizes the knowledge base for the dashboard. Documents and
// analyses come from the JSON store; chunk and source counts come from
// the vector store and read zero when it is unreachable.
type Stats struct {
	Documents      int `json:"documents"`
	Analyses       int `json:"analyses"`
	Chunks         int `json:"chunks"`
	IndexedSources int `json:"indexed_sources"`
	TotalChars     int `json:"total_chars"`
}

func (s *WhisperService) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	stats := Stats{Documents: len(s.documents), Analyses: len(s.analyses)}
	for _, doc := range s.documents {
		stats.TotalChars += doc.FileSize
	}
	s.mu.RUnlock()
	if count, err := s.vectors.Count(ctx); err == nil {
		stats.Chunks = count
	}
	if sources, err := s.vectors.Sources(ctx); err == nil {
		stats.IndexedSources = len(sources)
	}
	return stats
}

// Analysis returns the stored analysis for a document path.
func (s *WhisperService) Analysis(path string) (model.Analysis, bool) {
	s.mu.RLock()
	a, ok := s.analyses[path]
	s.mu.RUnlock()
	return a, ok
}

// persist saves a snapshot of the maps so Save can marshal without
// holding the lock while another request mutates them.
func (s *WhisperService) persist() {
	s.mu.RLock()
	documents := make(map[string]model.Document, len(s.documents))
	for path, doc := range s.documents {
		documents[path] = doc
	}
	analyses := make(map[string]model.Analysis, len(s.analyses))
	for path, analysis := range s.analyses {
		analyses[path] = analysis
	}
	s.mu.RUnlock()

	if err := s.persistence.Save(documents, analyses); err != nil {
		log.Printf("warning: saving store failed: %v", err)
	}
}

func collectFiles(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s failed: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	supported := make(map[string]bool, len(extract.SupportedExtensions))
	for _, ext := range extract.SupportedExtensions {
		supported[ext] = true
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supported[strings.ToLower(filepath.Ext(path))] {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s failed: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read %s failed: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && supported[strings.ToLower(filepath.Ext(entry.Name()))] {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
