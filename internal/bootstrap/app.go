package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"docwhisperer/internal/ai"
	appsvc "docwhisperer/internal/app"
	"docwhisperer/internal/cache"
	"docwhisperer/internal/chunker"
	"docwhisperer/internal/config"
	"docwhisperer/internal/extract"
	"docwhisperer/internal/model"
	redisClient "docwhisperer/internal/platform/redis"
	"docwhisperer/internal/report"
	"docwhisperer/internal/store"
	"docwhisperer/internal/vectorstore"
	"docwhisperer/internal/vectorstore/chroma"
	"docwhisperer/internal/vectorstore/memory"
)

// App holds the wired service graph. One App is built per process; the
// CLI and the HTTP front end both run off the same instance.
type App struct {
	Config          *config.Config
	Redis           *redis.Client
	Vectors         vectorstore.Storage
	Whisper         *appsvc.WhisperService
	DefaultProvider model.Provider
	DefaultTemplate model.Template

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	chk, err := chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap)
	if err != nil {
		return nil, fmt.Errorf("chunking config invalid: %w", err)
	}

	defaultProvider, err := model.ParseProvider(cfg.Analysis.DefaultProvider)
	if err != nil {
		return nil, fmt.Errorf("default provider invalid: %w", err)
	}
	defaultTemplate, err := model.ParseTemplate(cfg.Analysis.DefaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("default template invalid: %w", err)
	}

	vectors, err := buildVectorStore(cfg)
	if err != nil {
		return nil, err
	}

	// Only providers with credentials get a client; the analysis
	// generator turns a missing provider into a fallback record.
	clients := make(map[model.Provider]ai.Client)
	if cfg.Anthropic.APIKey != "" {
		clients[model.ProviderAnthropic] = ai.NewAnthropicClient(ai.AnthropicConfig{
			BaseURL: cfg.Anthropic.BaseURL,
			APIKey:  cfg.Anthropic.APIKey,
			Model:   cfg.Anthropic.Model,
		})
	}
	if cfg.OpenAI.APIKey != "" {
		clients[model.ProviderOpenAI] = ai.NewOpenAIClient(ai.OpenAIConfig{
			BaseURL: cfg.OpenAI.BaseURL,
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
		})
	}
	if len(clients) == 0 {
		log.Printf("warning: no provider API keys configured, analyses will be fallback records")
	}

	var redisCli *redis.Client
	var answerCache *cache.AnswerCache
	if cfg.Redis.Enabled {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("warning: redis unavailable, answer cache disabled: %v", err)
			redisCli = nil
		} else {
			answerCache = cache.NewAnswerCache(redisCli, time.Duration(cfg.Redis.AnswerTTLSeconds)*time.Second)
		}
	}

	analysisService := appsvc.NewAnalysisService(clients, cfg.Analysis.MaxDocumentChars, cfg.Analysis.MaxAnalysisTokens)
	whisper := appsvc.NewWhisperService(
		extract.New(),
		chk,
		vectors,
		analysisService,
		clients,
		store.NewJSONStore(cfg.Storage.File),
		report.NewWriter(cfg.Storage.SummariesDir, cfg.Storage.ComparisonsDir),
		answerCache,
		appsvc.WhisperServiceConfig{
			TopK:            cfg.Retrieval.TopK,
			MaxContextChars: cfg.Retrieval.MaxContextChars,
			MaxAnswerTokens: cfg.Analysis.MaxAnswerTokens,
		},
	)

	return &App{
		Config:          cfg,
		Redis:           redisCli,
		Vectors:         vectors,
		Whisper:         whisper,
		DefaultProvider: defaultProvider,
		DefaultTemplate: defaultTemplate,
		StartedAt:       time.Now(),
	}, nil
}

func buildVectorStore(cfg *config.Config) (vectorstore.Storage, error) {
	switch cfg.VectorStore.Type {
	case "chroma":
		return chroma.NewStore(chroma.Config{
			BaseURL:    cfg.VectorStore.URL,
			Collection: cfg.VectorStore.Collection,
		}), nil
	case "memory", "":
		log.Printf("vector store: in-memory no-ranking fallback (queries return all chunks)")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}
}

func (a *App) Close() error {
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}
