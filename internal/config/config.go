package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App         AppConfig         `toml:"app"`
	Chunking    ChunkingConfig    `toml:"chunking"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	Analysis    AnalysisConfig    `toml:"analysis"`
	Anthropic   ProviderConfig    `toml:"anthropic"`
	OpenAI      ProviderConfig    `toml:"openai"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Storage     StorageConfig     `toml:"storage"`
	Redis       RedisConfig       `toml:"redis"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

type RetrievalConfig struct {
	TopK            int `toml:"top_k"`
	MaxContextChars int `toml:"max_context_chars"`
}

type AnalysisConfig struct {
	MaxDocumentChars  int    `toml:"max_document_chars"`
	MaxAnalysisTokens int    `toml:"max_analysis_tokens"`
	MaxAnswerTokens   int    `toml:"max_answer_tokens"`
	DefaultProvider   string `toml:"default_provider"`
	DefaultTemplate   string `toml:"default_template"`
}

type ProviderConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type VectorStoreConfig struct {
	// Type selects the store: "chroma" for a Chroma server, "memory"
	// for the no-ranking in-process fallback.
	Type       string `toml:"type"`
	URL        string `toml:"url"`
	Collection string `toml:"collection"`
}

type StorageConfig struct {
	File           string `toml:"file"`
	SummariesDir   string `toml:"summaries_dir"`
	ComparisonsDir string `toml:"comparisons_dir"`
}

type RedisConfig struct {
	Enabled          bool   `toml:"enabled"`
	Addr             string `toml:"addr"`
	Password         string `toml:"password"`
	DB               int    `toml:"db"`
	AnswerTTLSeconds int    `toml:"answer_ttl_seconds"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "docwhisperer",
			Host:    "0.0.0.0",
			Port:    8000,
			GinMode: "release",
		},
		Chunking: ChunkingConfig{
			Size:    3500,
			Overlap: 100,
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			MaxContextChars: 50000,
		},
		Analysis: AnalysisConfig{
			MaxDocumentChars:  70000,
			MaxAnalysisTokens: 2000,
			MaxAnswerTokens:   1000,
			DefaultProvider:   "anthropic",
			DefaultTemplate:   "research",
		},
		Anthropic: ProviderConfig{
			BaseURL: "https://api.anthropic.com",
			Model:   "claude-3-sonnet-20240229",
		},
		OpenAI: ProviderConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o",
		},
		VectorStore: VectorStoreConfig{
			Type:       "memory",
			URL:        "http://127.0.0.1:8001",
			Collection: "documents",
		},
		Storage: StorageConfig{
			File:           "doc_whisperer_data.json",
			SummariesDir:   "summaries",
			ComparisonsDir: "comparisons",
		},
		Redis: RedisConfig{
			Enabled:          false,
			Addr:             "127.0.0.1:6379",
			DB:               0,
			AnswerTTLSeconds: 600,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Chunking.Size = getEnvAsInt("CHUNK_SIZE", cfg.Chunking.Size)
	cfg.Chunking.Overlap = getEnvAsInt("CHUNK_OVERLAP", cfg.Chunking.Overlap)

	cfg.Retrieval.TopK = getEnvAsInt("TOP_K", cfg.Retrieval.TopK)
	cfg.Retrieval.MaxContextChars = getEnvAsInt("MAX_CONTEXT_CHARS", cfg.Retrieval.MaxContextChars)

	cfg.Analysis.MaxDocumentChars = getEnvAsInt("MAX_DOCUMENT_CHARS", cfg.Analysis.MaxDocumentChars)
	cfg.Analysis.DefaultProvider = getEnv("DEFAULT_PROVIDER", cfg.Analysis.DefaultProvider)
	cfg.Analysis.DefaultTemplate = getEnv("DEFAULT_TEMPLATE", cfg.Analysis.DefaultTemplate)

	cfg.Anthropic.BaseURL = getEnv("ANTHROPIC_BASE_URL", cfg.Anthropic.BaseURL)
	cfg.Anthropic.APIKey = getEnv("ANTHROPIC_API_KEY", cfg.Anthropic.APIKey)
	cfg.Anthropic.Model = getEnv("DEFAULT_MODEL", cfg.Anthropic.Model)

	cfg.OpenAI.BaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)
	cfg.OpenAI.APIKey = getEnv("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", cfg.OpenAI.Model)

	cfg.VectorStore.Type = getEnv("VECTOR_STORE_TYPE", cfg.VectorStore.Type)
	cfg.VectorStore.URL = getEnv("CHROMA_URL", cfg.VectorStore.URL)
	cfg.VectorStore.Collection = getEnv("CHROMA_COLLECTION", cfg.VectorStore.Collection)

	cfg.Storage.File = getEnv("STORAGE_FILE", cfg.Storage.File)
	cfg.Storage.SummariesDir = getEnv("SUMMARIES_DIR", cfg.Storage.SummariesDir)
	cfg.Storage.ComparisonsDir = getEnv("COMPARISONS_DIR", cfg.Storage.ComparisonsDir)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.AnswerTTLSeconds = getEnvAsInt("REDIS_ANSWER_TTL_SECONDS", cfg.Redis.AnswerTTLSeconds)
	if raw, ok := os.LookupEnv("REDIS_ENABLED"); ok {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			cfg.Redis.Enabled = parsed
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
